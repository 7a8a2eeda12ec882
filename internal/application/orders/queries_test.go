package orders_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lachilena/empanaderia-api/internal/application/dto"
	"github.com/lachilena/empanaderia-api/internal/application/orders"
	"github.com/lachilena/empanaderia-api/internal/domain"
	"github.com/lachilena/empanaderia-api/internal/domain/entity"
)

func placeOne(t *testing.T, uc *orders.UseCase, email string) string {
	t.Helper()
	out, err := uc.PlaceOrder(context.Background(), email, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{itemReq(1, 2500, 1)},
		Total: 2500,
	})
	require.NoError(t, err)
	return out.ID
}

func TestByCustomer_PropioYAdminPuedenVer(t *testing.T) {
	products := newMemProductRepo(entity.Product{ID: 1, Name: "Empanada de Pino", Price: 2500, Stock: 10})
	uc := newUseCase(products, &memOrderRepo{}, orders.Config{})
	placeOne(t, uc, "ana@x.com")

	// La propia dueña ve su historial.
	list, err := uc.ByCustomer(context.Background(), "ana@x.com", entity.RoleCliente, "ana@x.com")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	// Un admin ve el historial de cualquiera.
	list, err = uc.ByCustomer(context.Background(), "jefa@x.com", entity.RoleAdmin, "ana@x.com")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestByCustomer_OtroClienteEsForbidden(t *testing.T) {
	products := newMemProductRepo(entity.Product{ID: 1, Name: "Empanada de Pino", Price: 2500, Stock: 10})
	uc := newUseCase(products, &memOrderRepo{}, orders.Config{})
	placeOne(t, uc, "ana@x.com")

	_, err := uc.ByCustomer(context.Background(), "intruso@x.com", entity.RoleCliente, "ana@x.com")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRecent_AjustaElLimiteAlTope(t *testing.T) {
	products := newMemProductRepo(entity.Product{ID: 1, Name: "Empanada de Pino", Price: 2500, Stock: 100})
	uc := newUseCase(products, &memOrderRepo{}, orders.Config{RecentLimit: 3})
	for i := 0; i < 5; i++ {
		placeOne(t, uc, "cliente@x.com")
	}

	for _, limit := range []int{0, -1, 999} {
		list, err := uc.Recent(context.Background(), limit)
		require.NoError(t, err)
		assert.Len(t, list, 3, "limit=%d debe ajustarse al tope", limit)
	}

	list, err := uc.Recent(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestUpdateStatus_EstadoInvalido_NoTocaElAlmacen(t *testing.T) {
	ledger := &memOrderRepo{}
	uc := newUseCase(newMemProductRepo(), ledger, orders.Config{})

	err := uc.UpdateStatus(context.Background(), "cualquier-id", "volando")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	assert.Equal(t, 0, ledger.setStatusCalls, "la validación ocurre antes de consultar el almacén")
}

func TestUpdateStatus_TransicionValida(t *testing.T) {
	products := newMemProductRepo(entity.Product{ID: 1, Name: "Empanada de Pino", Price: 2500, Stock: 10})
	ledger := &memOrderRepo{}
	uc := newUseCase(products, ledger, orders.Config{})
	id := placeOne(t, uc, "ana@x.com")

	for _, status := range []string{entity.StatusPreparando, entity.StatusListo, entity.StatusEntregado} {
		require.NoError(t, uc.UpdateStatus(context.Background(), id, status))
	}

	list, err := uc.ByCustomer(context.Background(), "ana@x.com", entity.RoleCliente, "ana@x.com")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.StatusEntregado, list[0].Status)
}

func TestUpdateStatus_PedidoInexistente(t *testing.T) {
	uc := newUseCase(newMemProductRepo(), &memOrderRepo{}, orders.Config{})
	err := uc.UpdateStatus(context.Background(), "no-existe", entity.StatusListo)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
