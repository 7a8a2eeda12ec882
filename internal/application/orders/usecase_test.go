package orders_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lachilena/empanaderia-api/internal/application/dto"
	"github.com/lachilena/empanaderia-api/internal/application/orders"
	"github.com/lachilena/empanaderia-api/internal/domain"
	"github.com/lachilena/empanaderia-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

// memProductRepo implementa repository.ProductRepository en memoria. El mutex
// cumple el mismo papel que el UPDATE condicional en PostgreSQL: verificación y
// descuento en un solo paso indivisible.
type memProductRepo struct {
	mu       sync.Mutex
	products map[int]*entity.Product
}

func newMemProductRepo(ps ...entity.Product) *memProductRepo {
	r := &memProductRepo{products: make(map[int]*entity.Product)}
	for i := range ps {
		p := ps[i]
		r.products[p.ID] = &p
	}
	return r
}

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id int) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) Exists(_ context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.products[id]
	return ok, nil
}

func (r *memProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return false, nil
	}
	cp := *p
	r.products[p.ID] = &cp
	return true, nil
}

func (r *memProductRepo) Delete(_ context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return false, nil
	}
	delete(r.products, id)
	return true, nil
}

func (r *memProductRepo) DecrementStock(_ context.Context, id, qty int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	return true, nil
}

func (r *memProductRepo) AdjustStock(_ context.Context, id, delta int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return false, nil
	}
	p.Stock += delta
	return true, nil
}

func (r *memProductRepo) stockOf(id int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[id].Stock
}

// memOrderRepo implementa repository.OrderRepository en memoria, append-only.
type memOrderRepo struct {
	mu             sync.Mutex
	orders         []*entity.Order
	setStatusCalls int
}

func (r *memOrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	r.orders = append(r.orders, &cp)
	return nil
}

func (r *memOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memOrderRepo) FindByCustomer(_ context.Context, email string) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Order
	for i := len(r.orders) - 1; i >= 0; i-- {
		if r.orders[i].CustomerEmail == email {
			cp := *r.orders[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memOrderRepo) ListRecent(_ context.Context, limit int) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Order
	for i := len(r.orders) - 1; i >= 0 && len(out) < limit; i-- {
		cp := *r.orders[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memOrderRepo) SetStatus(_ context.Context, id, status string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setStatusCalls++
	for _, o := range r.orders {
		if o.ID == id {
			o.Status = status
			return true, nil
		}
	}
	return false, nil
}

func (r *memOrderRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func newUseCase(products *memProductRepo, ledger *memOrderRepo, cfg orders.Config) *orders.UseCase {
	return orders.NewUseCase(products, ledger, cfg, nil)
}

func itemReq(id, price, qty int) dto.OrderItemRequest {
	return dto.OrderItemRequest{ProductID: id, Name: "Empanada de Pino", Price: price, Quantity: qty}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests PlaceOrder — pipeline básico
// ──────────────────────────────────────────────────────────────────────────────

func TestPlaceOrder_CompraExitosaDescuentaStock(t *testing.T) {
	products := newMemProductRepo(entity.Product{ID: 1, Name: "Empanada de Pino", Price: 2500, Stock: 50})
	ledger := &memOrderRepo{}
	uc := newUseCase(products, ledger, orders.Config{})

	out, err := uc.PlaceOrder(context.Background(), "cliente@x.com", dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{itemReq(1, 2500, 3)},
		Total: 7500,
	})
	require.NoError(t, err)
	assert.Equal(t, "confirmado", out.Status)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, 47, products.stockOf(1), "el stock debe quedar en 50-3")

	pedidos, err := ledger.FindByCustomer(context.Background(), "cliente@x.com")
	require.NoError(t, err)
	require.Len(t, pedidos, 1)
	assert.Equal(t, 7500, pedidos[0].Total)
	assert.Equal(t, entity.StatusRecibido, pedidos[0].Status, "el pedido persiste como recibido")
}

func TestPlaceOrder_ProductoInexistente_NoMutaNada(t *testing.T) {
	products := newMemProductRepo(entity.Product{ID: 1, Name: "Empanada de Pino", Price: 2500, Stock: 50})
	ledger := &memOrderRepo{}
	uc := newUseCase(products, ledger, orders.Config{})

	// El ítem 1 existe, el 99 no: la pasada de existencia debe abortar
	// ANTES de descontar nada.
	_, err := uc.PlaceOrder(context.Background(), "cliente@x.com", dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{itemReq(1, 2500, 3), itemReq(99, 1000, 1)},
		Total: 8500,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var itemErr *orders.ItemError
	require.ErrorAs(t, err, &itemErr)
	assert.Equal(t, 99, itemErr.ProductID, "el error debe nombrar el ítem ausente")

	assert.Equal(t, 50, products.stockOf(1), "sin mutación de stock para ningún ítem del lote")
	assert.Equal(t, 0, ledger.count(), "sin pedido registrado")
}

func TestPlaceOrder_StockInsuficiente_EsConflicto(t *testing.T) {
	products := newMemProductRepo(entity.Product{ID: 3, Name: "Camarón Queso", Price: 2800, Stock: 0})
	ledger := &memOrderRepo{}
	uc := newUseCase(products, ledger, orders.Config{})

	_, err := uc.PlaceOrder(context.Background(), "cliente@x.com", dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{itemReq(3, 2800, 1)},
		Total: 2800,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"sin stock es conflicto, distinto de no-encontrado")
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, ledger.count())
}

func TestPlaceOrder_IdentidadDelToken_SobreescribeLaDelCuerpo(t *testing.T) {
	products := newMemProductRepo(entity.Product{ID: 1, Name: "Empanada de Pino", Price: 2500, Stock: 10})
	ledger := &memOrderRepo{}
	uc := newUseCase(products, ledger, orders.Config{})

	_, err := uc.PlaceOrder(context.Background(), "victima@x.com", dto.CreateOrderRequest{
		CustomerEmail: "atacante@x.com", // debe ser ignorado
		Items:         []dto.OrderItemRequest{itemReq(1, 2500, 1)},
		Total:         2500,
	})
	require.NoError(t, err)

	pedidos, _ := ledger.FindByCustomer(context.Background(), "victima@x.com")
	require.Len(t, pedidos, 1, "el pedido queda a nombre de la identidad autenticada")
	ajenos, _ := ledger.FindByCustomer(context.Background(), "atacante@x.com")
	assert.Empty(t, ajenos)
}

func TestPlaceOrder_CantidadNoPositiva_RechazadaAntesDeTocarStock(t *testing.T) {
	products := newMemProductRepo(entity.Product{ID: 1, Name: "Empanada de Pino", Price: 2500, Stock: 10})
	ledger := &memOrderRepo{}
	uc := newUseCase(products, ledger, orders.Config{})

	for _, qty := range []int{0, -2} {
		_, err := uc.PlaceOrder(context.Background(), "cliente@x.com", dto.CreateOrderRequest{
			Items: []dto.OrderItemRequest{itemReq(1, 2500, qty)},
			Total: 0,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Equal(t, 10, products.stockOf(1))
}

func TestPlaceOrder_SinItems_EsValidacion(t *testing.T) {
	uc := newUseCase(newMemProductRepo(), &memOrderRepo{}, orders.Config{})
	_, err := uc.PlaceOrder(context.Background(), "cliente@x.com", dto.CreateOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests PlaceOrder — flags configurables
// ──────────────────────────────────────────────────────────────────────────────

// Comportamiento heredado: el conflicto en el segundo ítem NO revierte el
// descuento del primero.
func TestPlaceOrder_SinCompensacion_DescuentoPrevioQueda(t *testing.T) {
	products := newMemProductRepo(
		entity.Product{ID: 1, Name: "Empanada de Pino", Price: 2500, Stock: 10},
		entity.Product{ID: 2, Name: "Empanada de Queso", Price: 2000, Stock: 0},
	)
	uc := newUseCase(products, &memOrderRepo{}, orders.Config{CompensateOnFailure: false})

	_, err := uc.PlaceOrder(context.Background(), "cliente@x.com", dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{itemReq(1, 2500, 2), itemReq(2, 2000, 1)},
		Total: 7000,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 8, products.stockOf(1), "el descuento del ítem 1 no se revierte")
}

func TestPlaceOrder_ConCompensacion_ReincrementaLosPrevios(t *testing.T) {
	products := newMemProductRepo(
		entity.Product{ID: 1, Name: "Empanada de Pino", Price: 2500, Stock: 10},
		entity.Product{ID: 2, Name: "Empanada de Queso", Price: 2000, Stock: 0},
	)
	uc := newUseCase(products, &memOrderRepo{}, orders.Config{CompensateOnFailure: true})

	_, err := uc.PlaceOrder(context.Background(), "cliente@x.com", dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{itemReq(1, 2500, 2), itemReq(2, 2000, 1)},
		Total: 7000,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 10, products.stockOf(1), "con compensación el stock vuelve al valor inicial")
}

func TestPlaceOrder_VerifyTotal_RechazaTotalForjado(t *testing.T) {
	products := newMemProductRepo(entity.Product{ID: 1, Name: "Empanada de Pino", Price: 2500, Stock: 10})
	uc := newUseCase(products, &memOrderRepo{}, orders.Config{VerifyTotal: true})

	_, err := uc.PlaceOrder(context.Background(), "cliente@x.com", dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{itemReq(1, 2500, 2)},
		Total: 1, // debería ser 5000
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 10, products.stockOf(1), "rechazo antes de cualquier mutación")

	// El total correcto pasa.
	_, err = uc.PlaceOrder(context.Background(), "cliente@x.com", dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{itemReq(1, 2500, 2)},
		Total: 5000,
	})
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests PlaceOrder — concurrencia
// ──────────────────────────────────────────────────────────────────────────────

// Ante stock=1 y dos compradores concurrentes, exactamente uno gana; el otro
// recibe conflicto. Nunca ganan ambos.
func TestPlaceOrder_UltimaUnidad_ExactamenteUnGanador(t *testing.T) {
	for i := 0; i < 50; i++ {
		products := newMemProductRepo(entity.Product{ID: 1, Name: "Empanada de Pino", Price: 2500, Stock: 1})
		ledger := &memOrderRepo{}
		uc := newUseCase(products, ledger, orders.Config{})

		errs := make(chan error, 2)
		var wg sync.WaitGroup
		for _, buyer := range []string{"a@x.com", "b@x.com"} {
			wg.Add(1)
			go func(email string) {
				defer wg.Done()
				_, err := uc.PlaceOrder(context.Background(), email, dto.CreateOrderRequest{
					Items: []dto.OrderItemRequest{itemReq(1, 2500, 1)},
					Total: 2500,
				})
				errs <- err
			}(buyer)
		}
		wg.Wait()
		close(errs)

		var wins, conflicts int
		for err := range errs {
			if err == nil {
				wins++
			} else {
				require.ErrorIs(t, err, domain.ErrInsufficientStock)
				conflicts++
			}
		}
		require.Equal(t, 1, wins, "exactamente un comprador gana la última unidad")
		require.Equal(t, 1, conflicts)
		require.Equal(t, 0, products.stockOf(1))
		require.Equal(t, 1, ledger.count())
	}
}

// Con stock S y N compradores concurrentes, nunca se venden más de S unidades
// y el stock final nunca es negativo.
func TestPlaceOrder_Concurrencia_NuncaSobrevende(t *testing.T) {
	const (
		initialStock = 7
		buyers       = 30
	)
	products := newMemProductRepo(entity.Product{ID: 1, Name: "Empanada de Pino", Price: 2500, Stock: initialStock})
	ledger := &memOrderRepo{}
	uc := newUseCase(products, ledger, orders.Config{})

	var wg sync.WaitGroup
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = uc.PlaceOrder(context.Background(), "cliente@x.com", dto.CreateOrderRequest{
				Items: []dto.OrderItemRequest{itemReq(1, 2500, 1)},
				Total: 2500,
			})
		}()
	}
	wg.Wait()

	final := products.stockOf(1)
	assert.GreaterOrEqual(t, final, 0, "el stock nunca queda negativo")
	assert.Equal(t, initialStock, ledger.count()+final,
		"unidades vendidas + stock restante = stock inicial")
}
