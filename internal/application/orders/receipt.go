package orders

import (
	"context"

	"github.com/lachilena/empanaderia-api/internal/domain"
	"github.com/lachilena/empanaderia-api/internal/domain/entity"
	"github.com/lachilena/empanaderia-api/internal/domain/repository"
)

// ReceiptGenerator es el contrato mínimo para producir la boleta en PDF de un
// pedido. Lo implementa infrastructure/pdf; la interfaz evita acoplar el caso
// de uso a maroto.
type ReceiptGenerator interface {
	Generate(order *entity.Order) ([]byte, error)
}

// ReceiptUseCase genera la boleta PDF de un pedido, con control de acceso
// dueño-o-admin.
type ReceiptUseCase struct {
	orderRepo repository.OrderRepository
	generator ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso de boletas.
func NewReceiptUseCase(orderRepo repository.OrderRepository, generator ReceiptGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{orderRepo: orderRepo, generator: generator}
}

// Generate devuelve el PDF de la boleta del pedido orderID. Solo el cliente
// dueño del pedido o un admin pueden obtenerla.
func (uc *ReceiptUseCase) Generate(ctx context.Context, requesterEmail, requesterRole, orderID string) ([]byte, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.CustomerEmail != requesterEmail && requesterRole != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return uc.generator.Generate(order)
}
