package orders

import (
	"context"

	"github.com/lachilena/empanaderia-api/internal/application/dto"
	"github.com/lachilena/empanaderia-api/internal/domain"
	"github.com/lachilena/empanaderia-api/internal/domain/entity"
)

// ByCustomer devuelve los pedidos de un cliente. requesterEmail debe ser el
// propio cliente o un admin; cualquier otro caso es ErrForbidden.
func (uc *UseCase) ByCustomer(ctx context.Context, requesterEmail, requesterRole, email string) ([]dto.OrderResponse, error) {
	if requesterEmail != email && requesterRole != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	list, err := uc.orderRepo.FindByCustomer(ctx, email)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(list), nil
}

// Recent devuelve los pedidos más nuevos primero para administración.
// limit <= 0 o mayor al tope configurado se ajusta al tope.
func (uc *UseCase) Recent(ctx context.Context, limit int) ([]dto.OrderResponse, error) {
	if limit <= 0 || limit > uc.cfg.RecentLimit {
		limit = uc.cfg.RecentLimit
	}
	list, err := uc.orderRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(list), nil
}

// UpdateStatus cambia el estado de un pedido. El valor se valida contra el enum
// ANTES de tocar el almacén; un pedido inexistente devuelve ErrNotFound.
func (uc *UseCase) UpdateStatus(ctx context.Context, orderID, status string) error {
	if !entity.ValidStatus(status) {
		return domain.ErrInvalidStatus
	}
	matched, err := uc.orderRepo.SetStatus(ctx, orderID, status)
	if err != nil {
		return err
	}
	if !matched {
		return domain.ErrNotFound
	}
	if uc.log != nil {
		uc.log.Info().Str("order_id", orderID).Str("status", status).Msg("estado de pedido actualizado")
	}
	return nil
}

func toOrderResponses(list []*entity.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderResponse(o))
	}
	return out
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = dto.OrderItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		}
	}
	return dto.OrderResponse{
		ID:            o.ID,
		CustomerEmail: o.CustomerEmail,
		Items:         items,
		Total:         o.Total,
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
	}
}
