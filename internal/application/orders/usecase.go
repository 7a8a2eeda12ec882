package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lachilena/empanaderia-api/internal/application/dto"
	"github.com/lachilena/empanaderia-api/internal/domain"
	"github.com/lachilena/empanaderia-api/internal/domain/entity"
	"github.com/lachilena/empanaderia-api/internal/domain/repository"
	"github.com/lachilena/empanaderia-api/pkg/logger"
)

// Config comportamiento configurable del núcleo de pedidos. Los dos flags
// existen porque el comportamiento heredado (sin rollback entre ítems, total
// confiado al cliente) es una decisión explícita, no un accidente.
type Config struct {
	// CompensateOnFailure revierte los descuentos ya aplicados dentro del mismo
	// pedido cuando un ítem posterior pierde su descuento condicional. Apagado,
	// el pedido falla dejando los descuentos previos aplicados (comportamiento
	// original). La garantía por ítem no cambia en ningún caso.
	CompensateOnFailure bool
	// VerifyTotal recalcula Σ precio×cantidad y rechaza el pedido si el total
	// enviado por el cliente no coincide, antes de tocar el inventario.
	VerifyTotal bool
	// RecentLimit tope del listado de pedidos recientes para administración.
	RecentLimit int
}

// UseCase orquesta la creación de pedidos: validación de existencia, descuento
// atómico de stock por ítem y registro en el libro de pedidos.
type UseCase struct {
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	cfg         Config
	log         *logger.Logger
}

// NewUseCase construye el caso de uso de pedidos.
func NewUseCase(productRepo repository.ProductRepository, orderRepo repository.OrderRepository, cfg Config, log *logger.Logger) *UseCase {
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = 100
	}
	return &UseCase{productRepo: productRepo, orderRepo: orderRepo, cfg: cfg, log: log}
}

// PlaceOrder ejecuta el pipeline de compra en tres pasadas:
//
//  1. Existencia: todo product_id debe existir; el primero ausente aborta sin
//     haber mutado nada.
//  2. Descuento atómico: por ítem, un solo UPDATE condicional en el almacén
//     ("descontar qty solo si stock >= qty"). Si no coincide ninguna fila el
//     ítem perdió la carrera y se devuelve conflicto, distinto de no-encontrado.
//  3. Registro: se persiste el pedido con el email del llamador autenticado
//     (callerEmail), nunca el customer_email del cuerpo.
//
// No hay transacción entre ítems: un conflicto en el ítem N no revierte los
// descuentos de 1..N-1 salvo que CompensateOnFailure esté activo.
func (uc *UseCase) PlaceOrder(ctx context.Context, callerEmail string, in dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	if callerEmail == "" {
		return nil, domain.ErrUnauthorized
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: el pedido no tiene ítems", domain.ErrInvalidInput)
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: cantidad debe ser positiva (producto %d)", domain.ErrInvalidInput, it.ProductID)
		}
	}
	if uc.cfg.VerifyTotal {
		var sum int
		for _, it := range in.Items {
			sum += it.Price * it.Quantity
		}
		if sum != in.Total {
			return nil, fmt.Errorf("%w: total %d no coincide con el calculado %d", domain.ErrInvalidInput, in.Total, sum)
		}
	}

	// 1. Pasada de existencia: fail-fast, sin efectos.
	for _, it := range in.Items {
		ok, err := uc.productRepo.Exists(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, notFoundItem(it.ProductID, it.Name)
		}
	}

	// 2. Pasada de descuento atómico, ítem por ítem.
	decremented := make([]dto.OrderItemRequest, 0, len(in.Items))
	for _, it := range in.Items {
		matched, err := uc.productRepo.DecrementStock(ctx, it.ProductID, it.Quantity)
		if err != nil {
			uc.compensate(ctx, decremented)
			return nil, err
		}
		if !matched {
			uc.compensate(ctx, decremented)
			return nil, conflictItem(it.ProductID, it.Name)
		}
		decremented = append(decremented, it)
	}

	// 3. Registro en el libro de pedidos.
	items := make([]entity.OrderItem, len(in.Items))
	for i, it := range in.Items {
		items[i] = entity.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		}
	}
	order := &entity.Order{
		ID:            uuid.New().String(),
		CustomerEmail: callerEmail, // identidad verificada, nunca la del cuerpo
		Items:         items,
		Total:         in.Total,
		Status:        entity.StatusRecibido,
		CreatedAt:     time.Now(),
	}
	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("registrar pedido: %w", err)
	}

	if uc.log != nil {
		uc.log.Info().
			Str("order_id", order.ID).
			Str("customer", callerEmail).
			Int("items", len(items)).
			Int("total", in.Total).
			Msg("pedido registrado")
	}
	return &dto.CreateOrderResponse{ID: order.ID, Status: "confirmado"}, nil
}

// compensate reincrementa el stock de los ítems ya descontados. Solo actúa con
// CompensateOnFailure activo. Un fallo al compensar se registra y se continúa:
// el pedido ya está perdido y el stock restante sigue siendo ≥ 0.
func (uc *UseCase) compensate(ctx context.Context, decremented []dto.OrderItemRequest) {
	if !uc.cfg.CompensateOnFailure {
		return
	}
	for _, it := range decremented {
		if _, err := uc.productRepo.AdjustStock(ctx, it.ProductID, it.Quantity); err != nil && uc.log != nil {
			uc.log.Error().Err(err).
				Int("product_id", it.ProductID).
				Int("quantity", it.Quantity).
				Msg("compensación de stock falló")
		}
	}
}
