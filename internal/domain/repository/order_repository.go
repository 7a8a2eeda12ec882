package repository

import (
	"context"

	"github.com/lachilena/empanaderia-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order (DIP).
// El libro de pedidos es append-only: los pedidos nunca se borran y solo
// Status es mutable (vía SetStatus).
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	FindByCustomer(ctx context.Context, email string) ([]*entity.Order, error)
	// ListRecent devuelve los pedidos más nuevos primero, hasta limit.
	ListRecent(ctx context.Context, limit int) ([]*entity.Order, error)
	// SetStatus cambia el estado; matched=false si el pedido no existe.
	// La validación del valor de estado ocurre antes, en el caso de uso.
	SetStatus(ctx context.Context, id, status string) (matched bool, err error)
}
