package repository

import (
	"context"

	"github.com/lachilena/empanaderia-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
//
// DecrementStock es la única operación sensible a concurrencia del sistema: debe
// ejecutarse como un solo paso indivisible en el almacén ("descontar qty solo si
// stock >= qty"), nunca como lectura + escritura en la aplicación.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int) (*entity.Product, error)
	Exists(ctx context.Context, id int) (bool, error)
	List(ctx context.Context) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) (matched bool, err error)
	Delete(ctx context.Context, id int) (matched bool, err error)
	// DecrementStock descuenta qty de forma atómica. matched=false significa que
	// el producto no tenía stock suficiente en el instante del intento (o no existe).
	DecrementStock(ctx context.Context, id, qty int) (matched bool, err error)
	// AdjustStock suma delta al stock (reposición de admin; delta puede ser negativo).
	AdjustStock(ctx context.Context, id, delta int) (matched bool, err error)
}
