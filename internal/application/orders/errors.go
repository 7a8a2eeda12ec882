package orders

import (
	"fmt"

	"github.com/lachilena/empanaderia-api/internal/domain"
)

// ItemError señala qué línea del pedido falló y por qué. Envuelve un error de
// dominio para que el handler distinga "no existe" (reintentar no ayuda) de
// "perdió la carrera por stock" (reintentar puede ayudar).
type ItemError struct {
	ProductID int
	Name      string
	Err       error
}

func (e *ItemError) Error() string {
	name := e.Name
	if name == "" {
		name = fmt.Sprintf("producto %d", e.ProductID)
	}
	return fmt.Sprintf("%s: %v", name, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }

func notFoundItem(productID int, name string) error {
	return &ItemError{ProductID: productID, Name: name, Err: domain.ErrNotFound}
}

func conflictItem(productID int, name string) error {
	return &ItemError{ProductID: productID, Name: name, Err: domain.ErrInsufficientStock}
}
