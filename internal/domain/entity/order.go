package entity

import "time"

// Estados válidos de un pedido. El flujo es recibido → preparando → listo → entregado,
// aunque solo se valida pertenencia al conjunto, no la secuencia.
const (
	StatusRecibido   = "recibido"
	StatusPreparando = "preparando"
	StatusListo      = "listo"
	StatusEntregado  = "entregado"
)

// ValidStatus indica si s es uno de los estados permitidos para un pedido.
func ValidStatus(s string) bool {
	switch s {
	case StatusRecibido, StatusPreparando, StatusListo, StatusEntregado:
		return true
	}
	return false
}

// OrderItem es una línea de pedido: snapshot por valor del producto al momento
// de comprar. No mantiene referencia viva al catálogo.
type OrderItem struct {
	ProductID int
	Name      string
	Price     int // CLP por unidad al momento del pedido
	Quantity  int
}

// Order es un pedido confirmado. Inmutable salvo Status, que solo cambia por
// la operación de administración de cambio de estado.
type Order struct {
	ID            string // UUID asignado por el sistema
	CustomerEmail string
	Items         []OrderItem
	Total         int
	Status        string
	CreatedAt     time.Time
}
