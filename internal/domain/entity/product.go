package entity

import "time"

// Product representa un producto del catálogo. El ID es el identificador
// numérico asignado por el negocio (no un serial de la base de datos).
// Stock nunca baja de cero: el descuento se hace con un UPDATE condicional
// en la capa de persistencia.
type Product struct {
	ID        int
	Name      string
	Category  string // horno, frita, bebida
	Price     int    // CLP, sin decimales
	Stock     int
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
