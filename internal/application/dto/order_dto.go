package dto

import "time"

// OrderItemRequest línea de pedido enviada por el cliente. Name y Price son el
// snapshot del catálogo al momento de armar el carrito.
type OrderItemRequest struct {
	ProductID int    `json:"product_id" validate:"required,min=1"`
	Name      string `json:"name"`
	Price     int    `json:"price" validate:"min=1"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// CreateOrderRequest entrada para crear un pedido. CustomerEmail se acepta en el
// cuerpo por compatibilidad pero SIEMPRE se reemplaza por la identidad del token.
type CreateOrderRequest struct {
	CustomerEmail string             `json:"customer_email"`
	Items         []OrderItemRequest `json:"items" validate:"required,min=1"`
	Total         int                `json:"total"`
}

// CreateOrderResponse confirmación de pedido creado.
type CreateOrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"` // siempre "confirmado" en la respuesta de creación
}

// UpdateStatusRequest entrada para el cambio de estado de un pedido (admin).
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=recibido preparando listo entregado"`
}

// OrderItemResponse línea de pedido en respuestas.
type OrderItemResponse struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Quantity  int    `json:"quantity"`
}

// OrderResponse proyección pública de un pedido: el identificador interno del
// almacén se expone una sola vez como campo id estable, nunca ad hoc por ruta.
type OrderResponse struct {
	ID            string              `json:"id"`
	CustomerEmail string              `json:"customer_email"`
	Items         []OrderItemResponse `json:"items"`
	Total         int                 `json:"total"`
	Status        string              `json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
}
