package dto

// CreateProductRequest entrada para crear un producto del catálogo.
// El id lo asigna el negocio, no la base de datos.
type CreateProductRequest struct {
	ID       int    `json:"id" validate:"required,min=1"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Category string `json:"category" validate:"required"`
	Price    int    `json:"price" validate:"required,min=1"`
	Stock    int    `json:"stock" validate:"min=0"`
	Image    string `json:"image"`
}

// UpdateProductRequest entrada para actualizar un producto existente.
type UpdateProductRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Category string `json:"category" validate:"required"`
	Price    int    `json:"price" validate:"required,min=1"`
	Stock    int    `json:"stock" validate:"min=0"`
	Image    string `json:"image"`
}

// RestockRequest entrada para reposición de stock (aditiva).
type RestockRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

// ProductResponse salida de un producto del catálogo.
type ProductResponse struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    int    `json:"price"`
	Stock    int    `json:"stock"`
	Image    string `json:"image"`
}
