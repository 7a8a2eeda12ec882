package usecase

import (
	"context"
	"time"

	"github.com/lachilena/empanaderia-api/internal/application/dto"
	"github.com/lachilena/empanaderia-api/internal/domain"
	"github.com/lachilena/empanaderia-api/internal/domain/entity"
	"github.com/lachilena/empanaderia-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para el catálogo. El descuento de stock por
// ventas NO pasa por aquí: es la operación atómica del caso de uso de pedidos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto con el id asignado por el negocio.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.ID <= 0 || in.Price <= 0 || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.Exists(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if existing {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:        in.ID,
		Name:      in.Name,
		Category:  in.Category,
		Price:     in.Price,
		Stock:     in.Stock,
		Image:     in.Image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID. Devuelve nil, nil si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// List devuelve el catálogo completo.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// Update actualiza un producto existente. Devuelve ErrNotFound si no existe.
func (uc *ProductUseCase) Update(ctx context.Context, id int, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Price <= 0 || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	product := &entity.Product{
		ID:        id,
		Name:      in.Name,
		Category:  in.Category,
		Price:     in.Price,
		Stock:     in.Stock,
		Image:     in.Image,
		UpdatedAt: time.Now(),
	}
	matched, err := uc.repo.Update(ctx, product)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto. Devuelve ErrNotFound si no existe.
func (uc *ProductUseCase) Delete(ctx context.Context, id int) error {
	matched, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !matched {
		return domain.ErrNotFound
	}
	return nil
}

// Restock suma quantity al stock (reposición aditiva de admin).
// Devuelve ErrNotFound si el producto no existe.
func (uc *ProductUseCase) Restock(ctx context.Context, id, quantity int) error {
	matched, err := uc.repo.AdjustStock(ctx, id, quantity)
	if err != nil {
		return err
	}
	if !matched {
		return domain.ErrNotFound
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Price:    p.Price,
		Stock:    p.Stock,
		Image:    p.Image,
	}
}
