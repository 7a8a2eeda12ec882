package repository

import (
	"context"

	"github.com/lachilena/empanaderia-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// FindByIdentifier busca por email o por nombre visible (el login acepta ambos).
	FindByIdentifier(ctx context.Context, identifier string) (*entity.User, error)
}
