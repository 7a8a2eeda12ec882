package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lachilena/empanaderia-api/internal/application/dto"
	"github.com/lachilena/empanaderia-api/internal/domain"
	"github.com/lachilena/empanaderia-api/internal/domain/entity"
	"github.com/lachilena/empanaderia-api/internal/domain/repository"
	"github.com/lachilena/empanaderia-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación: registro y login.
type UseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	// adminEmailHeuristic asigna rol admin cuando el email contiene "admin"
	// (comportamiento heredado, apagado por defecto; ver config).
	adminEmailHeuristic bool
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, adminEmailHeuristic bool) *UseCase {
	return &UseCase{userRepo: userRepo, jwtCfg: jwtCfg, adminEmailHeuristic: adminEmailHeuristic}
}

// Register crea un usuario: hashea el password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := in.Name
	if name == "" {
		name = in.Email
	}
	role := entity.RoleCliente
	if uc.adminEmailHeuristic && strings.Contains(in.Email, "admin") {
		role = entity.RoleAdmin
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return &dto.UserResponse{Email: user.Email, Name: user.Name, Role: user.Role}, nil
}

// Login verifica identifier (email o nombre) + password, genera JWT y retorna
// token + usuario. Credenciales malas devuelven siempre ErrUnauthorized, sin
// distinguir usuario inexistente de password incorrecto.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByIdentifier(ctx, in.Identifier)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.Email, user.Name, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        dto.UserResponse{Email: user.Email, Name: user.Name, Role: user.Role},
	}, nil
}
