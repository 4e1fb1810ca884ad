package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/attendance-api/internal/application/dto"
	"github.com/jhoicas/attendance-api/internal/domain"
	"github.com/jhoicas/attendance-api/internal/domain/entity"
	"github.com/jhoicas/attendance-api/internal/domain/repository"
	"github.com/jhoicas/attendance-api/pkg/jwt"
	"github.com/jhoicas/attendance-api/pkg/password"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	jwtCfg     JWTConfig
	bcryptCost int
	now        func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, bcryptCost int) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, bcryptCost: bcryptCost, now: time.Now}
}

// RegisterUser crea una cuenta worker sin supervisor. Devuelve ErrDuplicateAccount si el email ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) error {
	existing, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrDuplicateAccount
	}
	hash, err := hashPassword(in.Password, uc.bcryptCost)
	if err != nil {
		return err
	}
	now := uc.now().UTC()
	user := &entity.User{
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: hash,
		Code:         in.Code,
		Role:         entity.RoleWorker,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return uc.userRepo.Create(ctx, user)
}

// Login verifica email/password y genera el JWT. Email desconocido y contraseña
// incorrecta devuelven el mismo ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	ok, err := password.Matches(user.PasswordHash, in.Password)
	if err != nil {
		return nil, fmt.Errorf("comparar hash: %w", err)
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	ttl := time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute
	token, err := jwt.GenerateAt(uc.jwtCfg.Secret, user.ID, uc.now(), ttl)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Message: "Login successful", Token: token}, nil
}

func hashPassword(plain string, cost int) (string, error) {
	hash, err := password.Hash(plain, cost)
	if errors.Is(err, password.ErrTooLong) {
		return "", &domain.FieldError{Field: "password", Reason: "must be at most 72 bytes"}
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}
