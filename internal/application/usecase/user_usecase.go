package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/attendance-api/internal/application/dto"
	"github.com/jhoicas/attendance-api/internal/domain"
	"github.com/jhoicas/attendance-api/internal/domain/entity"
	"github.com/jhoicas/attendance-api/internal/domain/repository"
	"github.com/jhoicas/attendance-api/pkg/password"
)

// UserUseCase gestión administrativa de usuarios (CRUD completo).
type UserUseCase struct {
	repo       repository.UserRepository
	bcryptCost int
	now        func() time.Time
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, bcryptCost int) *UserUseCase {
	return &UserUseCase{repo: repo, bcryptCost: bcryptCost, now: time.Now}
}

// Create da de alta un usuario. El supervisor solo se conserva para workers.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	existing, err := uc.repo.FindByEmailOrCode(ctx, in.Email, in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateAccount
	}
	hash, err := password.Hash(in.Password, uc.bcryptCost)
	if errors.Is(err, password.ErrTooLong) {
		return nil, &domain.FieldError{Field: "password", Reason: "must be at most 72 bytes"}
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := uc.now().UTC()
	user := &entity.User{
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: hash,
		Code:         in.Code,
		Role:         in.Role,
		SupervisorID: entity.SupervisorFor(in.Role, in.SupervisorID),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// List devuelve todos los usuarios.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return items, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// Update reemplaza fullName, email, code, role y supervisor_id.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	upd := entity.UserUpdate{
		FullName:     in.FullName,
		Email:        in.Email,
		Code:         in.Code,
		Role:         in.Role,
		SupervisorID: entity.SupervisorFor(in.Role, in.SupervisorID),
		UpdatedAt:    uc.now().UTC(),
	}
	user, err := uc.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// Delete elimina un usuario por ID.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrUserNotFound
	}
	return nil
}

// Role devuelve el rol actual del usuario; "" si ya no existe. Lo usa el middleware RBAC.
func (uc *UserUseCase) Role(ctx context.Context, id string) (string, error) {
	user, err := uc.repo.FindByID(ctx, id)
	if err != nil || user == nil {
		return "", err
	}
	return user.Role, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:           u.ID,
		FullName:     u.FullName,
		Email:        u.Email,
		Code:         u.Code,
		Role:         u.Role,
		SupervisorID: u.SupervisorID,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
