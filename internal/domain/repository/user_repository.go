package repository

import (
	"context"

	"github.com/jhoicas/attendance-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
//
// Las búsquedas devuelven (nil, nil) cuando no hay coincidencia. Un id con formato
// que el almacén no reconoce se trata igual que un id inexistente.
type UserRepository interface {
	// Create persiste el usuario y asigna user.ID. Devuelve domain.ErrDuplicateAccount
	// si el email o el código ya existen.
	Create(ctx context.Context, user *entity.User) error
	// FindByID no incluye el hash de la contraseña.
	FindByID(ctx context.Context, id string) (*entity.User, error)
	// FindByEmail incluye el hash (lo necesita el login).
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// FindByEmailOrCode devuelve cualquier usuario cuyo email o código coincida.
	FindByEmailOrCode(ctx context.Context, email, code string) (*entity.User, error)
	// List devuelve todos los usuarios sin el hash de la contraseña.
	List(ctx context.Context) ([]*entity.User, error)
	// Update reemplaza los campos mutables y devuelve el usuario resultante sin hash.
	Update(ctx context.Context, id string, upd entity.UserUpdate) (*entity.User, error)
	// Delete devuelve true si se eliminó un registro.
	Delete(ctx context.Context, id string) (bool, error)
}
