package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jhoicas/attendance-api/internal/domain"
	"github.com/jhoicas/attendance-api/internal/domain/entity"
	"github.com/jhoicas/attendance-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo almacén en proceso para desarrollo local y tests. Aplica las mismas
// restricciones de unicidad (email, code) y de rol que los almacenes persistentes.
type UserRepo struct {
	mu    sync.RWMutex
	byID  map[string]*entity.User
	order []string // orden de inserción para List
}

// NewUserRepository crea un almacén vacío.
func NewUserRepository() *UserRepo {
	return &UserRepo{byID: make(map[string]*entity.User)}
}

// Create persiste una copia del usuario y asigna el ID.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	if !entity.IsValidRole(user.Role) {
		return &domain.FieldError{Field: "role", Reason: "is not a valid role"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conflictLocked("", user.Email, user.Code) {
		return domain.ErrDuplicateAccount
	}
	user.ID = uuid.NewString()
	r.byID[user.ID] = clone(user, true)
	r.order = append(r.order, user.ID)
	return nil
}

// FindByID obtiene un usuario por ID (sin hash).
func (r *UserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return clone(u, false), nil
}

// FindByEmail obtiene un usuario por email (con hash).
func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		if u := r.byID[id]; u.Email == email {
			return clone(u, true), nil
		}
	}
	return nil, nil
}

// FindByEmailOrCode devuelve el primer usuario con ese email o ese código.
func (r *UserRepo) FindByEmailOrCode(_ context.Context, email, code string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		if u := r.byID[id]; u.Email == email || u.Code == code {
			return clone(u, true), nil
		}
	}
	return nil, nil
}

// List devuelve todos los usuarios en orden de inserción (sin hash).
func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*entity.User, 0, len(r.order))
	for _, id := range r.order {
		list = append(list, clone(r.byID[id], false))
	}
	return list, nil
}

// Update reemplaza los campos mutables.
func (r *UserRepo) Update(_ context.Context, id string, upd entity.UserUpdate) (*entity.User, error) {
	if !entity.IsValidRole(upd.Role) {
		return nil, &domain.FieldError{Field: "role", Reason: "is not a valid role"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	if r.conflictLocked(id, upd.Email, upd.Code) {
		return nil, domain.ErrDuplicateAccount
	}
	u.FullName = upd.FullName
	u.Email = upd.Email
	u.Code = upd.Code
	u.Role = upd.Role
	u.SupervisorID = copyID(upd.SupervisorID)
	u.UpdatedAt = upd.UpdatedAt
	return clone(u, false), nil
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// Len número de usuarios almacenados.
func (r *UserRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// conflictLocked indica si otro usuario (distinto de exceptID) ya usa email o code.
func (r *UserRepo) conflictLocked(exceptID, email, code string) bool {
	for id, u := range r.byID {
		if id == exceptID {
			continue
		}
		if u.Email == email || u.Code == code {
			return true
		}
	}
	return false
}

func clone(u *entity.User, withHash bool) *entity.User {
	c := *u
	c.SupervisorID = copyID(u.SupervisorID)
	if !withHash {
		c.PasswordHash = ""
	}
	return &c
}

func copyID(id *string) *string {
	if id == nil {
		return nil
	}
	s := *id
	return &s
}
