package dto

import (
	"time"

	"github.com/jhoicas/attendance-api/pkg/normalize"
)

// RegisterRequest entrada para auto-registro. El rol no se recibe: siempre worker.
type RegisterRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Code     string `json:"code" validate:"required"`
}

// Normalize limpia espacios y unifica email antes de validar.
func (r *RegisterRequest) Normalize() {
	r.FullName = normalize.Text(r.FullName)
	r.Email = normalize.Email(r.Email)
	r.Code = normalize.Text(r.Code)
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Normalize unifica el email igual que en el registro.
func (r *LoginRequest) Normalize() {
	r.Email = normalize.Email(r.Email)
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// CreateUserRequest entrada para alta administrativa (password en texto, se hashea en use case).
type CreateUserRequest struct {
	FullName     string  `json:"fullName" validate:"required"`
	Email        string  `json:"email" validate:"required"`
	Password     string  `json:"password" validate:"required"`
	Code         string  `json:"code" validate:"required"`
	Role         string  `json:"role" validate:"required,oneof=worker supervisor management admin"`
	SupervisorID *string `json:"supervisor_id"`
}

// Normalize limpia los campos de texto antes de validar.
func (r *CreateUserRequest) Normalize() {
	r.FullName = normalize.Text(r.FullName)
	r.Email = normalize.Email(r.Email)
	r.Code = normalize.Text(r.Code)
	r.Role = normalize.Text(r.Role)
	r.SupervisorID = trimmedID(r.SupervisorID)
}

// UpdateUserRequest reemplazo completo de los campos mutables (sin password).
type UpdateUserRequest struct {
	FullName     string  `json:"fullName" validate:"required"`
	Email        string  `json:"email" validate:"required"`
	Code         string  `json:"code" validate:"required"`
	Role         string  `json:"role" validate:"required,oneof=worker supervisor management admin"`
	SupervisorID *string `json:"supervisor_id"`
}

// Normalize limpia los campos de texto antes de validar.
func (r *UpdateUserRequest) Normalize() {
	r.FullName = normalize.Text(r.FullName)
	r.Email = normalize.Email(r.Email)
	r.Code = normalize.Text(r.Code)
	r.Role = normalize.Text(r.Role)
	r.SupervisorID = trimmedID(r.SupervisorID)
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Code         string    `json:"code"`
	Role         string    `json:"role"`
	SupervisorID *string   `json:"supervisor_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserEnvelope respuesta de alta y actualización: mensaje más el usuario.
type UserEnvelope struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

func trimmedID(id *string) *string {
	if id == nil {
		return nil
	}
	s := normalize.Text(*id)
	if s == "" {
		return nil
	}
	return &s
}
