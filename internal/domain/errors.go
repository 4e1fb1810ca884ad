package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrDuplicateAccount   = errors.New("ya existe un usuario con ese email o código")
	ErrInvalidCredentials = errors.New("email o contraseña inválidos")
	ErrInvalidInput       = errors.New("entrada inválida")
)

// FieldError señala un campo de entrada rechazado fuera de la validación de DTOs
// (por ejemplo, un supervisor_id con formato que el almacén no acepta).
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Reason }

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *FieldError) Unwrap() error { return ErrInvalidInput }
