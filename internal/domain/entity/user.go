package entity

import "time"

// Roles válidos para User.
const (
	RoleWorker     = "worker"
	RoleSupervisor = "supervisor"
	RoleManagement = "management"
	RoleAdmin      = "admin"
)

// Roles lista cerrada de roles admitidos, en el orden en que se documentan.
var Roles = []string{RoleWorker, RoleSupervisor, RoleManagement, RoleAdmin}

// IsValidRole indica si role pertenece al conjunto fijo de roles.
func IsValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// User representa una cuenta de la aplicación de asistencia.
type User struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string // bcrypt hash; vacío cuando el almacén lo excluye de la proyección
	Code         string // código de empleado asignado por un administrador
	Role         string // worker, supervisor, management, admin
	SupervisorID *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserUpdate campos reemplazables por la actualización administrativa.
// La contraseña no forma parte de ninguna actualización.
type UserUpdate struct {
	FullName     string
	Email        string
	Code         string
	Role         string
	SupervisorID *string
	UpdatedAt    time.Time
}

// SupervisorFor aplica la regla de enlace: solo un worker conserva supervisor.
// Un id vacío se trata como ausente.
func SupervisorFor(role string, supervisorID *string) *string {
	if role != RoleWorker || supervisorID == nil || *supervisorID == "" {
		return nil
	}
	id := *supervisorID
	return &id
}
