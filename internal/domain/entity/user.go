package entity

import "time"

// Roles válidos para User.
const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

// ValidRole indica si r es un rol conocido.
func ValidRole(r string) bool {
	return r == RoleEmployee || r == RoleAdmin
}

// User representa a un empleado o administrador. La baja es lógica (Active=false):
// los registros históricos conservan la referencia aunque el usuario no pueda autenticarse.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FullName     string
	Role         string // employee, admin
	Department   string
	EmployeeID   *string // código interno de RRHH, opcional
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si el usuario puede autenticarse y fichar.
func (u *User) IsActive() bool {
	return u != nil && u.Active
}

// IsAdmin indica si el usuario tiene rol admin.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
