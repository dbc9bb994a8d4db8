package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=8"`
	FullName   string  `json:"full_name" validate:"required,min=1,max=200"`
	Role       string  `json:"role" validate:"omitempty,oneof=employee admin"`
	Department string  `json:"department" validate:"omitempty,max=120"`
	EmployeeID *string `json:"employee_id" validate:"omitempty,min=1,max=50"`
}

// UpdateUserRequest cambios parciales de perfil (campos nil no se tocan).
type UpdateUserRequest struct {
	FullName   *string `json:"full_name" validate:"omitempty,min=1,max=200"`
	Department *string `json:"department" validate:"omitempty,max=120"`
	Role       *string `json:"role" validate:"omitempty,oneof=employee admin"`
}

// SetActiveRequest alta/baja lógica de un usuario.
type SetActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Role       string    `json:"role"`
	Department string    `json:"department"`
	EmployeeID *string   `json:"employee_id,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token de sesión y usuario autenticado.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}
