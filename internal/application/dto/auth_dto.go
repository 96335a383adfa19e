package dto

import "time"

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse token y datos básicos del usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateUserRequest body para POST /api/users (solo admin).
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
	Role     string `json:"role,omitempty"` // admin | user
}

// UserResponse representación de un usuario sin credenciales.
type UserResponse struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	FullName  string     `json:"full_name,omitempty"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
