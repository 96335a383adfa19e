package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User operador del punto de venta. El rol admin habilita operaciones
// destructivas y el respaldo/restauración de datos.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	FullName     string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	LastLogin    *time.Time
}

// IsAdmin indica si el usuario tiene rol administrador.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
