package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // ADMIN, USER
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin indica si el usuario tiene rol ADMIN.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Actor es el usuario autenticado que ejecuta una operación.
// Se pasa explícitamente a cada caso de uso del núcleo.
type Actor struct {
	UserID string
	Role   string
}

// IsZero indica que no hay sesión.
func (a Actor) IsZero() bool {
	return a.UserID == ""
}

// IsAdmin indica si el actor tiene rol ADMIN.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
