package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User usuario del sistema.
type User struct {
	ID           int64
	Email        string
	PasswordHash string // bcrypt, nunca el texto plano
	FullName     *string
	Role         string
	IsAdmin      bool
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
