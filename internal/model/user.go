package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByCPF(ctx context.Context, cpf string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
}

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// User represents a registered account. PasswordHash never leaves the server.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	Phone        string
	CPF          string
	ProfileImage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RegisterParams contains the registration payload.
type RegisterParams struct {
	Email    string
	Username string
	Password string
	Phone    string
	CPF      string
}

// Session is the result of a successful register or login.
type Session struct {
	Token string
	User  User
}
