package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
}

// User represents a stored user with authentication material. Users are
// immutable after registration.
type User struct {
	ID           uuid.UUID
	Name         string
	LastName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// RegisterParams contains the registration payload.
type RegisterParams struct {
	Name     string
	LastName string
	Email    string
	Password string
}
