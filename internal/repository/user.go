package repository

import (
	"context"

	"fleet/internal/domain"
)

// UserRepository defines the persistence operations for API users.
type UserRepository interface {
	// Create adds a new user.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByCPF retrieves a user by CPF.
	GetByCPF(ctx context.Context, cpf string) (*domain.User, error)
}
