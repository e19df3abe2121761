package repository

import (
	"context"

	"fleet/internal/domain"
)

// FineRepository defines the persistence operations for traffic fines.
type FineRepository interface {
	// Create adds a new fine.
	Create(ctx context.Context, fine *domain.Fine) error

	// GetByID retrieves a fine by ID.
	GetByID(ctx context.Context, id string) (*domain.Fine, error)

	// GetAll retrieves all fines.
	GetAll(ctx context.Context) ([]*domain.Fine, error)

	// Update updates an existing fine.
	Update(ctx context.Context, fine *domain.Fine) error

	// Delete removes a fine.
	Delete(ctx context.Context, id string) error
}
