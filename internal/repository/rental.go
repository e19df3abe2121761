package repository

import (
	"context"

	"fleet/internal/domain"
)

// RentalRepository defines the persistence operations for rentals.
//
// Implementations must guarantee that two rentals of the same vehicle with
// overlapping periods can never both be persisted, even under concurrent
// writers: the application validates before writing, but the store is the
// backstop (see the exclusion constraint in scripts/schema.sql). A write
// losing that race returns ErrRentalOverlap.
type RentalRepository interface {
	// Create persists a new rental.
	Create(ctx context.Context, rental *domain.Rental) error

	// GetByID retrieves a rental by ID.
	GetByID(ctx context.Context, id string) (*domain.Rental, error)

	// GetByVehicleID retrieves all rentals of one vehicle.
	GetByVehicleID(ctx context.Context, vehicleID string) ([]*domain.Rental, error)

	// GetAll retrieves all rentals.
	GetAll(ctx context.Context) ([]*domain.Rental, error)

	// Update applies a partial update and returns the updated rental.
	Update(ctx context.Context, id string, patch domain.RentalPatch) (*domain.Rental, error)

	// Delete removes a rental.
	Delete(ctx context.Context, id string) error
}
