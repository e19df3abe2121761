package repository

import (
	"context"

	"fleet/internal/domain"
)

// MaintenanceRepository defines the persistence operations for maintenance
// records.
type MaintenanceRepository interface {
	// Create adds a new maintenance record.
	Create(ctx context.Context, maintenance *domain.Maintenance) error

	// GetByID retrieves a maintenance record by ID.
	GetByID(ctx context.Context, id string) (*domain.Maintenance, error)

	// GetAll retrieves all maintenance records.
	GetAll(ctx context.Context) ([]*domain.Maintenance, error)

	// Update updates an existing maintenance record.
	Update(ctx context.Context, maintenance *domain.Maintenance) error

	// Delete removes a maintenance record.
	Delete(ctx context.Context, id string) error
}
