package repository

import (
	"context"

	"fleet/internal/domain"
)

// DepartmentRepository defines the persistence operations for departments.
type DepartmentRepository interface {
	// Create adds a new department.
	Create(ctx context.Context, department *domain.Department) error

	// GetByID retrieves a department by ID.
	GetByID(ctx context.Context, id string) (*domain.Department, error)

	// GetAll retrieves all departments.
	GetAll(ctx context.Context) ([]*domain.Department, error)

	// Update updates an existing department.
	Update(ctx context.Context, department *domain.Department) error

	// Delete removes a department. Fails with ErrInUse while vehicles or
	// drivers still belong to it.
	Delete(ctx context.Context, id string) error
}
