package postgres

import (
	"context"
	"database/sql"
	"errors"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// DepartmentRepository is a PostgreSQL implementation of repository.DepartmentRepository.
type DepartmentRepository struct {
	q Querier
}

// NewDepartmentRepository creates a new PostgreSQL department repository.
func NewDepartmentRepository(db *sql.DB) *DepartmentRepository {
	return &DepartmentRepository{q: db}
}

// Create adds a new department.
func (r *DepartmentRepository) Create(ctx context.Context, department *domain.Department) error {
	query := `INSERT INTO departments (id, name, created_at) VALUES ($1, $2, $3)`
	_, err := r.q.ExecContext(ctx, query, department.ID, department.Name, department.CreatedAt)
	if err != nil {
		return mapError(err)
	}
	return nil
}

// GetByID retrieves a department by ID.
func (r *DepartmentRepository) GetByID(ctx context.Context, id string) (*domain.Department, error) {
	query := `SELECT id, name, created_at FROM departments WHERE id = $1`

	var d domain.Department
	err := r.q.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.Name, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// GetAll retrieves all departments.
func (r *DepartmentRepository) GetAll(ctx context.Context) ([]*domain.Department, error) {
	query := `SELECT id, name, created_at FROM departments ORDER BY name`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []*domain.Department
	for rows.Next() {
		var d domain.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt); err != nil {
			return nil, err
		}
		departments = append(departments, &d)
	}
	return departments, rows.Err()
}

// Update updates an existing department.
func (r *DepartmentRepository) Update(ctx context.Context, department *domain.Department) error {
	result, err := r.q.ExecContext(ctx,
		`UPDATE departments SET name = $1 WHERE id = $2`, department.Name, department.ID)
	if err != nil {
		return mapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a department. Vehicles and drivers reference departments,
// so deleting one still in use fails with ErrInUse.
func (r *DepartmentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
