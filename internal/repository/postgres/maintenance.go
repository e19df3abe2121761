package postgres

import (
	"context"
	"database/sql"
	"errors"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// MaintenanceRepository is a PostgreSQL implementation of repository.MaintenanceRepository.
type MaintenanceRepository struct {
	q Querier
}

// NewMaintenanceRepository creates a new PostgreSQL maintenance repository.
func NewMaintenanceRepository(db *sql.DB) *MaintenanceRepository {
	return &MaintenanceRepository{q: db}
}

const maintenanceColumns = `id, vehicle_id, date, kind, description, cost, created_at`

// Create adds a new maintenance record.
func (r *MaintenanceRepository) Create(ctx context.Context, maintenance *domain.Maintenance) error {
	query := `
		INSERT INTO maintenance (id, vehicle_id, date, kind, description, cost, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.q.ExecContext(ctx, query,
		maintenance.ID, maintenance.VehicleID, maintenance.Date,
		maintenance.Kind, maintenance.Description, maintenance.Cost, maintenance.CreatedAt)
	if err != nil {
		return mapError(err)
	}
	return nil
}

// GetByID retrieves a maintenance record by ID.
func (r *MaintenanceRepository) GetByID(ctx context.Context, id string) (*domain.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance WHERE id = $1`

	var m domain.Maintenance
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.VehicleID, &m.Date, &m.Kind, &m.Description, &m.Cost, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// GetAll retrieves all maintenance records.
func (r *MaintenanceRepository) GetAll(ctx context.Context) ([]*domain.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance ORDER BY date DESC`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.Maintenance
	for rows.Next() {
		var m domain.Maintenance
		if err := rows.Scan(&m.ID, &m.VehicleID, &m.Date, &m.Kind, &m.Description, &m.Cost, &m.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, &m)
	}
	return records, rows.Err()
}

// Update updates an existing maintenance record.
func (r *MaintenanceRepository) Update(ctx context.Context, maintenance *domain.Maintenance) error {
	query := `
		UPDATE maintenance SET vehicle_id = $1, date = $2, kind = $3, description = $4, cost = $5
		WHERE id = $6
	`

	result, err := r.q.ExecContext(ctx, query,
		maintenance.VehicleID, maintenance.Date, maintenance.Kind,
		maintenance.Description, maintenance.Cost, maintenance.ID)
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

// Delete removes a maintenance record.
func (r *MaintenanceRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM maintenance WHERE id = $1`, id)
	if err != nil {
		return err
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
