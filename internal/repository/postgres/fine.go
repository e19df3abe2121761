package postgres

import (
	"context"
	"database/sql"
	"errors"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// FineRepository is a PostgreSQL implementation of repository.FineRepository.
type FineRepository struct {
	q Querier
}

// NewFineRepository creates a new PostgreSQL fine repository.
func NewFineRepository(db *sql.DB) *FineRepository {
	return &FineRepository{q: db}
}

const fineColumns = `id, vehicle_id, driver_id, date, kind, amount, description, created_at`

// Create adds a new fine.
func (r *FineRepository) Create(ctx context.Context, fine *domain.Fine) error {
	query := `
		INSERT INTO fines (id, vehicle_id, driver_id, date, kind, amount, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	var driverID sql.NullString
	if fine.DriverID != "" {
		driverID = sql.NullString{String: fine.DriverID, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		fine.ID, fine.VehicleID, driverID, fine.Date, fine.Kind, fine.Amount, fine.Description, fine.CreatedAt)
	if err != nil {
		return mapError(err)
	}
	return nil
}

// GetByID retrieves a fine by ID.
func (r *FineRepository) GetByID(ctx context.Context, id string) (*domain.Fine, error) {
	query := `SELECT ` + fineColumns + ` FROM fines WHERE id = $1`

	fine, err := scanFine(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return fine, nil
}

// GetAll retrieves all fines.
func (r *FineRepository) GetAll(ctx context.Context) ([]*domain.Fine, error) {
	query := `SELECT ` + fineColumns + ` FROM fines ORDER BY date DESC`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fines []*domain.Fine
	for rows.Next() {
		fine, err := scanFine(rows)
		if err != nil {
			return nil, err
		}
		fines = append(fines, fine)
	}
	return fines, rows.Err()
}

// Update updates an existing fine.
func (r *FineRepository) Update(ctx context.Context, fine *domain.Fine) error {
	query := `
		UPDATE fines SET vehicle_id = $1, driver_id = $2, date = $3, kind = $4, amount = $5, description = $6
		WHERE id = $7
	`

	var driverID sql.NullString
	if fine.DriverID != "" {
		driverID = sql.NullString{String: fine.DriverID, Valid: true}
	}

	result, err := r.q.ExecContext(ctx, query,
		fine.VehicleID, driverID, fine.Date, fine.Kind, fine.Amount, fine.Description, fine.ID)
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

// Delete removes a fine.
func (r *FineRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM fines WHERE id = $1`, id)
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

func scanFine(s scanner) (*domain.Fine, error) {
	var fine domain.Fine
	var driverID sql.NullString

	err := s.Scan(
		&fine.ID,
		&fine.VehicleID,
		&driverID,
		&fine.Date,
		&fine.Kind,
		&fine.Amount,
		&fine.Description,
		&fine.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if driverID.Valid {
		fine.DriverID = driverID.String
	}
	return &fine, nil
}
