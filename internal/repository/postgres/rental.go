package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// RentalRepository is a PostgreSQL implementation of repository.RentalRepository.
//
// The rentals table carries an exclusion constraint over
// daterange(start_date, coalesce(end_date, 'infinity'), '[]') per vehicle
// (see scripts/schema.sql), so overlapping writes that race past the
// service-level check are rejected here and surface as ErrRentalOverlap.
type RentalRepository struct {
	q Querier
}

// NewRentalRepository creates a new PostgreSQL rental repository.
func NewRentalRepository(db *sql.DB) *RentalRepository {
	return &RentalRepository{q: db}
}

// NewRentalRepositoryWithTx creates a rental repository using a transaction.
func NewRentalRepositoryWithTx(tx *sql.Tx) *RentalRepository {
	return &RentalRepository{q: tx}
}

const rentalColumns = `id, vehicle_id, driver_id, start_date, end_date, destination, kilometers, created_at`

// Create persists a new rental.
func (r *RentalRepository) Create(ctx context.Context, rental *domain.Rental) error {
	query := `
		INSERT INTO rentals (id, vehicle_id, driver_id, start_date, end_date, destination, kilometers, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	var endDate sql.NullTime
	if !rental.Period.Open {
		endDate = sql.NullTime{Time: rental.Period.End, Valid: true}
	}

	var kilometers sql.NullFloat64
	if rental.Kilometers != nil {
		kilometers = sql.NullFloat64{Float64: *rental.Kilometers, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		rental.ID,
		rental.VehicleID,
		rental.DriverID,
		rental.Period.Start,
		endDate,
		rental.Destination,
		kilometers,
		rental.CreatedAt,
	)
	if err != nil {
		return mapError(err)
	}

	return nil
}

// GetByID retrieves a rental by ID.
func (r *RentalRepository) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`

	rental, err := scanRental(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return rental, nil
}

// GetByVehicleID retrieves all rentals of one vehicle.
func (r *RentalRepository) GetByVehicleID(ctx context.Context, vehicleID string) ([]*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE vehicle_id = $1 ORDER BY start_date`

	rows, err := r.q.QueryContext(ctx, query, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRentals(rows)
}

// GetAll retrieves all rentals.
func (r *RentalRepository) GetAll(ctx context.Context) ([]*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals ORDER BY start_date`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRentals(rows)
}

// Update applies a partial update: only fields set in the patch reach the
// database. Returns the updated rental.
func (r *RentalRepository) Update(ctx context.Context, id string, patch domain.RentalPatch) (*domain.Rental, error) {
	if patch.Empty() {
		return r.GetByID(ctx, id)
	}

	var sets []string
	var args []any
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.VehicleID != nil {
		set("vehicle_id", *patch.VehicleID)
	}
	if patch.DriverID != nil {
		set("driver_id", *patch.DriverID)
	}
	if patch.StartDate != nil {
		set("start_date", domain.DateOnly(*patch.StartDate))
	}
	if patch.ClearEnd {
		sets = append(sets, "end_date = NULL")
	} else if patch.EndDate != nil {
		set("end_date", domain.DateOnly(*patch.EndDate))
	}
	if patch.Destination != nil {
		set("destination", *patch.Destination)
	}
	if patch.Kilometers != nil {
		set("kilometers", *patch.Kilometers)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE rentals SET %s WHERE id = $%d RETURNING `+rentalColumns,
		strings.Join(sets, ", "), len(args),
	)

	rental, err := scanRental(r.q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, mapError(err)
	}

	return rental, nil
}

// Delete removes a rental.
func (r *RentalRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM rentals WHERE id = $1`, id)
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

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRental(s scanner) (*domain.Rental, error) {
	var rental domain.Rental
	var start time.Time
	var endDate sql.NullTime
	var kilometers sql.NullFloat64

	err := s.Scan(
		&rental.ID,
		&rental.VehicleID,
		&rental.DriverID,
		&start,
		&endDate,
		&rental.Destination,
		&kilometers,
		&rental.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if endDate.Valid {
		rental.Period = domain.ClosedPeriod(start, endDate.Time)
	} else {
		rental.Period = domain.OpenPeriod(start)
	}
	if kilometers.Valid {
		km := kilometers.Float64
		rental.Kilometers = &km
	}

	return &rental, nil
}

func collectRentals(rows *sql.Rows) ([]*domain.Rental, error) {
	var rentals []*domain.Rental
	for rows.Next() {
		rental, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, rental)
	}
	return rentals, rows.Err()
}
