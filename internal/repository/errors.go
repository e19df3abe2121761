package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when a uniqueness constraint rejects a write,
	// e.g. a second user with the same CPF or a second vehicle with the
	// same plate.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInUse is returned when a delete is rejected because other records
	// still reference the entity.
	ErrInUse = errors.New("entity is referenced by other records")

	// ErrRentalOverlap is returned when the database exclusion constraint
	// rejects a rental period that overlaps an existing rental of the same
	// vehicle. It backstops the application-level overlap check against
	// concurrent writers.
	ErrRentalOverlap = errors.New("rental period overlaps an existing rental")
)
