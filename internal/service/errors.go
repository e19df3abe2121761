package service

import (
	"errors"
	"fmt"

	"fleet/internal/domain"
)

var (
	// ErrDriverNotFound is returned when a referenced driver does not exist.
	ErrDriverNotFound = errors.New("driver not found")

	// ErrVehicleNotFound is returned when a referenced vehicle does not exist.
	ErrVehicleNotFound = errors.New("vehicle not found")

	// ErrRentalNotFound is returned when the target rental does not exist.
	ErrRentalNotFound = errors.New("rental not found")

	// ErrStartDateInPast is returned when a rental would start before the
	// current date.
	ErrStartDateInPast = errors.New("start date cannot be in the past")

	// ErrEndBeforeStart is returned when a rental would end before it starts.
	ErrEndBeforeStart = errors.New("end date cannot be before start date")

	// ErrNegativeKilometers is returned when a rental's distance is negative.
	ErrNegativeKilometers = errors.New("kilometers cannot be negative")

	// ErrEmptyDestination is returned when a rental's destination is empty
	// after trimming whitespace.
	ErrEmptyDestination = errors.New("destination cannot be empty")

	// ErrVehicleAlreadyRented is returned when a rental period conflicts
	// with an existing rental of the same vehicle.
	ErrVehicleAlreadyRented = errors.New("vehicle is already rented in this period")

	// ErrUserAlreadyExists is returned when registering a CPF that already
	// has an account.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrInvalidCredentials is returned when login fails. CPF-not-found and
	// wrong-password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid cpf or password")

	// ErrInvalidToken is returned when a token cannot be verified.
	ErrInvalidToken = errors.New("invalid token")
)

// ConflictError carries the kind of rental conflict for diagnostics. It
// matches ErrVehicleAlreadyRented under errors.Is, so callers that only
// care about the category keep working.
type ConflictError struct {
	Kind     domain.ConflictKind
	RentalID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s (%s, conflicting rental %s)", ErrVehicleAlreadyRented, e.Kind, e.RentalID)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrVehicleAlreadyRented
}
