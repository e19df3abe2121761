package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"fleet/internal/domain"
	"fleet/internal/redis"
	"fleet/internal/repository"
)

// vehicleLockTTL bounds how long a vehicle stays locked if a caller dies
// between acquire and release.
const vehicleLockTTL = 10 * time.Second

// RentalService enforces the rental lifecycle invariants: referenced
// entities must exist, dates must be coherent, and no two rentals of one
// vehicle may overlap in time. It is the sole writer of rental state.
type RentalService struct {
	rentalRepo  repository.RentalRepository
	vehicleRepo repository.VehicleRepository
	driverRepo  repository.DriverRepository
	lockStore   redis.LockStoreInterface // optional
	clock       Clock
}

// NewRentalService creates a new RentalService. lockStore may be nil, in
// which case only the storage-level exclusion constraint guards against
// concurrent writers.
func NewRentalService(
	rentalRepo repository.RentalRepository,
	vehicleRepo repository.VehicleRepository,
	driverRepo repository.DriverRepository,
	lockStore redis.LockStoreInterface,
	clock Clock,
) *RentalService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &RentalService{
		rentalRepo:  rentalRepo,
		vehicleRepo: vehicleRepo,
		driverRepo:  driverRepo,
		lockStore:   lockStore,
		clock:       clock,
	}
}

// CreateRentalRequest contains the parameters for creating a rental.
type CreateRentalRequest struct {
	VehicleID   string
	DriverID    string
	StartDate   time.Time
	EndDate     *time.Time // nil means open-ended
	Destination string
	Kilometers  *float64
}

// CreateRental validates and persists a new rental.
//
// Checks run in a fixed order so callers see stable error messages:
// driver existence, vehicle existence, start date not in the past, end not
// before start, non-negative kilometers, non-empty destination, and finally
// the overlap check against the vehicle's existing rentals.
func (s *RentalService) CreateRental(ctx context.Context, req CreateRentalRequest) (*domain.Rental, error) {
	if err := s.checkDriverExists(ctx, req.DriverID); err != nil {
		return nil, err
	}
	if err := s.checkVehicleExists(ctx, req.VehicleID); err != nil {
		return nil, err
	}

	start := domain.DateOnly(req.StartDate)
	if start.Before(domain.DateOnly(s.clock.Now())) {
		return nil, ErrStartDateInPast
	}

	period := domain.OpenPeriod(start)
	if req.EndDate != nil {
		period = domain.ClosedPeriod(start, *req.EndDate)
		if !period.Valid() {
			return nil, ErrEndBeforeStart
		}
	}

	if req.Kilometers != nil && *req.Kilometers < 0 {
		return nil, ErrNegativeKilometers
	}

	destination := strings.TrimSpace(req.Destination)
	if destination == "" {
		return nil, ErrEmptyDestination
	}

	unlock, err := s.lockVehicle(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	existing, err := s.rentalRepo.GetByVehicleID(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}

	if conflict := domain.FindConflict(period, existing, ""); conflict != nil {
		return nil, &ConflictError{Kind: conflict.Kind, RentalID: conflict.RentalID}
	}

	rental := &domain.Rental{
		ID:          uuid.New().String(),
		VehicleID:   req.VehicleID,
		DriverID:    req.DriverID,
		Period:      period,
		Destination: destination,
		Kilometers:  req.Kilometers,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.rentalRepo.Create(ctx, rental); err != nil {
		// The storage constraint caught a write that raced past the check
		// above. Classify it the same way.
		if errors.Is(err, repository.ErrRentalOverlap) {
			return nil, ErrVehicleAlreadyRented
		}
		return nil, err
	}

	return rental, nil
}

// UpdateRentalRequest is a partial update: nil fields are left unchanged.
// ClearEndDate removes the end date, reopening the rental; it takes
// precedence over EndDate.
type UpdateRentalRequest struct {
	VehicleID    *string
	DriverID     *string
	StartDate    *time.Time
	EndDate      *time.Time
	ClearEndDate bool
	Destination  *string
	Kilometers   *float64
}

// UpdateRental validates and applies a partial update. Cross-field checks
// use effective values: the payload's where supplied, the stored rental's
// otherwise. Overlap validation re-runs only when the vehicle or the
// period changes, excluding the rental's own stored state.
func (s *RentalService) UpdateRental(ctx context.Context, id string, req UpdateRentalRequest) (*domain.Rental, error) {
	current, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRentalNotFound
		}
		return nil, err
	}

	if req.DriverID != nil && *req.DriverID != current.DriverID {
		if err := s.checkDriverExists(ctx, *req.DriverID); err != nil {
			return nil, err
		}
	}
	if req.VehicleID != nil && *req.VehicleID != current.VehicleID {
		if err := s.checkVehicleExists(ctx, *req.VehicleID); err != nil {
			return nil, err
		}
	}

	// Effective merged values for cross-field validation.
	vehicleID := current.VehicleID
	if req.VehicleID != nil {
		vehicleID = *req.VehicleID
	}

	start := current.Period.Start
	if req.StartDate != nil {
		start = domain.DateOnly(*req.StartDate)
		if start.Before(domain.DateOnly(s.clock.Now())) {
			return nil, ErrStartDateInPast
		}
	}

	period := domain.Period{Start: start, End: current.Period.End, Open: current.Period.Open}
	switch {
	case req.ClearEndDate:
		period = domain.OpenPeriod(start)
	case req.EndDate != nil:
		period = domain.ClosedPeriod(start, *req.EndDate)
	}
	if !period.Valid() {
		return nil, ErrEndBeforeStart
	}

	if req.Kilometers != nil && *req.Kilometers < 0 {
		return nil, ErrNegativeKilometers
	}

	patch := domain.RentalPatch{
		VehicleID:  req.VehicleID,
		DriverID:   req.DriverID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		ClearEnd:   req.ClearEndDate,
		Kilometers: req.Kilometers,
	}

	if req.Destination != nil {
		destination := strings.TrimSpace(*req.Destination)
		if destination == "" {
			return nil, ErrEmptyDestination
		}
		patch.Destination = &destination
	}

	// Editing destination or kilometers alone cannot create an overlap, so
	// skip the store query and conflict check entirely in that case.
	if patch.AffectsPeriod() {
		unlock, err := s.lockVehicle(ctx, vehicleID)
		if err != nil {
			return nil, err
		}
		defer unlock()

		existing, err := s.rentalRepo.GetByVehicleID(ctx, vehicleID)
		if err != nil {
			return nil, err
		}

		if conflict := domain.FindConflict(period, existing, id); conflict != nil {
			return nil, &ConflictError{Kind: conflict.Kind, RentalID: conflict.RentalID}
		}
	}

	updated, err := s.rentalRepo.Update(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrRentalNotFound
		case errors.Is(err, repository.ErrRentalOverlap):
			return nil, ErrVehicleAlreadyRented
		}
		return nil, err
	}

	return updated, nil
}

// GetRental retrieves a rental by ID.
func (s *RentalService) GetRental(ctx context.Context, id string) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRentalNotFound
		}
		return nil, err
	}
	return rental, nil
}

// ListRentals retrieves all rentals.
func (s *RentalService) ListRentals(ctx context.Context) ([]*domain.Rental, error) {
	return s.rentalRepo.GetAll(ctx)
}

// DeleteRental removes a rental. Deletion frees the vehicle's period; it
// has no overlap implications beyond requiring the rental to exist.
func (s *RentalService) DeleteRental(ctx context.Context, id string) error {
	err := s.rentalRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrRentalNotFound
	}
	return err
}

func (s *RentalService) checkDriverExists(ctx context.Context, driverID string) error {
	_, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDriverNotFound
		}
		return err
	}
	return nil
}

func (s *RentalService) checkVehicleExists(ctx context.Context, vehicleID string) error {
	_, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrVehicleNotFound
		}
		return err
	}
	return nil
}

// lockVehicle serializes check-then-act sequences per vehicle. A lock that
// is already held means another create/update for the same vehicle is in
// flight; reject it as a conflict rather than validating against a
// snapshot that is about to go stale.
func (s *RentalService) lockVehicle(ctx context.Context, vehicleID string) (func(), error) {
	if s.lockStore == nil {
		return func() {}, nil
	}

	locked, err := s.lockStore.AcquireVehicleLock(ctx, vehicleID, vehicleLockTTL)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, ErrVehicleAlreadyRented
	}

	return func() { _ = s.lockStore.ReleaseVehicleLock(ctx, vehicleID) }, nil
}
