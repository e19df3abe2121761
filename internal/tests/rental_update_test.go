package tests

import (
	"context"
	"errors"
	"testing"

	"fleet/internal/domain"
	"fleet/internal/service"
)

// ──────────────────────────────────────────────
// RENTAL UPDATES
// ──────────────────────────────────────────────

// seedRental stores a closed rental June 5-10 on vehicle-1 and returns its ID.
func seedRental(f *rentalFixture) string {
	f.rentalRepo.AddRental(&domain.Rental{
		ID:          "rental-1",
		VehicleID:   "vehicle-1",
		DriverID:    "driver-1",
		Period:      domain.ClosedPeriod(date(2025, 6, 5), date(2025, 6, 10)),
		Destination: "Airport",
	})
	return "rental-1"
}

func strPtr(s string) *string { return &s }

func TestUpdateRental_NotFound(t *testing.T) {
	t.Parallel()

	f := newRentalFixture()

	_, err := f.service.UpdateRental(context.Background(), "missing", service.UpdateRentalRequest{
		Destination: strPtr("Harbor"),
	})
	if !errors.Is(err, service.ErrRentalNotFound) {
		t.Errorf("expected ErrRentalNotFound, got %v", err)
	}
}

func TestUpdateRental_DestinationOnly_SkipsOverlapCheck(t *testing.T) {
	t.Parallel()

	f := newRentalFixture()
	id := seedRental(f)

	// A sibling rental that would conflict if the period were revalidated.
	// Editing the destination alone must not even query the vehicle's
	// rentals, so this sibling is never looked at.
	f.rentalRepo.AddRental(&domain.Rental{
		ID:          "rental-2",
		VehicleID:   "vehicle-1",
		DriverID:    "driver-1",
		Period:      domain.ClosedPeriod(date(2025, 6, 10), date(2025, 6, 15)),
		Destination: "Harbor",
	})

	updated, err := f.service.UpdateRental(context.Background(), id, service.UpdateRentalRequest{
		Destination: strPtr("New depot"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Destination != "New depot" {
		t.Errorf("expected destination to change, got %q", updated.Destination)
	}
	if f.rentalRepo.GetByVehicleIDCallCount != 0 {
		t.Errorf("expected no overlap query, GetByVehicleID called %d times", f.rentalRepo.GetByVehicleIDCallCount)
	}
	if f.lockStore.AcquireCallCount != 0 {
		t.Errorf("expected no vehicle lock, Acquire called %d times", f.lockStore.AcquireCallCount)
	}
}

func TestUpdateRental_KilometersOnly_SkipsOverlapCheck(t *testing.T) {
	t.Parallel()

	f := newRentalFixture()
	id := seedRental(f)

	km := 320.5
	updated, err := f.service.UpdateRental(context.Background(), id, service.UpdateRentalRequest{
		Kilometers: &km,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Kilometers == nil || *updated.Kilometers != km {
		t.Errorf("expected kilometers %v, got %v", km, updated.Kilometers)
	}
	if f.rentalRepo.GetByVehicleIDCallCount != 0 {
		t.Error("kilometers-only update must not run the overlap check")
	}
}

func TestUpdateRental_PeriodChange_RunsOverlapCheck(t *testing.T) {
	t.Parallel()

	f := newRentalFixture()
	id := seedRental(f)

	end := date(2025, 6, 12)
	if _, err := f.service.UpdateRental(context.Background(), id, service.UpdateRentalRequest{
		EndDate: &end,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.rentalRepo.GetByVehicleIDCallCount != 1 {
		t.Errorf("expected 1 overlap query, got %d", f.rentalRepo.GetByVehicleIDCallCount)
	}
}

func TestUpdateRental_ExcludesItselfFromOverlapCheck(t *testing.T) {
	t.Parallel()

	f := newRentalFixture()
	id := seedRental(f)

	// Shrinking the rental inside its own current period must not collide
	// with its own stored state.
	end := date(2025, 6, 8)
	updated, err := f.service.UpdateRental(context.Background(), id, service.UpdateRentalRequest{
		StartDate: timePtr(date(2025, 6, 6)),
		EndDate:   &end,
	})
	if err != nil {
		t.Fatalf("expected self to be excluded from the check, got: %v", err)
	}

	if !updated.Period.Start.Equal(date(2025, 6, 6)) || !updated.Period.End.Equal(date(2025, 6, 8)) {
		t.Errorf("period not applied: got %v-%v", updated.Period.Start, updated.Period.End)
	}
}

func TestUpdateRental_ConflictWithSibling(t *testing.T) {
	t.Parallel()

	f := newRentalFixture()
	id := seedRental(f)
	f.rentalRepo.AddRental(&domain.Rental{
		ID:          "rental-2",
		VehicleID:   "vehicle-1",
		DriverID:    "driver-1",
		Period:      domain.ClosedPeriod(date(2025, 6, 15), date(2025, 6, 20)),
		Destination: "Harbor",
	})

	end := date(2025, 6, 16)
	_, err := f.service.UpdateRental(context.Background(), id, service.UpdateRentalRequest{
		EndDate: &end,
	})
	if !errors.Is(err, service.ErrVehicleAlreadyRented) {
		t.Errorf("expected conflict with sibling rental, got %v", err)
	}
}

func TestUpdateRental_VehicleChange_RevalidatesAgainstNewVehicle(t *testing.T) {
	t.Parallel()

	f := newRentalFixture()
	id := seedRental(f)
	f.vehicleRepo.AddVehicle(&domain.Vehicle{ID: "vehicle-2", Plate: "XYZ-9876", Type: "truck", DepartmentID: "dept-1"})
	f.rentalRepo.AddRental(&domain.Rental{
		ID:          "rental-2",
		VehicleID:   "vehicle-2",
		DriverID:    "driver-1",
		Period:      domain.ClosedPeriod(date(2025, 6, 5), date(2025, 6, 10)),
		Destination: "Harbor",
	})

	// Moving the rental to vehicle-2 keeps the same dates, which collide
	// with vehicle-2's existing rental.
	_, err := f.service.UpdateRental(context.Background(), id, service.UpdateRentalRequest{
		VehicleID: strPtr("vehicle-2"),
	})
	if !errors.Is(err, service.ErrVehicleAlreadyRented) {
		t.Errorf("expected conflict on the new vehicle, got %v", err)
	}
}

func TestUpdateRental_VehicleChange_ToFreeVehicle_Succeeds(t *testing.T) {
	t.Parallel()

	f := newRentalFixture()
	id := seedRental(f)
	f.vehicleRepo.AddVehicle(&domain.Vehicle{ID: "vehicle-2", Plate: "XYZ-9876", Type: "truck", DepartmentID: "dept-1"})

	updated, err := f.service.UpdateRental(context.Background(), id, service.UpdateRentalRequest{
		VehicleID: strPtr("vehicle-2"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.VehicleID != "vehicle-2" {
		t.Errorf("expected vehicle-2, got %s", updated.VehicleID)
	}
	if f.rentalRepo.GetByVehicleIDCallCount != 1 {
		t.Errorf("expected overlap check against the new vehicle, got %d queries", f.rentalRepo.GetByVehicleIDCallCount)
	}
}

func TestUpdateRental_UnknownReferences(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		req     service.UpdateRentalRequest
		wantErr error
	}{
		{
			name:    "unknown vehicle",
			req:     service.UpdateRentalRequest{VehicleID: strPtr("no-such-vehicle")},
			wantErr: service.ErrVehicleNotFound,
		},
		{
			name:    "unknown driver",
			req:     service.UpdateRentalRequest{DriverID: strPtr("no-such-driver")},
			wantErr: service.ErrDriverNotFound,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := newRentalFixture()
			id := seedRental(f)

			_, err := f.service.UpdateRental(context.Background(), id, tc.req)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestUpdateRental_EffectiveMergedDates(t *testing.T) {
	t.Parallel()

	// Only the end date is supplied; it must be validated against the
	// STORED start date (June 5), not against zero or today.
	f := newRentalFixture()
	id := seedRental(f)

	end := date(2025, 6, 4)
	_, err := f.service.UpdateRental(context.Background(), id, service.UpdateRentalRequest{
		EndDate: &end,
	})
	if !errors.Is(err, service.ErrEndBeforeStart) {
		t.Errorf("expected end-before-start using the stored start, got %v", err)
	}
}

func TestUpdateRental_StartDateInPast_Rejected(t *testing.T) {
	t.Parallel()

	f := newRentalFixture()
	id := seedRental(f)

	_, err := f.service.UpdateRental(context.Background(), id, service.UpdateRentalRequest{
		StartDate: timePtr(date(2025, 5, 1)),
	})
	if !errors.Is(err, service.ErrStartDateInPast) {
		t.Errorf("expected ErrStartDateInPast, got %v", err)
	}
}

func TestUpdateRental_UnchangedStartDate_NotRevalidatedAgainstToday(t *testing.T) {
	t.Parallel()

	// The stored rental started in the past. Closing it later must not
	// re-trigger the past-start check: only a NEW start date is checked.
	f := newRentalFixture()
	f.rentalRepo.AddRental(&domain.Rental{
		ID:          "rental-old",
		VehicleID:   "vehicle-1",
		DriverID:    "driver-1",
		Period:      domain.OpenPeriod(date(2025, 5, 1)),
		Destination: "Airport",
	})

	end := date(2025, 6, 2)
	updated, err := f.service.UpdateRental(context.Background(), "rental-old", service.UpdateRentalRequest{
		EndDate: &end,
	})
	if err != nil {
		t.Fatalf("closing an already-running rental must work, got: %v", err)
	}

	if updated.Period.Open {
		t.Error("expected rental to be closed")
	}
}

func TestUpdateRental_ClearEndDate_Reopens(t *testing.T) {
	t.Parallel()

	f := newRentalFixture()
	id := seedRental(f)

	updated, err := f.service.UpdateRental(context.Background(), id, service.UpdateRentalRequest{
		ClearEndDate: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !updated.Period.Open {
		t.Error("expected rental to be reopened")
	}
}

func TestUpdateRental_ClearEndDate_ConflictsWithLaterSibling(t *testing.T) {
	t.Parallel()

	f := newRentalFixture()
	id := seedRental(f)
	f.rentalRepo.AddRental(&domain.Rental{
		ID:          "rental-2",
		VehicleID:   "vehicle-1",
		DriverID:    "driver-1",
		Period:      domain.ClosedPeriod(date(2025, 6, 15), date(2025, 6, 20)),
		Destination: "Harbor",
	})

	// Reopening rental-1 makes it run forever, colliding with rental-2.
	_, err := f.service.UpdateRental(context.Background(), id, service.UpdateRentalRequest{
		ClearEndDate: true,
	})
	if !errors.Is(err, service.ErrVehicleAlreadyRented) {
		t.Errorf("expected reopening to be validated, got %v", err)
	}
}

func TestUpdateRental_ValidationErrors(t *testing.T) {
	t.Parallel()

	negativeKm := -5.0

	testCases := []struct {
		name    string
		req     service.UpdateRentalRequest
		wantErr error
	}{
		{
			name:    "negative kilometers",
			req:     service.UpdateRentalRequest{Kilometers: &negativeKm},
			wantErr: service.ErrNegativeKilometers,
		},
		{
			name:    "blank destination",
			req:     service.UpdateRentalRequest{Destination: strPtr("   ")},
			wantErr: service.ErrEmptyDestination,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := newRentalFixture()
			id := seedRental(f)

			_, err := f.service.UpdateRental(context.Background(), id, tc.req)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestUpdateRental_AppliesAllFields(t *testing.T) {
	t.Parallel()

	f := newRentalFixture()
	id := seedRental(f)
	f.driverRepo.AddDriver(&domain.Driver{ID: "driver-2", CPF: "98765432100", Name: "Bruno Lima", DepartmentID: "dept-1"})

	km := 120.0
	end := date(2025, 6, 12)
	updated, err := f.service.UpdateRental(context.Background(), id, service.UpdateRentalRequest{
		DriverID:    strPtr("driver-2"),
		StartDate:   timePtr(date(2025, 6, 6)),
		EndDate:     &end,
		Destination: strPtr("  Harbor  "),
		Kilometers:  &km,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.DriverID != "driver-2" {
		t.Errorf("driver not applied: %s", updated.DriverID)
	}
	if !updated.Period.Start.Equal(date(2025, 6, 6)) || !updated.Period.End.Equal(date(2025, 6, 12)) {
		t.Errorf("period not applied: %v-%v", updated.Period.Start, updated.Period.End)
	}
	if updated.Destination != "Harbor" {
		t.Errorf("expected trimmed destination, got %q", updated.Destination)
	}
	if updated.Kilometers == nil || *updated.Kilometers != km {
		t.Errorf("kilometers not applied: %v", updated.Kilometers)
	}

	stored := f.rentalRepo.GetRental(id)
	if stored.Destination != "Harbor" {
		t.Errorf("expected update to be persisted, stored destination %q", stored.Destination)
	}
}

func TestDeleteRental(t *testing.T) {
	t.Parallel()

	f := newRentalFixture()
	id := seedRental(f)

	if err := f.service.DeleteRental(context.Background(), id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.rentalRepo.CountRentals() != 0 {
		t.Error("expected rental to be removed")
	}

	if err := f.service.DeleteRental(context.Background(), id); !errors.Is(err, service.ErrRentalNotFound) {
		t.Errorf("expected ErrRentalNotFound on second delete, got %v", err)
	}
}
