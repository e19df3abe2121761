package domain

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func closedRental(id, vehicleID, start, end string) *Rental {
	return &Rental{ID: id, VehicleID: vehicleID, Period: ClosedPeriod(date(start), date(end))}
}

func openRental(id, vehicleID, start string) *Rental {
	return &Rental{ID: id, VehicleID: vehicleID, Period: OpenPeriod(date(start))}
}

func TestFindConflict_NoExistingRentals(t *testing.T) {
	t.Parallel()

	if c := FindConflict(ClosedPeriod(date("2025-03-18"), date("2025-03-20")), nil, ""); c != nil {
		t.Errorf("expected no conflict, got %+v", c)
	}
}

func TestFindConflict_ClosedRanges(t *testing.T) {
	t.Parallel()

	existing := []*Rental{closedRental("r1", "v1", "2025-03-18", "2025-03-20")}

	testCases := []struct {
		name      string
		candidate Period
		conflict  bool
	}{
		{
			name:      "overlapping middle",
			candidate: ClosedPeriod(date("2025-03-19"), date("2025-03-22")),
			conflict:  true,
		},
		{
			name:      "candidate contains existing",
			candidate: ClosedPeriod(date("2025-03-10"), date("2025-03-25")),
			conflict:  true,
		},
		{
			name:      "existing contains candidate",
			candidate: ClosedPeriod(date("2025-03-19"), date("2025-03-19")),
			conflict:  true,
		},
		{
			name:      "touching at existing end is inclusive",
			candidate: ClosedPeriod(date("2025-03-20"), date("2025-03-22")),
			conflict:  true,
		},
		{
			name:      "touching at existing start is inclusive",
			candidate: ClosedPeriod(date("2025-03-15"), date("2025-03-18")),
			conflict:  true,
		},
		{
			name:      "entirely before",
			candidate: ClosedPeriod(date("2025-03-10"), date("2025-03-17")),
			conflict:  false,
		},
		{
			name:      "entirely after",
			candidate: ClosedPeriod(date("2025-03-21"), date("2025-03-25")),
			conflict:  false,
		},
		{
			name:      "open candidate starting inside existing",
			candidate: OpenPeriod(date("2025-03-19")),
			conflict:  true,
		},
		{
			name:      "open candidate starting before existing",
			candidate: OpenPeriod(date("2025-03-01")),
			conflict:  true,
		},
		{
			name:      "open candidate starting after existing end",
			candidate: OpenPeriod(date("2025-03-21")),
			conflict:  false,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := FindConflict(tc.candidate, existing, "")
			if tc.conflict && c == nil {
				t.Fatal("expected conflict, got none")
			}
			if !tc.conflict && c != nil {
				t.Fatalf("expected no conflict, got %+v", c)
			}
			if c != nil && c.Kind != ConflictDateRange {
				t.Errorf("expected kind %s, got %s", ConflictDateRange, c.Kind)
			}
		})
	}
}

func TestFindConflict_OpenEndedMonopolizesVehicle(t *testing.T) {
	t.Parallel()

	existing := []*Rental{openRental("r1", "v1", "2025-03-19")}

	// Even a candidate entirely before the open rental's start conflicts:
	// the open rental blocks the vehicle until it is explicitly closed.
	candidates := []Period{
		ClosedPeriod(date("2025-03-10"), date("2025-03-12")),
		ClosedPeriod(date("2025-03-19"), date("2025-03-22")),
		ClosedPeriod(date("2025-04-01"), date("2025-04-05")),
		OpenPeriod(date("2025-05-01")),
	}

	for _, candidate := range candidates {
		c := FindConflict(candidate, existing, "")
		if c == nil {
			t.Fatalf("candidate %+v: expected conflict, got none", candidate)
		}
		if c.Kind != ConflictActiveOpenEnded {
			t.Errorf("candidate %+v: expected kind %s, got %s", candidate, ConflictActiveOpenEnded, c.Kind)
		}
		if c.RentalID != "r1" {
			t.Errorf("expected conflicting rental r1, got %s", c.RentalID)
		}
	}
}

func TestFindConflict_ExcludesRentalBeingUpdated(t *testing.T) {
	t.Parallel()

	existing := []*Rental{
		closedRental("r1", "v1", "2025-03-18", "2025-03-20"),
		closedRental("r2", "v1", "2025-03-25", "2025-03-28"),
	}

	// Extending r1 by one day does not conflict with its own stored state.
	if c := FindConflict(ClosedPeriod(date("2025-03-18"), date("2025-03-21")), existing, "r1"); c != nil {
		t.Errorf("expected no conflict, got %+v", c)
	}

	// But it still conflicts with r2.
	c := FindConflict(ClosedPeriod(date("2025-03-18"), date("2025-03-25")), existing, "r1")
	if c == nil {
		t.Fatal("expected conflict with r2, got none")
	}
	if c.RentalID != "r2" {
		t.Errorf("expected conflicting rental r2, got %s", c.RentalID)
	}
}

func TestFindConflict_FirstMatchWins(t *testing.T) {
	t.Parallel()

	existing := []*Rental{
		closedRental("r1", "v1", "2025-03-18", "2025-03-20"),
		openRental("r2", "v1", "2025-04-01"),
	}

	c := FindConflict(ClosedPeriod(date("2025-03-19"), date("2025-03-22")), existing, "")
	if c == nil {
		t.Fatal("expected conflict, got none")
	}
	if c.RentalID != "r1" || c.Kind != ConflictDateRange {
		t.Errorf("expected first conflict r1/%s, got %s/%s", ConflictDateRange, c.RentalID, c.Kind)
	}
}

func TestPeriodValid(t *testing.T) {
	t.Parallel()

	if p := ClosedPeriod(date("2025-03-20"), date("2025-03-18")); p.Valid() {
		t.Error("expected inverted closed period to be invalid")
	}
	if p := ClosedPeriod(date("2025-03-18"), date("2025-03-18")); !p.Valid() {
		t.Error("expected single-day period to be valid")
	}
	if p := OpenPeriod(date("2025-03-18")); !p.Valid() {
		t.Error("expected open period to be valid")
	}
}

func TestDateOnly_NormalizesToUTCMidnight(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("BRT", -3*60*60)
	in := time.Date(2025, 3, 18, 23, 45, 0, 0, loc)

	got := DateOnly(in)
	want := time.Date(2025, 3, 18, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
