package domain

// ConflictKind classifies why a candidate rental period is rejected.
type ConflictKind string

const (
	// ConflictActiveOpenEnded means the vehicle has an open-ended rental
	// outstanding. An open rental monopolizes the vehicle until it is
	// closed, whatever the candidate's dates are.
	ConflictActiveOpenEnded ConflictKind = "ACTIVE_OPEN_ENDED"

	// ConflictDateRange means the candidate period intersects the period of
	// an existing closed rental.
	ConflictDateRange ConflictKind = "DATE_RANGE"
)

// Conflict identifies the existing rental a candidate period collides with.
type Conflict struct {
	Kind     ConflictKind
	RentalID string
}

// FindConflict checks a candidate period against the existing rentals of a
// vehicle and returns the first conflict found, or nil when the period is
// free. The rental with id excludeID is skipped, so an update does not
// conflict with its own stored state.
//
// Date boundaries are inclusive: a candidate starting on the day an
// existing rental ends still conflicts with it.
func FindConflict(candidate Period, existing []*Rental, excludeID string) *Conflict {
	for _, r := range existing {
		if excludeID != "" && r.ID == excludeID {
			continue
		}

		if r.Period.Open {
			return &Conflict{Kind: ConflictActiveOpenEnded, RentalID: r.ID}
		}

		// candidate.Start <= existing.End && (candidate open || candidate.End >= existing.Start)
		if !candidate.Start.After(r.Period.End) &&
			(candidate.Open || !candidate.End.Before(r.Period.Start)) {
			return &Conflict{Kind: ConflictDateRange, RentalID: r.ID}
		}
	}

	return nil
}
