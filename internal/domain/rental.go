package domain

import "time"

// Rental represents a vehicle checkout: a driver takes a vehicle for a
// period of time. The period is open-ended until the vehicle is returned.
type Rental struct {
	ID          string
	VehicleID   string
	DriverID    string
	Period      Period
	Destination string
	Kilometers  *float64 // distance traveled, usually set when the rental closes
	CreatedAt   time.Time
}

// RentalPatch is a partial update to a rental. Nil fields are left
// unchanged. ClearEnd reopens the rental by removing its end date and takes
// precedence over EndDate.
type RentalPatch struct {
	VehicleID   *string
	DriverID    *string
	StartDate   *time.Time
	EndDate     *time.Time
	ClearEnd    bool
	Destination *string
	Kilometers  *float64
}

// Empty reports whether the patch changes nothing.
func (p RentalPatch) Empty() bool {
	return p.VehicleID == nil && p.DriverID == nil && p.StartDate == nil &&
		p.EndDate == nil && !p.ClearEnd && p.Destination == nil && p.Kilometers == nil
}

// AffectsPeriod reports whether applying the patch could change which
// vehicle is occupied or when, i.e. whether overlap validation must re-run.
func (p RentalPatch) AffectsPeriod() bool {
	return p.VehicleID != nil || p.StartDate != nil || p.EndDate != nil || p.ClearEnd
}
