package domain

import "time"

// Maintenance records a maintenance event on a vehicle.
type Maintenance struct {
	ID          string
	VehicleID   string
	Date        time.Time
	Kind        string
	Description string
	Cost        float64
	CreatedAt   time.Time
}
