package domain

import "time"

// Fine represents a traffic fine issued against a vehicle, optionally
// attributed to a driver.
type Fine struct {
	ID          string
	VehicleID   string
	DriverID    string // empty when the fine could not be attributed
	Date        time.Time
	Kind        string
	Amount      float64
	Description string
	CreatedAt   time.Time
}
