package domain

import "time"

// Vehicle represents a fleet vehicle owned by a department.
type Vehicle struct {
	ID           string
	Plate        string
	Type         string // e.g. "Carro", "Caminhão"
	DepartmentID string
	CreatedAt    time.Time
}
