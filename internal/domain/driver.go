package domain

import "time"

// Driver represents a driver registered with a department.
type Driver struct {
	ID            string
	CPF           string
	Name          string
	LicenseNumber string
	DepartmentID  string
	CreatedAt     time.Time
}
