package domain

import "time"

// Department is the organizational unit vehicles and drivers belong to.
type Department struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
