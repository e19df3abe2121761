package domain

import "time"

// User is an API account. Admins may mutate fleet data; everyone else can
// only read it.
type User struct {
	ID           string
	CPF          string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}
