package domain

import "time"

// User represents a registered account in the system.
type User struct {
	ID        string
	Email     string
	Name      string
	Role      string
	CreatedAt time.Time
}
