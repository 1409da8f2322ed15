package domain

import "time"

// Zone represents a geographic or organizational service area.
type Zone struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
