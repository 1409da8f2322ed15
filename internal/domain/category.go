package domain

import "time"

// Category classifies tickets and may carry a default SLA applied when a
// ticket is created without an explicit one.
type Category struct {
	ID        string
	Name      string
	Color     string
	Icon      string
	SLAID     *string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
