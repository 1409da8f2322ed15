package domain

import "time"

// Branch is a physical location inside a zone.
type Branch struct {
	ID        string
	ZoneID    string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
