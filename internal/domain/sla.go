package domain

import "time"

// SLA defines response and resolution budgets, in minutes, for a priority.
// ResolutionMinutes must be >= ResponseMinutes.
type SLA struct {
	ID                string
	Name              string
	Priority          TicketPriority
	ResponseMinutes   int
	ResolutionMinutes int
	CategoryID        *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DueAt computes the resolution deadline for a ticket created at the given time.
func (s *SLA) DueAt(createdAt time.Time) time.Time {
	return createdAt.Add(time.Duration(s.ResolutionMinutes) * time.Minute)
}
