package domain

import "time"

// EscalationRule maps a ticket priority to breach timing and escalation
// targets. Rules are matched to tickets by priority equality only.
type EscalationRule struct {
	ID                  string
	Name                string
	Priority            TicketPriority
	TriggerAfterMinutes int
	Level1Escalate      string
	Level2Escalate      string
	NotifyUserIDs       []string
	AutoEscalate        bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TriggerAfter returns the first-breach threshold as a duration.
func (r *EscalationRule) TriggerAfter() time.Duration {
	return time.Duration(r.TriggerAfterMinutes) * time.Minute
}
