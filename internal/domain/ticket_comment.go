package domain

import "time"

// TicketComment is a threaded note on a ticket. Internal comments are only
// returned to staff roles.
type TicketComment struct {
	ID        string
	TicketID  string
	AuthorID  string
	Body      string
	Internal  bool
	CreatedAt time.Time
}
