package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusResolved   TicketStatus = "Resolved"
	TicketStatusClosed     TicketStatus = "Closed"
)

// Valid reports whether the status is one of the four enum members.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// Ticket is the aggregate for support requests. CustomerID and AgentID are
// non-owning references into users; deleting a user does not cascade.
type Ticket struct {
	ID              string
	Title           string
	Description     string
	Status          TicketStatus
	CustomerID      string
	AgentID         *string
	ResolutionNotes *string
	EmbedToken      string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
