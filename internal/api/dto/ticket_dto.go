package dto

import (
	"time"

	"github.com/spec-kit/ticket-management/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateTicketRequest carries the exclude-unset partial update.
type UpdateTicketRequest struct {
	Status          *domain.TicketStatus `json:"status"`
	ResolutionNotes *string              `json:"resolution_notes"`
}

// AssignTicketRequest payload.
type AssignTicketRequest struct {
	AgentID string `json:"agent_id"`
}

// TicketResponse is the public projection of a ticket.
type TicketResponse struct {
	ID              string              `json:"id"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	Status          domain.TicketStatus `json:"status"`
	CustomerID      string              `json:"customer_id"`
	AgentID         *string             `json:"agent_id"`
	ResolutionNotes *string             `json:"resolution_notes"`
	EmbedToken      string              `json:"embed_token"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// NewTicketResponse maps the domain model.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:              ticket.ID,
		Title:           ticket.Title,
		Description:     ticket.Description,
		Status:          ticket.Status,
		CustomerID:      ticket.CustomerID,
		AgentID:         ticket.AgentID,
		ResolutionNotes: ticket.ResolutionNotes,
		EmbedToken:      ticket.EmbedToken,
		CreatedAt:       ticket.CreatedAt,
		UpdatedAt:       ticket.UpdatedAt,
	}
}
