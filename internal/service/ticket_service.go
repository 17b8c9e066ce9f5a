package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/ticket-management/internal/domain"
	"github.com/spec-kit/ticket-management/internal/events"
	"github.com/spec-kit/ticket-management/internal/repository"
	apperrors "github.com/spec-kit/ticket-management/pkg/util"
)

// TicketService coordinates ticket workflows. It is role-free: authorization
// happens one layer up, in the HTTP handlers.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
}

// TicketUpdate is the exclude-unset partial update for tickets. Only non-nil
// fields are applied; there is no status transition guard.
type TicketUpdate struct {
	Status          *domain.TicketStatus
	ResolutionNotes *string
}

// TicketListFilter holds optional equality filters, ANDed when present.
type TicketListFilter struct {
	Status  *domain.TicketStatus
	AgentID *string
}

// NewTicketService constructs the service.
func NewTicketService(tickets repository.TicketRepository, dispatcher events.Dispatcher) *TicketService {
	return &TicketService{tickets: tickets, dispatcher: dispatcher}
}

// Create opens a ticket for a customer with a fresh embed token.
func (s *TicketService) Create(ctx context.Context, customerID string, input TicketCreateInput) (*domain.Ticket, error) {
	ticket := &domain.Ticket{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Status:      domain.TicketStatusOpen,
		CustomerID:  customerID,
		EmbedToken:  newEmbedToken(),
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			CustomerID: ticket.CustomerID,
			Title:      ticket.Title,
		},
	})
	return ticket, nil
}

// Get fetches a ticket by id.
func (s *TicketService) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// ListByCustomer returns all tickets owned by a customer.
func (s *TicketService) ListByCustomer(ctx context.Context, customerID string) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// List returns tickets matching the optional status/agent filters.
func (s *TicketService) List(ctx context.Context, filter TicketListFilter) ([]domain.Ticket, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": string(*filter.Status)})
	}
	tickets, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		Status:  filter.Status,
		AgentID: filter.AgentID,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// Update applies only the fields present in the partial input. Any of the
// four statuses may be set from any other; re-applying the same payload is
// idempotent.
func (s *TicketService) Update(ctx context.Context, id string, update TicketUpdate) (*domain.Ticket, error) {
	if update.Status != nil && !update.Status.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": string(*update.Status)})
	}

	ticket, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := ticket.Status
	if update.Status != nil {
		ticket.Status = *update.Status
	}
	if update.ResolutionNotes != nil {
		ticket.ResolutionNotes = update.ResolutionNotes
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	if ticket.Status != oldStatus {
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: ticket.ID,
			Payload: events.TicketStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: ticket.Status,
			},
		})
	}
	return ticket, nil
}

// Assign overwrites the assigned agent. The target is not validated against
// the directory; the admin-only route is the only gate.
func (s *TicketService) Assign(ctx context.Context, id, agentID string) (*domain.Ticket, error) {
	ticket, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	oldAgent := ticket.AgentID
	ticket.AgentID = &agentID
	if err := s.tickets.Update(ctx, ticket); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		Payload: events.TicketAssignedPayload{
			AgentID:    ticket.AgentID,
			OldAgentID: oldAgent,
		},
	})
	return ticket, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func newEmbedToken() string {
	return "EMB-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:16])
}
