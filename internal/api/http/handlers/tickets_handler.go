package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-management/internal/api/dto"
	"github.com/spec-kit/ticket-management/internal/auth"
	"github.com/spec-kit/ticket-management/internal/domain"
	"github.com/spec-kit/ticket-management/internal/service"
	apperrors "github.com/spec-kit/ticket-management/pkg/util"
)

// TicketsHandler manages ticket endpoints. Role whitelists live on the
// routes; ownership and assignment scoping live here.
type TicketsHandler struct {
	tickets *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{tickets: ticketService}
}

// CreateTicket POST /tickets (role: customer).
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" || req.Description == "" {
		return apperrors.NewValidationError("title and description required", nil)
	}

	ticket, err := h.tickets.Create(c.Context(), principal.ID, service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// MyTickets GET /tickets/my (any authenticated user). An empty result is a
// 404, matching the documented surface.
func (h *TicketsHandler) MyTickets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	tickets, err := h.tickets.ListByCustomer(c.Context(), principal.ID)
	if err != nil {
		return err
	}
	if len(tickets) == 0 {
		return apperrors.NewNotFound("tickets", map[string]any{"customer_id": principal.ID})
	}
	return c.JSON(fiber.Map{"data": ticketResponses(tickets)})
}

// ListTickets GET /tickets (role: agent, admin). Non-admin agents default the
// agent filter to themselves; admins see everything unless they filter.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	filter := service.TicketListFilter{}
	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.TicketStatus(statusStr)
		filter.Status = &status
	}
	if agentID := c.Query("agent_id"); agentID != "" {
		filter.AgentID = &agentID
	}
	if filter.AgentID == nil && principal.Role == domain.RoleAgent {
		filter.AgentID = &principal.ID
	}

	tickets, err := h.tickets.List(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponses(tickets)})
}

// GetTicket GET /tickets/:id (any role). Customers may only view their own
// tickets; denial surfaces as not-found so existence does not leak.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticket, err := h.tickets.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if principal.Role == domain.RoleCustomer && ticket.CustomerID != principal.ID {
		return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticket.ID})
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// UpdateTicket PATCH /tickets/:id (role: agent, admin). A non-admin agent
// not assigned to the ticket gets not-found rather than forbidden.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticketID := c.Params("id")
	ticket, err := h.tickets.Get(c.Context(), ticketID)
	if err != nil {
		return err
	}
	if principal.Role != domain.RoleAdmin {
		if ticket.AgentID == nil || *ticket.AgentID != principal.ID {
			return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
	}

	updated, err := h.tickets.Update(c.Context(), ticketID, service.TicketUpdate{
		Status:          req.Status,
		ResolutionNotes: req.ResolutionNotes,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(updated)})
}

// AssignTicket PATCH /tickets/:id/assign (role: admin).
func (h *TicketsHandler) AssignTicket(c *fiber.Ctx) error {
	var req dto.AssignTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.AgentID == "" {
		return apperrors.NewValidationError("agent_id required", nil)
	}

	ticket, err := h.tickets.Assign(c.Context(), c.Params("id"), req.AgentID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

func ticketResponses(tickets []domain.Ticket) []dto.TicketResponse {
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.NewTicketResponse(&tickets[i]))
	}
	return items
}
