package adaptor

import (
	"net/http"

	"dropship-store/internal/data/entity"
	"dropship-store/internal/dto/request"
	"dropship-store/internal/usecase"
	"dropship-store/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TicketHandler struct {
	service usecase.TicketService
	log     *zap.Logger
}

func NewTicketHandler(service usecase.TicketService, log *zap.Logger) *TicketHandler {
	return &TicketHandler{
		service: service,
		log:     log,
	}
}

// CreateTicket handles POST /ticket/create-ticket
func (h *TicketHandler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.TicketRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ticket, err := h.service.CreateTicket(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create ticket")
		return
	}

	utils.ResponseCreated(w, "Ticket created successfully", utils.Payload{"ticket": ticket})
}

// GetMyTickets handles GET /ticket/my-tickets
func (h *TicketHandler) GetMyTickets(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	req := pageFromQuery(r)

	tickets, err := h.service.GetMyTickets(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "get my tickets")
		return
	}

	utils.ResponseSuccess(w, "Tickets retrieved successfully", utils.Payload{
		"tickets":    tickets.Data,
		"pagination": tickets.Pagination,
	})
}

// GetTicket handles GET /ticket/get-ticket/{id}
func (h *TicketHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	ticket, err := h.service.GetTicket(r.Context(), chi.URLParam(r, "id"), userID, role == string(entity.RoleAdmin))
	if err != nil {
		writeServiceError(w, h.log, err, "get ticket")
		return
	}

	utils.ResponseSuccess(w, "Ticket retrieved successfully", utils.Payload{"ticket": ticket})
}

// GetAllTickets handles GET /ticket/get-tickets?status= (admin only)
func (h *TicketHandler) GetAllTickets(w http.ResponseWriter, r *http.Request) {
	req := request.TicketListRequest{
		PaginatedRequest: pageFromQuery(r),
		Status:           r.URL.Query().Get("status"),
	}

	tickets, err := h.service.GetAllTickets(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "get tickets")
		return
	}

	utils.ResponseSuccess(w, "Tickets retrieved successfully", utils.Payload{
		"tickets":    tickets.Data,
		"pagination": tickets.Pagination,
	})
}

// UpdateTicket handles PUT /ticket/update-ticket/{id} (admin only)
func (h *TicketHandler) UpdateTicket(w http.ResponseWriter, r *http.Request) {
	var req request.TicketStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ticket, err := h.service.UpdateTicketStatus(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update ticket")
		return
	}

	utils.ResponseSuccess(w, "Ticket updated successfully", utils.Payload{"ticket": ticket})
}

// DeleteTicket handles DELETE /ticket/delete-ticket/{id} (admin only)
func (h *TicketHandler) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteTicket(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.log, err, "delete ticket")
		return
	}

	utils.ResponseSuccess(w, "Ticket deleted successfully", nil)
}
