package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dropship-store/internal/data/entity"
	"dropship-store/internal/data/repository"
	"dropship-store/internal/dto/request"
	"dropship-store/internal/dto/response"
	"dropship-store/pkg/database"
	"dropship-store/pkg/utils"

	"go.uber.org/zap"
)

type TicketService interface {
	CreateTicket(ctx context.Context, userID string, req *request.TicketRequest) (*entity.Ticket, error)
	GetMyTickets(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[*entity.Ticket], error)
	// GetTicket returns ErrForbidden unless the caller owns the ticket or is an admin.
	GetTicket(ctx context.Context, id, callerID string, isAdmin bool) (*entity.Ticket, error)
	GetAllTickets(ctx context.Context, req *request.TicketListRequest) (*response.PaginatedResponse[*entity.Ticket], error)
	UpdateTicketStatus(ctx context.Context, id string, req *request.TicketStatusRequest) (*entity.Ticket, error)
	DeleteTicket(ctx context.Context, id string) error
}

type ticketService struct {
	ticketRepo repository.TicketRepository
	log        *zap.Logger
}

func NewTicketService(ticketRepo repository.TicketRepository, log *zap.Logger) TicketService {
	return &ticketService{
		ticketRepo: ticketRepo,
		log:        log.With(zap.String("service", "ticket")),
	}
}

func (s *ticketService) CreateTicket(ctx context.Context, userID string, req *request.TicketRequest) (*entity.Ticket, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fieldErrors(errs)
	}

	ticket := &entity.Ticket{
		User:        userID,
		Subject:     strings.TrimSpace(req.Subject),
		Description: req.Description,
		Status:      entity.TicketOpen,
	}
	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}

	s.log.Info("Ticket opened", zap.String("ticket_id", ticket.ID), zap.String("user_id", userID))
	return ticket, nil
}

func (s *ticketService) GetMyTickets(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[*entity.Ticket], error) {
	req.Normalize()
	return s.list(ctx, repository.TicketFilter{User: userID}, req)
}

func (s *ticketService) GetAllTickets(ctx context.Context, req *request.TicketListRequest) (*response.PaginatedResponse[*entity.Ticket], error) {
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fieldErrors(errs)
	}
	return s.list(ctx, repository.TicketFilter{Status: req.Status}, &req.PaginatedRequest)
}

func (s *ticketService) list(ctx context.Context, filter repository.TicketFilter, page *request.PaginatedRequest) (*response.PaginatedResponse[*entity.Ticket], error) {
	tickets, err := s.ticketRepo.FindAll(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("get tickets: %w", err)
	}
	total, err := s.ticketRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count tickets: %w", err)
	}
	return response.NewPaginatedResponse(tickets, page.Page, page.PerPage, total), nil
}

func (s *ticketService) GetTicket(ctx context.Context, id, callerID string, isAdmin bool) (*entity.Ticket, error) {
	ticket, err := s.findTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && ticket.User != callerID {
		s.log.Warn("Ticket access denied", zap.String("ticket_id", id), zap.String("user_id", callerID))
		return nil, fmt.Errorf("%w: ticket belongs to another user", ErrForbidden)
	}
	return ticket, nil
}

func (s *ticketService) UpdateTicketStatus(ctx context.Context, id string, req *request.TicketStatusRequest) (*entity.Ticket, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fieldErrors(errs)
	}

	ticket, err := s.findTicket(ctx, id)
	if err != nil {
		return nil, err
	}

	ticket.Status = entity.TicketStatus(req.Status)
	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, notFound("ticket")
		}
		return nil, fmt.Errorf("update ticket: %w", err)
	}

	s.log.Info("Ticket status updated", zap.String("ticket_id", id), zap.String("status", req.Status))
	return ticket, nil
}

func (s *ticketService) DeleteTicket(ctx context.Context, id string) error {
	if err := checkID("ticket", id); err != nil {
		return err
	}

	err := s.ticketRepo.Delete(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return notFound("ticket")
	}
	if err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}
	return nil
}

func (s *ticketService) findTicket(ctx context.Context, id string) (*entity.Ticket, error) {
	if err := checkID("ticket", id); err != nil {
		return nil, err
	}

	ticket, err := s.ticketRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	if ticket == nil {
		return nil, notFound("ticket")
	}
	return ticket, nil
}
