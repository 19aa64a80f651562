package usecase

import (
	"context"
	"errors"
	"testing"

	"dropship-store/internal/data/entity"
	"dropship-store/internal/dto/request"
)

func TestTicketAccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner@example.com")
	other := f.user(t, "other@example.com")

	ticket, err := f.svc.Ticket.CreateTicket(ctx, owner.ID, &request.TicketRequest{
		Subject:     "Late delivery",
		Description: "Order has not arrived",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if ticket.Status != entity.TicketOpen || ticket.User != owner.ID {
		t.Fatalf("unexpected ticket %+v", ticket)
	}

	if _, err := f.svc.Ticket.GetTicket(ctx, ticket.ID, owner.ID, false); err != nil {
		t.Fatalf("owner read: %v", err)
	}
	if _, err := f.svc.Ticket.GetTicket(ctx, ticket.ID, other.ID, false); !errors.Is(err, ErrForbidden) {
		t.Fatalf("other user: expected ErrForbidden, got %v", err)
	}
	if _, err := f.svc.Ticket.GetTicket(ctx, ticket.ID, other.ID, true); err != nil {
		t.Fatalf("admin read: %v", err)
	}

	mine, err := f.svc.Ticket.GetMyTickets(ctx, other.ID, &request.PaginatedRequest{})
	if err != nil || mine.Pagination.Total != 0 {
		t.Fatalf("other user should have no tickets: %+v (%v)", mine, err)
	}
}

func TestTicketStatusUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner@example.com")

	ticket, err := f.svc.Ticket.CreateTicket(ctx, owner.ID, &request.TicketRequest{Subject: "Refund", Description: "Broken item"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := f.svc.Ticket.UpdateTicketStatus(ctx, ticket.ID, &request.TicketStatusRequest{Status: "pending"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad status: expected ErrValidation, got %v", err)
	}

	closed, err := f.svc.Ticket.UpdateTicketStatus(ctx, ticket.ID, &request.TicketStatusRequest{Status: "closed"})
	if err != nil || closed.Status != entity.TicketClosed {
		t.Fatalf("close: %+v (%v)", closed, err)
	}

	open, err := f.svc.Ticket.GetAllTickets(ctx, &request.TicketListRequest{Status: "open"})
	if err != nil || open.Pagination.Total != 0 {
		t.Fatalf("expected no open tickets: %+v (%v)", open, err)
	}

	if err := f.svc.Ticket.DeleteTicket(ctx, ticket.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.svc.Ticket.GetTicket(ctx, ticket.ID, owner.ID, false); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
