package repository

import (
	"context"

	"dropship-store/internal/data/entity"
	"dropship-store/pkg/database"

	"go.uber.org/zap"
)

type TicketFilter struct {
	User   string
	Status string
}

func (f TicketFilter) filter() database.Filter {
	filter := database.Filter{}
	if f.User != "" {
		filter["user"] = f.User
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	return filter
}

type TicketRepository interface {
	Create(ctx context.Context, ticket *entity.Ticket) error
	FindByID(ctx context.Context, id string) (*entity.Ticket, error)
	FindAll(ctx context.Context, filter TicketFilter, limit, offset int) ([]*entity.Ticket, error)
	Count(ctx context.Context, filter TicketFilter) (int64, error)
	Update(ctx context.Context, ticket *entity.Ticket) error
	Delete(ctx context.Context, id string) error
}

type ticketRepository struct {
	docs docRepository[entity.Ticket, *entity.Ticket]
}

func NewTicketRepository(store database.Store, log *zap.Logger) TicketRepository {
	return &ticketRepository{
		docs: newDocRepository[entity.Ticket](store, CollectionTickets, "ticket", log),
	}
}

func (tr *ticketRepository) Create(ctx context.Context, ticket *entity.Ticket) error {
	return tr.docs.create(ctx, ticket)
}

func (tr *ticketRepository) FindByID(ctx context.Context, id string) (*entity.Ticket, error) {
	return tr.docs.findByID(ctx, id)
}

func (tr *ticketRepository) FindAll(ctx context.Context, filter TicketFilter, limit, offset int) ([]*entity.Ticket, error) {
	return tr.docs.find(ctx, database.Query{Filter: filter.filter(), Limit: limit, Offset: offset})
}

func (tr *ticketRepository) Count(ctx context.Context, filter TicketFilter) (int64, error) {
	return tr.docs.count(ctx, database.Query{Filter: filter.filter()})
}

func (tr *ticketRepository) Update(ctx context.Context, ticket *entity.Ticket) error {
	return tr.docs.update(ctx, ticket)
}

func (tr *ticketRepository) Delete(ctx context.Context, id string) error {
	return tr.docs.delete(ctx, id)
}
