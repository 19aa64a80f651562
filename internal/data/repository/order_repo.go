package repository

import (
	"context"

	"dropship-store/internal/data/entity"
	"dropship-store/pkg/database"

	"go.uber.org/zap"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id string) (*entity.Order, error)
	FindByIdempotencyKey(ctx context.Context, userID, key string) (*entity.Order, error)
	FindByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Order, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	// FindAll lists every order, optionally only those with the given status.
	FindAll(ctx context.Context, status string, limit, offset int) ([]*entity.Order, error)
	CountAll(ctx context.Context, status string) (int64, error)
	Update(ctx context.Context, order *entity.Order) error
}

type orderRepository struct {
	docs docRepository[entity.Order, *entity.Order]
}

func NewOrderRepository(store database.Store, log *zap.Logger) OrderRepository {
	return &orderRepository{
		docs: newDocRepository[entity.Order](store, CollectionOrders, "order", log),
	}
}

func (o *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	if order.CartItems == nil {
		order.CartItems = []entity.CartItem{}
	}
	return o.docs.create(ctx, order)
}

func (o *orderRepository) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	return o.docs.findByID(ctx, id)
}

func (o *orderRepository) FindByIdempotencyKey(ctx context.Context, userID, key string) (*entity.Order, error) {
	return o.docs.findOne(ctx, database.Filter{"user": userID, "idempotencyKey": key})
}

func (o *orderRepository) FindByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Order, error) {
	return o.docs.find(ctx, database.Query{
		Filter: database.Filter{"user": userID},
		Limit:  limit,
		Offset: offset,
	})
}

func (o *orderRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	return o.docs.count(ctx, database.Query{Filter: database.Filter{"user": userID}})
}

func (o *orderRepository) FindAll(ctx context.Context, status string, limit, offset int) ([]*entity.Order, error) {
	return o.docs.find(ctx, database.Query{Filter: statusFilter(status), Limit: limit, Offset: offset})
}

func (o *orderRepository) CountAll(ctx context.Context, status string) (int64, error) {
	return o.docs.count(ctx, database.Query{Filter: statusFilter(status)})
}

func (o *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	return o.docs.update(ctx, order)
}

func statusFilter(status string) database.Filter {
	if status == "" {
		return nil
	}
	return database.Filter{"status": status}
}
