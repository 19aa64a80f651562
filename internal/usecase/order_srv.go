package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dropship-store/internal/data/entity"
	"dropship-store/internal/data/repository"
	"dropship-store/internal/dto/request"
	"dropship-store/internal/dto/response"
	"dropship-store/pkg/database"
	"dropship-store/pkg/events"
	"dropship-store/pkg/utils"

	"go.uber.org/zap"
)

type OrderService interface {
	Checkout(ctx context.Context, userID string, req *request.CheckoutRequest) (*response.CheckoutResponse, error)
	Approve(ctx context.Context, req *request.ApproveRequest) (*response.UserResponse, error)
	GetUserPending(ctx context.Context, userID string) ([]entity.PendingProduct, error)
	GetPendingUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	GetUserOrders(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[*entity.Order], error)
	GetAllOrders(ctx context.Context, req *request.OrderListRequest) (*response.PaginatedResponse[*entity.Order], error)
	GetOrder(ctx context.Context, orderID string) (*entity.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, req *request.OrderStatusRequest) (*entity.Order, error)
}

type orderService struct {
	repo      *repository.Repository
	publisher events.Publisher
	log       *zap.Logger
}

func NewOrderService(repo *repository.Repository, publisher events.Publisher, log *zap.Logger) OrderService {
	return &orderService{
		repo:      repo,
		publisher: publisher,
		log:       log.With(zap.String("service", "order")),
	}
}

func (s *orderService) Checkout(ctx context.Context, userID string, req *request.CheckoutRequest) (*response.CheckoutResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Checkout validation failed", zap.Any("errors", errs), zap.String("user_id", userID))
		return nil, fieldErrors(errs)
	}
	if err := checkID("user", userID); err != nil {
		return nil, err
	}

	var (
		user     *entity.User
		order    *entity.Order
		replayed bool
	)

	// 2. Order, pending merge and cart reset commit together
	err := s.repo.Store.WithTx(ctx, func(ctx context.Context) error {
		order, replayed = nil, false

		var err error
		user, err = s.repo.User.FindByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}
		if user == nil {
			return notFound("user")
		}

		if req.IdempotencyKey != "" {
			order, err = s.repo.Order.FindByIdempotencyKey(ctx, userID, req.IdempotencyKey)
			if err != nil {
				return fmt.Errorf("check idempotency key: %w", err)
			}
			if order != nil {
				replayed = true
				return nil
			}
		}

		if len(user.Cart) == 0 {
			return validationError("cart is empty")
		}

		snapshot := req.CartItems
		if len(snapshot) == 0 {
			snapshot = append([]entity.CartItem(nil), user.Cart...)
		}

		order = &entity.Order{
			User:            userID,
			ShippingAddress: req.ShippingAddress,
			PhoneNumber:     req.PhoneNumber,
			ExpectedPrice:   req.ExpectedPrice,
			CartItems:       snapshot,
			Status:          entity.OrderStatusPending,
			IdempotencyKey:  req.IdempotencyKey,
		}
		if err := s.repo.Order.Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		mergePending(user, order)
		user.Cart = []entity.CartItem{}

		if err := s.repo.User.Update(ctx, user); err != nil {
			return fmt.Errorf("save user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if replayed {
		s.log.Info("Checkout replayed",
			zap.String("user_id", userID),
			zap.String("order_id", order.ID),
			zap.String("idempotency_key", req.IdempotencyKey))
	} else {
		s.log.Info("Checkout completed",
			zap.String("user_id", userID),
			zap.String("order_id", order.ID),
			zap.Int("items", len(order.CartItems)))
		s.publish(ctx, events.OrderCreated, order)
	}

	return &response.CheckoutResponse{
		User:     response.UserToResponse(user),
		Order:    order,
		Replayed: replayed,
	}, nil
}

// mergePending folds the user's cart into their pending products, one entry
// per product, each remembering the orders that contributed to it.
func mergePending(user *entity.User, order *entity.Order) {
	for _, item := range user.Cart {
		merged := false
		for i := range user.Products {
			entry := &user.Products[i]
			if entry.Product != item.Product {
				continue
			}
			entry.Quantity += item.Quantity
			entry.ExpectedPrice = order.ExpectedPrice
			entry.ShippingAddress = order.ShippingAddress
			entry.PhoneNumber = order.PhoneNumber
			entry.Orders = append(entry.Orders, order.ID)
			merged = true
			break
		}
		if merged {
			continue
		}

		user.Products = append(user.Products, entity.PendingProduct{
			ID:              utils.GenerateID(),
			Product:         item.Product,
			Status:          false,
			ExpectedPrice:   order.ExpectedPrice,
			ShippingAddress: order.ShippingAddress,
			PhoneNumber:     order.PhoneNumber,
			Quantity:        item.Quantity,
			Orders:          []string{order.ID},
		})
	}
}

func (s *orderService) Approve(ctx context.Context, req *request.ApproveRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Approve validation failed", zap.Any("errors", errs))
		return nil, fieldErrors(errs)
	}

	approve := make(map[string]bool, len(req.Products))
	for _, item := range req.Products {
		approve[item.ProductID] = true
	}

	var (
		user      *entity.User
		completed []*entity.Order
	)

	err := s.repo.Store.WithTx(ctx, func(ctx context.Context) error {
		// fn may be re-run by the driver
		completed = nil

		var err error
		user, err = s.repo.User.FindByID(ctx, req.UserID)
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}
		if user == nil {
			return notFound("user")
		}

		// 1. Drop the approved entries
		kept := make([]entity.PendingProduct, 0, len(user.Products))
		var touched []string
		for _, entry := range user.Products {
			if approve[entry.ID] {
				touched = append(touched, entry.Orders...)
				continue
			}
			kept = append(kept, entry)
		}
		user.Products = kept

		stillPending := make(map[string]bool)
		for _, entry := range kept {
			for _, orderID := range entry.Orders {
				stillPending[orderID] = true
			}
		}

		// 2. Complete orders nothing refers to any more
		seen := make(map[string]bool, len(touched))
		for _, orderID := range touched {
			if seen[orderID] || stillPending[orderID] {
				continue
			}
			seen[orderID] = true

			order, err := s.repo.Order.FindByID(ctx, orderID)
			if err != nil {
				return fmt.Errorf("load order: %w", err)
			}
			if order == nil {
				s.log.Warn("Approved entry references a missing order",
					zap.String("user_id", user.ID),
					zap.String("order_id", orderID))
				continue
			}
			if order.Status == entity.OrderStatusCompleted {
				continue
			}

			order.Status = entity.OrderStatusCompleted
			if err := s.repo.Order.Update(ctx, order); err != nil {
				return fmt.Errorf("complete order: %w", err)
			}
			completed = append(completed, order)
		}

		if err := s.repo.User.Update(ctx, user); err != nil {
			return fmt.Errorf("save user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Pending products approved",
		zap.String("user_id", user.ID),
		zap.Int("requested", len(req.Products)),
		zap.Int("orders_completed", len(completed)))

	for _, order := range completed {
		s.publish(ctx, events.OrderCompleted, order)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *orderService) GetUserPending(ctx context.Context, userID string) ([]entity.PendingProduct, error) {
	if err := checkID("user", userID); err != nil {
		return nil, err
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get pending products: %w", err)
	}
	if user == nil {
		return nil, notFound("user")
	}
	if user.Products == nil {
		return []entity.PendingProduct{}, nil
	}
	return user.Products, nil
}

func (s *orderService) GetPendingUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	req.Normalize()

	users, err := s.repo.User.FindWithPending(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get pending users: %w", err)
	}
	total, err := s.repo.User.CountWithPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("count pending users: %w", err)
	}

	data := response.Map(users, response.UserToResponse)
	return response.NewPaginatedResponse(data, req.Page, req.PerPage, total), nil
}

func (s *orderService) GetUserOrders(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[*entity.Order], error) {
	if err := checkID("user", userID); err != nil {
		return nil, err
	}
	req.Normalize()

	orders, err := s.repo.Order.FindByUser(ctx, userID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get user orders: %w", err)
	}
	total, err := s.repo.Order.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count user orders: %w", err)
	}

	return response.NewPaginatedResponse(orders, req.Page, req.PerPage, total), nil
}

func (s *orderService) GetAllOrders(ctx context.Context, req *request.OrderListRequest) (*response.PaginatedResponse[*entity.Order], error) {
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fieldErrors(errs)
	}

	orders, err := s.repo.Order.FindAll(ctx, req.Status, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get orders: %w", err)
	}
	total, err := s.repo.Order.CountAll(ctx, req.Status)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	s.log.Debug("Orders retrieved",
		zap.String("status", req.Status),
		zap.Int("count", len(orders)),
		zap.Int64("total", total))

	return response.NewPaginatedResponse(orders, req.Page, req.PerPage, total), nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID string) (*entity.Order, error) {
	if err := checkID("order", orderID); err != nil {
		return nil, err
	}

	order, err := s.repo.Order.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, notFound("order")
	}
	return order, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID string, req *request.OrderStatusRequest) (*entity.Order, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fieldErrors(errs)
	}

	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	previous := order.Status
	order.Status = strings.TrimSpace(req.Status)

	err = s.repo.Order.Update(ctx, order)
	if errors.Is(err, database.ErrNotFound) {
		return nil, notFound("order")
	}
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	s.log.Info("Order status updated",
		zap.String("order_id", order.ID),
		zap.String("from", previous),
		zap.String("to", order.Status))

	if order.Status == entity.OrderStatusCompleted && previous != entity.OrderStatusCompleted {
		s.publish(ctx, events.OrderCompleted, order)
	}
	return order, nil
}

// publish never fails the request; the state change is already committed.
func (s *orderService) publish(ctx context.Context, eventType string, order *entity.Order) {
	items := 0
	for _, item := range order.CartItems {
		items += item.Quantity
	}

	event := events.OrderEvent{
		Type:          eventType,
		OrderID:       order.ID,
		UserID:        order.User,
		Status:        order.Status,
		ExpectedPrice: order.ExpectedPrice,
		Items:         items,
		OccurredAt:    time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, order.ID, event); err != nil {
		s.log.Error("Failed to publish order event",
			zap.String("event", eventType),
			zap.String("order_id", order.ID),
			zap.Error(err))
	}
}
