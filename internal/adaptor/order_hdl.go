package adaptor

import (
	"net/http"
	"strings"

	"dropship-store/internal/dto/request"
	"dropship-store/internal/usecase"
	"dropship-store/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// IdempotencyHeader lets clients retry a checkout safely.
const IdempotencyHeader = "Idempotency-Key"

type OrderHandler struct {
	service usecase.OrderService
	log     *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log,
	}
}

// Checkout handles POST /auth/{userId}/checkout
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req request.CheckoutRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.IdempotencyKey = strings.TrimSpace(r.Header.Get(IdempotencyHeader))

	result, err := h.service.Checkout(r.Context(), chi.URLParam(r, "userId"), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "checkout")
		return
	}

	payload := utils.Payload{
		"user":     result.User,
		"order":    result.Order,
		"replayed": result.Replayed,
	}
	if result.Replayed {
		utils.ResponseSuccess(w, "Order already placed", payload)
		return
	}
	utils.ResponseCreated(w, "Order placed successfully", payload)
}

// GetUserPending handles GET /auth/{userId}/products
func (h *OrderHandler) GetUserPending(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.GetUserPending(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeServiceError(w, h.log, err, "get pending products")
		return
	}

	utils.ResponseSuccess(w, "Pending products retrieved successfully", utils.Payload{"products": products})
}

// Approve handles POST /auth/approve-all-products (admin only)
func (h *OrderHandler) Approve(w http.ResponseWriter, r *http.Request) {
	var req request.ApproveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.Approve(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "approve products")
		return
	}

	utils.ResponseSuccess(w, "Products approved successfully", utils.Payload{"user": user})
}

// GetPendingUsers handles GET /auth/pending-products (admin only)
func (h *OrderHandler) GetPendingUsers(w http.ResponseWriter, r *http.Request) {
	req := pageFromQuery(r)

	users, err := h.service.GetPendingUsers(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "get pending users")
		return
	}

	utils.ResponseSuccess(w, "Pending products retrieved successfully", utils.Payload{
		"users":      users.Data,
		"pagination": users.Pagination,
	})
}

// GetMyOrders handles GET /auth/orders
func (h *OrderHandler) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	req := pageFromQuery(r)

	orders, err := h.service.GetUserOrders(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "get orders")
		return
	}

	utils.ResponseSuccess(w, "Orders retrieved successfully", utils.Payload{
		"orders":     orders.Data,
		"pagination": orders.Pagination,
	})
}

// GetAllOrders handles GET /auth/all-orders?status= (admin only)
func (h *OrderHandler) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	req := request.OrderListRequest{
		PaginatedRequest: pageFromQuery(r),
		Status:           r.URL.Query().Get("status"),
	}

	orders, err := h.service.GetAllOrders(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "get all orders")
		return
	}

	utils.ResponseSuccess(w, "Orders retrieved successfully", utils.Payload{
		"orders":     orders.Data,
		"pagination": orders.Pagination,
	})
}

// GetOrder handles GET /auth/orders/{orderId} (admin only)
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		writeServiceError(w, h.log, err, "get order")
		return
	}

	utils.ResponseSuccess(w, "Order retrieved successfully", utils.Payload{"order": order})
}

// UpdateOrderStatus handles PUT /auth/order-status/{orderId} (admin only)
func (h *OrderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req request.OrderStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := h.service.UpdateOrderStatus(r.Context(), chi.URLParam(r, "orderId"), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update order status")
		return
	}

	utils.ResponseSuccess(w, "Order status updated", utils.Payload{"order": order})
}
