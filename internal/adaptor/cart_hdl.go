package adaptor

import (
	"net/http"

	"dropship-store/internal/dto/request"
	"dropship-store/internal/usecase"
	"dropship-store/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CartHandler serves /auth/{userId}/...; SelfOrAdmin guards the path user.
type CartHandler struct {
	service usecase.CartService
	log     *zap.Logger
}

func NewCartHandler(service usecase.CartService, log *zap.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		log:     log,
	}
}

// GetCart handles GET /auth/{userId}/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.GetCart(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeServiceError(w, h.log, err, "get cart")
		return
	}

	utils.ResponseSuccess(w, "Cart retrieved successfully", utils.Payload{"cart": cart})
}

// AddToCart handles PUT /auth/{userId}/add-to-cart
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req request.AddToCartRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cart, err := h.service.AddToCart(r.Context(), chi.URLParam(r, "userId"), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "add to cart")
		return
	}

	utils.ResponseSuccess(w, "Product added to cart", utils.Payload{"cart": cart})
}

// UpdateCart handles PUT /auth/{userId}/update-cart
func (h *CartHandler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateCartRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cart, err := h.service.UpdateCartItem(r.Context(), chi.URLParam(r, "userId"), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update cart")
		return
	}

	utils.ResponseSuccess(w, "Cart updated", utils.Payload{"cart": cart})
}

// RemoveFromCart handles DELETE /auth/{userId}/remove-from-cart/{productId}
func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.RemoveFromCart(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "productId"))
	if err != nil {
		writeServiceError(w, h.log, err, "remove from cart")
		return
	}

	utils.ResponseSuccess(w, "Product removed from cart", utils.Payload{"cart": cart})
}
