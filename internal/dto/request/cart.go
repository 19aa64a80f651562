package request

import "dropship-store/internal/data/entity"

type AddToCartRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  *int   `json:"quantity,omitempty" validate:"omitempty,min=1"`
}

// UpdateCartRequest quantity is checked by the cart service so a
// non-positive value is reported without touching the line.
type UpdateCartRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity"`
}

type CheckoutRequest struct {
	ShippingAddress string            `json:"shippingAddress" validate:"required"`
	PhoneNumber     string            `json:"phoneNumber" validate:"required"`
	ExpectedPrice   string            `json:"expectedPrice" validate:"required"`
	CartItems       []entity.CartItem `json:"cartItems" validate:"omitempty,dive"`
	IdempotencyKey  string            `json:"-"`
}

type ApproveItem struct {
	ProductID string `json:"productId" validate:"required"`
}

type ApproveRequest struct {
	UserID   string        `json:"userId" validate:"required,uuid"`
	Products []ApproveItem `json:"products" validate:"required,min=1,dive"`
}

type OrderStatusRequest struct {
	Status string `json:"status" validate:"required,max=50"`
}

type OrderListRequest struct {
	PaginatedRequest
	Status string `validate:"max=50"`
}
