package response

import "dropship-store/internal/data/entity"

type CartLineResponse struct {
	Product   string `json:"product"`
	Quantity  int    `json:"quantity"`
	Name      string `json:"name,omitempty"`
	Slug      string `json:"slug,omitempty"`
	Price     string `json:"price,omitempty"`
	Image     string `json:"image,omitempty"`
	LineTotal string `json:"lineTotal,omitempty"`
	// Missing marks a line whose product has since been deleted.
	Missing bool `json:"missing,omitempty"`
}

type CartResponse struct {
	Items         []CartLineResponse `json:"items"`
	TotalQuantity int                `json:"totalQuantity"`
	Subtotal      string             `json:"subtotal"`
}

// CheckoutResponse pairs the updated user with the order created for it.
type CheckoutResponse struct {
	User  UserResponse  `json:"user"`
	Order *entity.Order `json:"order"`
	// Replayed is true when an idempotency key matched an earlier checkout.
	Replayed bool `json:"replayed"`
}
