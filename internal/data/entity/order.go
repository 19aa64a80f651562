package entity

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
)

// Order snapshots one checkout. Status is free text.
type Order struct {
	Base            `bson:",inline"`
	User            string     `json:"user" bson:"user"`
	ShippingAddress string     `json:"shippingAddress" bson:"shippingAddress"`
	PhoneNumber     string     `json:"phoneNumber" bson:"phoneNumber"`
	ExpectedPrice   string     `json:"expectedPrice" bson:"expectedPrice"`
	CartItems       []CartItem `json:"cartItems" bson:"cartItems"`
	Status          string     `json:"status" bson:"status"`
	IdempotencyKey  string     `json:"idempotencyKey,omitempty" bson:"idempotencyKey,omitempty"`
}
