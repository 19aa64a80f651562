package entity

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	Base     `bson:",inline"`
	Name     string           `json:"name" bson:"name"`
	Email    string           `json:"email" bson:"email"`
	Password string           `json:"password" bson:"password"`
	Phone    string           `json:"phone" bson:"phone"`
	Address  string           `json:"address" bson:"address"`
	Role     UserRole         `json:"role" bson:"role"`
	Cart     []CartItem       `json:"cart" bson:"cart"`
	Products []PendingProduct `json:"products" bson:"products"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// CartItem is one cart line, at most one per product.
type CartItem struct {
	Product  string `json:"product" bson:"product" validate:"required,uuid"`
	Quantity int    `json:"quantity" bson:"quantity" validate:"min=1"`
}

// PendingProduct is a purchase request created at checkout and removed on approval.
type PendingProduct struct {
	ID              string   `json:"_id" bson:"_id"`
	Product         string   `json:"product" bson:"product"`
	Status          bool     `json:"status" bson:"status"`
	ExpectedPrice   string   `json:"expectedPrice" bson:"expectedPrice"`
	ShippingAddress string   `json:"shippingAddress" bson:"shippingAddress"`
	PhoneNumber     string   `json:"phoneNumber" bson:"phoneNumber"`
	Quantity        int      `json:"quantity" bson:"quantity"`
	Orders          []string `json:"orders" bson:"orders"`
}

// CartLine returns the index of the line for productID, or -1.
func (u *User) CartLine(productID string) int {
	for i, item := range u.Cart {
		if item.Product == productID {
			return i
		}
	}
	return -1
}
