package response

import (
	"time"

	"dropship-store/internal/data/entity"
)

// AuthUser is the identity block returned by login.
type AuthUser struct {
	ID      string          `json:"_id"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Phone   string          `json:"phone"`
	Address string          `json:"address"`
	Role    entity.UserRole `json:"role"`
}

type AuthResponse struct {
	User      AuthUser  `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UserResponse is a user without the password hash.
type UserResponse struct {
	ID        string                  `json:"_id"`
	Name      string                  `json:"name"`
	Email     string                  `json:"email"`
	Phone     string                  `json:"phone"`
	Address   string                  `json:"address"`
	Role      entity.UserRole         `json:"role"`
	Cart      []entity.CartItem       `json:"cart"`
	Products  []entity.PendingProduct `json:"products"`
	CreatedAt time.Time               `json:"createdAt"`
	UpdatedAt time.Time               `json:"updatedAt"`
}

// Helper converters
func UserToResponse(user *entity.User) UserResponse {
	resp := UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Address:   user.Address,
		Role:      user.Role,
		Cart:      user.Cart,
		Products:  user.Products,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	if resp.Cart == nil {
		resp.Cart = []entity.CartItem{}
	}
	if resp.Products == nil {
		resp.Products = []entity.PendingProduct{}
	}
	return resp
}

func AuthToResponse(user *entity.User, token string, expiresAt time.Time) AuthResponse {
	return AuthResponse{
		User: AuthUser{
			ID:      user.ID,
			Name:    user.Name,
			Email:   user.Email,
			Phone:   user.Phone,
			Address: user.Address,
			Role:    user.Role,
		},
		Token:     token,
		ExpiresAt: expiresAt,
	}
}
