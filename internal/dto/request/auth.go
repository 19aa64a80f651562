package request

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"required,min=6,max=20"`
	Address  string `json:"address,omitempty" validate:"omitempty,max=300"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=6,max=20"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=300"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6"`
}
