package request

type ProductRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	Description string   `json:"description" validate:"required,max=5000"`
	Price       string   `json:"price" validate:"required,numeric"`
	Category    string   `json:"category" validate:"required,uuid"`
	Images      []string `json:"images,omitempty" validate:"omitempty,dive,url"`
}

type ProductUpdateRequest struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string   `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price       *string   `json:"price,omitempty" validate:"omitempty,numeric"`
	Category    *string   `json:"category,omitempty" validate:"omitempty,uuid"`
	Images      *[]string `json:"images,omitempty" validate:"omitempty,dive,url"`
}

// ProductListRequest carries the optional list filters.
type ProductListRequest struct {
	PaginatedRequest
	Category string `validate:"omitempty,uuid"`
	Search   string `validate:"max=100"`
	Sort     string `validate:"omitempty,oneof=createdAt -createdAt name -name"`
}

type ReviewRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Note   string `json:"note,omitempty" validate:"max=1000"`
}
