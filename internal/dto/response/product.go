package response

import (
	"math"
	"time"

	"dropship-store/internal/data/entity"
)

type ProductResponse struct {
	ID            string          `json:"_id"`
	Name          string          `json:"name"`
	Slug          string          `json:"slug"`
	Description   string          `json:"description"`
	Price         string          `json:"price"`
	Category      string          `json:"category"`
	Images        []string        `json:"images"`
	Reviews       []entity.Review `json:"reviews"`
	AverageRating float64         `json:"averageRating"`
	NumReviews    int             `json:"numReviews"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func ProductToResponse(p *entity.Product) ProductResponse {
	resp := ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Slug:          p.Slug,
		Description:   p.Description,
		Price:         p.Price,
		Category:      p.Category,
		Images:        p.Images,
		Reviews:       p.Reviews,
		AverageRating: math.Round(p.AverageRating()*10) / 10,
		NumReviews:    len(p.Reviews),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if resp.Images == nil {
		resp.Images = []string{}
	}
	if resp.Reviews == nil {
		resp.Reviews = []entity.Review{}
	}
	return resp
}
