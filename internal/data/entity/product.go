package entity

import "time"

type Product struct {
	Base        `bson:",inline"`
	Name        string   `json:"name" bson:"name"`
	Slug        string   `json:"slug" bson:"slug"`
	Description string   `json:"description" bson:"description"`
	Price       string   `json:"price" bson:"price"`
	Category    string   `json:"category" bson:"category"`
	Images      []string `json:"images" bson:"images"`
	Reviews     []Review `json:"reviews" bson:"reviews"`
}

// Review is embedded in its product, one per user.
type Review struct {
	User      string    `json:"user" bson:"user"`
	Name      string    `json:"name" bson:"name"`
	Rating    int       `json:"rating" bson:"rating"` // 1-5
	Note      string    `json:"note" bson:"note"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

func (p *Product) SlugSource() string  { return p.Name }
func (p *Product) SetSlug(slug string) { p.Slug = slug }
func (p *Product) GetSlug() string     { return p.Slug }

// UpsertReview replaces the user's existing review or appends a new one.
func (p *Product) UpsertReview(review Review) {
	for i := range p.Reviews {
		if p.Reviews[i].User == review.User {
			p.Reviews[i] = review
			return
		}
	}
	p.Reviews = append(p.Reviews, review)
}

func (p *Product) AverageRating() float64 {
	if len(p.Reviews) == 0 {
		return 0
	}
	total := 0
	for _, r := range p.Reviews {
		total += r.Rating
	}
	return float64(total) / float64(len(p.Reviews))
}
