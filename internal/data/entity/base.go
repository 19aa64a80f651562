package entity

import (
	"time"
)

// Base is embedded by every stored document. json and bson names match so
// the same struct works on every store driver.
type Base struct {
	ID        string    `json:"_id" bson:"_id"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (b *Base) GetBase() *Base { return b }

// Touch stamps a new document or a modification.
func (b *Base) Touch(now time.Time) {
	now = now.UTC()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

// Document is implemented by every stored entity.
type Document interface {
	GetBase() *Base
}

// Sluggable documents derive their slug from a display field.
type Sluggable interface {
	Document
	SlugSource() string
	SetSlug(slug string)
	GetSlug() string
}
