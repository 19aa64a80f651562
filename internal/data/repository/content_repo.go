package repository

import (
	"context"

	"dropship-store/internal/data/entity"
	"dropship-store/pkg/database"

	"go.uber.org/zap"
)

// ContentRepository serves the flat slug-bearing entities: categories,
// features, integrations, faqs, jobs and newsfeed items.
type ContentRepository[E any, P entity.Content[E]] interface {
	Create(ctx context.Context, doc *E) error
	FindByID(ctx context.Context, id string) (*E, error)
	FindBySlug(ctx context.Context, slug string) (*E, error)
	FindAll(ctx context.Context, search string, limit, offset int) ([]*E, error)
	Count(ctx context.Context, search string) (int64, error)
	Update(ctx context.Context, doc *E) error
	Delete(ctx context.Context, id string) error
}

type contentRepository[E any, P entity.Content[E]] struct {
	docs         docRepository[E, P]
	searchFields []string
}

func NewContentRepository[E any, P entity.Content[E]](
	store database.Store,
	collection, kind string,
	searchFields []string,
	log *zap.Logger,
) ContentRepository[E, P] {
	return &contentRepository[E, P]{
		docs:         newDocRepository[E, P](store, collection, kind, log),
		searchFields: searchFields,
	}
}

func (r *contentRepository[E, P]) query(search string, limit, offset int) database.Query {
	q := database.Query{Limit: limit, Offset: offset}
	if search != "" {
		q.Search = &database.Search{Term: search, Fields: r.searchFields}
	}
	return q
}

func (r *contentRepository[E, P]) Create(ctx context.Context, doc *E) error {
	return r.docs.create(ctx, doc)
}

func (r *contentRepository[E, P]) FindByID(ctx context.Context, id string) (*E, error) {
	return r.docs.findByID(ctx, id)
}

func (r *contentRepository[E, P]) FindBySlug(ctx context.Context, slug string) (*E, error) {
	return r.docs.findOne(ctx, database.Filter{"slug": slug})
}

func (r *contentRepository[E, P]) FindAll(ctx context.Context, search string, limit, offset int) ([]*E, error) {
	return r.docs.find(ctx, r.query(search, limit, offset))
}

func (r *contentRepository[E, P]) Count(ctx context.Context, search string) (int64, error) {
	return r.docs.count(ctx, r.query(search, 0, 0))
}

func (r *contentRepository[E, P]) Update(ctx context.Context, doc *E) error {
	return r.docs.update(ctx, doc)
}

func (r *contentRepository[E, P]) Delete(ctx context.Context, id string) error {
	return r.docs.delete(ctx, id)
}
