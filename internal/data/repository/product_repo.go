package repository

import (
	"context"

	"dropship-store/internal/data/entity"
	"dropship-store/pkg/database"

	"go.uber.org/zap"
)

// ProductFilter narrows product lists; zero values mean "any".
type ProductFilter struct {
	Category string
	Search   string
	Sort     string
}

func (f ProductFilter) query(limit, offset int) database.Query {
	q := database.Query{Sort: f.Sort, Limit: limit, Offset: offset}
	if f.Category != "" {
		q.Filter = database.Filter{"category": f.Category}
	}
	if f.Search != "" {
		q.Search = &database.Search{Term: f.Search, Fields: []string{"name", "description"}}
	}
	return q
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id string) (*entity.Product, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Product, error)
	FindAll(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, error)
	Count(ctx context.Context, filter ProductFilter) (int64, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
}

type productRepository struct {
	docs docRepository[entity.Product, *entity.Product]
}

func NewProductRepository(store database.Store, log *zap.Logger) ProductRepository {
	return &productRepository{
		docs: newDocRepository[entity.Product](store, CollectionProducts, "product", log),
	}
}

func (pr *productRepository) Create(ctx context.Context, product *entity.Product) error {
	normalizeProduct(product)
	return pr.docs.create(ctx, product)
}

func (pr *productRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	return pr.docs.findByID(ctx, id)
}

func (pr *productRepository) FindBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	return pr.docs.findOne(ctx, database.Filter{"slug": slug})
}

func (pr *productRepository) FindAll(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, error) {
	return pr.docs.find(ctx, filter.query(limit, offset))
}

func (pr *productRepository) Count(ctx context.Context, filter ProductFilter) (int64, error) {
	return pr.docs.count(ctx, filter.query(0, 0))
}

func (pr *productRepository) Update(ctx context.Context, product *entity.Product) error {
	normalizeProduct(product)
	return pr.docs.update(ctx, product)
}

func (pr *productRepository) Delete(ctx context.Context, id string) error {
	return pr.docs.delete(ctx, id)
}

func normalizeProduct(product *entity.Product) {
	if product.Images == nil {
		product.Images = []string{}
	}
	if product.Reviews == nil {
		product.Reviews = []entity.Review{}
	}
}
