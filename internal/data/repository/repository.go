package repository

import (
	"context"
	"fmt"

	"dropship-store/internal/data/entity"
	"dropship-store/pkg/database"

	"go.uber.org/zap"
)

const (
	CollectionUsers         = "users"
	CollectionProducts      = "products"
	CollectionOrders        = "orders"
	CollectionTickets       = "tickets"
	CollectionRevokedTokens = "revoked_tokens"
	CollectionCategories    = "categories"
	CollectionFeatures      = "features"
	CollectionIntegrations  = "integrations"
	CollectionFAQs          = "faqs"
	CollectionJobs          = "jobs"
	CollectionNewsfeeds     = "newsfeeds"
)

type Repository struct {
	Store database.Store

	User    UserRepository
	Product ProductRepository
	Order   OrderRepository
	Ticket  TicketRepository
	Token   TokenRepository

	Category    ContentRepository[entity.Category, *entity.Category]
	Feature     ContentRepository[entity.Feature, *entity.Feature]
	Integration ContentRepository[entity.Integration, *entity.Integration]
	FAQ         ContentRepository[entity.FAQ, *entity.FAQ]
	Job         ContentRepository[entity.Job, *entity.Job]
	Newsfeed    ContentRepository[entity.Newsfeed, *entity.Newsfeed]
}

func NewRepository(store database.Store, log *zap.Logger) *Repository {
	nameFields := []string{"name", "description"}

	return &Repository{
		Store:   store,
		User:    NewUserRepository(store, log),
		Product: NewProductRepository(store, log),
		Order:   NewOrderRepository(store, log),
		Ticket:  NewTicketRepository(store, log),
		Token:   NewTokenRepository(store, log),

		Category:    NewContentRepository[entity.Category](store, CollectionCategories, "category", []string{"name"}, log),
		Feature:     NewContentRepository[entity.Feature](store, CollectionFeatures, "feature", nameFields, log),
		Integration: NewContentRepository[entity.Integration](store, CollectionIntegrations, "integration", nameFields, log),
		FAQ:         NewContentRepository[entity.FAQ](store, CollectionFAQs, "faq", []string{"question", "answer"}, log),
		Job:         NewContentRepository[entity.Job](store, CollectionJobs, "job", []string{"name", "description", "location"}, log),
		Newsfeed:    NewContentRepository[entity.Newsfeed](store, CollectionNewsfeeds, "newsfeed", nameFields, log),
	}
}

type index struct {
	collection string
	field      string
	unique     bool
}

var indexes = []index{
	{CollectionUsers, "email", true},
	{CollectionProducts, "slug", true},
	{CollectionProducts, "category", false},
	{CollectionOrders, "user", false},
	{CollectionOrders, "status", false},
	{CollectionTickets, "user", false},
	{CollectionCategories, "slug", true},
	{CollectionFeatures, "slug", true},
	{CollectionIntegrations, "name", true},
	{CollectionIntegrations, "slug", true},
	{CollectionFAQs, "slug", true},
	{CollectionJobs, "slug", true},
	{CollectionNewsfeeds, "slug", true},
}

// Migrate creates every collection and its indexes; safe to run on each start.
func (r *Repository) Migrate(ctx context.Context) error {
	collections := []string{
		CollectionUsers, CollectionProducts, CollectionOrders, CollectionTickets,
		CollectionRevokedTokens, CollectionCategories, CollectionFeatures,
		CollectionIntegrations, CollectionFAQs, CollectionJobs, CollectionNewsfeeds,
	}
	for _, name := range collections {
		if err := r.Store.CreateCollection(ctx, name); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	for _, idx := range indexes {
		if err := r.Store.Collection(idx.collection).EnsureIndex(ctx, idx.field, idx.unique); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
