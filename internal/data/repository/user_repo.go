package repository

import (
	"context"
	"strings"

	"dropship-store/internal/data/entity"
	"dropship-store/pkg/database"

	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error)
	CountAll(ctx context.Context) (int64, error)
	// FindWithPending lists users that have at least one pending product.
	FindWithPending(ctx context.Context, limit, offset int) ([]*entity.User, error)
	CountWithPending(ctx context.Context) (int64, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error
}

type userRepository struct {
	docs docRepository[entity.User, *entity.User]
}

func NewUserRepository(store database.Store, log *zap.Logger) UserRepository {
	return &userRepository{
		docs: newDocRepository[entity.User](store, CollectionUsers, "user", log),
	}
}

// Create lower-cases the email; uniqueness is enforced by the store index.
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	normalizeUser(user)
	return ur.docs.create(ctx, user)
}

func (ur *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return ur.docs.findByID(ctx, id)
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return ur.docs.findOne(ctx, database.Filter{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (ur *userRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	return ur.docs.find(ctx, database.Query{Limit: limit, Offset: offset})
}

func (ur *userRepository) CountAll(ctx context.Context) (int64, error) {
	return ur.docs.count(ctx, database.Query{})
}

func (ur *userRepository) FindWithPending(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	return ur.docs.find(ctx, database.Query{
		NonEmpty: "products",
		Sort:     "-updatedAt",
		Limit:    limit,
		Offset:   offset,
	})
}

func (ur *userRepository) CountWithPending(ctx context.Context) (int64, error) {
	return ur.docs.count(ctx, database.Query{NonEmpty: "products"})
}

func (ur *userRepository) Update(ctx context.Context, user *entity.User) error {
	normalizeUser(user)
	return ur.docs.update(ctx, user)
}

func (ur *userRepository) Delete(ctx context.Context, id string) error {
	return ur.docs.delete(ctx, id)
}

// normalizeUser stores empty arrays rather than null
func normalizeUser(user *entity.User) {
	if user.Cart == nil {
		user.Cart = []entity.CartItem{}
	}
	if user.Products == nil {
		user.Products = []entity.PendingProduct{}
	}
	for i := range user.Products {
		if user.Products[i].Orders == nil {
			user.Products[i].Orders = []string{}
		}
	}
}
