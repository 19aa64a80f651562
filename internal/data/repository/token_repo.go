package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dropship-store/internal/data/entity"
	"dropship-store/pkg/database"

	"go.uber.org/zap"
)

// TokenRepository tracks signed tokens revoked before their expiry.
type TokenRepository interface {
	Revoke(ctx context.Context, token *entity.RevokedToken) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type tokenRepository struct {
	docs docRepository[entity.RevokedToken, *entity.RevokedToken]
}

func NewTokenRepository(store database.Store, log *zap.Logger) TokenRepository {
	return &tokenRepository{
		docs: newDocRepository[entity.RevokedToken](store, CollectionRevokedTokens, "revoked_token", log),
	}
}

// Revoke is idempotent: revoking the same token twice is not an error.
func (r *tokenRepository) Revoke(ctx context.Context, token *entity.RevokedToken) error {
	err := r.docs.create(ctx, token)
	if errors.Is(err, database.ErrDuplicate) {
		return nil
	}
	return err
}

func (r *tokenRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	token, err := r.docs.findByID(ctx, tokenID)
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return token != nil && token.ExpiresAt.After(time.Now()), nil
}
