package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dropship-store/internal/data/entity"
	"dropship-store/pkg/database"
	"dropship-store/pkg/utils"

	"go.uber.org/zap"
)

type docPtr[E any] interface {
	*E
	entity.Document
}

// docRepository holds the collection plumbing shared by every repository.
// Finders return (nil, nil) when nothing matches.
type docRepository[E any, P docPtr[E]] struct {
	coll database.Collection
	kind string
	log  *zap.Logger
}

func newDocRepository[E any, P docPtr[E]](store database.Store, collection, kind string, log *zap.Logger) docRepository[E, P] {
	return docRepository[E, P]{
		coll: store.Collection(collection),
		kind: kind,
		log:  log.With(zap.String("repository", kind)),
	}
}

func (r docRepository[E, P]) create(ctx context.Context, doc *E) error {
	base := P(doc).GetBase()
	if base.ID == "" {
		base.ID = utils.GenerateID()
	}
	base.Touch(time.Now())

	if err := r.coll.Insert(ctx, base.ID, doc); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			r.log.Warn("Duplicate "+r.kind, zap.String("id", base.ID), zap.Error(err))
		} else {
			r.log.Error("Failed to create "+r.kind, zap.String("id", base.ID), zap.Error(err))
		}
		return fmt.Errorf("create %s %s: %w", r.kind, base.ID, err)
	}
	return nil
}

func (r docRepository[E, P]) findByID(ctx context.Context, id string) (*E, error) {
	var doc E
	err := r.coll.FindByID(ctx, id, &doc)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find "+r.kind+" by ID", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("find %s by ID %s: %w", r.kind, id, err)
	}
	return &doc, nil
}

func (r docRepository[E, P]) findOne(ctx context.Context, filter database.Filter) (*E, error) {
	var doc E
	err := r.coll.FindOne(ctx, filter, &doc)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find "+r.kind, zap.Any("filter", filter), zap.Error(err))
		return nil, fmt.Errorf("find %s: %w", r.kind, err)
	}
	return &doc, nil
}

func (r docRepository[E, P]) find(ctx context.Context, q database.Query) ([]*E, error) {
	var docs []*E
	if err := r.coll.Find(ctx, q, &docs); err != nil {
		r.log.Error("Failed to list "+r.kind,
			zap.Any("filter", q.Filter),
			zap.Int("limit", q.Limit),
			zap.Int("offset", q.Offset),
			zap.Error(err),
		)
		return nil, fmt.Errorf("find all %s limit %d offset %d: %w", r.kind, q.Limit, q.Offset, err)
	}
	return docs, nil
}

func (r docRepository[E, P]) count(ctx context.Context, q database.Query) (int64, error) {
	count, err := r.coll.Count(ctx, q)
	if err != nil {
		r.log.Error("Failed to count "+r.kind, zap.Any("filter", q.Filter), zap.Error(err))
		return 0, fmt.Errorf("count %s: %w", r.kind, err)
	}
	return count, nil
}

func (r docRepository[E, P]) update(ctx context.Context, doc *E) error {
	base := P(doc).GetBase()
	base.Touch(time.Now())

	err := r.coll.Replace(ctx, base.ID, doc)
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("%s %s: %w", r.kind, base.ID, database.ErrNotFound)
	}
	if err != nil {
		if !errors.Is(err, database.ErrDuplicate) {
			r.log.Error("Failed to update "+r.kind, zap.String("id", base.ID), zap.Error(err))
		}
		return fmt.Errorf("update %s %s: %w", r.kind, base.ID, err)
	}
	return nil
}

func (r docRepository[E, P]) delete(ctx context.Context, id string) error {
	err := r.coll.Delete(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("%s %s: %w", r.kind, id, database.ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to delete "+r.kind, zap.String("id", id), zap.Error(err))
		return fmt.Errorf("delete %s %s: %w", r.kind, id, err)
	}

	r.log.Info(r.kind+" deleted", zap.String("id", id))
	return nil
}
