package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dropship-store/internal/data/entity"
	"dropship-store/internal/data/repository"
	"dropship-store/internal/dto/request"
	"dropship-store/internal/dto/response"
	"dropship-store/pkg/database"
	"dropship-store/pkg/utils"

	"go.uber.org/zap"
)

// ContentService serves the slug-addressed catalogue resources: categories,
// features, integrations, faqs, jobs and newsfeeds.
type ContentService[E any, P entity.Content[E]] interface {
	List(ctx context.Context, req *request.ContentListRequest) (*response.PaginatedResponse[*E], error)
	GetBySlug(ctx context.Context, slug string) (*E, error)
	GetByID(ctx context.Context, id string) (*E, error)
	Create(ctx context.Context, req request.Applier[P]) (*E, error)
	Update(ctx context.Context, id string, req request.Applier[P]) (*E, error)
	Delete(ctx context.Context, id string) error
}

type contentService[E any, P entity.Content[E]] struct {
	repo repository.ContentRepository[E, P]
	kind string
	log  *zap.Logger
}

func NewContentService[E any, P entity.Content[E]](repo repository.ContentRepository[E, P], kind string, log *zap.Logger) ContentService[E, P] {
	return &contentService[E, P]{
		repo: repo,
		kind: kind,
		log:  log.With(zap.String("service", kind)),
	}
}

func (s *contentService[E, P]) List(ctx context.Context, req *request.ContentListRequest) (*response.PaginatedResponse[*E], error) {
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fieldErrors(errs)
	}
	search := strings.TrimSpace(req.Search)

	docs, err := s.repo.FindAll(ctx, search, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.kind, err)
	}
	total, err := s.repo.Count(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("count %s: %w", s.kind, err)
	}

	return response.NewPaginatedResponse(docs, req.Page, req.PerPage, total), nil
}

func (s *contentService[E, P]) GetBySlug(ctx context.Context, slug string) (*E, error) {
	doc, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.kind, err)
	}
	if doc == nil {
		return nil, notFound(s.kind)
	}
	return doc, nil
}

func (s *contentService[E, P]) GetByID(ctx context.Context, id string) (*E, error) {
	if err := checkID(s.kind, id); err != nil {
		return nil, err
	}

	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.kind, err)
	}
	if doc == nil {
		return nil, notFound(s.kind)
	}
	return doc, nil
}

func (s *contentService[E, P]) Create(ctx context.Context, req request.Applier[P]) (*E, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create validation failed", zap.Any("errors", errs))
		return nil, fieldErrors(errs)
	}

	doc := new(E)
	req.Apply(P(doc))
	if err := s.reslug(P(doc)); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, s.duplicate(P(doc))
		}
		return nil, fmt.Errorf("create %s: %w", s.kind, err)
	}

	s.log.Info(s.kind+" created",
		zap.String("id", P(doc).GetBase().ID),
		zap.String("slug", P(doc).GetSlug()))
	return doc, nil
}

func (s *contentService[E, P]) Update(ctx context.Context, id string, req request.Applier[P]) (*E, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fieldErrors(errs)
	}

	doc, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(P(doc))
	if err := s.reslug(P(doc)); err != nil {
		return nil, err
	}

	err = s.repo.Update(ctx, doc)
	switch {
	case errors.Is(err, database.ErrDuplicate):
		return nil, s.duplicate(P(doc))
	case errors.Is(err, database.ErrNotFound):
		return nil, notFound(s.kind)
	case err != nil:
		return nil, fmt.Errorf("update %s: %w", s.kind, err)
	}

	s.log.Info(s.kind+" updated", zap.String("id", id))
	return doc, nil
}

func (s *contentService[E, P]) Delete(ctx context.Context, id string) error {
	if err := checkID(s.kind, id); err != nil {
		return err
	}

	err := s.repo.Delete(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return notFound(s.kind)
	}
	if err != nil {
		return fmt.Errorf("delete %s: %w", s.kind, err)
	}
	return nil
}

func (s *contentService[E, P]) reslug(doc P) error {
	slug := utils.Slugify(doc.SlugSource())
	if slug == "" {
		return validationError("%s needs a name that produces a slug", s.kind)
	}
	doc.SetSlug(slug)
	return nil
}

func (s *contentService[E, P]) duplicate(doc P) error {
	return validationError("%s %q already exists", s.kind, doc.SlugSource())
}
