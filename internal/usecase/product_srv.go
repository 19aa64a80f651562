package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dropship-store/internal/data/entity"
	"dropship-store/internal/data/repository"
	"dropship-store/internal/dto/request"
	"dropship-store/internal/dto/response"
	"dropship-store/pkg/database"
	"dropship-store/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductService interface {
	GetAllProducts(ctx context.Context, req *request.ProductListRequest) (*response.PaginatedResponse[response.ProductResponse], error)
	GetProductBySlug(ctx context.Context, slug string) (*response.ProductResponse, error)
	GetProductByID(ctx context.Context, id string) (*response.ProductResponse, error)
	GetProductsByCategory(ctx context.Context, categorySlug string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ProductResponse], error)
	CountProducts(ctx context.Context) (int64, error)
	CreateProduct(ctx context.Context, req *request.ProductRequest) (*response.ProductResponse, error)
	UpdateProduct(ctx context.Context, id string, req *request.ProductUpdateRequest) (*response.ProductResponse, error)
	DeleteProduct(ctx context.Context, id string) error
	UpsertReview(ctx context.Context, userID, productID string, req *request.ReviewRequest) (*response.ProductResponse, error)
}

type productService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewProductService(repo *repository.Repository, log *zap.Logger) ProductService {
	return &productService{
		repo: repo,
		log:  log.With(zap.String("service", "product")),
	}
}

func (s *productService) GetAllProducts(ctx context.Context, req *request.ProductListRequest) (*response.PaginatedResponse[response.ProductResponse], error) {
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fieldErrors(errs)
	}

	filter := repository.ProductFilter{
		Category: req.Category,
		Search:   strings.TrimSpace(req.Search),
		Sort:     req.Sort,
	}
	return s.list(ctx, filter, &req.PaginatedRequest)
}

func (s *productService) GetProductsByCategory(ctx context.Context, categorySlug string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ProductResponse], error) {
	category, err := s.repo.Category.FindBySlug(ctx, categorySlug)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if category == nil {
		return nil, notFound("category")
	}

	req.Normalize()
	return s.list(ctx, repository.ProductFilter{Category: category.ID}, req)
}

func (s *productService) list(ctx context.Context, filter repository.ProductFilter, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ProductResponse], error) {
	products, err := s.repo.Product.FindAll(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}
	total, err := s.repo.Product.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	s.log.Debug("Products retrieved",
		zap.String("category", filter.Category),
		zap.String("search", filter.Search),
		zap.Int("count", len(products)),
		zap.Int64("total", total))

	data := response.Map(products, response.ProductToResponse)
	return response.NewPaginatedResponse(data, page.Page, page.PerPage, total), nil
}

func (s *productService) GetProductBySlug(ctx context.Context, slug string) (*response.ProductResponse, error) {
	product, err := s.repo.Product.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, notFound("product")
	}

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) GetProductByID(ctx context.Context, id string) (*response.ProductResponse, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) CountProducts(ctx context.Context) (int64, error) {
	total, err := s.repo.Product.Count(ctx, repository.ProductFilter{})
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return total, nil
}

func (s *productService) CreateProduct(ctx context.Context, req *request.ProductRequest) (*response.ProductResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create product validation failed", zap.Any("errors", errs))
		return nil, fieldErrors(errs)
	}
	price, err := normalizePrice(req.Price)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, req.Category); err != nil {
		return nil, err
	}

	product := &entity.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       price,
		Category:    req.Category,
		Images:      req.Images,
	}
	if err := reslugProduct(product); err != nil {
		return nil, err
	}

	if err := s.repo.Product.Create(ctx, product); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, validationError("a product named %q already exists", product.Name)
		}
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.log.Info("Product created",
		zap.String("product_id", product.ID),
		zap.String("slug", product.Slug))

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id string, req *request.ProductUpdateRequest) (*response.ProductResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fieldErrors(errs)
	}

	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
		if err := reslugProduct(product); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if product.Price, err = normalizePrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.Category != nil {
		if err := s.checkCategory(ctx, *req.Category); err != nil {
			return nil, err
		}
		product.Category = *req.Category
	}
	if req.Images != nil {
		product.Images = *req.Images
	}

	err = s.repo.Product.Update(ctx, product)
	switch {
	case errors.Is(err, database.ErrDuplicate):
		return nil, validationError("a product named %q already exists", product.Name)
	case errors.Is(err, database.ErrNotFound):
		return nil, notFound("product")
	case err != nil:
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.log.Info("Product updated", zap.String("product_id", product.ID))

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	if err := checkID("product", id); err != nil {
		return err
	}

	err := s.repo.Product.Delete(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return notFound("product")
	}
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (s *productService) UpsertReview(ctx context.Context, userID, productID string, req *request.ReviewRequest) (*response.ProductResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fieldErrors(errs)
	}

	var product *entity.Product
	err := s.repo.Store.WithTx(ctx, func(ctx context.Context) error {
		user, err := s.repo.User.FindByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("load reviewer: %w", err)
		}
		if user == nil {
			return notFound("user")
		}

		product, err = s.findProduct(ctx, productID)
		if err != nil {
			return err
		}

		product.UpsertReview(entity.Review{
			User:      user.ID,
			Name:      user.Name,
			Rating:    req.Rating,
			Note:      req.Note,
			CreatedAt: time.Now().UTC(),
		})
		return s.repo.Product.Update(ctx, product)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Review saved",
		zap.String("product_id", product.ID),
		zap.String("user_id", userID),
		zap.Int("rating", req.Rating))

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) findProduct(ctx context.Context, id string) (*entity.Product, error) {
	if err := checkID("product", id); err != nil {
		return nil, err
	}

	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, notFound("product")
	}
	return product, nil
}

func (s *productService) checkCategory(ctx context.Context, categoryID string) error {
	category, err := s.repo.Category.FindByID(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("check category: %w", err)
	}
	if category == nil {
		return validationError("category %s does not exist", categoryID)
	}
	return nil
}

func reslugProduct(product *entity.Product) error {
	slug := utils.Slugify(product.SlugSource())
	if slug == "" {
		return validationError("product needs a name that produces a slug")
	}
	product.SetSlug(slug)
	return nil
}

// normalizePrice stores prices with two decimal places: "25" -> "25.00"
func normalizePrice(raw string) (string, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return "", validationError("price %q is not a number", raw)
	}
	if price.IsNegative() {
		return "", validationError("price must not be negative")
	}
	return price.StringFixed(2), nil
}
