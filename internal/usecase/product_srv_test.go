package usecase

import (
	"context"
	"errors"
	"testing"

	"dropship-store/internal/dto/request"
)

func TestCreateProductRequiresCategory(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Product.CreateProduct(context.Background(), &request.ProductRequest{
		Name:        "Desk Lamp",
		Description: "Warm light",
		Price:       "10.50",
		Category:    "5f0c6a1e-2b3d-4c5e-8f9a-0b1c2d3e4f5a",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCreateAndRenameProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	category := f.category(t, "Lighting")

	req := &request.ProductRequest{
		Name:        "Desk Lamp",
		Description: "Warm light",
		Price:       "10.50",
		Category:    category.ID,
	}
	product, err := f.svc.Product.CreateProduct(ctx, req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if product.Slug != "desk-lamp" {
		t.Fatalf("expected slug desk-lamp, got %q", product.Slug)
	}

	if _, err := f.svc.Product.CreateProduct(ctx, req); !errors.Is(err, ErrValidation) {
		t.Fatalf("duplicate name: expected ErrValidation, got %v", err)
	}

	name := "Floor Lamp"
	updated, err := f.svc.Product.UpdateProduct(ctx, product.ID, &request.ProductUpdateRequest{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Slug != "floor-lamp" {
		t.Fatalf("slug should follow the name, got %q", updated.Slug)
	}

	bySlug, err := f.svc.Product.GetProductBySlug(ctx, "floor-lamp")
	if err != nil || bySlug.ID != product.ID {
		t.Fatalf("get by new slug: %+v %v", bySlug, err)
	}

	badPrice := "ten"
	if _, err := f.svc.Product.UpdateProduct(ctx, product.ID, &request.ProductUpdateRequest{Price: &badPrice}); !errors.Is(err, ErrValidation) {
		t.Fatalf("non-numeric price: expected ErrValidation, got %v", err)
	}
}

func TestListProductsFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.product(t, "Desk Lamp", "10.50")
	f.product(t, "Wool Rug", "99")

	decor := f.category(t, "Decor")
	if _, err := f.svc.Product.CreateProduct(ctx, &request.ProductRequest{
		Name: "Wall Clock", Description: "Ticks", Price: "25", Category: decor.ID,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	all, err := f.svc.Product.GetAllProducts(ctx, &request.ProductListRequest{})
	if err != nil || all.Pagination.Total != 3 {
		t.Fatalf("expected 3 products, got %+v (%v)", all, err)
	}

	search, err := f.svc.Product.GetAllProducts(ctx, &request.ProductListRequest{Search: "lamp"})
	if err != nil || len(search.Data) != 1 || search.Data[0].Name != "Desk Lamp" {
		t.Fatalf("search: %+v (%v)", search, err)
	}

	byName, err := f.svc.Product.GetAllProducts(ctx, &request.ProductListRequest{Sort: "name"})
	if err != nil || byName.Data[0].Name != "Desk Lamp" || byName.Data[2].Name != "Wool Rug" {
		t.Fatalf("sort by name: %+v (%v)", byName, err)
	}

	inDecor, err := f.svc.Product.GetProductsByCategory(ctx, "decor", &request.PaginatedRequest{})
	if err != nil || len(inDecor.Data) != 1 || inDecor.Data[0].Name != "Wall Clock" {
		t.Fatalf("by category: %+v (%v)", inDecor, err)
	}

	if _, err := f.svc.Product.GetProductsByCategory(ctx, "nope", &request.PaginatedRequest{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown category: expected ErrNotFound, got %v", err)
	}

	count, err := f.svc.Product.CountProducts(ctx)
	if err != nil || count != 3 {
		t.Fatalf("count: %d (%v)", count, err)
	}
}

func TestUpsertReviewReplacesOwnReview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Desk Lamp", "10.50")
	alice := f.user(t, "alice@example.com")
	bob := f.user(t, "bob@example.com")

	if _, err := f.svc.Product.UpsertReview(ctx, alice.ID, p.ID, &request.ReviewRequest{Rating: 2}); err != nil {
		t.Fatalf("first review: %v", err)
	}
	resp, err := f.svc.Product.UpsertReview(ctx, alice.ID, p.ID, &request.ReviewRequest{Rating: 4, Note: "better"})
	if err != nil {
		t.Fatalf("second review: %v", err)
	}
	if resp.NumReviews != 1 || resp.AverageRating != 4 {
		t.Fatalf("review should be replaced, got %d reviews avg %v", resp.NumReviews, resp.AverageRating)
	}

	resp, err = f.svc.Product.UpsertReview(ctx, bob.ID, p.ID, &request.ReviewRequest{Rating: 5})
	if err != nil {
		t.Fatalf("bob review: %v", err)
	}
	if resp.NumReviews != 2 || resp.AverageRating != 4.5 {
		t.Fatalf("expected 2 reviews avg 4.5, got %d avg %v", resp.NumReviews, resp.AverageRating)
	}

	if _, err := f.svc.Product.UpsertReview(ctx, bob.ID, p.ID, &request.ReviewRequest{Rating: 6}); !errors.Is(err, ErrValidation) {
		t.Fatalf("rating 6: expected ErrValidation, got %v", err)
	}
}

func TestProductNameMustProduceSlug(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	category := f.category(t, "Lighting")

	req := &request.ProductRequest{
		Name:        "!!!",
		Description: "Nothing to slug",
		Price:       "5",
		Category:    category.ID,
	}
	if _, err := f.svc.Product.CreateProduct(ctx, req); !errors.Is(err, ErrValidation) {
		t.Fatalf("punctuation-only name: expected ErrValidation, got %v", err)
	}
	if total, err := f.svc.Product.CountProducts(ctx); err != nil || total != 0 {
		t.Fatalf("no product should be stored, got %d (%v)", total, err)
	}

	req.Name = "Desk Lamp"
	product, err := f.svc.Product.CreateProduct(ctx, req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if product.Price != "5.00" {
		t.Fatalf("price should be normalized, got %q", product.Price)
	}

	blank := "???"
	if _, err := f.svc.Product.UpdateProduct(ctx, product.ID, &request.ProductUpdateRequest{Name: &blank}); !errors.Is(err, ErrValidation) {
		t.Fatalf("rename to punctuation: expected ErrValidation, got %v", err)
	}
	got, err := f.svc.Product.GetProductByID(ctx, product.ID)
	if err != nil || got.Slug != "desk-lamp" {
		t.Fatalf("slug must be unchanged after a rejected rename: %+v %v", got, err)
	}
}
