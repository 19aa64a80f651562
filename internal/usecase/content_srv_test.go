package usecase

import (
	"context"
	"errors"
	"testing"

	"dropship-store/internal/dto/request"
)

func TestContentLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	faq, err := f.svc.FAQ.Create(ctx, request.FAQRequest{Question: "How long is shipping?", Answer: "About a week."})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if faq.Slug != "how-long-is-shipping" {
		t.Fatalf("unexpected slug %q", faq.Slug)
	}

	got, err := f.svc.FAQ.GetBySlug(ctx, "how-long-is-shipping")
	if err != nil || got.ID != faq.ID {
		t.Fatalf("get by slug: %+v (%v)", got, err)
	}

	question := "Do you ship abroad?"
	updated, err := f.svc.FAQ.Update(ctx, faq.ID, request.FAQUpdateRequest{Question: &question})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Slug != "do-you-ship-abroad" || updated.Answer != "About a week." {
		t.Fatalf("unexpected update result %+v", updated)
	}

	if err := f.svc.FAQ.Delete(ctx, faq.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.svc.FAQ.GetByID(ctx, faq.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := f.svc.FAQ.Delete(ctx, faq.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestIntegrationNameIsUnique(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Integration.Create(ctx, request.IntegrationRequest{Name: "Shopify"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := f.svc.Integration.Create(ctx, request.IntegrationRequest{Name: "Shopify"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestContentListSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, name := range []string{"Frontend Engineer", "Warehouse Lead", "Backend Engineer"} {
		if _, err := f.svc.Job.Create(ctx, request.JobRequest{Name: name, Description: "Join us"}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	page, err := f.svc.Job.List(ctx, &request.ContentListRequest{Search: "engineer"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Pagination.Total != 2 || len(page.Data) != 2 {
		t.Fatalf("expected 2 engineers, got %+v", page.Pagination)
	}

	if _, err := f.svc.Job.Create(ctx, request.JobRequest{Name: "", Description: "x"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty name: expected ErrValidation, got %v", err)
	}
}
