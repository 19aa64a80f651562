package database

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testDoc struct {
	ID        string    `json:"_id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Kind      string    `json:"kind" bson:"kind"`
	Tags      []string  `json:"tags" bson:"tags"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

func seedDocs(t *testing.T, coll Collection) {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	docs := []testDoc{
		{ID: "a", Name: "Red Shoes", Kind: "shoe", Tags: []string{"sale"}, CreatedAt: base},
		{ID: "b", Name: "Blue Shoes", Kind: "shoe", CreatedAt: base.Add(time.Hour)},
		{ID: "c", Name: "Green Hat", Kind: "hat", Tags: []string{}, CreatedAt: base.Add(2 * time.Hour)},
	}
	for _, d := range docs {
		if err := coll.Insert(context.Background(), d.ID, d); err != nil {
			t.Fatalf("insert %s: %v", d.ID, err)
		}
	}
}

func TestMemoryFindFilterSortPaginate(t *testing.T) {
	store := NewMemoryStore()
	coll := store.Collection("items")
	seedDocs(t, coll)
	ctx := context.Background()

	var shoes []testDoc
	if err := coll.Find(ctx, Query{Filter: Filter{"kind": "shoe"}}, &shoes); err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(shoes) != 2 || shoes[0].ID != "b" || shoes[1].ID != "a" {
		t.Fatalf("expected newest first [b a], got %+v", shoes)
	}

	var page []testDoc
	if err := coll.Find(ctx, Query{Sort: "name", Limit: 1, Offset: 1}, &page); err != nil {
		t.Fatalf("find page: %v", err)
	}
	if len(page) != 1 || page[0].ID != "c" {
		t.Fatalf("expected second by name to be c, got %+v", page)
	}

	count, err := coll.Count(ctx, Query{Filter: Filter{"kind": "shoe"}})
	if err != nil || count != 2 {
		t.Fatalf("expected count 2, got %d (%v)", count, err)
	}
}

func TestMemorySearchAndNonEmpty(t *testing.T) {
	store := NewMemoryStore()
	coll := store.Collection("items")
	seedDocs(t, coll)
	ctx := context.Background()

	var found []testDoc
	if err := coll.Find(ctx, Query{Search: &Search{Term: "SHOES", Fields: []string{"name"}}}, &found); err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(found))
	}

	var tagged []testDoc
	if err := coll.Find(ctx, Query{NonEmpty: "tags"}, &tagged); err != nil {
		t.Fatalf("non empty: %v", err)
	}
	if len(tagged) != 1 || tagged[0].ID != "a" {
		t.Fatalf("expected only a, got %+v", tagged)
	}
}

func TestMemoryUniqueIndex(t *testing.T) {
	store := NewMemoryStore()
	coll := store.Collection("items")
	ctx := context.Background()
	if err := coll.EnsureIndex(ctx, "name", true); err != nil {
		t.Fatalf("ensure index: %v", err)
	}

	if err := coll.Insert(ctx, "a", testDoc{ID: "a", Name: "Zapier"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	err := coll.Insert(ctx, "b", testDoc{ID: "b", Name: "Zapier"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	// replacing a document with its own value is not a conflict
	if err := coll.Replace(ctx, "a", testDoc{ID: "a", Name: "Zapier", Kind: "x"}); err != nil {
		t.Fatalf("replace: %v", err)
	}
}

func TestMemoryNotFound(t *testing.T) {
	coll := NewMemoryStore().Collection("items")
	ctx := context.Background()

	var doc testDoc
	if err := coll.FindByID(ctx, "missing", &doc); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := coll.Replace(ctx, "missing", doc); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on replace, got %v", err)
	}
	if err := coll.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}
}

func TestMemoryWithTxRollsBack(t *testing.T) {
	store := NewMemoryStore()
	coll := store.Collection("items")
	ctx := context.Background()

	boom := errors.New("boom")
	err := store.WithTx(ctx, func(ctx context.Context) error {
		if err := coll.Insert(ctx, "a", testDoc{ID: "a", Name: "temp"}); err != nil {
			return err
		}
		// nested calls join the outer transaction
		return store.WithTx(ctx, func(ctx context.Context) error {
			return boom
		})
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	var doc testDoc
	if err := coll.FindByID(ctx, "a", &doc); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected insert to be rolled back, got %v", err)
	}

	err = store.WithTx(ctx, func(ctx context.Context) error {
		return coll.Insert(ctx, "b", testDoc{ID: "b", Name: "kept"})
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := coll.FindByID(ctx, "b", &doc); err != nil || doc.Name != "kept" {
		t.Fatalf("expected committed doc, got %+v (%v)", doc, err)
	}
}
