package database

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPostgresWhere(t *testing.T) {
	c := &pgCollection{table: "users"}

	cases := []struct {
		name      string
		query     Query
		wantWhere string
		wantArgs  []any
	}{
		{
			name: "empty",
		},
		{
			name:      "filter",
			query:     Query{Filter: Filter{"kind": "shoe"}},
			wantWhere: ` WHERE doc @> $1::jsonb`,
			wantArgs:  []any{`{"kind":"shoe"}`},
		},
		{
			name:      "search escapes like wildcards",
			query:     Query{Search: &Search{Term: ` 50%_off\ `, Fields: []string{"name", "description"}}},
			wantWhere: ` WHERE (doc->>'name' ILIKE $1 OR doc->>'description' ILIKE $1)`,
			wantArgs:  []any{`%50\%\_off\\%`},
		},
		{
			name:      "blank search is ignored",
			query:     Query{Search: &Search{Term: "   ", Fields: []string{"name"}}},
			wantWhere: "",
		},
		{
			name:      "non-empty array",
			query:     Query{NonEmpty: "products"},
			wantWhere: ` WHERE jsonb_typeof(doc->'products') = 'array' AND doc->'products' <> '[]'::jsonb`,
		},
		{
			name: "combined",
			query: Query{
				Filter:   Filter{"role": "customer"},
				Search:   &Search{Term: "ada", Fields: []string{"name"}},
				NonEmpty: "products",
			},
			wantWhere: ` WHERE doc @> $1::jsonb AND (doc->>'name' ILIKE $2) AND jsonb_typeof(doc->'products') = 'array' AND doc->'products' <> '[]'::jsonb`,
			wantArgs:  []any{`{"role":"customer"}`, "%ada%"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			where, args, err := c.where(tc.query)
			if err != nil {
				t.Fatalf("where: %v", err)
			}
			if where != tc.wantWhere {
				t.Errorf("where = %q, want %q", where, tc.wantWhere)
			}
			if len(args) != len(tc.wantArgs) || (len(args) > 0 && !reflect.DeepEqual(args, tc.wantArgs)) {
				t.Errorf("args = %#v, want %#v", args, tc.wantArgs)
			}
		})
	}
}

func TestPostgresWhereRejectsFieldNames(t *testing.T) {
	c := &pgCollection{table: "users"}

	if _, _, err := c.where(Query{Search: &Search{Term: "x", Fields: []string{"name'--"}}}); err == nil {
		t.Fatal("search field with a quote accepted")
	}
	if _, _, err := c.where(Query{NonEmpty: "products; DROP TABLE users"}); err == nil {
		t.Fatal("non-empty field with a statement accepted")
	}
}

func TestPostgresOrderBy(t *testing.T) {
	c := &pgCollection{table: "products"}

	cases := map[string]string{
		"":           " ORDER BY created_at DESC, id DESC",
		"createdAt":  " ORDER BY created_at ASC, id ASC",
		"-updatedAt": " ORDER BY updated_at DESC, id DESC",
		"name":       " ORDER BY doc->'name' ASC, id ASC",
		"-name":      " ORDER BY doc->'name' DESC, id DESC",
	}
	for sort, want := range cases {
		got, err := c.orderBy(Query{Sort: sort})
		if err != nil {
			t.Fatalf("orderBy(%q): %v", sort, err)
		}
		if got != want {
			t.Errorf("orderBy(%q) = %q, want %q", sort, got, want)
		}
	}

	if _, err := c.orderBy(Query{Sort: "-name'"}); err == nil {
		t.Fatal("quoted sort field accepted")
	}
}

func TestMongoFilter(t *testing.T) {
	c := &mongoCollection{name: "users"}

	got, err := c.filter(Query{
		Filter:   Filter{"role": "customer"},
		Search:   &Search{Term: " a.b* ", Fields: []string{"name", "email"}},
		NonEmpty: "products",
	})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}

	pattern := primitive.Regex{Pattern: `a\.b\*`, Options: "i"}
	want := bson.M{
		"role":       "customer",
		"$or":        bson.A{bson.M{"name": pattern}, bson.M{"email": pattern}},
		"products.0": bson.M{"$exists": true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("filter = %#v, want %#v", got, want)
	}

	empty, err := c.filter(Query{Search: &Search{Term: "", Fields: []string{"name"}}})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("empty query should match everything, got %#v", empty)
	}

	if _, err := c.filter(Query{NonEmpty: "$where"}); err == nil {
		t.Fatal("operator as field name accepted")
	}
}
