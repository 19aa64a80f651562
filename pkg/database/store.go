package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate key")
)

// Filter matches documents whose top-level fields equal the given values.
type Filter map[string]any

// Query describes a list or count over one collection.
type Query struct {
	Filter Filter

	// Search matches Term case-insensitively as a substring of any of Fields.
	Search *Search

	// NonEmpty keeps only documents where this array field has at least one element.
	NonEmpty string

	// Sort is a field name, prefixed with "-" for descending order.
	Sort string

	Limit  int
	Offset int
}

type Search struct {
	Term   string
	Fields []string
}

func (q Query) sortField() (field string, desc bool) {
	if q.Sort == "" {
		return "createdAt", true
	}
	if strings.HasPrefix(q.Sort, "-") {
		return q.Sort[1:], true
	}
	return q.Sort, false
}

func (q Query) hasSearch() bool {
	return q.Search != nil && strings.TrimSpace(q.Search.Term) != "" && len(q.Search.Fields) > 0
}

// Collection stores JSON/BSON documents keyed by id. Document structs must
// use the same names for their json and bson tags.
type Collection interface {
	Insert(ctx context.Context, id string, doc any) error
	FindByID(ctx context.Context, id string, out any) error
	FindOne(ctx context.Context, filter Filter, out any) error
	Find(ctx context.Context, q Query, out any) error
	Count(ctx context.Context, q Query) (int64, error)
	Replace(ctx context.Context, id string, doc any) error
	Delete(ctx context.Context, id string) error
	EnsureIndex(ctx context.Context, field string, unique bool) error
}

// Store is a set of collections sharing one connection pool.
type Store interface {
	Collection(name string) Collection
	CreateCollection(ctx context.Context, name string) error

	// WithTx runs fn in a multi-document transaction. Collection calls made
	// with the ctx passed to fn join the transaction; nested calls reuse it.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
	Driver() string
}

var identifier = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func checkIdentifier(kind, name string) error {
	if !identifier.MatchString(name) {
		return fmt.Errorf("invalid %s name %q", kind, name)
	}
	return nil
}

// fieldIdentifier allows camelCase document fields
var fieldIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func checkField(name string) error {
	if !fieldIdentifier.MatchString(name) {
		return fmt.Errorf("invalid field name %q", name)
	}
	return nil
}
