package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"dropship-store/internal/data/entity"
	"dropship-store/internal/data/repository"
	"dropship-store/pkg/database"
	"dropship-store/pkg/events"
	"dropship-store/pkg/utils"

	"go.uber.org/zap"
)

// recordingPublisher keeps every published order event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.OrderEvent
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, value interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ev, ok := value.(events.OrderEvent); ok {
		p.events = append(p.events, ev)
	}
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Type
	}
	return out
}

func testConfig() *utils.Config {
	return &utils.Config{
		App:      utils.AppConfig{Name: "dropship-store", Port: "8080", APIPrefix: "/api/v1"},
		Database: utils.DatabaseConfig{Driver: "memory"},
		JWT:      utils.JWTConfig{Secret: "test-secret-0123456789", ExpiryHours: 1},
		Admin: utils.AdminConfig{
			Name:     "Store Admin",
			Email:    "admin@example.com",
			Password: "admin-password",
		},
	}
}

type fixture struct {
	repo *repository.Repository
	pub  *recordingPublisher
	svc  *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := repository.NewRepository(database.NewMemoryStore(), zap.NewNop())
	if err := repo.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	pub := &recordingPublisher{}
	return &fixture{
		repo: repo,
		pub:  pub,
		svc:  NewService(repo, testConfig(), pub, zap.NewNop()),
	}
}

func (f *fixture) user(t *testing.T, email string) *entity.User {
	t.Helper()
	u := &entity.User{Name: "Test User", Email: email, Password: "x", Phone: "5550100", Role: entity.RoleCustomer}
	if err := f.repo.User.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func (f *fixture) category(t *testing.T, name string) *entity.Category {
	t.Helper()
	c := &entity.Category{Name: name, Slug: utils.Slugify(name)}
	if err := f.repo.Category.Create(context.Background(), c); err != nil {
		t.Fatalf("create category: %v", err)
	}
	return c
}

func (f *fixture) product(t *testing.T, name, price string) *entity.Product {
	t.Helper()
	c, err := f.repo.Category.FindBySlug(context.Background(), "general")
	if err != nil {
		t.Fatalf("find category: %v", err)
	}
	if c == nil {
		c = f.category(t, "General")
	}
	p := &entity.Product{
		Name:     name,
		Slug:     utils.Slugify(name),
		Price:    price,
		Category: c.ID,
		Images:   []string{"https://cdn.example.com/" + utils.Slugify(name) + ".jpg"},
	}
	if err := f.repo.Product.Create(context.Background(), p); err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p
}

func (f *fixture) reload(t *testing.T, id string) *entity.User {
	t.Helper()
	u, err := f.repo.User.FindByID(context.Background(), id)
	if err != nil || u == nil {
		t.Fatalf("reload user %s: %v", id, err)
	}
	return u
}

func intPtr(v int) *int { return &v }

// withRepo returns a shallow copy of the fixture repository for swapping in
// wrapped stores or repositories.
func (f *fixture) withRepo(edit func(r *repository.Repository)) *repository.Repository {
	cp := *f.repo
	edit(&cp)
	return &cp
}

// afterUserRead runs hook once, right after the first user lookup returns.
type afterUserRead struct {
	repository.UserRepository
	once sync.Once
	hook func()
}

func (u *afterUserRead) FindByID(ctx context.Context, id string) (*entity.User, error) {
	user, err := u.UserRepository.FindByID(ctx, id)
	u.once.Do(u.hook)
	return user, err
}

var errTransientTx = errors.New("transient transaction error")

// retryingStore runs every transaction body twice, discarding the first
// attempt, the way the mongo driver retries transient errors.
type retryingStore struct {
	database.Store
}

func (s retryingStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	err := s.Store.WithTx(ctx, func(ctx context.Context) error {
		if err := fn(ctx); err != nil {
			return err
		}
		return errTransientTx
	})
	if !errors.Is(err, errTransientTx) {
		return err
	}
	return s.Store.WithTx(ctx, fn)
}

// txReads records which documents are read inside a transaction, in order.
type txReads struct {
	mu    sync.Mutex
	inTx  bool
	reads []string
}

func (r *txReads) record(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inTx {
		r.reads = append(r.reads, kind)
	}
}

func (r *txReads) take() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.reads
	r.reads = nil
	return out
}

type trackingStore struct {
	database.Store
	reads *txReads
}

func (s trackingStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.Store.WithTx(ctx, func(ctx context.Context) error {
		s.reads.mu.Lock()
		s.reads.inTx = true
		s.reads.mu.Unlock()
		defer func() {
			s.reads.mu.Lock()
			s.reads.inTx = false
			s.reads.mu.Unlock()
		}()
		return fn(ctx)
	})
}

type trackedUsers struct {
	repository.UserRepository
	reads *txReads
}

func (u trackedUsers) FindByID(ctx context.Context, id string) (*entity.User, error) {
	u.reads.record("user")
	return u.UserRepository.FindByID(ctx, id)
}

type trackedProducts struct {
	repository.ProductRepository
	reads *txReads
}

func (p trackedProducts) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	p.reads.record("product")
	return p.ProductRepository.FindByID(ctx, id)
}
