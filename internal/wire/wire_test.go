package wire

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dropship-store/internal/data/repository"
	"dropship-store/pkg/database"
	"dropship-store/pkg/events"
	"dropship-store/pkg/utils"

	"go.uber.org/zap"
)

const prefix = "/api/v1"

type testServer struct {
	t      *testing.T
	router http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	config := &utils.Config{
		App:      utils.AppConfig{Name: "dropship-store", Port: "8080", APIPrefix: prefix, CORSOrigins: []string{"*"}},
		Database: utils.DatabaseConfig{Driver: "memory"},
		JWT:      utils.JWTConfig{Secret: "wire-test-secret-0123456789", ExpiryHours: 1},
		Admin:    utils.AdminConfig{Name: "Admin", Email: "admin@example.com", Password: "admin-password"},
	}

	repo := repository.NewRepository(database.NewMemoryStore(), zap.NewNop())
	if err := repo.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	app := Wiring(repo, config, events.NoopPublisher{}, zap.NewNop())
	if err := app.Service.Auth.SeedAdmin(context.Background()); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return &testServer{t: t, router: app.Router}
}

func (s *testServer) do(method, path, token string, body any, headers ...string) (int, map[string]any) {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, prefix+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		s.t.Fatalf("%s %s: decode response %q: %v", method, path, rec.Body.String(), err)
	}
	return rec.Code, out
}

func (s *testServer) expect(want int, method, path, token string, body any, headers ...string) map[string]any {
	s.t.Helper()
	code, out := s.do(method, path, token, body, headers...)
	if code != want {
		s.t.Fatalf("%s %s: expected %d, got %d: %v", method, path, want, code, out)
	}
	return out
}

func (s *testServer) login(email, password string) (token, userID string) {
	s.t.Helper()
	out := s.expect(http.StatusOK, "POST", "/auth/login", "", map[string]any{"email": email, "password": password})
	user := out["user"].(map[string]any)
	return out["token"].(string), user["_id"].(string)
}

func (s *testServer) register(name, email string) (token, userID string) {
	s.t.Helper()
	s.expect(http.StatusCreated, "POST", "/auth/register", "", map[string]any{
		"name":     name,
		"email":    email,
		"password": "secret-pass",
		"phone":    "5550100",
	})
	return s.login(email, "secret-pass")
}

func field(m map[string]any, keys ...string) any {
	var cur any = m
	for _, k := range keys {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = obj[k]
	}
	return cur
}

func TestCheckoutAndApproveFlow(t *testing.T) {
	s := newTestServer(t)
	adminToken, _ := s.login("admin@example.com", "admin-password")
	buyerToken, buyerID := s.register("Ada Buyer", "ada@example.com")

	category := s.expect(http.StatusCreated, "POST", "/category/create-category", adminToken, map[string]any{"name": "Lighting"})
	categoryID := field(category, "category", "_id").(string)

	product := s.expect(http.StatusCreated, "POST", "/product/create-product", adminToken, map[string]any{
		"name":        "Desk Lamp",
		"description": "Warm light",
		"price":       "10.50",
		"category":    categoryID,
	})
	productID := field(product, "product", "_id").(string)

	got := s.expect(http.StatusOK, "GET", "/product/get-product/desk-lamp", "", nil)
	if field(got, "product", "_id") != productID {
		t.Fatalf("get by slug returned %v", got)
	}

	cart := s.expect(http.StatusOK, "PUT", "/auth/"+buyerID+"/add-to-cart", buyerToken, map[string]any{"productId": productID, "quantity": 2})
	if field(cart, "cart", "subtotal") != "21.00" {
		t.Fatalf("unexpected cart %v", cart)
	}

	checkoutBody := map[string]any{
		"shippingAddress": "1 Main St",
		"phoneNumber":     "5550100",
		"expectedPrice":   "21.00",
	}
	placed := s.expect(http.StatusCreated, "POST", "/auth/"+buyerID+"/checkout", buyerToken, checkoutBody, "Idempotency-Key", "k-1")
	orderID := field(placed, "order", "_id").(string)
	if field(placed, "order", "status") != "pending" {
		t.Fatalf("new order should be pending: %v", placed)
	}

	replay := s.expect(http.StatusOK, "POST", "/auth/"+buyerID+"/checkout", buyerToken, checkoutBody, "Idempotency-Key", "k-1")
	if field(replay, "order", "_id") != orderID || replay["replayed"] != true {
		t.Fatalf("retry should replay the order: %v", replay)
	}

	pending := s.expect(http.StatusOK, "GET", "/auth/"+buyerID+"/products", buyerToken, nil)
	entries := pending["products"].([]any)
	if len(entries) != 1 {
		t.Fatalf("expected one pending entry, got %v", entries)
	}
	entryID := entries[0].(map[string]any)["_id"].(string)

	s.expect(http.StatusOK, "POST", "/auth/approve-all-products", adminToken, map[string]any{
		"userId":   buyerID,
		"products": []map[string]any{{"productId": entryID}},
	})

	order := s.expect(http.StatusOK, "GET", "/auth/orders/"+orderID, adminToken, nil)
	if field(order, "order", "status") != "completed" {
		t.Fatalf("order should be completed: %v", order)
	}

	mine := s.expect(http.StatusOK, "GET", "/auth/orders", buyerToken, nil)
	if field(mine, "pagination", "total") != float64(1) {
		t.Fatalf("expected one order for buyer: %v", mine)
	}
}

func TestAuthorizationGates(t *testing.T) {
	s := newTestServer(t)
	adminToken, _ := s.login("admin@example.com", "admin-password")
	buyerToken, buyerID := s.register("Ada Buyer", "ada@example.com")
	otherToken, _ := s.register("Bo Other", "bo@example.com")

	s.expect(http.StatusUnauthorized, "GET", "/auth/profile", "", nil)
	s.expect(http.StatusUnauthorized, "GET", "/auth/profile", "not-a-jwt", nil)
	s.expect(http.StatusForbidden, "GET", "/auth/all-users", buyerToken, nil)
	s.expect(http.StatusForbidden, "GET", "/auth/"+buyerID+"/cart", otherToken, nil)
	s.expect(http.StatusOK, "GET", "/auth/"+buyerID+"/cart", adminToken, nil)
	s.expect(http.StatusOK, "GET", "/auth/admin-auth", adminToken, nil)
	s.expect(http.StatusForbidden, "POST", "/faq/create-faq", buyerToken, map[string]any{"question": "Why?", "answer": "Because."})

	users := s.expect(http.StatusOK, "GET", "/auth/all-users?per_page=2", adminToken, nil)
	if field(users, "pagination", "total") != float64(3) || len(users["users"].([]any)) != 2 {
		t.Fatalf("unexpected user page %v", users)
	}

	s.expect(http.StatusOK, "POST", "/auth/logout", buyerToken, nil)
	out := s.expect(http.StatusUnauthorized, "GET", "/auth/profile", buyerToken, nil)
	if out["success"] != false {
		t.Fatalf("error envelope should carry success=false: %v", out)
	}
}

func TestValidationErrorsAreBadRequests(t *testing.T) {
	s := newTestServer(t)
	buyerToken, buyerID := s.register("Ada Buyer", "ada@example.com")

	out := s.expect(http.StatusBadRequest, "POST", "/auth/"+buyerID+"/checkout", buyerToken, map[string]any{
		"shippingAddress": "1 Main St",
		"phoneNumber":     "5550100",
		"expectedPrice":   "0",
	})
	if out["error"] == nil {
		t.Fatalf("validation error should carry details: %v", out)
	}

	s.expect(http.StatusBadRequest, "POST", "/auth/register", "", map[string]any{"email": "ada@example.com"})
	s.expect(http.StatusNotFound, "GET", "/product/get-product/no-such-product", "", nil)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}
