package usecase

import (
	"context"
	"errors"
	"testing"

	"dropship-store/internal/data/entity"
	"dropship-store/internal/dto/request"
	"dropship-store/pkg/utils"
)

func registerRequest(email string) *request.RegisterRequest {
	return &request.RegisterRequest{
		Name:     "Ada Buyer",
		Email:    email,
		Password: "secret-pass",
		Phone:    "5550100",
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.svc.Auth.Register(ctx, registerRequest("Ada@Example.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "ada@example.com" || user.Role != entity.RoleCustomer {
		t.Fatalf("unexpected user %+v", user)
	}

	_, err = f.svc.Auth.Register(ctx, registerRequest("ada@example.com"))
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)

	req := registerRequest("not-an-email")
	req.Password = "123"
	_, err := f.svc.Auth.Register(context.Background(), req)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestLoginIssuesToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.svc.Auth.Register(ctx, registerRequest("ada@example.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err = f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "ada@example.com", Password: "wrong-pass"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("wrong password: expected ErrUnauthorized, got %v", err)
	}
	_, err = f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "nobody@example.com", Password: "secret-pass"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("unknown email: expected ErrUnauthorized, got %v", err)
	}

	auth, err := f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "ADA@example.com", Password: "secret-pass"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if auth.User.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, auth.User.ID)
	}

	claims, err := utils.ParseToken(testConfig().JWT.Secret, auth.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != string(entity.RoleCustomer) {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Auth.Register(ctx, registerRequest("ada@example.com")); err != nil {
		t.Fatalf("register: %v", err)
	}
	auth, err := f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "ada@example.com", Password: "secret-pass"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := utils.ParseToken(testConfig().JWT.Secret, auth.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := f.svc.Auth.Logout(ctx, claims); err != nil {
			t.Fatalf("logout #%d: %v", i+1, err)
		}
	}

	revoked, err := f.repo.Token.IsRevoked(ctx, claims.ID)
	if err != nil || !revoked {
		t.Fatalf("expected token to be revoked, got %v (%v)", revoked, err)
	}
}

func TestSeedAdminRunsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := f.svc.Auth.SeedAdmin(ctx); err != nil {
			t.Fatalf("seed #%d: %v", i+1, err)
		}
	}

	count, err := f.repo.User.CountAll(ctx)
	if err != nil || count != 1 {
		t.Fatalf("expected one user, got %d (%v)", count, err)
	}
	admin, err := f.repo.User.FindByEmail(ctx, "admin@example.com")
	if err != nil || admin == nil || !admin.IsAdmin() {
		t.Fatalf("expected admin account, got %+v (%v)", admin, err)
	}
	if !utils.CheckPasswordHash("admin-password", admin.Password) {
		t.Fatal("admin password not hashed from config")
	}
}
