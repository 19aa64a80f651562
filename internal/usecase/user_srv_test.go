package usecase

import (
	"context"
	"testing"
	"time"

	"dropship-store/internal/data/repository"
	"dropship-store/internal/dto/request"

	"go.uber.org/zap"
)

func TestUpdateProfileKeepsConcurrentCheckout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "buyer@example.com")
	lamp := f.product(t, "Desk Lamp", "10.50")
	f.addToCart(t, u.ID, lamp.ID, 2)

	checkoutDone := make(chan error, 1)
	var orderID string
	users := &afterUserRead{
		UserRepository: f.repo.User,
		hook: func() {
			// Checkout starts while the profile update holds its copy of the user.
			go func() {
				resp, err := f.svc.Order.Checkout(context.Background(), u.ID, checkoutRequest("1 Main St"))
				if err == nil {
					orderID = resp.Order.ID
				}
				checkoutDone <- err
			}()
			select {
			case err := <-checkoutDone:
				checkoutDone <- err
			case <-time.After(50 * time.Millisecond):
			}
		},
	}
	profiles := NewUserService(f.withRepo(func(r *repository.Repository) { r.User = users }), zap.NewNop())

	name := "Renamed Buyer"
	if _, err := profiles.UpdateProfile(ctx, u.ID, &request.UpdateProfileRequest{Name: &name}); err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if err := <-checkoutDone; err != nil {
		t.Fatalf("checkout: %v", err)
	}

	got := f.reload(t, u.ID)
	if got.Name != name {
		t.Fatalf("profile change lost, name %q", got.Name)
	}
	if len(got.Cart) != 0 {
		t.Fatalf("checked-out cart came back: %+v", got.Cart)
	}
	if len(got.Products) != 1 || len(got.Products[0].Orders) != 1 || got.Products[0].Orders[0] != orderID {
		t.Fatalf("pending entry for order %s lost: %+v", orderID, got.Products)
	}
}

func TestUpdateProfileChangesPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "buyer@example.com")

	password := "new-secret"
	phone := "5550199"
	resp, err := f.svc.User.UpdateProfile(ctx, u.ID, &request.UpdateProfileRequest{Password: &password, Phone: &phone})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if resp.Phone != phone {
		t.Fatalf("phone not updated: %+v", resp)
	}

	got := f.reload(t, u.ID)
	if got.Password == password || got.Password == "x" {
		t.Fatalf("password should be stored hashed, got %q", got.Password)
	}
	if _, err := f.svc.User.UpdateProfile(ctx, "9a3b0e8c-1d2f-4e5a-8b6c-7d8e9f0a1b2c", &request.UpdateProfileRequest{Phone: &phone}); err == nil {
		t.Fatal("unknown user accepted")
	}
}
