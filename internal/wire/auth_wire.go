package wire

import (
	"dropship-store/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireAuth mounts /auth: accounts, carts, checkout and order administration
func wireAuth(r chi.Router, h *adaptor.Handler, g guards) {
	r.Route("/auth", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)

		// ==================== SIGNED-IN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(g.signIn)

			r.Post("/logout", h.Auth.Logout)
			r.Get("/user-auth", h.Auth.Check)
			r.Get("/profile", h.User.GetProfile)
			r.Put("/profile", h.User.UpdateProfile)
			r.Put("/product-review/{productId}", h.Product.Review)
			r.Get("/orders", h.Order.GetMyOrders)

			// ==================== ADMIN ROUTES ====================
			r.Group(func(r chi.Router) {
				r.Use(g.admin)

				r.Get("/admin-auth", h.Auth.Check)
				r.Get("/all-users", h.User.GetAllUsers)
				r.Get("/users/{userId}", h.User.GetUser)
				r.Delete("/users/{userId}", h.User.DeleteUser)
				r.Post("/approve-all-products", h.Order.Approve)
				r.Get("/pending-products", h.Order.GetPendingUsers)
				r.Get("/all-orders", h.Order.GetAllOrders)
				r.Get("/orders/{orderId}", h.Order.GetOrder)
				r.Put("/order-status/{orderId}", h.Order.UpdateOrderStatus)
			})

			// ==================== SELF-OR-ADMIN ROUTES ====================
			r.Route("/{userId}", func(r chi.Router) {
				r.Use(g.selfOrAdmin)

				r.Get("/cart", h.Cart.GetCart)
				r.Put("/add-to-cart", h.Cart.AddToCart)
				r.Put("/update-cart", h.Cart.UpdateCart)
				r.Delete("/remove-from-cart/{productId}", h.Cart.RemoveFromCart)
				r.Post("/checkout", h.Order.Checkout)
				r.Get("/products", h.Order.GetUserPending)
			})
		})
	})
}
