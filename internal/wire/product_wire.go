package wire

import (
	"dropship-store/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireProduct(r chi.Router, productHandler *adaptor.ProductHandler, g guards) {
	r.Route("/product", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/get-product", productHandler.GetProducts)
		r.Get("/get-product/{slug}", productHandler.GetProduct)
		r.Get("/product-count", productHandler.ProductCount)
		r.Get("/product-category/{slug}", productHandler.ProductsByCategory)
		r.Get("/search/{keyword}", productHandler.Search)

		// ==================== SIGNED-IN ROUTES ====================
		r.With(g.signIn).Put("/{productId}/review", productHandler.Review)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(g.signIn)
			r.Use(g.admin)

			r.Post("/create-product", productHandler.CreateProduct)
			r.Put("/update-product/{productId}", productHandler.UpdateProduct)
			r.Delete("/delete-product/{productId}", productHandler.DeleteProduct)
		})
	})
}
