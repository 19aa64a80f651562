package wire

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// contentHandler is satisfied by every adaptor.ContentHandler instantiation
type contentHandler interface {
	Resource() string
	List(w http.ResponseWriter, r *http.Request)
	GetBySlug(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

// wireContent mounts /<r>/get-<r>, /<r>/single-<r>/{slug} and the admin
// create/update/delete routes for each resource.
func wireContent(r chi.Router, g guards, handlers ...contentHandler) {
	for _, h := range handlers {
		name := h.Resource()

		r.Route("/"+name, func(r chi.Router) {
			// ==================== PUBLIC ROUTES ====================
			r.Get("/get-"+name, h.List)
			r.Get("/get-"+name+"/{id}", h.GetByID)
			r.Get("/single-"+name+"/{slug}", h.GetBySlug)

			// ==================== ADMIN ROUTES ====================
			r.Group(func(r chi.Router) {
				r.Use(g.signIn)
				r.Use(g.admin)

				r.Post("/create-"+name, h.Create)
				r.Put("/update-"+name+"/{id}", h.Update)
				r.Delete("/delete-"+name+"/{id}", h.Delete)
			})
		})
	}
}
