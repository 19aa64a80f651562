package adaptor

import (
	"net/http"

	"dropship-store/internal/data/entity"
	"dropship-store/internal/dto/request"
	"dropship-store/internal/usecase"
	"dropship-store/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ContentHandler serves one content resource. C and U are its create and
// update request bodies.
type ContentHandler[E any, P entity.Content[E], C request.Applier[P], U request.Applier[P]] struct {
	service  usecase.ContentService[E, P]
	singular string
	plural   string
	log      *zap.Logger
}

func NewContentHandler[E any, P entity.Content[E], C request.Applier[P], U request.Applier[P]](
	service usecase.ContentService[E, P],
	singular, plural string,
	log *zap.Logger,
) *ContentHandler[E, P, C, U] {
	return &ContentHandler[E, P, C, U]{
		service:  service,
		singular: singular,
		plural:   plural,
		log:      log,
	}
}

// Resource is the singular name used in route paths and payload keys.
func (h *ContentHandler[E, P, C, U]) Resource() string { return h.singular }

// List handles GET /<r>/get-<r>?search=
func (h *ContentHandler[E, P, C, U]) List(w http.ResponseWriter, r *http.Request) {
	req := request.ContentListRequest{
		PaginatedRequest: pageFromQuery(r),
		Search:           r.URL.Query().Get("search"),
	}

	page, err := h.service.List(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "list "+h.plural)
		return
	}

	utils.ResponseSuccess(w, "All "+h.plural+" retrieved", utils.Payload{
		h.plural:     page.Data,
		"pagination": page.Pagination,
	})
}

// GetBySlug handles GET /<r>/single-<r>/{slug}
func (h *ContentHandler[E, P, C, U]) GetBySlug(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeServiceError(w, h.log, err, "get "+h.singular)
		return
	}
	utils.ResponseSuccess(w, "Single "+h.singular+" retrieved", utils.Payload{h.singular: doc})
}

// GetByID handles GET /<r>/get-<r>/{id}
func (h *ContentHandler[E, P, C, U]) GetByID(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err, "get "+h.singular)
		return
	}
	utils.ResponseSuccess(w, "Single "+h.singular+" retrieved", utils.Payload{h.singular: doc})
}

// Create handles POST /<r>/create-<r> (admin only)
func (h *ContentHandler[E, P, C, U]) Create(w http.ResponseWriter, r *http.Request) {
	var req C
	if !decodeJSON(w, r, &req) {
		return
	}

	doc, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err, "create "+h.singular)
		return
	}
	utils.ResponseCreated(w, "New "+h.singular+" created", utils.Payload{h.singular: doc})
}

// Update handles PUT /<r>/update-<r>/{id} (admin only)
func (h *ContentHandler[E, P, C, U]) Update(w http.ResponseWriter, r *http.Request) {
	var req U
	if !decodeJSON(w, r, &req) {
		return
	}

	doc, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, h.log, err, "update "+h.singular)
		return
	}
	utils.ResponseSuccess(w, h.singular+" updated successfully", utils.Payload{h.singular: doc})
}

// Delete handles DELETE /<r>/delete-<r>/{id} (admin only)
func (h *ContentHandler[E, P, C, U]) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.log, err, "delete "+h.singular)
		return
	}
	utils.ResponseSuccess(w, h.singular+" deleted successfully", nil)
}
