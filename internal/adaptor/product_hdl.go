package adaptor

import (
	"net/http"

	"dropship-store/internal/dto/request"
	"dropship-store/internal/dto/response"
	"dropship-store/internal/usecase"
	"dropship-store/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProductHandler struct {
	service usecase.ProductService
	log     *zap.Logger
}

func NewProductHandler(service usecase.ProductService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log,
	}
}

// GetProducts handles GET /product/get-product?page=&per_page=&category=&search=&sort=
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.ProductListRequest{
		PaginatedRequest: pageFromQuery(r),
		Category:         query.Get("category"),
		Search:           query.Get("search"),
		Sort:             query.Get("sort"),
	}
	h.list(w, r, &req)
}

// Search handles GET /product/search/{keyword}
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	req := request.ProductListRequest{
		PaginatedRequest: pageFromQuery(r),
		Search:           chi.URLParam(r, "keyword"),
	}
	h.list(w, r, &req)
}

func (h *ProductHandler) list(w http.ResponseWriter, r *http.Request, req *request.ProductListRequest) {
	products, err := h.service.GetAllProducts(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err, "get products")
		return
	}
	writeProductPage(w, products)
}

// GetProduct handles GET /product/get-product/{slug}; an id is accepted too.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "slug")

	var (
		product *response.ProductResponse
		err     error
	)
	if utils.IsValidID(key) {
		product, err = h.service.GetProductByID(r.Context(), key)
	} else {
		product, err = h.service.GetProductBySlug(r.Context(), key)
	}
	if err != nil {
		writeServiceError(w, h.log, err, "get product")
		return
	}

	utils.ResponseSuccess(w, "Product retrieved successfully", utils.Payload{"product": product})
}

// ProductCount handles GET /product/product-count
func (h *ProductHandler) ProductCount(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.CountProducts(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "count products")
		return
	}

	utils.ResponseSuccess(w, "Product count retrieved", utils.Payload{"total": total})
}

// ProductsByCategory handles GET /product/product-category/{slug}
func (h *ProductHandler) ProductsByCategory(w http.ResponseWriter, r *http.Request) {
	req := pageFromQuery(r)

	products, err := h.service.GetProductsByCategory(r.Context(), chi.URLParam(r, "slug"), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "get category products")
		return
	}
	writeProductPage(w, products)
}

// CreateProduct handles POST /product/create-product (admin only)
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req request.ProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	product, err := h.service.CreateProduct(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create product")
		return
	}

	utils.ResponseCreated(w, "Product created successfully", utils.Payload{"product": product})
}

// UpdateProduct handles PUT /product/update-product/{productId} (admin only)
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req request.ProductUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "productId"), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update product")
		return
	}

	utils.ResponseSuccess(w, "Product updated successfully", utils.Payload{"product": product})
}

// DeleteProduct handles DELETE /product/delete-product/{productId} (admin only)
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "productId")); err != nil {
		writeServiceError(w, h.log, err, "delete product")
		return
	}

	utils.ResponseSuccess(w, "Product deleted successfully", nil)
}

// Review handles PUT /product/{productId}/review and its /auth alias
func (h *ProductHandler) Review(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.ReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	product, err := h.service.UpsertReview(r.Context(), userID, chi.URLParam(r, "productId"), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "review product")
		return
	}

	utils.ResponseSuccess(w, "Review saved", utils.Payload{"product": product})
}

func writeProductPage(w http.ResponseWriter, page *response.PaginatedResponse[response.ProductResponse]) {
	utils.ResponseSuccess(w, "Products retrieved successfully", utils.Payload{
		"products":   page.Data,
		"pagination": page.Pagination,
	})
}
