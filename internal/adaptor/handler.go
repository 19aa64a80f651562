package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"dropship-store/internal/data/entity"
	"dropship-store/internal/dto/request"
	"dropship-store/internal/usecase"
	"dropship-store/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Cart    *CartHandler
	Order   *OrderHandler
	Product *ProductHandler
	Ticket  *TicketHandler

	Category    *ContentHandler[entity.Category, *entity.Category, request.CategoryRequest, request.CategoryUpdateRequest]
	Feature     *ContentHandler[entity.Feature, *entity.Feature, request.FeatureRequest, request.FeatureUpdateRequest]
	Integration *ContentHandler[entity.Integration, *entity.Integration, request.IntegrationRequest, request.IntegrationUpdateRequest]
	FAQ         *ContentHandler[entity.FAQ, *entity.FAQ, request.FAQRequest, request.FAQUpdateRequest]
	Job         *ContentHandler[entity.Job, *entity.Job, request.JobRequest, request.JobUpdateRequest]
	Newsfeed    *ContentHandler[entity.Newsfeed, *entity.Newsfeed, request.NewsfeedRequest, request.NewsfeedUpdateRequest]
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, log),
		Cart:    NewCartHandler(service.Cart, log),
		Order:   NewOrderHandler(service.Order, log),
		Product: NewProductHandler(service.Product, log),
		Ticket:  NewTicketHandler(service.Ticket, log),

		Category:    NewContentHandler[entity.Category, *entity.Category, request.CategoryRequest, request.CategoryUpdateRequest](service.Category, "category", "categories", log),
		Feature:     NewContentHandler[entity.Feature, *entity.Feature, request.FeatureRequest, request.FeatureUpdateRequest](service.Feature, "feature", "features", log),
		Integration: NewContentHandler[entity.Integration, *entity.Integration, request.IntegrationRequest, request.IntegrationUpdateRequest](service.Integration, "integration", "integrations", log),
		FAQ:         NewContentHandler[entity.FAQ, *entity.FAQ, request.FAQRequest, request.FAQUpdateRequest](service.FAQ, "faq", "faqs", log),
		Job:         NewContentHandler[entity.Job, *entity.Job, request.JobRequest, request.JobUpdateRequest](service.Job, "job", "jobs", log),
		Newsfeed:    NewContentHandler[entity.Newsfeed, *entity.Newsfeed, request.NewsfeedRequest, request.NewsfeedUpdateRequest](service.Newsfeed, "newsfeed", "newsfeeds", log),
	}
}

// decodeJSON writes a 400 and returns false when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", err.Error())
		return false
	}
	return true
}

// pageFromQuery reads ?page= and ?per_page=.
func pageFromQuery(r *http.Request) request.PaginatedRequest {
	query := r.URL.Query()
	return request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}

func currentUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
	}
	return userID, ok
}

// writeServiceError maps service sentinel errors onto status codes.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		log.Warn(operation+" validation failed", zap.Error(err))
		var fields usecase.FieldErrors
		if errors.As(err, &fields) {
			utils.ResponseBadRequest(w, "Validation failed", map[string]string(fields))
			return
		}
		utils.ResponseBadRequest(w, "Validation failed", err.Error())

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrUnauthorized):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
