package usecase

import (
	"dropship-store/internal/data/entity"
	"dropship-store/internal/data/repository"
	"dropship-store/pkg/events"
	"dropship-store/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Cart    CartService
	Order   OrderService
	Product ProductService
	Ticket  TicketService

	Category    ContentService[entity.Category, *entity.Category]
	Feature     ContentService[entity.Feature, *entity.Feature]
	Integration ContentService[entity.Integration, *entity.Integration]
	FAQ         ContentService[entity.FAQ, *entity.FAQ]
	Job         ContentService[entity.Job, *entity.Job]
	Newsfeed    ContentService[entity.Newsfeed, *entity.Newsfeed]
}

func NewService(repo *repository.Repository, config *utils.Config, publisher events.Publisher, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		User:    NewUserService(repo, log),
		Cart:    NewCartService(repo, log),
		Order:   NewOrderService(repo, publisher, log),
		Product: NewProductService(repo, log),
		Ticket:  NewTicketService(repo.Ticket, log),

		Category:    NewContentService(repo.Category, "category", log),
		Feature:     NewContentService(repo.Feature, "feature", log),
		Integration: NewContentService(repo.Integration, "integration", log),
		FAQ:         NewContentService(repo.FAQ, "faq", log),
		Job:         NewContentService(repo.Job, "job", log),
		Newsfeed:    NewContentService(repo.Newsfeed, "newsfeed", log),
	}
}
