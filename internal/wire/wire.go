package wire

import (
	"context"
	"net/http"
	"time"

	"dropship-store/internal/adaptor"
	"dropship-store/internal/data/repository"
	"dropship-store/internal/usecase"
	"dropship-store/pkg/events"
	"dropship-store/pkg/middleware"
	"dropship-store/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired router and the services behind it
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and routes
func Wiring(repo *repository.Repository, config *utils.Config, publisher events.Publisher, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, publisher, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

// guards are the route-group middlewares
type guards struct {
	signIn      func(http.Handler) http.Handler
	admin       func(http.Handler) http.Handler
	selfOrAdmin func(http.Handler) http.Handler
}

func newGuards(repo *repository.Repository, config *utils.Config, log *zap.Logger) guards {
	return guards{
		signIn:      middleware.RequireSignIn(config.JWT.Secret, repo.Token, log),
		admin:       middleware.Admin(repo.User, log),
		selfOrAdmin: middleware.SelfOrAdmin("userId", repo.User, log),
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSOrigins))

	g := newGuards(repo, config, logger)

	r.Route(config.App.APIPrefix, func(api chi.Router) {
		wireAuth(api, handler, g)
		wireProduct(api, handler.Product, g)
		wireContent(api, g,
			handler.Category,
			handler.Feature,
			handler.Integration,
			handler.FAQ,
			handler.Job,
			handler.Newsfeed,
		)
		wireTicket(api, handler.Ticket, g)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := repo.Store.Ping(ctx); err != nil {
			logger.Error("Health check failed", zap.Error(err))
			utils.ResponseJSON(w, http.StatusServiceUnavailable, false, "Store unavailable", nil)
			return
		}
		utils.ResponseSuccess(w, "OK", utils.Payload{"driver": repo.Store.Driver()})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Route not found")
	})

	return r
}
