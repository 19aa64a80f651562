package middleware

import (
	"context"
	"net/http"

	"dropship-store/internal/data/entity"
	"dropship-store/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RevocationChecker reports whether a token id has been logged out.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// UserFinder loads the caller for role checks.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
}

// RequireSignIn validates the bearer JWT and stores the caller in the context.
func RequireSignIn(secret string, tokens RevocationChecker, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := utils.ExtractToken(r.Header.Get("Authorization"))
			if token == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			claims, err := utils.ParseToken(secret, token)
			if err != nil {
				logger.Warn("Rejected token", zap.String("path", r.URL.Path), zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			revoked, err := tokens.IsRevoked(r.Context(), claims.ID)
			if err != nil {
				logger.Error("Failed to check token revocation",
					zap.String("token_id", claims.ID),
					zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if revoked {
				logger.Warn("Revoked token used", zap.String("user_id", claims.UserID))
				utils.ResponseUnauthorized(w, "Token has been revoked")
				return
			}

			ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Role)
			ctx = utils.SetTokenContext(ctx, claims)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin checks the stored role, not the token claim, so a demotion takes
// effect immediately.
func Admin(users UserFinder, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			user, err := users.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("Admin check: failed to get user",
					zap.Error(err), zap.String("user_id", userID))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if user == nil || !user.IsAdmin() {
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("user_id", userID),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			ctx := utils.SetUserContext(r.Context(), user.ID, string(user.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SelfOrAdmin lets the request through when the {param} path user is the
// caller, or the caller is an admin.
func SelfOrAdmin(param string, users UserFinder, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if chi.URLParam(r, param) == userID {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("Ownership check: failed to get user",
					zap.Error(err), zap.String("user_id", userID))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if user == nil || !user.IsAdmin() {
				logger.Warn("Ownership check: access to another user's resources",
					zap.String("user_id", userID),
					zap.String("target", chi.URLParam(r, param)),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "You can only access your own account")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
