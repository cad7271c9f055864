package middleware

import (
	"context"
	"net/http"
	"strings"

	"tillpoint/internal/repositories"
	"tillpoint/internal/service"
	"tillpoint/pkg/logger"
)

type contextKey string

const userIDKey contextKey = "user_id"

// UserID returns the authenticated user's ID from the request context, or
// an empty string when the request skipped authentication.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

type Auth struct {
	authService service.AuthServiceInterface
	userRepo    repositories.UserRepositoryInterface
	logger      *logger.Logger
}

func NewAuth(authService service.AuthServiceInterface, userRepo repositories.UserRepositoryInterface, log *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		userRepo:    userRepo,
		logger:      log.WithComponent("auth_middleware"),
	}
}

// RequireAuth rejects requests without a valid bearer token. The token's
// subject must still resolve to a stored user, so tokens outlive neither
// their expiry nor their account.
func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			a.unauthorized(w, "missing bearer token")
			return
		}

		userID, err := a.authService.VerifyToken(token)
		if err != nil {
			a.logger.Warn("Rejected invalid token", "error", err)
			a.unauthorized(w, "invalid or expired token")
			return
		}

		if _, err := a.userRepo.GetByID(userID); err != nil {
			a.logger.Warn("Token subject no longer exists", "user_id", userID)
			a.unauthorized(w, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Auth) unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + msg + `"}`))
}
