package admin

import (
	"context"
	"log/slog"
	"net/http"

	"mealshare/internal/platform/middleware"
	"mealshare/pkg/platform/httputil"
	"mealshare/pkg/requestcontext"
)

// Authenticator resolves a session token.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (Session, error)
}

// TokenFromRequest reads the session cookie, falling back to the header.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return r.Header.Get(HeaderName)
}

// RequireSession rejects requests without a valid admin session and puts the
// session in the request context.
func RequireSession(auth Authenticator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			session, err := auth.Authenticate(ctx, TokenFromRequest(r))
			if err != nil {
				logger.WarnContext(ctx, "admin session rejected",
					"request_id", middleware.GetRequestID(ctx),
					"path", r.URL.Path,
					"error", err.Error(),
				)
				httputil.WriteError(w, err)
				return
			}
			ctx = requestcontext.WithActorID(WithSession(ctx, session), session.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
