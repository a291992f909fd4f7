package admin

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"mealshare/internal/platform/middleware"
	dErrors "mealshare/pkg/domain-errors"
	"mealshare/pkg/platform/httputil"
)

// SessionService is what the admin handler needs from Service.
type SessionService interface {
	Authenticator
	Login(ctx context.Context, passkey string) (string, Session, error)
	Logout(ctx context.Context, token string) error
}

type Handler struct {
	sessions     SessionService
	logger       *slog.Logger
	secureCookie bool
	loginGuard   func(http.Handler) http.Handler
}

type HandlerOption func(*Handler)

// WithLoginGuard wraps POST /admin/login, typically with a rate limiter.
func WithLoginGuard(mw func(http.Handler) http.Handler) HandlerOption {
	return func(h *Handler) {
		h.loginGuard = mw
	}
}

// NewHandler creates the admin session handler. secureCookie marks the cookie Secure.
func NewHandler(sessions SessionService, logger *slog.Logger, secureCookie bool, opts ...HandlerOption) *Handler {
	h := &Handler{sessions: sessions, logger: logger, secureCookie: secureCookie, loginGuard: passThrough}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func passThrough(next http.Handler) http.Handler { return next }

// Register adds the login, logout and session routes.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))

		r.With(h.loginGuard, middleware.ContentTypeJSON).Post("/admin/login", h.handleLogin)
		r.Post("/admin/logout", h.handleLogout)
		r.With(RequireSession(h.sessions, h.logger)).Get("/admin/session", h.handleSession)
	})
}

// RequireSession returns the session middleware bound to this handler's service.
func (h *Handler) RequireSession() func(http.Handler) http.Handler {
	return RequireSession(h.sessions, h.logger)
}

type LoginRequest struct {
	Passkey string `json:"passkey"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	SessionID string    `json:"sessionId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	token, session, err := h.sessions.Login(r.Context(), req.Passkey)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     CookiePath,
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
	httputil.WriteJSON(w, http.StatusOK, LoginResponse{
		Token:     token,
		SessionID: session.ID,
		ExpiresAt: session.ExpiresAt,
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context(), TokenFromRequest(r)); err != nil {
		h.writeError(w, r, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     CookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		h.writeError(w, r, dErrors.New(dErrors.CodeUnauthorized, MsgSessionNeeded))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, session)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	if de, ok := dErrors.As(err); !ok || de.Code == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, "admin request failed",
			"request_id", middleware.GetRequestID(ctx),
			"path", r.URL.Path,
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}
