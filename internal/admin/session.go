// Package admin issues and checks signed admin sessions.
//
// The upstream API offers only a passkey check and no per-request authorization, so an
// admin session is a UI convenience: it keeps forged cookies out of the gateway's admin
// routes but does not protect the upstream API itself.
package admin

import (
	"context"
	"time"
)

const (
	// CookieName carries the session token. It is scoped to /admin so leaving the admin
	// area stops the browser from sending it.
	CookieName = "admin_session"
	CookiePath = "/admin"
	// HeaderName is the non-browser alternative to the cookie.
	HeaderName = "X-Admin-Session"
)

// Session is an authenticated admin session.
type Session struct {
	ID        string    `json:"id"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type sessionKey struct{}

// WithSession stores s in ctx.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session RequireSession placed in ctx.
func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}
