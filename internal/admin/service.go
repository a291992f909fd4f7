package admin

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"mealshare/internal/platform/metrics"
	dErrors "mealshare/pkg/domain-errors"
	"mealshare/pkg/requestcontext"
)

// PasskeyVerifier is the upstream admin gate.
type PasskeyVerifier interface {
	VerifyAdminPasskey(ctx context.Context, passkey string) (bool, error)
}

// RevocationList remembers logged-out session ids until their tokens expire.
type RevocationList interface {
	Revoke(ctx context.Context, id string, ttl time.Duration) error
	IsRevoked(ctx context.Context, id string) (bool, error)
}

const (
	MsgGateDenied    = "Invalid passkey. Try again!"
	MsgGateFailed    = "Server error. Please try again later."
	MsgSessionNeeded = "admin session required"
)

type Service struct {
	gate        PasskeyVerifier
	tokens      *Tokens
	revocations RevocationList
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func NewService(gate PasskeyVerifier, tokens *Tokens, revocations RevocationList, opts ...Option) *Service {
	s := &Service{
		gate:        gate,
		tokens:      tokens,
		revocations: revocations,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login checks passkey against the upstream gate and issues a session token.
func (s *Service) Login(ctx context.Context, passkey string) (string, Session, error) {
	if strings.TrimSpace(passkey) == "" {
		return "", Session{}, dErrors.New(dErrors.CodeBadRequest, "passkey is required")
	}
	valid, err := s.gate.VerifyAdminPasskey(ctx, passkey)
	if err != nil {
		s.metrics.IncrementAdminLogins(metrics.OutcomeFailure)
		s.logger.WarnContext(ctx, "admin gate unavailable",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		return "", Session{}, dErrors.Wrap(err, dErrors.CodeUnavailable, MsgGateFailed)
	}
	if !valid {
		s.metrics.IncrementAdminLogins(metrics.OutcomeDenied)
		s.logger.WarnContext(ctx, "admin passkey rejected",
			"request_id", requestcontext.RequestID(ctx),
			"client_ip", requestcontext.ClientIP(ctx),
		)
		return "", Session{}, dErrors.New(dErrors.CodeForbidden, MsgGateDenied)
	}

	token, session, err := s.tokens.Issue(requestcontext.Now(ctx))
	if err != nil {
		return "", Session{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue admin session")
	}
	s.metrics.IncrementAdminLogins(metrics.OutcomeSuccess)
	s.logger.InfoContext(ctx, "admin session started",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", session.ID,
	)
	return token, session, nil
}

// Authenticate returns the session token represents, rejecting expired and revoked tokens.
func (s *Service) Authenticate(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, dErrors.New(dErrors.CodeUnauthorized, MsgSessionNeeded)
	}
	session, err := s.tokens.Parse(token, requestcontext.Now(ctx))
	if err != nil {
		return Session{}, err
	}
	revoked, err := s.revocations.IsRevoked(ctx, session.ID)
	if err != nil {
		return Session{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check admin session")
	}
	if revoked {
		return Session{}, dErrors.New(dErrors.CodeUnauthorized, "admin session has ended")
	}
	return session, nil
}

// Logout revokes token until it would have expired. Invalid or expired tokens are a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	now := requestcontext.Now(ctx)
	session, err := s.tokens.Parse(token, now)
	if err != nil {
		return nil
	}
	if err := s.revocations.Revoke(ctx, session.ID, session.ExpiresAt.Sub(now)); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to end admin session")
	}
	s.logger.InfoContext(ctx, "admin session ended",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", session.ID,
	)
	return nil
}
