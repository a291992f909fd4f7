// Package middleware applies per-client sliding-window limits to gateway routes.
//
// Limits are keyed by client IP within an endpoint class. When the primary
// store (Redis) keeps failing, a circuit breaker moves checks onto an
// in-memory fallback and responses carry X-RateLimit-Status: degraded until
// the primary recovers. Without a fallback, store errors fail open.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"mealshare/internal/platform/metrics"
	"mealshare/internal/ratelimit/models"
	dErrors "mealshare/pkg/domain-errors"
	"mealshare/pkg/platform/circuit"
	"mealshare/pkg/platform/httputil"
	"mealshare/pkg/requestcontext"
)

const MsgTooManyRequests = "Too many requests. Please try again later."

// Store is a sliding-window counter.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.Result, error)
}

type Limiter struct {
	primary  Store
	fallback Store
	breaker  *circuit.Breaker
	limits   map[models.Class]models.Limit
	logger   *slog.Logger
	metrics  *metrics.Metrics
	disabled bool
}

type Option func(*Limiter)

// WithFallback sets the store used while the primary is failing.
func WithFallback(s Store) Option {
	return func(l *Limiter) {
		l.fallback = s
	}
}

// WithLimits overrides the budget for the given classes.
func WithLimits(limits map[models.Class]models.Limit) Option {
	return func(l *Limiter) {
		for class, limit := range limits {
			l.limits[class] = limit
		}
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(l *Limiter) {
		l.breaker = b
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Limiter) {
		l.metrics = m
	}
}

// WithDisabled turns every check into a pass-through.
func WithDisabled(disabled bool) Option {
	return func(l *Limiter) {
		l.disabled = disabled
	}
}

func New(primary Store, logger *slog.Logger, opts ...Option) *Limiter {
	l := &Limiter{
		primary: primary,
		breaker: circuit.New("ratelimit-store"),
		limits:  models.DefaultLimits(),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.disabled {
		logger.Info("rate limiting disabled")
	}
	return l
}

// RateLimit returns middleware enforcing the budget of class per client IP.
func (l *Limiter) RateLimit(class models.Class) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limit, ok := l.limits[class]
			if l.disabled || !ok || limit.Requests <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			ip := requestcontext.ClientIP(ctx)
			result, degraded, err := l.check(ctx, models.NewKey(class, ip), limit)
			if degraded {
				w.Header().Set("X-RateLimit-Status", "degraded")
			}
			if err != nil {
				l.logger.ErrorContext(ctx, "rate limit check failed, allowing request",
					"error", err,
					"class", class,
				)
				next.ServeHTTP(w, r)
				return
			}

			addRateLimitHeaders(w, result)
			if !result.Allowed {
				l.metrics.IncrementRateLimitRejections(string(class))
				l.logger.WarnContext(ctx, "rate limit exceeded",
					"class", class,
					"client_ip", ip,
					"retry_after", result.RetryAfter,
				)
				w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
				httputil.WriteError(w, dErrors.New(dErrors.CodeRateLimited, MsgTooManyRequests))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// check consults the primary store and reports whether the answer came from the fallback.
func (l *Limiter) check(ctx context.Context, key string, limit models.Limit) (*models.Result, bool, error) {
	result, err := l.primary.Allow(ctx, key, limit.Requests, limit.Window)
	if err == nil {
		usePrimary, change := l.breaker.RecordSuccess()
		if change.Closed {
			l.logger.InfoContext(ctx, "rate limit store recovered", "breaker", l.breaker.Name())
			l.metrics.SetRateLimitDegraded(false)
		}
		if usePrimary || l.fallback == nil {
			return result, false, nil
		}
	} else {
		_, change := l.breaker.RecordFailure()
		if change.Opened {
			l.logger.WarnContext(ctx, "rate limit store failing, using in-memory fallback",
				"breaker", l.breaker.Name(),
				"error", err,
			)
			l.metrics.SetRateLimitDegraded(true)
		}
		if l.fallback == nil {
			return nil, false, err
		}
	}

	result, err = l.fallback.Allow(ctx, key, limit.Requests, limit.Window)
	return result, true, err
}

func addRateLimitHeaders(w http.ResponseWriter, result *models.Result) {
	if result == nil {
		return
	}
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}
