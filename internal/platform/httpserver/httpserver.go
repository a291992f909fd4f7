// Package httpserver owns the gateway listener: server timeouts sized around the
// upstream API deadline, and a serve loop that drains requests on shutdown.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const (
	// writeSlack covers encoding the error envelope after an upstream call times out.
	writeSlack   = 5 * time.Second
	defaultGrace = 10 * time.Second
)

type Option func(*http.Server)

// WithUpstreamTimeout sizes WriteTimeout so a handler blocked on the upstream API for
// its full deadline can still answer.
func WithUpstreamTimeout(d time.Duration) Option {
	return func(srv *http.Server) {
		if d > 0 {
			srv.WriteTimeout = d + writeSlack
		}
	}
}

// New builds the gateway's HTTP server. ReadTimeout leaves room for admin uploads.
func New(addr string, handler http.Handler, opts ...Option) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30*time.Second + writeSlack,
		IdleTimeout:       120 * time.Second,
	}
	for _, opt := range opts {
		opt(srv)
	}
	return srv
}

// Run listens on srv.Addr and serves until ctx is done.
func Run(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", srv.Addr, err)
	}
	return Serve(ctx, srv, ln, logger, defaultGrace)
}

// Serve accepts on ln until ctx is done, then gives in-flight requests up to grace to
// finish. A listener failure is returned as soon as it happens.
func Serve(ctx context.Context, srv *http.Server, ln net.Listener, logger *slog.Logger, grace time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down http server", "grace", grace)
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), grace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return <-errCh
}
