package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/netip"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mealshare/internal/admin"
	contenthandler "mealshare/internal/content/handler"
	donationhandler "mealshare/internal/donation/handler"
	"mealshare/internal/platform/config"
	"mealshare/internal/platform/metrics"
	"mealshare/internal/platform/middleware"
	"mealshare/internal/ratelimit/models"
	ratelimit "mealshare/internal/ratelimit/middleware"
	dErrors "mealshare/pkg/domain-errors"
	"mealshare/pkg/platform/httputil"
)

type routerDeps struct {
	cfg       *config.Config
	logger    *slog.Logger
	metrics   *metrics.Metrics
	gatherer  prometheus.Gatherer
	donations donationhandler.Service
	content   contenthandler.Service
	admin     admin.SessionService
	limiter   *ratelimit.Limiter
	// trustedProxies may set the client address through forwarding headers.
	trustedProxies []netip.Prefix
	// health checks backing stores; nil when there are none.
	health func(context.Context) error
}

func newRouter(d routerDeps) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.ClientMetadata(d.trustedProxies))
	r.Use(middleware.Recovery(d.logger))
	r.Use(middleware.Logger(d.logger))
	r.Use(middleware.LatencyMiddleware(d.metrics))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if d.health != nil {
			if err := d.health(req.Context()); err != nil {
				httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "store unavailable"))
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(d.gatherer, promhttp.HandlerOpts{}))

	adminHandler := admin.NewHandler(d.admin, d.logger, d.cfg.IsProduction(),
		admin.WithLoginGuard(d.limiter.RateLimit(models.ClassAdminLogin)))
	adminHandler.Register(r)

	donationhandler.New(d.donations, d.logger,
		donationhandler.WithOTPGuard(d.limiter.RateLimit(models.ClassOTP))).Register(r)

	content := contenthandler.New(d.content, d.logger, d.cfg.UploadMaxBytes)
	content.Register(r)
	content.RegisterAdmin(r, adminHandler.RequireSession())

	return r
}
