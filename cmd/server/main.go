package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mealshare/internal/admin"
	adminstore "mealshare/internal/admin/store"
	"mealshare/internal/apiclient"
	contentservice "mealshare/internal/content/service"
	donationservice "mealshare/internal/donation/service"
	donationstore "mealshare/internal/donation/store"
	"mealshare/internal/platform/config"
	"mealshare/internal/platform/httpserver"
	"mealshare/internal/platform/logger"
	"mealshare/internal/platform/metrics"
	"mealshare/internal/platform/redis"
	"mealshare/internal/platform/tracing"
	"mealshare/internal/ratelimit/models"
	ratelimit "mealshare/internal/ratelimit/middleware"
	"mealshare/internal/ratelimit/store/bucket"
)

const purgeInterval = time.Minute

// main wires config, stores, the upstream client and services, then serves until
// SIGINT or SIGTERM.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	m := metrics.New(prometheus.DefaultRegisterer)

	trustedProxies, err := cfg.TrustedProxyPrefixes()
	if err != nil {
		return err
	}

	tp, err := tracing.New(ctx, cfg.OTLPEndpoint, cfg.OTLPInsecure, cfg.Env)
	if err != nil {
		return err
	}
	tp.SetGlobal()
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(flushCtx); err != nil {
			log.Warn("trace flush failed", "error", err)
		}
	}()
	log.Info("tracing configured", "exporting", tp.Exporting)

	rc, err := redis.New(ctx, cfg.Redis())
	if err != nil {
		return err
	}

	memBuckets := bucket.New()
	limiterOpts := []ratelimit.Option{
		ratelimit.WithMetrics(m),
		ratelimit.WithDisabled(!cfg.RateLimitEnabled),
		ratelimit.WithLimits(map[models.Class]models.Limit{
			models.ClassAdminLogin: {Requests: cfg.AdminLoginLimit, Window: cfg.AdminLoginLimitWindow},
			models.ClassOTP:        {Requests: cfg.OTPLimit, Window: cfg.OTPLimitWindow},
		}),
	}

	var (
		sessions     donationservice.Store
		revocations  admin.RevocationList
		limiterStore ratelimit.Store
		health       func(context.Context) error
		purgers      = []purger{memBuckets}
	)
	if rc != nil {
		defer rc.Close()
		sessions = donationstore.NewRedis(rc.Client, cfg.SessionTTL)
		revocations = adminstore.NewRedis(rc.Client)
		limiterStore = bucket.NewRedis(rc.Client)
		limiterOpts = append(limiterOpts, ratelimit.WithFallback(memBuckets))
		health = rc.Health
		log.Info("using redis stores")
	} else {
		memSessions := donationstore.NewInMemory(cfg.SessionTTL)
		memRevocations := adminstore.NewInMemory()
		purgers = append(purgers, memSessions, memRevocations)
		sessions = memSessions
		revocations = memRevocations
		limiterStore = memBuckets
		log.Info("using in-memory stores")
	}
	go purgeLoop(ctx, log, purgers...)
	limiter := ratelimit.New(limiterStore, log, limiterOpts...)

	api := apiclient.New(cfg.APIBaseURL,
		apiclient.WithTimeout(cfg.APITimeout),
		apiclient.WithMetrics(m),
	)

	donations := donationservice.New(sessions, api, api,
		donationservice.WithLogger(log),
		donationservice.WithMetrics(m),
	)
	content := contentservice.New(api, contentservice.WithLogger(log))
	adminSessions := admin.NewService(api, admin.NewTokens(cfg.AdminSessionSecret, cfg.AdminSessionTTL), revocations,
		admin.WithLogger(log),
		admin.WithMetrics(m),
	)

	router := newRouter(routerDeps{
		cfg:       cfg,
		logger:    log,
		metrics:   m,
		gatherer:  prometheus.DefaultGatherer,
		donations: donations,
		content:   content,
		admin:     adminSessions,
		limiter:   limiter,
		health:    health,

		trustedProxies: trustedProxies,
	})

	log.Info("starting mealshare gateway", "api", cfg.APIBaseURL, "env", cfg.Env, "trusted_proxies", len(trustedProxies))
	srv := httpserver.New(cfg.HTTPAddr, router, httpserver.WithUpstreamTimeout(cfg.APITimeout))
	return httpserver.Run(ctx, srv, log)
}

type purger interface {
	PurgeExpired() int
}

// purgeLoop evicts expired in-memory sessions, revocations and rate limit buckets.
func purgeLoop(ctx context.Context, log *slog.Logger, stores ...purger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n := 0
			for _, s := range stores {
				n += s.PurgeExpired()
			}
			if n > 0 {
				log.Debug("purged expired entries", "count", n)
			}
		}
	}
}
