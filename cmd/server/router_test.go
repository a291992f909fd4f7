package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"fmt"
	"net/http"
	"net/netip"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"mealshare/internal/admin"
	adminmocks "mealshare/internal/admin/mocks"
	adminstore "mealshare/internal/admin/store"
	contentmocks "mealshare/internal/content/handler/mocks"
	"mealshare/internal/content/models"
	donationmocks "mealshare/internal/donation/handler/mocks"
	donationmodels "mealshare/internal/donation/models"
	"mealshare/internal/platform/config"
	"mealshare/internal/platform/metrics"
	ratelimitmodels "mealshare/internal/ratelimit/models"
	ratelimit "mealshare/internal/ratelimit/middleware"
	"mealshare/internal/ratelimit/store/bucket"
	"mealshare/pkg/testutil"
)

type RouterSuite struct {
	suite.Suite
	gate      *adminmocks.MockPasskeyVerifier
	content   *contentmocks.MockService
	donations *donationmocks.MockService
	healthErr error
	router    chi.Router
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.gate = adminmocks.NewMockPasskeyVerifier(ctrl)
	s.content = contentmocks.NewMockService(ctrl)
	s.donations = donationmocks.NewMockService(ctrl)
	s.healthErr = nil

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()
	adminSessions := admin.NewService(s.gate, admin.NewTokens("test-secret", time.Hour), adminstore.NewInMemory(),
		admin.WithLogger(logger))

	limiter := ratelimit.New(bucket.New(), logger, ratelimit.WithLimits(map[ratelimitmodels.Class]ratelimitmodels.Limit{
		ratelimitmodels.ClassAdminLogin: {Requests: 3, Window: time.Minute},
	}))

	s.router = newRouter(routerDeps{
		cfg:       &config.Config{UploadMaxBytes: 1 << 20, Env: config.EnvDevelopment},
		logger:    logger,
		metrics:   metrics.New(reg),
		gatherer:  reg,
		donations: s.donations,
		content:   s.content,
		admin:     adminSessions,
		limiter:   limiter,
		health:    func(context.Context) error { return s.healthErr },

		trustedProxies: []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")},
	})
}

func (s *RouterSuite) TestHealthz() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/healthz"))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)

	s.healthErr = errors.New("connection refused")
	rr = testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/healthz"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadGateway, "unavailable")
}

func (s *RouterSuite) TestRequestIDHeader() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/healthz"))

	s.NotEmpty(rr.Header().Get("X-Request-ID"))
}

func (s *RouterSuite) TestMetricsEndpoint() {
	s.donations.EXPECT().AmountOptions().Return(donationmodels.AmountOptions())
	testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/donations/amounts"))

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/metrics"))

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	s.Contains(rr.Body.String(), `mealshare_http_request_duration_seconds_count{route="/donations/amounts"} 1`)
}

func (s *RouterSuite) TestAdminContentRequiresSession() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodDelete, "/admin/content/publications/pub1"))

	testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
}

func (s *RouterSuite) TestAdminLoginThenEditContent() {
	s.gate.EXPECT().VerifyAdminPasskey(gomock.Any(), "open-sesame").Return(true, nil)
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/login", admin.LoginRequest{Passkey: "open-sesame"}))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	cookies := rr.Result().Cookies()
	s.Require().Len(cookies, 1)

	s.content.EXPECT().Delete(gomock.Any(), models.CollectionPublications, "pub1").Return(nil)
	req := testutil.NewRequest(s.T(), http.MethodDelete, "/admin/content/publications/pub1")
	req.AddCookie(cookies[0])
	rr = testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusNoContent)
}

func (s *RouterSuite) TestPublicContentNeedsNoSession() {
	s.content.EXPECT().Hero(gomock.Any()).Return(models.Hero{Title: "Feed a child"}.WithDefaults(), nil)

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/content/hero"))

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
}

func (s *RouterSuite) TestAdminLoginIsRateLimited() {
	s.gate.EXPECT().VerifyAdminPasskey(gomock.Any(), "guess").Return(false, nil).Times(3)

	for range 3 {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/login", admin.LoginRequest{Passkey: "guess"}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusForbidden, "forbidden")
	}

	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/login", admin.LoginRequest{Passkey: "guess"}))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusTooManyRequests, "rate_limited")
	s.NotEmpty(rr.Header().Get("Retry-After"))
}

func (s *RouterSuite) TestAdminLoginLimitIgnoresSpoofedForwardedFor() {
	s.gate.EXPECT().VerifyAdminPasskey(gomock.Any(), "guess").Return(false, nil).Times(3)

	login := func(i int) *http.Request {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/login", admin.LoginRequest{Passkey: "guess"})
		req.RemoteAddr = "203.0.113.50:51000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		req.Header.Set("X-Real-IP", fmt.Sprintf("192.0.2.%d", i))
		return req
	}

	for i := range 3 {
		rr := testutil.DoRequest(s.router, login(i))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusForbidden, "forbidden")
	}

	rr := testutil.DoRequest(s.router, login(3))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusTooManyRequests, "rate_limited")
}

func (s *RouterSuite) TestAdminLoginLimitPerClientBehindTrustedProxy() {
	s.gate.EXPECT().VerifyAdminPasskey(gomock.Any(), "guess").Return(false, nil).Times(4)

	for i := range 4 {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/login", admin.LoginRequest{Passkey: "guess"})
		req.RemoteAddr = "10.0.0.5:443"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d, 10.0.0.9", i))

		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusForbidden, "forbidden")
	}
}
