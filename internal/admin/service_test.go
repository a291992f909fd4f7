package admin

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"mealshare/internal/admin/mocks"
	"mealshare/internal/admin/store"
	"mealshare/internal/platform/metrics"
	dErrors "mealshare/pkg/domain-errors"
	"mealshare/pkg/platform/sentinel"
	"mealshare/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks PasskeyVerifier
type AdminServiceSuite struct {
	suite.Suite
	gate    *mocks.MockPasskeyVerifier
	metrics *metrics.Metrics
	now     time.Time
	service *Service
}

func TestAdminServiceSuite(t *testing.T) {
	suite.Run(t, new(AdminServiceSuite))
}

func (s *AdminServiceSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.gate = mocks.NewMockPasskeyVerifier(ctrl)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.now = time.Date(2026, 3, 31, 9, 30, 0, 0, time.UTC)
	revocations := store.NewInMemory(store.WithClock(func() time.Time { return s.now }))
	s.service = NewService(s.gate, NewTokens("test-secret", 2*time.Hour), revocations,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(s.metrics),
	)
}

func (s *AdminServiceSuite) ctx() context.Context {
	return requestcontext.WithTime(context.Background(), s.now)
}

func (s *AdminServiceSuite) TestLoginAuthenticateLogout() {
	s.gate.EXPECT().VerifyAdminPasskey(gomock.Any(), "open-sesame").Return(true, nil)

	token, session, err := s.service.Login(s.ctx(), "open-sesame")
	s.Require().NoError(err)
	s.Equal(s.now.Add(2*time.Hour), session.ExpiresAt)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.AdminLogins.WithLabelValues(metrics.OutcomeSuccess)))

	got, err := s.service.Authenticate(s.ctx(), token)
	s.Require().NoError(err)
	s.Equal(session.ID, got.ID)

	s.Require().NoError(s.service.Logout(s.ctx(), token))

	_, err = s.service.Authenticate(s.ctx(), token)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *AdminServiceSuite) TestLoginDenied() {
	s.gate.EXPECT().VerifyAdminPasskey(gomock.Any(), "guess").Return(false, nil)

	_, _, err := s.service.Login(s.ctx(), "guess")

	de, ok := dErrors.As(err)
	s.Require().True(ok)
	s.Equal(dErrors.CodeForbidden, de.Code)
	s.Equal(MsgGateDenied, de.Message)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.AdminLogins.WithLabelValues(metrics.OutcomeDenied)))
}

func (s *AdminServiceSuite) TestLoginGateUnavailable() {
	s.gate.EXPECT().VerifyAdminPasskey(gomock.Any(), "open-sesame").Return(false, sentinel.ErrUnavailable)

	_, _, err := s.service.Login(s.ctx(), "open-sesame")

	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	s.True(errors.Is(err, sentinel.ErrUnavailable))
}

func (s *AdminServiceSuite) TestLoginRequiresPasskey() {
	_, _, err := s.service.Login(s.ctx(), "  ")

	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *AdminServiceSuite) TestAuthenticateAfterExpiry() {
	s.gate.EXPECT().VerifyAdminPasskey(gomock.Any(), gomock.Any()).Return(true, nil)
	token, _, err := s.service.Login(s.ctx(), "open-sesame")
	s.Require().NoError(err)

	s.now = s.now.Add(3 * time.Hour)
	_, err = s.service.Authenticate(s.ctx(), token)

	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *AdminServiceSuite) TestAuthenticateEmptyToken() {
	_, err := s.service.Authenticate(s.ctx(), "")

	de, ok := dErrors.As(err)
	s.Require().True(ok)
	s.Equal(MsgSessionNeeded, de.Message)
}

func (s *AdminServiceSuite) TestLogoutWithGarbageIsNoop() {
	s.NoError(s.service.Logout(s.ctx(), "not-a-token"))
}

func (s *AdminServiceSuite) TestSessionLifecycleIsLoggedWithoutPasskeys() {
	var buf bytes.Buffer
	svc := NewService(s.gate, NewTokens("test-secret", 2*time.Hour), store.NewInMemory(),
		WithLogger(slog.New(slog.NewJSONHandler(&buf, nil))),
	)
	s.gate.EXPECT().VerifyAdminPasskey(gomock.Any(), "guess").Return(false, nil)
	s.gate.EXPECT().VerifyAdminPasskey(gomock.Any(), "open-sesame").Return(true, nil)
	ctx := requestcontext.WithClientIP(s.ctx(), "203.0.113.7")

	_, _, err := svc.Login(ctx, "guess")
	s.Require().Error(err)
	token, session, err := svc.Login(ctx, "open-sesame")
	s.Require().NoError(err)
	s.Require().NoError(svc.Logout(ctx, token))

	out := buf.String()
	s.Contains(out, `"msg":"admin passkey rejected"`)
	s.Contains(out, `"client_ip":"203.0.113.7"`)
	s.Contains(out, `"msg":"admin session started"`)
	s.Contains(out, `"msg":"admin session ended"`)
	s.Contains(out, session.ID)
	s.NotContains(out, "open-sesame")
	s.NotContains(out, `"guess"`)
	s.NotContains(out, token)
}
