package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"mealshare/internal/content/models"
	donation "mealshare/internal/donation/models"
	"mealshare/internal/platform/metrics"
	"mealshare/pkg/platform/sentinel"
)

type ClientSuite struct {
	suite.Suite
	mux      *http.ServeMux
	server   *httptest.Server
	spans    *tracetest.SpanRecorder
	registry *prometheus.Registry
	client   *Client
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.mux = http.NewServeMux()
	s.server = httptest.NewServer(s.mux)
	s.spans = tracetest.NewSpanRecorder()
	s.registry = prometheus.NewRegistry()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(s.spans))
	s.client = New(s.server.URL+"/",
		WithTracerProvider(tp),
		WithMetrics(metrics.New(s.registry)),
	)
}

func (s *ClientSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientSuite) TestRequestOTP() {
	s.mux.HandleFunc("POST /api/otp/request", func(w http.ResponseWriter, r *http.Request) {
		s.Equal("asha@example.org", r.URL.Query().Get("email"))
		w.WriteHeader(http.StatusOK)
	})

	s.Require().NoError(s.client.RequestOTP(context.Background(), "asha@example.org"))

	ended := s.spans.Ended()
	s.Require().Len(ended, 1)
	s.Equal("apiclient.otp.request", ended[0].Name())
	s.Equal(codes.Unset, ended[0].Status().Code)
}

func (s *ClientSuite) TestVerifyOTPRejected() {
	s.mux.HandleFunc("POST /api/otp/verify", func(w http.ResponseWriter, r *http.Request) {
		s.Equal("asha@example.org", r.URL.Query().Get("email"))
		s.Equal("000000", r.URL.Query().Get("otp"))
		http.Error(w, `{"message":"Invalid OTP"}`, http.StatusBadRequest)
	})

	err := s.client.VerifyOTP(context.Background(), "asha@example.org", "000000")

	var statusErr *StatusError
	s.Require().ErrorAs(err, &statusErr)
	s.Equal(http.StatusBadRequest, statusErr.Status)
	s.Contains(statusErr.Body, "Invalid OTP")
	s.False(errors.Is(err, sentinel.ErrUnavailable))

	ended := s.spans.Ended()
	s.Require().Len(ended, 1)
	s.Equal(codes.Error, ended[0].Status().Code)
}

func (s *ClientSuite) TestSaveDonor() {
	payload := donation.DonationPayload{FirstName: "Asha", Email: "asha@example.org", Amount: "1200"}
	s.mux.HandleFunc("POST /api/donors/save", func(w http.ResponseWriter, r *http.Request) {
		s.Equal("application/json", r.Header.Get("Content-Type"))
		var got donation.DonationPayload
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&got))
		s.Equal(payload, got)
		w.WriteHeader(http.StatusCreated)
	})

	s.NoError(s.client.SaveDonor(context.Background(), payload))
}

func (s *ClientSuite) TestVerifyAdminPasskey() {
	s.mux.HandleFunc("POST /api/auth/admin", func(w http.ResponseWriter, r *http.Request) {
		var body passkeyRequest
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&body))
		_ = json.NewEncoder(w).Encode(passkeyResponse{Valid: body.Passkey == "open-sesame"})
	})

	ok, err := s.client.VerifyAdminPasskey(context.Background(), "open-sesame")
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.client.VerifyAdminPasskey(context.Background(), "guess")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *ClientSuite) TestNotFoundWrapsSentinel() {
	s.mux.HandleFunc("GET /api/publications/{id}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	var pub models.Publication
	err := s.client.Get(context.Background(), models.CollectionPublications, "missing", &pub)

	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *ClientSuite) TestGatewayErrorWrapsUnavailable() {
	s.mux.HandleFunc("GET /api/hero", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := s.client.GetHero(context.Background())

	s.ErrorIs(err, sentinel.ErrUnavailable)
}

func (s *ClientSuite) TestTransportErrorWrapsUnavailable() {
	s.server.Close()

	err := s.client.RequestOTP(context.Background(), "asha@example.org")

	s.ErrorIs(err, sentinel.ErrUnavailable)
}

func (s *ClientSuite) TestCollectionCRUD() {
	s.mux.HandleFunc("GET /api/programmes", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"_id":"p1","title":"School meals","description":"Daily lunch","color":"#f97316"}]`)
	})
	s.mux.HandleFunc("POST /api/press-releases", func(w http.ResponseWriter, r *http.Request) {
		var in models.PressReleaseInput
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&in))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.PressRelease{ID: "pr1", Title: in.Title, Excerpt: in.Excerpt, Date: in.Date})
	})
	s.mux.HandleFunc("PUT /api/publications/{id}", func(w http.ResponseWriter, r *http.Request) {
		s.Equal("pub 1", r.PathValue("id"))
		_, _ = io.WriteString(w, `{"id":"pub 1","title":"Updated","description":"d"}`)
	})
	s.mux.HandleFunc("DELETE /api/publications/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	ctx := context.Background()

	var programmes []models.Programme
	s.Require().NoError(s.client.List(ctx, models.CollectionProgrammes, &programmes))
	s.Require().Len(programmes, 1)
	s.Equal("p1", programmes[0].ID)

	var created models.PressRelease
	s.Require().NoError(s.client.Create(ctx, models.CollectionPressReleases,
		models.PressReleaseInput{Title: "Launch", Excerpt: "We launched", Date: "2026-03-31"}, &created))
	s.Equal("pr1", created.ID)

	var updated models.Publication
	s.Require().NoError(s.client.Update(ctx, models.CollectionPublications, "pub 1",
		models.PublicationInput{Title: "Updated", Description: "d"}, &updated))
	s.Equal("Updated", updated.Title)

	s.NoError(s.client.Delete(ctx, models.CollectionPublications, "pub 1"))
}

func (s *ClientSuite) TestUploadForwardsFilePart() {
	s.mux.HandleFunc("POST /api/programmes/{id}/upload-icon", func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile(UploadFieldName)
		s.Require().NoError(err)
		defer file.Close()
		data, _ := io.ReadAll(file)
		s.Equal("icon.png", header.Filename)
		s.Equal("image/png", header.Header.Get("Content-Type"))
		s.Equal("png-bytes", string(data))
		_ = json.NewEncoder(w).Encode(models.Programme{ID: r.PathValue("id"), Icon: "/uploads/icon.png"})
	})

	var prog models.Programme
	err := s.client.Upload(context.Background(), models.CollectionProgrammes, "p1",
		Upload{Filename: "icon.png", ContentType: "image/png", Body: strings.NewReader("png-bytes")}, &prog)

	s.Require().NoError(err)
	s.Equal("/uploads/icon.png", prog.Icon)
}

func (s *ClientSuite) TestUploadHeroImage() {
	s.mux.HandleFunc("POST /api/hero/upload-image", func(w http.ResponseWriter, r *http.Request) {
		_, _, err := r.FormFile(UploadFieldName)
		s.Require().NoError(err)
		_ = json.NewEncoder(w).Encode(models.Hero{Title: "Feed a child", BackgroundImage: "/uploads/bg.jpg"})
	})

	hero, err := s.client.UploadHeroImage(context.Background(),
		Upload{Filename: "bg.jpg", Body: strings.NewReader("jpg")})

	s.Require().NoError(err)
	s.Equal("/uploads/bg.jpg", hero.BackgroundImage)
}

func (s *ClientSuite) TestRecordsUpstreamLatency() {
	s.mux.HandleFunc("GET /api/hero", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"title":"t"}`)
	})

	_, err := s.client.GetHero(context.Background())
	s.Require().NoError(err)

	families, err := s.registry.Gather()
	s.Require().NoError(err)
	var found bool
	for _, mf := range families {
		if mf.GetName() != "mealshare_upstream_call_duration_seconds" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "operation" && lp.GetValue() == "hero.get" {
					found = true
					s.Equal(uint64(1), m.GetHistogram().GetSampleCount())
				}
			}
		}
	}
	s.True(found)
}

func TestStatusErrorMessage(t *testing.T) {
	err := &StatusError{Operation: "hero.get", Status: 500}
	assert.Equal(t, "hero.get: upstream returned 500", err.Error())
	assert.Nil(t, err.Unwrap())

	err = &StatusError{Operation: "hero.get", Status: 404, Body: "nope"}
	assert.Equal(t, "hero.get: upstream returned 404: nope", err.Error())
	require.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestNewTrimsBaseURL(t *testing.T) {
	c := New("http://localhost:5000/")
	assert.Equal(t, "http://localhost:5000", c.BaseURL())
}
