package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"mealshare/internal/donation/models"
	"mealshare/internal/donation/service"
	"mealshare/internal/donation/validation"
	"mealshare/internal/donation/workflow"
	"mealshare/internal/platform/middleware"
	dErrors "mealshare/pkg/domain-errors"
	"mealshare/pkg/platform/httputil"
)

// Service defines the donation operations the handler exposes.
type Service interface {
	Start(ctx context.Context, initial *service.UpdateRequest) (workflow.Snapshot, error)
	Get(ctx context.Context, id string) (workflow.Snapshot, error)
	Update(ctx context.Context, id string, req service.UpdateRequest) (workflow.Snapshot, error)
	RequestOTP(ctx context.Context, id string) (workflow.Snapshot, error)
	VerifyOTP(ctx context.Context, id, code string) (workflow.Snapshot, error)
	Submit(ctx context.Context, id string) (workflow.Snapshot, error)
	ValidateRecord(ctx context.Context, rec models.DonorRecord, terms models.DonationTerms) validation.Result
	AmountOptions() map[models.Frequency][]string
}

// Handler serves the donation form endpoints.
type Handler struct {
	logger   *slog.Logger
	donation Service
	otpGuard func(http.Handler) http.Handler
}

type Option func(*Handler)

// WithOTPGuard wraps the OTP issuance route, typically with a rate limiter.
func WithOTPGuard(mw func(http.Handler) http.Handler) Option {
	return func(h *Handler) {
		h.otpGuard = mw
	}
}

// New creates a donation Handler.
func New(donation Service, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		logger:   logger,
		donation: donation,
		otpGuard: func(next http.Handler) http.Handler { return next },
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the donation routes under /donations.
func (h *Handler) Register(r chi.Router) {
	r.Route("/donations", func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Use(middleware.ContentTypeJSON)

		r.Get("/amounts", h.handleAmounts)
		r.Post("/validate", h.handleValidate)
		r.Post("/sessions", h.handleStart)
		r.Get("/sessions/{id}", h.handleGet)
		r.Patch("/sessions/{id}", h.handleUpdate)
		r.With(h.otpGuard).Post("/sessions/{id}/otp/request", h.handleRequestOTP)
		r.Post("/sessions/{id}/otp/verify", h.handleVerifyOTP)
		r.Post("/sessions/{id}/submit", h.handleSubmit)
	})
}

// AmountsResponse lists presets per frequency.
type AmountsResponse struct {
	Frequencies map[models.Frequency][]string `json:"frequencies"`
	Other       string                        `json:"other"`
}

// ValidateRequest is a record and its terms checked without a session.
type ValidateRequest struct {
	Record models.DonorRecord   `json:"record"`
	Terms  models.DonationTerms `json:"terms"`
}

// ValidateResponse reports the per-field outcome.
type ValidateResponse struct {
	Valid  bool              `json:"valid"`
	Fields validation.Result `json:"fields"`
	Errors map[string]string `json:"errors,omitempty"`
}

// VerifyOTPRequest carries the code the donor entered.
type VerifyOTPRequest struct {
	Code string `json:"code"`
}

func (h *Handler) handleAmounts(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, AmountsResponse{
		Frequencies: h.donation.AmountOptions(),
		Other:       models.AmountOther,
	})
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Terms.Frequency == "" {
		req.Terms.Frequency = models.DefaultTerms().Frequency
	}
	result := h.donation.ValidateRecord(r.Context(), req.Record, req.Terms)
	httputil.WriteJSON(w, http.StatusOK, ValidateResponse{
		Valid:  result.Valid(),
		Fields: result,
		Errors: result.Errors(),
	})
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	var initial *service.UpdateRequest
	var req service.UpdateRequest
	switch err := httputil.DecodeJSON(r, &req); {
	case err == nil:
		initial = &req
	case errors.Is(err, io.EOF):
	default:
		h.writeError(w, r, err)
		return
	}

	snap, err := h.donation.Start(r.Context(), initial)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, snap)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	snap, err := h.donation.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, snap)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Record == nil && req.Terms == nil {
		h.writeError(w, r, dErrors.New(dErrors.CodeBadRequest, "record or terms is required"))
		return
	}
	snap, err := h.donation.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, snap)
}

func (h *Handler) handleRequestOTP(w http.ResponseWriter, r *http.Request) {
	snap, err := h.donation.RequestOTP(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, snap)
}

func (h *Handler) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req VerifyOTPRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	snap, err := h.donation.VerifyOTP(r.Context(), chi.URLParam(r, "id"), req.Code)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, snap)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	snap, err := h.donation.Submit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, snap)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	if de, ok := dErrors.As(err); !ok || de.Code == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, "donation request failed",
			"request_id", middleware.GetRequestID(ctx),
			"path", r.URL.Path,
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}
