// Package service orchestrates donation form sessions, the session store and the
// upstream OTP and donor endpoints.
//
// Every collaborator call follows the same three steps: an atomic store Update that
// begins the transition and yields a ticket, the network call with no lock held, and a
// second atomic Update that completes the transition only if the ticket is still current.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"mealshare/internal/donation/models"
	"mealshare/internal/donation/validation"
	"mealshare/internal/donation/workflow"
	"mealshare/internal/platform/logger"
	"mealshare/internal/platform/metrics"
	dErrors "mealshare/pkg/domain-errors"
	"mealshare/pkg/platform/sentinel"
	"mealshare/pkg/requestcontext"
)

// Store persists form sessions. Update applies fn atomically and persists the result
// only when fn returns nil.
type Store interface {
	Create(ctx context.Context, session *workflow.Session) error
	Get(ctx context.Context, id string) (*workflow.Session, error)
	Update(ctx context.Context, id string, fn func(*workflow.Session) error) (*workflow.Session, error)
	Delete(ctx context.Context, id string) error
}

// OTPClient issues and checks email one-time passwords.
type OTPClient interface {
	RequestOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, code string) error
}

// DonorClient stores a completed donation.
type DonorClient interface {
	SaveDonor(ctx context.Context, payload models.DonationPayload) error
}

const (
	completeRetries      = 3
	defaultRetryInterval = 100 * time.Millisecond
)

// UpdateRequest is a partial edit of a session's record and terms.
type UpdateRequest struct {
	Record *models.RecordUpdate `json:"record,omitempty"`
	Terms  *models.TermsUpdate  `json:"terms,omitempty"`
}

// Service runs the donation workflow.
type Service struct {
	store   Store
	otp     OTPClient
	donors  DonorClient
	logger  *slog.Logger
	metrics *metrics.Metrics
	newID   func() string
	// retryInterval is the first backoff between attempts of a completing write.
	retryInterval time.Duration
}

type Option func(s *Service)

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

// WithIDGenerator overrides session id generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		s.newID = fn
	}
}

// WithRetryInterval sets the initial backoff used when a completing write fails.
func WithRetryInterval(d time.Duration) Option {
	return func(s *Service) {
		s.retryInterval = d
	}
}

// New constructs a Service.
func New(store Store, otp OTPClient, donors DonorClient, opts ...Option) *Service {
	s := &Service{
		store:  store,
		otp:    otp,
		donors: donors,
		logger: slog.Default(),
		newID:  uuid.NewString,

		retryInterval: defaultRetryInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start creates a session, optionally seeded with an initial edit.
func (s *Service) Start(ctx context.Context, initial *UpdateRequest) (workflow.Snapshot, error) {
	now := requestcontext.Now(ctx)
	session := workflow.New(s.newID(), now)
	if initial != nil {
		if err := session.Apply(initial.Record, initial.Terms, now); err != nil {
			return workflow.Snapshot{}, err
		}
	}
	if err := s.store.Create(ctx, session); err != nil {
		return workflow.Snapshot{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create donation session")
	}
	s.metrics.IncrementSessionsCreated()
	s.logger.InfoContext(ctx, "donation session started",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", session.ID,
	)
	return session.Snapshot(now), nil
}

// Get returns the current snapshot.
func (s *Service) Get(ctx context.Context, id string) (workflow.Snapshot, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return workflow.Snapshot{}, storeError(err)
	}
	return session.Snapshot(requestcontext.Now(ctx)), nil
}

// Update applies a partial edit. Changing the email discards any OTP progress.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (workflow.Snapshot, error) {
	now := requestcontext.Now(ctx)
	session, err := s.store.Update(ctx, id, func(sess *workflow.Session) error {
		return sess.Apply(req.Record, req.Terms, now)
	})
	if err != nil {
		return workflow.Snapshot{}, storeError(err)
	}
	return session.Snapshot(now), nil
}

// RequestOTP asks the API to email a code to the session's current address.
func (s *Service) RequestOTP(ctx context.Context, id string) (workflow.Snapshot, error) {
	now := requestcontext.Now(ctx)
	var ticket workflow.Ticket
	if _, err := s.store.Update(ctx, id, func(sess *workflow.Session) error {
		t, err := sess.BeginOTPRequest(now)
		ticket = t
		return err
	}); err != nil {
		return workflow.Snapshot{}, storeError(err)
	}

	callErr := s.otp.RequestOTP(ctx, ticket.Email)

	session, err := s.complete(ctx, id, func(sess *workflow.Session) error {
		return sess.CompleteOTPRequest(ticket, callErr, now)
	})
	if err != nil {
		s.metrics.IncrementOTPRequests(outcomeFor(err))
		return workflow.Snapshot{}, err
	}
	if callErr != nil {
		s.metrics.IncrementOTPRequests(metrics.OutcomeFailure)
		s.logger.WarnContext(ctx, "otp request failed",
			"request_id", requestcontext.RequestID(ctx),
			"session_id", id,
			"email", logger.MaskEmail(ticket.Email),
			"error", callErr.Error(),
		)
		return session.Snapshot(now), dErrors.Wrap(callErr, dErrors.CodeUnavailable, workflow.MsgOTPSendFailed)
	}
	s.metrics.IncrementOTPRequests(metrics.OutcomeSuccess)
	s.logger.InfoContext(ctx, "otp sent",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", id,
		"email", logger.MaskEmail(ticket.Email),
	)
	return session.Snapshot(now), nil
}

// VerifyOTP checks code for the email the OTP was issued to.
func (s *Service) VerifyOTP(ctx context.Context, id, code string) (workflow.Snapshot, error) {
	now := requestcontext.Now(ctx)
	var (
		ticket  workflow.Ticket
		entered string
	)
	if _, err := s.store.Update(ctx, id, func(sess *workflow.Session) error {
		t, err := sess.BeginOTPVerify(code, now)
		ticket = t
		entered = sess.OTP.LastCode
		return err
	}); err != nil {
		return workflow.Snapshot{}, storeError(err)
	}

	callErr := s.otp.VerifyOTP(ctx, ticket.Email, entered)

	session, err := s.complete(ctx, id, func(sess *workflow.Session) error {
		return sess.CompleteOTPVerify(ticket, callErr, now)
	})
	if err != nil {
		s.metrics.IncrementOTPVerifications(outcomeFor(err))
		return workflow.Snapshot{}, err
	}
	if callErr != nil {
		s.metrics.IncrementOTPVerifications(metrics.OutcomeFailure)
		s.logger.InfoContext(ctx, "otp rejected",
			"request_id", requestcontext.RequestID(ctx),
			"session_id", id,
			"email", logger.MaskEmail(ticket.Email),
			"error", callErr.Error(),
		)
		if errors.Is(callErr, sentinel.ErrUnavailable) {
			return session.Snapshot(now), dErrors.Wrap(callErr, dErrors.CodeUnavailable, workflow.MsgInvalidOTP)
		}
		return session.Snapshot(now), dErrors.Wrap(callErr, dErrors.CodeInvalidOTP, workflow.MsgInvalidOTP)
	}
	s.metrics.IncrementOTPVerifications(metrics.OutcomeSuccess)
	s.logger.InfoContext(ctx, "email verified",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", id,
	)
	return session.Snapshot(now), nil
}

// Submit posts the donation. Guard failures never reach the network.
func (s *Service) Submit(ctx context.Context, id string) (workflow.Snapshot, error) {
	now := requestcontext.Now(ctx)
	var (
		ticket  workflow.Ticket
		payload models.DonationPayload
	)
	if _, err := s.store.Update(ctx, id, func(sess *workflow.Session) error {
		t, p, err := sess.BeginSubmit(now)
		ticket, payload = t, p
		return err
	}); err != nil {
		return workflow.Snapshot{}, storeError(err)
	}

	callErr := s.donors.SaveDonor(ctx, payload)

	session, err := s.complete(ctx, id, func(sess *workflow.Session) error {
		return sess.CompleteSubmit(ticket, callErr, now)
	})
	if err != nil {
		s.metrics.IncrementSubmissions(outcomeFor(err))
		return workflow.Snapshot{}, err
	}
	if callErr != nil {
		s.metrics.IncrementSubmissions(metrics.OutcomeFailure)
		s.logger.WarnContext(ctx, "donation submission failed",
			"request_id", requestcontext.RequestID(ctx),
			"session_id", id,
			"error", callErr.Error(),
		)
		return session.Snapshot(now), dErrors.Wrap(callErr, dErrors.CodeUnavailable, workflow.MsgSubmitFailed)
	}
	s.metrics.IncrementSubmissions(metrics.OutcomeSuccess)
	s.logger.InfoContext(ctx, "donation submitted",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", id,
		"frequency", payload.Frequency,
		"amount", payload.Amount,
	)
	return session.Snapshot(now), nil
}

// ValidateRecord runs every rule against a record and its terms without a session.
func (s *Service) ValidateRecord(ctx context.Context, rec models.DonorRecord, terms models.DonationTerms) validation.Result {
	return validation.Validate(rec, requestcontext.Now(ctx)).Merge(validation.ValidateTerms(terms))
}

// AmountOptions lists the preset amounts per frequency.
func (s *Service) AmountOptions() map[models.Frequency][]string {
	return models.AmountOptions()
}

// complete applies a Complete* transition. It must land even when the caller's
// context was cancelled during the collaborator call, so store failures are retried
// with backoff. A submission whose completion still never lands is failed by the
// workflow after workflow.SubmitTimeout.
func (s *Service) complete(ctx context.Context, id string, fn func(*workflow.Session) error) (*workflow.Session, error) {
	var session *workflow.Session
	attempt := func() error {
		var err error
		session, err = s.store.Update(context.WithoutCancel(ctx), id, fn)
		if err != nil && !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.retryInterval
	notify := func(err error, wait time.Duration) {
		s.logger.WarnContext(ctx, "retrying session write",
			"request_id", requestcontext.RequestID(ctx),
			"session_id", id,
			"backoff", wait,
			"error", err.Error(),
		)
	}

	err := backoff.RetryNotify(attempt, backoff.WithMaxRetries(policy, completeRetries-1), notify)
	switch {
	case err == nil:
		return session, nil
	case errors.Is(err, sentinel.ErrStale):
		s.logger.InfoContext(ctx, "discarded stale result",
			"request_id", requestcontext.RequestID(ctx),
			"session_id", id,
		)
	case retryable(err):
		s.logger.ErrorContext(ctx, "session write failed after retries",
			"request_id", requestcontext.RequestID(ctx),
			"session_id", id,
			"attempts", completeRetries,
			"error", err.Error(),
		)
	}
	return nil, storeError(err)
}

// retryable reports whether a failed store write may succeed when repeated. Workflow
// rejections and missing sessions never will.
func retryable(err error) bool {
	if _, ok := dErrors.As(err); ok {
		return false
	}
	return !errors.Is(err, sentinel.ErrNotFound) &&
		!errors.Is(err, sentinel.ErrExpired) &&
		!errors.Is(err, sentinel.ErrStale)
}

func storeError(err error) error {
	if _, ok := dErrors.As(err); ok {
		return err
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound), errors.Is(err, sentinel.ErrExpired):
		return dErrors.Wrap(err, dErrors.CodeNotFound, "donation session not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, "donation session was modified concurrently")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "donation session store failure")
	}
}

func outcomeFor(err error) string {
	if errors.Is(err, sentinel.ErrStale) {
		return metrics.OutcomeStale
	}
	return metrics.OutcomeFailure
}
