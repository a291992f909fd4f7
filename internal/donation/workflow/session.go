// Package workflow is the donation form state machine.
//
// A Session moves Editing -> OtpRequested -> OtpVerified -> Submitting -> Submitted|Failed.
// Every collaborator call is split in two: Begin* validates the transition and returns a
// Ticket, the caller performs the network call without holding any lock, and Complete*
// applies the result only if the Ticket still matches the session. Changing the email
// bumps the epoch, so results for a previous address are discarded.
//
// Invariant: BeginSubmit succeeds only when the OTP is verified for the current email,
// every record rule passes and the donation amount resolves.
package workflow

import (
	"strings"
	"time"

	"mealshare/internal/donation/models"
	"mealshare/internal/donation/validation"
	dErrors "mealshare/pkg/domain-errors"
)

// OTPSession is the email challenge bound to one address. LastCode only lives
// between BeginOTPVerify and CompleteOTPVerify and is never persisted.
type OTPSession struct {
	State    OTPState `json:"state"`
	Email    string   `json:"email,omitempty"`
	LastCode string   `json:"-"`
}

// Ticket identifies an in-flight collaborator call.
type Ticket struct {
	Op    Op     `json:"op"`
	Email string `json:"email"`
	Epoch uint64 `json:"epoch"`
}

// Session is one donor's form session.
type Session struct {
	ID        string               `json:"id"`
	Record    models.DonorRecord   `json:"record"`
	Terms     models.DonationTerms `json:"terms"`
	State     State                `json:"state"`
	OTP       OTPSession           `json:"otp"`
	Epoch     uint64               `json:"epoch"`
	Message   string               `json:"message,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
	// SubmitStartedAt is set by BeginSubmit and cleared by CompleteSubmit.
	SubmitStartedAt time.Time `json:"submitStartedAt,omitzero"`
}

// New starts a session in Editing with the default donation terms.
func New(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		Terms:     models.DefaultTerms(),
		State:     StateEditing,
		OTP:       OTPSession{State: OTPNotRequested},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Apply edits the record and terms. A changed email discards the OTP session and
// returns the form to Editing.
func (s *Session) Apply(record *models.RecordUpdate, terms *models.TermsUpdate, now time.Time) error {
	if err := s.editAllowed(now); err != nil {
		return err
	}
	s.recoverSubmit(now)

	previousEmail := s.Record.NormalizedEmail()
	if record != nil {
		record.ApplyTo(&s.Record)
	}
	if terms != nil {
		terms.ApplyTo(&s.Terms)
	}
	if s.Record.NormalizedEmail() != previousEmail {
		s.resetOTP()
	}
	s.UpdatedAt = now
	return nil
}

func (s *Session) editAllowed(now time.Time) error {
	switch s.effectiveState(now) {
	case StateSubmitting:
		return ErrSubmissionInProgress
	case StateSubmitted:
		return ErrSubmissionLocked
	}
	return nil
}

// submitAbandoned reports whether a submission outlived SubmitTimeout without its
// completion landing.
func (s *Session) submitAbandoned(now time.Time) bool {
	return s.State == StateSubmitting && !now.Before(s.SubmitStartedAt.Add(SubmitTimeout))
}

// effectiveState is State with an abandoned submission reported as Failed.
func (s *Session) effectiveState(now time.Time) State {
	if s.submitAbandoned(now) {
		return StateFailed
	}
	return s.State
}

// recoverSubmit moves an abandoned submission to Failed. The epoch bump makes a late
// completion for it stale.
func (s *Session) recoverSubmit(now time.Time) {
	if !s.submitAbandoned(now) {
		return
	}
	s.Epoch++
	s.State = StateFailed
	s.Message = MsgSubmitFailed
	s.SubmitStartedAt = time.Time{}
	s.UpdatedAt = now
}

func (s *Session) resetOTP() {
	s.Epoch++
	s.OTP = OTPSession{State: OTPNotRequested}
	switch s.State {
	case StateOTPRequested, StateOTPVerified, StateFailed:
		s.State = StateEditing
		s.Message = ""
	}
}

// Validate runs the record and terms rules as of now.
func (s *Session) Validate(now time.Time) validation.Result {
	return validation.Validate(s.Record, now).Merge(validation.ValidateTerms(s.Terms))
}

// CanRequestOTP reports whether an OTP may be requested for the current email.
func (s *Session) CanRequestOTP(now time.Time) bool {
	return s.otpRequestAllowed(now) == nil &&
		validation.ValidateField(s.Record, models.FieldEmail, now).Valid
}

func (s *Session) otpRequestAllowed(now time.Time) error {
	switch s.effectiveState(now) {
	case StateEditing, StateOTPRequested:
		return nil
	case StateOTPVerified, StateFailed:
		return ErrAlreadyVerified
	case StateSubmitting:
		return ErrSubmissionInProgress
	default:
		return ErrSubmissionLocked
	}
}

// BeginOTPRequest starts an OTP issuance for the current email.
// Re-requesting while an OTP is outstanding is allowed.
func (s *Session) BeginOTPRequest(now time.Time) (Ticket, error) {
	if err := s.otpRequestAllowed(now); err != nil {
		return Ticket{}, err
	}
	if !validation.ValidateField(s.Record, models.FieldEmail, now).Valid {
		return Ticket{}, ErrEmailInvalid
	}
	return s.ticket(OpOTPRequest, s.Record.NormalizedEmail()), nil
}

// CompleteOTPRequest applies the issuance outcome. A failed call leaves the state as it was.
func (s *Session) CompleteOTPRequest(t Ticket, callErr error, now time.Time) error {
	if t.Op != OpOTPRequest || s.isStale(t) || s.otpRequestAllowed(now) != nil {
		return ErrStaleResult
	}
	s.UpdatedAt = now
	if callErr != nil {
		s.Message = MsgOTPSendFailed
		return nil
	}
	s.State = StateOTPRequested
	s.OTP = OTPSession{State: OTPRequested, Email: t.Email}
	s.Message = MsgOTPSent
	return nil
}

// CanVerifyOTP reports whether a code can be checked now.
func (s *Session) CanVerifyOTP() bool {
	return s.State == StateOTPRequested && s.OTP.State == OTPRequested
}

// BeginOTPVerify records the entered code and starts verification.
// Verification is only exposed after a successful request for the same email.
func (s *Session) BeginOTPVerify(code string, now time.Time) (Ticket, error) {
	switch {
	case s.OTP.State == OTPVerified:
		return Ticket{}, ErrAlreadyVerified
	case !s.CanVerifyOTP():
		return Ticket{}, ErrOTPNotRequested
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return Ticket{}, ErrCodeRequired
	}
	s.OTP.LastCode = code
	s.UpdatedAt = now
	return s.ticket(OpOTPVerify, s.OTP.Email), nil
}

// CompleteOTPVerify applies the verification outcome. A rejected code keeps the
// session in OtpRequested so another code can be tried.
func (s *Session) CompleteOTPVerify(t Ticket, callErr error, now time.Time) error {
	if t.Op != OpOTPVerify || s.isStale(t) || !s.CanVerifyOTP() {
		return ErrStaleResult
	}
	s.UpdatedAt = now
	s.OTP.LastCode = ""
	if callErr != nil {
		s.Message = MsgInvalidOTP
		return nil
	}
	s.State = StateOTPVerified
	s.OTP.State = OTPVerified
	s.Message = MsgEmailVerified
	return nil
}

// CheckSubmit is the submission guard. It never has side effects.
func (s *Session) CheckSubmit(now time.Time) error {
	switch s.effectiveState(now) {
	case StateSubmitting:
		return ErrSubmissionInProgress
	case StateSubmitted:
		return ErrSubmissionLocked
	case StateOTPVerified, StateFailed:
	default:
		return ErrOTPNotVerified
	}
	if s.OTP.State != OTPVerified || s.OTP.Email != s.Record.NormalizedEmail() {
		return ErrOTPNotVerified
	}
	if result := s.Validate(now); !result.Valid() {
		return dErrors.WithFields(MsgFixFields, result.Errors())
	}
	return nil
}

// CanSubmit reports whether CheckSubmit would pass.
func (s *Session) CanSubmit(now time.Time) bool {
	return s.CheckSubmit(now) == nil
}

// BeginSubmit moves the session to Submitting and returns the payload to post.
// An abandoned earlier submission is failed first, so its ticket can no longer land.
func (s *Session) BeginSubmit(now time.Time) (Ticket, models.DonationPayload, error) {
	if err := s.CheckSubmit(now); err != nil {
		return Ticket{}, models.DonationPayload{}, err
	}
	s.recoverSubmit(now)
	s.State = StateSubmitting
	s.Message = ""
	s.SubmitStartedAt = now
	s.UpdatedAt = now
	return s.ticket(OpSubmit, s.Record.NormalizedEmail()), models.NewDonationPayload(s.Record, s.Terms), nil
}

// CompleteSubmit applies the storage outcome. A failure keeps the OTP verified so the
// donor can retry without a new code.
func (s *Session) CompleteSubmit(t Ticket, callErr error, now time.Time) error {
	if t.Op != OpSubmit || s.State != StateSubmitting || s.isStale(t) {
		return ErrStaleResult
	}
	s.UpdatedAt = now
	s.SubmitStartedAt = time.Time{}
	if callErr != nil {
		s.State = StateFailed
		s.Message = MsgSubmitFailed
		return nil
	}
	s.State = StateSubmitted
	s.Message = MsgSubmitted
	return nil
}

// EmailLocked reports whether clients should render the email read-only.
func (s *Session) EmailLocked() bool {
	return s.OTP.State != OTPNotRequested || s.State == StateSubmitting || s.State == StateSubmitted
}

func (s *Session) ticket(op Op, email string) Ticket {
	return Ticket{Op: op, Email: email, Epoch: s.Epoch}
}

func (s *Session) isStale(t Ticket) bool {
	return t.Epoch != s.Epoch || t.Email != s.Record.NormalizedEmail()
}
