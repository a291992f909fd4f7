package workflow

import (
	"time"

	dErrors "mealshare/pkg/domain-errors"
	"mealshare/pkg/platform/sentinel"
)

// State is the submission workflow state of one form session.
type State string

const (
	StateEditing      State = "editing"
	StateOTPRequested State = "otp_requested"
	StateOTPVerified  State = "otp_verified"
	StateSubmitting   State = "submitting"
	StateSubmitted    State = "submitted"
	StateFailed       State = "failed"
)

// OTPState tracks the email challenge independently of the form state.
type OTPState string

const (
	OTPNotRequested OTPState = "not_requested"
	OTPRequested    OTPState = "requested"
	OTPVerified     OTPState = "verified"
)

// Op names an asynchronous collaborator call.
type Op string

const (
	OpOTPRequest Op = "otp_request"
	OpOTPVerify  Op = "otp_verify"
	OpSubmit     Op = "submit"
)

// SubmitTimeout bounds how long a session may stay Submitting. A submission whose
// completion never landed is reported as Failed after it.
const SubmitTimeout = 2 * time.Minute

// User-facing outcome messages.
const (
	MsgOTPSent        = "OTP sent to your email"
	MsgOTPSendFailed  = "Failed to send OTP"
	MsgEmailVerified  = "Email verified successfully"
	MsgInvalidOTP     = "Invalid OTP"
	MsgSubmitted      = "Donation details saved successfully"
	MsgSubmitFailed   = "Failed to save donation"
	MsgVerifyRequired = "Please verify your email with OTP before proceeding"
	MsgFixFields      = "Please correct the highlighted fields"
)

var (
	ErrSubmissionLocked     = dErrors.New(dErrors.CodeConflict, "donation has already been submitted")
	ErrSubmissionInProgress = dErrors.New(dErrors.CodeConflict, "donation submission is in progress")
	ErrAlreadyVerified      = dErrors.New(dErrors.CodeConflict, "email is already verified")
	ErrEmailInvalid         = dErrors.New(dErrors.CodeValidation, "Enter a valid email before requesting an OTP")
	ErrOTPNotRequested      = dErrors.New(dErrors.CodeConflict, "Request an OTP before verifying")
	ErrCodeRequired         = dErrors.New(dErrors.CodeValidation, "Enter OTP")
	ErrOTPNotVerified       = dErrors.New(dErrors.CodeForbidden, MsgVerifyRequired)
	ErrStaleResult          = dErrors.Wrap(sentinel.ErrStale, dErrors.CodeConflict, "the form changed while the request was in flight")
)
