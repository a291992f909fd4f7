package workflow

import (
	"time"

	"mealshare/internal/donation/models"
	"mealshare/internal/donation/validation"
)

// Snapshot is the client view of a session. It never includes the entered OTP code.
type Snapshot struct {
	ID            string               `json:"id"`
	State         State                `json:"state"`
	OTPState      OTPState             `json:"otpState"`
	Record        models.DonorRecord   `json:"record"`
	Terms         models.DonationTerms `json:"terms"`
	Validation    validation.Result    `json:"validation"`
	CanRequestOTP bool                 `json:"canRequestOtp"`
	CanVerifyOTP  bool                 `json:"canVerifyOtp"`
	CanSubmit     bool                 `json:"canSubmit"`
	EmailLocked   bool                 `json:"emailLocked"`
	Message       string               `json:"message,omitempty"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// Snapshot renders the session as of now. An abandoned submission shows as Failed
// before any write has recovered it.
func (s *Session) Snapshot(now time.Time) Snapshot {
	view := *s
	view.recoverSubmit(now)
	return view.render(now)
}

func (s *Session) render(now time.Time) Snapshot {
	return Snapshot{
		ID:            s.ID,
		State:         s.State,
		OTPState:      s.OTP.State,
		Record:        s.Record,
		Terms:         s.Terms,
		Validation:    s.Validate(now),
		CanRequestOTP: s.CanRequestOTP(now),
		CanVerifyOTP:  s.CanVerifyOTP(),
		CanSubmit:     s.CanSubmit(now),
		EmailLocked:   s.EmailLocked(),
		Message:       s.Message,
		UpdatedAt:     s.UpdatedAt,
	}
}
