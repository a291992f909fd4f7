package workflow

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"mealshare/internal/donation/models"
	dErrors "mealshare/pkg/domain-errors"
	"mealshare/pkg/platform/sentinel"
)

var errUpstream = errors.New("upstream returned 500")

type SessionSuite struct {
	suite.Suite
	now     time.Time
	session *Session
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) SetupTest() {
	s.now = time.Date(2026, time.March, 31, 9, 30, 0, 0, time.UTC)
	s.session = New("sess-1", s.now)
}

func (s *SessionSuite) fill(rec models.DonorRecord, terms models.DonationTerms) {
	update := models.RecordUpdate{
		FirstName: &rec.FirstName, LastName: &rec.LastName, Email: &rec.Email, Mobile: &rec.Mobile,
		DOB: &rec.DOB, IDType: &rec.IDType, UniqueID: &rec.UniqueID, Address: &rec.Address,
		BankName: &rec.BankName, IFSC: &rec.IFSC, AccountNumber: &rec.AccountNumber, Declaration: &rec.Declaration,
	}
	termsUpdate := models.TermsUpdate{Frequency: &terms.Frequency, Amount: &terms.Amount, CustomAmount: &terms.CustomAmount}
	s.Require().NoError(s.session.Apply(&update, &termsUpdate, s.now))
}

func (s *SessionSuite) scenarioRecord() models.DonorRecord {
	return models.DonorRecord{
		FirstName:     "Asha",
		LastName:      "Rao",
		Email:         "asha@example.org",
		Mobile:        "9876543210",
		DOB:           s.now.AddDate(-20, 0, 0).Format("2006-01-02"),
		IDType:        models.IDTypeAadhar,
		UniqueID:      "123456789012",
		Address:       "12 MG Road",
		IFSC:          "HDFC0001234",
		BankName:      "HDFC",
		AccountNumber: "123456789",
		Declaration:   true,
	}
}

func monthly1200() models.DonationTerms {
	return models.DonationTerms{Frequency: models.FrequencyMonthly, Amount: "1200"}
}

// verify drives the session through a successful OTP request and verification.
func (s *SessionSuite) verify() {
	t, err := s.session.BeginOTPRequest(s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.session.CompleteOTPRequest(t, nil, s.now))
	t, err = s.session.BeginOTPVerify("482913", s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.session.CompleteOTPVerify(t, nil, s.now))
}

func (s *SessionSuite) TestNewSession() {
	s.Equal(StateEditing, s.session.State)
	s.Equal(OTPNotRequested, s.session.OTP.State)
	s.Equal(models.FrequencyMonthly, s.session.Terms.Frequency)
	s.False(s.session.CanRequestOTP(s.now))
	s.False(s.session.CanVerifyOTP())
	s.False(s.session.CanSubmit(s.now))
}

func (s *SessionSuite) TestScenarioA_ValidRecordSubmits() {
	s.fill(s.scenarioRecord(), monthly1200())
	s.True(s.session.Validate(s.now).Valid())
	s.True(s.session.CanRequestOTP(s.now))

	s.verify()
	s.Equal(StateOTPVerified, s.session.State)
	s.Equal(MsgEmailVerified, s.session.Message)
	s.True(s.session.CanSubmit(s.now))

	ticket, payload, err := s.session.BeginSubmit(s.now)
	s.Require().NoError(err)
	s.Equal(StateSubmitting, s.session.State)
	s.Equal(models.DonationPayload{
		FirstName:     "Asha",
		LastName:      "Rao",
		Email:         "asha@example.org",
		Mobile:        "9876543210",
		DOB:           "2006-03-31",
		IDType:        models.IDTypeAadhar,
		UniqueID:      "123456789012",
		Address:       "12 MG Road",
		Frequency:     models.FrequencyMonthly,
		Amount:        "1200",
		PaymentMode:   models.PaymentModeEMandate,
		BankName:      "HDFC",
		IFSC:          "HDFC0001234",
		AccountNumber: "123456789",
	}, payload)

	s.Require().NoError(s.session.CompleteSubmit(ticket, nil, s.now))
	s.Equal(StateSubmitted, s.session.State)
	s.Equal(MsgSubmitted, s.session.Message)
}

func (s *SessionSuite) TestScenarioB_InvalidAccountBlocksSubmit() {
	rec := s.scenarioRecord()
	rec.AccountNumber = "12345"
	s.fill(rec, monthly1200())

	result := s.session.Validate(s.now)
	s.False(result[models.FieldAccountNumber].Valid)

	s.verify()
	s.Equal(StateOTPVerified, s.session.State)
	s.False(s.session.CanSubmit(s.now))

	_, _, err := s.session.BeginSubmit(s.now)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	de, _ := dErrors.As(err)
	s.Equal("Account number must be 9-18 digits", de.Fields[models.FieldAccountNumber])
	s.Equal(StateOTPVerified, s.session.State)
}

func (s *SessionSuite) TestScenarioC_RejectedCodeStaysRequested() {
	s.fill(s.scenarioRecord(), monthly1200())
	t, err := s.session.BeginOTPRequest(s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.session.CompleteOTPRequest(t, nil, s.now))

	t, err = s.session.BeginOTPVerify("000000", s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.session.CompleteOTPVerify(t, errUpstream, s.now))

	s.Equal(StateOTPRequested, s.session.State)
	s.Equal(MsgInvalidOTP, s.session.Message)
	s.False(s.session.CanSubmit(s.now))
	s.ErrorIs(s.session.CheckSubmit(s.now), ErrOTPNotVerified)

	// A new code can be tried without re-requesting.
	t, err = s.session.BeginOTPVerify("482913", s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.session.CompleteOTPVerify(t, nil, s.now))
	s.Equal(StateOTPVerified, s.session.State)
}

func (s *SessionSuite) TestSubmitRequiresVerifiedOTP() {
	s.fill(s.scenarioRecord(), monthly1200())

	_, _, err := s.session.BeginSubmit(s.now)
	s.ErrorIs(err, ErrOTPNotVerified)
	s.Equal(StateEditing, s.session.State)

	t, err := s.session.BeginOTPRequest(s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.session.CompleteOTPRequest(t, nil, s.now))

	_, _, err = s.session.BeginSubmit(s.now)
	s.ErrorIs(err, ErrOTPNotVerified)
	s.Equal(StateOTPRequested, s.session.State)
}

func (s *SessionSuite) TestOTPRequestRequiresValidEmail() {
	email := "asha@"
	s.Require().NoError(s.session.Apply(&models.RecordUpdate{Email: &email}, nil, s.now))

	s.False(s.session.CanRequestOTP(s.now))
	_, err := s.session.BeginOTPRequest(s.now)
	s.ErrorIs(err, ErrEmailInvalid)
}

func (s *SessionSuite) TestOTPRequestFailureStaysEditing() {
	s.fill(s.scenarioRecord(), monthly1200())
	t, err := s.session.BeginOTPRequest(s.now)
	s.Require().NoError(err)

	s.Require().NoError(s.session.CompleteOTPRequest(t, errUpstream, s.now))
	s.Equal(StateEditing, s.session.State)
	s.Equal(OTPNotRequested, s.session.OTP.State)
	s.Equal(MsgOTPSendFailed, s.session.Message)

	// Retry is allowed.
	t, err = s.session.BeginOTPRequest(s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.session.CompleteOTPRequest(t, nil, s.now))
	s.Equal(StateOTPRequested, s.session.State)
	s.Equal(MsgOTPSent, s.session.Message)
}

func (s *SessionSuite) TestOTPReRequestWhileRequested() {
	s.fill(s.scenarioRecord(), monthly1200())
	for range 2 {
		t, err := s.session.BeginOTPRequest(s.now)
		s.Require().NoError(err)
		s.Require().NoError(s.session.CompleteOTPRequest(t, nil, s.now))
	}
	s.Equal(StateOTPRequested, s.session.State)
}

func (s *SessionSuite) TestVerifyBeforeRequestRejected() {
	s.fill(s.scenarioRecord(), monthly1200())

	_, err := s.session.BeginOTPVerify("123456", s.now)
	s.ErrorIs(err, ErrOTPNotRequested)
}

func (s *SessionSuite) TestVerifyRequiresCode() {
	s.fill(s.scenarioRecord(), monthly1200())
	t, err := s.session.BeginOTPRequest(s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.session.CompleteOTPRequest(t, nil, s.now))

	_, err = s.session.BeginOTPVerify("   ", s.now)
	s.ErrorIs(err, ErrCodeRequired)
}

func (s *SessionSuite) TestEmailChangeAfterVerificationRelocks() {
	s.fill(s.scenarioRecord(), monthly1200())
	s.verify()
	s.True(s.session.CanSubmit(s.now))
	epoch := s.session.Epoch

	email := "asha.rao@example.org"
	s.Require().NoError(s.session.Apply(&models.RecordUpdate{Email: &email}, nil, s.now))

	s.Equal(StateEditing, s.session.State)
	s.Equal(OTPNotRequested, s.session.OTP.State)
	s.Empty(s.session.OTP.Email)
	s.Greater(s.session.Epoch, epoch)
	s.False(s.session.CanSubmit(s.now))
	s.False(s.session.EmailLocked())
	_, _, err := s.session.BeginSubmit(s.now)
	s.ErrorIs(err, ErrOTPNotVerified)
}

func (s *SessionSuite) TestSameEmailEditKeepsVerification() {
	s.fill(s.scenarioRecord(), monthly1200())
	s.verify()

	email := "  asha@example.org "
	mobile := "9123456780"
	s.Require().NoError(s.session.Apply(&models.RecordUpdate{Email: &email, Mobile: &mobile}, nil, s.now))

	s.Equal(StateOTPVerified, s.session.State)
	s.True(s.session.CanSubmit(s.now))
}

func (s *SessionSuite) TestStaleVerifyAfterEmailChangeDiscarded() {
	s.fill(s.scenarioRecord(), monthly1200())
	t, err := s.session.BeginOTPRequest(s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.session.CompleteOTPRequest(t, nil, s.now))

	verifyTicket, err := s.session.BeginOTPVerify("482913", s.now)
	s.Require().NoError(err)

	email := "other@example.org"
	s.Require().NoError(s.session.Apply(&models.RecordUpdate{Email: &email}, nil, s.now))

	err = s.session.CompleteOTPVerify(verifyTicket, nil, s.now)
	s.ErrorIs(err, ErrStaleResult)
	s.ErrorIs(err, sentinel.ErrStale)
	s.Equal(StateEditing, s.session.State)
	s.Equal(OTPNotRequested, s.session.OTP.State)
}

func (s *SessionSuite) TestStaleOTPRequestDiscarded() {
	s.fill(s.scenarioRecord(), monthly1200())
	t, err := s.session.BeginOTPRequest(s.now)
	s.Require().NoError(err)

	email := "other@example.org"
	s.Require().NoError(s.session.Apply(&models.RecordUpdate{Email: &email}, nil, s.now))

	s.ErrorIs(s.session.CompleteOTPRequest(t, nil, s.now), ErrStaleResult)
	s.Equal(StateEditing, s.session.State)
}

func (s *SessionSuite) TestEmailChangeBackDoesNotRevive() {
	s.fill(s.scenarioRecord(), monthly1200())
	t, err := s.session.BeginOTPRequest(s.now)
	s.Require().NoError(err)

	other := "other@example.org"
	original := "asha@example.org"
	s.Require().NoError(s.session.Apply(&models.RecordUpdate{Email: &other}, nil, s.now))
	s.Require().NoError(s.session.Apply(&models.RecordUpdate{Email: &original}, nil, s.now))

	s.ErrorIs(s.session.CompleteOTPRequest(t, nil, s.now), ErrStaleResult)
}

func (s *SessionSuite) TestFailedSubmitRetriesWithoutOTP() {
	s.fill(s.scenarioRecord(), monthly1200())
	s.verify()

	t, _, err := s.session.BeginSubmit(s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.session.CompleteSubmit(t, errUpstream, s.now))

	s.Equal(StateFailed, s.session.State)
	s.Equal(OTPVerified, s.session.OTP.State)
	s.Equal(MsgSubmitFailed, s.session.Message)
	s.True(s.session.CanSubmit(s.now))

	_, err = s.session.BeginOTPRequest(s.now)
	s.ErrorIs(err, ErrAlreadyVerified)

	t, _, err = s.session.BeginSubmit(s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.session.CompleteSubmit(t, nil, s.now))
	s.Equal(StateSubmitted, s.session.State)
}

func (s *SessionSuite) TestAbandonedSubmitBecomesFailed() {
	s.fill(s.scenarioRecord(), monthly1200())
	s.verify()
	lost, _, err := s.session.BeginSubmit(s.now)
	s.Require().NoError(err)

	almost := s.now.Add(SubmitTimeout - time.Second)
	s.ErrorIs(s.session.CheckSubmit(almost), ErrSubmissionInProgress)
	s.Equal(StateSubmitting, s.session.Snapshot(almost).State)

	later := s.now.Add(SubmitTimeout)
	snap := s.session.Snapshot(later)
	s.Equal(StateFailed, snap.State)
	s.Equal(MsgSubmitFailed, snap.Message)
	s.True(snap.CanSubmit)
	s.Equal(StateSubmitting, s.session.State, "snapshot must not mutate the session")

	retry, _, err := s.session.BeginSubmit(later)
	s.Require().NoError(err)
	s.Equal(StateSubmitting, s.session.State)
	s.Equal(later, s.session.SubmitStartedAt)

	s.ErrorIs(s.session.CompleteSubmit(lost, nil, later), ErrStaleResult)
	s.Require().NoError(s.session.CompleteSubmit(retry, nil, later))
	s.Equal(StateSubmitted, s.session.State)
	s.True(s.session.SubmitStartedAt.IsZero())
}

func (s *SessionSuite) TestAbandonedSubmitUnlocksEdits() {
	s.fill(s.scenarioRecord(), monthly1200())
	s.verify()
	_, _, err := s.session.BeginSubmit(s.now)
	s.Require().NoError(err)

	name := "Asha K"
	later := s.now.Add(SubmitTimeout + time.Minute)
	s.Require().NoError(s.session.Apply(&models.RecordUpdate{FirstName: &name}, nil, later))

	s.Equal(StateFailed, s.session.State)
	s.Equal(OTPVerified, s.session.OTP.State)
	s.Equal("Asha K", s.session.Record.FirstName)
	s.True(s.session.CanSubmit(later))
}

func (s *SessionSuite) TestEnteredCodeIsNotPersisted() {
	s.fill(s.scenarioRecord(), monthly1200())
	t, err := s.session.BeginOTPRequest(s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.session.CompleteOTPRequest(t, nil, s.now))

	t, err = s.session.BeginOTPVerify("482913", s.now)
	s.Require().NoError(err)
	s.Equal("482913", s.session.OTP.LastCode)

	raw, err := json.Marshal(s.session)
	s.Require().NoError(err)
	s.NotContains(string(raw), "482913")

	s.Require().NoError(s.session.CompleteOTPVerify(t, errUpstream, s.now))
	s.Empty(s.session.OTP.LastCode)

	t, err = s.session.BeginOTPVerify("111222", s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.session.CompleteOTPVerify(t, nil, s.now))
	s.Empty(s.session.OTP.LastCode)
}

func (s *SessionSuite) TestSubmittedIsTerminal() {
	s.fill(s.scenarioRecord(), monthly1200())
	s.verify()
	t, _, err := s.session.BeginSubmit(s.now)
	s.Require().NoError(err)

	name := "Asha K"
	s.ErrorIs(s.session.Apply(&models.RecordUpdate{FirstName: &name}, nil, s.now), ErrSubmissionInProgress)
	_, _, err = s.session.BeginSubmit(s.now)
	s.ErrorIs(err, ErrSubmissionInProgress)
	_, err = s.session.BeginOTPRequest(s.now)
	s.ErrorIs(err, ErrSubmissionInProgress)

	s.Require().NoError(s.session.CompleteSubmit(t, nil, s.now))
	s.ErrorIs(s.session.CompleteSubmit(t, nil, s.now), ErrStaleResult)
	s.ErrorIs(s.session.Apply(&models.RecordUpdate{FirstName: &name}, nil, s.now), ErrSubmissionLocked)
}

func (s *SessionSuite) TestUnresolvedAmountBlocksSubmit() {
	s.fill(s.scenarioRecord(), models.DonationTerms{Frequency: models.FrequencyMonthly, Amount: models.AmountOther})
	s.verify()

	err := s.session.CheckSubmit(s.now)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	de, _ := dErrors.As(err)
	s.Equal("Enter a valid amount", de.Fields[models.FieldAmount])
}

func (s *SessionSuite) TestCustomAmountPayload() {
	s.fill(s.scenarioRecord(), models.DonationTerms{Frequency: models.FrequencyMonthly, Amount: models.AmountOther, CustomAmount: "1500"})
	s.verify()

	_, payload, err := s.session.BeginSubmit(s.now)
	s.Require().NoError(err)
	s.Equal("1500", payload.Amount)
}

func (s *SessionSuite) TestSnapshot() {
	s.fill(s.scenarioRecord(), monthly1200())
	t, err := s.session.BeginOTPRequest(s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.session.CompleteOTPRequest(t, nil, s.now))
	_, err = s.session.BeginOTPVerify("999111", s.now)
	s.Require().NoError(err)

	snap := s.session.Snapshot(s.now)
	s.Equal("sess-1", snap.ID)
	s.Equal(StateOTPRequested, snap.State)
	s.Equal(OTPRequested, snap.OTPState)
	s.True(snap.CanRequestOTP)
	s.True(snap.CanVerifyOTP)
	s.False(snap.CanSubmit)
	s.True(snap.EmailLocked)
	s.True(snap.Validation.Valid())
	s.Equal(MsgOTPSent, snap.Message)
}
