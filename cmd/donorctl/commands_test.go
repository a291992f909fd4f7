package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealshare/internal/donation/models"
)

const validDoc = `{
  "record": {
    "firstName": "Asha",
    "lastName": "Rao",
    "email": "asha@example.org",
    "mobile": "9876543210",
    "dob": "1990-05-12",
    "idType": "Aadhar",
    "uniqueId": "123456789012",
    "address": "12 MG Road",
    "bankName": "HDFC",
    "ifsc": "HDFC0001234",
    "accountNumber": "123456789",
    "declaration": true
  },
  "terms": {"frequency": "monthly", "amount": "other", "customAmount": "1500"}
}`

func writeDoc(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "donation.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestAmounts(t *testing.T) {
	out, _, err := execute(t, "", "amounts")

	require.NoError(t, err)
	assert.Contains(t, out, "monthly: 800, 1200, 1800, other")
	assert.Contains(t, out, "onetime: 2000, 5000, 10000, other")
}

func TestValidateValidRecord(t *testing.T) {
	out, _, err := execute(t, "", "validate", writeDoc(t, validDoc))

	require.NoError(t, err)
	assert.Contains(t, out, "ok    email")
	assert.Contains(t, out, "record is valid")
}

func TestValidateInvalidRecord(t *testing.T) {
	doc := strings.Replace(validDoc, `"accountNumber": "123456789"`, `"accountNumber": "12345"`, 1)

	out, errOut, err := execute(t, "", "validate", writeDoc(t, doc))

	require.ErrorIs(t, err, errInvalidRecord)
	assert.Contains(t, out, "FAIL  accountNumber: Account number must be 9-18 digits")
	assert.Empty(t, errOut)
}

func TestValidateRejectsUnknownFields(t *testing.T) {
	_, errOut, err := execute(t, "", "validate", writeDoc(t, `{"record":{"nickname":"x"}}`))

	require.Error(t, err)
	assert.Contains(t, errOut, "unknown field")
}

// fakeAPI accepts OTP 482913 and records the saved donor.
type fakeAPI struct {
	otpRequests atomic.Int32
	saved       chan models.DonationPayload
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/otp/request", func(w http.ResponseWriter, r *http.Request) {
		f.otpRequests.Add(1)
		assert.Equal(t, "asha@example.org", r.URL.Query().Get("email"))
	})
	mux.HandleFunc("POST /api/otp/verify", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("otp") != "482913" {
			http.Error(w, "invalid", http.StatusBadRequest)
		}
	})
	mux.HandleFunc("POST /api/donors/save", func(w http.ResponseWriter, r *http.Request) {
		var p models.DonationPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		f.saved <- p
		w.WriteHeader(http.StatusCreated)
	})
	return mux
}

func TestDonateRetriesOTPThenSubmits(t *testing.T) {
	api := &fakeAPI{saved: make(chan models.DonationPayload, 1)}
	srv := httptest.NewServer(api.handler(t))
	defer srv.Close()

	out, _, err := execute(t, "000000\n482913\n", "donate", writeDoc(t, validDoc), "--api", srv.URL)

	require.NoError(t, err)
	assert.Equal(t, int32(1), api.otpRequests.Load())
	assert.Contains(t, out, "Invalid OTP")
	assert.Contains(t, out, "Email verified successfully")
	assert.Contains(t, out, "Donation details saved successfully")

	saved := <-api.saved
	assert.Equal(t, "1500", saved.Amount)
	assert.Equal(t, models.PaymentModeEMandate, saved.PaymentMode)
}

func TestDonateStopsAfterTooManyWrongCodes(t *testing.T) {
	api := &fakeAPI{saved: make(chan models.DonationPayload, 1)}
	srv := httptest.NewServer(api.handler(t))
	defer srv.Close()

	_, errOut, err := execute(t, "1\n2\n3\n", "donate", writeDoc(t, validDoc), "--api", srv.URL)

	require.Error(t, err)
	assert.Contains(t, errOut, "email not verified after 3 attempts")
	assert.Empty(t, api.saved)
}

func TestDonateInvalidRecordMakesNoCalls(t *testing.T) {
	api := &fakeAPI{saved: make(chan models.DonationPayload, 1)}
	srv := httptest.NewServer(api.handler(t))
	defer srv.Close()
	doc := strings.Replace(validDoc, `"declaration": true`, `"declaration": false`, 1)

	out, _, err := execute(t, "", "donate", writeDoc(t, doc), "--api", srv.URL)

	require.ErrorIs(t, err, errInvalidRecord)
	assert.Contains(t, out, "FAIL  declaration")
	assert.Zero(t, api.otpRequests.Load())
}

func TestDonateUsesEnvAPI(t *testing.T) {
	api := &fakeAPI{saved: make(chan models.DonationPayload, 1)}
	srv := httptest.NewServer(api.handler(t))
	defer srv.Close()
	t.Setenv("API_BASE_URL", srv.URL)

	_, _, err := execute(t, "482913\n", "donate", writeDoc(t, validDoc))

	require.NoError(t, err)
	assert.Equal(t, int32(1), api.otpRequests.Load())
}
