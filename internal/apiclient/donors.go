package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"mealshare/internal/donation/models"
)

// RequestOTP asks the API to email a one-time code to email.
func (c *Client) RequestOTP(ctx context.Context, email string) error {
	return c.do(ctx, request{
		operation: "otp.request",
		method:    http.MethodPost,
		path:      "/api/otp/request",
		query:     url.Values{"email": {email}},
	}, nil)
}

// VerifyOTP checks code for email. Any non-2xx response means the code was rejected.
func (c *Client) VerifyOTP(ctx context.Context, email, code string) error {
	return c.do(ctx, request{
		operation: "otp.verify",
		method:    http.MethodPost,
		path:      "/api/otp/verify",
		query:     url.Values{"email": {email}, "otp": {code}},
	}, nil)
}

// SaveDonor stores a completed donation.
func (c *Client) SaveDonor(ctx context.Context, payload models.DonationPayload) error {
	req, err := jsonRequest("donors.save", http.MethodPost, "/api/donors/save", payload)
	if err != nil {
		return err
	}
	return c.do(ctx, req, nil)
}

type passkeyRequest struct {
	Passkey string `json:"passkey"`
}

type passkeyResponse struct {
	Valid bool `json:"valid"`
}

// VerifyAdminPasskey reports whether the upstream gate accepts passkey.
func (c *Client) VerifyAdminPasskey(ctx context.Context, passkey string) (bool, error) {
	req, err := jsonRequest("auth.admin", http.MethodPost, "/api/auth/admin", passkeyRequest{Passkey: passkey})
	if err != nil {
		return false, err
	}
	var resp passkeyResponse
	if err := c.do(ctx, req, &resp); err != nil {
		return false, err
	}
	return resp.Valid, nil
}
