package models

import (
	"strings"
	"time"
)

// Class groups endpoints that share a per-client request budget.
type Class string

const (
	// ClassAdminLogin guards passkey attempts on /admin/login.
	ClassAdminLogin Class = "admin_login"
	// ClassOTP guards OTP issuance, which sends mail through the API.
	ClassOTP Class = "otp"
)

func (c Class) IsValid() bool {
	switch c {
	case ClassAdminLogin, ClassOTP:
		return true
	}
	return false
}

// Limit is a sliding-window budget.
type Limit struct {
	Requests int
	Window   time.Duration
}

// DefaultLimits are applied when configuration leaves a class unset.
func DefaultLimits() map[Class]Limit {
	return map[Class]Limit{
		ClassAdminLogin: {Requests: 10, Window: time.Minute},
		ClassOTP:        {Requests: 5, Window: 10 * time.Minute},
	}
}

// Result is the outcome of a single check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
	// RetryAfter is whole seconds until a slot frees; only set when denied.
	RetryAfter int
}

// NewKey builds the bucket key for a client within a class.
func NewKey(class Class, client string) string {
	return "ratelimit:" + string(class) + ":" + SanitizeKeySegment(client)
}

// SanitizeKeySegment replaces the key delimiter so a client identifier
// (IPv6 addresses included) stays a single segment.
func SanitizeKeySegment(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}

// RetryAfterSeconds rounds the wait until resetAt up to whole seconds, minimum 1.
func RetryAfterSeconds(now, resetAt time.Time) int {
	d := resetAt.Sub(now)
	if d <= 0 {
		return 1
	}
	secs := int(d / time.Second)
	if d%time.Second != 0 {
		secs++
	}
	return secs
}
