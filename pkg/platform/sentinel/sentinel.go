package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and the upstream API client return
// these (optionally wrapped) so services can translate them into domain errors.
//
//   - ErrNotFound: record does not exist in a store or upstream returned 404
//   - ErrExpired: session or token has passed its expiry
//   - ErrConflict: concurrent modification detected
//   - ErrStale: an async result arrived for state that has since changed
//   - ErrUnavailable: upstream API or store temporarily unreachable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrExpired     = errors.New("expired")
	ErrStale       = errors.New("stale result")
	ErrUnavailable = errors.New("unavailable")
)
