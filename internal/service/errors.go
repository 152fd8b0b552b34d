// Package service implements the business rules: account sessions, registry
// lookups with write-through caching, and the meeting lifecycle engine.
package service

import "errors"

var (
	// ErrAuthentication covers bad credentials and invalid or rotated
	// refresh tokens. Callers map it to 401 without detail.
	ErrAuthentication = errors.New("authentication failed")

	// ErrInvalidOTP means the submitted code does not match the meeting's
	// one-time password.
	ErrInvalidOTP = errors.New("invalid otp")
)
