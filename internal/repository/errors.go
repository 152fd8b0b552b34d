// Package repository implements the durable MySQL stores. Sentinel errors
// defined here form the domain error taxonomy: services pass them through
// untouched and handlers map each one to a fixed HTTP status.
package repository

import (
	"errors"
	"strings"
)

var (
	// ErrUserExists signals a username collision on registration (409).
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound covers unknown user ids and usernames (404).
	ErrUserNotFound = errors.New("user not found")
	// ErrCitizenNotFound covers both a missing durable row and a missing
	// cached profile (404).
	ErrCitizenNotFound = errors.New("citizen not found")
	// ErrMeetingNotFound covers absent meetings and, deliberately, terminal
	// ones: finished or cancelled meetings are hidden from join callers (404).
	ErrMeetingNotFound = errors.New("meeting not found")
	// ErrMeetingAlreadyScheduled enforces the one-non-terminal-meeting-per-
	// citizen rule (409).
	ErrMeetingAlreadyScheduled = errors.New("meeting already scheduled")
)

// isDuplicate reports whether err is a MySQL duplicate-key violation (1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
