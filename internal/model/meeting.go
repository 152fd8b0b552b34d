package model

import "time"

// MeetingStatus enumerates the meeting lifecycle states.
type MeetingStatus string

const (
	StatusCreated    MeetingStatus = "CREATED"
	StatusPending    MeetingStatus = "PENDING"
	StatusInProgress MeetingStatus = "IN_PROGRESS"
	StatusFinished   MeetingStatus = "FINISHED"
	StatusCancelled  MeetingStatus = "CANCELLED"
)

// Terminal reports whether the status admits no further join transitions.
// Terminal meetings are indistinguishable from absent ones to join callers.
func (s MeetingStatus) Terminal() bool {
	return s == StatusFinished || s == StatusCancelled
}

// Next returns the status after one join-advance step: CREATED moves to
// PENDING, PENDING to IN_PROGRESS, and IN_PROGRESS stays where it is.
// Callers must reject terminal states before asking for the next one.
func (s MeetingStatus) Next() MeetingStatus {
	switch s {
	case StatusCreated:
		return StatusPending
	case StatusPending:
		return StatusInProgress
	default:
		return s
	}
}

// Meeting mirrors the `meetings` table.
//
// Fields:
//
//	ID          – primary key (UUID string); doubles as the video room id.
//	OperatorID  – owning operator, FK to users.
//	CitizenID   – FK to citizens.
//	ScheduledAt – planned start time, stored in UTC.
type Meeting struct {
	ID          string        // meetings.id
	OperatorID  string        // meetings.operator_id
	CitizenID   string        // meetings.citizen_id
	ScheduledAt time.Time     // meetings.scheduled_at
	Status      MeetingStatus // meetings.status
	CreatedAt   time.Time     // meetings.created_at
}

// MeetingSecret is the ephemeral record stored in Redis beside a meeting:
// the one-time passcode gating citizen entry plus a snapshot of the citizen's
// registry profile. It lives until one hour past the scheduled time and is
// deleted when the meeting finishes.
type MeetingSecret struct {
	OTP     string         `json:"otp"`
	Citizen CitizenProfile `json:"citizenData"`
}
