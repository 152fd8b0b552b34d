// Package queue defines the lifecycle events exchanged over the message
// broker and the background consumer that records them.
package queue

// LifecycleQueueName is the durable queue carrying meeting lifecycle events.
const LifecycleQueueName = "meeting.lifecycle"

// Event types carried on the lifecycle queue.
const (
	EventMeetingScheduled = "meeting.scheduled"
	EventMeetingFinished  = "meeting.finished"
)

// MeetingLifecycleEvent is published when a meeting is scheduled or finished.
// It carries enough for downstream consumers to log or reconcile — a
// scheduled event whose meeting never became joinable is detectable from this
// stream — without querying the primary database.
type MeetingLifecycleEvent struct {
	Event       string `json:"event"`
	MeetingID   string `json:"meeting_id"`
	OperatorID  string `json:"operator_id,omitempty"`
	CitizenPin  string `json:"citizen_pin,omitempty"`
	ScheduledAt string `json:"scheduled_at,omitempty"`
	OccurredAt  string `json:"occurred_at"`
}
