package models

import "time"

// JobEventKind labels what happened to a job.
type JobEventKind string

const (
	EventJobCreated      JobEventKind = "job_created"
	EventJobAccepted     JobEventKind = "job_accepted"
	EventStatusChanged   JobEventKind = "status_changed"
	EventJobCancelled    JobEventKind = "job_cancelled"
	EventJobRated        JobEventKind = "job_rated"
	EventPaymentRecorded JobEventKind = "payment_recorded"
)

// JobEvent is emitted exactly once per successful mutation, after the
// corresponding write has been committed. Subscribers receive events
// at-least-once and must tolerate duplicates.
type JobEvent struct {
	JobID      string       `json:"jobId"`
	Kind       JobEventKind `json:"kind"`
	From       JobStatus    `json:"from,omitempty"`
	To         JobStatus    `json:"to,omitempty"`
	ActorID    string       `json:"actorId,omitempty"`
	ClientID   string       `json:"clientId,omitempty"`
	ProviderID string       `json:"providerId,omitempty"`
	Timestamp  time.Time    `json:"timestamp"`
}
