package events

import (
	"time"

	"github.com/talentdesk/ats-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventJobCreated               EventType = "job_created"
	EventJobUpdated               EventType = "job_updated"
	EventJobDeleted               EventType = "job_deleted"
	EventApplicationSubmitted     EventType = "application_submitted"
	EventApplicationStatusChanged EventType = "application_status_changed"
)

// AllEventTypes lists every event type the services emit.
func AllEventTypes() []EventType {
	return []EventType{
		EventJobCreated,
		EventJobUpdated,
		EventJobDeleted,
		EventApplicationSubmitted,
		EventApplicationStatusChanged,
	}
}

// Actor identifies the recruiter behind an event. Candidate submissions
// carry no actor.
type Actor struct {
	UserID *int64 `json:"userId,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID            string      `json:"id"`
	Type          EventType   `json:"type"`
	JobID         int64       `json:"jobId"`
	ApplicationID *int64      `json:"applicationId,omitempty"`
	Actor         Actor       `json:"actor"`
	Timestamp     time.Time   `json:"timestamp"`
	Payload       interface{} `json:"payload"`
}

// JobChangedPayload accompanies job lifecycle events.
type JobChangedPayload struct {
	Title  string `json:"title"`
	Active bool   `json:"active"`
}

// ApplicationSubmittedPayload payload.
type ApplicationSubmittedPayload struct {
	CandidateName  string `json:"candidateName"`
	CandidateEmail string `json:"candidateEmail"`
	HasResume      bool   `json:"hasResume"`
}

// ApplicationStatusChangedPayload payload.
type ApplicationStatusChangedPayload struct {
	OldStatus domain.ApplicationStatus `json:"oldStatus"`
	NewStatus domain.ApplicationStatus `json:"newStatus"`
}
