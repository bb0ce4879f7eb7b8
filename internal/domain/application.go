package domain

import (
	"strings"
	"time"
)

// ApplicationStatus enumerates triage states. Any status may follow any other.
type ApplicationStatus string

const (
	ApplicationStatusNew         ApplicationStatus = "NEW"
	ApplicationStatusShortlisted ApplicationStatus = "SHORTLISTED"
	ApplicationStatusInterviewed ApplicationStatus = "INTERVIEWED"
	ApplicationStatusRejected    ApplicationStatus = "REJECTED"
	ApplicationStatusHired       ApplicationStatus = "HIRED"
)

// ApplicationStatuses lists every status in declaration order.
func ApplicationStatuses() []ApplicationStatus {
	return []ApplicationStatus{
		ApplicationStatusNew,
		ApplicationStatusShortlisted,
		ApplicationStatusInterviewed,
		ApplicationStatusRejected,
		ApplicationStatusHired,
	}
}

// Valid reports whether s is one of the declared statuses.
func (s ApplicationStatus) Valid() bool {
	for _, candidate := range ApplicationStatuses() {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseApplicationStatus accepts a status name in any letter case.
func ParseApplicationStatus(raw string) (ApplicationStatus, bool) {
	status := ApplicationStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", false
	}
	return status, true
}

// Application is a candidate's submission against a job.
type Application struct {
	ID                 int64
	JobID              int64
	CandidateName      string
	CandidateEmail     string
	ResumePath         *string
	ResumeOriginalName *string
	Status             ApplicationStatus
	SubmittedAt        time.Time
	// JobTitle is filled from the owning job on reads.
	JobTitle string
}
