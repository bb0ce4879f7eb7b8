package domain

import "time"

// Job is a posting that candidates apply to.
type Job struct {
	ID          int64
	Title       string
	Description string
	Active      bool
	CreatedAt   time.Time
	CreatedByID *int64
	// CreatedByName is filled from the owning user on reads.
	CreatedByName *string
}

// AcceptsApplications reports whether new applications may be submitted.
func (j *Job) AcceptsApplications() bool {
	return j.Active
}

// OwnedBy reports whether userID may mutate the job. Jobs without a
// recorded creator are open to any recruiter.
func (j *Job) OwnedBy(userID int64) bool {
	return j.CreatedByID == nil || *j.CreatedByID == userID
}
