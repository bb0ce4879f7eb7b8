package dto

import "time"

// JobRequest is the create/update payload. Active is ignored on create and
// only applied on update when present.
type JobRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	Active      *bool  `json:"active,omitempty"`
}

// JobResponse is a job with its derived application count.
type JobResponse struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"createdAt"`
	CreatedByName    *string   `json:"createdByName"`
	ApplicationCount int64     `json:"applicationCount"`
}
