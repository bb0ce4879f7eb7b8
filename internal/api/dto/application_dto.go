package dto

import (
	"time"

	"github.com/talentdesk/ats-service/internal/domain"
)

// ApplyRequest holds the text fields of the multipart apply form.
type ApplyRequest struct {
	CandidateName  string `form:"candidateName" validate:"required,max=255"`
	CandidateEmail string `form:"candidateEmail" validate:"required,email"`
}

// StatusUpdateRequest payload.
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

// ApplicationResponse is an application as returned to recruiters.
type ApplicationResponse struct {
	ID                 int64                    `json:"id"`
	CandidateName      string                   `json:"candidateName"`
	CandidateEmail     string                   `json:"candidateEmail"`
	ResumeOriginalName *string                  `json:"resumeOriginalName"`
	ResumeDownloadURL  *string                  `json:"resumeDownloadUrl"`
	Status             domain.ApplicationStatus `json:"status"`
	SubmittedAt        time.Time                `json:"submittedAt"`
	JobID              int64                    `json:"jobId"`
	JobTitle           string                   `json:"jobTitle"`
}
