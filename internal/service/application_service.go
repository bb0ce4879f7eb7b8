package service

import (
	"context"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/talentdesk/ats-service/internal/api/dto"
	"github.com/talentdesk/ats-service/internal/domain"
	"github.com/talentdesk/ats-service/internal/events"
	"github.com/talentdesk/ats-service/internal/repository"
	apperrors "github.com/talentdesk/ats-service/pkg/util/errorutil"
)

// ResumeDownloadPrefix is prepended to stored resume names to build download URLs.
const ResumeDownloadPrefix = "/api/files/download/"

// ErrCodeJobInactive marks submissions against a closed job.
const ErrCodeJobInactive = "JOB_INACTIVE"

// ApplicationService coordinates candidate submissions and triage.
type ApplicationService struct {
	jobs         repository.JobRepository
	applications repository.ApplicationRepository
	files        ResumeStore
	events       publisher
	logger       *zap.Logger
	now          func() time.Time
}

// ApplicationDependencies bundles collaborators for the application service.
type ApplicationDependencies struct {
	JobRepo         repository.JobRepository
	ApplicationRepo repository.ApplicationRepository
	Files           ResumeStore
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
	Now             func() time.Time
}

// ApplicationFilter describes listing filters. Nil fields do not constrain.
type ApplicationFilter struct {
	JobID  *int64
	Status *domain.ApplicationStatus
}

// ResumeUpload is an optional file attached to a submission.
type ResumeUpload struct {
	FileName string
	Size     int64
	Content  io.Reader
}

// SubmitInput carries a candidate's submission.
type SubmitInput struct {
	CandidateName  string
	CandidateEmail string
	Resume         *ResumeUpload
}

// NewApplicationService constructs the service.
func NewApplicationService(deps ApplicationDependencies) *ApplicationService {
	logger := orNop(deps.Logger)
	return &ApplicationService{
		jobs:         deps.JobRepo,
		applications: deps.ApplicationRepo,
		files:        deps.Files,
		events:       publisher{dispatcher: deps.Dispatcher, logger: logger},
		logger:       logger,
		now:          orNow(deps.Now),
	}
}

// ListApplications returns applications matching the filter, newest first.
func (s *ApplicationService) ListApplications(ctx context.Context, filter ApplicationFilter) ([]dto.ApplicationResponse, error) {
	apps, err := s.applications.ListWithFilter(ctx, repository.ApplicationFilter{
		JobID:  filter.JobID,
		Status: filter.Status,
	})
	if err != nil {
		return nil, err
	}
	return toApplicationResponses(apps), nil
}

// SearchApplications matches text against candidate name or email, ignoring case.
func (s *ApplicationService) SearchApplications(ctx context.Context, text string) ([]dto.ApplicationResponse, error) {
	apps, err := s.applications.Search(ctx, strings.TrimSpace(text))
	if err != nil {
		return nil, err
	}
	return toApplicationResponses(apps), nil
}

// GetApplication fetches one application.
func (s *ApplicationService) GetApplication(ctx context.Context, id int64) (*dto.ApplicationResponse, error) {
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "application", id)
	}
	resp := toApplicationResponse(app)
	return &resp, nil
}

// SubmitApplication records a candidate's application to an active job.
func (s *ApplicationService) SubmitApplication(ctx context.Context, jobID int64, input SubmitInput) (*dto.ApplicationResponse, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, notFound(err, "job", jobID)
	}
	if !job.AcceptsApplications() {
		return nil, apperrors.NewRuleViolation(ErrCodeJobInactive, "this job is no longer accepting applications", map[string]any{"jobId": jobID})
	}

	app := &domain.Application{
		JobID:          job.ID,
		CandidateName:  strings.TrimSpace(input.CandidateName),
		CandidateEmail: strings.TrimSpace(input.CandidateEmail),
		Status:         domain.ApplicationStatusNew,
		SubmittedAt:    s.now(),
		JobTitle:       job.Title,
	}

	if r := input.Resume; r != nil && r.Size > 0 && r.Content != nil {
		stored, err := s.files.Store(r.FileName, r.Content)
		if err != nil {
			return nil, err
		}
		original := r.FileName
		app.ResumePath = &stored
		app.ResumeOriginalName = &original
	}

	if err := s.applications.Create(ctx, app); err != nil {
		if app.ResumePath != nil {
			if delErr := s.files.Delete(*app.ResumePath); delErr != nil {
				s.logger.Warn("failed to remove orphaned resume", zap.String("file", *app.ResumePath), zap.Error(delErr))
			}
		}
		return nil, notFound(err, "job", jobID)
	}

	appID := app.ID
	s.events.publish(ctx, events.Event{
		Type:          events.EventApplicationSubmitted,
		JobID:         job.ID,
		ApplicationID: &appID,
		Payload: events.ApplicationSubmittedPayload{
			CandidateName:  app.CandidateName,
			CandidateEmail: app.CandidateEmail,
			HasResume:      app.ResumePath != nil,
		},
	})
	resp := toApplicationResponse(app)
	return &resp, nil
}

// UpdateStatus overwrites the status. Every transition is allowed.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus, actor *domain.User) (*dto.ApplicationResponse, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": string(status)})
	}
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "application", id)
	}
	oldStatus := app.Status
	if err := s.applications.UpdateStatus(ctx, id, status); err != nil {
		return nil, notFound(err, "application", id)
	}
	app.Status = status

	appID := app.ID
	s.events.publish(ctx, events.Event{
		Type:          events.EventApplicationStatusChanged,
		JobID:         app.JobID,
		ApplicationID: &appID,
		Actor:         actorOf(actor),
		Payload: events.ApplicationStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: status,
		},
	})
	resp := toApplicationResponse(app)
	return &resp, nil
}

func toApplicationResponses(apps []domain.Application) []dto.ApplicationResponse {
	items := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		items = append(items, toApplicationResponse(&apps[i]))
	}
	return items
}

func toApplicationResponse(app *domain.Application) dto.ApplicationResponse {
	var url *string
	if app.ResumePath != nil {
		u := ResumeDownloadPrefix + *app.ResumePath
		url = &u
	}
	return dto.ApplicationResponse{
		ID:                 app.ID,
		CandidateName:      app.CandidateName,
		CandidateEmail:     app.CandidateEmail,
		ResumeOriginalName: app.ResumeOriginalName,
		ResumeDownloadURL:  url,
		Status:             app.Status,
		SubmittedAt:        app.SubmittedAt,
		JobID:              app.JobID,
		JobTitle:           app.JobTitle,
	}
}
