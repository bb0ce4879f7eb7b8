package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/talentdesk/ats-service/internal/api/dto"
	"github.com/talentdesk/ats-service/internal/domain"
	"github.com/talentdesk/ats-service/internal/events"
	"github.com/talentdesk/ats-service/internal/repository"
	apperrors "github.com/talentdesk/ats-service/pkg/util/errorutil"
)

// JobService coordinates job posting workflows.
type JobService struct {
	jobs         repository.JobRepository
	applications repository.ApplicationRepository
	files        ResumeStore
	events       publisher
	logger       *zap.Logger
	now          func() time.Time
}

// JobDependencies bundles collaborators for the job service.
type JobDependencies struct {
	JobRepo         repository.JobRepository
	ApplicationRepo repository.ApplicationRepository
	Files           ResumeStore
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
	Now             func() time.Time
}

// JobInput carries the mutable job fields.
type JobInput struct {
	Title       string
	Description string
	Active      *bool
}

// NewJobService constructs the service.
func NewJobService(deps JobDependencies) *JobService {
	logger := orNop(deps.Logger)
	return &JobService{
		jobs:         deps.JobRepo,
		applications: deps.ApplicationRepo,
		files:        deps.Files,
		events:       publisher{dispatcher: deps.Dispatcher, logger: logger},
		logger:       logger,
		now:          orNow(deps.Now),
	}
}

// ListActiveJobs returns open postings, newest first.
func (s *JobService) ListActiveJobs(ctx context.Context) ([]dto.JobResponse, error) {
	jobs, err := s.jobs.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, jobs)
}

// ListAllJobs returns every posting, newest first.
func (s *JobService) ListAllJobs(ctx context.Context) ([]dto.JobResponse, error) {
	jobs, err := s.jobs.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, jobs)
}

// ListJobsByOwner returns the postings created by userID, newest first.
func (s *JobService) ListJobsByOwner(ctx context.Context, userID int64) ([]dto.JobResponse, error) {
	jobs, err := s.jobs.ListByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, jobs)
}

// GetJob fetches one posting.
func (s *JobService) GetJob(ctx context.Context, id int64) (*dto.JobResponse, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "job", id)
	}
	resp, err := s.toResponse(ctx, job)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateJob opens a new posting owned by owner.
func (s *JobService) CreateJob(ctx context.Context, input JobInput, owner *domain.User) (*dto.JobResponse, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("job title is required", map[string]any{"title": "required"})
	}

	job := &domain.Job{
		Title:       title,
		Description: input.Description,
		Active:      true,
		CreatedAt:   s.now(),
	}
	if owner != nil {
		ownerID := owner.ID
		job.CreatedByID = &ownerID
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	s.events.publish(ctx, events.Event{
		Type:    events.EventJobCreated,
		JobID:   job.ID,
		Actor:   actorOf(owner),
		Payload: events.JobChangedPayload{Title: job.Title, Active: job.Active},
	})
	return s.GetJob(ctx, job.ID)
}

// UpdateJob overwrites title and description and, when supplied, the active
// flag.
func (s *JobService) UpdateJob(ctx context.Context, id int64, input JobInput, owner *domain.User) (*dto.JobResponse, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("job title is required", map[string]any{"title": "required"})
	}

	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "job", id)
	}
	if err := checkOwner(job, owner); err != nil {
		return nil, err
	}

	job.Title = title
	job.Description = input.Description
	if input.Active != nil {
		job.Active = *input.Active
	}
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, notFound(err, "job", id)
	}

	s.events.publish(ctx, events.Event{
		Type:    events.EventJobUpdated,
		JobID:   job.ID,
		Actor:   actorOf(owner),
		Payload: events.JobChangedPayload{Title: job.Title, Active: job.Active},
	})
	return s.GetJob(ctx, job.ID)
}

// DeleteJob removes a posting and, through the store, its applications.
// Resume files of the removed applications are deleted best-effort.
func (s *JobService) DeleteJob(ctx context.Context, id int64, owner *domain.User) error {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "job", id)
	}
	if err := checkOwner(job, owner); err != nil {
		return err
	}

	resumes, err := s.applications.ResumePathsByJob(ctx, id)
	if err != nil {
		return err
	}
	if err := s.jobs.Delete(ctx, id); err != nil {
		return notFound(err, "job", id)
	}
	s.removeResumes(resumes)

	s.events.publish(ctx, events.Event{
		Type:    events.EventJobDeleted,
		JobID:   id,
		Actor:   actorOf(owner),
		Payload: events.JobChangedPayload{Title: job.Title, Active: job.Active},
	})
	return nil
}

func (s *JobService) removeResumes(names []string) {
	if s.files == nil {
		return
	}
	for _, name := range names {
		if err := s.files.Delete(name); err != nil {
			s.logger.Warn("failed to remove resume", zap.String("file", name), zap.Error(err))
		}
	}
}

func (s *JobService) toResponses(ctx context.Context, jobs []domain.Job) ([]dto.JobResponse, error) {
	items := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		resp, err := s.toResponse(ctx, &jobs[i])
		if err != nil {
			return nil, err
		}
		items = append(items, resp)
	}
	return items, nil
}

func (s *JobService) toResponse(ctx context.Context, job *domain.Job) (dto.JobResponse, error) {
	count, err := s.applications.CountByJob(ctx, job.ID)
	if err != nil {
		return dto.JobResponse{}, err
	}
	return dto.JobResponse{
		ID:               job.ID,
		Title:            job.Title,
		Description:      job.Description,
		Active:           job.Active,
		CreatedAt:        job.CreatedAt,
		CreatedByName:    job.CreatedByName,
		ApplicationCount: count,
	}, nil
}

func checkOwner(job *domain.Job, owner *domain.User) error {
	if owner == nil {
		return apperrors.NewUnauthorized("recruiter required")
	}
	if !job.OwnedBy(owner.ID) {
		return apperrors.NewForbidden("only the job's creator may change it")
	}
	return nil
}

func actorOf(user *domain.User) events.Actor {
	if user == nil {
		return events.Actor{}
	}
	return userActor(user.ID)
}
