// Package memory holds map-backed repositories used when no database is
// configured and as fakes in tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/talentdesk/ats-service/internal/domain"
	"github.com/talentdesk/ats-service/internal/repository"
)

// Store owns every table. Jobs cascade to their applications on delete.
type Store struct {
	mu           sync.RWMutex
	users        map[int64]domain.User
	jobs         map[int64]domain.Job
	applications map[int64]domain.Application
	nextUser     int64
	nextJob      int64
	nextApp      int64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:        make(map[int64]domain.User),
		jobs:         make(map[int64]domain.Job),
		applications: make(map[int64]domain.Application),
	}
}

// Users returns a UserRepository view of the store.
func (s *Store) Users() repository.UserRepository { return userRepo{s} }

// Jobs returns a JobRepository view of the store.
func (s *Store) Jobs() repository.JobRepository { return jobRepo{s} }

// Applications returns an ApplicationRepository view of the store.
func (s *Store) Applications() repository.ApplicationRepository { return applicationRepo{s} }

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	r.s.nextUser++
	user.ID = r.s.nextUser
	if user.CreatedAt.IsZero() {
		user.CreatedAt = nowUTC()
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r userRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, user := range r.s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

type jobRepo struct{ s *Store }

func (r jobRepo) Create(_ context.Context, job *domain.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextJob++
	job.ID = r.s.nextJob
	if job.CreatedAt.IsZero() {
		job.CreatedAt = nowUTC()
	}
	stored := *job
	stored.CreatedByName = nil
	r.s.jobs[job.ID] = stored
	*job = r.s.withCreator(stored)
	return nil
}

func (r jobRepo) Update(_ context.Context, job *domain.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.jobs[job.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Title = job.Title
	existing.Description = job.Description
	existing.Active = job.Active
	r.s.jobs[job.ID] = existing
	return nil
}

func (r jobRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.jobs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.jobs, id)
	for appID, app := range r.s.applications {
		if app.JobID == id {
			delete(r.s.applications, appID)
		}
	}
	return nil
}

func (r jobRepo) GetByID(_ context.Context, id int64) (*domain.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	job, ok := r.s.jobs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	job = r.s.withCreator(job)
	return &job, nil
}

func (r jobRepo) ListActive(_ context.Context) ([]domain.Job, error) {
	return r.list(func(j domain.Job) bool { return j.Active }), nil
}

func (r jobRepo) ListByCreator(_ context.Context, userID int64) ([]domain.Job, error) {
	return r.list(func(j domain.Job) bool { return j.CreatedByID != nil && *j.CreatedByID == userID }), nil
}

func (r jobRepo) ListAll(_ context.Context) ([]domain.Job, error) {
	return r.list(func(domain.Job) bool { return true }), nil
}

func (r jobRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.jobs)), nil
}

func (r jobRepo) list(keep func(domain.Job) bool) []domain.Job {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	result := []domain.Job{}
	for _, job := range r.s.jobs {
		if keep(job) {
			result = append(result, r.s.withCreator(job))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result
}

// withCreator fills the joined creator name. Callers hold the lock.
func (s *Store) withCreator(job domain.Job) domain.Job {
	job.CreatedByName = nil
	if job.CreatedByID != nil {
		if user, ok := s.users[*job.CreatedByID]; ok {
			name := user.FullName
			job.CreatedByName = &name
		}
	}
	return job
}

type applicationRepo struct{ s *Store }

func (r applicationRepo) Create(_ context.Context, app *domain.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	job, ok := r.s.jobs[app.JobID]
	if !ok {
		return repository.ErrNotFound
	}
	r.s.nextApp++
	app.ID = r.s.nextApp
	if app.SubmittedAt.IsZero() {
		app.SubmittedAt = nowUTC()
	}
	if app.Status == "" {
		app.Status = domain.ApplicationStatusNew
	}
	app.JobTitle = job.Title
	r.s.applications[app.ID] = *app
	return nil
}

func (r applicationRepo) UpdateStatus(_ context.Context, id int64, status domain.ApplicationStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	app, ok := r.s.applications[id]
	if !ok {
		return repository.ErrNotFound
	}
	app.Status = status
	r.s.applications[id] = app
	return nil
}

func (r applicationRepo) GetByID(_ context.Context, id int64) (*domain.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	app, ok := r.s.applications[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	app = r.s.withJobTitle(app)
	return &app, nil
}

func (r applicationRepo) ListWithFilter(_ context.Context, filter repository.ApplicationFilter) ([]domain.Application, error) {
	return r.list(func(a domain.Application) bool {
		if filter.JobID != nil && a.JobID != *filter.JobID {
			return false
		}
		if filter.Status != nil && a.Status != *filter.Status {
			return false
		}
		return true
	}), nil
}

func (r applicationRepo) Search(_ context.Context, term string) ([]domain.Application, error) {
	needle := strings.ToLower(term)
	return r.list(func(a domain.Application) bool {
		return strings.Contains(strings.ToLower(a.CandidateName), needle) ||
			strings.Contains(strings.ToLower(a.CandidateEmail), needle)
	}), nil
}

func (r applicationRepo) ResumePathsByJob(_ context.Context, jobID int64) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var paths []string
	for _, app := range r.s.applications {
		if app.JobID == jobID && app.ResumePath != nil {
			paths = append(paths, *app.ResumePath)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func (r applicationRepo) Count(_ context.Context) (int64, error) {
	return r.count(func(domain.Application) bool { return true }), nil
}

func (r applicationRepo) CountByStatus(_ context.Context, status domain.ApplicationStatus) (int64, error) {
	return r.count(func(a domain.Application) bool { return a.Status == status }), nil
}

func (r applicationRepo) CountByJob(_ context.Context, jobID int64) (int64, error) {
	return r.count(func(a domain.Application) bool { return a.JobID == jobID }), nil
}

func (r applicationRepo) count(keep func(domain.Application) bool) int64 {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, app := range r.s.applications {
		if keep(app) {
			n++
		}
	}
	return n
}

func (r applicationRepo) list(keep func(domain.Application) bool) []domain.Application {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	result := []domain.Application{}
	for _, app := range r.s.applications {
		if keep(app) {
			result = append(result, r.s.withJobTitle(app))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].SubmittedAt.Equal(result[j].SubmittedAt) {
			return result[i].SubmittedAt.After(result[j].SubmittedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result
}

// withJobTitle refreshes the joined job title. Callers hold the lock.
func (s *Store) withJobTitle(app domain.Application) domain.Application {
	if job, ok := s.jobs[app.JobID]; ok {
		app.JobTitle = job.Title
	}
	return app
}
