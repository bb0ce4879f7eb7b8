package service

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/talentdesk/ats-service/internal/api/dto"
	"github.com/talentdesk/ats-service/internal/auth"
	"github.com/talentdesk/ats-service/internal/domain"
	"github.com/talentdesk/ats-service/internal/repository"
)

type seedRecruiter struct {
	name, email, password string
}

type seedJob struct {
	title, description string
	owner              int
}

var seedRecruiters = []seedRecruiter{
	{"John Smith", "john@company.com", "password123"},
	{"Sarah Johnson", "sarah@company.com", "password123"},
	{"Test Recruiter", "test@test.com", "123456"},
}

var seedJobs = []seedJob{
	{"Senior Software Engineer", `We are looking for a Senior Software Engineer to join our team.

Requirements:
- 5+ years of experience in software development
- Strong proficiency in Go, PostgreSQL and React
- Experience with RESTful APIs
- Excellent problem-solving skills

Benefits:
- Competitive salary
- Remote work options
- Health insurance
`, 0},
	{"Frontend Developer", `Join our frontend team to build amazing user experiences.

Requirements:
- 3+ years of React/Vue/Angular experience
- Strong CSS and JavaScript skills
- Experience with responsive design
`, 0},
	{"DevOps Engineer", `We need a DevOps Engineer to improve our CI/CD pipelines.

Requirements:
- Experience with Docker and Kubernetes
- AWS/GCP/Azure cloud platforms
- CI/CD tools (Jenkins, GitHub Actions)
`, 1},
	{"Product Manager", `Lead product development for our core platform.

Requirements:
- 4+ years of product management experience
- Strong analytical and communication skills
- Experience with Agile methodologies
`, 1},
	{"UX Designer", `Create beautiful and intuitive user interfaces.

Requirements:
- 3+ years of UX/UI design experience
- Proficiency in Figma/Sketch
- Understanding of user-centered design
`, 2},
}

var seedCandidates = []string{
	"Alice Williams", "Bob Anderson", "Carol Martinez", "David Lee",
	"Emma Thompson", "Frank Wilson", "Grace Chen", "Henry Davis",
	"Isabella Garcia", "Jack Brown", "Kate Johnson", "Liam Miller",
	"Mia Robinson", "Noah Taylor", "Olivia White", "Peter Harris",
}

// SeedService fills the store with demo recruiters, jobs and applications.
type SeedService struct {
	users        repository.UserRepository
	jobs         repository.JobRepository
	applications repository.ApplicationRepository
	bcryptCost   int
	logger       *zap.Logger
	now          func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand
}

// SeedDependencies bundles collaborators for the seed service.
type SeedDependencies struct {
	UserRepo        repository.UserRepository
	JobRepo         repository.JobRepository
	ApplicationRepo repository.ApplicationRepository
	Rand            *rand.Rand
	BcryptCost      int
	Logger          *zap.Logger
	Now             func() time.Time
}

// NewSeedService constructs the service. A nil Rand is seeded from the clock.
func NewSeedService(deps SeedDependencies) *SeedService {
	rnd := deps.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &SeedService{
		users:        deps.UserRepo,
		jobs:         deps.JobRepo,
		applications: deps.ApplicationRepo,
		bcryptCost:   deps.BcryptCost,
		logger:       orNop(deps.Logger),
		now:          orNow(deps.Now),
		rnd:          rnd,
	}
}

// Seed inserts demo data. Recruiters are reused when their email exists;
// jobs and applications are added on every run.
func (s *SeedService) Seed(ctx context.Context) (*dto.SeedResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recruiters := make([]*domain.User, 0, len(seedRecruiters))
	for _, r := range seedRecruiters {
		user, err := s.ensureRecruiter(ctx, r)
		if err != nil {
			return nil, err
		}
		recruiters = append(recruiters, user)
	}

	now := s.now()
	jobs := make([]*domain.Job, 0, len(seedJobs))
	for _, j := range seedJobs {
		ownerID := recruiters[j.owner].ID
		job := &domain.Job{
			Title:       j.title,
			Description: j.description,
			Active:      true,
			CreatedAt:   now.AddDate(0, 0, -s.rnd.Intn(30)),
			CreatedByID: &ownerID,
		}
		if err := s.jobs.Create(ctx, job); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	statuses := domain.ApplicationStatuses()
	created := 0
	for _, job := range jobs {
		n := 3 + s.rnd.Intn(6)
		for i := 0; i < n && created < len(seedCandidates); i++ {
			name := seedCandidates[created%len(seedCandidates)]
			app := &domain.Application{
				JobID:          job.ID,
				CandidateName:  name,
				CandidateEmail: strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@email.com",
				Status:         statuses[s.rnd.Intn(len(statuses))],
				SubmittedAt:    now.AddDate(0, 0, -s.rnd.Intn(14)),
			}
			if err := s.applications.Create(ctx, app); err != nil {
				return nil, err
			}
			created++
		}
	}

	s.logger.Info("database seeded", zap.Int("jobs", len(jobs)), zap.Int("applications", created))
	test := seedRecruiters[len(seedRecruiters)-1]
	return &dto.SeedResult{
		Success:             true,
		Message:             "Database seeded successfully!",
		RecruitersCreated:   len(recruiters),
		JobsCreated:         len(jobs),
		ApplicationsCreated: created,
		TestCredentials:     map[string]string{"email": test.email, "password": test.password},
	}, nil
}

func (s *SeedService) ensureRecruiter(ctx context.Context, r seedRecruiter) (*domain.User, error) {
	existing, err := s.users.GetByEmail(ctx, r.email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	hash, err := auth.HashPassword(r.password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{FullName: r.name, Email: r.email, PasswordHash: hash, CreatedAt: s.now()}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
