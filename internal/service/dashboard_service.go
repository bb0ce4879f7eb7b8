package service

import (
	"context"

	"github.com/talentdesk/ats-service/internal/api/dto"
	"github.com/talentdesk/ats-service/internal/domain"
	"github.com/talentdesk/ats-service/internal/repository"
)

// recentJobLimit caps the recent-jobs section of the dashboard.
const recentJobLimit = 5

// DashboardService computes recruiter dashboard aggregates.
type DashboardService struct {
	jobs         repository.JobRepository
	applications repository.ApplicationRepository
}

// NewDashboardService constructs the service.
func NewDashboardService(jobs repository.JobRepository, applications repository.ApplicationRepository) *DashboardService {
	return &DashboardService{jobs: jobs, applications: applications}
}

// GetDashboardStats counts jobs and applications. Recent jobs are keyed by
// title; jobs sharing a title collapse into one entry that keeps the newest
// job's position and the oldest job's count.
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*dto.DashboardStats, error) {
	totalJobs, err := s.jobs.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalApps, err := s.applications.Count(ctx)
	if err != nil {
		return nil, err
	}

	byStatus := dto.NewOrderedCounts()
	for _, status := range domain.ApplicationStatuses() {
		n, err := s.applications.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		byStatus.Set(string(status), n)
	}

	active, err := s.jobs.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(active) > recentJobLimit {
		active = active[:recentJobLimit]
	}
	recent := dto.NewOrderedCounts()
	for _, job := range active {
		n, err := s.applications.CountByJob(ctx, job.ID)
		if err != nil {
			return nil, err
		}
		recent.Set(job.Title, n)
	}

	return &dto.DashboardStats{
		TotalJobs:               totalJobs,
		TotalApplications:       totalApps,
		ApplicationsByStatus:    byStatus,
		RecentApplicationsByJob: recent,
	}, nil
}
