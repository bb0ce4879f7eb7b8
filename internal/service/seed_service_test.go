package service_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/talentdesk/ats-service/internal/domain"
	"github.com/talentdesk/ats-service/internal/repository"
	"github.com/talentdesk/ats-service/internal/repository/memory"
	"github.com/talentdesk/ats-service/internal/service"
)

func newSeedService(store *memory.Store, seed int64, now time.Time) *service.SeedService {
	return service.NewSeedService(service.SeedDependencies{
		UserRepo:        store.Users(),
		JobRepo:         store.Jobs(),
		ApplicationRepo: store.Applications(),
		Rand:            rand.New(rand.NewSource(seed)),
		BcryptCost:      4,
		Now:             func() time.Time { return now },
	})
}

func seededApplications(t *testing.T, store *memory.Store) []domain.Application {
	t.Helper()
	apps, err := store.Applications().ListWithFilter(context.Background(), repository.ApplicationFilter{})
	if err != nil {
		t.Fatalf("ListWithFilter: %v", err)
	}
	return apps
}

func TestSeedService_Seed(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	ctx := context.Background()

	result, err := newSeedService(store, 7, now).Seed(ctx)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if !result.Success || result.RecruitersCreated != 3 || result.JobsCreated != 5 {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.ApplicationsCreated < 15 || result.ApplicationsCreated > 16 {
		t.Fatalf("applications created = %d", result.ApplicationsCreated)
	}
	if result.TestCredentials["email"] != "test@test.com" || result.TestCredentials["password"] != "123456" {
		t.Fatalf("unexpected credentials %v", result.TestCredentials)
	}

	jobs, _ := store.Jobs().ListAll(ctx)
	for _, job := range jobs {
		age := now.Sub(job.CreatedAt)
		if age < 0 || age >= 30*24*time.Hour {
			t.Fatalf("job %q created %s ago", job.Title, age)
		}
		if job.CreatedByName == nil {
			t.Fatalf("job %q has no creator", job.Title)
		}
	}

	seen := map[string]bool{}
	for _, app := range seededApplications(t, store) {
		if seen[app.CandidateEmail] {
			t.Fatalf("duplicate candidate %s", app.CandidateEmail)
		}
		seen[app.CandidateEmail] = true
		if !app.Status.Valid() {
			t.Fatalf("invalid status %q", app.Status)
		}
		if age := now.Sub(app.SubmittedAt); age < 0 || age >= 14*24*time.Hour {
			t.Fatalf("application submitted %s ago", age)
		}
	}
	if !seen["alice.williams@email.com"] {
		t.Fatalf("expected first candidate email, got %v", seen)
	}
}

func TestSeedService_Deterministic(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	a, b := memory.NewStore(), memory.NewStore()
	if _, err := newSeedService(a, 99, now).Seed(context.Background()); err != nil {
		t.Fatalf("Seed a: %v", err)
	}
	if _, err := newSeedService(b, 99, now).Seed(context.Background()); err != nil {
		t.Fatalf("Seed b: %v", err)
	}

	appsA, appsB := seededApplications(t, a), seededApplications(t, b)
	if len(appsA) != len(appsB) {
		t.Fatalf("lengths differ: %d vs %d", len(appsA), len(appsB))
	}
	for i := range appsA {
		if appsA[i].CandidateEmail != appsB[i].CandidateEmail || appsA[i].Status != appsB[i].Status || !appsA[i].SubmittedAt.Equal(appsB[i].SubmittedAt) {
			t.Fatalf("row %d differs: %+v vs %+v", i, appsA[i], appsB[i])
		}
	}
}

func TestSeedService_ReusesRecruiters(t *testing.T) {
	store := memory.NewStore()
	svc := newSeedService(store, 1, time.Now().UTC())
	ctx := context.Background()
	if _, err := svc.Seed(ctx); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	first, err := store.Users().GetByEmail(ctx, "john@company.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if _, err := svc.Seed(ctx); err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	again, _ := store.Users().GetByEmail(ctx, "john@company.com")
	if again.ID != first.ID {
		t.Fatalf("recruiter recreated: %d vs %d", again.ID, first.ID)
	}
	if n, _ := store.Jobs().Count(ctx); n != 10 {
		t.Fatalf("expected jobs to be added on every run, got %d", n)
	}
}
