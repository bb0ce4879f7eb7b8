package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/talentdesk/ats-service/internal/domain"
	"github.com/talentdesk/ats-service/internal/events"
	"github.com/talentdesk/ats-service/internal/repository/memory"
	"github.com/talentdesk/ats-service/internal/service"
	"github.com/talentdesk/ats-service/internal/storage"
)

type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) handle(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	store        *memory.Store
	files        *storage.LocalStore
	recorded     *recorder
	jobs         *service.JobService
	applications *service.ApplicationService
	dashboard    *service.DashboardService
	clock        *fakeClock
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	files, err := storage.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	dispatcher := events.NewInMemoryDispatcher()
	rec := &recorder{}
	for _, et := range events.AllEventTypes() {
		dispatcher.Subscribe(et, rec.handle)
	}
	clock := &fakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}

	return &fixture{
		store:    store,
		files:    files,
		recorded: rec,
		clock:    clock,
		jobs: service.NewJobService(service.JobDependencies{
			JobRepo:         store.Jobs(),
			ApplicationRepo: store.Applications(),
			Files:           files,
			Dispatcher:      dispatcher,
			Now:             clock.Now,
		}),
		applications: service.NewApplicationService(service.ApplicationDependencies{
			JobRepo:         store.Jobs(),
			ApplicationRepo: store.Applications(),
			Files:           files,
			Dispatcher:      dispatcher,
			Now:             clock.Now,
		}),
		dashboard: service.NewDashboardService(store.Jobs(), store.Applications()),
	}
}

func (f *fixture) recruiter(t *testing.T, email string) *domain.User {
	t.Helper()
	user := &domain.User{FullName: "Recruiter " + email, Email: email, PasswordHash: "x"}
	if err := f.store.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}
