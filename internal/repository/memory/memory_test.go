package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/talentdesk/ats-service/internal/domain"
	"github.com/talentdesk/ats-service/internal/repository"
	"github.com/talentdesk/ats-service/internal/repository/memory"
)

func seedJob(t *testing.T, store *memory.Store, title string, active bool, createdAt time.Time) *domain.Job {
	t.Helper()
	job := &domain.Job{Title: title, Active: active, CreatedAt: createdAt}
	if err := store.Jobs().Create(context.Background(), job); err != nil {
		t.Fatalf("create job: %v", err)
	}
	return job
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	if err := store.Users().Create(ctx, &domain.User{FullName: "A", Email: "a@x.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := store.Users().Create(ctx, &domain.User{FullName: "B", Email: "a@x.com"})
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if _, err := store.Users().GetByEmail(ctx, "missing@x.com"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestJobRepo_OrderingAndCreatorName(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	owner := &domain.User{FullName: "Rita Recruiter", Email: "rita@x.com"}
	if err := store.Users().Create(ctx, owner); err != nil {
		t.Fatalf("create user: %v", err)
	}

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	old := &domain.Job{Title: "Old", Active: true, CreatedAt: base, CreatedByID: &owner.ID}
	if err := store.Jobs().Create(ctx, old); err != nil {
		t.Fatalf("create: %v", err)
	}
	seedJob(t, store, "New", true, base.Add(time.Hour))
	seedJob(t, store, "Closed", false, base.Add(2*time.Hour))

	active, _ := store.Jobs().ListActive(ctx)
	if len(active) != 2 || active[0].Title != "New" || active[1].Title != "Old" {
		t.Fatalf("unexpected active ordering: %+v", active)
	}
	if active[1].CreatedByName == nil || *active[1].CreatedByName != "Rita Recruiter" {
		t.Fatalf("expected creator name on joined job, got %v", active[1].CreatedByName)
	}

	mine, _ := store.Jobs().ListByCreator(ctx, owner.ID)
	if len(mine) != 1 || mine[0].ID != old.ID {
		t.Fatalf("unexpected owner listing: %+v", mine)
	}

	all, _ := store.Jobs().ListAll(ctx)
	if len(all) != 3 || all[0].Title != "Closed" {
		t.Fatalf("unexpected full listing: %+v", all)
	}
}

func TestJobRepo_DeleteCascades(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	job := seedJob(t, store, "Engineer", true, time.Time{})
	path := "abc.pdf"
	app := &domain.Application{JobID: job.ID, CandidateName: "Ann", CandidateEmail: "ann@x.com", ResumePath: &path}
	if err := store.Applications().Create(ctx, app); err != nil {
		t.Fatalf("create app: %v", err)
	}

	paths, _ := store.Applications().ResumePathsByJob(ctx, job.ID)
	if len(paths) != 1 || paths[0] != path {
		t.Fatalf("unexpected resume paths %v", paths)
	}

	if err := store.Jobs().Delete(ctx, job.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Applications().GetByID(ctx, app.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected application to cascade, got %v", err)
	}
	if err := store.Jobs().Delete(ctx, job.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestApplicationRepo_FiltersAndSearch(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	a := seedJob(t, store, "A", true, time.Time{})
	b := seedJob(t, store, "B", true, time.Time{})

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	apps := []domain.Application{
		{JobID: a.ID, CandidateName: "Ann Lee", CandidateEmail: "ann@x.com", Status: domain.ApplicationStatusNew, SubmittedAt: base},
		{JobID: a.ID, CandidateName: "Bob", CandidateEmail: "bob@corp.com", Status: domain.ApplicationStatusHired, SubmittedAt: base.Add(time.Hour)},
		{JobID: b.ID, CandidateName: "Cara", CandidateEmail: "cara_ANN@x.com", Status: domain.ApplicationStatusNew, SubmittedAt: base.Add(2 * time.Hour)},
	}
	for i := range apps {
		if err := store.Applications().Create(ctx, &apps[i]); err != nil {
			t.Fatalf("create app: %v", err)
		}
	}

	status := domain.ApplicationStatusNew
	got, _ := store.Applications().ListWithFilter(ctx, repository.ApplicationFilter{JobID: &a.ID, Status: &status})
	if len(got) != 1 || got[0].CandidateName != "Ann Lee" {
		t.Fatalf("unexpected intersection: %+v", got)
	}

	found, _ := store.Applications().Search(ctx, "ANN")
	if len(found) != 2 || found[0].CandidateName != "Cara" || found[1].CandidateName != "Ann Lee" {
		t.Fatalf("unexpected search result: %+v", found)
	}
	if found[0].JobTitle != "B" {
		t.Fatalf("expected joined job title, got %q", found[0].JobTitle)
	}

	if n, _ := store.Applications().CountByStatus(ctx, domain.ApplicationStatusNew); n != 2 {
		t.Fatalf("expected 2 NEW, got %d", n)
	}
	if n, _ := store.Applications().CountByJob(ctx, a.ID); n != 2 {
		t.Fatalf("expected 2 for job A, got %d", n)
	}
}

func TestApplicationRepo_CreateRequiresJob(t *testing.T) {
	store := memory.NewStore()
	err := store.Applications().Create(context.Background(), &domain.Application{JobID: 99})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
