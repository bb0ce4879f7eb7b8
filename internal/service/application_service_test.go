package service_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/talentdesk/ats-service/internal/domain"
	"github.com/talentdesk/ats-service/internal/events"
	"github.com/talentdesk/ats-service/internal/service"
	apperrors "github.com/talentdesk/ats-service/pkg/util/errorutil"
)

func submit(t *testing.T, f *fixture, jobID int64, name string) int64 {
	t.Helper()
	app, err := f.applications.SubmitApplication(context.Background(), jobID, service.SubmitInput{
		CandidateName:  name,
		CandidateEmail: strings.ToLower(name) + "@x.com",
	})
	if err != nil {
		t.Fatalf("SubmitApplication(%s): %v", name, err)
	}
	return app.ID
}

func TestApplicationService_SubmitWithoutResume(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	job, err := f.jobs.CreateJob(ctx, service.JobInput{Title: "Engineer"}, f.recruiter(t, "r@x.com"))
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	app, err := f.applications.SubmitApplication(ctx, job.ID, service.SubmitInput{CandidateName: "Ann", CandidateEmail: "ann@x.com"})
	if err != nil {
		t.Fatalf("SubmitApplication: %v", err)
	}
	if app.Status != domain.ApplicationStatusNew {
		t.Fatalf("expected NEW, got %s", app.Status)
	}
	if app.ResumeDownloadURL != nil || app.ResumeOriginalName != nil {
		t.Fatalf("expected no resume, got %v / %v", app.ResumeDownloadURL, app.ResumeOriginalName)
	}
	if app.JobTitle != "Engineer" || app.JobID != job.ID {
		t.Fatalf("unexpected job reference %d %q", app.JobID, app.JobTitle)
	}

	got, err := f.jobs.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if got.ApplicationCount != 1 {
		t.Fatalf("expected applicationCount 1, got %d", got.ApplicationCount)
	}
}

func TestApplicationService_SubmitStoresResume(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	job, _ := f.jobs.CreateJob(ctx, service.JobInput{Title: "Engineer"}, f.recruiter(t, "r@x.com"))

	app, err := f.applications.SubmitApplication(ctx, job.ID, service.SubmitInput{
		CandidateName:  "Ann",
		CandidateEmail: "ann@x.com",
		Resume:         &service.ResumeUpload{FileName: "Ann CV.PDF", Size: 5, Content: strings.NewReader("hello")},
	})
	if err != nil {
		t.Fatalf("SubmitApplication: %v", err)
	}
	if app.ResumeOriginalName == nil || *app.ResumeOriginalName != "Ann CV.PDF" {
		t.Fatalf("unexpected original name %v", app.ResumeOriginalName)
	}
	if app.ResumeDownloadURL == nil || !strings.HasPrefix(*app.ResumeDownloadURL, service.ResumeDownloadPrefix) {
		t.Fatalf("unexpected download url %v", app.ResumeDownloadURL)
	}
	stored := strings.TrimPrefix(*app.ResumeDownloadURL, service.ResumeDownloadPrefix)
	if !strings.HasSuffix(stored, ".pdf") {
		t.Fatalf("expected lower-cased extension, got %s", stored)
	}
	body, err := os.ReadFile(filepath.Join(f.files.Dir(), stored))
	if err != nil || string(body) != "hello" {
		t.Fatalf("stored content = %q, %v", body, err)
	}
}

func TestApplicationService_EmptyResumeIgnored(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	job, _ := f.jobs.CreateJob(ctx, service.JobInput{Title: "Engineer"}, f.recruiter(t, "r@x.com"))

	app, err := f.applications.SubmitApplication(ctx, job.ID, service.SubmitInput{
		CandidateName:  "Ann",
		CandidateEmail: "ann@x.com",
		Resume:         &service.ResumeUpload{FileName: "empty.pdf", Size: 0, Content: strings.NewReader("")},
	})
	if err != nil {
		t.Fatalf("SubmitApplication: %v", err)
	}
	if app.ResumeDownloadURL != nil {
		t.Fatal("expected empty upload to be treated as no resume")
	}
	entries, _ := os.ReadDir(f.files.Dir())
	if len(entries) != 0 {
		t.Fatalf("expected no stored files, found %d", len(entries))
	}
}

func TestApplicationService_InactiveJobRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.recruiter(t, "r@x.com")
	job, _ := f.jobs.CreateJob(ctx, service.JobInput{Title: "Engineer"}, owner)
	submit(t, f, job.ID, "Ann")

	inactive := false
	if _, err := f.jobs.UpdateJob(ctx, job.ID, service.JobInput{Title: "Engineer", Active: &inactive}, owner); err != nil {
		t.Fatalf("UpdateJob: %v", err)
	}

	_, err := f.applications.SubmitApplication(ctx, job.ID, service.SubmitInput{
		CandidateName:  "Bob",
		CandidateEmail: "bob@x.com",
		Resume:         &service.ResumeUpload{FileName: "cv.pdf", Size: 2, Content: strings.NewReader("cv")},
	})
	if !apperrors.IsCode(err, service.ErrCodeJobInactive) {
		t.Fatalf("expected %s, got %v", service.ErrCodeJobInactive, err)
	}
	if de := apperrors.ToDomainError(err); de.HTTPStatus != 400 {
		t.Fatalf("expected HTTP 400, got %d", de.HTTPStatus)
	}

	got, _ := f.jobs.GetJob(ctx, job.ID)
	if got.ApplicationCount != 1 {
		t.Fatalf("expected count to stay 1, got %d", got.ApplicationCount)
	}
	entries, _ := os.ReadDir(f.files.Dir())
	if len(entries) != 0 {
		t.Fatalf("expected no stored resume, found %d", len(entries))
	}
}

func TestApplicationService_SubmitMissingJob(t *testing.T) {
	f := newFixture(t)
	_, err := f.applications.SubmitApplication(context.Background(), 42, service.SubmitInput{CandidateName: "Ann", CandidateEmail: "ann@x.com"})
	if !apperrors.IsCode(err, "NOT_FOUND") {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestApplicationService_UpdateStatusAnyTransition(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	recruiter := f.recruiter(t, "r@x.com")
	job, _ := f.jobs.CreateJob(ctx, service.JobInput{Title: "Engineer"}, recruiter)

	for _, from := range domain.ApplicationStatuses() {
		for _, to := range domain.ApplicationStatuses() {
			id := submit(t, f, job.ID, "Cand")
			if _, err := f.applications.UpdateStatus(ctx, id, from, recruiter); err != nil {
				t.Fatalf("set %s: %v", from, err)
			}
			got, err := f.applications.UpdateStatus(ctx, id, to, recruiter)
			if err != nil {
				t.Fatalf("%s -> %s: %v", from, to, err)
			}
			if got.Status != to {
				t.Fatalf("%s -> %s: got %s", from, to, got.Status)
			}
			stored, _ := f.applications.GetApplication(ctx, id)
			if stored.Status != to {
				t.Fatalf("%s -> %s: persisted %s", from, to, stored.Status)
			}
		}
	}
}

func TestApplicationService_UpdateStatusErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	job, _ := f.jobs.CreateJob(ctx, service.JobInput{Title: "Engineer"}, f.recruiter(t, "r@x.com"))
	id := submit(t, f, job.ID, "Ann")

	if _, err := f.applications.UpdateStatus(ctx, 999, domain.ApplicationStatusHired, nil); !apperrors.IsCode(err, "NOT_FOUND") {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	if _, err := f.applications.UpdateStatus(ctx, id, domain.ApplicationStatus("ARCHIVED"), nil); !apperrors.IsCode(err, "VALIDATION_FAILED") {
		t.Fatalf("expected VALIDATION_FAILED, got %v", err)
	}
}

func TestApplicationService_StatusChangeEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	recruiter := f.recruiter(t, "r@x.com")
	job, _ := f.jobs.CreateJob(ctx, service.JobInput{Title: "Engineer"}, recruiter)
	id := submit(t, f, job.ID, "Ann")
	if _, err := f.applications.UpdateStatus(ctx, id, domain.ApplicationStatusShortlisted, recruiter); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	f.recorded.mu.Lock()
	last := f.recorded.events[len(f.recorded.events)-1]
	f.recorded.mu.Unlock()
	if last.Type != events.EventApplicationStatusChanged {
		t.Fatalf("unexpected event %s", last.Type)
	}
	payload, ok := last.Payload.(events.ApplicationStatusChangedPayload)
	if !ok || payload.OldStatus != domain.ApplicationStatusNew || payload.NewStatus != domain.ApplicationStatusShortlisted {
		t.Fatalf("unexpected payload %+v", last.Payload)
	}
	if last.Actor.UserID == nil || *last.Actor.UserID != recruiter.ID {
		t.Fatalf("unexpected actor %+v", last.Actor)
	}
	if last.ID == "" || last.Timestamp.IsZero() {
		t.Fatal("expected event id and timestamp to be filled")
	}
}

func TestApplicationService_FilterIsIntersection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	recruiter := f.recruiter(t, "r@x.com")
	jobA, _ := f.jobs.CreateJob(ctx, service.JobInput{Title: "A"}, recruiter)
	jobB, _ := f.jobs.CreateJob(ctx, service.JobInput{Title: "B"}, recruiter)

	a1 := submit(t, f, jobA.ID, "Ann")
	submit(t, f, jobA.ID, "Amy")
	b1 := submit(t, f, jobB.ID, "Ben")
	for _, id := range []int64{a1, b1} {
		if _, err := f.applications.UpdateStatus(ctx, id, domain.ApplicationStatusHired, recruiter); err != nil {
			t.Fatalf("UpdateStatus: %v", err)
		}
	}

	jobID := jobA.ID
	hired := domain.ApplicationStatusHired
	byJob, _ := f.applications.ListApplications(ctx, service.ApplicationFilter{JobID: &jobID})
	byStatus, _ := f.applications.ListApplications(ctx, service.ApplicationFilter{Status: &hired})
	both, err := f.applications.ListApplications(ctx, service.ApplicationFilter{JobID: &jobID, Status: &hired})
	if err != nil {
		t.Fatalf("ListApplications: %v", err)
	}

	inStatus := map[int64]bool{}
	for _, a := range byStatus {
		inStatus[a.ID] = true
	}
	var want []int64
	for _, a := range byJob {
		if inStatus[a.ID] {
			want = append(want, a.ID)
		}
	}
	if len(both) != len(want) || len(both) != 1 || both[0].ID != a1 {
		t.Fatalf("intersection mismatch: got %+v, want %v", both, want)
	}

	all, _ := f.applications.ListApplications(ctx, service.ApplicationFilter{})
	if len(all) != 3 {
		t.Fatalf("expected 3 unfiltered, got %d", len(all))
	}
	if all[0].CandidateName != "Ben" {
		t.Fatalf("expected newest first, got %s", all[0].CandidateName)
	}
}

func TestApplicationService_Search(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	job, _ := f.jobs.CreateJob(ctx, service.JobInput{Title: "Engineer"}, f.recruiter(t, "r@x.com"))
	submit(t, f, job.ID, "Ann")
	if _, err := f.applications.SubmitApplication(ctx, job.ID, service.SubmitInput{CandidateName: "Bob", CandidateEmail: "BOB_100%@x.com"}); err != nil {
		t.Fatalf("SubmitApplication: %v", err)
	}

	got, err := f.applications.SearchApplications(ctx, " ANN ")
	if err != nil || len(got) != 1 || got[0].CandidateName != "Ann" {
		t.Fatalf("search by name: %+v, %v", got, err)
	}
	got, _ = f.applications.SearchApplications(ctx, "_100%")
	if len(got) != 1 || got[0].CandidateName != "Bob" {
		t.Fatalf("search with wildcards: %+v", got)
	}
	got, _ = f.applications.SearchApplications(ctx, "%")
	if len(got) != 1 {
		t.Fatalf("expected %% to match literally, got %d", len(got))
	}
}
