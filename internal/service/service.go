package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/talentdesk/ats-service/internal/events"
	"github.com/talentdesk/ats-service/internal/repository"
	apperrors "github.com/talentdesk/ats-service/pkg/util/errorutil"
)

// ResumeStore persists uploaded resumes.
type ResumeStore interface {
	Store(originalName string, content io.Reader) (string, error)
	Delete(name string) error
}

// publisher fans domain events out to the dispatcher. Failures are logged and
// never returned to the caller.
type publisher struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

func (p publisher) publish(ctx context.Context, event events.Event) {
	if p.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if err := p.dispatcher.Publish(ctx, event); err != nil && p.logger != nil {
		p.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func notFound(err error, resource string, id int64) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	}
	return err
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func orNow(now func() time.Time) func() time.Time {
	if now == nil {
		return func() time.Time { return time.Now().UTC() }
	}
	return now
}

func userActor(userID int64) events.Actor {
	return events.Actor{UserID: &userID}
}
