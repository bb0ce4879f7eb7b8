package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/talentdesk/ats-service/internal/events"
)

// NotificationService logs domain events for recruiters' audit trail.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     orNop(logger),
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventJobCreated, n.handleJobEvent)
	n.dispatcher.Subscribe(events.EventJobUpdated, n.handleJobEvent)
	n.dispatcher.Subscribe(events.EventJobDeleted, n.handleJobEvent)
	n.dispatcher.Subscribe(events.EventApplicationSubmitted, n.handleApplicationSubmitted)
	n.dispatcher.Subscribe(events.EventApplicationStatusChanged, n.handleApplicationStatusChanged)
}

func (n *NotificationService) handleJobEvent(_ context.Context, event events.Event) error {
	n.logger.Info(string(event.Type), zap.Int64("job_id", event.JobID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleApplicationSubmitted(_ context.Context, event events.Event) error {
	n.logger.Info("ApplicationSubmitted",
		zap.Int64("job_id", event.JobID),
		zap.Int64p("application_id", event.ApplicationID),
		zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleApplicationStatusChanged(_ context.Context, event events.Event) error {
	n.logger.Info("ApplicationStatusChanged",
		zap.Int64("job_id", event.JobID),
		zap.Int64p("application_id", event.ApplicationID),
		zap.Int64p("actor_id", event.Actor.UserID),
		zap.Any("payload", event.Payload))
	return nil
}
