package worker

import (
	"github.com/talentdesk/ats-service/internal/events"
	"github.com/talentdesk/ats-service/internal/service"
)

// StartNotificationWorker registers event subscribers. A nil forwarder keeps
// events in-process.
func StartNotificationWorker(notificationService *service.NotificationService, forwarder *events.RedisForwarder, dispatcher events.Dispatcher) {
	if notificationService != nil {
		notificationService.RegisterHandlers()
	}
	if forwarder != nil && dispatcher != nil {
		forwarder.Register(dispatcher)
	}
}
