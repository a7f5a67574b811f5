// Package service defines the business layer interfaces.
// This file wires the concrete implementations together.
package service

import (
	"theracare_server/internal/dao/mysql/repository"
	myredis "theracare_server/internal/dao/redis"
	"theracare_server/internal/infrastructure/llm"
	"theracare_server/internal/infrastructure/mq"
	"theracare_server/internal/infrastructure/sms"
	"theracare_server/internal/service/booking"
	"theracare_server/internal/service/chat"
	"theracare_server/internal/service/notification"
	"theracare_server/internal/service/schedule"
	"theracare_server/internal/service/summary"
	"theracare_server/internal/service/user"
)

// Services aggregates all service instances. The handler layer accesses
// them through service.Svc.
type Services struct {
	User         UserService
	Schedule     ScheduleService
	Booking      BookingService
	Chat         ChatService
	Notification NotificationService
	Summary      SummaryService
}

// NewServices builds every service and injects the shared dependencies:
// repositories, cache, event broker, the LLM client and the SMS sender.
func NewServices(repos *repository.Repositories, cacheService myredis.AsyncCacheService,
	broker mq.Broker, llmClient llm.Client, reminderSender sms.ReminderSender) *Services {

	notificationSvc := notification.NewNotificationService(repos, broker)

	return &Services{
		User:         user.NewUserService(repos, cacheService),
		Schedule:     schedule.NewScheduleService(repos, cacheService),
		Booking:      booking.NewBookingService(repos, cacheService, notificationSvc, reminderSender),
		Chat:         chat.NewChatService(repos, cacheService, broker, notificationSvc),
		Notification: notificationSvc,
		Summary:      summary.NewSummaryService(repos, cacheService, llmClient),
	}
}

// Svc is the global Services instance used by the handlers.
var Svc *Services

// InitServices sets the global instance. Called from main after the data
// layer is up.
func InitServices(repos *repository.Repositories, cacheService myredis.AsyncCacheService,
	broker mq.Broker, llmClient llm.Client, reminderSender sms.ReminderSender) {
	Svc = NewServices(repos, cacheService, broker, llmClient, reminderSender)
}
