// Package handler implements the HTTP layer.
// This file aggregates the handlers for the router.
package handler

import (
	"theracare_server/internal/gateway/websocket"
	"theracare_server/internal/service"
)

// Handlers aggregates all handler instances.
type Handlers struct {
	User         *UserHandler
	Schedule     *ScheduleHandler
	Booking      *BookingHandler
	Chat         *ChatHandler
	Notification *NotificationHandler
	Summary      *SummaryHandler
	Ws           *WsHandler
}

// NewHandlers creates every handler from the service aggregate and the push
// gateway.
func NewHandlers(svc *service.Services, gateway *websocket.Gateway) *Handlers {
	return &Handlers{
		User:         NewUserHandler(svc.User),
		Schedule:     NewScheduleHandler(svc.Schedule),
		Booking:      NewBookingHandler(svc.Booking),
		Chat:         NewChatHandler(svc.Chat),
		Notification: NewNotificationHandler(svc.Notification),
		Summary:      NewSummaryHandler(svc.Summary),
		Ws:           NewWsHandler(gateway),
	}
}
