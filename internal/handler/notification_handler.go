// Package handler implements the HTTP layer.
// This file handles the notification feed endpoints.
package handler

import (
	"github.com/gin-gonic/gin"

	"theracare_server/internal/dto/request"
	"theracare_server/internal/service"
)

// NotificationHandler handles the alert feed endpoints.
type NotificationHandler struct {
	notificationSvc service.NotificationService
}

// NewNotificationHandler creates the notification handler.
func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// Feed returns the merged feed, newest first.
// GET /notification/feed?userId=
func (h *NotificationHandler) Feed(c *gin.Context) {
	var req request.NotificationFeedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.notificationSvc.Feed(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// MarkRead marks one entry read.
// POST /notification/markRead
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	var req request.MarkNotificationReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.notificationSvc.MarkRead(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// MarkAllRead clears the unread badge.
// POST /notification/markAllRead
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	var req request.MarkAllNotificationsReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.notificationSvc.MarkAllRead(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
