// Package request defines the HTTP request payloads.
// This file holds the notification feed payloads.
package request

// NotificationFeedRequest asks for a user's merged notification feed.
type NotificationFeedRequest struct {
	UserId string `form:"userId" binding:"required"`
}

// MarkNotificationReadRequest marks one notification read.
type MarkNotificationReadRequest struct {
	UserId         string `json:"userId" binding:"required"`
	NotificationId string `json:"notificationId" binding:"required"`
}

// MarkAllNotificationsReadRequest clears a user's unread badge.
type MarkAllNotificationsReadRequest struct {
	UserId string `json:"userId" binding:"required"`
}
