// Package respond defines the HTTP response payloads.
// This file holds the notification feed views.
package respond

// NotificationRespond is one feed entry, durable or synthetic.
type NotificationRespond struct {
	// NotificationId is empty for synthetic reminders, which cannot be
	// marked read individually.
	NotificationId string `json:"notificationId,omitempty"`
	Type           string `json:"type"`
	Title          string `json:"title"`
	Body           string `json:"body,omitempty"`
	// Date is RFC 3339.
	Date string `json:"date"`
	Read bool   `json:"read"`
	// Synthetic marks reminders derived from upcoming sessions rather than
	// stored rows.
	Synthetic bool `json:"synthetic,omitempty"`
	// SessionId links a synthetic reminder back to its session.
	SessionId string `json:"sessionId,omitempty"`
}

// NotificationFeedRespond is the merged, newest-first feed.
type NotificationFeedRespond struct {
	Items []NotificationRespond `json:"items"`
	// UnreadCount counts unread durable entries only.
	UnreadCount int64 `json:"unreadCount"`
}
