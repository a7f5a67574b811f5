// Package model defines the database entities.
// This file defines the notification model backing the alert feed.
package model

import (
	"time"

	"gorm.io/gorm"
)

// Notification maps to the notification table.
// One row per durable alert for one user. Synthetic session reminders are not
// stored here; the aggregator derives them at read time and merges them in.
type Notification struct {
	gorm.Model

	// Uuid format: N + date-prefixed random string.
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20)"`

	// UserId is the recipient.
	UserId string `gorm:"column:user_id;index;type:char(20);not null"`

	// Type is one of session/journal/message/appointment/reminder/system
	// (notification_type_enum).
	Type string `gorm:"column:type;type:varchar(12);not null"`

	Title string `gorm:"column:title;type:varchar(100);not null"`
	Body  string `gorm:"column:body;type:varchar(500)"`

	Read bool `gorm:"column:read;not null;default:false"`

	// OccurredAt orders the feed (descending).
	OccurredAt time.Time `gorm:"column:occurred_at;index;type:datetime;not null"`
}

// TableName pins the table name.
func (Notification) TableName() string {
	return "notification"
}
