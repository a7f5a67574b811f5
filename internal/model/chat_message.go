// Package model defines the database entities.
// This file defines the chat message model.
package model

import (
	"database/sql"

	"gorm.io/gorm"
)

// ChatMessage maps to the chat_message table.
type ChatMessage struct {
	gorm.Model

	// Uuid is a snowflake id; bigint avoids collisions across instances.
	Uuid int64 `gorm:"column:uuid;uniqueIndex;type:bigint;not null"`

	// ConversationId references Conversation.Id.
	ConversationId string `gorm:"column:conversation_id;index;type:char(41);not null"`

	SenderId string `gorm:"column:sender_id;index;type:char(20);not null"`

	Text string `gorm:"column:text;type:TEXT;not null"`

	// Read flips to true when the non-sender opens the conversation.
	Read bool `gorm:"column:read;not null;default:false"`

	SentAt sql.NullTime `gorm:"column:sent_at;type:datetime"`
}

// TableName pins the table name.
func (ChatMessage) TableName() string {
	return "chat_message"
}
