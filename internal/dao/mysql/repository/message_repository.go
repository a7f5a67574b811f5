// Package repository implements the data access layer.
// This file implements MessageRepository.
package repository

import (
	"theracare_server/internal/model"

	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a MessageRepository.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) FindByConversationId(conversationId string) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	if err := r.db.Where("conversation_id = ?", conversationId).
		Order("created_at ASC").Find(&messages).Error; err != nil {
		return nil, wrapDBErrorf(err, "find messages conversation=%s", conversationId)
	}
	return messages, nil
}

func (r *messageRepository) Create(message *model.ChatMessage) error {
	if err := r.db.Create(message).Error; err != nil {
		return wrapDBError(err, "create message")
	}
	return nil
}

// MarkReadBySender flips every unread message from the counterpart in one
// statement rather than one update per message.
func (r *messageRepository) MarkReadBySender(conversationId, readerId string) (int64, error) {
	res := r.db.Model(&model.ChatMessage{}).
		Where("conversation_id = ? AND sender_id <> ? AND `read` = ?", conversationId, readerId, false).
		Update("read", true)
	if res.Error != nil {
		return 0, wrapDBErrorf(res.Error, "mark messages read conversation=%s", conversationId)
	}
	return res.RowsAffected, nil
}

func (r *messageRepository) CountUnread(conversationId, readerId string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.ChatMessage{}).
		Where("conversation_id = ? AND sender_id <> ? AND `read` = ?", conversationId, readerId, false).
		Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "count unread conversation=%s", conversationId)
	}
	return count, nil
}
