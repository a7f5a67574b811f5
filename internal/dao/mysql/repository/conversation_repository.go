// Package repository implements the data access layer.
// This file implements ConversationRepository.
package repository

import (
	"time"

	"theracare_server/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository creates a ConversationRepository.
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) FindById(id string) (*model.Conversation, error) {
	var conv model.Conversation
	if err := r.db.Where("id = ?", id).First(&conv).Error; err != nil {
		return nil, wrapDBErrorf(err, "find conversation id=%s", id)
	}
	return &conv, nil
}

func (r *conversationRepository) FindByParticipant(userId string) ([]model.Conversation, error) {
	var convs []model.Conversation
	if err := r.db.Where("patient_id = ? OR therapist_id = ?", userId, userId).
		Order("last_message_at DESC").Find(&convs).Error; err != nil {
		return nil, wrapDBErrorf(err, "find conversations participant=%s", userId)
	}
	return convs, nil
}

// EnsureExists inserts the row if missing and does nothing otherwise, so the
// lazy creation on contact-list fetch can never clobber live counters.
func (r *conversationRepository) EnsureExists(conv *model.Conversation) error {
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(conv).Error; err != nil {
		return wrapDBErrorf(err, "ensure conversation id=%s", conv.Id)
	}
	return nil
}

// UpdateOnSend performs the single-statement counter mutation for a send: the
// recipient's unread counter is incremented server-side (no read-modify-write)
// and the sender's counter is forced to zero, together with the preview
// columns.
func (r *conversationRepository) UpdateOnSend(id string, preview string, at time.Time, recipientCounter string, senderCounter string) error {
	updates := map[string]interface{}{
		"last_message":    preview,
		"last_message_at": at,
		recipientCounter:  gorm.Expr(recipientCounter+" + ?", 1),
		senderCounter:     0,
	}
	res := r.db.Model(&model.Conversation{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return wrapDBErrorf(res.Error, "update conversation on send id=%s", id)
	}
	if res.RowsAffected == 0 {
		return wrapDBErrorf(gorm.ErrRecordNotFound, "update conversation on send id=%s", id)
	}
	return nil
}

func (r *conversationRepository) ResetCounter(id string, counterColumn string) error {
	if err := r.db.Model(&model.Conversation{}).Where("id = ?", id).
		Update(counterColumn, 0).Error; err != nil {
		return wrapDBErrorf(err, "reset counter conversation id=%s", id)
	}
	return nil
}
