// Package repository implements the data access layer.
// This file implements SessionRepository for therapy sessions.
package repository

import (
	"time"

	"theracare_server/internal/model"

	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a SessionRepository.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) FindByUuid(uuid string) (*model.TherapySession, error) {
	var session model.TherapySession
	if err := r.db.Where("uuid = ?", uuid).First(&session).Error; err != nil {
		return nil, wrapDBErrorf(err, "find session uuid=%s", uuid)
	}
	return &session, nil
}

func (r *sessionRepository) FindByParticipant(userId string) ([]model.TherapySession, error) {
	var sessions []model.TherapySession
	if err := r.db.Where("patient_id = ? OR therapist_id = ?", userId, userId).
		Order("session_date ASC").Find(&sessions).Error; err != nil {
		return nil, wrapDBErrorf(err, "find sessions participant=%s", userId)
	}
	return sessions, nil
}

func (r *sessionRepository) FindByTherapistBetween(therapistId string, from, to time.Time) ([]model.TherapySession, error) {
	var sessions []model.TherapySession
	if err := r.db.Where("therapist_id = ? AND session_date >= ? AND session_date < ?",
		therapistId, from, to).Order("session_date ASC").Find(&sessions).Error; err != nil {
		return nil, wrapDBErrorf(err, "find sessions therapist=%s", therapistId)
	}
	return sessions, nil
}

func (r *sessionRepository) Create(session *model.TherapySession) error {
	if err := r.db.Create(session).Error; err != nil {
		return wrapDBError(err, "create session")
	}
	return nil
}

// UpdateFields applies a partial update. The allowlist of updatable columns is
// enforced by the service layer; this method trusts its caller.
func (r *sessionRepository) UpdateFields(uuid string, updates map[string]interface{}) error {
	res := r.db.Model(&model.TherapySession{}).Where("uuid = ?", uuid).Updates(updates)
	if res.Error != nil {
		return wrapDBErrorf(res.Error, "update session uuid=%s", uuid)
	}
	if res.RowsAffected == 0 {
		return wrapDBErrorf(gorm.ErrRecordNotFound, "update session uuid=%s", uuid)
	}
	return nil
}

func (r *sessionRepository) UpdateStatus(uuid string, status string) error {
	return r.UpdateFields(uuid, map[string]interface{}{"status": status})
}
