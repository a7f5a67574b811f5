// Package repository implements the data access layer.
// This file implements NotificationRepository.
package repository

import (
	"theracare_server/internal/model"

	"gorm.io/gorm"
)

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a NotificationRepository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) FindByUser(userId string, limit int) ([]model.Notification, error) {
	var notifications []model.Notification
	q := r.db.Where("user_id = ?", userId).Order("occurred_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&notifications).Error; err != nil {
		return nil, wrapDBErrorf(err, "find notifications user=%s", userId)
	}
	return notifications, nil
}

func (r *notificationRepository) CountUnread(userId string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND `read` = ?", userId, false).
		Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "count unread notifications user=%s", userId)
	}
	return count, nil
}

func (r *notificationRepository) Create(n *model.Notification) error {
	if err := r.db.Create(n).Error; err != nil {
		return wrapDBError(err, "create notification")
	}
	return nil
}

func (r *notificationRepository) MarkRead(userId, uuid string) error {
	res := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND uuid = ?", userId, uuid).
		Update("read", true)
	if res.Error != nil {
		return wrapDBErrorf(res.Error, "mark notification read uuid=%s", uuid)
	}
	if res.RowsAffected == 0 {
		return wrapDBErrorf(gorm.ErrRecordNotFound, "mark notification read uuid=%s", uuid)
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(userId string) error {
	if err := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND `read` = ?", userId, false).
		Update("read", true).Error; err != nil {
		return wrapDBErrorf(err, "mark all notifications read user=%s", userId)
	}
	return nil
}
