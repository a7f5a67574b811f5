// Package repository implements the data access layer.
// This file implements UserRepository.
package repository

import (
	"time"

	"theracare_server/internal/model"
	"theracare_server/pkg/enum/user_info/user_status_enum"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByUuid(uuid string) (*model.UserInfo, error) {
	var user model.UserInfo
	if err := r.db.Where("uuid = ?", uuid).First(&user).Error; err != nil {
		return nil, wrapDBErrorf(err, "find user uuid=%s", uuid)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.UserInfo, error) {
	var user model.UserInfo
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, wrapDBErrorf(err, "find user email=%s", email)
	}
	return &user, nil
}

// FindByRole returns active accounts only; disabled accounts never show up in
// directories or booking dialogs.
func (r *userRepository) FindByRole(role string) ([]model.UserInfo, error) {
	var users []model.UserInfo
	if err := r.db.Where("role = ? AND status = ?", role, user_status_enum.NORMAL).
		Order("last_name ASC").Find(&users).Error; err != nil {
		return nil, wrapDBErrorf(err, "find users role=%s", role)
	}
	return users, nil
}

func (r *userRepository) FindByUuids(uuids []string) ([]model.UserInfo, error) {
	if len(uuids) == 0 {
		return nil, nil
	}
	var users []model.UserInfo
	if err := r.db.Where("uuid IN ?", uuids).Find(&users).Error; err != nil {
		return nil, wrapDBError(err, "find users batch")
	}
	return users, nil
}

func (r *userRepository) Create(user *model.UserInfo) error {
	if err := r.db.Create(user).Error; err != nil {
		return wrapDBError(err, "create user")
	}
	return nil
}

func (r *userRepository) Update(user *model.UserInfo) error {
	if err := r.db.Save(user).Error; err != nil {
		return wrapDBErrorf(err, "update user uuid=%s", user.Uuid)
	}
	return nil
}

func (r *userRepository) UpdateLastOnlineAt(uuid string, at time.Time) error {
	if err := r.db.Model(&model.UserInfo{}).Where("uuid = ?", uuid).
		Update("last_online_at", at).Error; err != nil {
		return wrapDBErrorf(err, "update last online uuid=%s", uuid)
	}
	return nil
}
