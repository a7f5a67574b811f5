// Package model defines the database entities.
// This file defines the account model for patients and therapists.
package model

import (
	"database/sql"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"theracare_server/pkg/enum/user_info/role_enum"
)

// UserInfo is one account, patient or therapist.
// Maps to the user_info table.
type UserInfo struct {
	gorm.Model

	// Uuid is the stable external identifier, format: U + date-prefixed
	// random string.
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20)"`

	Email string `gorm:"column:email;uniqueIndex;type:varchar(100);not null"`

	FirstName string `gorm:"column:first_name;type:varchar(50);not null"`
	LastName  string `gorm:"column:last_name;type:varchar(50);not null"`

	// Role is "patient" or "therapist". See role_enum.
	Role string `gorm:"column:role;index;type:varchar(10);not null"`

	// Telephone receives SMS session reminders; optional.
	Telephone string `gorm:"column:telephone;type:varchar(20)"`

	Bio string `gorm:"column:bio;type:varchar(500)"`

	// Specialization is therapist-only, e.g. ["CBT", "anxiety"].
	Specialization StringList `gorm:"column:specialization;type:json"`

	// Password stores the bcrypt hash, never plaintext.
	Password string `gorm:"column:password;type:varchar(100);not null"`

	LastOnlineAt sql.NullTime `gorm:"column:last_online_at;type:datetime"`

	// Status: 0 = active, 1 = disabled. See user_status_enum.
	Status int8 `gorm:"column:status;index;not null"`

	// RawPassword receives the plaintext from the API layer and is hashed in
	// BeforeSave. Excluded from both the database and JSON.
	RawPassword string `gorm:"-" json:"-"`
}

// TableName pins the table name.
func (UserInfo) TableName() string {
	return "user_info"
}

// BeforeSave hashes RawPassword into Password so callers never handle hashes.
func (u *UserInfo) BeforeSave(tx *gorm.DB) (err error) {
	if u.RawPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.RawPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.Password = string(hash)
		u.RawPassword = ""
	}
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
func (u *UserInfo) CheckPassword(plaintext string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plaintext))
	return err == nil
}

// DisplayName renders the name the way the dashboards show it: therapists as
// "Dr. <last name>", patients as "<first> <last>".
func (u *UserInfo) DisplayName() string {
	if u.Role == role_enum.THERAPIST {
		return "Dr. " + u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
