// Package model defines the database entities.
// This file defines the conversation model: the single messaging thread
// between one patient and one therapist.
package model

import (
	"database/sql"
	"time"
)

// Conversation maps to the conversation table.
// The primary key is derived, not generated: "<patientId>_<therapistId>",
// so both participants resolve the same row without a lookup, and the
// uniqueness of the pair is enforced by the key itself. Rows are created
// lazily with zeroed counters the first time either side loads contacts.
type Conversation struct {
	// Id format: <patientId>_<therapistId>.
	Id string `gorm:"column:id;primaryKey;type:char(41)"`

	PatientId   string `gorm:"column:patient_id;index;type:char(20);not null"`
	TherapistId string `gorm:"column:therapist_id;index;type:char(20);not null"`

	// LastMessage is a denormalized preview for the contact list.
	LastMessage   string       `gorm:"column:last_message;type:TEXT"`
	LastMessageAt sql.NullTime `gorm:"column:last_message_at;type:datetime"`

	// Per-role unread counters. Only ever mutated by the opener reset (own
	// counter to zero) and the atomic increment on send (counterpart +1).
	UnreadCountPatient   int `gorm:"column:unread_count_patient;not null;default:0"`
	UnreadCountTherapist int `gorm:"column:unread_count_therapist;not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName pins the table name.
func (Conversation) TableName() string {
	return "conversation"
}
