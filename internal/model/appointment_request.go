// Package model defines the database entities.
// This file defines the appointment request model: a patient's booking
// proposal awaiting therapist confirmation.
package model

import (
	"time"

	"gorm.io/gorm"
)

// AppointmentRequest maps to the appointment_request table.
// Confirmation promotes the request to a TherapySession and flips the status;
// the row itself is kept only as the status record, not as history.
type AppointmentRequest struct {
	gorm.Model

	// Uuid format: R + date-prefixed random string.
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20)"`

	PatientId   string `gorm:"column:patient_id;index;type:char(20);not null"`
	TherapistId string `gorm:"column:therapist_id;index;type:char(20);not null"`

	// SessionDate is the proposed appointment start time.
	SessionDate time.Time `gorm:"column:session_date;type:datetime;not null"`

	// Note is the patient's free-text message to the therapist.
	Note string `gorm:"column:note;type:varchar(500)"`

	// Status is one of pending/confirmed/declined (request_status_enum).
	Status string `gorm:"column:status;index;type:varchar(12);not null"`
}

// TableName pins the table name.
func (AppointmentRequest) TableName() string {
	return "appointment_request"
}
