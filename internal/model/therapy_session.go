// Package model defines the database entities.
// This file defines the therapy session model: one scheduled appointment
// between a patient and a therapist, later enriched by the summary pipeline.
package model

import (
	"time"

	"gorm.io/gorm"
)

// TherapySession maps to the therapy_session table.
// Created by the booking flow with status "scheduled"; the enrichment fields
// stay empty until the transcription/summary pipeline fills them in after the
// appointment. Rows are soft-deleted only, never removed.
type TherapySession struct {
	gorm.Model

	// Uuid format: S + date-prefixed random string.
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20)"`

	PatientId   string `gorm:"column:patient_id;index;type:char(20);not null"`
	TherapistId string `gorm:"column:therapist_id;index;type:char(20);not null"`

	// SessionDate is the appointment start time. Together with Status it
	// determines the past/upcoming/in-progress classification; the session
	// occupies [SessionDate, SessionDate+1h).
	SessionDate time.Time `gorm:"column:session_date;index;type:datetime;not null"`

	// Status is one of scheduled/completed/cancelled (session_status_enum).
	Status string `gorm:"column:status;index;type:varchar(12);not null"`

	// Mood and Progress are short labels ("Neutral", "Upcoming", ...) seeded
	// at booking time and overwritten by the summary pipeline.
	Mood     string `gorm:"column:mood;type:varchar(30)"`
	Progress string `gorm:"column:progress;type:varchar(30)"`

	Summary      string `gorm:"column:summary;type:TEXT"`
	ShortSummary string `gorm:"column:short_summary;type:varchar(255)"`

	KeyPoints StringList `gorm:"column:key_points;type:json"`
	Insights  StringList `gorm:"column:insights;type:json"`
	Goals     StringList `gorm:"column:goals;type:json"`
	Warnings  StringList `gorm:"column:warnings;type:json"`
	Advice    StringList `gorm:"column:advice;type:json"`

	Transcript string `gorm:"column:transcript;type:TEXT"`

	JournalingPrompt   string `gorm:"column:journaling_prompt;type:varchar(255)"`
	JournalingResponse string `gorm:"column:journaling_response;type:TEXT"`
}

// TableName pins the table name.
func (TherapySession) TableName() string {
	return "therapy_session"
}
