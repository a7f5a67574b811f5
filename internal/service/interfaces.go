// Package service defines the business layer interfaces.
// All service interfaces live in this file; implementations live in the
// per-domain sub-packages. The handler layer depends only on these.
package service

import (
	"theracare_server/internal/dto/request"
	"theracare_server/internal/dto/respond"
)

// UserService handles accounts and authentication.
type UserService interface {
	// Register creates a patient or therapist account.
	Register(req request.RegisterRequest) (*respond.UserRespond, error)
	// Login checks the password and issues a token pair.
	Login(req request.LoginRequest) (*respond.LoginRespond, error)
	// RefreshToken exchanges a refresh token for a new access token.
	RefreshToken(req request.RefreshTokenRequest) (*respond.RefreshTokenRespond, error)
	// GetUserInfo returns one public profile.
	GetUserInfo(uuid string) (*respond.UserRespond, error)
	// TherapistList lists active therapists for the booking picker.
	TherapistList() ([]respond.UserRespond, error)
	// PatientList lists active patients.
	PatientList() ([]respond.UserRespond, error)
}

// ScheduleService derives the dashboard session views.
type ScheduleService interface {
	// Dashboard returns next/previous/upcoming for one user.
	Dashboard(req request.DashboardRequest) (*respond.DashboardRespond, error)
	// TodaySchedule returns a therapist's sessions for the current day.
	TodaySchedule(req request.TodayScheduleRequest) ([]respond.SessionRespond, error)
	// SessionList returns all of a user's sessions, classified.
	SessionList(req request.SessionListRequest) ([]respond.SessionRespond, error)
	// SessionDetail returns one session with its enrichment fields.
	SessionDetail(req request.SessionDetailRequest) (*respond.SessionRespond, error)
}

// BookingService handles direct booking and the request/confirm flow.
type BookingService interface {
	// BookSession creates a scheduled session directly.
	BookSession(req request.BookSessionRequest) (*respond.BookSessionRespond, error)
	// SubmitRequest files a patient's proposal for therapist review.
	SubmitRequest(req request.SubmitAppointmentRequest) (*respond.AppointmentRequestRespond, error)
	// ConfirmRequest promotes a pending request to a session.
	ConfirmRequest(req request.HandleAppointmentRequest) (*respond.BookSessionRespond, error)
	// DeclineRequest rejects a pending request.
	DeclineRequest(req request.HandleAppointmentRequest) error
	// PendingRequests lists a therapist's pending requests.
	PendingRequests(req request.PendingRequestsRequest) ([]respond.AppointmentRequestRespond, error)
}

// ChatService handles the patient/therapist messaging thread.
type ChatService interface {
	// Contacts lists the user's messaging counterparts with unread badges.
	Contacts(req request.ContactListRequest) ([]respond.ContactRespond, error)
	// OpenConversation zeroes the opener's unread counter and marks the
	// counterpart's messages read.
	OpenConversation(req request.OpenConversationRequest) (*respond.OpenConversationRespond, error)
	// SendMessage stores one message and bumps the recipient's counter.
	SendMessage(req request.SendMessageRequest) (*respond.MessageRespond, error)
	// MessageHistory returns a conversation's messages, oldest first.
	MessageHistory(req request.MessageHistoryRequest) ([]respond.MessageRespond, error)
}

// NotificationService maintains the alert feed.
type NotificationService interface {
	// Feed returns the merged durable+synthetic feed, newest first.
	Feed(req request.NotificationFeedRequest) (*respond.NotificationFeedRespond, error)
	// MarkRead marks one durable entry read.
	MarkRead(req request.MarkNotificationReadRequest) error
	// MarkAllRead clears the user's unread badge.
	MarkAllRead(req request.MarkAllNotificationsReadRequest) error
	// Notify stores a durable entry and pushes it. Used by the other
	// services; failures are logged, never propagated to the caller's
	// main operation.
	Notify(userId, notificationType, title, body string) error
}

// SummaryService runs the transcription/summary pipeline and the session
// enrichment updates.
type SummaryService interface {
	// UpdateSession applies a partial update to a session's enrichment
	// fields. An empty update is rejected.
	UpdateSession(sessionId string, req request.UpdateSessionRequest) error
	// GetSummary turns a transcript into a structured summary.
	GetSummary(req request.GetSummaryRequest) (*respond.StructuredSummary, error)
	// Transcribe downloads a recording, transcribes and summarizes it, and
	// writes the result onto the session.
	Transcribe(req request.GetTranscriptionRequest) (*respond.TranscriptionRespond, error)
	// AppendTranscript appends one spoken line to the per-room transcript
	// file.
	AppendTranscript(req request.AppendTranscriptRequest) error
}
