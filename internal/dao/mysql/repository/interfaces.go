// Package repository implements the data access layer.
// All repository interfaces are defined in this file; implementations live in
// the per-entity files.
package repository

import (
	"errors"
	"time"

	"theracare_server/internal/model"
	"theracare_server/pkg/errorx"

	"gorm.io/gorm"
)

// ==================== error wrapping helpers ====================

// wrapDBError translates gorm errors into errorx codes:
// ErrRecordNotFound -> CodeNotFound, anything else -> CodeDBError.
func wrapDBError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrap(err, errorx.CodeNotFound, msg)
	}
	return errorx.Wrap(err, errorx.CodeDBError, msg)
}

// wrapDBErrorf is wrapDBError with a formatted message.
func wrapDBErrorf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrapf(err, errorx.CodeNotFound, format, args...)
	}
	return errorx.Wrapf(err, errorx.CodeDBError, format, args...)
}

// ==================== repository interfaces ====================

// UserRepository provides account access.
type UserRepository interface {
	// FindByUuid looks up one account by uuid.
	FindByUuid(uuid string) (*model.UserInfo, error)
	// FindByEmail looks up one account by email (login).
	FindByEmail(email string) (*model.UserInfo, error)
	// FindByRole lists active accounts with the given role.
	FindByRole(role string) ([]model.UserInfo, error)
	// FindByUuids fetches a batch of accounts.
	FindByUuids(uuids []string) ([]model.UserInfo, error)
	// Create inserts a new account.
	Create(user *model.UserInfo) error
	// Update persists changed profile fields.
	Update(user *model.UserInfo) error
	// UpdateLastOnlineAt stamps the login time.
	UpdateLastOnlineAt(uuid string, at time.Time) error
}

// SessionRepository provides therapy session access.
type SessionRepository interface {
	// FindByUuid looks up one session.
	FindByUuid(uuid string) (*model.TherapySession, error)
	// FindByParticipant lists sessions where the user is the patient or the
	// therapist, ordered by session date ascending.
	FindByParticipant(userId string) ([]model.TherapySession, error)
	// FindByTherapistBetween lists a therapist's sessions within [from, to).
	FindByTherapistBetween(therapistId string, from, to time.Time) ([]model.TherapySession, error)
	// Create inserts a new session.
	Create(session *model.TherapySession) error
	// UpdateFields applies a partial column update to one session.
	UpdateFields(uuid string, updates map[string]interface{}) error
	// UpdateStatus sets the status of one session.
	UpdateStatus(uuid string, status string) error
}

// ConversationRepository provides conversation access.
type ConversationRepository interface {
	// FindById looks up one conversation by its derived id.
	FindById(id string) (*model.Conversation, error)
	// FindByParticipant lists a user's conversations, most recent first.
	FindByParticipant(userId string) ([]model.Conversation, error)
	// EnsureExists creates the row with zeroed counters if absent; an
	// existing row is left untouched.
	EnsureExists(conv *model.Conversation) error
	// UpdateOnSend updates the preview fields and applies the counter
	// mutation for one send: recipient counter incremented atomically,
	// sender counter forced to zero.
	UpdateOnSend(id string, preview string, at time.Time, recipientCounter string, senderCounter string) error
	// ResetCounter zeroes one of the two unread counters.
	ResetCounter(id string, counterColumn string) error
}

// MessageRepository provides chat message access.
type MessageRepository interface {
	// FindByConversationId lists messages oldest first.
	FindByConversationId(conversationId string) ([]model.ChatMessage, error)
	// Create inserts a new message.
	Create(message *model.ChatMessage) error
	// MarkReadBySender marks all unread messages in the conversation that
	// were NOT sent by readerId, returning the number updated.
	MarkReadBySender(conversationId, readerId string) (int64, error)
	// CountUnread counts unread messages not sent by readerId.
	CountUnread(conversationId, readerId string) (int64, error)
}

// AppointmentRequestRepository provides booking request access.
type AppointmentRequestRepository interface {
	// FindByUuid looks up one request.
	FindByUuid(uuid string) (*model.AppointmentRequest, error)
	// FindByTherapistAndStatus lists a therapist's requests in one state.
	FindByTherapistAndStatus(therapistId, status string) ([]model.AppointmentRequest, error)
	// FindByPatient lists a patient's requests, newest first.
	FindByPatient(patientId string) ([]model.AppointmentRequest, error)
	// Create inserts a new request.
	Create(request *model.AppointmentRequest) error
	// UpdateStatus flips the request state.
	UpdateStatus(uuid string, status string) error
}

// NotificationRepository provides notification feed access.
type NotificationRepository interface {
	// FindByUser lists a user's notifications, newest first.
	FindByUser(userId string, limit int) ([]model.Notification, error)
	// CountUnread counts a user's unread notifications.
	CountUnread(userId string) (int64, error)
	// Create inserts one notification.
	Create(n *model.Notification) error
	// MarkRead marks one of the user's notifications read.
	MarkRead(userId, uuid string) error
	// MarkAllRead marks all of the user's notifications read.
	MarkAllRead(userId string) error
}
