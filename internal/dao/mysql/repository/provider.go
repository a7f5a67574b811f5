// Package repository implements the data access layer.
// This file aggregates the repositories for dependency injection.
package repository

import (
	"gorm.io/gorm"
)

// Repositories aggregates all repository instances. The service layer
// receives this struct and never touches gorm directly.
type Repositories struct {
	db                 *gorm.DB
	User               UserRepository
	Session            SessionRepository
	Conversation       ConversationRepository
	Message            MessageRepository
	AppointmentRequest AppointmentRequestRepository
	Notification       NotificationRepository
}

// NewRepositories wires all repositories onto one gorm instance.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:                 db,
		User:               NewUserRepository(db),
		Session:            NewSessionRepository(db),
		Conversation:       NewConversationRepository(db),
		Message:            NewMessageRepository(db),
		AppointmentRequest: NewAppointmentRequestRepository(db),
		Notification:       NewNotificationRepository(db),
	}
}

// Transaction runs fn inside a database transaction; fn receives a
// Repositories view bound to the transaction. Any error rolls everything
// back.
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
