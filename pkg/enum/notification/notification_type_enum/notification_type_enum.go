// Package notification_type_enum defines the alert categories surfaced in the
// notification feed.
package notification_type_enum

const (
	SESSION     = "session"
	JOURNAL     = "journal"
	MESSAGE     = "message"
	APPOINTMENT = "appointment"
	REMINDER    = "reminder"
	SYSTEM      = "system"
)

// IsValid reports whether t is a known notification type.
func IsValid(t string) bool {
	switch t {
	case SESSION, JOURNAL, MESSAGE, APPOINTMENT, REMINDER, SYSTEM:
		return true
	default:
		return false
	}
}
