// Package session_status_enum defines the canonical therapy session states.
//
// The stored vocabulary is scheduled/completed/cancelled. Older clients still
// send "upcoming" for a freshly booked session; Normalize maps it to SCHEDULED
// at the dto boundary so only the canonical values reach the database.
package session_status_enum

const (
	SCHEDULED = "scheduled"
	COMPLETED = "completed"
	CANCELLED = "cancelled"

	// LegacyUpcoming is accepted on input only, never stored.
	LegacyUpcoming = "upcoming"
)

// Normalize maps an incoming status string to a canonical value.
// The second return value is false for unknown statuses.
func Normalize(status string) (string, bool) {
	switch status {
	case SCHEDULED, LegacyUpcoming:
		return SCHEDULED, true
	case COMPLETED:
		return COMPLETED, true
	case CANCELLED:
		return CANCELLED, true
	default:
		return "", false
	}
}

// IsTerminal reports whether a session in this state can no longer change.
func IsTerminal(status string) bool {
	return status == COMPLETED || status == CANCELLED
}
