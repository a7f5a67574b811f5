package constants

import "time"

const (
	CHANNEL_SIZE  = 100  // event channel buffer size
	REDIS_TIMEOUT = 1    // cache TTL (minutes)
	MESSAGE_LIMIT = 2000 // max message body length

	// SESSION_DURATION is the length of one therapy appointment. A session is
	// considered in progress for exactly this window after its start time.
	SESSION_DURATION = time.Hour

	// REMINDER_WINDOW is how far ahead the notification feed surfaces
	// synthetic reminders for scheduled sessions.
	REMINDER_WINDOW = 24 * time.Hour

	// Bookable slot grid: on-the-hour and half-hour slots between
	// BOOKING_FIRST_HOUR and BOOKING_LAST_HOUR inclusive.
	BOOKING_FIRST_HOUR = 9
	BOOKING_LAST_HOUR  = 17
)
