// Package request_status_enum defines appointment request states.
package request_status_enum

const (
	PENDING   = "pending"   // waiting for the therapist
	CONFIRMED = "confirmed" // promoted to a session
	DECLINED  = "declined"
)
