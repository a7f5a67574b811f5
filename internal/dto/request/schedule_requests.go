// Package request defines the HTTP request payloads.
// This file holds the dashboard/schedule query payloads.
package request

// DashboardRequest asks for a user's derived session views.
type DashboardRequest struct {
	UserId string `form:"userId" binding:"required"`
}

// TodayScheduleRequest asks for a therapist's schedule for the current day.
type TodayScheduleRequest struct {
	TherapistId string `form:"therapistId" binding:"required"`
}

// SessionListRequest asks for all of a user's sessions.
type SessionListRequest struct {
	UserId string `form:"userId" binding:"required"`
}

// SessionDetailRequest asks for one session.
type SessionDetailRequest struct {
	SessionId string `form:"sessionId" binding:"required"`
}

// UpdateSessionRequest partially updates a session's enrichment fields.
// Pointers distinguish "absent" from "set to empty"; at least one field must
// be present or the update is rejected.
type UpdateSessionRequest struct {
	Status             *string   `json:"status"`
	Mood               *string   `json:"mood"`
	Progress           *string   `json:"progress"`
	Summary            *string   `json:"summary"`
	ShortSummary       *string   `json:"shortSummary"`
	KeyPoints          *[]string `json:"keyPoints"`
	Insights           *[]string `json:"insights"`
	Goals              *[]string `json:"goals"`
	Warnings           *[]string `json:"warnings"`
	Advice             *[]string `json:"advice"`
	Transcript         *string   `json:"transcript"`
	JournalingPrompt   *string   `json:"journalingPrompt"`
	JournalingResponse *string   `json:"journalingResponse"`
}
