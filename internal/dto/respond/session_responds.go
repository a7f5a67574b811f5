// Package respond defines the HTTP response payloads.
package respond

// SessionRespond is the full session view returned to either dashboard.
type SessionRespond struct {
	SessionId   string `json:"sessionId"`
	PatientId   string `json:"patientId"`
	TherapistId string `json:"therapistId"`

	// SessionDate is RFC 3339.
	SessionDate string `json:"sessionDate"`
	Status      string `json:"status"`

	// Classification is past, inProgress or upcoming, derived from
	// SessionDate and the time of the request. Display only.
	Classification string `json:"classification"`

	Mood     string `json:"mood,omitempty"`
	Progress string `json:"progress,omitempty"`

	Summary      string   `json:"summary,omitempty"`
	ShortSummary string   `json:"shortSummary,omitempty"`
	KeyPoints    []string `json:"keyPoints,omitempty"`
	Insights     []string `json:"insights,omitempty"`
	Goals        []string `json:"goals,omitempty"`
	Warnings     []string `json:"warnings,omitempty"`
	Advice       []string `json:"advice,omitempty"`

	Transcript         string `json:"transcript,omitempty"`
	JournalingPrompt   string `json:"journalingPrompt,omitempty"`
	JournalingResponse string `json:"journalingResponse,omitempty"`

	// CounterpartName is the display name of the other participant, from
	// the caller's point of view.
	CounterpartName string `json:"counterpartName,omitempty"`
}

// DashboardRespond bundles the derived views for a dashboard header.
type DashboardRespond struct {
	// NextSession is the soonest future scheduled session, or null.
	NextSession *SessionRespond `json:"nextSession"`
	// PreviousSession is the most recent session at or before now, or null.
	PreviousSession *SessionRespond `json:"previousSession"`
	// Upcoming lists future scheduled sessions, soonest first.
	Upcoming []SessionRespond `json:"upcoming"`
}
