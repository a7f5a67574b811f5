// Package respond defines the HTTP response payloads.
// This file holds the appointment request views.
package respond

// AppointmentRequestRespond is one pending/handled booking proposal.
type AppointmentRequestRespond struct {
	RequestId   string `json:"requestId"`
	PatientId   string `json:"patientId"`
	PatientName string `json:"patientName,omitempty"`
	TherapistId string `json:"therapistId"`
	// SessionDate is RFC 3339.
	SessionDate string `json:"sessionDate"`
	Note        string `json:"note,omitempty"`
	Status      string `json:"status"`
}

// BookSessionRespond returns the created session id.
type BookSessionRespond struct {
	SessionId string `json:"sessionId"`
}
