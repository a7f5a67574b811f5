// Package request defines the HTTP request payloads.
// This file holds the appointment booking payloads.
package request

// BookSessionRequest books a session directly. Either side can book; the
// counterpart must hold the opposite role. Date is "2006-01-02"; the slot
// grid is enforced by the service (hours 9-17, minutes 0 or 30).
type BookSessionRequest struct {
	BookerId      string `json:"bookerId" binding:"required"`
	CounterpartId string `json:"counterpartId"`
	Date          string `json:"date" binding:"required"`
	Hour          int    `json:"hour" binding:"min=0,max=23"`
	Minute        int    `json:"minute" binding:"min=0,max=59"`

	// SessionType is optional free text ("initial consult", "follow-up").
	SessionType string `json:"sessionType"`
}

// SubmitAppointmentRequest files a patient's booking proposal for therapist
// review.
type SubmitAppointmentRequest struct {
	PatientId   string `json:"patientId" binding:"required"`
	TherapistId string `json:"therapistId" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Hour        int    `json:"hour" binding:"min=0,max=23"`
	Minute      int    `json:"minute" binding:"min=0,max=59"`
	Note        string `json:"note"`
}

// HandleAppointmentRequest confirms or declines a pending request.
type HandleAppointmentRequest struct {
	TherapistId string `json:"therapistId" binding:"required"`
	RequestId   string `json:"requestId" binding:"required"`
}

// PendingRequestsRequest lists a therapist's pending requests.
type PendingRequestsRequest struct {
	TherapistId string `form:"therapistId" binding:"required"`
}
