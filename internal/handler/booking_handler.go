// Package handler implements the HTTP layer.
// This file handles the booking endpoints.
package handler

import (
	"github.com/gin-gonic/gin"

	"theracare_server/internal/dto/request"
	"theracare_server/internal/service"
)

// BookingHandler handles the direct booking and request/confirm endpoints.
type BookingHandler struct {
	bookingSvc service.BookingService
}

// NewBookingHandler creates the booking handler.
func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

// BookSession books a session directly.
// POST /booking/book
func (h *BookingHandler) BookSession(c *gin.Context) {
	var req request.BookSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.bookingSvc.BookSession(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// SubmitRequest files a patient's proposal.
// POST /booking/request
func (h *BookingHandler) SubmitRequest(c *gin.Context) {
	var req request.SubmitAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.bookingSvc.SubmitRequest(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ConfirmRequest promotes a pending request to a session.
// POST /booking/confirm
func (h *BookingHandler) ConfirmRequest(c *gin.Context) {
	var req request.HandleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.bookingSvc.ConfirmRequest(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// DeclineRequest rejects a pending request.
// POST /booking/decline
func (h *BookingHandler) DeclineRequest(c *gin.Context) {
	var req request.HandleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.bookingSvc.DeclineRequest(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// PendingRequests lists a therapist's pending requests.
// GET /booking/pending?therapistId=
func (h *BookingHandler) PendingRequests(c *gin.Context) {
	var req request.PendingRequestsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.bookingSvc.PendingRequests(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
