// Package handler implements the HTTP layer.
// This file handles the dashboard and session view endpoints.
package handler

import (
	"github.com/gin-gonic/gin"

	"theracare_server/internal/dto/request"
	"theracare_server/internal/service"
)

// ScheduleHandler handles the derived session views.
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler creates the schedule handler.
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// Dashboard returns next/previous/upcoming for one user.
// GET /schedule/dashboard?userId=
func (h *ScheduleHandler) Dashboard(c *gin.Context) {
	var req request.DashboardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.scheduleSvc.Dashboard(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// TodaySchedule returns a therapist's sessions for the current day.
// GET /schedule/today?therapistId=
func (h *ScheduleHandler) TodaySchedule(c *gin.Context) {
	var req request.TodayScheduleRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.scheduleSvc.TodaySchedule(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// SessionList returns all of a user's sessions.
// GET /schedule/sessions?userId=
func (h *ScheduleHandler) SessionList(c *gin.Context) {
	var req request.SessionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.scheduleSvc.SessionList(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// SessionDetail returns one session.
// GET /schedule/session?sessionId=
func (h *ScheduleHandler) SessionDetail(c *gin.Context) {
	var req request.SessionDetailRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.scheduleSvc.SessionDetail(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
