// Package handler implements the HTTP layer.
// This file handles the session enrichment and summary pipeline endpoints.
package handler

import (
	"github.com/gin-gonic/gin"

	"theracare_server/internal/dto/request"
	"theracare_server/internal/service"
	"theracare_server/pkg/errorx"
)

// SummaryHandler handles the enrichment pipeline endpoints.
type SummaryHandler struct {
	summarySvc service.SummaryService
}

// NewSummaryHandler creates the summary handler.
func NewSummaryHandler(summarySvc service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summarySvc: summarySvc}
}

// UpdateSession partially updates a session's enrichment fields.
// PUT /api/sessions/:sessionId
func (h *SummaryHandler) UpdateSession(c *gin.Context) {
	sessionId := c.Param("sessionId")
	if sessionId == "" {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "session id is required"))
		return
	}

	var req request.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.summarySvc.UpdateSession(sessionId, req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetSummary turns a transcript into a structured summary.
// POST /api/getSummary
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	var req request.GetSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.summarySvc.GetSummary(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetTranscription runs the full pipeline for one recording.
// POST /api/getTranscription
func (h *SummaryHandler) GetTranscription(c *gin.Context) {
	var req request.GetTranscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.summarySvc.Transcribe(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// AppendTranscript appends one spoken line to the room transcript.
// POST /api/transcription
func (h *SummaryHandler) AppendTranscript(c *gin.Context) {
	var req request.AppendTranscriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.summarySvc.AppendTranscript(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
