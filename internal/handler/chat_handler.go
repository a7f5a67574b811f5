// Package handler implements the HTTP layer.
// This file handles the messaging endpoints.
package handler

import (
	"github.com/gin-gonic/gin"

	"theracare_server/internal/dto/request"
	"theracare_server/internal/service"
)

// ChatHandler handles the messaging endpoints.
type ChatHandler struct {
	chatSvc service.ChatService
}

// NewChatHandler creates the chat handler.
func NewChatHandler(chatSvc service.ChatService) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc}
}

// Contacts lists the user's messaging counterparts.
// GET /chat/contacts?userId=
func (h *ChatHandler) Contacts(c *gin.Context) {
	var req request.ContactListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.chatSvc.Contacts(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// OpenConversation marks a conversation read by the opener.
// POST /chat/open
func (h *ChatHandler) OpenConversation(c *gin.Context) {
	var req request.OpenConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.chatSvc.OpenConversation(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// SendMessage sends one message.
// POST /chat/send
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req request.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.chatSvc.SendMessage(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// MessageHistory returns a conversation's messages.
// GET /chat/messages?conversationId=
func (h *ChatHandler) MessageHistory(c *gin.Context) {
	var req request.MessageHistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.chatSvc.MessageHistory(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
