// Package request defines the HTTP request payloads.
// This file holds the messaging payloads.
package request

// ContactListRequest asks for a user's messaging contacts.
type ContactListRequest struct {
	UserId string `form:"userId" binding:"required"`
}

// OpenConversationRequest marks a conversation as read by the opener.
type OpenConversationRequest struct {
	UserId         string `json:"userId" binding:"required"`
	ConversationId string `json:"conversationId" binding:"required"`
}

// SendMessageRequest sends one chat message.
type SendMessageRequest struct {
	SenderId       string `json:"senderId" binding:"required"`
	ConversationId string `json:"conversationId" binding:"required"`
	Text           string `json:"text" binding:"required"`
}

// MessageHistoryRequest asks for a conversation's messages.
type MessageHistoryRequest struct {
	ConversationId string `form:"conversationId" binding:"required"`
}
