// Package respond defines the HTTP response payloads.
// This file holds the messaging views.
package respond

// ContactRespond is one entry in the messaging contact list.
type ContactRespond struct {
	UserId         string `json:"userId"`
	Name           string `json:"name"`
	ConversationId string `json:"conversationId"`
	LastMessage    string `json:"lastMessage,omitempty"`
	// LastMessageAt is RFC 3339, empty when no message has been sent.
	LastMessageAt string `json:"lastMessageAt,omitempty"`
	UnreadCount   int    `json:"unreadCount"`
}

// MessageRespond is one chat message.
type MessageRespond struct {
	// MessageId is the snowflake id as a string to survive JS number
	// precision.
	MessageId string `json:"messageId"`
	SenderId  string `json:"senderId"`
	Text      string `json:"text"`
	Read      bool   `json:"read"`
	SentAt    string `json:"sentAt"`
}

// OpenConversationRespond reports what the open/read reset touched.
type OpenConversationRespond struct {
	MessagesMarkedRead int64 `json:"messagesMarkedRead"`
}
