package dto

import "time"

// MessageResponse is one recorded inbound message.
type MessageResponse struct {
	ID             string    `json:"id"`
	SenderID       string    `json:"sender_id"`
	RecipientID    string    `json:"recipient_id"`
	Timestamp      int64     `json:"timestamp"`
	Text           string    `json:"message"`
	ConversationID string    `json:"conversation_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// MessageListResponse is a page of messages, newest first.
type MessageListResponse struct {
	Messages []MessageResponse `json:"messages"`
	Total    int               `json:"total"`
}
