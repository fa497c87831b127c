package usecase

import (
	"fmt"

	"github.com/ngvyshop/chatorder-api/internal/application/dto"
	"github.com/ngvyshop/chatorder-api/internal/domain/repository"
)

// MessageUseCase read side of the recorded inbound messages.
type MessageUseCase struct {
	messages repository.MessageRepository
}

// NewMessageUseCase wires message reads.
func NewMessageUseCase(messages repository.MessageRepository) *MessageUseCase {
	return &MessageUseCase{messages: messages}
}

// List returns a page of messages, newest first, optionally filtered by
// conversation.
func (uc *MessageUseCase) List(conversationID string, limit, offset int) (*dto.MessageListResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	messages, total, err := uc.messages.List(conversationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	out := &dto.MessageListResponse{
		Messages: make([]dto.MessageResponse, 0, len(messages)),
		Total:    total,
	}
	for _, m := range messages {
		out.Messages = append(out.Messages, dto.MessageResponse{
			ID:             m.ID,
			SenderID:       m.SenderID,
			RecipientID:    m.RecipientID,
			Timestamp:      m.Timestamp,
			Text:           m.Text,
			ConversationID: m.ConversationID,
			CreatedAt:      m.CreatedAt,
		})
	}
	return out, nil
}
