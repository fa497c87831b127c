package repository

import (
	"time"

	"github.com/ngvyshop/chatorder-api/internal/domain/entity"
)

// MessageRepository is the persistence port for inbound messages (append-only).
type MessageRepository interface {
	Insert(m *entity.Message) error
	// LatestTextBySender returns the sender's most recent message with a
	// non-empty text body created at or after since, or nil if none exists.
	LatestTextBySender(senderID string, since time.Time) (*entity.Message, error)
	// List returns messages newest first, optionally filtered by conversation,
	// along with the total count for the filter.
	List(conversationID string, limit, offset int) ([]*entity.Message, int, error)
}
