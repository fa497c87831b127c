package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ngvyshop/chatorder-api/internal/domain/entity"
	"github.com/ngvyshop/chatorder-api/internal/domain/repository"
)

var _ repository.MessageRepository = (*MessageRepo)(nil)

// MessageRepo implements MessageRepository (usable with pool or tx).
type MessageRepo struct {
	q Querier
}

// NewMessageRepository builds the adapter.
func NewMessageRepository(q Querier) *MessageRepo {
	return &MessageRepo{q: q}
}

const messageColumns = `id, sender_id, recipient_id, ts, text, conversation_id, platform_msg_id, seq, attachments, quick_reply, is_echo, created_at`

// Insert stores one inbound message.
func (r *MessageRepo) Insert(m *entity.Message) error {
	attachments, err := json.Marshal(m.Attachments)
	if err != nil {
		return fmt.Errorf("marshal attachments: %w", err)
	}
	query := `
		INSERT INTO messages (` + messageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.q.Exec(context.Background(), query,
		m.ID, m.SenderID, m.RecipientID, m.Timestamp, m.Text, m.ConversationID,
		m.PlatformMsgID, m.Seq, attachments, m.QuickReply, m.IsEcho, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// LatestTextBySender returns the sender's most recent non-empty text message
// created at or after since, or nil.
func (r *MessageRepo) LatestTextBySender(senderID string, since time.Time) (*entity.Message, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE sender_id = $1 AND created_at >= $2 AND text <> ''
		ORDER BY created_at DESC
		LIMIT 1`
	m, err := scanMessage(r.q.QueryRow(context.Background(), query, senderID, since))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest text by sender: %w", err)
	}
	return m, nil
}

// List returns messages newest first with the total count for the filter.
func (r *MessageRepo) List(conversationID string, limit, offset int) ([]*entity.Message, int, error) {
	ctx := context.Background()

	where := ``
	args := []any{limit, offset}
	countArgs := []any{}
	if conversationID != "" {
		where = `WHERE conversation_id = $3`
		args = append(args, conversationID)
		countArgs = append(countArgs, conversationID)
	}

	query := `
		SELECT ` + messageColumns + `
		FROM messages ` + where + `
		ORDER BY ts DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var list []*entity.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan message: %w", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := `SELECT COUNT(*) FROM messages`
	if conversationID != "" {
		countQuery += ` WHERE conversation_id = $1`
	}
	var total int
	if err := r.q.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count messages: %w", err)
	}
	return list, total, nil
}

func scanMessage(row pgx.Row) (*entity.Message, error) {
	var m entity.Message
	var attachments []byte
	err := row.Scan(
		&m.ID, &m.SenderID, &m.RecipientID, &m.Timestamp, &m.Text, &m.ConversationID,
		&m.PlatformMsgID, &m.Seq, &attachments, &m.QuickReply, &m.IsEcho, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(attachments) > 0 {
		if err := json.Unmarshal(attachments, &m.Attachments); err != nil {
			return nil, fmt.Errorf("unmarshal attachments: %w", err)
		}
	}
	return &m, nil
}
