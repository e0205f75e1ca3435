package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ahsasnagar11/typeshit3/internal/domain/model"
)

type ChatRepo struct {
	pool *pgxpool.Pool
}

func NewChatRepo(pool *pgxpool.Pool) *ChatRepo {
	return &ChatRepo{pool: pool}
}

func (r *ChatRepo) Insert(ctx context.Context, msg model.Message) (model.Message, error) {
	if r.pool == nil {
		return model.Message{}, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(msg.ID) == "" {
		return model.Message{}, fmt.Errorf("message id is required")
	}

	var clientMsgID *string
	if strings.TrimSpace(msg.ClientMsgID) != "" {
		clientMsgID = &msg.ClientMsgID
	}

	err := r.pool.QueryRow(ctx, `
INSERT INTO messages (
	id,
	client_msg_id,
	sender_id,
	receiver_id,
	body,
	created_at
) VALUES ($1, $2, $3, $4, $5, $6)
RETURNING seq, created_at
`,
		msg.ID,
		clientMsgID,
		msg.SenderID,
		msg.ReceiverID,
		msg.Body,
		msg.Timestamp,
	).Scan(&msg.Seq, &msg.Timestamp)
	if err != nil {
		return model.Message{}, fmt.Errorf("insert message: %w", err)
	}

	return msg, nil
}

// ListConversation returns the full history between two users,
// direction-agnostic, ascending by timestamp with insertion order
// breaking ties. No pagination: history is returned whole.
func (r *ChatRepo) ListConversation(ctx context.Context, userA, userB string) ([]model.Message, error) {
	if r.pool == nil {
		return []model.Message{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, COALESCE(client_msg_id, ''), sender_id, receiver_id, body, created_at, seq
FROM messages
WHERE
	(sender_id = $1 AND receiver_id = $2)
	OR (sender_id = $2 AND receiver_id = $1)
ORDER BY created_at ASC, seq ASC
`, userA, userB)
	if err != nil {
		return nil, fmt.Errorf("list conversation: %w", err)
	}
	defer rows.Close()

	messages := make([]model.Message, 0, 64)
	for rows.Next() {
		var msg model.Message
		if err := rows.Scan(
			&msg.ID,
			&msg.ClientMsgID,
			&msg.SenderID,
			&msg.ReceiverID,
			&msg.Body,
			&msg.Timestamp,
			&msg.Seq,
		); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, msg)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate conversation: %w", rows.Err())
	}

	return messages, nil
}
