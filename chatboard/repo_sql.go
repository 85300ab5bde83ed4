package chatboard

import (
	"context"
	"fmt"

	"github.com/chapterhq/portal-server/internal/db"
)

var _ Repo = (*SQLRepo)(nil)

type SQLRepo struct {
	db *db.DB
}

func NewSQLRepo(database *db.DB) *SQLRepo {
	return &SQLRepo{db: database}
}

func (r *SQLRepo) Append(ctx context.Context, m Message) error {
	query := r.db.Rebind(
		`INSERT INTO chat_messages (id, channel, author, body, created_at) VALUES (?, ?, ?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, query, m.ID, m.Channel, m.Author, m.Body, m.CreatedAt.UTC()); err != nil {
		return fmt.Errorf("append chat message: %w", err)
	}
	return nil
}

// List returns the newest messages first.
func (r *SQLRepo) List(ctx context.Context, channel string, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 50
	}
	query := r.db.Rebind(
		`SELECT id, channel, author, body, created_at FROM chat_messages
		 WHERE channel = ? ORDER BY created_at DESC LIMIT ?`)
	rows, err := r.db.QueryContext(ctx, query, channel, limit)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	defer rows.Close()

	messages := make([]Message, 0)
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Channel, &m.Author, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
