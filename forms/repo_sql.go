package forms

import (
	"context"
	"encoding/json"
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

func (r *SQLRepo) Append(ctx context.Context, s Submission) error {
	query := r.db.Rebind(
		`INSERT INTO form_submissions (id, form, submitted_by, payload, created_at) VALUES (?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query, s.ID, s.Form, s.SubmittedBy, string(s.Payload), s.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("append form submission: %w", err)
	}
	return nil
}

func (r *SQLRepo) List(ctx context.Context, form string, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = 100
	}
	query := r.db.Rebind(
		`SELECT id, form, submitted_by, payload, created_at FROM form_submissions
		 WHERE form = ? ORDER BY created_at DESC LIMIT ?`)
	rows, err := r.db.QueryContext(ctx, query, form, limit)
	if err != nil {
		return nil, fmt.Errorf("list form submissions: %w", err)
	}
	defer rows.Close()

	submissions := make([]Submission, 0)
	for rows.Next() {
		var s Submission
		var payload string
		if err := rows.Scan(&s.ID, &s.Form, &s.SubmittedBy, &payload, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan form submission: %w", err)
		}
		s.Payload = json.RawMessage(payload)
		submissions = append(submissions, s)
	}
	return submissions, rows.Err()
}
