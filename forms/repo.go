// Package forms stores member-submitted form payloads append-only.
package forms

import (
	"context"
	"encoding/json"
	"time"
)

type Submission struct {
	ID          string          `json:"id"`
	Form        string          `json:"form"`
	SubmittedBy string          `json:"submittedBy"`
	Payload     json.RawMessage `json:"payload"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type Repo interface {
	Append(ctx context.Context, submission Submission) error
	List(ctx context.Context, form string, limit int) ([]Submission, error)
}
