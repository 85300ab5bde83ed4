// Package treasury ingests and normalizes chapter financial transactions.
// Rows arrive from bank exports in whatever shape the treasurer pastes in;
// normalization turns them into dated, categorized, integer-cent records.
package treasury

import (
	"context"
	"time"
)

// RawRow is one transaction as submitted: free-text amount and optional
// category.
type RawRow struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Category    string `json:"category,omitempty"`
}

type Transaction struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"` // YYYY-MM-DD as submitted
	Description string    `json:"description"`
	AmountCents int64     `json:"amountCents"`
	Category    string    `json:"category"`
	Source      string    `json:"source"` // who ingested the row
	CreatedAt   time.Time `json:"createdAt"`
}

type Repo interface {
	Append(ctx context.Context, transactions []Transaction) error
	List(ctx context.Context, limit int) ([]Transaction, error)
}
