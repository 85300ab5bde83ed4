package treasury

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

func (r *SQLRepo) Append(ctx context.Context, transactions []Transaction) error {
	query := r.db.Rebind(
		`INSERT INTO treasury_transactions (id, tx_date, description, amount_cents, category, source, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	for _, t := range transactions {
		_, err := r.db.ExecContext(ctx, query,
			t.ID, t.Date, t.Description, t.AmountCents, t.Category, t.Source, t.CreatedAt.UTC())
		if err != nil {
			return fmt.Errorf("append transaction: %w", err)
		}
	}
	return nil
}

// List returns the most recent transactions by transaction date.
func (r *SQLRepo) List(ctx context.Context, limit int) ([]Transaction, error) {
	if limit <= 0 {
		limit = 200
	}
	query := r.db.Rebind(
		`SELECT id, tx_date, description, amount_cents, category, source, created_at
		 FROM treasury_transactions ORDER BY tx_date DESC, created_at DESC LIMIT ?`)
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]Transaction, 0)
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.Date, &t.Description, &t.AmountCents, &t.Category, &t.Source, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}
