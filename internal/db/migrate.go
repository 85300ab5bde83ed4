package db

import (
	"database/sql"
	"fmt"
)

// Schema statements are written to be valid on both sqlite and postgres:
// TEXT primary keys (uuids generated in Go) and TIMESTAMP columns.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		doc_key    TEXT PRIMARY KEY,
		doc_value  TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS form_submissions (
		id           TEXT PRIMARY KEY,
		form         TEXT NOT NULL,
		submitted_by TEXT NOT NULL,
		payload      TEXT NOT NULL,
		created_at   TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_form_submissions_form ON form_submissions (form, created_at)`,
	`CREATE TABLE IF NOT EXISTS chat_messages (
		id         TEXT PRIMARY KEY,
		channel    TEXT NOT NULL,
		author     TEXT NOT NULL,
		body       TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_chat_messages_channel ON chat_messages (channel, created_at)`,
	`CREATE TABLE IF NOT EXISTS treasury_transactions (
		id           TEXT PRIMARY KEY,
		tx_date      TEXT NOT NULL,
		description  TEXT NOT NULL,
		amount_cents BIGINT NOT NULL,
		category     TEXT NOT NULL,
		source       TEXT NOT NULL,
		created_at   TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_treasury_transactions_date ON treasury_transactions (tx_date)`,
}

// Migrate applies the schema. Statements are idempotent, so running at every
// startup is safe.
func Migrate(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
