package docstore

import (
	"context"
	dbsql "database/sql"
	"fmt"
	"time"

	"github.com/chapterhq/portal-server/internal/db"
	"github.com/chapterhq/portal-server/internal/errors"
)

var _ Store = (*SQL)(nil)

// SQL stores documents in the shared relational database.
type SQL struct {
	db *db.DB
}

func NewSQL(database *db.DB) *SQL {
	return &SQL{db: database}
}

func (s *SQL) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	query := s.db.Rebind(`SELECT doc_value FROM documents WHERE doc_key = ?`)
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err == dbsql.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document %q: %w", key, err)
	}
	return []byte(value), nil
}

func (s *SQL) Put(ctx context.Context, key string, value []byte) error {
	query := s.db.Rebind(
		`INSERT INTO documents (doc_key, doc_value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT (doc_key) DO UPDATE SET doc_value = excluded.doc_value, updated_at = excluded.updated_at`)
	if _, err := s.db.ExecContext(ctx, query, key, string(value), time.Now().UTC()); err != nil {
		return fmt.Errorf("put document %q: %w", key, err)
	}
	return nil
}
