// Package docstore persists named JSON documents: the leadership roster, the
// access-override collection and content sections are each a single document
// under a fixed key.
package docstore

import "context"

// Well-known document keys.
const (
	KeyLeadership      = "chapter_leadership"
	KeyAccessOverrides = "access_overrides"

	contentKeyPrefix = "content_"
)

// ContentKey returns the document key for a named content section.
func ContentKey(section string) string {
	return contentKeyPrefix + section
}

// Store is a keyed document store. Get returns errors.ErrNotFound when no
// document exists under the key; Put replaces the whole document.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}
