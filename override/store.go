package override

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/chapterhq/portal-server/docstore"
	"github.com/chapterhq/portal-server/internal/errors"
	"github.com/chapterhq/portal-server/internal/utils"
)

// Store reads and writes the override collection as a single document under
// docstore.KeyAccessOverrides.
//
// The write path is a full-document replace with last-writer-wins semantics:
// there is no version token, so two concurrent operators can lose an update.
// Accepted tradeoff for a single-operator, low-frequency surface.
type Store struct {
	docs    docstore.Store
	nowTime func() time.Time
}

type StoreOption func(*Store)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) StoreOption {
	return func(s *Store) {
		s.nowTime = nowFunc
	}
}

func NewStore(docs docstore.Store, options ...StoreOption) *Store {
	s := &Store{docs: docs, nowTime: time.Now}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// ReadAll returns the sanitized override entries. An absent document,
// unreadable storage or malformed JSON all return an empty list; overrides
// are an optional correction layer and must never fail resolution.
func (s *Store) ReadAll(ctx context.Context) []Entry {
	if s == nil || s.docs == nil {
		return []Entry{}
	}
	raw, err := s.docs.Get(ctx, docstore.KeyAccessOverrides)
	if err != nil {
		if !errors.Is(err, errors.ErrNotFound) {
			log.Warn().Err(err).Msg("access override read failed, resolving without overrides")
		}
		return []Entry{}
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		log.Warn().Err(err).Msg("access override document is malformed, resolving without overrides")
		return []Entry{}
	}
	return sanitize(doc.Entries)
}

// Find returns the entry for the given email, if any. Absence means
// "no override, inherit the computed flags".
func (s *Store) Find(ctx context.Context, email string) (Entry, bool) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return Entry{}, false
	}
	for _, e := range s.ReadAll(ctx) {
		if e.Email == email {
			return e, true
		}
	}
	return Entry{}, false
}

// WriteAll re-sanitizes the input, replaces the whole document and stamps the
// write with the acting operator and a server-generated timestamp. Callers
// must read-modify-write the complete list; this is not an incremental patch.
func (s *Store) WriteAll(ctx context.Context, entries []Entry, actorEmail string) (Document, error) {
	if s.docs == nil {
		return Document{}, errors.ErrStoreUnavailable
	}
	doc := Document{
		Entries:   sanitize(entries),
		UpdatedAt: s.nowTime().UTC().Format(time.RFC3339),
		UpdatedBy: utils.NormalizeEmail(actorEmail),
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return Document{}, errors.Wrapf(err, "marshal access overrides")
	}
	if err := s.docs.Put(ctx, docstore.KeyAccessOverrides, raw); err != nil {
		return Document{}, errors.Wrapf(err, "write access overrides")
	}
	return doc, nil
}
