package override_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chapterhq/portal-server/docstore"
	"github.com/chapterhq/portal-server/override"
)

func TestStore_ReadAll(t *testing.T) {
	ctx := context.Background()

	t.Run("absent document reads as empty", func(t *testing.T) {
		s := override.NewStore(docstore.NewMemory())
		require.Empty(t, s.ReadAll(ctx))
	})

	t.Run("malformed document reads as empty", func(t *testing.T) {
		docs := docstore.NewMemory()
		require.NoError(t, docs.Put(ctx, docstore.KeyAccessOverrides, []byte(`{not json`)))
		require.Empty(t, override.NewStore(docs).ReadAll(ctx))
	})

	t.Run("nil backing store reads as empty", func(t *testing.T) {
		s := override.NewStore(nil)
		require.Empty(t, s.ReadAll(ctx))
	})

	t.Run("tri-state parsing at the boundary", func(t *testing.T) {
		docs := docstore.NewMemory()
		doc := `{"entries":[
			{"email":"a@x.org","isCouncilAdmin":true,"isTreasuryAdmin":false,"isSiteEditor":null},
			{"email":"b@x.org","isCouncilAdmin":"true","isTreasuryAdmin":"false","isSiteEditor":"banana","isPresident":42}
		]}`
		require.NoError(t, docs.Put(ctx, docstore.KeyAccessOverrides, []byte(doc)))

		entries := override.NewStore(docs).ReadAll(ctx)
		require.Len(t, entries, 2)

		require.Equal(t, override.ForceTrue, entries[0].CouncilAdmin)
		require.Equal(t, override.ForceFalse, entries[0].TreasuryAdmin)
		require.Equal(t, override.Inherit, entries[0].SiteEditor)
		require.Equal(t, override.Inherit, entries[0].President, "absent field inherits")

		require.Equal(t, override.ForceTrue, entries[1].CouncilAdmin, "string literals accepted")
		require.Equal(t, override.ForceFalse, entries[1].TreasuryAdmin)
		require.Equal(t, override.Inherit, entries[1].SiteEditor, "unknown strings inherit")
		require.Equal(t, override.Inherit, entries[1].President, "non-boolean values inherit")
	})

	t.Run("entries are normalized and deduplicated", func(t *testing.T) {
		docs := docstore.NewMemory()
		doc := `{"entries":[
			{"email":"  DUP@X.ORG ","isCouncilAdmin":false},
			{"email":""},
			{"email":"   "},
			{"email":"dup@x.org","isCouncilAdmin":true}
		]}`
		require.NoError(t, docs.Put(ctx, docstore.KeyAccessOverrides, []byte(doc)))

		entries := override.NewStore(docs).ReadAll(ctx)
		require.Len(t, entries, 1, "blank emails dropped, duplicates collapsed")
		require.Equal(t, "dup@x.org", entries[0].Email)
		require.Equal(t, override.ForceTrue, entries[0].CouncilAdmin, "last duplicate wins")
	})
}

func TestStore_WriteAll(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 15, 9, 0, 0, time.UTC)

	t.Run("replaces the document and stamps the write", func(t *testing.T) {
		docs := docstore.NewMemory()
		s := override.NewStore(docs, override.WithNowTime(func() time.Time { return now }))

		doc, err := s.WriteAll(ctx, []override.Entry{
			{Email: " Member@X.org ", TreasuryAdmin: override.ForceTrue},
			{Email: ""},
		}, "OPERATOR@x.org")
		require.NoError(t, err)
		require.Equal(t, "operator@x.org", doc.UpdatedBy)
		require.Equal(t, now.Format(time.RFC3339), doc.UpdatedAt)
		require.Len(t, doc.Entries, 1, "write path re-sanitizes input")
		require.Equal(t, "member@x.org", doc.Entries[0].Email)

		// round-trip through storage preserves the tri-state encoding
		raw, err := docs.Get(ctx, docstore.KeyAccessOverrides)
		require.NoError(t, err)
		var stored map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(raw, &stored))
		require.Contains(t, string(stored["entries"]), `"isTreasuryAdmin":true`)
		require.Contains(t, string(stored["entries"]), `"isCouncilAdmin":null`)

		entries := s.ReadAll(ctx)
		require.Len(t, entries, 1)
		require.Equal(t, override.ForceTrue, entries[0].TreasuryAdmin)
		require.Equal(t, override.Inherit, entries[0].CouncilAdmin)
	})

	t.Run("fails without a backing store", func(t *testing.T) {
		s := override.NewStore(nil)
		_, err := s.WriteAll(ctx, nil, "op@x.org")
		require.Error(t, err)
	})
}

func TestStore_Find(t *testing.T) {
	ctx := context.Background()
	docs := docstore.NewMemory()
	require.NoError(t, docs.Put(ctx, docstore.KeyAccessOverrides,
		[]byte(`{"entries":[{"email":"member@x.org","isPresident":true}]}`)))
	s := override.NewStore(docs)

	entry, ok := s.Find(ctx, " MEMBER@x.org ")
	require.True(t, ok)
	require.Equal(t, override.ForceTrue, entry.President)

	_, ok = s.Find(ctx, "nobody@x.org")
	require.False(t, ok)

	_, ok = s.Find(ctx, "")
	require.False(t, ok)
}

func TestFlag_Apply(t *testing.T) {
	require.True(t, override.Inherit.Apply(true))
	require.False(t, override.Inherit.Apply(false))
	require.True(t, override.ForceTrue.Apply(false))
	require.False(t, override.ForceFalse.Apply(true))
}
