// Package override persists manual per-user role corrections. Each entry is
// tri-state per role: an unset flag inherits the computed value, a set flag
// forces it. Overrides let an operator correct role assignment without a
// redeploy.
package override

import (
	"bytes"
	"encoding/json"

	"github.com/chapterhq/portal-server/internal/utils"
)

// Flag is a tri-state role override.
type Flag int

const (
	Inherit Flag = iota
	ForceTrue
	ForceFalse
)

// Apply returns the overridden value: Inherit keeps the computed value, the
// force states replace it.
func (f Flag) Apply(computed bool) bool {
	switch f {
	case ForceTrue:
		return true
	case ForceFalse:
		return false
	default:
		return computed
	}
}

// MarshalJSON writes true/false for the force states and null for Inherit,
// matching the stored document shape.
func (f Flag) MarshalJSON() ([]byte, error) {
	switch f {
	case ForceTrue:
		return []byte("true"), nil
	case ForceFalse:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts boolean literals and the strings "true"/"false".
// Anything else, including null, means Inherit. Parsing happens here at the
// store boundary only; downstream code never sees raw values.
func (f *Flag) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "true", `"true"`:
		*f = ForceTrue
	case "false", `"false"`:
		*f = ForceFalse
	default:
		*f = Inherit
	}
	return nil
}

// Entry is one per-user correction. Note, UpdatedAt and UpdatedBy are audit
// metadata only; resolution never consults them.
type Entry struct {
	Email         string `json:"email"`
	CouncilAdmin  Flag   `json:"isCouncilAdmin"`
	TreasuryAdmin Flag   `json:"isTreasuryAdmin"`
	SiteEditor    Flag   `json:"isSiteEditor"`
	President     Flag   `json:"isPresident"`
	Note          string `json:"note,omitempty"`
	UpdatedAt     string `json:"updatedAt,omitempty"`
	UpdatedBy     string `json:"updatedBy,omitempty"`
}

// Document is the stored collection plus the stamp of its last write.
type Document struct {
	Entries   []Entry `json:"entries"`
	UpdatedAt string  `json:"updatedAt,omitempty"`
	UpdatedBy string  `json:"updatedBy,omitempty"`
}

// sanitize normalizes emails, drops entries without a resolvable email and
// keeps at most one entry per email (the last occurrence wins, matching the
// upsert-by-email semantics of the write path).
func sanitize(entries []Entry) []Entry {
	byEmail := make(map[string]int)
	clean := make([]Entry, 0, len(entries))
	for _, e := range entries {
		email := utils.NormalizeEmail(e.Email)
		if email == "" {
			continue
		}
		e.Email = email
		if i, seen := byEmail[email]; seen {
			clean[i] = e
			continue
		}
		byEmail[email] = len(clean)
		clean = append(clean, e)
	}
	return clean
}

// ensure Flag round-trips through encoding/json
var (
	_ json.Marshaler   = Flag(0)
	_ json.Unmarshaler = (*Flag)(nil)
)
