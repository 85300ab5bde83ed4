// Package roster reads the chapter leadership roster and derives the email
// sets role resolution consults. The roster document is owned by the content
// tooling; this package only reads it.
package roster

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/chapterhq/portal-server/docstore"
	"github.com/chapterhq/portal-server/internal/errors"
	"github.com/chapterhq/portal-server/internal/utils"
)

// Titles that make a member eligible for treasury access. The president title
// additionally marks president eligibility. Comparison is case and whitespace
// insensitive.
const (
	titlePresident          = "president"
	titleTreasurer          = "treasurer"
	titleFinancialSecretary = "financial secretary"
)

type Member struct {
	Email   string `json:"email"`
	Title   string `json:"title"`
	Name    string `json:"name,omitempty"`
	Chapter string `json:"chapter,omitempty"`
}

type Roster struct {
	ExecutiveBoard   []Member `json:"executiveBoard"`
	AdditionalChairs []Member `json:"additionalChairs"`
}

// Sets are the derived email sets. A nil/empty set means the roster carries
// no data for that category and the caller should keep its prior grants.
type Sets struct {
	Leadership map[string]bool
	Treasury   map[string]bool
	President  map[string]bool
}

// Read loads the roster document. Absence, unreadable storage and malformed
// JSON all yield nil: an unavailable roster must never lock anyone out, it
// only means "fall back to static configuration".
func Read(ctx context.Context, store docstore.Store) *Roster {
	if store == nil {
		return nil
	}
	raw, err := store.Get(ctx, docstore.KeyLeadership)
	if err != nil {
		if !errors.Is(err, errors.ErrNotFound) {
			log.Warn().Err(err).Msg("leadership roster read failed, using static config")
		}
		return nil
	}
	var r Roster
	if err := json.Unmarshal(raw, &r); err != nil {
		log.Warn().Err(err).Msg("leadership roster is malformed, using static config")
		return nil
	}
	return &r
}

// Members returns the executive board followed by the additional chairs.
func (r *Roster) Members() []Member {
	if r == nil {
		return nil
	}
	members := make([]Member, 0, len(r.ExecutiveBoard)+len(r.AdditionalChairs))
	members = append(members, r.ExecutiveBoard...)
	members = append(members, r.AdditionalChairs...)
	return members
}

// DeriveSets computes the three email sets. Every titled member counts as
// leadership; treasury and president membership depend on the title.
func (r *Roster) DeriveSets() Sets {
	sets := Sets{
		Leadership: make(map[string]bool),
		Treasury:   make(map[string]bool),
		President:  make(map[string]bool),
	}
	for _, m := range r.Members() {
		email := utils.NormalizeEmail(m.Email)
		if email == "" {
			continue
		}
		sets.Leadership[email] = true

		switch utils.NormalizeTitle(m.Title) {
		case titlePresident:
			sets.Treasury[email] = true
			sets.President[email] = true
		case titleTreasurer, titleFinancialSecretary:
			sets.Treasury[email] = true
		}
	}
	return sets
}
