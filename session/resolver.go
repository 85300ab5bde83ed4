package session

import (
	"context"

	"github.com/chapterhq/portal-server/docstore"
	"github.com/chapterhq/portal-server/internal/config"
	"github.com/chapterhq/portal-server/internal/utils"
	"github.com/chapterhq/portal-server/override"
	"github.com/chapterhq/portal-server/roster"
)

// step transforms an immutable Session into the next one. Resolve is a fixed
// pipeline of steps; each may raise privileges, and only the coherence steps
// reshape previously granted ones.
type step func(Session) Session

// Resolver computes Sessions from an extracted email. The document store is
// optional: with a nil store, resolution degrades to the static allowlists
// (roster and override steps are skipped), never to an error.
type Resolver struct {
	cfg       config.AccessConfig
	docs      docstore.Store
	overrides *override.Store
}

func NewResolver(cfg config.AccessConfig, docs docstore.Store) *Resolver {
	r := &Resolver{cfg: cfg, docs: docs}
	if docs != nil {
		r.overrides = override.NewStore(docs)
	}
	return r
}

// Resolve turns an extracted email into a Session. It never fails: any
// unreadable source behaves as if it were empty, and the worst case is an
// anonymous session.
func (r *Resolver) Resolve(ctx context.Context, email string) Session {
	email = utils.NormalizeEmail(email)
	isFallback := email != "" && email == FallbackPresidentEmail

	s := Session{Email: email, IsAuthenticated: email != ""}

	steps := []step{
		r.staticGrants(isFallback),
		r.siteEditorGrant(),
		r.rosterGrants(ctx, isFallback),
		siteEditorCoherence,
		r.applyOverrides(ctx),
		siteEditorCoherence,
		presidentCoherence,
		fallbackSafetyNet(isFallback),
	}
	for _, apply := range steps {
		s = apply(s)
	}
	return s
}

// staticGrants seeds the role flags from deployment configuration. The static
// allowlist only carries council admins; treasury and president have no
// static source beyond the fallback identity.
func (r *Resolver) staticGrants(isFallback bool) step {
	admins := r.cfg.GetCouncilAdminEmails()
	return func(s Session) Session {
		if !s.IsAuthenticated {
			return s
		}
		s.IsCouncilAdmin = isFallback || contains(admins, s.Email)
		s.IsTreasuryAdmin = isFallback
		s.IsPresident = isFallback
		return s
	}
}

// siteEditorGrant applies the configured editor allowlist. When none is
// configured the effective list is exactly the fallback president, so an
// unconfigured deployment has one editor rather than zero or unlimited.
func (r *Resolver) siteEditorGrant() step {
	editors := r.cfg.GetSiteEditorEmails()
	if len(editors) == 0 {
		editors = []string{FallbackPresidentEmail}
	}
	return func(s Session) Session {
		if !s.IsAuthenticated {
			return s
		}
		s.IsSiteEditor = contains(editors, s.Email)
		return s
	}
}

// rosterGrants makes the leadership roster authoritative, independently per
// category: a category only takes over when it has at least one member, so a
// partially populated roster leaves the untouched categories on their
// static-config values instead of locking everyone out.
func (r *Resolver) rosterGrants(ctx context.Context, isFallback bool) step {
	return func(s Session) Session {
		if !s.IsAuthenticated || r.docs == nil {
			return s
		}
		rost := roster.Read(ctx, r.docs)
		if rost == nil {
			return s
		}
		sets := rost.DeriveSets()
		if len(sets.Leadership) > 0 {
			s.IsCouncilAdmin = sets.Leadership[s.Email] || isFallback
		}
		if len(sets.Treasury) > 0 {
			s.IsTreasuryAdmin = sets.Treasury[s.Email] || isFallback
		}
		if len(sets.President) > 0 {
			s.IsPresident = sets.President[s.Email] || isFallback
		}
		return s
	}
}

// applyOverrides replaces each computed flag with its forced value, if one is
// stored for this email. Inherit leaves the computed flag alone.
func (r *Resolver) applyOverrides(ctx context.Context) step {
	return func(s Session) Session {
		if !s.IsAuthenticated || r.overrides == nil {
			return s
		}
		entry, ok := r.overrides.Find(ctx, s.Email)
		if !ok {
			return s
		}
		s.IsCouncilAdmin = entry.CouncilAdmin.Apply(s.IsCouncilAdmin)
		s.IsTreasuryAdmin = entry.TreasuryAdmin.Apply(s.IsTreasuryAdmin)
		s.IsSiteEditor = entry.SiteEditor.Apply(s.IsSiteEditor)
		s.IsPresident = entry.President.Apply(s.IsPresident)
		return s
	}
}

// siteEditorCoherence: an editor can always administer the content they edit.
func siteEditorCoherence(s Session) Session {
	if s.IsSiteEditor {
		s.IsCouncilAdmin = true
	}
	return s
}

// presidentCoherence: president is the maximal role. Runs after overrides so
// a forced president flag cannot leave the lesser roles behind.
func presidentCoherence(s Session) Session {
	if s.IsPresident {
		s.IsCouncilAdmin = true
		s.IsTreasuryAdmin = true
		s.IsSiteEditor = true
	}
	return s
}

// fallbackSafetyNet forces every role for the break-glass identity. This is
// the one rule nothing stored can weaken.
func fallbackSafetyNet(isFallback bool) step {
	return func(s Session) Session {
		if !isFallback {
			return s
		}
		s.IsCouncilAdmin = true
		s.IsTreasuryAdmin = true
		s.IsSiteEditor = true
		s.IsPresident = true
		return s
	}
}

func contains(list []string, email string) bool {
	for _, e := range list {
		if e == email {
			return true
		}
	}
	return false
}
