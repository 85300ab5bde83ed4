// Package session resolves who is making a request and what they may do.
// A Session is computed fresh for every request from the extracted identity,
// the static allowlists, the leadership roster and the access overrides, and
// is discarded when the request completes.
package session

import "context"

// FallbackPresidentEmail is the break-glass identity: this account always
// resolves with every role, no matter what the roster, allowlists or
// overrides say, so an empty or misconfigured deployment can still be
// administered. The tradeoff is that anyone able to present this email
// through a trusted identity signal gains full access; the perimeter proxy's
// header-stripping guarantees are what make that safe.
const FallbackPresidentEmail = "president@chapterhq.org"

// Session is the per-request identity and capability record. Every guarded
// surface in the portal checks these booleans and nothing else.
type Session struct {
	Email           string `json:"email"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	IsCouncilAdmin  bool   `json:"isCouncilAdmin"`
	IsTreasuryAdmin bool   `json:"isTreasuryAdmin"`
	IsSiteEditor    bool   `json:"isSiteEditor"`
	IsPresident     bool   `json:"isPresident"`
}

// Anonymous is the zero-value session: logged out, no roles. It is the
// worst-case output of resolution, never an error.
func Anonymous() Session {
	return Session{}
}

type contextKey string

const sessionContextKey contextKey = "portal_session"

// NewContext returns a context carrying the resolved session.
func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, s)
}

// FromContext extracts the session resolved by the middleware. A request
// that never went through resolution reads as anonymous.
func FromContext(ctx context.Context) Session {
	s, ok := ctx.Value(sessionContextKey).(Session)
	if !ok {
		return Anonymous()
	}
	return s
}
