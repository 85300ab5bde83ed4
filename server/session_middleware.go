package server

import (
	"net/http"

	"github.com/chapterhq/portal-server/session"
)

// SessionMiddleware extracts the caller's identity and resolves it into a
// Session stored on the request context. Resolution never fails; the worst
// case is an anonymous session, so this middleware can sit on every route,
// public ones included.
func (s *Server) SessionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := s.extractor.Extract(r)
		sess := s.resolver.Resolve(r.Context(), email)
		next(w, r.WithContext(session.NewContext(r.Context(), sess)))
	}
}

// RequireAuthenticated rejects anonymous requests.
func (s *Server) RequireAuthenticated() func(http.HandlerFunc) http.HandlerFunc {
	return s.requireRole(func(sess session.Session) bool { return sess.IsAuthenticated })
}

// RequireCouncilAdmin guards general administrative surfaces.
func (s *Server) RequireCouncilAdmin() func(http.HandlerFunc) http.HandlerFunc {
	return s.requireRole(func(sess session.Session) bool { return sess.IsCouncilAdmin })
}

// RequireTreasuryAdmin guards financial surfaces.
func (s *Server) RequireTreasuryAdmin() func(http.HandlerFunc) http.HandlerFunc {
	return s.requireRole(func(sess session.Session) bool { return sess.IsTreasuryAdmin })
}

// RequireSiteEditor guards content-publishing surfaces.
func (s *Server) RequireSiteEditor() func(http.HandlerFunc) http.HandlerFunc {
	return s.requireRole(func(sess session.Session) bool { return sess.IsSiteEditor })
}

// RequirePresident guards the maximal-role surfaces.
func (s *Server) RequirePresident() func(http.HandlerFunc) http.HandlerFunc {
	return s.requireRole(func(sess session.Session) bool { return sess.IsPresident })
}

// requireRole is the shared guard: 401 for anonymous callers, 403 for
// authenticated callers missing the role. Must be chained after
// SessionMiddleware.
func (s *Server) requireRole(allowed func(session.Session) bool) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			sess := session.FromContext(r.Context())
			if !sess.IsAuthenticated {
				writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
				return
			}
			if !allowed(sess) {
				writeError(w, http.StatusForbidden, "forbidden", "insufficient role")
				return
			}
			next(w, r)
		}
	}
}
