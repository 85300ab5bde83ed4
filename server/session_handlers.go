package server

import (
	"net/http"

	"github.com/chapterhq/portal-server/session"
)

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// SessionHandler returns the caller's resolved session. The frontend uses it
// to decide which surfaces to show; the flags are the same ones the guards
// enforce server-side.
func (s *Server) SessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, session.FromContext(r.Context()))
	}
}
