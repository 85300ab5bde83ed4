package server

import (
	"encoding/json"
	"net/http"

	"github.com/chapterhq/portal-server/docstore"
	"github.com/chapterhq/portal-server/internal/errors"
	"github.com/chapterhq/portal-server/roster"
)

// LeadershipGetHandler serves the roster document. An absent roster is an
// empty roster, not an error.
func (s *Server) LeadershipGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.repos.Docs == nil {
			writeJSON(w, http.StatusOK, roster.Roster{})
			return
		}
		raw, err := s.repos.Docs.Get(r.Context(), docstore.KeyLeadership)
		if err != nil {
			if errors.Is(err, errors.ErrNotFound) {
				writeJSON(w, http.StatusOK, roster.Roster{})
				return
			}
			writeError(w, http.StatusServiceUnavailable, "store_unavailable", "leadership roster is temporarily unavailable")
			return
		}
		w.Header().Set("Content-Type", contentTypeJSON)
		w.WriteHeader(http.StatusOK)
		w.Write(raw)
	}
}

// LeadershipPutHandler replaces the roster document. The payload must at
// least decode into the roster shape; titles are free text and stay
// unvalidated.
func (s *Server) LeadershipPutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.repos.Docs == nil {
			writeError(w, http.StatusServiceUnavailable, "store_unavailable", "no backing store configured")
			return
		}
		var rost roster.Roster
		if !decodeJSON(w, r, &rost) {
			return
		}
		raw, err := json.Marshal(rost)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", "failed to encode roster")
			return
		}
		if err := s.repos.Docs.Put(r.Context(), docstore.KeyLeadership, raw); err != nil {
			writeError(w, http.StatusServiceUnavailable, "store_unavailable", "failed to write roster")
			return
		}
		writeJSON(w, http.StatusOK, rost)
	}
}
