package server

import (
	"encoding/json"
	"net/http"

	"github.com/chapterhq/portal-server/override"
	"github.com/chapterhq/portal-server/session"
)

// AccessOverridesGetHandler lists the stored per-user role corrections.
func (s *Server) AccessOverridesGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.overrides == nil {
			writeError(w, http.StatusServiceUnavailable, "store_unavailable", "no backing store configured")
			return
		}
		writeJSON(w, http.StatusOK, override.Document{Entries: s.overrides.ReadAll(r.Context())})
	}
}

// AccessOverridesPutHandler replaces the whole override collection. This is
// an operator surface, so unlike every read path a malformed payload is
// rejected rather than treated as empty: `entries` must be a JSON array. The
// store re-sanitizes whatever is accepted.
func (s *Server) AccessOverridesPutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.overrides == nil {
			writeError(w, http.StatusServiceUnavailable, "store_unavailable", "no backing store configured")
			return
		}

		var body struct {
			Entries json.RawMessage `json:"entries"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		var entries []override.Entry
		if err := json.Unmarshal(body.Entries, &entries); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_payload", "entries must be an array of override entries")
			return
		}

		actor := session.FromContext(r.Context()).Email
		doc, err := s.overrides.WriteAll(r.Context(), entries, actor)
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, "store_unavailable", "failed to write overrides")
			return
		}
		writeJSON(w, http.StatusOK, doc)
	}
}
