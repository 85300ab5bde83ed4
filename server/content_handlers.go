package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/chapterhq/portal-server/docstore"
	"github.com/chapterhq/portal-server/internal/errors"
)

// maxContentBytes caps a single content section document.
const maxContentBytes = 1 << 20

// ContentGetHandler serves a content section as raw JSON. Unknown sections
// read as an empty object so the frontend can render defaults.
func (s *Server) ContentGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		section := r.PathValue("section")
		if section == "" || s.repos.Docs == nil {
			writeJSON(w, http.StatusOK, map[string]any{})
			return
		}
		raw, err := s.repos.Docs.Get(r.Context(), docstore.ContentKey(section))
		if err != nil {
			if errors.Is(err, errors.ErrNotFound) {
				writeJSON(w, http.StatusOK, map[string]any{})
				return
			}
			writeError(w, http.StatusServiceUnavailable, "store_unavailable", "content is temporarily unavailable")
			return
		}
		w.Header().Set("Content-Type", contentTypeJSON)
		w.WriteHeader(http.StatusOK)
		w.Write(raw)
	}
}

// ContentPutHandler replaces a content section. The body may be any valid
// JSON value; it is stored verbatim.
func (s *Server) ContentPutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		section := r.PathValue("section")
		if section == "" {
			writeError(w, http.StatusBadRequest, "invalid_payload", "section name is required")
			return
		}
		if s.repos.Docs == nil {
			writeError(w, http.StatusServiceUnavailable, "store_unavailable", "no backing store configured")
			return
		}

		raw, err := io.ReadAll(io.LimitReader(r.Body, maxContentBytes+1))
		if err != nil || len(raw) > maxContentBytes {
			writeError(w, http.StatusBadRequest, "invalid_payload", "content body too large or unreadable")
			return
		}
		if !json.Valid(raw) {
			writeError(w, http.StatusBadRequest, "invalid_payload", "content body is not valid JSON")
			return
		}
		if err := s.repos.Docs.Put(r.Context(), docstore.ContentKey(section), raw); err != nil {
			writeError(w, http.StatusServiceUnavailable, "store_unavailable", "failed to write content")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"section": section})
	}
}
