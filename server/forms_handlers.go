package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/chapterhq/portal-server/forms"
	"github.com/chapterhq/portal-server/session"
)

const maxFormBytes = 256 << 10

// FormSubmitHandler appends a submission. Forms are open to anonymous
// visitors (contact forms); an authenticated submitter is recorded.
func (s *Server) FormSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := r.PathValue("form")
		if form == "" {
			writeError(w, http.StatusBadRequest, "invalid_payload", "form name is required")
			return
		}
		if s.repos.Forms == nil {
			writeError(w, http.StatusServiceUnavailable, "store_unavailable", "no backing store configured")
			return
		}

		raw, err := io.ReadAll(io.LimitReader(r.Body, maxFormBytes+1))
		if err != nil || len(raw) > maxFormBytes || !json.Valid(raw) {
			writeError(w, http.StatusBadRequest, "invalid_payload", "submission must be a JSON body")
			return
		}

		submission := forms.Submission{
			ID:          uuid.New().String(),
			Form:        form,
			SubmittedBy: session.FromContext(r.Context()).Email,
			Payload:     raw,
			CreatedAt:   time.Now(),
		}
		if err := s.repos.Forms.Append(r.Context(), submission); err != nil {
			writeError(w, http.StatusServiceUnavailable, "store_unavailable", "failed to store submission")
			return
		}
		writeJSON(w, http.StatusCreated, submission)
	}
}

// FormSubmissionsHandler lists submissions for a form, newest first.
func (s *Server) FormSubmissionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.repos.Forms == nil {
			writeError(w, http.StatusServiceUnavailable, "store_unavailable", "no backing store configured")
			return
		}
		submissions, err := s.repos.Forms.List(r.Context(), r.PathValue("form"), queryLimit(r, 100))
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, "store_unavailable", "failed to list submissions")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"submissions": submissions})
	}
}
