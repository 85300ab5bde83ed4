package server

import (
	"net/http"
	"time"

	"github.com/chapterhq/portal-server/session"
	"github.com/chapterhq/portal-server/treasury"
)

// TreasuryIngestHandler normalizes and stores a batch of submitted rows.
// Unparsable rows are dropped, not fatal: bank exports are messy and the
// treasurer re-ingests corrections as needed.
func (s *Server) TreasuryIngestHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.repos.Treasury == nil {
			writeError(w, http.StatusServiceUnavailable, "store_unavailable", "no backing store configured")
			return
		}

		var body struct {
			Rows []treasury.RawRow `json:"rows"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		if len(body.Rows) == 0 {
			writeError(w, http.StatusBadRequest, "invalid_payload", "rows must be a non-empty array")
			return
		}

		actor := session.FromContext(r.Context()).Email
		transactions := treasury.Normalize(body.Rows, s.treasury, actor, time.Now())
		if err := s.repos.Treasury.Append(r.Context(), transactions); err != nil {
			writeError(w, http.StatusServiceUnavailable, "store_unavailable", "failed to store transactions")
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"ingested": len(transactions),
			"dropped":  len(body.Rows) - len(transactions),
		})
	}
}

// TreasuryListHandler returns recent transactions.
func (s *Server) TreasuryListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.repos.Treasury == nil {
			writeError(w, http.StatusServiceUnavailable, "store_unavailable", "no backing store configured")
			return
		}
		transactions, err := s.repos.Treasury.List(r.Context(), queryLimit(r, 200))
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, "store_unavailable", "failed to list transactions")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"transactions": transactions})
	}
}
