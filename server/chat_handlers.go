package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chapterhq/portal-server/chatboard"
	"github.com/chapterhq/portal-server/session"
)

// ChatListHandler returns the newest messages in a channel.
func (s *Server) ChatListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.repos.Chat == nil {
			writeError(w, http.StatusServiceUnavailable, "store_unavailable", "no backing store configured")
			return
		}
		messages, err := s.repos.Chat.List(r.Context(), r.PathValue("channel"), queryLimit(r, 50))
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, "store_unavailable", "failed to list messages")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
	}
}

// ChatPostHandler appends a message authored by the session's email.
func (s *Server) ChatPostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		channel := r.PathValue("channel")
		if channel == "" {
			writeError(w, http.StatusBadRequest, "invalid_payload", "channel is required")
			return
		}
		if s.repos.Chat == nil {
			writeError(w, http.StatusServiceUnavailable, "store_unavailable", "no backing store configured")
			return
		}

		var body struct {
			Body string `json:"body"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		body.Body = strings.TrimSpace(body.Body)
		if body.Body == "" || len(body.Body) > chatboard.MaxBodyLength {
			writeError(w, http.StatusBadRequest, "invalid_payload", "message body is empty or too long")
			return
		}

		message := chatboard.Message{
			ID:        uuid.New().String(),
			Channel:   channel,
			Author:    session.FromContext(r.Context()).Email,
			Body:      body.Body,
			CreatedAt: time.Now(),
		}
		if err := s.repos.Chat.Append(r.Context(), message); err != nil {
			writeError(w, http.StatusServiceUnavailable, "store_unavailable", "failed to store message")
			return
		}
		writeJSON(w, http.StatusCreated, message)
	}
}
