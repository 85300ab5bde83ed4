package server

import (
	"net/http"
)

const maxUploadBytes = 25 << 20

// UploadHandler streams the request body into object storage. The filename
// comes from the X-Filename header to keep the body a plain byte stream.
func (s *Server) UploadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.uploads == nil {
			writeError(w, http.StatusServiceUnavailable, "uploads_disabled", "uploads are not configured")
			return
		}
		if r.ContentLength <= 0 || r.ContentLength > maxUploadBytes {
			writeError(w, http.StatusBadRequest, "invalid_payload", "upload requires a Content-Length up to 25MB")
			return
		}

		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		key, err := s.uploads.Put(r.Context(), r.Header.Get("X-Filename"), r.Body, r.ContentLength, contentType)
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, "store_unavailable", "failed to store upload")
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"key": key})
	}
}

// UploadDownloadHandler redirects to a short-lived presigned URL.
func (s *Server) UploadDownloadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.uploads == nil {
			writeError(w, http.StatusServiceUnavailable, "uploads_disabled", "uploads are not configured")
			return
		}
		url, err := s.uploads.PresignedURL(r.Context(), r.PathValue("key"))
		if err != nil {
			writeError(w, http.StatusNotFound, "not_found", "unknown upload")
			return
		}
		http.Redirect(w, r, url, http.StatusTemporaryRedirect)
	}
}
