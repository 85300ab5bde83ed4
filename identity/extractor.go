// Package identity extracts a best-effort authenticated email address from
// an inbound request. The perimeter access proxy owns authentication; this
// package only reads the signals it forwards, in a fixed trust order, and
// never verifies token signatures (a stated property of the deployment
// model, not an oversight).
package identity

import (
	"net/http"

	"github.com/chapterhq/portal-server/internal/utils"
)

// Provider is one identity signal source. It returns the normalized email it
// found, or "" when the source carries no usable signal. Providers must not
// panic or error; a failed parse is just an empty result.
type Provider func(r *http.Request) string

// Extractor tries an ordered list of providers and stops at the first
// non-empty result. The order is fixed: header signals are cheaper and
// harder to spoof than cookie or network derived ones in this trust model,
// so they win.
type Extractor struct {
	client    *http.Client
	providers []Provider
}

type Option func(*Extractor)

// WithHTTPClient overrides the client used for the delegated identity
// lookup (primarily for testing).
func WithHTTPClient(client *http.Client) Option {
	return func(e *Extractor) {
		e.client = client
	}
}

func NewExtractor(options ...Option) *Extractor {
	e := &Extractor{client: http.DefaultClient}
	for _, opt := range options {
		opt(e)
	}
	e.providers = []Provider{
		fromTrustedHeader,
		fromAssertionHeader,
		e.fromDelegatedLookup,
		fromSessionCookie,
	}
	return e
}

// Extract returns the authenticated email for the request, or "" when no
// signal source produced one. It never fails.
func (e *Extractor) Extract(r *http.Request) string {
	for _, provide := range e.providers {
		if email := utils.NormalizeEmail(provide(r)); email != "" {
			return email
		}
	}
	return ""
}
