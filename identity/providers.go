package identity

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// Header and cookie names set by the perimeter access proxy.
var (
	emailHeaders     = []string{"Cf-Access-Authenticated-User-Email", "X-Cf-Access-Authenticated-User-Email"}
	assertionHeaders = []string{"Cf-Access-Jwt-Assertion", "X-Cf-Access-Jwt-Assertion"}
)

const (
	sessionCookieName = "CF_Authorization"
	identityLookupURL = "/cdn-cgi/access/get-identity"
)

// fromTrustedHeader reads the authenticated-email header the perimeter proxy
// injects. Highest trust: the proxy strips it from client requests.
func fromTrustedHeader(r *http.Request) string {
	for _, name := range emailHeaders {
		if email := strings.TrimSpace(r.Header.Get(name)); email != "" {
			return email
		}
	}
	return ""
}

// fromAssertionHeader decodes the forwarded assertion token's payload and
// reads its email or sub claim. Signature verification is the perimeter's
// job; only the claims are wanted here.
func fromAssertionHeader(r *http.Request) string {
	return emailFromJWT(assertionToken(r))
}

// fromSessionCookie is the last resort: the perimeter session cookie carries
// the same JWT shape as the assertion header.
func fromSessionCookie(r *http.Request) string {
	return emailFromJWT(sessionCookie(r))
}

// fromDelegatedLookup asks the perimeter's identity endpoint who owns the
// current session. Only attempted when there is some evidence of an active
// perimeter session: the session cookie, or an assertion header that did not
// parse (fromAssertionHeader already won otherwise). Any network or decode
// failure means "no identity", never an error.
func (e *Extractor) fromDelegatedLookup(r *http.Request) string {
	if sessionCookie(r) == "" && assertionToken(r) == "" {
		return ""
	}

	lookupURL := requestScheme(r) + "://" + r.Host + identityLookupURL
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, lookupURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("Accept", "application/json")
	if cookie := r.Header.Get("Cookie"); cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		log.Debug().Err(err).Msg("delegated identity lookup failed")
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ""
	}

	var body struct {
		Email    string `json:"email"`
		Identity struct {
			Email string `json:"email"`
		} `json:"identity"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ""
	}
	if body.Email != "" {
		return body.Email
	}
	return body.Identity.Email
}

// assertionToken returns the raw forwarded assertion, if any.
func assertionToken(r *http.Request) string {
	for _, name := range assertionHeaders {
		if token := strings.TrimSpace(r.Header.Get(name)); token != "" {
			return token
		}
	}
	return ""
}

// sessionCookie returns the perimeter session cookie value, matching the
// cookie name case-insensitively.
func sessionCookie(r *http.Request) string {
	for _, c := range r.Cookies() {
		if strings.EqualFold(c.Name, sessionCookieName) && c.Value != "" {
			return c.Value
		}
	}
	return ""
}

// emailFromJWT decodes the payload segment of a JWT-shaped token without
// verifying it and returns the email claim, falling back to sub. Padded
// base64url is tolerated.
func emailFromJWT(token string) string {
	if token == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	parser := jwt.NewParser(jwt.WithPaddingAllowed())
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return ""
	}
	if email, ok := claims["email"].(string); ok && email != "" {
		return email
	}
	if sub, ok := claims["sub"].(string); ok {
		return sub
	}
	return ""
}

// requestScheme mirrors the scheme the client used, honouring the proxy's
// X-Forwarded-Proto.
func requestScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
