package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chapterhq/portal-server/chatboard"
	"github.com/chapterhq/portal-server/docstore"
	"github.com/chapterhq/portal-server/forms"
	"github.com/chapterhq/portal-server/internal/config"
	"github.com/chapterhq/portal-server/server"
	"github.com/chapterhq/portal-server/session"
	"github.com/chapterhq/portal-server/treasury"
)

func newTestServer(t *testing.T) (*server.Server, docstore.Store) {
	t.Helper()
	docs := docstore.NewMemory()
	srv, err := server.New(config.New(), server.Repos{
		Docs:     docs,
		Forms:    forms.NewInMemoryRepo(),
		Chat:     chatboard.NewInMemoryRepo(),
		Treasury: treasury.NewInMemoryRepo(),
	})
	require.NoError(t, err)
	return srv, docs
}

// do performs a request as the given caller, using the trusted proxy header
// as the identity signal.
func do(srv http.Handler, method, path, email, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	if email != "" {
		r.Header.Set("Cf-Access-Authenticated-User-Email", email)
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	return w
}

func decodeSession(t *testing.T, w *httptest.ResponseRecorder) session.Session {
	t.Helper()
	var sess session.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sess))
	return sess
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	w := do(srv, http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestSessionEndpoint(t *testing.T) {
	t.Setenv("COUNCIL_ADMIN_EMAILS", "admin@x.org")
	srv, _ := newTestServer(t)

	t.Run("anonymous", func(t *testing.T) {
		w := do(srv, http.MethodGet, "/api/session", "", "")
		require.Equal(t, http.StatusOK, w.Code)
		sess := decodeSession(t, w)
		require.False(t, sess.IsAuthenticated)
		require.Empty(t, sess.Email)
	})

	t.Run("plain member", func(t *testing.T) {
		sess := decodeSession(t, do(srv, http.MethodGet, "/api/session", "member@x.org", ""))
		require.True(t, sess.IsAuthenticated)
		require.False(t, sess.IsCouncilAdmin)
	})

	t.Run("configured admin", func(t *testing.T) {
		sess := decodeSession(t, do(srv, http.MethodGet, "/api/session", "Admin@X.org", ""))
		require.True(t, sess.IsCouncilAdmin)
		require.False(t, sess.IsTreasuryAdmin)
	})

	t.Run("fallback president holds every role", func(t *testing.T) {
		sess := decodeSession(t, do(srv, http.MethodGet, "/api/session", session.FallbackPresidentEmail, ""))
		require.True(t, sess.IsCouncilAdmin)
		require.True(t, sess.IsTreasuryAdmin)
		require.True(t, sess.IsSiteEditor)
		require.True(t, sess.IsPresident)
	})
}

func TestRouteGuards(t *testing.T) {
	t.Setenv("COUNCIL_ADMIN_EMAILS", "admin@x.org")
	t.Setenv("SITE_ADMIN_EMAILS", "editor@x.org")
	srv, _ := newTestServer(t)

	// The fallback president is the only static way to hold the treasury
	// role without a roster document.
	president := session.FallbackPresidentEmail

	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		allowed string
		denied  string
	}{
		{name: "leadership put", method: http.MethodPut, path: "/api/leadership", body: `{"executiveBoard":[]}`, allowed: "admin@x.org", denied: "editor@x.org"},
		{name: "overrides get", method: http.MethodGet, path: "/api/admin/access-overrides", allowed: "admin@x.org", denied: "member@x.org"},
		{name: "form submissions", method: http.MethodGet, path: "/api/forms/contact/submissions", allowed: "admin@x.org", denied: "member@x.org"},
		{name: "content put", method: http.MethodPut, path: "/api/content/home", body: `{"title":"hi"}`, allowed: "editor@x.org", denied: "member@x.org"},
		{name: "treasury list", method: http.MethodGet, path: "/api/treasury/transactions", allowed: president, denied: "admin@x.org"},
		{name: "chat list", method: http.MethodGet, path: "/api/chat/general", allowed: "member@x.org"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := do(srv, tc.method, tc.path, "", tc.body)
			require.Equal(t, http.StatusUnauthorized, w.Code, "anonymous caller")

			if tc.denied != "" {
				w = do(srv, tc.method, tc.path, tc.denied, tc.body)
				require.Equal(t, http.StatusForbidden, w.Code, "caller without the role")
			}

			w = do(srv, tc.method, tc.path, tc.allowed, tc.body)
			require.Less(t, w.Code, 300, "caller holding the role")
		})
	}
}

func TestSiteEditorImpliesCouncilAdmin(t *testing.T) {
	t.Setenv("SITE_ADMIN_EMAILS", "editor@x.org")
	srv, _ := newTestServer(t)

	sess := decodeSession(t, do(srv, http.MethodGet, "/api/session", "editor@x.org", ""))
	require.True(t, sess.IsSiteEditor)
	require.True(t, sess.IsCouncilAdmin)

	w := do(srv, http.MethodGet, "/api/admin/access-overrides", "editor@x.org", "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAccessOverridesRoundTrip(t *testing.T) {
	t.Setenv("COUNCIL_ADMIN_EMAILS", "admin@x.org")
	srv, _ := newTestServer(t)

	t.Run("entries must be an array", func(t *testing.T) {
		w := do(srv, http.MethodPut, "/api/admin/access-overrides", "admin@x.org", `{"entries":"nope"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("write then read back", func(t *testing.T) {
		body := `{"entries":[{"email":" Member@X.org ","isTreasuryAdmin":true,"note":"covering for treasurer"}]}`
		w := do(srv, http.MethodPut, "/api/admin/access-overrides", "admin@x.org", body)
		require.Equal(t, http.StatusOK, w.Code)

		w = do(srv, http.MethodGet, "/api/admin/access-overrides", "admin@x.org", "")
		require.Equal(t, http.StatusOK, w.Code)
		var doc struct {
			Entries []struct {
				Email string `json:"email"`
			} `json:"entries"`
			UpdatedBy string `json:"updatedBy"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
		require.Len(t, doc.Entries, 1)
		require.Equal(t, "member@x.org", doc.Entries[0].Email)

		// The override now grants the member treasury access.
		sess := decodeSession(t, do(srv, http.MethodGet, "/api/session", "member@x.org", ""))
		require.True(t, sess.IsTreasuryAdmin)
		require.False(t, sess.IsCouncilAdmin)
	})
}

func TestContentSections(t *testing.T) {
	t.Setenv("SITE_ADMIN_EMAILS", "editor@x.org")
	srv, _ := newTestServer(t)

	t.Run("unknown section reads as empty object", func(t *testing.T) {
		w := do(srv, http.MethodGet, "/api/content/about", "", "")
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{}`, w.Body.String())
	})

	t.Run("write then read", func(t *testing.T) {
		w := do(srv, http.MethodPut, "/api/content/about", "editor@x.org", `{"heading":"About us"}`)
		require.Equal(t, http.StatusOK, w.Code)

		w = do(srv, http.MethodGet, "/api/content/about", "", "")
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"heading":"About us"}`, w.Body.String())
	})

	t.Run("invalid JSON is rejected", func(t *testing.T) {
		w := do(srv, http.MethodPut, "/api/content/about", "editor@x.org", `{"broken`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLeadershipRoundTrip(t *testing.T) {
	t.Setenv("COUNCIL_ADMIN_EMAILS", "admin@x.org")
	srv, _ := newTestServer(t)

	t.Run("absent roster reads as empty", func(t *testing.T) {
		w := do(srv, http.MethodGet, "/api/leadership", "", "")
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("stored roster drives role resolution", func(t *testing.T) {
		body := `{"executiveBoard":[{"email":"treasurer@x.org","title":"Treasurer"}]}`
		w := do(srv, http.MethodPut, "/api/leadership", "admin@x.org", body)
		require.Equal(t, http.StatusOK, w.Code)

		sess := decodeSession(t, do(srv, http.MethodGet, "/api/session", "treasurer@x.org", ""))
		require.True(t, sess.IsTreasuryAdmin)
		require.True(t, sess.IsCouncilAdmin)
	})
}

func TestForms(t *testing.T) {
	t.Setenv("COUNCIL_ADMIN_EMAILS", "admin@x.org")
	srv, _ := newTestServer(t)

	t.Run("anonymous submit is allowed", func(t *testing.T) {
		w := do(srv, http.MethodPost, "/api/forms/contact", "", `{"message":"hello"}`)
		require.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("non-JSON submit is rejected", func(t *testing.T) {
		w := do(srv, http.MethodPost, "/api/forms/contact", "", `not json`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("admin lists newest first", func(t *testing.T) {
		w := do(srv, http.MethodPost, "/api/forms/contact", "member@x.org", `{"message":"second"}`)
		require.Equal(t, http.StatusCreated, w.Code)

		w = do(srv, http.MethodGet, "/api/forms/contact/submissions", "admin@x.org", "")
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Submissions []forms.Submission `json:"submissions"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Submissions, 2)
		require.Equal(t, "member@x.org", resp.Submissions[0].SubmittedBy)
	})
}

func TestChat(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(srv, http.MethodPost, "/api/chat/general", "member@x.org", `{"body":"hello all"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(srv, http.MethodPost, "/api/chat/general", "member@x.org", `{"body":"   "}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(srv, http.MethodGet, "/api/chat/general", "member@x.org", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Messages []chatboard.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Messages, 1)
	require.Equal(t, "member@x.org", resp.Messages[0].Author)
}

func TestUploadsDisabled(t *testing.T) {
	t.Setenv("SITE_ADMIN_EMAILS", "editor@x.org")
	srv, _ := newTestServer(t)

	w := do(srv, http.MethodPost, "/api/uploads", "editor@x.org", "payload")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestTreasuryIngest(t *testing.T) {
	srv, _ := newTestServer(t)
	president := session.FallbackPresidentEmail

	body := `{"rows":[
		{"date":"2026-03-01","description":"Member dues","amount":"$25.00"},
		{"date":"2026-03-02","description":"","amount":"5.00"}
	]}`
	w := do(srv, http.MethodPost, "/api/treasury/transactions", president, body)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), `"ingested":1`)

	w = do(srv, http.MethodGet, "/api/treasury/transactions", president, "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Transactions []treasury.Transaction `json:"transactions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Transactions, 1)
	require.Equal(t, int64(2500), resp.Transactions[0].AmountCents)
}
