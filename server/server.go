package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/chapterhq/portal-server/chatboard"
	"github.com/chapterhq/portal-server/docstore"
	"github.com/chapterhq/portal-server/forms"
	"github.com/chapterhq/portal-server/identity"
	"github.com/chapterhq/portal-server/internal/config"
	"github.com/chapterhq/portal-server/override"
	"github.com/chapterhq/portal-server/session"
	"github.com/chapterhq/portal-server/treasury"
	"github.com/chapterhq/portal-server/uploads"
)

// Repos holds all storage dependencies for the Server. Docs may be nil, in
// which case role resolution runs on static configuration alone and the
// roster/override/content surfaces report the store as unavailable.
type Repos struct {
	Docs     docstore.Store
	Forms    forms.Repo
	Chat     chatboard.Repo
	Treasury treasury.Repo
}

type Server struct {
	env    string // Environment (e.g., "DEV", "PROD")
	mux    *http.ServeMux
	routes []string
	config config.Config
	repos  Repos

	extractor *identity.Extractor
	resolver  *session.Resolver
	overrides *override.Store
	uploads   *uploads.Storage // nil = uploads disabled
	treasury  treasury.Rules
}

type Option func(*Server)

// WithExtractor overrides the identity extractor (primarily for testing).
func WithExtractor(e *identity.Extractor) Option {
	return func(s *Server) {
		s.extractor = e
	}
}

// WithUploadStorage attaches object storage for the uploads surface.
func WithUploadStorage(storage *uploads.Storage) Option {
	return func(s *Server) {
		s.uploads = storage
	}
}

// WithTreasuryRules sets the category rules applied during ingestion.
func WithTreasuryRules(rules treasury.Rules) Option {
	return func(s *Server) {
		s.treasury = rules
	}
}

func New(cfg config.Config, repos Repos, options ...Option) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("[Server New] config is required")
	}

	s := &Server{
		mux:       http.NewServeMux(),
		config:    cfg,
		repos:     repos,
		extractor: identity.NewExtractor(),
		resolver:  session.NewResolver(cfg, repos.Docs),
	}
	s.env = cfg.GetEnv()
	if repos.Docs != nil {
		s.overrides = override.NewStore(repos.Docs)
	}

	for _, opt := range options {
		opt(s)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Debug().Msgf("[%-19s] %s", displayMethod, path)
}
