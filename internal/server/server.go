// Package server exposes the registry, the session wizard, and the export
// surface over HTTP.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/coachdesk/internal/export"
	"github.com/meltforce/coachdesk/internal/service"
	"github.com/meltforce/coachdesk/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	registry   *service.Registry
	wizards    *service.Wizards
	archive    *storage.DB
	authorizer *export.Authorizer // nil when Drive export is disabled
	log        *slog.Logger
	apiKey     string
	router     chi.Router
}

// New creates a new Server with all routes configured. authorizer may be nil.
func New(registry *service.Registry, wizards *service.Wizards, archive *storage.DB, authorizer *export.Authorizer, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		registry:   registry,
		wizards:    wizards,
		archive:    archive,
		authorizer: authorizer,
		log:        log,
		apiKey:     apiKey,
		router:     chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Read-only endpoints (no auth — tsnet handles access)
	s.router.Get("/api/v1/clients", s.handleListClients)
	s.router.Get("/api/v1/clients/{handle}", s.handleGetClient)
	s.router.Get("/api/v1/clients/{id}/sessions", s.handleClientSessions)
	s.router.Get("/api/v1/sessions/{id}", s.handleGetSession)
	s.router.Get("/api/v1/goals", s.handleListGoals)
	s.router.Get("/api/v1/export/auth-url", s.handleExportAuthURL)

	// Mutating endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/clients", s.handleRegisterClient)
		r.Post("/api/v1/clients/{handle}/verify", s.handleVerifySecret)
		r.Post("/api/v1/export/auth-code", s.handleExportAuthCode)
		r.Post("/api/v1/sessions/{id}/export", s.handleExportSession)

		r.Route("/api/v1/wizard", func(r chi.Router) {
			r.Post("/", s.handleStartWizard)
			r.Get("/{id}", s.handleGetWizard)
			r.Delete("/{id}", s.handleCancelWizard)
			r.Post("/{id}/resume", s.handleResumeDraft)
			r.Post("/{id}/discard-draft", s.handleDiscardDraft)
			r.Post("/{id}/next", s.handleWizardNext)
			r.Post("/{id}/back", s.handleWizardBack)
			r.Post("/{id}/draft", s.handleSaveDraft)
			r.Post("/{id}/finalize", s.handleFinalize)
		})
	})
}
