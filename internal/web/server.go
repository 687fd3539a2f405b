// Package web provides the HTTP surface of the membership registry: the
// public form page, the submit endpoint and the token-protected CSV export.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zugloev/tagregiszter/internal/config"
	"github.com/zugloev/tagregiszter/internal/intake"
	"github.com/zugloev/tagregiszter/internal/store"
)

// MemberStore is the persistence the handlers need.
// Satisfied by *store.Members.
type MemberStore interface {
	Insert(ctx context.Context, rec intake.MemberRecord, meta store.SubmitMeta) error
	ExportAll(ctx context.Context) (columns []string, rows [][]any, err error)
}

// Server is the HTTP server for the registry.
type Server struct {
	members MemberStore
	cfg     *config.Config
	router  *chi.Mux
	server  *http.Server
}

// NewServer creates a Server wired to the given store and configuration.
func NewServer(members MemberStore, cfg *config.Config) *Server {
	s := &Server{
		members: members,
		cfg:     cfg,
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))

	s.router.Use(securityHeaders)

	// CORS runs last so preflights short-circuit after the stack above.
	s.router.Use(allowOrigin(s.cfg.Intake.AllowedOrigin))
}

// setupRoutes configures all HTTP routes. Anything unmatched, including
// wrong methods on known paths, answers 404 like the original surface did.
func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Post("/api/submit", s.handleSubmit)
	s.router.Get("/admin/export", s.handleExport)

	s.router.NotFound(handleNotFound)
	s.router.MethodNotAllowed(handleNotFound)
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds baseline security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// writeJSON encodes v as JSON with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", "error", err)
	}
}

// writeError writes a JSON error body of the form {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
