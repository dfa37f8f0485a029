// Package api provides the HTTP collaborator layer for MedAssist.
//
// The handlers hold no consultation logic of their own: they validate the
// request boundary and invoke the core's public operations.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

// ConsultationService defines the core operations the transport invokes.
type ConsultationService interface {
	HandleTurn(ctx context.Context, userID, message string) (string, error)
	UserSummary(userID string) (string, error)
	UpdateBasicInfo(userID string, fields map[string]interface{}) error
}

// Opts holds configuration options for the API server.
type Opts struct {
	Addr string
}

// Option configures the API server.
type Option func(*Opts)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(o *Opts) { o.Addr = addr }
}

// Server exposes the consultation service over HTTP.
type Server struct {
	svc  ConsultationService
	addr string
}

// NewServer creates an API server around the consultation service.
func NewServer(svc ConsultationService, opts ...Option) *Server {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	slog.Debug("api.NewServer: server created", "addr", cfg.Addr)
	return &Server{svc: svc, addr: cfg.Addr}
}

// Router builds the chi router with all endpoints registered.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)

	r.Get("/api/health", s.healthHandler)
	r.Post("/api/chat", s.chatHandler)
	r.Get("/api/users/{userID}/summary", s.userSummaryHandler)
	r.Post("/api/users/{userID}/basic-info", s.updateBasicInfoHandler)

	return r
}

// Run starts the HTTP server and blocks until it exits.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	slog.Info("api.Run: listening", "addr", s.addr)
	return srv.ListenAndServe()
}

// requestIDMiddleware assigns a correlation ID to each request for log and
// response header tracing.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)
		slog.Debug("api.requestIDMiddleware: request received", "requestID", requestID, "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
