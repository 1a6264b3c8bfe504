// Package api exposes the conversation engine over HTTP.
package api

import (
	"context"
	"net/http"

	"estate-assistant/internal/common/config"
	"estate-assistant/internal/common/errors"
	"estate-assistant/internal/common/logger"
	"estate-assistant/internal/engine/session"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// TokenVerifier resolves a bearer token to an authenticated/anonymous
// decision. Verification failures degrade to anonymous rather than reject
// the turn.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (bool, error)
}

// Server wires the session manager to HTTP routes.
type Server struct {
	manager  *session.Manager
	verifier TokenVerifier
	limiters *limiterPool
	errs     *errors.ErrorHandler
	logger   logger.Logger
	router   *mux.Router
}

// NewServer creates the HTTP surface. verifier may be nil when auth is not
// configured.
func NewServer(cfg config.ServerConfig, manager *session.Manager, verifier TokenVerifier, log logger.Logger) *Server {
	s := &Server{
		manager:  manager,
		verifier: verifier,
		limiters: newLimiterPool(cfg.RateLimitPerSec, cfg.RateLimitBurst),
		errs:     errors.NewErrorHandler(log),
		logger:   log,
		router:   mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/sessions", s.createSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/messages", s.submitMessage).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/messages", s.listMessages).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/actions", s.dispatchAction).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}", s.endSession).Methods(http.MethodDelete)

	s.router.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
}

// Handler returns the root handler for use by http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// isAuthenticated resolves the Authorization header for one turn. Missing
// token, failed verification and verifier errors all mean anonymous.
func (s *Server) isAuthenticated(r *http.Request) bool {
	token := bearerToken(r)
	if token == "" || s.verifier == nil {
		return false
	}

	active, err := s.verifier.VerifyToken(r.Context(), token)
	if err != nil {
		s.logger.WithError(err).Warn("token verification failed", map[string]interface{}{
			"path": r.URL.Path,
		})
		return false
	}
	return active
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}
