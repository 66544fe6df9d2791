// Package web provides the HTTP server and JSON API for propdb.
package web

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/justinas/alice"
	"github.com/rs/cors"

	"github.com/evcraddock/propdb/internal/logging"
	"github.com/evcraddock/propdb/internal/property"
	"github.com/evcraddock/propdb/internal/schema"
)

// Config controls how the server is built.
type Config struct {
	Dialect     schema.Dialect
	CORSOrigins []string // empty disables CORS headers
}

// Server is the API HTTP server.
type Server struct {
	props   *property.Service
	mux     *http.ServeMux
	handler http.Handler
}

// NewServer creates a server backed by the given database.
func NewServer(db *sql.DB, cfg Config) (*Server, error) {
	if cfg.Dialect == nil {
		return nil, errors.New("web: database dialect is required")
	}

	s := &Server{
		props: property.NewService(property.NewRepository(db, cfg.Dialect)),
		mux:   http.NewServeMux(),
	}

	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/properties", s.handleAPIProperties)
	s.mux.HandleFunc("/api/properties/", s.handleAPIProperties)

	chain := alice.New(logging.RequestLogger)
	if len(cfg.CORSOrigins) > 0 {
		c := cors.New(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", logging.RequestIDHeader},
			ExposedHeaders: []string{logging.RequestIDHeader},
		})
		chain = chain.Append(c.Handler)
	}
	s.handler = chain.Then(s.mux)

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slog.Info("shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
