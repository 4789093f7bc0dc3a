// Package server is the HTTP shell around the parsing service: POST /parse,
// POST /chat, GET /health and GET /metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"kharcha/expense-nlp/internal/logging"
	"kharcha/expense-nlp/internal/nlp"
)

const shutdownTimeout = 30 * time.Second

// Options configures a Server.
type Options struct {
	Addr           string
	AllowedOrigins []string
}

// Server serves the parsing service over HTTP.
type Server struct {
	service *nlp.Service
	metrics *Metrics
	logger  logging.Logger
	http    *http.Server
}

// New creates a Server for service.
func New(service *nlp.Service, opts Options, logger logging.Logger) *Server {
	s := &Server{
		service: service,
		metrics: NewMetrics(),
		logger:  logging.OrDefault(logger),
	}
	s.http = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.routes(opts.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func (s *Server) routes(origins []string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /parse", s.metrics.Instrument("/parse", s.handleParse))
	mux.HandleFunc("POST /chat", s.metrics.Instrument("/chat", s.handleChat))
	mux.HandleFunc("GET /health", s.metrics.Instrument("/health", s.handleHealth))
	mux.Handle("GET /metrics", s.metrics.Handler())

	// Apply middleware
	return Recovery(s.logger)(
		RequestID(
			Logger(s.logger)(
				CORS(origins)(mux),
			),
		),
	)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("Starting API server", logging.Field{Key: "addr", Value: s.http.Addr})

	errCh := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	s.logger.Info("Server exited")
	return nil
}
