// Package server exposes the reconciliation pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"fjacquet/camt-recon/internal/logging"
	"fjacquet/camt-recon/internal/pipeline"
	"fjacquet/camt-recon/internal/reconciler"
	"fjacquet/camt-recon/internal/report"

	"github.com/gorilla/mux"
)

// Routes
const (
	PathHealth    = "/healthz"
	PathReconcile = "/api/v1/reconcile"
)

// HeaderRunID carries the run id on every reconcile response
const HeaderRunID = "X-Run-ID"

const shutdownTimeout = 10 * time.Second

// Runner runs one reconciliation. *pipeline.Service implements it.
type Runner interface {
	Run(ctx context.Context, in pipeline.Input) (*pipeline.Result, error)
}

// Options configures a Server
type Options struct {
	// MaxUploadBytes caps the multipart request body
	MaxUploadBytes int64
	// Tolerance is the base window that form overrides start from
	Tolerance reconciler.Tolerance
	// Format is used when the request names none
	Format report.Format
}

// Server handles reconciliation requests
type Server struct {
	runner Runner
	logger logging.Logger
	opts   Options
}

// New creates a Server
func New(runner Runner, logger logging.Logger, opts Options) *Server {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	if opts.Format == "" {
		opts.Format = report.FormatCSV
	}
	return &Server{
		runner: runner,
		logger: logger.WithField(logging.FieldComponent, "server"),
		opts:   opts,
	}
}

// Router returns the route table
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc(PathHealth, s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc(PathReconcile, s.handleReconcile).Methods(http.MethodPost)
	return router
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", logging.F(logging.FieldAddr, addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("Shutting down HTTP server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
