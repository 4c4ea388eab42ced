// Package server wires the preview HTTP server: navigation API, health and metrics.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"git.home.luguber.info/inful/docnav/internal/config"
	foundationerrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/server/handlers"
	"git.home.luguber.info/inful/docnav/internal/server/middleware"
)

const shutdownTimeout = 10 * time.Second

// Options configures the server.
type Options struct {
	Addr        string
	MetricsPath string
	Recorder    metrics.Recorder
	Metrics     http.Handler // served at MetricsPath when non-nil
	Logger      *slog.Logger
}

// Server is the preview HTTP server.
type Server struct {
	router chi.Router
	opts   Options
	log    *slog.Logger
}

// New creates a server reading the current Site from source.
func New(source handlers.SiteSource, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Addr == "" {
		opts.Addr = config.DefaultServerAddr
	}
	if opts.MetricsPath == "" {
		opts.MetricsPath = config.DefaultMetricsPath
	}
	s := &Server{opts: opts, log: opts.Logger}
	s.setupRoutes(source)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes(source handlers.SiteSource) {
	adapter := foundationerrors.NewHTTPErrorAdapter(s.log)
	h := handlers.NewNavHandlers(source, s.opts.Recorder, s.log)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Chain(s.log, adapter))

	r.Get("/health", h.HandleHealth)
	if s.opts.Metrics != nil {
		r.Method(http.MethodGet, s.opts.MetricsPath, s.opts.Metrics)
	}
	r.Get("/api/nav", h.HandleTree)
	r.Get("/api/nav/flatten", h.HandleFlatten)
	r.Get("/api/nav/lookup", h.HandleLookup)

	s.router = r
}

// Run listens on the configured address until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryRuntime, "failed to listen").
			WithContext("addr", s.opts.Addr).
			Build()
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Preview server listening", slog.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return foundationerrors.WrapError(err, foundationerrors.CategoryRuntime, "preview server failed").Build()
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryRuntime, "preview server shutdown").Build()
	}
	s.log.Info("Preview server stopped")
	return nil
}
