// Package api serves layout generation and rendering over HTTP.
//
// # Routes
//
//	POST /v1/layouts          grow a layout, returns layout, spawns and warnings
//	POST /v1/render/{format}  grow a layout and return one rendered artifact
//	GET  /healthz             liveness probe
//
// Both POST routes accept a JSON body of [pipeline.Options]. Requests that do
// not carry their own footprints use the server's catalog.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/roomgrow/pkg/palette"
	"github.com/matzehuels/roomgrow/pkg/pipeline"
)

const (
	// maxBodyBytes limits request bodies.
	maxBodyBytes = 1 << 20

	// requestTimeout bounds a single generation.
	requestTimeout = 30 * time.Second

	shutdownTimeout = 10 * time.Second
)

// Server exposes a pipeline runner over HTTP. It is safe for concurrent use;
// every request builds its own options and generation state.
type Server struct {
	runner  *pipeline.Runner
	catalog *palette.Catalog
	logger  *log.Logger
}

// New creates a server. A nil catalog selects the built-in one; a nil
// logger discards output.
func New(runner *pipeline.Runner, catalog *palette.Catalog, logger *log.Logger) *Server {
	if catalog == nil {
		catalog = palette.Builtin()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{runner: runner, catalog: catalog, logger: logger}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layouts", s.handleLayouts)
		r.Post("/render/{format}", s.handleRender)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
