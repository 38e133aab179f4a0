package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/roomgrow/pkg/dungeon"
	"github.com/matzehuels/roomgrow/pkg/observability"
	"github.com/matzehuels/roomgrow/pkg/pipeline"
	"github.com/matzehuels/roomgrow/pkg/render"
	"github.com/matzehuels/roomgrow/pkg/spawn"
)

// runIDHeader carries the run id on artifact responses.
const runIDHeader = "X-Roomgrow-Run-Id"

// layoutResponse is the body of POST /v1/layouts. On NO_FOOTPRINTS it holds
// the partial layout together with Error.
type layoutResponse struct {
	RunID         string            `json:"run_id"`
	Layout        dungeon.Layout    `json:"layout"`
	Warnings      []dungeon.Warning `json:"warnings"`
	Spawns        []spawn.Request   `json:"spawns"`
	SpawnWarnings []spawn.Warning   `json:"spawn_warnings,omitempty"`
	Stats         dungeon.Stats     `json:"stats"`
	Cached        bool              `json:"cached"`
	Error         *errorDetail      `json:"error,omitempty"`
}

var contentTypes = map[string]string{
	render.FormatJSON: "application/json",
	render.FormatText: "text/plain; charset=utf-8",
	render.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	render.FormatSVG:  "image/svg+xml",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLayouts(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	runID := uuid.NewString()
	gen, hit, err := s.runner.GenerateWithCacheInfo(r.Context(), opts)
	if gen == nil {
		writeError(w, r, err)
		return
	}

	resp := layoutResponse{
		RunID:    runID,
		Layout:   gen.Layout,
		Warnings: gen.Warnings,
		Stats:    gen.Stats,
		Cached:   hit,
	}
	resp.Spawns, resp.SpawnWarnings = pipeline.Spawns(gen.Layout, opts)
	if resp.Warnings == nil {
		resp.Warnings = []dungeon.Warning{}
	}
	if resp.Spawns == nil {
		resp.Spawns = []spawn.Request{}
	}

	status := http.StatusOK
	if err != nil {
		s.observeError(r, err)
		body := newErrorBody(err)
		resp.Error = &body.Error
		status = statusFor(err)
	}
	s.logger.Debug("layout generated", "run_id", runID, "rooms", gen.Layout.Len(), "cached", hit)
	writeJSON(w, status, resp)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, r, err)
		return
	}

	opts, err := s.decodeOptions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	gen, _, err := s.runner.GenerateWithCacheInfo(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	spawns, _ := pipeline.Spawns(gen.Layout, opts)
	in := render.Input{Layout: gen.Layout, Warnings: gen.Warnings, Spawns: spawns}
	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), in, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set(runIDHeader, uuid.NewString())
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

// decodeOptions reads the request options and resolves their catalog.
func (s *Server) decodeOptions(r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options
	if err := readBodyJSON(r, &opts); err != nil {
		return opts, err
	}
	if len(opts.Footprints) == 0 {
		opts.Catalog = s.catalog
	}
	opts.Logger = s.logger
	if err := opts.ValidateForGenerate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// observeError reports an error that is returned alongside a partial result.
func (s *Server) observeError(r *http.Request, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	if !errors.Is(err, context.Canceled) {
		s.logger.Warn("generation incomplete", "path", r.URL.Path, "err", err)
	}
}
