// Package server exposes the enumeration pipeline over HTTP.
//
// Routes:
//
//	GET /healthz                        build information
//	GET /solids                         registered solids
//	GET /solids/{name}/group            rotation group in cycle notation
//	GET /solids/{name}/orbits/{zeros}   ranked orbit representatives
//	GET /runs, GET /runs/{id}           stored runs (when a store is configured)
//
// Errors are returned as {"code": ..., "message": ...} with a status derived
// from the error code.
package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/isomer/pkg/buildinfo"
	"github.com/matzehuels/isomer/pkg/core/group"
	"github.com/matzehuels/isomer/pkg/errors"
	"github.com/matzehuels/isomer/pkg/observability"
	"github.com/matzehuels/isomer/pkg/pipeline"
	"github.com/matzehuels/isomer/pkg/solid"
	"github.com/matzehuels/isomer/pkg/store"
)

// shutdownTimeout bounds graceful shutdown after the serve context ends.
const shutdownTimeout = 10 * time.Second

// Server serves the HTTP API.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New returns a Server backed by runner. A nil logger uses log.Default().
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.health)
	r.Route("/solids", func(r chi.Router) {
		r.Get("/", s.listSolids)
		r.Get("/{name}/group", s.group)
		r.Get("/{name}/orbits/{zeros}", s.orbits)
	})
	r.Route("/runs", func(r chi.Router) {
		r.Get("/", s.listRuns)
		r.Get("/{id}", s.getRun)
	})
	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}

// observe reports every request to the HTTP hooks and the debug log.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, route)
		hooks.OnResponse(r.Context(), r.Method, route, ww.Status(), time.Since(start))
		s.logger.Debug("request", "method", r.Method, "route", route,
			"status", ww.Status(), "duration", time.Since(start).Round(time.Microsecond))
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

// solidSummary is the list view of a solid.
type solidSummary struct {
	Name          string `json:"name"`
	Title         string `json:"title"`
	Vertices      int    `json:"vertices"`
	Generators    int    `json:"generators"`
	ExpectedOrder int    `json:"expected_order,omitempty"`
	ZeroMin       int    `json:"zero_min"`
	ZeroMax       int    `json:"zero_max"`
	Source        string `json:"source"`
}

func summarize(sd *solid.Solid) solidSummary {
	return solidSummary{
		Name:          sd.Name,
		Title:         sd.Title,
		Vertices:      len(sd.Labels),
		Generators:    len(sd.Generators),
		ExpectedOrder: sd.ExpectedOrder,
		ZeroMin:       sd.ZeroMin,
		ZeroMax:       sd.ZeroMax,
		Source:        sd.Source,
	}
}

func (s *Server) listSolids(w http.ResponseWriter, _ *http.Request) {
	out := []solidSummary{}
	if s.runner.Registry != nil {
		for _, sd := range s.runner.Registry.List() {
			out = append(out, summarize(sd))
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// groupResponse lists a group in cycle notation.
type groupResponse struct {
	Solid      string   `json:"solid"`
	Closure    string   `json:"closure"`
	Order      int      `json:"order"`
	Generators []string `json:"generators"`
	Elements   []string `json:"elements"`
}

func (s *Server) group(w http.ResponseWriter, r *http.Request) {
	mode, err := group.ParseMode(r.URL.Query().Get("closure"))
	if err != nil {
		writeError(w, err)
		return
	}
	sd, err := s.runner.Resolve(pipeline.Options{Solid: chi.URLParam(r, "name")})
	if err != nil {
		writeError(w, err)
		return
	}
	g, err := s.runner.Group(r.Context(), sd, mode)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := groupResponse{Solid: sd.Name, Closure: string(mode), Order: g.Order()}
	for _, p := range g.Generators() {
		resp.Generators = append(resp.Generators, p.String())
	}
	for _, p := range g.Elements() {
		resp.Elements = append(resp.Elements, p.String())
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) orbits(w http.ResponseWriter, r *http.Request) {
	zeros, err := strconv.Atoi(chi.URLParam(r, "zeros"))
	if err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid zero count %q", chi.URLParam(r, "zeros")))
		return
	}
	q := r.URL.Query()
	opts := pipeline.Options{
		Solid:   chi.URLParam(r, "name"),
		Closure: group.Mode(q.Get("closure")),
		Zeros:   []int{zeros},
		Check:   q.Get("check") == "true",
		Logger:  s.logger,
	}
	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"run":         res.Run.ID,
		"solid":       res.Run.Solid,
		"group_order": res.Run.GroupOrder,
		"level":       res.Run.Levels[0],
	})
}

func (s *Server) listRuns(w http.ResponseWriter, r *http.Request) {
	if s.runner.Store == nil {
		writeError(w, errors.New(errors.ErrCodeNotFound, "no run store configured"))
		return
	}
	limit := store.DefaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}
	runs, err := s.runner.Store.List(r.Context(), r.URL.Query().Get("solid"), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) getRun(w http.ResponseWriter, r *http.Request) {
	if s.runner.Store == nil {
		writeError(w, errors.New(errors.ErrCodeNotFound, "no run store configured"))
		return
	}
	run, err := s.runner.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}
