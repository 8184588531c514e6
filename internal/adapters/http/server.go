package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/aretw0/turing/pkg/schema"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// DefaultStepLimit applies to runs that do not ask for a budget.
	DefaultStepLimit uint64 = 1_000_000
	// DefaultMaxCount bounds the count of a single enumeration request.
	DefaultMaxCount = 10_000
)

// Engine defines what the HTTP API needs from the turing engine.
type Engine interface {
	Machine() *domain.Machine
	Run(ctx context.Context, input string, opts ...turing.RunOption) (domain.Outcome, error)
	Enumerate(ctx context.Context, count int) ([]string, error)
}

// Server serves the JSON API of one machine.
type Server struct {
	Engine    Engine
	Gatherer  prometheus.Gatherer
	Logger    *slog.Logger
	StepLimit uint64
	MaxCount  int
	Trace     runner.TraceLimits
}

// Option configures a Server.
type Option func(*Server)

// WithGatherer exposes the registry on GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.Gatherer = g }
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.Logger = l
		}
	}
}

// WithStepLimit sets the budget for runs that omit step_limit and caps those that set one.
func WithStepLimit(n uint64) Option {
	return func(s *Server) { s.StepLimit = n }
}

// WithMaxCount bounds enumeration requests.
func WithMaxCount(n int) Option {
	return func(s *Server) { s.MaxCount = n }
}

// WithTraceLimits bounds the snapshot window and step budget of traced runs.
func WithTraceLimits(l runner.TraceLimits) Option {
	return func(s *Server) { s.Trace = l }
}

// NewHandler creates the HTTP handler for engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{
		Engine:    engine,
		Logger:    slog.Default(),
		StepLimit: DefaultStepLimit,
		MaxCount:  DefaultMaxCount,
		Trace:     runner.DefaultTraceLimits(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/machine", s.GetMachine)
	r.Get("/graph", s.GetGraph)
	r.Post("/run", s.Run)
	r.Post("/enumerate", s.Enumerate)
	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RunRequest is the body of POST /run.
type RunRequest struct {
	Input     string  `json:"input"`
	Trace     bool    `json:"trace"`
	Window    int     `json:"window"`
	StepLimit *uint64 `json:"step_limit"`
}

// EnumerateRequest is the body of POST /enumerate.
type EnumerateRequest struct {
	Count int `json:"count"`
}

// EnumerateResponse lists accepted strings. Truncated is set when the
// enumeration stopped at its round limit before reaching Count.
type EnumerateResponse struct {
	Strings   []string `json:"strings"`
	Count     int      `json:"count"`
	Truncated bool     `json:"truncated,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Run handles the POST /run request.
func (s *Server) Run(w http.ResponseWriter, r *http.Request) {
	var body RunRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.fail(w, r, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	input, err := runner.SanitizeInput(body.Input)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}

	out, err := s.Engine.Run(r.Context(), input, s.runOptions(body)...)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		s.fail(w, r, status, err)
		return
	}
	s.reply(w, r, http.StatusOK, out)
}

func (s *Server) runOptions(body RunRequest) []turing.RunOption {
	limit := s.StepLimit
	if body.StepLimit != nil && *body.StepLimit > 0 && (limit == 0 || *body.StepLimit < limit) {
		limit = *body.StepLimit
	}
	if !body.Trace {
		return []turing.RunOption{turing.WithRunStepLimit(limit)}
	}
	return []turing.RunOption{
		turing.WithRunStepLimit(s.Trace.ClampSteps(limit)),
		turing.WithTrace(s.Trace.ClampWindow(body.Window)),
	}
}

// Enumerate handles the POST /enumerate request.
func (s *Server) Enumerate(w http.ResponseWriter, r *http.Request) {
	var body EnumerateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.fail(w, r, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if body.Count < 0 || (s.MaxCount > 0 && body.Count > s.MaxCount) {
		s.fail(w, r, http.StatusBadRequest, fmt.Errorf("count must be between 0 and %d", s.MaxCount))
		return
	}

	out, err := s.Engine.Enumerate(r.Context(), body.Count)
	resp := EnumerateResponse{Strings: out, Count: len(out)}
	if resp.Strings == nil {
		resp.Strings = []string{}
	}
	switch {
	case errors.Is(err, runtime.ErrRoundLimit):
		resp.Truncated = true
	case err != nil:
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	s.reply(w, r, http.StatusOK, resp)
}

// GetMachine handles the GET /machine request.
func (s *Server) GetMachine(w http.ResponseWriter, r *http.Request) {
	s.reply(w, r, http.StatusOK, schema.FromMachine(s.Engine.Machine()))
}

// GetGraph handles the GET /graph request. With ?input= the diagram
// highlights the states that run visits.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	var overlay *graph.Overlay
	if r.URL.Query().Has("input") {
		input, err := runner.SanitizeInput(r.URL.Query().Get("input"))
		if err != nil {
			s.fail(w, r, http.StatusBadRequest, err)
			return
		}
		out, err := s.Engine.Run(r.Context(), input,
			turing.WithRunStepLimit(s.StepLimit), turing.WithTrace(1))
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, domain.ErrInvalidInput) {
				status = http.StatusBadRequest
			}
			s.fail(w, r, status, err)
			return
		}
		overlay = graph.OverlayFromOutcome(out)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(graph.GenerateMermaid(s.Engine.Machine(), overlay))); err != nil {
		s.Logger.Error("GetGraph write failed", "err", err)
	}
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.reply(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.reply(w, r, http.StatusOK, map[string]string{
		"app":        "turing-http",
		"version":    strings.TrimSpace(turing.Version),
		"machine_id": s.Engine.Machine().Fingerprint(),
	})
}

func (s *Server) reply(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "path", r.URL.Path, "err", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "err", err)
	} else {
		s.Logger.Warn("request rejected", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "err", err)
	}
	s.reply(w, r, status, errorResponse{Error: err.Error()})
}
