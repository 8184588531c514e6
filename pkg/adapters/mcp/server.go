package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/aretw0/turing/pkg/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

// MachineURI is the resource holding the machine document.
const MachineURI = "turing://machine"

const (
	defaultStepLimit uint64 = 1_000_000
	defaultMaxCount         = 10_000
)

// RunResponse is the structured result of run_machine.
type RunResponse struct {
	domain.Outcome
	Message string `json:"message" jsonschema_description:"Human readable verdict"`
}

// EnumerateResponse is the structured result of enumerate_language.
type EnumerateResponse struct {
	Strings   []string `json:"strings" jsonschema_description:"Accepted strings in canonical order"`
	Count     int      `json:"count"`
	Truncated bool     `json:"truncated" jsonschema_description:"The enumeration hit its round limit before reaching count"`
}

// Engine defines what the MCP server needs from the turing engine.
type Engine interface {
	Machine() *domain.Machine
	Run(ctx context.Context, input string, opts ...turing.RunOption) (domain.Outcome, error)
	Enumerate(ctx context.Context, count int) ([]string, error)
}

// Server wraps an Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	name      string
	stepLimit uint64
	maxCount  int
	trace     runner.TraceLimits
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithName sets the machine label used by describe_machine.
func WithName(name string) Option {
	return func(s *Server) { s.name = name }
}

// WithStepLimit sets the budget for run_machine calls that omit step_limit and caps the rest.
func WithStepLimit(n uint64) Option {
	return func(s *Server) { s.stepLimit = n }
}

// WithMaxCount bounds enumerate_language requests.
func WithMaxCount(n int) Option {
	return func(s *Server) { s.maxCount = n }
}

// WithTraceLimits bounds the snapshot window and step budget of traced runs.
func WithTraceLimits(l runner.TraceLimits) Option {
	return func(s *Server) { s.trace = l }
}

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		stepLimit: defaultStepLimit,
		maxCount:  defaultMaxCount,
		trace:     runner.DefaultTraceLimits(),
		logger:    slog.Default(),
		mcpServer: server.NewMCPServer("turing-mcp", strings.TrimSpace(turing.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	runTool := mcp.NewTool("run_machine",
		mcp.WithDescription("Run the Turing machine on one input string and report whether it is accepted."),
		mcp.WithString("input", mcp.Description("Input string over the machine's input alphabet (empty for ε)")),
		mcp.WithBoolean("trace", mcp.Description("Include a snapshot of every configuration")),
		mcp.WithNumber("window", mcp.Description("Trace cells kept on each side of the head (0 keeps the whole tape)")),
		mcp.WithNumber("step_limit", mcp.Description("Maximum number of steps before giving up")),
		mcp.WithOutputSchema[RunResponse](),
	)
	s.mcpServer.AddTool(runTool, mcp.NewStructuredToolHandler(s.handleRunMachine))

	enumerateTool := mcp.NewTool("enumerate_language",
		mcp.WithDescription("List the first strings of the machine's language, shortest first."),
		mcp.WithNumber("count", mcp.Required(), mcp.Description("How many strings to list")),
		mcp.WithOutputSchema[EnumerateResponse](),
	)
	s.mcpServer.AddTool(enumerateTool, mcp.NewStructuredToolHandler(s.handleEnumerate))

	s.mcpServer.AddTool(mcp.NewTool("describe_machine",
		mcp.WithDescription("Describe the machine: states, alphabets, transition table, lint findings and a Mermaid diagram."),
	), s.handleDescribe)
}

type runArgs struct {
	Input     string `mapstructure:"input"`
	Trace     bool   `mapstructure:"trace"`
	Window    int    `mapstructure:"window"`
	StepLimit int64  `mapstructure:"step_limit"`
}

type enumerateArgs struct {
	Count int `mapstructure:"count"`
}

func decodeArgs(args map[string]interface{}, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(args); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func (s *Server) handleRunMachine(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RunResponse, error) {
	var a runArgs
	if err := decodeArgs(args, &a); err != nil {
		return RunResponse{}, err
	}
	if a.StepLimit < 0 || a.Window < 0 {
		return RunResponse{}, fmt.Errorf("step_limit and window must not be negative")
	}

	limit := s.stepLimit
	if a.StepLimit > 0 && (limit == 0 || uint64(a.StepLimit) < limit) {
		limit = uint64(a.StepLimit)
	}
	opts := []turing.RunOption{turing.WithRunStepLimit(limit)}
	if a.Trace {
		opts = []turing.RunOption{
			turing.WithRunStepLimit(s.trace.ClampSteps(limit)),
			turing.WithTrace(s.trace.ClampWindow(a.Window)),
		}
	}

	input, err := runner.SanitizeInput(a.Input)
	if err != nil {
		return RunResponse{}, err
	}

	out, err := s.engine.Run(ctx, input, opts...)
	if err != nil {
		s.logger.Warn("MCP run_machine failed", "err", err, "size", len(input))
		return RunResponse{}, fmt.Errorf("run failed: %w", err)
	}
	return RunResponse{Outcome: out, Message: tui.Verdict(input, out)}, nil
}

func (s *Server) handleEnumerate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (EnumerateResponse, error) {
	var a enumerateArgs
	if err := decodeArgs(args, &a); err != nil {
		return EnumerateResponse{}, err
	}
	if a.Count < 0 || (s.maxCount > 0 && a.Count > s.maxCount) {
		return EnumerateResponse{}, fmt.Errorf("count must be between 0 and %d", s.maxCount)
	}

	out, err := s.engine.Enumerate(ctx, a.Count)
	resp := EnumerateResponse{Strings: out, Count: len(out)}
	if resp.Strings == nil {
		resp.Strings = []string{}
	}
	switch {
	case errors.Is(err, runtime.ErrRoundLimit):
		resp.Truncated = true
	case err != nil:
		return EnumerateResponse{}, fmt.Errorf("enumerate failed: %w", err)
	}
	return resp, nil
}

func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m := s.engine.Machine()
	var sb strings.Builder
	sb.WriteString(tui.Describe(m, s.name))
	sb.WriteString("\n## Diagram\n\n```mermaid\n")
	sb.WriteString(graph.GenerateMermaid(m, nil))
	sb.WriteString("```\n")
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(MachineURI, "Machine Definition",
		mcp.WithMIMEType("application/json"),
	), s.readMachine)
}

func (s *Server) readMachine(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(schema.FromMachine(s.engine.Machine()))
	if err != nil {
		return nil, fmt.Errorf("failed to encode machine: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      MachineURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
