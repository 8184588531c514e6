package runtime

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/google/uuid"
)

// Engine binds a machine to its observability and enumeration policy.
// It is safe for concurrent use: every call owns its own tapes.
type Engine struct {
	machine   *domain.Machine
	machineID string
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	policy    domain.EnumerationPolicy
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger. A nil logger keeps the default.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithPolicy sets the default enumeration policy.
func WithPolicy(p domain.EnumerationPolicy) EngineOption {
	return func(e *Engine) {
		e.policy = p.Normalize()
	}
}

// NewEngine creates an engine for m.
func NewEngine(m *domain.Machine, opts ...EngineOption) *Engine {
	e := &Engine{
		machine:   m,
		machineID: m.Fingerprint(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		policy:    domain.DefaultEnumerationPolicy(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Machine returns the machine the engine executes.
func (e *Engine) Machine() *domain.Machine { return e.machine }

// MachineID returns the machine fingerprint.
func (e *Engine) MachineID() string { return e.machineID }

// Policy returns the default enumeration policy.
func (e *Engine) Policy() domain.EnumerationPolicy { return e.policy }

// Run executes the machine on input, emitting run lifecycle events.
func (e *Engine) Run(ctx context.Context, input []domain.Symbol, opts RunOptions) (domain.Outcome, error) {
	id := uuid.NewString()
	w := domain.SymbolsString(input)

	if e.hooks.OnRunStart != nil {
		e.hooks.OnRunStart(ctx, &domain.RunEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRunStart, CorrelationID: id},
			MachineID: e.machineID,
			Input:     w,
		})
	}

	start := time.Now()
	out, err := Run(ctx, e.machine, input, opts)

	e.logger.DebugContext(ctx, "run finished",
		"input", w,
		"verdict", out.Verdict,
		"steps", out.Steps,
		"duration", time.Since(start),
		"error", err,
	)

	if e.hooks.OnRunEnd != nil {
		e.hooks.OnRunEnd(ctx, &domain.RunEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRunEnd, CorrelationID: id},
			MachineID: e.machineID,
			Input:     w,
			Verdict:   out.Verdict,
			Steps:     out.Steps,
		})
	}
	return out, err
}

// EffectivePolicy fills the zero fields of p from the engine default.
func (e *Engine) EffectivePolicy(p domain.EnumerationPolicy) domain.EnumerationPolicy {
	if p.Ceiling == 0 {
		p.Ceiling = e.policy.Ceiling
	}
	if p.AdmitPerRound <= 0 {
		p.AdmitPerRound = e.policy.AdmitPerRound
	}
	if p.MaxRounds == 0 {
		p.MaxRounds = e.policy.MaxRounds
	}
	return p.Normalize()
}

// NewEnumerator returns an enumerator wired to the engine's hooks and logger.
// Zero fields of p take the engine default.
func (e *Engine) NewEnumerator(p domain.EnumerationPolicy) *Enumerator {
	en := NewEnumerator(e.machine, e.EffectivePolicy(p))
	en.hooks = e.hooks
	en.logger = e.logger
	en.correlationID = uuid.NewString()
	return en
}

// Enumerate collects the first n accepted strings under p and reports the outcome
// to the lifecycle hooks.
func (e *Engine) Enumerate(ctx context.Context, n int, p domain.EnumerationPolicy) ([]string, bool, error) {
	en := e.NewEnumerator(p)
	out, exhausted, err := en.Collect(ctx, n)
	stats := en.Stats()

	e.logger.DebugContext(ctx, "enumeration finished",
		"requested", n,
		"emitted", len(out),
		"rounds", stats.Rounds,
		"admitted", stats.Admitted,
		"discarded", stats.Discarded,
		"peak_pool", stats.PeakPool,
		"error", err,
	)

	e.emitEnumerationEnd(ctx, en.correlationID, n, len(out), stats.Rounds, false, err)
	return out, exhausted, err
}

// EmitCachedEnumeration reports an enumeration answered without running the machine.
func (e *Engine) EmitCachedEnumeration(ctx context.Context, n, emitted int) {
	e.emitEnumerationEnd(ctx, uuid.NewString(), n, emitted, 0, true, nil)
}

func (e *Engine) emitEnumerationEnd(ctx context.Context, id string, n, emitted int, rounds uint64, cached bool, err error) {
	if e.hooks.OnEnumerationEnd == nil {
		return
	}
	ev := &domain.EnumerationEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventEnumerationEnd, CorrelationID: id},
		MachineID: e.machineID,
		Requested: n,
		Emitted:   emitted,
		Rounds:    rounds,
		Cached:    cached,
	}
	if err != nil {
		ev.Err = err.Error()
	}
	e.hooks.OnEnumerationEnd(ctx, ev)
}
