package turing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/schema"
)

// DefaultLockTTL bounds how long a listing computation holds its lock.
const DefaultLockTTL = 5 * time.Minute

// Enumerator is a lazy, resumable listing of a machine's language.
type Enumerator = runtime.Enumerator

// Engine is the high-level entry point of the library.
// It wraps the internal runtime and adds listing caching.
// An Engine is safe for concurrent use.
type Engine struct {
	runtime *runtime.Engine
	policy  domain.EnumerationPolicy
	run     runtime.RunOptions

	store   ports.ListingStore
	locker  ports.DistributedLocker
	lockTTL time.Duration

	hooks  domain.LifecycleHooks
	logger *slog.Logger
	Name   string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithPolicy sets the enumeration policy. Zero fields take the defaults.
func WithPolicy(p domain.EnumerationPolicy) Option {
	return func(e *Engine) {
		e.policy = p.Normalize()
	}
}

// WithStepLimit sets the default step budget of Run. Zero means unbounded.
func WithStepLimit(n uint64) Option {
	return func(e *Engine) {
		e.run.StepLimit = n
	}
}

// WithListingStore caches enumeration results in s.
func WithListingStore(s ports.ListingStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithLocker serializes listing computation per key, so concurrent callers
// (possibly on other replicas) reuse one result instead of racing.
// A ttl of zero uses DefaultLockTTL.
func WithLocker(l ports.DistributedLocker, ttl time.Duration) Option {
	return func(e *Engine) {
		e.locker = l
		e.lockTTL = ttl
	}
}

// WithName labels the engine in logs.
func WithName(name string) Option {
	return func(e *Engine) {
		e.Name = name
	}
}

// New creates an engine for m.
func New(m *domain.Machine, opts ...Option) (*Engine, error) {
	if m == nil {
		return nil, fmt.Errorf("machine is required")
	}
	eng := &Engine{
		policy:  domain.DefaultEnumerationPolicy(),
		lockTTL: DefaultLockTTL,
	}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.lockTTL <= 0 {
		eng.lockTTL = DefaultLockTTL
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("machine", eng.Name)
	}

	eng.runtime = runtime.NewEngine(m,
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
		runtime.WithPolicy(eng.policy),
	)
	return eng, nil
}

// Load reads a machine file (.tm, .yaml, .yml or .json) and creates an engine for it.
// The engine is named after the file unless WithName is given.
func Load(path string, opts ...Option) (*Engine, error) {
	m, err := schema.LoadFile(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return New(m, append([]Option{WithName(name)}, opts...)...)
}

// Machine returns the machine the engine executes.
func (e *Engine) Machine() *domain.Machine { return e.runtime.Machine() }

// MachineID returns the machine fingerprint.
func (e *Engine) MachineID() string { return e.runtime.MachineID() }

// Policy returns the enumeration policy.
func (e *Engine) Policy() domain.EnumerationPolicy { return e.policy }

// Store returns the listing store, or nil when caching is off.
func (e *Engine) Store() ports.ListingStore { return e.store }

// RunOption adjusts a single Run call.
type RunOption func(*runtime.RunOptions)

// WithRunStepLimit overrides the engine's step budget for one run. Zero means unbounded.
func WithRunStepLimit(n uint64) RunOption {
	return func(o *runtime.RunOptions) {
		o.StepLimit = n
	}
}

// WithTrace records a snapshot of every configuration.
// A positive window limits each snapshot to the cells within that distance of the head.
func WithTrace(window int) RunOption {
	return func(o *runtime.RunOptions) {
		o.Trace = true
		o.TraceWindow = max(window, 0)
	}
}

// WithTraceFunc streams every snapshot to fn as the run proceeds without
// retaining them in the outcome.
func WithTraceFunc(window int, fn func(domain.Snapshot)) RunOption {
	return func(o *runtime.RunOptions) {
		o.OnSnapshot = fn
		o.TraceWindow = max(window, 0)
	}
}

// Run executes the machine on input.
// It returns domain.ErrInvalidInput if input has a symbol outside the input alphabet.
func (e *Engine) Run(ctx context.Context, input string, opts ...RunOption) (domain.Outcome, error) {
	syms, err := e.Machine().ParseInput(input)
	if err != nil {
		return domain.Outcome{}, err
	}
	o := e.run
	for _, opt := range opts {
		opt(&o)
	}
	return e.runtime.Run(ctx, syms, o)
}

// Enumerator returns a lazy enumerator under the engine policy.
// It bypasses the listing store.
func (e *Engine) Enumerator() *Enumerator {
	return e.runtime.NewEnumerator(e.policy)
}

// Enumerate returns the first count strings accepted by the machine in canonical
// order. Fewer are returned when the candidate space is finite and runs out.
// With a listing store configured, results are reused across calls.
func (e *Engine) Enumerate(ctx context.Context, count int) ([]string, error) {
	if count <= 0 {
		return []string{}, nil
	}
	if e.store == nil {
		out, _, err := e.runtime.Enumerate(ctx, count, e.policy)
		return out, err
	}

	key := domain.ListingKey(e.MachineID(), e.policy)
	if out, ok := e.cached(ctx, key, count); ok {
		return out, nil
	}

	if e.locker != nil {
		unlock, err := e.locker.Lock(ctx, "enumerate:"+key, e.lockTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to lock listing %s: %w", key, err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				e.logger.Warn("listing unlock failed", "key", key, "err", err)
			}
		}()

		// Another holder may have finished the work while we waited.
		if out, ok := e.cached(ctx, key, count); ok {
			return out, nil
		}
	}

	out, exhausted, err := e.runtime.Enumerate(ctx, count, e.policy)
	if err != nil {
		return out, err
	}

	listing := &domain.Listing{
		MachineID: e.MachineID(),
		Policy:    e.policy,
		Strings:   out,
		Exhausted: exhausted,
		CreatedAt: time.Now().UTC(),
	}
	if err := e.store.Save(ctx, key, listing); err != nil {
		e.logger.Warn("listing save failed", "key", key, "err", err)
	}
	return out, nil
}

func (e *Engine) cached(ctx context.Context, key string, count int) ([]string, bool) {
	l, err := e.store.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrListingNotFound) {
			e.logger.Warn("listing load failed", "key", key, "err", err)
		}
		return nil, false
	}
	if l.MachineID != e.MachineID() || !l.Covers(count) {
		return nil, false
	}

	n := min(count, len(l.Strings))
	out := make([]string, n)
	copy(out, l.Strings[:n])

	e.logger.Debug("listing cache hit", "key", key, "requested", count, "stored", len(l.Strings))
	e.runtime.EmitCachedEnumeration(ctx, count, n)
	return out, true
}
