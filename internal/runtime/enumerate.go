package runtime

import (
	"context"
	"errors"
	"io"
	"iter"
	"log/slog"
	"time"

	"github.com/aretw0/turing/pkg/domain"
)

// ErrRoundLimit is returned when an enumeration reaches its MaxRounds policy.
var ErrRoundLimit = errors.New("enumeration round limit reached")

// Stats counts the work performed by an Enumerator.
type Stats struct {
	Rounds    uint64 `json:"rounds"`
	Admitted  uint64 `json:"admitted"`
	Accepted  uint64 `json:"accepted"`
	Rejected  uint64 `json:"rejected"`
	Discarded uint64 `json:"discarded"`
	PeakPool  int    `json:"peak_pool"`
	Emitted   int    `json:"emitted"`
}

// poolEntry is a suspended run of one candidate.
type poolEntry struct {
	candidate string
	cfg       *domain.Configuration
	steps     uint64
	verdict   domain.Verdict // empty while unresolved
}

// Enumerator lists the strings accepted by a machine by dovetailing bounded
// runs over the canonical candidate sequence. It is not safe for concurrent use.
//
// Each round admits up to AdmitPerRound new candidates and advances every
// unresolved pooled run by exactly one step. Runs that reach Ceiling steps
// without halting are discarded. Accepted strings are released in candidate
// order: an accepted entry waits until every earlier candidate has resolved.
type Enumerator struct {
	machine    *domain.Machine
	policy     domain.EnumerationPolicy
	candidates *Candidates
	exhausted  bool

	pool  []*poolEntry
	ready []string
	stats Stats

	hooks         domain.LifecycleHooks
	logger        *slog.Logger
	correlationID string
}

// NewEnumerator returns an enumerator over m. Zero policy fields take defaults.
func NewEnumerator(m *domain.Machine, policy domain.EnumerationPolicy) *Enumerator {
	return &Enumerator{
		machine:    m,
		policy:     policy.Normalize(),
		candidates: NewCandidates(m.InputAlphabet()),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Policy returns the effective policy.
func (e *Enumerator) Policy() domain.EnumerationPolicy { return e.policy }

// Stats returns the work counters so far.
func (e *Enumerator) Stats() Stats { return e.stats }

// Next returns the next accepted string. It returns io.EOF once the candidate
// space is exhausted, ErrRoundLimit when MaxRounds is reached, or the context error.
func (e *Enumerator) Next(ctx context.Context) (string, error) {
	for len(e.ready) == 0 {
		if e.exhausted && len(e.pool) == 0 {
			return "", io.EOF
		}
		if e.policy.MaxRounds > 0 && e.stats.Rounds >= e.policy.MaxRounds {
			return "", ErrRoundLimit
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		e.round(ctx)
	}

	w := e.ready[0]
	e.ready = e.ready[1:]
	e.stats.Emitted++
	return w, nil
}

// All yields accepted strings until the enumeration ends. A terminal error other
// than io.EOF is yielded once with an empty string.
func (e *Enumerator) All(ctx context.Context) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for {
			w, err := e.Next(ctx)
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield("", err)
				return
			}
			if !yield(w, nil) {
				return
			}
		}
	}
}

func (e *Enumerator) round(ctx context.Context) {
	e.stats.Rounds++
	e.admit()

	for _, en := range e.pool {
		if en.verdict != "" {
			continue
		}
		e.advance(ctx, en)
	}

	e.stats.PeakPool = max(e.stats.PeakPool, len(e.pool))
	e.release()

	if e.hooks.OnRound != nil {
		e.hooks.OnRound(ctx, &domain.RoundEvent{
			EventBase: e.event(domain.EventRound),
			Round:     e.stats.Rounds,
			PoolSize:  len(e.pool),
			Emitted:   e.stats.Emitted + len(e.ready),
		})
	}
}

func (e *Enumerator) admit() {
	for i := 0; i < e.policy.AdmitPerRound && !e.exhausted; i++ {
		w, ok := e.candidates.Next()
		if !ok {
			e.exhausted = true
			break
		}
		// Candidates are drawn from Σ, so conversion cannot fail.
		syms := make([]domain.Symbol, 0, len(w))
		for _, r := range w {
			syms = append(syms, domain.Symbol(r))
		}
		e.pool = append(e.pool, &poolEntry{
			candidate: w,
			cfg:       domain.NewConfiguration(e.machine, syms),
		})
		e.stats.Admitted++
	}
}

func (e *Enumerator) advance(ctx context.Context, en *poolEntry) {
	kind := Advance(e.machine, en.cfg)
	en.steps++

	switch kind {
	case Accepted:
		en.verdict = domain.VerdictAccepted
		e.stats.Accepted++
	case Rejected:
		en.verdict = domain.VerdictRejected
		e.stats.Rejected++
	default:
		if en.steps < e.policy.Ceiling {
			return
		}
		en.verdict = domain.VerdictStepLimitExceeded
		e.stats.Discarded++
		e.logger.Debug("candidate discarded at ceiling", "candidate", en.candidate, "ceiling", e.policy.Ceiling)
	}

	// Resolved runs no longer need their tape.
	en.cfg = nil

	if e.hooks.OnCandidateResolved != nil {
		e.hooks.OnCandidateResolved(ctx, &domain.CandidateEvent{
			EventBase: e.event(domain.EventCandidateResolved),
			Candidate: en.candidate,
			Verdict:   en.verdict,
			Steps:     en.steps,
			Round:     e.stats.Rounds,
		})
	}
}

// release moves the resolved prefix of the pool out, queueing accepted strings.
func (e *Enumerator) release() {
	n := 0
	for n < len(e.pool) && e.pool[n].verdict != "" {
		if e.pool[n].verdict == domain.VerdictAccepted {
			e.ready = append(e.ready, e.pool[n].candidate)
		}
		e.pool[n] = nil
		n++
	}
	e.pool = e.pool[n:]
}

func (e *Enumerator) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp:     time.Now(),
		Type:          t,
		CorrelationID: e.correlationID,
	}
}

// Enumerate returns the first n strings accepted by m in canonical order.
// Fewer strings are returned, with a nil error, when the candidate space is
// exhausted first. n <= 0 performs no work.
func Enumerate(ctx context.Context, m *domain.Machine, n int, policy domain.EnumerationPolicy) ([]string, error) {
	out, _, err := NewEnumerator(m, policy).Collect(ctx, n)
	return out, err
}

// Collect drains up to n strings. exhausted reports whether the candidate
// space ran out before n strings were found.
func (e *Enumerator) Collect(ctx context.Context, n int) (out []string, exhausted bool, err error) {
	out = make([]string, 0, max(n, 0))
	for len(out) < n {
		w, err := e.Next(ctx)
		if errors.Is(err, io.EOF) {
			return out, true, nil
		}
		if err != nil {
			return out, false, err
		}
		out = append(out, w)
	}
	return out, false, nil
}
