package runtime

import (
	"context"

	"github.com/aretw0/turing/pkg/domain"
)

// ctxCheckInterval is how many steps a run takes between cancellation checks.
const ctxCheckInterval = 4096

// RunOptions configures a single run.
type RunOptions struct {
	// StepLimit bounds the number of steps. Zero means unbounded.
	StepLimit uint64
	// Trace records a snapshot of every configuration.
	Trace bool
	// TraceWindow is the radius of tape cells captured around the head.
	// Zero captures the whole stored region.
	TraceWindow int
	// OnSnapshot, when set, receives every snapshot as it is taken. Snapshots
	// are only retained in the outcome when Trace is also set.
	OnSnapshot func(domain.Snapshot)
}

// Run drives m on input until it halts or exhausts opts.StepLimit.
// The returned error is non-nil only when ctx is cancelled; the outcome then
// describes the configuration reached so far with a StepLimitExceeded verdict.
func Run(ctx context.Context, m *domain.Machine, input []domain.Symbol, opts RunOptions) (domain.Outcome, error) {
	cfg := domain.NewConfiguration(m, input)

	var (
		trace []domain.Snapshot
		steps uint64
	)

	record := func() {
		if !opts.Trace && opts.OnSnapshot == nil {
			return
		}
		s := cfg.Snapshot(steps, opts.TraceWindow)
		if opts.OnSnapshot != nil {
			opts.OnSnapshot(s)
		}
		if opts.Trace {
			trace = append(trace, s)
		}
	}

	finish := func(v domain.Verdict) domain.Outcome {
		if !v.Halted() {
			record()
		}
		return domain.Outcome{
			Verdict: v,
			Steps:   steps,
			State:   cfg.State,
			Head:    cfg.Head,
			Tape:    cfg.Tape.String(),
			Trace:   trace,
		}
	}

	for {
		if opts.StepLimit > 0 && steps >= opts.StepLimit {
			return finish(domain.VerdictStepLimitExceeded), nil
		}
		if steps > 0 && steps%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return finish(domain.VerdictStepLimitExceeded), err
			}
		}

		record()

		kind := Advance(m, cfg)
		steps++

		switch kind {
		case Accepted:
			return finish(domain.VerdictAccepted), nil
		case Rejected:
			return finish(domain.VerdictRejected), nil
		}
	}
}
