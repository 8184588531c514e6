package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/turing/pkg/domain"
)

// LoggingHooks returns hooks that log run and enumeration summaries.
// Rounds and candidates are logged at debug level only.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunEnd: func(ctx context.Context, e *domain.RunEvent) {
			logger.InfoContext(ctx, "run_end",
				"correlation_id", e.CorrelationID,
				"input", e.Input,
				"verdict", e.Verdict,
				"steps", e.Steps,
			)
		},
		OnCandidateResolved: func(ctx context.Context, e *domain.CandidateEvent) {
			logger.DebugContext(ctx, "candidate_resolved",
				"correlation_id", e.CorrelationID,
				"candidate", e.Candidate,
				"verdict", e.Verdict,
				"steps", e.Steps,
			)
		},
		OnEnumerationEnd: func(ctx context.Context, e *domain.EnumerationEvent) {
			attrs := []any{
				"correlation_id", e.CorrelationID,
				"requested", e.Requested,
				"emitted", e.Emitted,
				"rounds", e.Rounds,
				"cached", e.Cached,
			}
			if e.Err != "" {
				logger.WarnContext(ctx, "enumeration_end", append(attrs, "error", e.Err)...)
				return
			}
			logger.InfoContext(ctx, "enumeration_end", attrs...)
		},
	}
}
