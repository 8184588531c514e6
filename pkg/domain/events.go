package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart          EventType = "run_start"
	EventRunEnd            EventType = "run_end"
	EventRound             EventType = "round"
	EventCandidateResolved EventType = "candidate_resolved"
	EventEnumerationEnd    EventType = "enumeration_end"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	// CorrelationID ties together the events of one run or one enumeration.
	CorrelationID string `json:"correlation_id"`
}

// RunEvent describes the start or end of a single-input run.
type RunEvent struct {
	EventBase
	MachineID string  `json:"machine_id"`
	Input     string  `json:"input"`
	Verdict   Verdict `json:"verdict,omitempty"`
	Steps     uint64  `json:"steps,omitempty"`
}

// RoundEvent is emitted after each dovetailing round.
type RoundEvent struct {
	EventBase
	Round    uint64 `json:"round"`
	PoolSize int    `json:"pool_size"`
	Emitted  int    `json:"emitted"`
}

// CandidateEvent is emitted when a pooled candidate resolves.
// StepLimitExceeded means the candidate was discarded at the ceiling.
type CandidateEvent struct {
	EventBase
	Candidate string  `json:"candidate"`
	Verdict   Verdict `json:"verdict"`
	Steps     uint64  `json:"steps"`
	Round     uint64  `json:"round"`
}

// EnumerationEvent summarizes a finished enumeration.
type EnumerationEvent struct {
	EventBase
	MachineID string `json:"machine_id"`
	Requested int    `json:"requested"`
	Emitted   int    `json:"emitted"`
	Rounds    uint64 `json:"rounds"`
	Cached    bool   `json:"cached"`
	Err       string `json:"error,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnRunStart          func(context.Context, *RunEvent)
	OnRunEnd            func(context.Context, *RunEvent)
	OnRound             func(context.Context, *RoundEvent)
	OnCandidateResolved func(context.Context, *CandidateEvent)
	OnEnumerationEnd    func(context.Context, *EnumerationEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnRunStart:          chain(h.OnRunStart, other.OnRunStart),
		OnRunEnd:            chain(h.OnRunEnd, other.OnRunEnd),
		OnRound:             chain(h.OnRound, other.OnRound),
		OnCandidateResolved: chain(h.OnCandidateResolved, other.OnCandidateResolved),
		OnEnumerationEnd:    chain(h.OnEnumerationEnd, other.OnEnumerationEnd),
	}
}

func chain[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *E) {
		a(ctx, e)
		b(ctx, e)
	}
}
