package runtime

import "github.com/aretw0/turing/pkg/domain"

// StepKind classifies the result of a single step.
type StepKind int

const (
	// Moved means a transition was applied.
	Moved StepKind = iota
	// Accepted means the current state is accepting; δ was not consulted.
	Accepted
	// Rejected means the current state is the reject state or δ is undefined.
	Rejected
)

func (k StepKind) String() string {
	switch k {
	case Moved:
		return "moved"
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	}
	return "unknown"
}

// StepResult is the outcome of Step. State and Head describe the configuration after
// the step; they are unchanged unless Kind is Moved.
type StepResult struct {
	Kind  StepKind
	State domain.State
	Head  int
}

// Step applies at most one transition of m to (state, tape, head).
// The only side effect is the tape write of a Moved result.
//
// Priority: acceptance, then the reject state, then undefined-transition rejection.
func Step(m *domain.Machine, state domain.State, tape *domain.Tape, head int) StepResult {
	if m.IsAccepting(state) {
		return StepResult{Kind: Accepted, State: state, Head: head}
	}
	if m.IsReject(state) {
		return StepResult{Kind: Rejected, State: state, Head: head}
	}

	mv, ok := m.TransitionFor(state, tape.Read(head))
	if !ok {
		return StepResult{Kind: Rejected, State: state, Head: head}
	}

	tape.Write(head, mv.Write)
	return StepResult{Kind: Moved, State: mv.Next, Head: head + int(mv.Dir)}
}

// Advance steps cfg in place and reports what happened.
func Advance(m *domain.Machine, cfg *domain.Configuration) StepKind {
	res := Step(m, cfg.State, cfg.Tape, cfg.Head)
	cfg.State = res.State
	cfg.Head = res.Head
	return res.Kind
}
