package domain

// Verdict classifies how a run ended.
type Verdict string

const (
	VerdictAccepted          Verdict = "accepted"
	VerdictRejected          Verdict = "rejected"
	VerdictStepLimitExceeded Verdict = "step_limit_exceeded" // Not an error: the run did not halt in budget
)

// Halted reports whether the verdict is a halting one.
func (v Verdict) Halted() bool {
	return v == VerdictAccepted || v == VerdictRejected
}

// Outcome is the result of running a machine on one input.
type Outcome struct {
	Verdict Verdict `json:"verdict"`

	// Steps is the number of step-engine invocations performed.
	Steps uint64 `json:"steps"`

	// State and Head describe the last configuration reached.
	State State `json:"state"`
	Head  int   `json:"head"`

	// Tape is the final stored region with surrounding blanks trimmed.
	Tape string `json:"tape"`

	// Trace is populated only when tracing was requested.
	Trace []Snapshot `json:"trace,omitempty"`
}

// Accepted is a shorthand for Verdict == VerdictAccepted.
func (o Outcome) Accepted() bool {
	return o.Verdict == VerdictAccepted
}
