package runner

const (
	// DefaultMaxTraceWindow bounds the tape radius of a snapshot sent to a client.
	DefaultMaxTraceWindow = 64
	// DefaultMaxTraceSteps bounds the steps of a traced run served to a client.
	DefaultMaxTraceSteps uint64 = 10_000
)

// TraceLimits bound the trace a network client can request. Each snapshot
// carries at most 2*Window+1 cells and a traced run takes at most Steps steps,
// so a response holds at most Steps+1 snapshots.
type TraceLimits struct {
	Window int
	Steps  uint64
}

// DefaultTraceLimits returns the limits applied when a server sets none.
func DefaultTraceLimits() TraceLimits {
	return TraceLimits{Window: DefaultMaxTraceWindow, Steps: DefaultMaxTraceSteps}
}

// ClampWindow returns the radius to trace with. A non-positive request, which would
// otherwise capture the whole tape, gets the maximum.
func (l TraceLimits) ClampWindow(window int) int {
	if l.Window <= 0 {
		return window
	}
	if window <= 0 || window > l.Window {
		return l.Window
	}
	return window
}

// ClampSteps lowers a step budget to the traced maximum. Zero means unbounded.
func (l TraceLimits) ClampSteps(limit uint64) uint64 {
	if l.Steps == 0 {
		return limit
	}
	if limit == 0 || limit > l.Steps {
		return l.Steps
	}
	return limit
}
