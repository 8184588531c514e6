package domain

// Configuration is the instantaneous description of a run in progress.
// It is exclusively owned by the run that created it.
type Configuration struct {
	State State
	Tape  *Tape
	Head  int
}

// NewConfiguration returns the initial configuration of m on input.
func NewConfiguration(m *Machine, input []Symbol) *Configuration {
	return &Configuration{
		State: m.Initial(),
		Tape:  NewTape(m.Blank(), input),
		Head:  0,
	}
}

// Snapshot is a serialized trace record of a configuration.
type Snapshot struct {
	// Step is the number of steps taken before this configuration was observed.
	Step  uint64 `json:"step"`
	State State  `json:"state"`
	Head  int    `json:"head"`

	// Offset is the tape position of the first cell in Cells.
	Offset int    `json:"offset"`
	Cells  string `json:"cells"`
}

// Snapshot captures c. With radius > 0 the window spans head±radius;
// otherwise it spans the stored tape region extended to include the head.
func (c *Configuration) Snapshot(step uint64, radius int) Snapshot {
	var lo, hi int
	if radius > 0 {
		lo, hi = c.Head-radius, c.Head+radius+1
	} else {
		lo, hi = c.Tape.Bounds()
		lo = min(lo, c.Head)
		hi = max(hi, c.Head+1)
	}
	return Snapshot{
		Step:   step,
		State:  c.State,
		Head:   c.Head,
		Offset: lo,
		Cells:  SymbolsString(c.Tape.Window(lo, hi)),
	}
}

// HeadIndex returns the index of the head cell within Cells, in runes.
func (s Snapshot) HeadIndex() int {
	return s.Head - s.Offset
}
