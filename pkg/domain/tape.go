package domain

import "slices"

// Tape is a sequence of symbols unbounded in both directions.
// Only the region that has been touched is stored; every other cell reads as blank.
type Tape struct {
	blank Symbol
	right []Symbol // cells 0, 1, 2, ...
	left  []Symbol // cells -1, -2, -3, ...
}

// NewTape returns a tape holding input left-aligned at position 0.
func NewTape(blank Symbol, input []Symbol) *Tape {
	return &Tape{
		blank: blank,
		right: slices.Clone(input),
	}
}

// Blank returns the symbol read from unwritten cells.
func (t *Tape) Blank() Symbol { return t.blank }

// Read returns the symbol at pos.
func (t *Tape) Read(pos int) Symbol {
	if pos >= 0 {
		if pos < len(t.right) {
			return t.right[pos]
		}
		return t.blank
	}
	i := -pos - 1
	if i < len(t.left) {
		return t.left[i]
	}
	return t.blank
}

// Write stores s at pos, growing the stored region as needed.
func (t *Tape) Write(pos int, s Symbol) {
	if pos >= 0 {
		t.right = grow(t.right, pos, t.blank)
		t.right[pos] = s
		return
	}
	i := -pos - 1
	t.left = grow(t.left, i, t.blank)
	t.left[i] = s
}

func grow(cells []Symbol, idx int, blank Symbol) []Symbol {
	for len(cells) <= idx {
		cells = append(cells, blank)
	}
	return cells
}

// Bounds returns the half-open interval [lo, hi) of stored cells.
func (t *Tape) Bounds() (lo, hi int) {
	return -len(t.left), len(t.right)
}

// Window returns the cells in [lo, hi).
func (t *Tape) Window(lo, hi int) []Symbol {
	if hi < lo {
		return nil
	}
	out := make([]Symbol, 0, hi-lo)
	for p := lo; p < hi; p++ {
		out = append(out, t.Read(p))
	}
	return out
}

// Clone returns an independent copy of the tape.
func (t *Tape) Clone() *Tape {
	return &Tape{
		blank: t.blank,
		right: slices.Clone(t.right),
		left:  slices.Clone(t.left),
	}
}

// String returns the stored region with leading and trailing blanks removed.
func (t *Tape) String() string {
	lo, hi := t.Bounds()
	for lo < hi && t.Read(lo) == t.blank {
		lo++
	}
	for hi > lo && t.Read(hi-1) == t.blank {
		hi--
	}
	return SymbolsString(t.Window(lo, hi))
}
