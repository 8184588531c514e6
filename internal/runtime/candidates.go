package runtime

import (
	"slices"

	"github.com/aretw0/turing/pkg/domain"
)

// Candidates generates strings over an alphabet in canonical order:
// ascending length, then lexicographic order within a length.
// The sequence is infinite unless the alphabet is empty, in which case
// it holds only the empty string.
type Candidates struct {
	alphabet []domain.Symbol
	digits   []int
	started  bool
	done     bool
}

// NewCandidates returns a generator over alphabet, which must already be in
// the desired symbol order.
func NewCandidates(alphabet []domain.Symbol) *Candidates {
	return &Candidates{alphabet: slices.Clone(alphabet)}
}

// Next returns the next candidate, or false once the sequence is exhausted.
func (c *Candidates) Next() (string, bool) {
	if c.done {
		return "", false
	}
	if !c.started {
		c.started = true
		return "", true
	}
	if len(c.alphabet) == 0 {
		c.done = true
		return "", false
	}

	c.increment()

	out := make([]rune, len(c.digits))
	for i, d := range c.digits {
		out[i] = rune(c.alphabet[d])
	}
	return string(out), true
}

// increment advances the odometer, growing the length on overflow.
func (c *Candidates) increment() {
	for i := len(c.digits) - 1; i >= 0; i-- {
		c.digits[i]++
		if c.digits[i] < len(c.alphabet) {
			return
		}
		c.digits[i] = 0
	}
	c.digits = make([]int, len(c.digits)+1)
}

// Reset restarts the sequence from the empty string.
func (c *Candidates) Reset() {
	c.digits = nil
	c.started = false
	c.done = false
}
