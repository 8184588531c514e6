package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/muesli/termenv"
)

// TracePrinter writes trace snapshots as aligned rows of
// step, state, tape and head position. The head cell is highlighted when
// colour is enabled and bracketed otherwise.
type TracePrinter struct {
	w       io.Writer
	profile termenv.Profile
}

// NewTracePrinter returns a printer for w. With color false the output is plain text.
func NewTracePrinter(w io.Writer, color bool) *TracePrinter {
	p := termenv.Ascii
	if color {
		p = termenv.ColorProfile()
	}
	return &TracePrinter{w: w, profile: p}
}

// Header writes the column titles.
func (p *TracePrinter) Header() error {
	_, err := fmt.Fprintf(p.w, "%6s  %-12s %s\n", "Step", "State", "Tape")
	return err
}

// Snapshot writes one trace row.
func (p *TracePrinter) Snapshot(s domain.Snapshot) error {
	_, err := fmt.Fprintf(p.w, "%6d  %-12s %s  @%d\n", s.Step, s.State, p.tape(s), s.Head)
	return err
}

// Trace writes the header and every snapshot.
func (p *TracePrinter) Trace(trace []domain.Snapshot) error {
	if err := p.Header(); err != nil {
		return err
	}
	for _, s := range trace {
		if err := p.Snapshot(s); err != nil {
			return err
		}
	}
	return nil
}

func (p *TracePrinter) tape(s domain.Snapshot) string {
	cells := []rune(s.Cells)
	head := s.HeadIndex()

	parts := make([]string, len(cells))
	for i, c := range cells {
		cell := string(c)
		if i == head {
			if p.profile == termenv.Ascii {
				cell = "[" + cell + "]"
			} else {
				cell = termenv.String(cell).Reverse().Bold().Foreground(p.profile.Color("#fbc02d")).String()
			}
		}
		parts[i] = cell
	}
	return strings.Join(parts, "|")
}

// Verdict renders the final sentence for a run of input.
func Verdict(input string, out domain.Outcome) string {
	switch out.Verdict {
	case domain.VerdictAccepted:
		return fmt.Sprintf("The string '%s' is accepted by the Turing machine", input)
	case domain.VerdictRejected:
		return fmt.Sprintf("The string '%s' is NOT accepted by the Turing machine", input)
	}
	return fmt.Sprintf("The string '%s' did not halt within %d steps", input, out.Steps)
}
