package compiler

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/turing/pkg/domain"
)

// SyntaxError reports a malformed line in a .tm document.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("tm: %s", e.Msg)
	}
	return fmt.Sprintf("tm: line %d: %s", e.Line, e.Msg)
}

// Parser converts .tm documents into machine specs.
//
// A document lists, one item per line and in this order: the state count and
// states, the input symbol count and symbols, the tape symbol count and symbols,
// the initial state, the blank symbol, the accepting state count and states,
// the reject state, and the transition count followed by transitions written
// as "from read : to write dir". Empty lines and lines starting with "# " are skipped.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes data into a spec. Structural checks beyond the format itself
// are left to domain.NewMachine.
func (p *Parser) Parse(data []byte) (domain.Spec, error) {
	return p.ParseReader(bytes.NewReader(data))
}

// ParseReader is Parse over a stream.
func (p *Parser) ParseReader(r io.Reader) (domain.Spec, error) {
	lr := &lineReader{sc: bufio.NewScanner(r)}
	var spec domain.Spec

	states, err := lr.list("state")
	if err != nil {
		return spec, err
	}
	for _, s := range states {
		spec.States = append(spec.States, domain.State(s))
	}

	if spec.Input, err = lr.symbols("input symbol"); err != nil {
		return spec, err
	}
	if spec.TapeSymbols, err = lr.symbols("tape symbol"); err != nil {
		return spec, err
	}

	initial, err := lr.item("initial state")
	if err != nil {
		return spec, err
	}
	spec.Initial = domain.State(initial)

	if spec.Blank, err = lr.symbol("blank symbol"); err != nil {
		return spec, err
	}

	accepting, err := lr.list("accepting state")
	if err != nil {
		return spec, err
	}
	for _, s := range accepting {
		spec.Accepting = append(spec.Accepting, domain.State(s))
	}

	reject, err := lr.item("reject state")
	if err != nil {
		return spec, err
	}
	spec.Reject = domain.State(reject)

	n, err := lr.count("transition")
	if err != nil {
		return spec, err
	}
	for range n {
		line, err := lr.item("transition")
		if err != nil {
			return spec, err
		}
		t, err := parseTransition(line)
		if err != nil {
			return spec, &SyntaxError{Line: lr.line, Msg: err.Error()}
		}
		spec.Transitions = append(spec.Transitions, t)
	}

	if err := lr.trailing(); err != nil {
		return spec, err
	}
	return spec, nil
}

// Compile parses data and builds the machine.
func (p *Parser) Compile(data []byte) (*domain.Machine, error) {
	spec, err := p.Parse(data)
	if err != nil {
		return nil, err
	}
	return domain.NewMachine(spec)
}

func parseTransition(line string) (domain.Transition, error) {
	lhs, rhs, ok := strings.Cut(line, ":")
	if !ok {
		return domain.Transition{}, fmt.Errorf("transition %q is missing ':'", line)
	}
	from := strings.Fields(lhs)
	to := strings.Fields(rhs)
	if len(from) != 2 || len(to) != 3 {
		return domain.Transition{}, fmt.Errorf("transition %q must have the form 'state symbol : state symbol L|R'", line)
	}

	read, err := singleSymbol(from[1])
	if err != nil {
		return domain.Transition{}, err
	}
	write, err := singleSymbol(to[1])
	if err != nil {
		return domain.Transition{}, err
	}
	dir, err := domain.ParseDirection(to[2])
	if err != nil {
		return domain.Transition{}, err
	}

	return domain.Transition{
		From: domain.State(from[0]),
		Read: read,
		Move: domain.Move{Next: domain.State(to[0]), Write: write, Dir: dir},
	}, nil
}

func singleSymbol(s string) (domain.Symbol, error) {
	r, size := utf8.DecodeRuneInString(s)
	if s == "" || size != len(s) || r == utf8.RuneError {
		return 0, fmt.Errorf("symbol %q must be a single character", s)
	}
	return domain.Symbol(r), nil
}

// lineReader yields the significant lines of a document with their numbers.
type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func (lr *lineReader) next() (string, bool) {
	for lr.sc.Scan() {
		lr.line++
		text := strings.TrimRight(lr.sc.Text(), "\r")
		if text == "" || strings.HasPrefix(text, "# ") {
			continue
		}
		return text, true
	}
	return "", false
}

func (lr *lineReader) item(what string) (string, error) {
	text, ok := lr.next()
	if !ok {
		if err := lr.sc.Err(); err != nil {
			return "", fmt.Errorf("tm: read: %w", err)
		}
		return "", &SyntaxError{Line: lr.line, Msg: fmt.Sprintf("unexpected end of document, expected %s", what)}
	}
	return text, nil
}

func (lr *lineReader) count(what string) (int, error) {
	text, err := lr.item(what + " count")
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 0 {
		return 0, &SyntaxError{Line: lr.line, Msg: fmt.Sprintf("%s count %q is not a non-negative integer", what, text)}
	}
	return n, nil
}

func (lr *lineReader) list(what string) ([]string, error) {
	n, err := lr.count(what)
	if err != nil {
		return nil, err
	}
	var out []string
	for range n {
		text, err := lr.item(what)
		if err != nil {
			return nil, err
		}
		out = append(out, strings.TrimSpace(text))
	}
	return out, nil
}

func (lr *lineReader) symbol(what string) (domain.Symbol, error) {
	text, err := lr.item(what)
	if err != nil {
		return 0, err
	}
	sym, err := singleSymbol(text)
	if err != nil {
		return 0, &SyntaxError{Line: lr.line, Msg: err.Error()}
	}
	return sym, nil
}

func (lr *lineReader) symbols(what string) ([]domain.Symbol, error) {
	n, err := lr.count(what)
	if err != nil {
		return nil, err
	}
	var out []domain.Symbol
	for range n {
		sym, err := lr.symbol(what)
		if err != nil {
			return nil, err
		}
		out = append(out, sym)
	}
	return out, nil
}

func (lr *lineReader) trailing() error {
	if text, ok := lr.next(); ok {
		return &SyntaxError{Line: lr.line, Msg: fmt.Sprintf("unexpected content after transitions: %q", text)}
	}
	return lr.sc.Err()
}
