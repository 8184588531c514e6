package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedMachine is returned when a machine description violates a data-model invariant.
var ErrMalformedMachine = errors.New("malformed machine")

// ErrInvalidInput is returned when an input string contains a symbol outside the input alphabet.
var ErrInvalidInput = errors.New("invalid input")

// ErrListingNotFound is returned when a listing key cannot be found in the store.
var ErrListingNotFound = errors.New("listing not found")

// MalformedMachineError lists every invariant violated by a machine description.
type MalformedMachineError struct {
	Problems []string
}

func (e *MalformedMachineError) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("%v: %s", ErrMalformedMachine, e.Problems[0])
	}
	return fmt.Sprintf("%v: %d problems:\n- %s", ErrMalformedMachine, len(e.Problems), strings.Join(e.Problems, "\n- "))
}

func (e *MalformedMachineError) Unwrap() error {
	return ErrMalformedMachine
}
