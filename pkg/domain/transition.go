package domain

import "fmt"

// State is the name of a mode of the machine's finite control.
type State string

// Symbol is a single tape cell value.
type Symbol rune

func (s Symbol) String() string {
	return string(rune(s))
}

// Direction is the head movement applied after a write.
type Direction int8

const (
	Left  Direction = -1
	Right Direction = 1
)

// ParseDirection accepts the single-letter form used by machine files.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "L", "l":
		return Left, nil
	case "R", "r":
		return Right, nil
	}
	return 0, fmt.Errorf("invalid direction %q (expected L or R)", s)
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "L"
	case Right:
		return "R"
	}
	return fmt.Sprintf("Direction(%d)", int8(d))
}

// Valid reports whether d is Left or Right.
func (d Direction) Valid() bool {
	return d == Left || d == Right
}

// Move is the right-hand side of a transition: δ(q, a) = (Next, Write, Dir).
type Move struct {
	Next  State
	Write Symbol
	Dir   Direction
}

// Transition is one entry of the transition relation.
type Transition struct {
	From State
	Read Symbol
	Move
}

func (t Transition) String() string {
	return fmt.Sprintf("(%s, %s) -> (%s, %s, %s)", t.From, t.Read, t.Next, t.Write, t.Dir)
}
