package domain

import (
	"fmt"
	"time"
)

const (
	// DefaultCeiling is the per-candidate step budget of the enumerator.
	DefaultCeiling uint64 = 10000
	// DefaultAdmitPerRound is how many new candidates enter the pool each round.
	DefaultAdmitPerRound = 1
)

// EnumerationPolicy configures the dovetailing enumerator.
type EnumerationPolicy struct {
	// Ceiling is the number of steps after which a non-halting candidate is discarded.
	Ceiling uint64 `json:"ceiling" yaml:"ceiling" mapstructure:"ceiling"`
	// AdmitPerRound bounds how far ahead of the resolved prefix the pool can range.
	AdmitPerRound int `json:"admit_per_round" yaml:"admit_per_round" mapstructure:"admit_per_round"`
	// MaxRounds stops the enumeration early when non-zero.
	MaxRounds uint64 `json:"max_rounds,omitempty" yaml:"max_rounds" mapstructure:"max_rounds"`
}

// DefaultEnumerationPolicy returns the policy used when none is configured.
func DefaultEnumerationPolicy() EnumerationPolicy {
	return EnumerationPolicy{
		Ceiling:       DefaultCeiling,
		AdmitPerRound: DefaultAdmitPerRound,
	}
}

// Normalize fills zero fields with defaults.
func (p EnumerationPolicy) Normalize() EnumerationPolicy {
	if p.Ceiling == 0 {
		p.Ceiling = DefaultCeiling
	}
	if p.AdmitPerRound <= 0 {
		p.AdmitPerRound = DefaultAdmitPerRound
	}
	return p
}

// Listing is a persisted enumeration result.
type Listing struct {
	MachineID string            `json:"machine_id"`
	Policy    EnumerationPolicy `json:"policy"`
	Strings   []string          `json:"strings"`
	// Exhausted is true when the candidate space ran out, so Strings is the whole
	// language as observed under Policy.Ceiling.
	Exhausted bool      `json:"exhausted"`
	CreatedAt time.Time `json:"created_at"`
}

// Covers reports whether the listing can answer a request for n strings.
func (l *Listing) Covers(n int) bool {
	return l.Exhausted || len(l.Strings) >= n
}

// ListingKey identifies a listing. The emitted sequence depends only on the machine
// and the ceiling, so admission rate and round limits are not part of the key.
func ListingKey(machineID string, p EnumerationPolicy) string {
	id := machineID
	if len(id) > 16 {
		id = id[:16]
	}
	return fmt.Sprintf("%s-c%d", id, p.Normalize().Ceiling)
}
