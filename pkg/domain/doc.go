/*
Package domain contains the core models of the turing engine.

It defines the immutable machine description, the unbounded tape, the instantaneous
configuration of a run and the outcomes the engine reports. This package is kept pure and
free of I/O, persistence or transport concerns, following Hexagonal Architecture principles.

# Key Entities

  - Machine: the immutable tuple (Q, Σ, Γ, δ, initial, blank, F, reject), built from a Spec.
  - Tape: a sequence of symbols unbounded in both directions; unwritten cells read as blank.
  - Configuration: the (state, tape, head) triple advanced by the step engine.
  - Outcome: the verdict of a run (accepted, rejected, step limit exceeded) plus optional trace.
  - Listing: a cached enumeration result keyed by machine fingerprint and policy.
*/
package domain
