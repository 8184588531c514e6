/*
Package ports defines the driven ports (interfaces) of the turing engine.

These interfaces decouple enumeration caching from concrete backends.

# Key Interfaces

  - ListingStore: persists enumeration results keyed by machine and ceiling.
  - DistributedLocker: serializes computation of the same listing across processes.
*/
package ports
