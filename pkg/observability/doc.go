/*
Package observability turns engine lifecycle events into Prometheus metrics and
structured log records.

Both are exposed as domain.LifecycleHooks, so they compose with each other and
with caller hooks through LifecycleHooks.Merge.
*/
package observability
