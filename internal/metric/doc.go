// Package metric implements the process-wide named-metric registry.
//
// A Registry maps a metric name to a Family of label-parameterized
// instances, creating the family and instance lazily on first
// resolution. Repeated resolutions of the same (name, label-set) pair
// return the same *Instance, so callers can resolve once at bind time
// and mutate with no lookup on the hot path.
//
// Counter, gauge and histogram storage is delegated to
// prometheus/client_golang; the registry owns identity resolution and
// conflict detection on top of it:
//
//   - A name is bound to one kind for the registry's lifetime;
//     resolving it with a different kind is a configuration error.
//   - A family's label keys are fixed by the first resolution.
//   - Histogram bucket boundaries are fixed by the first resolution
//     (first caller wins); later boundaries are validated but ignored.
//
// All methods are safe for concurrent use.
package metric
