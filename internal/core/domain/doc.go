// Package domain defines the core domain types for MeterMesh.
//
// Domain types are pure values without IO dependencies or framework
// coupling. This package contains:
//
//   - Kind: Metric kind enumeration (counter, gauge, histogram)
//   - Buckets: Histogram bucket boundary validation
//   - Errors: Domain-specific error definitions with structured codes
//
// Errors fall into three classes: fatal initialization errors
// (endpoint bind, missing exposer), configuration errors (kind or
// label conflicts, malformed buckets, publish conflicts) and
// validation errors (rejected inputs at invocation time).
package domain
