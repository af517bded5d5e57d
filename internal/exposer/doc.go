// Package exposer manages exposition handles and their publication.
//
// A Handle is created once per endpoint: Open binds the listener
// synchronously, allocates a fresh metric registry and serves the
// exposition format on GET /metrics. A Hub publishes handles under
// well-known names with an at-most-one-live-handle-per-name policy,
// and operations discover their backend through Hub.Lookup at bind
// time. Closing a handle is idempotent and clears its slot.
package exposer
