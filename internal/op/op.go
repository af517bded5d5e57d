// Package op implements the metric operations: thin two-state
// activators that resolve a metric instance at bind time and mutate
// only that cached instance on each invocation.
package op

import (
	"github.com/yndnr/metermesh-go/internal/core/domain"
	"github.com/yndnr/metermesh-go/internal/exposer"
	"github.com/yndnr/metermesh-go/internal/metric"
)

// Config describes the metric an operation targets.
type Config struct {
	// Name is the metric name. Required.
	Name string

	// Label and Value form an optional single label pair attached to
	// the resolved instance. Value without Label is rejected.
	Label string
	Value string

	// Buckets are the histogram bucket upper bounds, required for
	// Observe operations. First creation of the family fixes them.
	Buckets []float64

	// Exposer is the publication name of the handle to bind against.
	// Empty selects the default name.
	Exposer string
}

// validate checks the static parts of the configuration.
func (c Config) validate() error {
	if c.Name == "" {
		return domain.ErrMetricName.WithDetails("operation has no metric name")
	}
	if c.Value != "" && c.Label == "" {
		return domain.ErrLabelPair.WithDetails(c.Name)
	}
	return nil
}

// labels builds the label-set for the configured pair.
func (c Config) labels() map[string]string {
	if c.Label == "" {
		return nil
	}
	return map[string]string{c.Label: c.Value}
}

// Operation is the common surface of the three operation kinds.
//
// An operation starts unbound. Bind looks up the published handle,
// resolves the instance and caches it; Invoke mutates the cached
// instance without further lookups; Unbind drops the references and
// leaves registry data intact. An operation instance is activated
// sequentially within its own lifecycle (bind happens-before invoke,
// invoke happens-before unbind); distinct instances may run on
// independent goroutines against the same hub.
type Operation interface {
	Bind(hub *exposer.Hub) error
	Invoke(value float64) error
	Unbind()
}

// binding carries the bound state shared by all operation kinds.
type binding struct {
	cfg    Config
	handle *exposer.Handle
	inst   *metric.Instance
}

// bind transitions unbound → bound for the given metric kind.
func (b *binding) bind(hub *exposer.Hub, kind domain.Kind) error {
	if b.inst != nil {
		return domain.ErrAlreadyBound.WithDetails(b.cfg.Name)
	}
	if err := b.cfg.validate(); err != nil {
		return err
	}

	handle, err := hub.Lookup(b.cfg.Exposer)
	if err != nil {
		return err
	}

	inst, err := handle.Registry().Resolve(kind, b.cfg.Name, b.cfg.labels(), b.cfg.Buckets)
	if err != nil {
		return err
	}

	b.handle, b.inst = handle, inst
	return nil
}

// unbind releases the resolved instance and handle references. The
// instance's accumulated data persists in the registry for other
// bound operations and for exposition.
func (b *binding) unbind() {
	b.handle, b.inst = nil, nil
}

// Bound reports whether the operation holds a resolved instance.
func (b *binding) Bound() bool {
	return b.inst != nil
}

// Instance returns the cached instance, or nil while unbound.
func (b *binding) Instance() *metric.Instance {
	return b.inst
}
