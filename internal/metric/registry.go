// Package metric implements the process-wide named-metric registry.
package metric

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/metermesh-go/internal/core/domain"
	"github.com/yndnr/metermesh-go/pkg/cmap"
)

// Registry resolves (kind, name, label-set) triples to reference-stable
// metric instances backed by a private prometheus registry.
type Registry struct {
	prom     *prometheus.Registry
	families *cmap.Map[*Family]

	// mu serializes family creation. Lookups of existing families take
	// the fast path through the sharded map without touching it.
	mu sync.Mutex
}

// NewRegistry creates an empty registry with its own prometheus backend.
func NewRegistry() *Registry {
	return &Registry{
		prom:     prometheus.NewRegistry(),
		families: cmap.New[*Family](),
	}
}

// Gatherer exposes the backend for exposition handlers.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.prom
}

// Registerer exposes the backend for handler self-instrumentation.
func (r *Registry) Registerer() prometheus.Registerer {
	return r.prom
}

// Resolve returns the instance for (name, labels), creating the family
// and/or instance on first use.
//
// kind is fixed by the calling operation; buckets are required for
// histograms and ignored otherwise. Resolving an existing name with a
// different kind or different label keys fails without mutating the
// registry. Repeated calls with the same (name, labels) return the
// same *Instance for the registry's lifetime.
func (r *Registry) Resolve(kind domain.Kind, name string, labels map[string]string, buckets []float64) (*Instance, error) {
	if name == "" {
		return nil, domain.ErrMetricName.WithDetails("empty name")
	}
	if !kind.Valid() {
		return nil, domain.ErrKind.WithDetails(kind.String())
	}
	if kind == domain.KindHistogram {
		// Validated on every resolution, even when the family already
		// exists and the boundaries will be ignored.
		if err := domain.ValidateBuckets(buckets); err != nil {
			return nil, err
		}
	}

	fam, err := r.family(kind, name, labelKeys(labels), buckets)
	if err != nil {
		return nil, err
	}
	return fam.instance(labels)
}

// Family returns the family registered under name, if any.
func (r *Registry) Family(name string) (*Family, bool) {
	return r.families.Get(name)
}

// FamilyNames returns the names of all registered families.
func (r *Registry) FamilyNames() []string {
	return r.families.Keys()
}

// family looks up or creates the family for name.
func (r *Registry) family(kind domain.Kind, name string, keys []string, buckets []float64) (*Family, error) {
	if fam, ok := r.families.Get(name); ok {
		return fam.checkShape(kind, keys)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under the creation lock.
	if fam, ok := r.families.Get(name); ok {
		return fam.checkShape(kind, keys)
	}

	fam := newFamily(kind, name, keys, buckets)
	if err := r.prom.Register(fam.collector); err != nil {
		// The backend rejects names outside its exposition charset.
		return nil, domain.ErrMetricName.WithDetails(name).Wrap(fmt.Errorf("register family: %w", err))
	}
	r.families.Set(name, fam)
	return fam, nil
}
