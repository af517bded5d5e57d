// Package op implements the metric operations.
package op

import (
	"github.com/yndnr/metermesh-go/internal/core/domain"
	"github.com/yndnr/metermesh-go/internal/exposer"
)

// Observe records observations into a histogram instance.
type Observe struct {
	binding
}

// NewObserve creates an unbound histogram operation.
func NewObserve(cfg Config) *Observe {
	return &Observe{binding{cfg: cfg}}
}

// Bind resolves the histogram instance via the published handle.
// Bucket boundaries are required: they fix the family's buckets on
// first creation and are validated (but ignored) when the family
// already exists.
func (o *Observe) Bind(hub *exposer.Hub) error {
	return o.bind(hub, domain.KindHistogram)
}

// Invoke records one observation of value into the cached instance.
func (o *Observe) Invoke(value float64) error {
	if o.inst == nil {
		return domain.ErrNotBound.WithDetails(o.cfg.Name)
	}
	return o.inst.Observe(value)
}

// Unbind drops the cached instance and handle references.
func (o *Observe) Unbind() {
	o.unbind()
}

var _ Operation = (*Observe)(nil)
