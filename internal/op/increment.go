// Package op implements the metric operations.
package op

import (
	"github.com/yndnr/metermesh-go/internal/core/domain"
	"github.com/yndnr/metermesh-go/internal/exposer"
)

// Increment adds non-negative deltas to a counter instance.
type Increment struct {
	binding
}

// NewIncrement creates an unbound counter operation.
func NewIncrement(cfg Config) *Increment {
	return &Increment{binding{cfg: cfg}}
}

// Bind resolves the counter instance via the published handle.
func (i *Increment) Bind(hub *exposer.Hub) error {
	return i.bind(hub, domain.KindCounter)
}

// Invoke adds delta to the cached counter instance. A negative delta
// is rejected without mutating the instance.
func (i *Increment) Invoke(delta float64) error {
	if i.inst == nil {
		return domain.ErrNotBound.WithDetails(i.cfg.Name)
	}
	return i.inst.Add(delta)
}

// Inc adds the default delta of 1.
func (i *Increment) Inc() error {
	return i.Invoke(1)
}

// Unbind drops the cached instance and handle references.
func (i *Increment) Unbind() {
	i.unbind()
}

var _ Operation = (*Increment)(nil)
