// Package op implements the metric operations.
package op

import (
	"github.com/yndnr/metermesh-go/internal/core/domain"
	"github.com/yndnr/metermesh-go/internal/exposer"
)

// Gauge overwrites a gauge instance with the invocation's value.
type Gauge struct {
	binding
}

// NewGauge creates an unbound gauge operation.
func NewGauge(cfg Config) *Gauge {
	return &Gauge{binding{cfg: cfg}}
}

// Bind resolves the gauge instance via the published handle.
func (g *Gauge) Bind(hub *exposer.Hub) error {
	return g.bind(hub, domain.KindGauge)
}

// Invoke sets the cached gauge instance to value. Any sign is
// accepted; the write is an absolute overwrite.
func (g *Gauge) Invoke(value float64) error {
	if g.inst == nil {
		return domain.ErrNotBound.WithDetails(g.cfg.Name)
	}
	return g.inst.Set(value)
}

// Unbind drops the cached instance and handle references.
func (g *Gauge) Unbind() {
	g.unbind()
}

var _ Operation = (*Gauge)(nil)
