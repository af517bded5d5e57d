// Package exposer manages the shared exposition handle.
package exposer

import (
	"github.com/yndnr/metermesh-go/internal/core/domain"
	"github.com/yndnr/metermesh-go/pkg/cmap"
)

// DefaultName is the well-known publication name used when a
// deployment runs a single exposer.
const DefaultName = "default"

// Hub is a name-keyed table of published handles. It is an explicit
// object rather than process-global state so tests and embedders can
// run isolated instances side by side.
type Hub struct {
	slots *cmap.Map[*Handle]
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		slots: cmap.New[*Handle](),
	}
}

// Publish stores the handle under name so independent operations can
// find it without a direct reference. At most one live handle may
// occupy a name; publishing over an occupied slot is a configuration
// error. A handle can occupy at most one slot.
func (hub *Hub) Publish(name string, h *Handle) error {
	if name == "" {
		name = DefaultName
	}
	if h == nil {
		return domain.ErrExposerMissing.WithDetails("nil handle")
	}
	if h.Closed() {
		return domain.ErrExposerClosed.WithDetails(name)
	}

	if !hub.slots.SetIfAbsent(name, h) {
		return domain.ErrPublishConflict.WithDetails(name)
	}

	if err := h.attach(hub, name); err != nil {
		// Lost to a concurrent publish of the same handle; give the
		// slot back.
		hub.slots.DeleteIf(name, func(v *Handle) bool { return v == h })
		return err
	}

	h.log.Info("exposer published", "name", name)
	return nil
}

// Lookup returns the handle published under name.
func (hub *Hub) Lookup(name string) (*Handle, error) {
	if name == "" {
		name = DefaultName
	}

	h, ok := hub.slots.Get(name)
	if !ok {
		return nil, domain.ErrExposerMissing.WithDetails(name)
	}
	return h, nil
}

// Names returns all currently occupied publication names.
func (hub *Hub) Names() []string {
	return hub.slots.Keys()
}

// release clears the slot if it is still held by h. Called from
// Handle.Close.
func (hub *Hub) release(name string, h *Handle) {
	hub.slots.DeleteIf(name, func(v *Handle) bool { return v == h })
}
