package op

import (
	"errors"
	"math"
	"testing"

	"github.com/yndnr/metermesh-go/internal/core/domain"
	"github.com/yndnr/metermesh-go/internal/exposer"
)

// newTestHub opens a handle on an ephemeral port and publishes it
// under name.
func newTestHub(t *testing.T, name string) *exposer.Hub {
	t.Helper()

	hub := exposer.NewHub()
	h, err := exposer.Open("127.0.0.1:0")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = h.Close() })

	if err := hub.Publish(name, h); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	return hub
}

func TestIncrement_Scenario(t *testing.T) {
	// Open, publish as "M", bind, invoke three times with delta 1.
	hub := newTestHub(t, "M")

	inc := NewIncrement(Config{Name: "hits", Exposer: "M"})
	if err := inc.Bind(hub); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := inc.Invoke(1.0); err != nil {
			t.Fatalf("Invoke() error = %v", err)
		}
	}

	got, err := inc.Instance().Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	if got != 3.0 {
		t.Errorf("counter value = %g, want 3.0", got)
	}
}

func TestIncrement_Inc(t *testing.T) {
	hub := newTestHub(t, exposer.DefaultName)

	inc := NewIncrement(Config{Name: "ticks_total"})
	if err := inc.Bind(hub); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}

	if err := inc.Inc(); err != nil {
		t.Fatalf("Inc() error = %v", err)
	}
	if got, _ := inc.Instance().Value(); got != 1 {
		t.Errorf("value after Inc() = %g, want 1", got)
	}
}

func TestIncrement_NegativeDelta(t *testing.T) {
	hub := newTestHub(t, exposer.DefaultName)

	inc := NewIncrement(Config{Name: "guarded_total"})
	if err := inc.Bind(hub); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if err := inc.Invoke(2); err != nil {
		t.Fatalf("Invoke(2) error = %v", err)
	}

	if err := inc.Invoke(-1.0); !errors.Is(err, domain.ErrNegativeDelta) {
		t.Fatalf("Invoke(-1) error = %v, want ErrNegativeDelta", err)
	}
	if got, _ := inc.Instance().Value(); got != 2 {
		t.Errorf("value after rejected delta = %g, want 2", got)
	}
}

func TestBind_BeforePublish(t *testing.T) {
	hub := exposer.NewHub()

	inc := NewIncrement(Config{Name: "orphan_total"})
	if err := inc.Bind(hub); !errors.Is(err, domain.ErrExposerMissing) {
		t.Errorf("Bind() error = %v, want ErrExposerMissing", err)
	}
	if inc.Bound() {
		t.Error("operation must stay unbound after a failed bind")
	}
}

func TestInvoke_Unbound(t *testing.T) {
	inc := NewIncrement(Config{Name: "x_total"})
	if err := inc.Invoke(1); !errors.Is(err, domain.ErrNotBound) {
		t.Errorf("Invoke() on unbound error = %v, want ErrNotBound", err)
	}

	g := NewGauge(Config{Name: "x_depth"})
	if err := g.Invoke(1); !errors.Is(err, domain.ErrNotBound) {
		t.Errorf("gauge Invoke() on unbound error = %v, want ErrNotBound", err)
	}

	o := NewObserve(Config{Name: "x_seconds", Buckets: []float64{1}})
	if err := o.Invoke(1); !errors.Is(err, domain.ErrNotBound) {
		t.Errorf("observe Invoke() on unbound error = %v, want ErrNotBound", err)
	}
}

func TestBind_ConfigValidation(t *testing.T) {
	hub := newTestHub(t, exposer.DefaultName)

	tests := []struct {
		name    string
		op      Operation
		wantErr *domain.DomainError
	}{
		{"empty name", NewIncrement(Config{}), domain.ErrMetricName},
		{"value without label", NewIncrement(Config{Name: "v_total", Value: "orphan"}), domain.ErrLabelPair},
		{"histogram without buckets", NewObserve(Config{Name: "h_seconds"}), domain.ErrBuckets},
		{"histogram descending buckets", NewObserve(Config{Name: "h2_seconds", Buckets: []float64{2, 1}}), domain.ErrBuckets},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.op.Bind(hub); !errors.Is(err, tt.wantErr) {
				t.Errorf("Bind() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBind_Twice(t *testing.T) {
	hub := newTestHub(t, exposer.DefaultName)

	inc := NewIncrement(Config{Name: "once_total"})
	if err := inc.Bind(hub); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if err := inc.Bind(hub); !errors.Is(err, domain.ErrAlreadyBound) {
		t.Errorf("second Bind() error = %v, want ErrAlreadyBound", err)
	}
}

func TestGauge_Overwrite(t *testing.T) {
	hub := newTestHub(t, exposer.DefaultName)

	g := NewGauge(Config{Name: "water_level", Label: "tank", Value: "a"})
	if err := g.Bind(hub); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}

	for _, v := range []float64{10, -3, 7.5} {
		if err := g.Invoke(v); err != nil {
			t.Fatalf("Invoke(%g) error = %v", v, err)
		}
		if got, _ := g.Instance().Value(); got != v {
			t.Errorf("gauge value = %g, want %g", got, v)
		}
	}
}

func TestObserve_BucketCounts(t *testing.T) {
	hub := newTestHub(t, exposer.DefaultName)

	o := NewObserve(Config{Name: "latency_seconds", Buckets: []float64{0.1, 0.5, 1.0}})
	if err := o.Bind(hub); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}

	for _, v := range []float64{0.05, 0.3, 2.0} {
		if err := o.Invoke(v); err != nil {
			t.Fatalf("Invoke(%g) error = %v", v, err)
		}
	}

	snap, err := o.Instance().Histogram()
	if err != nil {
		t.Fatalf("Histogram() error = %v", err)
	}
	if snap.Count != 3 {
		t.Errorf("Count = %d, want 3", snap.Count)
	}

	wantCumulative := map[float64]uint64{0.1: 1, 0.5: 2, 1.0: 2, math.Inf(+1): 3}
	for _, b := range snap.Buckets {
		if want, ok := wantCumulative[b.UpperBound]; ok && b.CumulativeCount != want {
			t.Errorf("bucket ≤%g = %d, want %d", b.UpperBound, b.CumulativeCount, want)
		}
	}
}

func TestOperations_ShareInstance(t *testing.T) {
	hub := newTestHub(t, exposer.DefaultName)

	a := NewIncrement(Config{Name: "shared_total", Label: "zone", Value: "eu"})
	b := NewIncrement(Config{Name: "shared_total", Label: "zone", Value: "eu"})

	if err := a.Bind(hub); err != nil {
		t.Fatalf("Bind(a) error = %v", err)
	}
	if err := b.Bind(hub); err != nil {
		t.Fatalf("Bind(b) error = %v", err)
	}

	if a.Instance() != b.Instance() {
		t.Fatal("operations with the same (name, labels) must share one instance")
	}

	if err := a.Invoke(1); err != nil {
		t.Fatalf("Invoke(a) error = %v", err)
	}
	if err := b.Invoke(1); err != nil {
		t.Fatalf("Invoke(b) error = %v", err)
	}

	if got, _ := a.Instance().Value(); got != 2 {
		t.Errorf("shared value = %g, want 2", got)
	}
}

func TestKindConflict_AcrossOperations(t *testing.T) {
	hub := newTestHub(t, exposer.DefaultName)

	inc := NewIncrement(Config{Name: "requests"})
	if err := inc.Bind(hub); err != nil {
		t.Fatalf("Bind(counter) error = %v", err)
	}

	g := NewGauge(Config{Name: "requests"})
	if err := g.Bind(hub); !errors.Is(err, domain.ErrKindConflict) {
		t.Errorf("Bind(gauge over counter name) error = %v, want ErrKindConflict", err)
	}
}

func TestUnbind_DataPersists(t *testing.T) {
	hub := newTestHub(t, exposer.DefaultName)

	a := NewIncrement(Config{Name: "persist_total"})
	if err := a.Bind(hub); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if err := a.Invoke(5); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}

	a.Unbind()
	if a.Bound() {
		t.Error("Bound() should be false after Unbind")
	}
	if err := a.Invoke(1); !errors.Is(err, domain.ErrNotBound) {
		t.Errorf("Invoke after Unbind error = %v, want ErrNotBound", err)
	}

	// The accumulated value survives in the registry.
	b := NewIncrement(Config{Name: "persist_total"})
	if err := b.Bind(hub); err != nil {
		t.Fatalf("rebind error = %v", err)
	}
	if got, _ := b.Instance().Value(); got != 5 {
		t.Errorf("value after unbind/rebind = %g, want 5", got)
	}

	// Unbind is idempotent.
	a.Unbind()
}

func TestObserve_SecondBindKeepsOriginalBuckets(t *testing.T) {
	hub := newTestHub(t, exposer.DefaultName)

	first := NewObserve(Config{Name: "fixed_seconds", Buckets: []float64{0.1, 1.0}})
	if err := first.Bind(hub); err != nil {
		t.Fatalf("Bind(first) error = %v", err)
	}

	// Well-formed but different boundaries: accepted, ignored.
	second := NewObserve(Config{Name: "fixed_seconds", Buckets: []float64{5, 10}})
	if err := second.Bind(hub); err != nil {
		t.Fatalf("Bind(second) error = %v", err)
	}

	if err := second.Invoke(0.5); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}

	snap, err := second.Instance().Histogram()
	if err != nil {
		t.Fatalf("Histogram() error = %v", err)
	}
	if len(snap.Buckets) == 0 || snap.Buckets[0].UpperBound != 0.1 {
		t.Errorf("family should keep first caller's buckets, got %+v", snap.Buckets)
	}
}
