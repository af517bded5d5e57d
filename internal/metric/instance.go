// Package metric implements the process-wide named-metric registry.
package metric

import (
	"fmt"
	"math"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/yndnr/metermesh-go/internal/core/domain"
)

// Instance is one (family, label-set) metric. Instances are
// reference-stable: resolving the same pair twice against one registry
// yields the same *Instance, so operations cache it at bind time and
// mutate without further lookups.
type Instance struct {
	family *Family
	labels map[string]string

	counter  prometheus.Counter
	gauge    prometheus.Gauge
	observer prometheus.Observer
}

// Kind returns the kind of the owning family.
func (i *Instance) Kind() domain.Kind { return i.family.kind }

// Name returns the metric name of the owning family.
func (i *Instance) Name() string { return i.family.name }

// Labels returns a copy of the instance's label-set.
func (i *Instance) Labels() map[string]string {
	return copyLabels(i.labels)
}

// Add adds a non-negative delta to a counter instance.
// A negative delta is rejected without mutating the instance.
func (i *Instance) Add(delta float64) error {
	if i.counter == nil {
		return i.kindMismatch(domain.KindCounter)
	}
	if delta < 0 {
		return domain.ErrNegativeDelta.WithDetails(fmt.Sprintf("%s: %g", i.family.name, delta))
	}
	i.counter.Add(delta)
	return nil
}

// Set overwrites a gauge instance with an absolute value.
func (i *Instance) Set(value float64) error {
	if i.gauge == nil {
		return i.kindMismatch(domain.KindGauge)
	}
	i.gauge.Set(value)
	return nil
}

// Observe records one observation into a histogram instance.
func (i *Instance) Observe(value float64) error {
	if i.observer == nil {
		return i.kindMismatch(domain.KindHistogram)
	}
	i.observer.Observe(value)
	return nil
}

func (i *Instance) kindMismatch(want domain.Kind) error {
	return domain.ErrKindConflict.WithDetails(
		fmt.Sprintf("%s is a %s, not a %s", i.family.name, i.family.kind, want))
}

// Value reads the current value of a counter or gauge instance.
// The read is a consistent snapshot taken by the backend.
func (i *Instance) Value() (float64, error) {
	m := &dto.Metric{}

	switch {
	case i.counter != nil:
		if err := i.counter.Write(m); err != nil {
			return 0, fmt.Errorf("read counter %s: %w", i.family.name, err)
		}
		return m.GetCounter().GetValue(), nil
	case i.gauge != nil:
		if err := i.gauge.Write(m); err != nil {
			return 0, fmt.Errorf("read gauge %s: %w", i.family.name, err)
		}
		return m.GetGauge().GetValue(), nil
	default:
		return 0, i.kindMismatch(domain.KindGauge)
	}
}

// BucketCount is one cumulative histogram bucket.
type BucketCount struct {
	UpperBound      float64
	CumulativeCount uint64
}

// HistogramSnapshot is a consistent point-in-time view of a histogram
// instance, including the implicit +Inf bucket.
type HistogramSnapshot struct {
	Count   uint64
	Sum     float64
	Buckets []BucketCount
}

// Histogram reads a consistent snapshot of a histogram instance.
func (i *Instance) Histogram() (HistogramSnapshot, error) {
	if i.observer == nil {
		return HistogramSnapshot{}, i.kindMismatch(domain.KindHistogram)
	}

	metric, ok := i.observer.(prometheus.Metric)
	if !ok {
		return HistogramSnapshot{}, fmt.Errorf("histogram %s: backend observer is not readable", i.family.name)
	}

	m := &dto.Metric{}
	if err := metric.Write(m); err != nil {
		return HistogramSnapshot{}, fmt.Errorf("read histogram %s: %w", i.family.name, err)
	}

	h := m.GetHistogram()
	snap := HistogramSnapshot{
		Count: h.GetSampleCount(),
		Sum:   h.GetSampleSum(),
	}

	for _, b := range h.GetBucket() {
		snap.Buckets = append(snap.Buckets, BucketCount{
			UpperBound:      b.GetUpperBound(),
			CumulativeCount: b.GetCumulativeCount(),
		})
	}

	// The backend leaves the +Inf bucket implicit; surface it so
	// cumulative counts always end at the total observation count.
	n := len(snap.Buckets)
	if n == 0 || !math.IsInf(snap.Buckets[n-1].UpperBound, +1) {
		snap.Buckets = append(snap.Buckets, BucketCount{
			UpperBound:      math.Inf(+1),
			CumulativeCount: snap.Count,
		})
	}

	return snap, nil
}
