// Package domain defines the core domain types for MeterMesh.
package domain

import "sort"

// Kind identifies the kind of a metric family.
type Kind int

const (
	// KindCounter is a monotonically non-decreasing cumulative metric.
	KindCounter Kind = iota

	// KindGauge is a metric holding an arbitrary absolute value.
	KindGauge

	// KindHistogram samples observations into cumulative buckets.
	KindHistogram
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindCounter:
		return "counter"
	case KindGauge:
		return "gauge"
	case KindHistogram:
		return "histogram"
	default:
		return "unknown"
	}
}

// Valid reports whether k is a known metric kind.
func (k Kind) Valid() bool {
	return k >= KindCounter && k <= KindHistogram
}

// ValidateBuckets checks histogram bucket boundaries for well-formedness.
// Boundaries must be non-empty and strictly ascending.
func ValidateBuckets(buckets []float64) error {
	if len(buckets) == 0 {
		return ErrBuckets.WithDetails("no boundaries given")
	}
	if !sort.Float64sAreSorted(buckets) {
		return ErrBuckets.WithDetails("boundaries not ascending")
	}
	for i := 1; i < len(buckets); i++ {
		if buckets[i] == buckets[i-1] {
			return ErrBuckets.WithDetails("duplicate boundary")
		}
	}
	return nil
}
