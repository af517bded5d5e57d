package benchmark

import (
	"crypto/rand"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/metermesh-go/internal/core/domain"
	"github.com/yndnr/metermesh-go/internal/metric"
)

// FamilyCounts defines the family counts for registry benchmarks.
var FamilyCounts = []int{100, 1000, 10000}

// newMetricName generates a unique metric name.
func newMetricName() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, _ := ulid.New(ulid.Timestamp(time.Now()), entropy)
	return "mm_bench_" + strings.ToLower(id.String())
}

// prefillRegistry fills a registry with counter families.
func prefillRegistry(b *testing.B, r *metric.Registry, count int) []string {
	b.Helper()
	names := make([]string, count)
	for i := 0; i < count; i++ {
		names[i] = newMetricName()
		if _, err := r.Resolve(domain.KindCounter, names[i], nil, nil); err != nil {
			b.Fatalf("Resolve() error = %v", err)
		}
	}
	return names
}

// runWithFamilyCounts runs a benchmark function with various family counts.
func runWithFamilyCounts(b *testing.B, counts []int, benchFn func(b *testing.B, count int)) {
	for _, count := range counts {
		b.Run(fmt.Sprintf("families_%d", count), func(b *testing.B) {
			benchFn(b, count)
		})
	}
}
