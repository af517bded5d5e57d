// Package metric implements the process-wide named-metric registry.
package metric

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/metermesh-go/internal/core/domain"
	"github.com/yndnr/metermesh-go/pkg/cmap"
)

// Family is the set of label-parameterized instances sharing one
// metric name and kind. Its kind, label keys and (for histograms)
// bucket boundaries are fixed at creation.
type Family struct {
	name      string
	kind      domain.Kind
	labelKeys []string
	buckets   []float64

	collector  prometheus.Collector
	counterVec *prometheus.CounterVec
	gaugeVec   *prometheus.GaugeVec
	histVec    *prometheus.HistogramVec

	instances *cmap.Map[*Instance]
}

// newFamily builds a family and its backing vec. keys must be sorted.
func newFamily(kind domain.Kind, name string, keys []string, buckets []float64) *Family {
	fam := &Family{
		name:      name,
		kind:      kind,
		labelKeys: keys,
		instances: cmap.New[*Instance](),
	}

	help := fmt.Sprintf("%s metric %q registered through the metermesh registry", kind, name)

	switch kind {
	case domain.KindCounter:
		fam.counterVec = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: name,
			Help: help,
		}, keys)
		fam.collector = fam.counterVec
	case domain.KindGauge:
		fam.gaugeVec = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: name,
			Help: help,
		}, keys)
		fam.collector = fam.gaugeVec
	case domain.KindHistogram:
		fam.buckets = append([]float64(nil), buckets...)
		fam.histVec = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    name,
			Help:    help,
			Buckets: fam.buckets,
		}, keys)
		fam.collector = fam.histVec
	}

	return fam
}

// Name returns the metric name.
func (f *Family) Name() string { return f.name }

// Kind returns the metric kind.
func (f *Family) Kind() domain.Kind { return f.kind }

// Buckets returns the histogram bucket boundaries fixed at creation.
func (f *Family) Buckets() []float64 {
	return append([]float64(nil), f.buckets...)
}

// InstanceCount returns the number of materialized instances.
func (f *Family) InstanceCount() int {
	return f.instances.Count()
}

// checkShape verifies a resolution against the family's fixed shape.
func (f *Family) checkShape(kind domain.Kind, keys []string) (*Family, error) {
	if f.kind != kind {
		return nil, domain.ErrKindConflict.WithDetails(
			fmt.Sprintf("%s already registered as %s, resolved as %s", f.name, f.kind, kind))
	}
	if !equalKeys(f.labelKeys, keys) {
		return nil, domain.ErrLabelConflict.WithDetails(
			fmt.Sprintf("%s registered with labels %v, resolved with %v", f.name, f.labelKeys, keys))
	}
	return f, nil
}

// instance looks up or creates the instance for labels.
func (f *Family) instance(labels map[string]string) (*Instance, error) {
	key := labelSetKey(labels)
	if inst, ok := f.instances.Get(key); ok {
		return inst, nil
	}

	inst, err := f.materialize(labels)
	if err != nil {
		return nil, err
	}

	// The backend vec already deduplicates the underlying metric, so a
	// racing creation only needs wrapper identity settled here.
	got, _ := f.instances.GetOrSet(key, inst)
	return got, nil
}

// materialize creates the wrapper around the backend metric for labels.
func (f *Family) materialize(labels map[string]string) (*Instance, error) {
	inst := &Instance{
		family: f,
		labels: copyLabels(labels),
	}

	promLabels := prometheus.Labels(labels)

	var err error
	switch f.kind {
	case domain.KindCounter:
		inst.counter, err = f.counterVec.GetMetricWith(promLabels)
	case domain.KindGauge:
		inst.gauge, err = f.gaugeVec.GetMetricWith(promLabels)
	case domain.KindHistogram:
		inst.observer, err = f.histVec.GetMetricWith(promLabels)
	}
	if err != nil {
		return nil, domain.ErrLabelConflict.WithDetails(f.name).Wrap(err)
	}

	return inst, nil
}

// labelKeys returns the sorted label keys of a label-set.
func labelKeys(labels map[string]string) []string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// labelSetKey canonically encodes a label-set for exact-match identity.
func labelSetKey(labels map[string]string) string {
	if len(labels) == 0 {
		return ""
	}

	keys := labelKeys(labels)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(k))
		b.WriteByte('=')
		b.WriteString(strconv.Quote(labels[k]))
	}
	return b.String()
}

func equalKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func copyLabels(labels map[string]string) map[string]string {
	out := make(map[string]string, len(labels))
	for k, v := range labels {
		out[k] = v
	}
	return out
}
