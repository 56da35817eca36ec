// Package metrics provides validation metrics for zipcheck.
//
// The Collector is usable standalone via Snapshot, and implements
// prometheus.Collector so it can be registered with a Prometheus registry:
//
//	collector := metrics.NewCollector("zipcheck")
//	prometheus.MustRegister(collector)
package metrics

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector tracks validation outcomes. All methods are safe for concurrent
// use.
type Collector struct {
	name string

	validationsTotal  atomic.Uint64
	validationsValid  atomic.Uint64
	validationsFailed atomic.Uint64
	durations         *durationHistogram

	mu             sync.Mutex
	failuresByCode map[string]uint64

	descTotal  *prometheus.Desc
	descValid  *prometheus.Desc
	descFailed *prometheus.Desc
	descByCode *prometheus.Desc
}

// NewCollector creates a collector. The name is attached to every exported
// metric as the "validator" label.
func NewCollector(name string) *Collector {
	constLabels := prometheus.Labels{"validator": name}
	return &Collector{
		name:           name,
		durations:      newDurationHistogram(),
		failuresByCode: make(map[string]uint64),
		descTotal: prometheus.NewDesc("zipcheck_validations_total",
			"Total validations performed.", nil, constLabels),
		descValid: prometheus.NewDesc("zipcheck_validations_valid_total",
			"Validations that succeeded.", nil, constLabels),
		descFailed: prometheus.NewDesc("zipcheck_validations_failed_total",
			"Validations that failed.", nil, constLabels),
		descByCode: prometheus.NewDesc("zipcheck_failures_total",
			"Validation failures by code.", []string{"code"}, constLabels),
	}
}

// RecordValidation records one completed validation and its duration.
func (c *Collector) RecordValidation(valid bool, duration time.Duration) {
	c.validationsTotal.Add(1)
	if valid {
		c.validationsValid.Add(1)
	} else {
		c.validationsFailed.Add(1)
	}
	c.durations.observe(duration)
}

// RecordFailureCode increments the failure counter for the given code.
func (c *Collector) RecordFailureCode(code string) {
	c.mu.Lock()
	c.failuresByCode[code]++
	c.mu.Unlock()
}

// Snapshot is a point-in-time view of the collector.
type Snapshot struct {
	Name string

	ValidationsTotal  uint64
	ValidationsValid  uint64
	ValidationsFailed uint64

	// FailuresByCode counts failures keyed by their code identifier
	FailuresByCode map[string]uint64

	// Duration percentiles (approximate, bucket-based)
	DurationP50 time.Duration
	DurationP95 time.Duration
	DurationP99 time.Duration
}

// GetSnapshot returns a snapshot of current metrics.
func (c *Collector) GetSnapshot() *Snapshot {
	byCode := make(map[string]uint64)
	c.mu.Lock()
	for code, n := range c.failuresByCode {
		byCode[code] = n
	}
	c.mu.Unlock()

	return &Snapshot{
		Name:              c.name,
		ValidationsTotal:  c.validationsTotal.Load(),
		ValidationsValid:  c.validationsValid.Load(),
		ValidationsFailed: c.validationsFailed.Load(),
		FailuresByCode:    byCode,
		DurationP50:       c.durations.percentile(0.50),
		DurationP95:       c.durations.percentile(0.95),
		DurationP99:       c.durations.percentile(0.99),
	}
}

// Reset resets all metrics (useful for testing).
func (c *Collector) Reset() {
	c.validationsTotal.Store(0)
	c.validationsValid.Store(0)
	c.validationsFailed.Store(0)
	c.durations = newDurationHistogram()

	c.mu.Lock()
	c.failuresByCode = make(map[string]uint64)
	c.mu.Unlock()
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.descTotal
	ch <- c.descValid
	ch <- c.descFailed
	ch <- c.descByCode
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.descTotal, prometheus.CounterValue,
		float64(c.validationsTotal.Load()))
	ch <- prometheus.MustNewConstMetric(c.descValid, prometheus.CounterValue,
		float64(c.validationsValid.Load()))
	ch <- prometheus.MustNewConstMetric(c.descFailed, prometheus.CounterValue,
		float64(c.validationsFailed.Load()))

	c.mu.Lock()
	for code, n := range c.failuresByCode {
		ch <- prometheus.MustNewConstMetric(c.descByCode, prometheus.CounterValue,
			float64(n), code)
	}
	c.mu.Unlock()
}

// histogramBounds are the upper bounds of the duration buckets; the final
// bucket is unbounded.
var histogramBounds = [...]time.Duration{
	time.Microsecond,
	10 * time.Microsecond,
	100 * time.Microsecond,
	time.Millisecond,
	10 * time.Millisecond,
	100 * time.Millisecond,
	time.Second,
	10 * time.Second,
}

// durationHistogram is a fixed-bucket histogram for validation durations.
type durationHistogram struct {
	buckets [len(histogramBounds) + 1]atomic.Uint64
}

func newDurationHistogram() *durationHistogram {
	return &durationHistogram{}
}

// observe records a duration in the appropriate bucket.
func (h *durationHistogram) observe(d time.Duration) {
	for i, bound := range histogramBounds {
		if d < bound {
			h.buckets[i].Add(1)
			return
		}
	}
	h.buckets[len(histogramBounds)].Add(1)
}

// percentile approximates a percentile from the bucket counts, returning the
// midpoint of the bucket containing it.
func (h *durationHistogram) percentile(p float64) time.Duration {
	var total uint64
	for i := range h.buckets {
		total += h.buckets[i].Load()
	}
	if total == 0 {
		return 0
	}

	target := uint64(float64(total) * p)
	if target == 0 {
		target = 1
	}

	var count uint64
	for i := range h.buckets {
		count += h.buckets[i].Load()
		if count >= target {
			if i < len(histogramBounds) {
				return histogramBounds[i] / 2
			}
			return 2 * histogramBounds[len(histogramBounds)-1]
		}
	}
	return 0
}
