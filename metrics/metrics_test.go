package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordValidation(t *testing.T) {
	c := NewCollector("test")

	c.RecordValidation(true, 50*time.Microsecond)
	c.RecordValidation(true, 80*time.Microsecond)
	c.RecordValidation(false, 10*time.Microsecond)
	c.RecordFailureCode("magic-number")

	snap := c.GetSnapshot()
	assert.Equal(t, "test", snap.Name)
	assert.Equal(t, uint64(3), snap.ValidationsTotal)
	assert.Equal(t, uint64(2), snap.ValidationsValid)
	assert.Equal(t, uint64(1), snap.ValidationsFailed)
	assert.Equal(t, uint64(1), snap.FailuresByCode["magic-number"])
}

func TestCollector_FailuresByCode(t *testing.T) {
	c := NewCollector("test")

	for i := 0; i < 3; i++ {
		c.RecordFailureCode("read-fail")
	}
	c.RecordFailureCode("header-signature")

	snap := c.GetSnapshot()
	assert.Equal(t, uint64(3), snap.FailuresByCode["read-fail"])
	assert.Equal(t, uint64(1), snap.FailuresByCode["header-signature"])
	assert.NotContains(t, snap.FailuresByCode, "magic-number")
}

func TestCollector_Reset(t *testing.T) {
	c := NewCollector("test")

	c.RecordValidation(false, time.Millisecond)
	c.RecordFailureCode("flags-read")
	c.Reset()

	snap := c.GetSnapshot()
	assert.Zero(t, snap.ValidationsTotal)
	assert.Zero(t, snap.ValidationsFailed)
	assert.Empty(t, snap.FailuresByCode)
	assert.Zero(t, snap.DurationP50)
}

func TestCollector_Prometheus(t *testing.T) {
	c := NewCollector("test")

	c.RecordValidation(true, time.Microsecond)
	c.RecordValidation(true, time.Microsecond)
	c.RecordValidation(false, time.Microsecond)
	c.RecordFailureCode("magic-number")

	expected := `
		# HELP zipcheck_failures_total Validation failures by code.
		# TYPE zipcheck_failures_total counter
		zipcheck_failures_total{code="magic-number",validator="test"} 1
		# HELP zipcheck_validations_failed_total Validations that failed.
		# TYPE zipcheck_validations_failed_total counter
		zipcheck_validations_failed_total{validator="test"} 1
		# HELP zipcheck_validations_total Total validations performed.
		# TYPE zipcheck_validations_total counter
		zipcheck_validations_total{validator="test"} 3
		# HELP zipcheck_validations_valid_total Validations that succeeded.
		# TYPE zipcheck_validations_valid_total counter
		zipcheck_validations_valid_total{validator="test"} 2
	`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected),
		"zipcheck_failures_total",
		"zipcheck_validations_failed_total",
		"zipcheck_validations_total",
		"zipcheck_validations_valid_total"))
}

func TestDurationHistogram_Percentile(t *testing.T) {
	h := newDurationHistogram()

	assert.Zero(t, h.percentile(0.5), "empty histogram")

	// All observations land in the 100µs-1ms bucket.
	for i := 0; i < 10; i++ {
		h.observe(300 * time.Microsecond)
	}
	assert.Equal(t, 500*time.Microsecond, h.percentile(0.5))
	assert.Equal(t, 500*time.Microsecond, h.percentile(0.99))

	// Push the tail into the unbounded bucket.
	for i := 0; i < 1000; i++ {
		h.observe(time.Minute)
	}
	assert.Equal(t, 20*time.Second, h.percentile(0.99))
}
