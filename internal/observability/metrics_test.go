package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	m.RecordAnalysis(OutcomeOK, 10*time.Millisecond)
	m.RecordAnalysis(OutcomeNotFound, time.Millisecond)
	m.RecordBuckets(7, 3, 0)
	m.RecordFallback("model_error")
	m.RecordCacheLookup(true)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.analyses.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.bucketSessions.WithLabelValues("positive")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.narrativeFallbacks.WithLabelValues("model_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.narrativeCache.WithLabelValues("hit")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.RecordAnalysis(OutcomeOK, time.Second)
	m.RecordBuckets(1, 1, 1)
	m.RecordFallback("x")
	m.RecordCacheLookup(false)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("debug")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = NewLogger("loud")
	assert.Error(t, err)
}
