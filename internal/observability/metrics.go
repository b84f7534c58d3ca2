package observability

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "playmood"

// Analysis outcomes
const (
	OutcomeOK       = "ok"
	OutcomeNoData   = "no_data"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Metrics exports analysis telemetry to Prometheus. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	analyses           *prometheus.CounterVec
	analysisDuration   prometheus.Histogram
	bucketSessions     *prometheus.CounterVec
	narrativeFallbacks *prometheus.CounterVec
	narrativeCache     *prometheus.CounterVec
}

// NewMetrics registers every collector on reg
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Game analyses by outcome.",
		}, []string{"outcome"}),
		analysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Latency of a full game analysis including narrative generation.",
			Buckets:   prometheus.DefBuckets,
		}),
		bucketSessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classified_sessions_total",
			Help:      "Sessions classified per impact bucket.",
		}, []string{"bucket"}),
		narrativeFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "narrative_fallbacks_total",
			Help:      "Narratives produced without the text generation service.",
		}, []string{"reason"}),
		narrativeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "narrative_cache_lookups_total",
			Help:      "Narrative cache lookups by result.",
		}, []string{"result"}),
	}

	collectors := []prometheus.Collector{
		m.analyses,
		m.analysisDuration,
		m.bucketSessions,
		m.narrativeFallbacks,
		m.narrativeCache,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return nil, fmt.Errorf("register metric: %w", err)
		}
	}
	return m, nil
}

// RecordAnalysis tracks one analysis request
func (m *Metrics) RecordAnalysis(outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.analyses.WithLabelValues(outcome).Inc()
	m.analysisDuration.Observe(duration.Seconds())
}

// RecordBuckets adds classified session counts
func (m *Metrics) RecordBuckets(positive, negative, neutral int) {
	if m == nil {
		return
	}
	m.bucketSessions.WithLabelValues("positive").Add(float64(positive))
	m.bucketSessions.WithLabelValues("negative").Add(float64(negative))
	m.bucketSessions.WithLabelValues("neutral").Add(float64(neutral))
}

// RecordFallback counts a narrative that fell back to the canned summary
func (m *Metrics) RecordFallback(reason string) {
	if m == nil {
		return
	}
	m.narrativeFallbacks.WithLabelValues(reason).Inc()
}

// RecordCacheLookup counts a narrative cache hit or miss
func (m *Metrics) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.narrativeCache.WithLabelValues(result).Inc()
}
