package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	drilldownOpens     *prometheus.CounterVec
	drilldownDescents  prometheus.Counter
	drilldownSessions  prometheus.Gauge
	breakdownRequests  *prometheus.CounterVec
	breakdownDuration  prometheus.Histogram
	variationRequests  prometheus.Counter
	snapshotCacheReads *prometheus.CounterVec
	snapshotReloads    prometheus.Counter
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		drilldownOpens: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drilldown_sessions_opened_total",
				Help: "Total number of drill-down sessions opened, by diagram side",
			},
			[]string{"category"},
		),
		drilldownDescents: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "drilldown_descents_total",
				Help: "Total number of descents into a grouped row",
			},
		),
		drilldownSessions: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "drilldown_sessions_active",
				Help: "Current number of open drill-down sessions",
			},
		),
		breakdownRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "breakdown_requests_total",
				Help: "Total number of dimensional breakdown requests",
			},
			[]string{"dimension"},
		),
		breakdownDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "breakdown_duration_milliseconds",
				Help:    "Breakdown aggregation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		variationRequests: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "variation_requests_total",
				Help: "Total number of variation ranking requests",
			},
		),
		snapshotCacheReads: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "snapshot_cache_reads_total",
				Help: "Snapshot repository reads by outcome",
			},
			[]string{"outcome"},
		),
		snapshotReloads: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "snapshot_reloads_total",
				Help: "Total number of manual snapshot reloads",
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "drilldown.opened":
		m.drilldownOpens.WithLabelValues(tags["category"]).Inc()
	case "drilldown.descended":
		m.drilldownDescents.Inc()
	case "breakdown.requested":
		if dimension := tags["dimension"]; dimension != "" {
			m.breakdownRequests.WithLabelValues(dimension).Inc()
		}
	case "variation.requested":
		m.variationRequests.Inc()
	case "snapshot.cache.hit":
		m.snapshotCacheReads.WithLabelValues("hit").Inc()
	case "snapshot.cache.miss":
		m.snapshotCacheReads.WithLabelValues("miss").Inc()
	case "snapshot.reloaded":
		m.snapshotReloads.Inc()
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "breakdown.aggregation":
		m.breakdownDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "drilldown.sessions.active":
		m.drilldownSessions.Set(value)
	}
}
