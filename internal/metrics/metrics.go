package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "love_vs_grades"

// Metrics holds the service's Prometheus collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	refreshDuration *prometheus.HistogramVec
	snapshotSize    prometheus.Gauge
	classifications *prometheus.CounterVec
	submissions     *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// MustNewMetrics registers every collector with reg and panics on a
// registration conflict. Tests should pass a fresh prometheus.NewRegistry().
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		refreshDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a fetch and normalize cycle.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
		snapshotSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "submissions",
			Help:      "Number of normalized submissions in the current snapshot.",
		}),
		classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "survey",
			Name:      "classifications_total",
			Help:      "Completed surveys by assigned archetype.",
		}, []string{"archetype"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "survey",
			Name:      "submissions_total",
			Help:      "Submission attempts to the response sheet by outcome.",
		}, []string{"status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "code"}),
	}
	reg.MustRegister(m.refreshDuration, m.snapshotSize, m.classifications, m.submissions, m.httpDuration)
	return m
}

func (m *Metrics) ObserveRefresh(d time.Duration, size int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.refreshDuration.WithLabelValues("error").Observe(d.Seconds())
		return
	}
	m.refreshDuration.WithLabelValues("ok").Observe(d.Seconds())
	m.snapshotSize.Set(float64(size))
}

func (m *Metrics) IncClassification(archetypeID string) {
	if m == nil {
		return
	}
	m.classifications.WithLabelValues(archetypeID).Inc()
}

func (m *Metrics) IncSubmission(err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.submissions.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveHTTP(method, route string, code int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, route, strconv.Itoa(code)).Observe(d.Seconds())
}
