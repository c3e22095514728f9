package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "howl"

// ChatMetrics exposes counters/histograms for chat completion delivery.
type ChatMetrics struct {
	requestsTotal  *prometheus.CounterVec
	fragmentsTotal *prometheus.CounterVec
	usageWords     *prometheus.CounterVec
	duration       *prometheus.HistogramVec
}

// NewChatMetrics registers chat metrics on reg (the default registerer when nil).
func NewChatMetrics(reg prometheus.Registerer) *ChatMetrics {
	m := &ChatMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "chat",
			Name:      "requests_total",
			Help:      "Chat completion requests by delivery mode and final state",
		}, []string{"mode", "state"}),
		fragmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "chat",
			Name:      "fragments_total",
			Help:      "Fragments framed into chunk events",
		}, []string{"mode"}),
		usageWords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "chat",
			Name:      "usage_words_total",
			Help:      "Word-count usage accounted for completed requests",
		}, []string{"kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "chat",
			Name:      "duration_seconds",
			Help:      "Chat completion delivery latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"mode"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.fragmentsTotal, m.usageWords, m.duration)
	return m
}

// ObserveRequest records the final state of one delivery.
func (m *ChatMetrics) ObserveRequest(mode, state string, seconds float64) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(mode, state).Inc()
	m.duration.WithLabelValues(mode).Observe(seconds)
}

// ObserveFragments adds n framed fragments.
func (m *ChatMetrics) ObserveFragments(mode string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.fragmentsTotal.WithLabelValues(mode).Add(float64(n))
}

// ObserveUsage adds prompt and completion word counts.
func (m *ChatMetrics) ObserveUsage(prompt, completion int) {
	if m == nil {
		return
	}
	m.usageWords.WithLabelValues("prompt").Add(float64(prompt))
	m.usageWords.WithLabelValues("completion").Add(float64(completion))
}
