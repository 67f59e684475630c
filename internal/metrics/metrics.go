package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the service's Prometheus metrics. A nil *Collector is
// valid and records nothing.
type Collector struct {
	serviceName string
	gatherer    prometheus.Gatherer

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	stepTransitions     *prometheus.CounterVec
	submissions         *prometheus.CounterVec
	webhookEvents       *prometheus.CounterVec
	emailsSent          *prometheus.CounterVec
}

// NewCollector registers the metrics with reg. Pass a fresh
// prometheus.NewRegistry() in tests.
func NewCollector(serviceName string, reg prometheus.Registerer, gatherer prometheus.Gatherer) *Collector {
	m := &Collector{
		serviceName: serviceName,
		gatherer:    gatherer,
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code", "service"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint", "service"},
		),
		stepTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "evaluation_step_transitions_total",
				Help: "Evaluation step advances by step and outcome",
			},
			[]string{"step", "result", "service"},
		),
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "evaluation_submissions_total",
				Help: "Evaluation submissions by outcome",
			},
			[]string{"result", "service"},
		),
		webhookEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhook_events_total",
				Help: "Booking webhook deliveries by outcome",
			},
			[]string{"result", "service"},
		),
		emailsSent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "emails_sent_total",
				Help: "Transactional emails by template and outcome",
			},
			[]string{"template", "result", "service"},
		),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.stepTransitions,
		m.submissions,
		m.webhookEvents,
		m.emailsSent,
	)
	return m
}

func (m *Collector) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, endpoint, statusCode, m.serviceName).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint, m.serviceName).Observe(duration.Seconds())
}

func (m *Collector) RecordStepTransition(step, result string) {
	if m == nil {
		return
	}
	m.stepTransitions.WithLabelValues(step, result, m.serviceName).Inc()
}

func (m *Collector) RecordSubmission(result string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(result, m.serviceName).Inc()
}

func (m *Collector) RecordWebhookEvent(result string) {
	if m == nil {
		return
	}
	m.webhookEvents.WithLabelValues(result, m.serviceName).Inc()
}

func (m *Collector) RecordEmail(template, result string) {
	if m == nil {
		return
	}
	m.emailsSent.WithLabelValues(template, result, m.serviceName).Inc()
}

// Handler serves the metrics gathered from the collector's registry.
func (m *Collector) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
