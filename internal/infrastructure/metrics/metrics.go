// Package metrics exposes helpdesk activity as Prometheus series.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "helpdesk"

// Metrics owns a registry so tests and multiple servers do not collide on
// the global default registry.
type Metrics struct {
	registry *prometheus.Registry

	ticketsCreated     *prometheus.CounterVec
	statusChanges      *prometheus.CounterVec
	messagesAdded      prometheus.Counter
	attachmentsStored  *prometheus.CounterVec
	httpRequestsTotal  *prometheus.CounterVec
	httpRequestLatency *prometheus.HistogramVec
	loginAttempts      *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ticketsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_created_total",
			Help:      "Tickets submitted, partitioned by category and priority.",
		}, []string{"category", "priority"}),
		statusChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticket_status_changes_total",
			Help:      "Ticket status changes, partitioned by the new status.",
		}, []string{"status"}),
		messagesAdded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticket_messages_total",
			Help:      "Chat messages appended to tickets.",
		}),
		attachmentsStored: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attachments_stored_total",
			Help:      "Attachment writes, partitioned by outcome.",
		}, []string{"result"}),
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests, partitioned by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpRequestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, partitioned by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		loginAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Login attempts, partitioned by outcome.",
		}, []string{"result"}),
	}
}

func (m *Metrics) TicketCreated(category, priority string) {
	m.ticketsCreated.WithLabelValues(category, priority).Inc()
}

func (m *Metrics) StatusChanged(status string) {
	m.statusChanges.WithLabelValues(status).Inc()
}

func (m *Metrics) MessageAdded() {
	m.messagesAdded.Inc()
}

func (m *Metrics) AttachmentStored(ok bool) {
	m.attachmentsStored.WithLabelValues(result(ok)).Inc()
}

// LoginAttempt records "success", "failure" or "rate_limited".
func (m *Metrics) LoginAttempt(outcome string) {
	m.loginAttempts.WithLabelValues(outcome).Inc()
}

// ObserveRequest records one finished HTTP request. route is the matched
// pattern, not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveRequest(method, route string, status int, seconds float64) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestLatency.WithLabelValues(method, route).Observe(seconds)
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}
