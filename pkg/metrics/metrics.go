package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec
	DBWaitCount       *prometheus.GaugeVec

	BookingRequestsTotal  *prometheus.CounterVec
	RequestDecisionsTotal *prometheus.CounterVec
	PaymentHandoffsTotal  *prometheus.CounterVec
}

// New создает метрики и регистрирует их в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном registerer
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	namespace := sanitize(serviceName)

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Count of HTTP requests by route, method and status code.",
			},
			[]string{"service", "route", "method", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"service", "route", "method"},
		),
		DBQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "db_query_duration_seconds",
				Help:      "Database query latency by operation.",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"service", "operation", "status"},
		),
		DBOpenConnections: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "db_open_connections",
				Help:      "Number of established connections.",
			},
			[]string{"service"},
		),
		DBInUse: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "db_in_use_connections",
				Help:      "Number of connections currently in use.",
			},
			[]string{"service"},
		),
		DBIdle: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "db_idle_connections",
				Help:      "Number of idle connections.",
			},
			[]string{"service"},
		),
		DBWaitCount: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "db_wait_count",
				Help:      "Total number of connections waited for.",
			},
			[]string{"service"},
		),
		BookingRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "booking_requests_total",
				Help:      "Count of booking request submissions by outcome.",
			},
			[]string{"outcome"},
		),
		RequestDecisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "request_decisions_total",
				Help:      "Count of provider decisions over booking requests.",
			},
			[]string{"decision", "outcome"},
		),
		PaymentHandoffsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "payment_handoffs_total",
				Help:      "Count of calls to the payment processor by operation and result.",
			},
			[]string{"operation", "result"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.DBWaitCount,
		m.BookingRequestsTotal,
		m.RequestDecisionsTotal,
		m.PaymentHandoffsTotal,
	)

	return m
}

// IncBookingRequest учитывает результат создания заявки
func (m *Metrics) IncBookingRequest(outcome string) {
	m.BookingRequestsTotal.WithLabelValues(outcome).Inc()
}

// IncRequestDecision учитывает решение провайдера по заявке
func (m *Metrics) IncRequestDecision(decision, outcome string) {
	m.RequestDecisionsTotal.WithLabelValues(decision, outcome).Inc()
}

// IncPaymentHandoff учитывает обращение к платежному провайдеру
func (m *Metrics) IncPaymentHandoff(operation, result string) {
	m.PaymentHandoffsTotal.WithLabelValues(operation, result).Inc()
}

// Nop реализация для запуска без метрик
type Nop struct{}

func (Nop) IncBookingRequest(string)         {}
func (Nop) IncRequestDecision(string, string) {}
func (Nop) IncPaymentHandoff(string, string)  {}

func sanitize(name string) string {
	return strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(strings.ToLower(name))
}
