package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса.
// Все методы безопасны для nil-получателя, чтобы компоненты работали с выключенными метриками
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	SlotsGenerated        *prometheus.HistogramVec
	CalendarReadsDegraded *prometheus.CounterVec
	CalendarBreakerState  *prometheus.GaugeVec
	BookingCommits        *prometheus.CounterVec
	ScheduleFallbacks     *prometheus.CounterVec
	RateLimitedRequests   *prometheus.CounterVec

	serviceName string
}

// New создает метрики и регистрирует их в глобальном registry
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики в переданном registry
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation", "status"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),
		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),
		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),
		SlotsGenerated: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "availability_slots_generated",
			Help:    "Number of slots returned per availability request",
			Buckets: []float64{0, 4, 8, 16, 24, 32, 48, 64, 96},
		}, []string{"service"}),
		CalendarReadsDegraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "calendar_reads_degraded_total",
			Help: "Availability reads served without calendar busy intervals",
		}, []string{"service", "reason"}),
		CalendarBreakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "calendar_breaker_state",
			Help: "Calendar circuit breaker state per calendar (0=closed, 1=half-open, 2=open)",
		}, []string{"service", "calendar"}),
		BookingCommits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_commits_total",
			Help: "Booking commit attempts by result",
		}, []string{"service", "result"}),
		ScheduleFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "schedule_fallbacks_total",
			Help: "Schedule lookups resolved with default values",
		}, []string{"service", "reason"}),
		RateLimitedRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rate_limited_requests_total",
			Help: "Requests rejected by the rate limiter",
		}, []string{"service", "path"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.SlotsGenerated,
		m.CalendarReadsDegraded,
		m.CalendarBreakerState,
		m.BookingCommits,
		m.ScheduleFallbacks,
		m.RateLimitedRequests,
	)

	return m
}

// ServiceName имя сервиса, используемое в лейблах
func (m *Metrics) ServiceName() string {
	if m == nil {
		return ""
	}
	return m.serviceName
}

func (m *Metrics) ObserveHTTPRequest(method, path, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(seconds)
}

func (m *Metrics) ObserveDBQuery(operation, status string, seconds float64) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(m.serviceName, operation, status).Observe(seconds)
}

func (m *Metrics) SetDBPoolStats(open, inUse, idle int, waitCount int64) {
	if m == nil {
		return
	}
	m.DBOpenConnections.WithLabelValues(m.serviceName).Set(float64(open))
	m.DBInUseConnections.WithLabelValues(m.serviceName).Set(float64(inUse))
	m.DBIdleConnections.WithLabelValues(m.serviceName).Set(float64(idle))
	m.DBWaitCount.WithLabelValues(m.serviceName).Set(float64(waitCount))
}

func (m *Metrics) ObserveSlotsGenerated(count int) {
	if m == nil {
		return
	}
	m.SlotsGenerated.WithLabelValues(m.serviceName).Observe(float64(count))
}

func (m *Metrics) IncCalendarReadDegraded(reason string) {
	if m == nil {
		return
	}
	m.CalendarReadsDegraded.WithLabelValues(m.serviceName, reason).Inc()
}

func (m *Metrics) SetCalendarBreakerState(calendarID string, state int) {
	if m == nil {
		return
	}
	m.CalendarBreakerState.WithLabelValues(m.serviceName, calendarID).Set(float64(state))
}

func (m *Metrics) IncBookingCommit(result string) {
	if m == nil {
		return
	}
	m.BookingCommits.WithLabelValues(m.serviceName, result).Inc()
}

func (m *Metrics) IncScheduleFallback(reason string) {
	if m == nil {
		return
	}
	m.ScheduleFallbacks.WithLabelValues(m.serviceName, reason).Inc()
}

func (m *Metrics) IncRateLimited(path string) {
	if m == nil {
		return
	}
	m.RateLimitedRequests.WithLabelValues(m.serviceName, path).Inc()
}
