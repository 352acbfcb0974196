package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Стадии, на которых обнаружен конфликт бронирования
const (
	ConflictStageDetector = "detector"
	ConflictStageStorage  = "storage"
)

// Metrics набор метрик сервиса.
// Все методы безопасны для nil-получателя, чтобы метрики можно было отключить конфигом.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
	DBConnections   *prometheus.GaugeVec

	BookingsCreated      prometheus.Counter
	BookingConflicts     *prometheus.CounterVec
	BookingsCancelled    prometheus.Counter
	InvalidCancelTokens  prometheus.Counter
	RemindersSent        *prometheus.CounterVec
	CalendarCacheLookups *prometheus.CounterVec
}

// New регистрирует метрики в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в переданном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency.",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Failed database queries.",
			ConstLabels: labels,
		}, []string{"operation"}),
		DBConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Database connection pool state.",
			ConstLabels: labels,
		}, []string{"state"}),
		BookingsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Bookings successfully created.",
			ConstLabels: labels,
		}),
		BookingConflicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_conflicts_total",
			Help:        "Booking attempts rejected because of a time conflict.",
			ConstLabels: labels,
		}, []string{"stage"}),
		BookingsCancelled: factory.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_cancelled_total",
			Help:        "Bookings cancelled through a cancellation link.",
			ConstLabels: labels,
		}),
		InvalidCancelTokens: factory.NewCounter(prometheus.CounterOpts{
			Name:        "cancellation_tokens_invalid_total",
			Help:        "Cancellation attempts with a token that did not resolve to a booking.",
			ConstLabels: labels,
		}),
		RemindersSent: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "reminders_sent_total",
			Help:        "Appointment reminders sent.",
			ConstLabels: labels,
		}, []string{"channel"}),
		CalendarCacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "calendar_cache_lookups_total",
			Help:        "Month view cache lookups.",
			ConstLabels: labels,
		}, []string{"result"}),
	}
}

func (m *Metrics) BookingCreated() {
	if m == nil {
		return
	}
	m.BookingsCreated.Inc()
}

func (m *Metrics) BookingConflict(stage string) {
	if m == nil {
		return
	}
	m.BookingConflicts.WithLabelValues(stage).Inc()
}

func (m *Metrics) BookingCancelled() {
	if m == nil {
		return
	}
	m.BookingsCancelled.Inc()
}

func (m *Metrics) InvalidCancelToken() {
	if m == nil {
		return
	}
	m.InvalidCancelTokens.Inc()
}

func (m *Metrics) ReminderSent(channel string) {
	if m == nil {
		return
	}
	m.RemindersSent.WithLabelValues(channel).Inc()
}

// CalendarCacheLookup result: hit или miss
func (m *Metrics) CalendarCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CalendarCacheLookups.WithLabelValues(result).Inc()
}
