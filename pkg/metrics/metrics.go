package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus-метрик сервиса.
// Включает HTTP-метрики, метрики запросов к БД, connection pool
// и бизнес-метрики работы с холдами и слотами.
type Metrics struct {
	serviceName string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec

	dbPoolOpenConnections  *prometheus.GaugeVec
	dbPoolInUseConnections *prometheus.GaugeVec
	dbPoolIdleConnections  *prometheus.GaugeVec

	holdsCreatedTotal   *prometheus.CounterVec
	holdConflictsTotal  *prometheus.CounterVec
	holdsConfirmedTotal *prometheus.CounterVec
	holdsExpiredTotal   *prometheus.CounterVec
	slotsGenerated      *prometheus.HistogramVec
}

// New создает и регистрирует метрики в дефолтном реестре
func New(serviceName string) *Metrics {
	return &Metrics{
		serviceName: serviceName,

		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"service", "operation"}),

		dbPoolOpenConnections: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_pool_open_connections",
			Help: "Number of established connections in the pool",
		}, []string{"service"}),

		dbPoolInUseConnections: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_pool_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),

		dbPoolIdleConnections: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_pool_idle_connections",
			Help: "Number of idle connections in the pool",
		}, []string{"service"}),

		holdsCreatedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "holds_created_total",
			Help: "Total number of holds successfully created",
		}, []string{"service"}),

		holdConflictsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "hold_conflicts_total",
			Help: "Total number of hold creation attempts rejected due to conflicts",
		}, []string{"service"}),

		holdsConfirmedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "holds_confirmed_total",
			Help: "Total number of holds converted into bookings",
		}, []string{"service"}),

		holdsExpiredTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "holds_expired_total",
			Help: "Total number of expired holds removed by the sweeper",
		}, []string{"service"}),

		slotsGenerated: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "slots_generated",
			Help:    "Number of candidate slots produced per generation request",
			Buckets: []float64{0, 5, 10, 20, 40, 80, 160},
		}, []string{"service"}),
	}
}

// ObserveHTTPRequest фиксирует завершенный HTTP-запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(m.serviceName, method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	m.dbQueryDuration.WithLabelValues(m.serviceName, operation).Observe(duration.Seconds())
}

// SetDBPoolStats публикует текущее состояние connection pool
func (m *Metrics) SetDBPoolStats(stats sql.DBStats) {
	m.dbPoolOpenConnections.WithLabelValues(m.serviceName).Set(float64(stats.OpenConnections))
	m.dbPoolInUseConnections.WithLabelValues(m.serviceName).Set(float64(stats.InUse))
	m.dbPoolIdleConnections.WithLabelValues(m.serviceName).Set(float64(stats.Idle))
}

// IncHoldCreated инкрементирует счетчик созданных холдов
func (m *Metrics) IncHoldCreated() {
	m.holdsCreatedTotal.WithLabelValues(m.serviceName).Inc()
}

// IncHoldConflict инкрементирует счетчик конфликтов при создании холдов
func (m *Metrics) IncHoldConflict() {
	m.holdConflictsTotal.WithLabelValues(m.serviceName).Inc()
}

// IncHoldConfirmed инкрементирует счетчик подтвержденных холдов
func (m *Metrics) IncHoldConfirmed() {
	m.holdsConfirmedTotal.WithLabelValues(m.serviceName).Inc()
}

// AddHoldsExpired добавляет количество удаленных протухших холдов
func (m *Metrics) AddHoldsExpired(n int) {
	m.holdsExpiredTotal.WithLabelValues(m.serviceName).Add(float64(n))
}

// ObserveSlotsGenerated фиксирует размер сгенерированного списка слотов
func (m *Metrics) ObserveSlotsGenerated(count int) {
	m.slotsGenerated.WithLabelValues(m.serviceName).Observe(float64(count))
}
