package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// Login counters
	LoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_login_total",
			Help: "Total number of login attempts",
		},
	)

	// Registration counters
	RegisterCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_register_total",
			Help: "Total number of user registrations",
		},
	)

	// Authentication error counter
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"}, // type can be "invalid_password", "user_not_found", "db_error" etc.
	)

	// Sale batch counter by outcome
	SaleBatchCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sales_batches_total",
			Help: "Total number of multi-item sale batches by outcome",
		},
		[]string{"outcome"}, // outcome can be "committed", "rejected", "failed"
	)

	// Sale error counter
	SaleErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sales_errors_total",
			Help: "Total number of rejected sale batches by reason",
		},
		[]string{"reason"}, // reason can be "empty_batch", "product_not_found", "insufficient_stock", "store_error"
	)

	// Stock operation counter
	StockOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_operations_total",
			Help: "Total number of stock operations",
		},
		[]string{"operation"}, // operation can be "movement_create", "movement_clear", "quantity_update", etc.
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // operation can be "query", "insert", "update", "delete", "transaction"
	)
)

// Gauge metrics
var (
	// Active tokens
	ActiveTokensGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "auth_active_tokens",
			Help: "Number of currently active authentication tokens",
		},
	)

	// System info
	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gestock_info",
			Help: "Information about the service",
		},
		[]string{"version"},
	)
)

func init() {
	// Register counters
	prometheus.MustRegister(LoginCounter)
	prometheus.MustRegister(RegisterCounter)
	prometheus.MustRegister(AuthErrorCounter)
	prometheus.MustRegister(SaleBatchCounter)
	prometheus.MustRegister(SaleErrorCounter)
	prometheus.MustRegister(StockOperationCounter)
	prometheus.MustRegister(HTTPRequestCounter)

	// Register histograms
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DBOperationDuration)

	// Register gauges
	prometheus.MustRegister(ActiveTokensGauge)
	prometheus.MustRegister(InfoGauge)

	// Set initial service info
	InfoGauge.With(prometheus.Labels{"version": "1.0.0"}).Set(1)
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// TrackDBOperation measures database operation durations
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// RecordAuthError records an authentication error by type
func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordSaleBatch records the outcome of a sale batch
func RecordSaleBatch(outcome string) {
	SaleBatchCounter.With(prometheus.Labels{"outcome": outcome}).Inc()
}

// RecordSaleError records a rejected sale batch by reason
func RecordSaleError(reason string) {
	SaleErrorCounter.With(prometheus.Labels{"reason": reason}).Inc()
}

// RecordStockOperation records a stock operation
func RecordStockOperation(operation string) {
	StockOperationCounter.With(prometheus.Labels{"operation": operation}).Inc()
}

// IncreaseActiveTokens increments the active tokens gauge
func IncreaseActiveTokens() {
	ActiveTokensGauge.Inc()
}

// DecreaseActiveTokens decrements the active tokens gauge
func DecreaseActiveTokens() {
	ActiveTokensGauge.Dec()
}
