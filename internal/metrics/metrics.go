package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// Record operations
	OperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_operations_total",
			Help: "Record operations by outcome",
		},
		[]string{"op", "result"}, // create|update|delete x ok|invalid|stale|not_found|store_error|cancelled
	)
	// Server side of the table's loading/saving/deleting flags.
	OperationsInFlight = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "admin_operations_in_flight",
			Help: "Record operations currently running",
		},
		[]string{"op"}, // loading|saving|deleting
	)

	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_logins_total",
			Help: "Login attempts by outcome",
		},
		[]string{"result"},
	)

	// Worker queue
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)

	initOnce sync.Once
)

// /metrics endpoint handler
var Handler = promhttp.Handler

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestsTotal)
		prometheus.MustRegister(OperationsTotal)
		prometheus.MustRegister(OperationsInFlight)
		prometheus.MustRegister(LoginsTotal)
		prometheus.MustRegister(WorkerQueueDepth)
	})
}

// Track marks op as in flight until the returned func is called.
func Track(op string) func() {
	g := OperationsInFlight.WithLabelValues(op)
	g.Inc()
	return g.Dec
}
