package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	scanTotal    *prometheus.CounterVec
	scanDuration *prometheus.HistogramVec
	scanInFlight prometheus.Gauge
	queueLag     *prometheus.HistogramVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	scanTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "crop",
			Subsystem: "worker",
			Name:      "scan_process_total",
			Help:      "Total processed scans by status.",
		},
		[]string{"service", "status"},
	)
	scanDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "crop",
			Subsystem: "worker",
			Name:      "scan_process_duration_seconds",
			Help:      "Scan processing duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	scanInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "crop",
			Subsystem: "worker",
			Name:      "scan_process_in_flight",
			Help:      "Number of in-flight scan processing tasks.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	queueLag := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "crop",
			Subsystem: "worker",
			Name:      "queue_lag_seconds",
			Help:      "Delay between scan upload and processing start.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"service"},
	)

	registry.MustRegister(scanTotal, scanDuration, scanInFlight, queueLag)

	return &WorkerMetrics{
		registry:     registry,
		scanTotal:    scanTotal,
		scanDuration: scanDuration,
		scanInFlight: scanInFlight,
		queueLag:     queueLag,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartScan() {
	m.scanInFlight.Inc()
}

func (m *WorkerMetrics) FinishScan(service string, duration time.Duration, err error) {
	m.scanInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.scanTotal.WithLabelValues(service, status).Inc()
	m.scanDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}

func (m *WorkerMetrics) ObserveQueueLag(service string, lag time.Duration) {
	if lag < 0 {
		return
	}
	m.queueLag.WithLabelValues(service).Observe(lag.Seconds())
}
