package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	predictionsTotal     *prometheus.CounterVec
	predictionConfidence *prometheus.HistogramVec
	predictionDuration   *prometheus.HistogramVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "crop",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "crop",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "crop",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	predictionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "crop",
			Subsystem: "predict",
			Name:      "predictions_total",
			Help:      "Total completed predictions by outcome.",
		},
		[]string{"service", "status"},
	)
	predictionConfidence := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "crop",
			Subsystem: "predict",
			Name:      "confidence_percent",
			Help:      "Distribution of reported confidence scores.",
			Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 95, 100},
		},
		[]string{"service"},
	)
	predictionDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "crop",
			Subsystem: "predict",
			Name:      "duration_seconds",
			Help:      "Inference pipeline duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		predictionsTotal,
		predictionConfidence,
		predictionDuration,
	)

	return &HTTPServerMetrics{
		registry:             registry,
		requestTotal:         requestTotal,
		requestDuration:      requestDuration,
		requestInFlight:      requestInFlight,
		predictionsTotal:     predictionsTotal,
		predictionConfidence: predictionConfidence,
		predictionDuration:   predictionDuration,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/v1/scans/"):
		return "/v1/scans/{scan_id}"
	default:
		return path
	}
}

// RecordPrediction tracks one pipeline pass; confidence is only observed on
// success.
func (m *HTTPServerMetrics) RecordPrediction(service string, confidence float64, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.predictionsTotal.WithLabelValues(service, status).Inc()
	m.predictionDuration.WithLabelValues(service, status).Observe(duration.Seconds())
	if err == nil {
		m.predictionConfidence.WithLabelValues(service).Observe(confidence)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytesWritten += n
	return n, err
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

func (w *statusRecorder) Push(target string, opts *http.PushOptions) error {
	pusher, ok := w.ResponseWriter.(http.Pusher)
	if !ok {
		return http.ErrNotSupported
	}
	return pusher.Push(target, opts)
}
