package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/agrovision/crop-disease-api/internal/config"
	"github.com/agrovision/crop-disease-api/internal/core/ports"
	"github.com/agrovision/crop-disease-api/internal/observability/metrics"
)

const serviceName = "crop-disease-api"

type Router struct {
	cfg       config.Config
	predictor ports.DiseasePredictor
	ingestor  ports.ScanIngestor
	scans     ports.ScanReader
	metrics   *metrics.HTTPServerMetrics
}

func NewRouter(
	cfg config.Config,
	predictor ports.DiseasePredictor,
	ingestor ports.ScanIngestor,
	scans ports.ScanReader,
	m *metrics.HTTPServerMetrics,
) *Router {
	return &Router{
		cfg:       cfg,
		predictor: predictor,
		ingestor:  ingestor,
		scans:     scans,
		metrics:   m,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", rt.health)
	mux.HandleFunc("/predict", rt.predict)
	mux.HandleFunc("/v1/scans", rt.submitScan)
	mux.HandleFunc("/v1/scans/", rt.getScanByID)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxConcurrent, 50*time.Millisecond)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	handler = corsMiddleware(handler)
	return handler
}

func (rt *Router) health(w http.ResponseWriter, _ *http.Request) {
	modelLoaded := rt.predictor != nil && rt.predictor.Ready()
	status := "healthy"
	if !modelLoaded {
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       status,
		"model_loaded": modelLoaded,
	})
}

func (rt *Router) predict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, rt.cfg.MaxUploadBytes)
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	start := time.Now()
	result, err := rt.predictor.Predict(
		r.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if rt.metrics != nil {
		confidence := 0.0
		if result != nil {
			confidence = result.ConfidenceScore
		}
		rt.metrics.RecordPrediction(serviceName, confidence, time.Since(start), err)
	}
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	slog.Info("prediction completed",
		"request_id", requestIDFromContext(r.Context()),
		"disease", result.DiseaseName,
		"confidence", result.ConfidenceScore,
	)
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) submitScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, rt.cfg.MaxUploadBytes)
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	scan, err := rt.ingestor.Submit(
		r.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusAccepted, scan)
}

func (rt *Router) getScanByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/scans/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "scan id is required"})
		return
	}

	scan, err := rt.scans.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, scan)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
