package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/agrovision/crop-disease-api/internal/config"
	"github.com/agrovision/crop-disease-api/internal/core/domain"
)

type predictorStub struct {
	result *domain.PredictionResult
	err    error
	ready  bool
}

func (s *predictorStub) Predict(_ context.Context, _, _ string, body io.Reader) (*domain.PredictionResult, error) {
	io.Copy(io.Discard, body)
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *predictorStub) Ready() bool { return s.ready }

type ingestorStub struct {
	scan *domain.Scan
	err  error
}

func (s *ingestorStub) Submit(_ context.Context, _, _ string, body io.Reader) (*domain.Scan, error) {
	io.Copy(io.Discard, body)
	if s.err != nil {
		return nil, s.err
	}
	return s.scan, nil
}

type scanReaderStub struct {
	scan *domain.Scan
	err  error
}

func (s *scanReaderStub) GetByID(context.Context, string) (*domain.Scan, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.scan, nil
}

func testConfig() config.Config {
	return config.Config{MaxUploadBytes: 10 << 20}
}

func multipartUpload(t *testing.T, field, filename, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create multipart part: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("write multipart part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &body, writer.FormDataContentType()
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func TestHealthHealthy(t *testing.T) {
	router := NewRouter(testConfig(), &predictorStub{ready: true}, &ingestorStub{}, &scanReaderStub{}, nil)

	resp := httptest.NewRecorder()
	router.Handler().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}
	var body struct {
		Status      string `json:"status"`
		ModelLoaded bool   `json:"model_loaded"`
	}
	decodeBody(t, resp, &body)
	if body.Status != "healthy" || !body.ModelLoaded {
		t.Fatalf("unexpected health body: %+v", body)
	}
}

func TestHealthDegradedStillReturns200(t *testing.T) {
	router := NewRouter(testConfig(), &predictorStub{ready: false}, &ingestorStub{}, &scanReaderStub{}, nil)

	resp := httptest.NewRecorder()
	router.Handler().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}
	var body struct {
		Status      string `json:"status"`
		ModelLoaded bool   `json:"model_loaded"`
	}
	decodeBody(t, resp, &body)
	if body.Status != "degraded" || body.ModelLoaded {
		t.Fatalf("unexpected health body: %+v", body)
	}
}

func TestPredictSuccess(t *testing.T) {
	predictor := &predictorStub{
		ready: true,
		result: &domain.PredictionResult{
			DiseaseName:         "Tomato Early Blight",
			ConfidenceScore:     87.5,
			TreatmentSuggestion: "remove affected foliage",
		},
	}
	router := NewRouter(testConfig(), predictor, &ingestorStub{}, &scanReaderStub{}, nil)

	body, contentType := multipartUpload(t, "file", "leaf.png", "image/png", []byte("fake image bytes"))
	req := httptest.NewRequest(http.MethodPost, "/predict", body)
	req.Header.Set("Content-Type", contentType)

	resp := httptest.NewRecorder()
	router.Handler().ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", resp.Code, resp.Body.String())
	}
	var result domain.PredictionResult
	decodeBody(t, resp, &result)
	if result.DiseaseName != "Tomato Early Blight" || result.ConfidenceScore != 87.5 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if resp.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestPredictRequiresFileField(t *testing.T) {
	router := NewRouter(testConfig(), &predictorStub{ready: true}, &ingestorStub{}, &scanReaderStub{}, nil)

	body, contentType := multipartUpload(t, "image", "leaf.png", "image/png", []byte("fake"))
	req := httptest.NewRequest(http.MethodPost, "/predict", body)
	req.Header.Set("Content-Type", contentType)

	resp := httptest.NewRecorder()
	router.Handler().ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
	var body400 struct {
		Error string `json:"error"`
	}
	decodeBody(t, resp, &body400)
	if !strings.Contains(body400.Error, "file") {
		t.Fatalf("error must mention the missing field: %s", body400.Error)
	}
}

func TestPredictMethodNotAllowed(t *testing.T) {
	router := NewRouter(testConfig(), &predictorStub{ready: true}, &ingestorStub{}, &scanReaderStub{}, nil)

	resp := httptest.NewRecorder()
	router.Handler().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/predict", nil))

	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", resp.Code)
	}
}

func TestPredictErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid input", domain.WrapError(domain.ErrInvalidInput, "validate upload", errors.New("not an image")), http.StatusBadRequest},
		{"temporary", domain.WrapError(domain.ErrTemporary, "inference predict", errors.New("backend down")), http.StatusServiceUnavailable},
		{"classifier unavailable", domain.WrapError(domain.ErrClassifierUnavailable, "run classifier", errors.New("no model")), http.StatusInternalServerError},
		{"preprocessing", domain.WrapError(domain.ErrPreprocessing, "decode image", errors.New("bad bytes")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := NewRouter(testConfig(), &predictorStub{ready: true, err: tc.err}, &ingestorStub{}, &scanReaderStub{}, nil)

			body, contentType := multipartUpload(t, "file", "leaf.png", "image/png", []byte("fake"))
			req := httptest.NewRequest(http.MethodPost, "/predict", body)
			req.Header.Set("Content-Type", contentType)

			resp := httptest.NewRecorder()
			router.Handler().ServeHTTP(resp, req)

			if resp.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", resp.Code, tc.wantStatus)
			}
		})
	}
}

func TestSubmitScanAccepted(t *testing.T) {
	now := time.Now().UTC()
	ingestor := &ingestorStub{scan: &domain.Scan{
		ID:        "scan-1",
		Filename:  "leaf.png",
		Status:    domain.ScanUploaded,
		CreatedAt: now,
		UpdatedAt: now,
	}}
	router := NewRouter(testConfig(), &predictorStub{ready: true}, ingestor, &scanReaderStub{}, nil)

	body, contentType := multipartUpload(t, "file", "leaf.png", "image/png", []byte("fake"))
	req := httptest.NewRequest(http.MethodPost, "/v1/scans", body)
	req.Header.Set("Content-Type", contentType)

	resp := httptest.NewRecorder()
	router.Handler().ServeHTTP(resp, req)

	if resp.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202, body %s", resp.Code, resp.Body.String())
	}
	var scan domain.Scan
	decodeBody(t, resp, &scan)
	if scan.ID != "scan-1" || scan.Status != domain.ScanUploaded {
		t.Fatalf("unexpected scan: %+v", scan)
	}
}

func TestGetScanByID(t *testing.T) {
	reader := &scanReaderStub{scan: &domain.Scan{ID: "scan-1", Status: domain.ScanReady, DiseaseName: "Potato Scab"}}
	router := NewRouter(testConfig(), &predictorStub{ready: true}, &ingestorStub{}, reader, nil)

	resp := httptest.NewRecorder()
	router.Handler().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/v1/scans/scan-1", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}
	var scan domain.Scan
	decodeBody(t, resp, &scan)
	if scan.DiseaseName != "Potato Scab" {
		t.Fatalf("unexpected scan: %+v", scan)
	}
}

func TestGetScanByIDNotFound(t *testing.T) {
	reader := &scanReaderStub{err: domain.WrapError(domain.ErrScanNotFound, "get scan", errors.New("id missing"))}
	router := NewRouter(testConfig(), &predictorStub{ready: true}, &ingestorStub{}, reader, nil)

	resp := httptest.NewRecorder()
	router.Handler().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/v1/scans/missing", nil))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.Code)
	}
}

func TestGetScanByIDMissingID(t *testing.T) {
	router := NewRouter(testConfig(), &predictorStub{ready: true}, &ingestorStub{}, &scanReaderStub{}, nil)

	resp := httptest.NewRecorder()
	router.Handler().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/v1/scans/", nil))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}
