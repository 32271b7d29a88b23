package ports

import (
	"context"
	"io"

	"github.com/agrovision/crop-disease-api/internal/core/domain"
)

// DiseasePredictor is the inbound contract for synchronous inference on an
// uploaded image.
type DiseasePredictor interface {
	Predict(ctx context.Context, filename, contentType string, body io.Reader) (*domain.PredictionResult, error)
	// Ready reports whether a real (non-fallback) classifier is serving.
	Ready() bool
}

// ScanIngestor is the inbound contract for asynchronous scan upload.
type ScanIngestor interface {
	Submit(ctx context.Context, filename, mimeType string, body io.Reader) (*domain.Scan, error)
}

// ScanProcessor is the inbound contract for worker-side scan processing.
type ScanProcessor interface {
	ProcessByID(ctx context.Context, scanID string) error
}

// ScanReader is the inbound read model for scan state.
type ScanReader interface {
	GetByID(ctx context.Context, id string) (*domain.Scan, error)
}
