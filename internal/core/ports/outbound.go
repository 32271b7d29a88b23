package ports

import (
	"context"
	"io"

	"github.com/agrovision/crop-disease-api/internal/core/domain"
)

// Classifier turns a preprocessed tensor into a probability distribution over
// the fixed, ordered disease classes. Implementations that share state across
// calls must serialize access internally.
type Classifier interface {
	Predict(ctx context.Context, input *domain.Tensor) ([]float32, error)
	// Ready reports whether a trained model backs this classifier, as opposed
	// to the dummy fallback.
	Ready() bool
}

// ImagePreprocessor decodes encoded image bytes into the classifier's input
// tensor.
type ImagePreprocessor interface {
	Preprocess(r io.Reader) (*domain.Tensor, error)
}

// TreatmentAdvisor answers treatment lookups. Lookup never fails; unknown
// diseases get a generic consult-an-expert message.
type TreatmentAdvisor interface {
	Lookup(diseaseName string) string
}

// ScanRepository persists and reads scan state.
type ScanRepository interface {
	Create(ctx context.Context, scan *domain.Scan) error
	GetByID(ctx context.Context, id string) (*domain.Scan, error)
	UpdateStatus(ctx context.Context, id string, status domain.ScanStatus, errMessage string) error
	SaveResult(ctx context.Context, id string, result domain.PredictionResult) error
}

// ObjectStorage stores uploaded images.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes scan processing jobs.
type MessageQueue interface {
	PublishScanRequested(ctx context.Context, scanID string) error
	SubscribeScanRequested(ctx context.Context, handler func(context.Context, string) error) error
}
