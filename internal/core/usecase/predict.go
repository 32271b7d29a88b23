package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"

	"github.com/agrovision/crop-disease-api/internal/core/domain"
	"github.com/agrovision/crop-disease-api/internal/core/ports"
)

// PredictUseCase runs one best-effort inference pass: validate the upload,
// preprocess it, classify it, and compose the prediction with treatment
// advice. No retries; any failure surfaces as a request-level error.
type PredictUseCase struct {
	preprocessor ports.ImagePreprocessor
	classifier   ports.Classifier
	advisor      ports.TreatmentAdvisor
	labels       []string
}

func NewPredictUseCase(
	preprocessor ports.ImagePreprocessor,
	classifier ports.Classifier,
	advisor ports.TreatmentAdvisor,
	labels []string,
) *PredictUseCase {
	return &PredictUseCase{
		preprocessor: preprocessor,
		classifier:   classifier,
		advisor:      advisor,
		labels:       labels,
	}
}

func (uc *PredictUseCase) Predict(
	ctx context.Context,
	filename, contentType string,
	body io.Reader,
) (*domain.PredictionResult, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "read upload", err)
	}
	if err := validateImage(contentType, raw); err != nil {
		return nil, err
	}

	tensor, err := uc.preprocessor.Preprocess(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("preprocess %s: %w", filename, err)
	}

	if uc.classifier == nil {
		return nil, domain.WrapError(domain.ErrClassifierUnavailable, "run classifier", errors.New("no classifier configured"))
	}
	probabilities, err := uc.classifier.Predict(ctx, tensor)
	if err != nil {
		return nil, fmt.Errorf("run classifier: %w", err)
	}
	if len(probabilities) == 0 {
		return nil, domain.WrapError(domain.ErrClassifierUnavailable, "run classifier", errors.New("empty probability output"))
	}

	idx := argmax(probabilities)
	diseaseName := domain.UnknownDisease
	if idx < len(uc.labels) {
		diseaseName = uc.labels[idx]
	}

	return &domain.PredictionResult{
		DiseaseName:         diseaseName,
		ConfidenceScore:     roundConfidence(probabilities[idx]),
		TreatmentSuggestion: uc.advisor.Lookup(diseaseName),
	}, nil
}

func (uc *PredictUseCase) Ready() bool {
	return uc.classifier != nil && uc.classifier.Ready()
}

func validateImage(contentType string, raw []byte) error {
	if len(raw) == 0 {
		return domain.WrapError(domain.ErrInvalidInput, "validate upload", errors.New("empty body"))
	}
	ct := strings.TrimSpace(contentType)
	if ct == "" || ct == "application/octet-stream" {
		ct = http.DetectContentType(raw)
	}
	if !strings.HasPrefix(ct, "image/") {
		return domain.WrapError(domain.ErrInvalidInput, "validate upload", fmt.Errorf("content type %q is not an image", ct))
	}
	return nil
}

// argmax resolves ties to the first occurrence.
func argmax(values []float32) int {
	maxIdx := 0
	for i, v := range values {
		if v > values[maxIdx] {
			maxIdx = i
		}
	}
	return maxIdx
}

// roundConfidence scales a probability to a percentage with two decimals.
func roundConfidence(p float32) float64 {
	return math.Round(float64(p)*10000) / 100
}
