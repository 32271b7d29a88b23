package dummy

import (
	"context"
	"math"
	"testing"

	"github.com/agrovision/crop-disease-api/internal/core/domain"
)

func TestPredictReturnsValidDistribution(t *testing.T) {
	c := New(85)
	tensor := &domain.Tensor{Data: make([]float32, 224*224*3), Shape: []int64{1, 224, 224, 3}}

	probabilities, err := c.Predict(context.Background(), tensor)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if len(probabilities) != 85 {
		t.Fatalf("got %d probabilities, want 85", len(probabilities))
	}

	var sum float64
	for i, p := range probabilities {
		if p <= 0 || p > 1 {
			t.Fatalf("probability %f at index %d outside (0, 1]", p, i)
		}
		sum += float64(p)
	}
	if math.Abs(sum-1) > 1e-3 {
		t.Fatalf("probabilities sum to %f, want ~1", sum)
	}
}

func TestNewClampsClassCount(t *testing.T) {
	probabilities, err := New(0).Predict(context.Background(), &domain.Tensor{})
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if len(probabilities) != 1 {
		t.Fatalf("got %d probabilities, want 1", len(probabilities))
	}
}

func TestPredictHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New(10).Predict(ctx, &domain.Tensor{}); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestReadyReportsDegraded(t *testing.T) {
	if New(10).Ready() {
		t.Fatalf("dummy classifier must never report ready")
	}
}
