// Package dummy provides a stand-in classifier producing a valid probability
// distribution, so the pipeline stays exercisable when no trained model can
// be loaded. Health reporting marks the service degraded while it serves.
package dummy

import (
	"context"
	"math/rand/v2"

	"github.com/agrovision/crop-disease-api/internal/core/domain"
)

type Classifier struct {
	classCount int
}

func New(classCount int) *Classifier {
	if classCount <= 0 {
		classCount = 1
	}
	return &Classifier{classCount: classCount}
}

// Predict returns random probabilities normalized to sum to 1.
func (c *Classifier) Predict(ctx context.Context, _ *domain.Tensor) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	probabilities := make([]float32, c.classCount)
	var sum float32
	for i := range probabilities {
		// Offset keeps every class strictly positive so normalization is safe.
		probabilities[i] = rand.Float32() + 0.01
		sum += probabilities[i]
	}
	for i := range probabilities {
		probabilities[i] /= sum
	}
	return probabilities, nil
}

func (c *Classifier) Ready() bool {
	return false
}
