// Package onnx runs the trained crop-disease model with ONNX Runtime.
package onnx

import (
	"context"
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/agrovision/crop-disease-api/internal/core/domain"
)

// Classifier wraps a single ONNX session with preallocated input/output
// tensors. The session and its tensors are shared across requests and are not
// safe for concurrent Run calls, so Predict serializes behind a mutex.
type Classifier struct {
	mu           sync.Mutex
	session      *ort.AdvancedSession
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
	classCount   int
}

func New(modelPath string, inputShape []int64, classCount int) (*Classifier, error) {
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("initialize onnx environment: %w", err)
	}

	inputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(inputShape...))
	if err != nil {
		return nil, fmt.Errorf("create input tensor: %w", err)
	}
	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(classCount)))
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{"input"}, []string{"output"},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("create onnx session: %w", err)
	}

	return &Classifier{
		session:      session,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
		classCount:   classCount,
	}, nil
}

func (c *Classifier) Predict(ctx context.Context, input *domain.Tensor) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	buf := c.inputTensor.GetData()
	if len(input.Data) != len(buf) {
		return nil, fmt.Errorf("input tensor has %d values, model expects %d", len(input.Data), len(buf))
	}
	copy(buf, input.Data)

	if err := c.session.Run(); err != nil {
		return nil, fmt.Errorf("onnx inference: %w", err)
	}

	// Copy out before releasing the gate; the output tensor is reused.
	out := c.outputTensor.GetData()
	probabilities := make([]float32, len(out))
	copy(probabilities, out)
	return probabilities, nil
}

func (c *Classifier) Ready() bool {
	return true
}

func (c *Classifier) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inputTensor != nil {
		c.inputTensor.Destroy()
	}
	if c.outputTensor != nil {
		c.outputTensor.Destroy()
	}
	if c.session != nil {
		c.session.Destroy()
	}
	ort.DestroyEnvironment()
}
