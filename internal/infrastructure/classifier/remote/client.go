// Package remote calls an external inference backend over HTTP, for
// deployments where the model is served out of process.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/agrovision/crop-disease-api/internal/core/domain"
	"github.com/agrovision/crop-disease-api/internal/infrastructure/resilience"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(baseURL string, executor *resilience.Executor) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
		executor:   executor,
	}
}

type predictRequest struct {
	Tensor []float32 `json:"tensor"`
	Shape  []int64   `json:"shape"`
}

type predictResponse struct {
	Probabilities []float32 `json:"probabilities"`
}

func (c *Client) Predict(ctx context.Context, input *domain.Tensor) ([]float32, error) {
	request := predictRequest{
		Tensor: input.Data,
		Shape:  input.Shape,
	}

	var response predictResponse
	call := func(callCtx context.Context) error {
		return c.postJSON(callCtx, "/predict", request, &response)
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "inference.predict", call, classifyInferenceError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return nil, wrapTemporaryIfNeeded("inference predict", err)
	}
	if len(response.Probabilities) == 0 {
		return nil, domain.WrapError(domain.ErrClassifierUnavailable, "inference predict", fmt.Errorf("backend returned no probabilities"))
	}
	return response.Probabilities, nil
}

func (c *Client) Ready() bool {
	return true
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("inference backend request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &HTTPStatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(raw)),
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode predict response: %w", err)
	}
	return nil
}
