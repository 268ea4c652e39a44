// Package restmodel is a classifier.Predictor backed by a model serving
// endpoint over REST.
package restmodel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/saferoute/saferoute/internal/classifier"
	"github.com/saferoute/saferoute/internal/provider/resilience"
)

// ProviderName identifies this predictor.
const ProviderName = "restmodel"

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the model serving client.
type ClientConfig struct {
	// Endpoint is the full prediction URL (required).
	Endpoint string

	// HTTPClient is the HTTP client to use. If nil, a default resilient
	// client will be created.
	HTTPClient HTTPDoer

	// Timeout for individual prediction requests (default: 5s).
	Timeout time.Duration
}

// Client calls a model serving endpoint for risk class probabilities.
type Client struct {
	endpoint   string
	httpClient HTTPDoer
}

// NewClient creates a new model serving client.
func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 5 * time.Second
		}
		httpClient = resilience.NewClient(resilience.ClientConfig{
			Name:            ProviderName,
			Timeout:         timeout,
			MaxRetries:      2,
			InitialInterval: 100 * time.Millisecond,
			MaxInterval:     time.Second,
		})
	}

	return &Client{
		endpoint:   strings.TrimSuffix(cfg.Endpoint, "/"),
		httpClient: httpClient,
	}
}

// Name returns the predictor name.
func (c *Client) Name() string {
	return ProviderName
}

type predictRequest struct {
	Instances [][8]float64 `json:"instances"`
}

type predictResponse struct {
	// Predictions holds one [safe, moderate, risky] triple per instance.
	Predictions [][]float64 `json:"predictions"`
}

// Predict sends feature vectors to the serving endpoint and returns one
// class distribution per vector.
func (c *Client) Predict(ctx context.Context, vectors [][8]float64) ([]classifier.Probabilities, error) {
	body, err := json.Marshal(predictRequest{Instances: vectors})
	if err != nil {
		return nil, fmt.Errorf("marshaling prediction request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating prediction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", classifier.ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model endpoint returned status %d: %w", resp.StatusCode, classifier.ErrModelUnavailable)
	}

	var decoded predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding prediction response: %w", err)
	}
	if len(decoded.Predictions) != len(vectors) {
		return nil, classifier.ErrPredictionMismatch
	}

	out := make([]classifier.Probabilities, len(decoded.Predictions))
	for i, p := range decoded.Predictions {
		if len(p) != 3 {
			return nil, fmt.Errorf("prediction %d has %d classes, want 3: %w", i, len(p), classifier.ErrPredictionMismatch)
		}
		out[i] = classifier.Probabilities{Safe: p[0], Moderate: p[1], Risky: p[2]}
	}
	return out, nil
}
