package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/AS-AI-CS/EndpointerSubmission/internal/config"
)

// maxErrorBody caps how much of a failed response body is kept for logging
const maxErrorBody = 4096

var (
	// ErrUpstream is the class of every failure talking to the prediction service
	ErrUpstream = errors.New("prediction service error")
	// ErrNotConfigured is returned when no predictor URL is set
	ErrNotConfigured = fmt.Errorf("%w: predictor url not configured", ErrUpstream)
	// ErrEmptyResult is returned when the service answers with an empty collection or a null first element
	ErrEmptyResult = fmt.Errorf("%w: empty result", ErrUpstream)
)

// StatusError is returned when the service answers with a non-200 status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("prediction service returned status %d", e.StatusCode)
}

// Unwrap lets errors.Is match ErrUpstream
func (e *StatusError) Unwrap() error {
	return ErrUpstream
}

// Client calls the external inference endpoint
type Client struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new prediction client.
// A zero timeout leaves the transport default in place.
func NewClient(cfg config.PredictorConfig) *Client {
	httpClient := &http.Client{}
	if cfg.TimeoutSeconds > 0 {
		httpClient.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return &Client{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
	}
}

type predictRequest struct {
	Input json.RawMessage `json:"input"`
}

// Predict sends the symptom payload and returns the first element of the result collection.
// String results are returned as-is; any other JSON value is returned as compact JSON text.
func (c *Client) Predict(ctx context.Context, input json.RawMessage) (string, error) {
	if c.url == "" {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(predictRequest{Input: input})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", ErrUpstream, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrUpstream, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var results []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}
	if len(results) == 0 || bytes.Equal(bytes.TrimSpace(results[0]), []byte("null")) {
		return "", ErrEmptyResult
	}

	return scalar(results[0])
}

func scalar(v json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s, nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, v); err != nil {
		return "", fmt.Errorf("%w: decode result: %v", ErrUpstream, err)
	}
	return buf.String(), nil
}
