package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rahul4469/phisher-ai/internal/models"
)

// ProxyPath is the proxy endpoint route, relative to the site base URL.
const ProxyPath = "/api/analyze"

// StatusError is returned by Client.Analyze when the proxy answers with a
// non-success status. Message is the error envelope text, possibly empty.
type StatusError struct {
	StatusCode int
	Message    string
}

func (se *StatusError) Error() string {
	return fmt.Sprintf("analyze request failed (status %d): %s", se.StatusCode, se.Message)
}

// Client calls the proxy endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a Client for the site at baseURL. A nil httpClient uses
// http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:   strings.TrimRight(baseURL, "/") + ProxyPath,
		httpClient: httpClient,
	}
}

// Analyze posts req to the proxy endpoint and decodes the result.
func (c *Client) Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(req); err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call analyze endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope models.ErrorEnvelope
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			return nil, fmt.Errorf("failed to decode error response (status %d): %w", resp.StatusCode, err)
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: envelope.Error}
	}

	var result models.AnalysisResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}
	return &result, nil
}
