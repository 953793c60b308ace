package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rahul4469/phisher-ai/internal/models"
	"go.uber.org/zap"
)

// AnalyzePath is the scoring service route the proxy forwards to.
const AnalyzePath = "/api/analyze"

// ScoringService forwards analysis requests to the external scoring service.
type ScoringService struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewScoringService creates a client for the scoring service at baseURL.
// A zero timeout leaves the transport default in place.
func NewScoringService(baseURL string, timeout time.Duration, logger *zap.Logger) *ScoringService {
	return &ScoringService{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Forward posts payload to the scoring service and returns its JSON body on
// success. A non-success status is returned as *models.UpstreamError; a
// malformed body or a transport failure as a plain error.
func (s *ScoringService) Forward(ctx context.Context, payload any) (json.RawMessage, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+AnalyzePath, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call scoring service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	s.logger.Debug("scoring service responded",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope struct {
			Error any `json:"error"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, fmt.Errorf("failed to decode error response (status %d): %w", resp.StatusCode, err)
		}
		return nil, &models.UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    errorText(envelope.Error),
		}
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("invalid JSON from scoring service")
	}

	return json.RawMessage(body), nil
}

// errorText returns v when it is a string, otherwise "".
func errorText(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}
