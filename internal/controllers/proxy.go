package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/render"
	localcontext "github.com/rahul4469/phisher-ai/context"
	"github.com/rahul4469/phisher-ai/internal/models"
	"go.uber.org/zap"
)

var (
	errNullBody     = errors.New("request body is null")
	errTrailingData = errors.New("unexpected data after request body")
)

// Forwarder sends a payload to the scoring service and returns its JSON
// result.
type Forwarder interface {
	Forward(ctx context.Context, payload any) (json.RawMessage, error)
}

// ProxyController relays analysis requests to the scoring service.
type ProxyController struct {
	scoring Forwarder
}

// NewProxyController creates a new ProxyController.
func NewProxyController(scoring Forwarder) *ProxyController {
	return &ProxyController{
		scoring: scoring,
	}
}

// PostAnalyze handles POST /api/analyze.
func (c *ProxyController) PostAnalyze(w http.ResponseWriter, r *http.Request) {
	logger := localcontext.Logger(r.Context())

	raw, err := decodeBody(r.Body)
	if err != nil {
		logger.Error("failed to decode analyze request", zap.Error(err))
		renderError(w, r, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	var payload models.ProxyPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		renderError(w, r, http.StatusBadRequest, models.ErrInvalidInput.Error())
		return
	}
	if _, ok := payload.TextValue(); !ok {
		renderError(w, r, http.StatusBadRequest, models.ErrInvalidInput.Error())
		return
	}

	result, err := c.scoring.Forward(r.Context(), payload)
	if err != nil {
		var upstreamErr *models.UpstreamError
		if errors.As(err, &upstreamErr) {
			logger.Warn("scoring service rejected request",
				zap.Int("status", upstreamErr.StatusCode),
				zap.String("upstream_error", upstreamErr.Message))
			msg := upstreamErr.Message
			if msg == "" {
				msg = models.ErrBackend.Error()
			}
			renderError(w, r, upstreamErr.StatusCode, msg)
			return
		}

		logger.Error("error processing request", zap.Error(err))
		renderError(w, r, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	render.JSON(w, r, result)
}

// decodeBody reads exactly one JSON value from body. A null body has no
// fields to read and is rejected along with trailing data.
func decodeBody(body io.Reader) (json.RawMessage, error) {
	dec := json.NewDecoder(body)

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if bytes.Equal(raw, []byte("null")) {
		return nil, errNullBody
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}
	return raw, nil
}

func renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, models.ErrorEnvelope{Error: msg})
}
