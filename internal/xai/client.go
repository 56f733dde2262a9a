package xai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"ticketgen/internal/models"
	"ticketgen/internal/prompt"
)

const userAgent = "ticketgen/1.0"

// Client is an HTTP client for the xAI completion endpoint
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a client posting to endpoint. A zero timeout means no client-side timeout.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Complete performs exactly one completion call for req. Every failure is a transport error.
func (c *Client) Complete(ctx context.Context, req models.GenerationRequest) (*models.CompletionResponse, error) {
	body := models.CompletionRequest{
		Prompt:    prompt.Build(req.Description),
		MaxTokens: req.MaxTokens,
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, models.Errorf(models.ErrorKindTransport, "failed to marshal completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, models.Errorf(models.ErrorKindTransport, "failed to create request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+req.Credential)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", userAgent)

	slog.Debug("sending completion request",
		"url", c.endpoint,
		"authorization", "Bearer "+models.MaskSecret(req.Credential),
		"content_type", "application/json",
		"body", string(jsonData))

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, models.Errorf(models.ErrorKindTransport, "request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, models.Errorf(models.ErrorKindTransport, "failed to read response body: %w", err)
	}

	slog.Debug("completion response received",
		"status", resp.StatusCode,
		"bytes", len(respBody),
		"elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, models.Errorf(models.ErrorKindTransport, "HTTP %d from completion endpoint: response body: %s",
			resp.StatusCode, string(respBody))
	}

	var completion models.CompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return nil, models.Errorf(models.ErrorKindTransport, "failed to decode completion response: %w", err)
	}

	return &completion, nil
}
