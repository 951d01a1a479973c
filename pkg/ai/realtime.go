package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/pharmatrack/meeting-tracker/pkg/config"
)

// RealtimeClient requests ephemeral session tokens for the OpenAI realtime API
type RealtimeClient struct {
	client *resty.Client
	cfg    config.OpenAIConfig
}

// NewRealtimeClient creates a realtime token client using values from the provided config
func NewRealtimeClient(cfg config.OpenAIConfig) *RealtimeClient {
	client := resty.New()
	client.SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/"))
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(cfg.Timeout)

	return &RealtimeClient{
		client: client,
		cfg:    cfg,
	}
}

// Configured reports whether the client holds an API key
func (r *RealtimeClient) Configured() bool {
	return r.cfg.Configured()
}

type realtimeSessionRequest struct {
	Model string `json:"model"`
	Voice string `json:"voice"`
}

// CreateSession requests a short-lived realtime session and returns the raw
// session payload so the caller can pass it through to the client untouched
func (r *RealtimeClient) CreateSession(ctx context.Context) (json.RawMessage, error) {
	if !r.Configured() {
		return nil, ErrNotConfigured
	}

	req := realtimeSessionRequest{
		Model: r.cfg.RealtimeModel,
		Voice: r.cfg.Voice,
	}

	httpResp, err := r.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/v1/realtime/sessions")
	if err != nil {
		return nil, fmt.Errorf("failed to call realtime sessions API: %w", err)
	}

	if httpResp.StatusCode() >= 400 {
		return nil, fmt.Errorf("realtime sessions API error: status %d", httpResp.StatusCode())
	}

	return json.RawMessage(httpResp.Body()), nil
}
