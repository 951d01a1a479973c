package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pharmatrack/meeting-tracker/pkg/config"
)

func testConfig(baseURL string) config.OpenAIConfig {
	return config.OpenAIConfig{
		APIKey:        "test-key",
		BaseURL:       baseURL,
		ChatModel:     "gpt-4o",
		TTSModel:      "tts-1",
		Voice:         "alloy",
		WhisperModel:  "whisper-1",
		RealtimeModel: "gpt-4o-realtime-preview-2024-12-17",
		Timeout:       5 * time.Second,
	}
}

func TestAnalyzeTranscript_Success(t *testing.T) {
	// Mock OpenAI chat completions endpoint
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if r.URL.Path != "/v1/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var payload map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": `{"title":"Cardiprex Follow-up","tags":["cardiology"]}`}},
			},
		})
	}))
	defer ts.Close()

	client := NewOpenAIClient(testConfig(ts.URL))

	content, err := client.AnalyzeTranscript(context.Background(), "some transcript")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if content != `{"title":"Cardiprex Follow-up","tags":["cardiology"]}` {
		t.Fatalf("unexpected content %s", content)
	}
}

func TestAnalyzeTranscript_NoKey(t *testing.T) {
	cfg := testConfig("https://api.openai.com")
	cfg.APIKey = ""
	client := NewOpenAIClient(cfg)

	if _, err := client.AnalyzeTranscript(context.Background(), "transcript"); err != ErrNotConfigured {
		t.Fatalf("expected ErrNotConfigured got %v", err)
	}
}

func TestRealtimeCreateSession_Passthrough(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/realtime/sessions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected auth header %s", got)
		}
		var payload realtimeSessionRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload.Model != "gpt-4o-realtime-preview-2024-12-17" || payload.Voice != "alloy" {
			t.Fatalf("unexpected session request %+v", payload)
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"client_secret": map[string]string{"value": "ephemeral-abc"},
		})
	}))
	defer ts.Close()

	client := NewRealtimeClient(testConfig(ts.URL))

	raw, err := client.CreateSession(context.Background())
	if err != nil {
		t.Fatalf("create session failed: %v", err)
	}
	var session struct {
		ClientSecret struct {
			Value string `json:"value"`
		} `json:"client_secret"`
	}
	if err := json.Unmarshal(raw, &session); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if session.ClientSecret.Value != "ephemeral-abc" {
		t.Fatalf("unexpected secret %s", session.ClientSecret.Value)
	}
}

func TestRealtimeCreateSession_UpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "bad key"})
	}))
	defer ts.Close()

	client := NewRealtimeClient(testConfig(ts.URL))

	if _, err := client.CreateSession(context.Background()); err == nil {
		t.Fatal("expected error for upstream failure")
	}
}
