package ai

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/pharmatrack/meeting-tracker/pkg/config"
)

const analyzeSystemPrompt = `You are an AI assistant that analyzes medical sales representative conversations with doctors.
Extract the following information from the transcript:
1. Generate a concise, professional title for this meeting (max 10 words)
2. Generate 5-10 relevant tags that would be useful for searching this conversation later

Format your response as JSON with the following structure:
{
  "title": "Meeting title here",
  "tags": ["tag1", "tag2", "tag3", ...]
}

Only return the JSON, nothing else.`

const summarySystemPrompt = `You are an AI assistant that creates concise summaries of pharmaceutical sales representative meetings with doctors.
Create a 1-2 minute summary of the key points from today's meetings, focusing on:
1. The drugs/treatments discussed
2. Key benefits mentioned
3. Important clinical data points
4. Any action items or follow-ups

Make the summary professional, clear, and conversational as it will be converted to speech.`

// ErrNotConfigured is returned when no API key is available
var ErrNotConfigured = errors.New("openai: api key not configured")

// OpenAIClient wraps the OpenAI API for transcript analysis, summarization,
// text-to-speech and audio transcription
type OpenAIClient struct {
	client *openai.Client
	cfg    config.OpenAIConfig
}

// NewOpenAIClient creates an OpenAI client using values from the provided config
func NewOpenAIClient(cfg config.OpenAIConfig) *OpenAIClient {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" && cfg.BaseURL != "https://api.openai.com" {
		clientConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/") + "/v1"
	}
	clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}
}

// Configured reports whether the client holds an API key
func (o *OpenAIClient) Configured() bool {
	return o.cfg.Configured()
}

// AnalyzeTranscript asks the chat model for a title and tags, returning the
// raw assistant content (a JSON object per the system prompt)
func (o *OpenAIClient) AnalyzeTranscript(ctx context.Context, transcript string) (string, error) {
	if !o.Configured() {
		return "", ErrNotConfigured
	}

	req := openai.ChatCompletionRequest{
		Model: o.cfg.ChatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: analyzeSystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: transcript,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	rsp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(rsp.Choices) == 0 || len(rsp.Choices[0].Message.Content) == 0 {
		return "", errors.New("empty response from OpenAI")
	}
	return rsp.Choices[0].Message.Content, nil
}

// GenerateSummaryText produces a spoken-word summary of the day's meetings
func (o *OpenAIClient) GenerateSummaryText(ctx context.Context, transcript string) (string, error) {
	if !o.Configured() {
		return "", ErrNotConfigured
	}

	req := openai.ChatCompletionRequest{
		Model: o.cfg.ChatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: summarySystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: transcript,
			},
		},
	}

	rsp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(rsp.Choices) == 0 || len(rsp.Choices[0].Message.Content) == 0 {
		return "", errors.New("empty response from OpenAI")
	}
	return rsp.Choices[0].Message.Content, nil
}

// TextToSpeech converts text to MP3 audio bytes
func (o *OpenAIClient) TextToSpeech(ctx context.Context, text string) ([]byte, error) {
	if !o.Configured() {
		return nil, ErrNotConfigured
	}

	rsp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model: openai.SpeechModel(o.cfg.TTSModel),
		Input: text,
		Voice: openai.SpeechVoice(o.cfg.Voice),
	})
	if err != nil {
		return nil, err
	}
	defer rsp.Close()

	return io.ReadAll(rsp)
}

// Transcribe runs Whisper over the given audio stream and returns the text.
// filename is used by the API to detect the audio format.
func (o *OpenAIClient) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	if !o.Configured() {
		return "", ErrNotConfigured
	}

	rsp, err := o.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    o.cfg.WhisperModel,
		Reader:   audio,
		FilePath: filename,
	})
	if err != nil {
		return "", err
	}
	return rsp.Text, nil
}
