package ai

import (
	"context"
	"encoding/json"
	"io"

	"go.uber.org/zap"

	"github.com/pharmatrack/meeting-tracker/errors"
	"github.com/pharmatrack/meeting-tracker/internal/domain/entities"
)

// Analyzer is the slice of the OpenAI client this service needs
type Analyzer interface {
	Configured() bool
	AnalyzeTranscript(ctx context.Context, transcript string) (string, error)
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}

// TokenIssuer mints short-lived realtime session tokens
type TokenIssuer interface {
	Configured() bool
	CreateSession(ctx context.Context) (json.RawMessage, error)
}

// Service defines AI orchestration methods
type Service interface {
	// AnalyzeTranscript extracts a title and tags from a raw transcript
	AnalyzeTranscript(ctx context.Context, transcript string) (*entities.TranscriptAnalysis, error)

	// Transcribe converts an uploaded audio stream to text
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)

	// RealtimeToken returns an ephemeral realtime session payload
	RealtimeToken(ctx context.Context) (json.RawMessage, error)
}

type aiService struct {
	analyzer Analyzer
	tokens   TokenIssuer
	parser   *Parser
	logger   *zap.Logger
}

// Ensure aiService implements Service interface
var _ Service = (*aiService)(nil)

// NewAIService constructs a new AI service
func NewAIService(analyzer Analyzer, tokens TokenIssuer, logger *zap.Logger) Service {
	return &aiService{
		analyzer: analyzer,
		tokens:   tokens,
		parser:   NewParser(),
		logger:   logger,
	}
}

// AnalyzeTranscript extracts a title and tags from a raw transcript
func (s *aiService) AnalyzeTranscript(ctx context.Context, transcript string) (*entities.TranscriptAnalysis, error) {
	if !s.analyzer.Configured() {
		return nil, errors.ErrAIKeyMissing()
	}

	content, err := s.analyzer.AnalyzeTranscript(ctx, transcript)
	if err != nil {
		s.logger.Error("transcript analysis failed", zap.Error(err))
		return nil, errors.ErrAIAnalysisFailed(err)
	}

	analysis, err := s.parser.ParseAnalysis(content)
	if err != nil {
		s.logger.Error("failed to parse analysis response", zap.Error(err))
		return nil, errors.ErrAIParseFailed(err)
	}

	return analysis, nil
}

// Transcribe converts an uploaded audio stream to text
func (s *aiService) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	if !s.analyzer.Configured() {
		return "", errors.ErrAIKeyMissing()
	}

	text, err := s.analyzer.Transcribe(ctx, audio, filename)
	if err != nil {
		s.logger.Error("transcription failed", zap.String("filename", filename), zap.Error(err))
		return "", errors.ErrAITranscriptionFailed(err)
	}

	return text, nil
}

// RealtimeToken returns an ephemeral realtime session payload
func (s *aiService) RealtimeToken(ctx context.Context) (json.RawMessage, error) {
	if !s.tokens.Configured() {
		return nil, errors.ErrAIKeyMissing()
	}

	session, err := s.tokens.CreateSession(ctx)
	if err != nil {
		s.logger.Error("realtime token generation failed", zap.Error(err))
		return nil, errors.ErrAITokenFailed(err)
	}

	return session, nil
}
