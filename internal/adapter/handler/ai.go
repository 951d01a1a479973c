package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/pharmatrack/meeting-tracker/errors"
	dto "github.com/pharmatrack/meeting-tracker/internal/adapter/dto/meeting"
	aiUC "github.com/pharmatrack/meeting-tracker/internal/usecase/ai"
	summaryUC "github.com/pharmatrack/meeting-tracker/internal/usecase/summary"
)

// AI handles the analysis, transcription and summary HTTP endpoints
type AI struct {
	aiService      aiUC.Service
	summaryService summaryUC.Service
	logger         *zap.Logger
}

// NewAIHandler creates a new AI handler
func NewAIHandler(aiService aiUC.Service, summaryService summaryUC.Service, logger *zap.Logger) *AI {
	return &AI{
		aiService:      aiService,
		summaryService: summaryService,
		logger:         logger,
	}
}

// AnalyzeTranscript extracts a title and search tags from a transcript
func (h *AI) AnalyzeTranscript(c echo.Context) error {
	var req dto.AnalyzeTranscriptRequest
	if err := c.Bind(&req); err != nil {
		return PlainError(h.logger, c, errors.ErrInvalidPayload())
	}
	if req.Transcript == "" {
		return PlainError(h.logger, c, errors.ErrMissingTranscript())
	}

	analysis, err := h.aiService.AnalyzeTranscript(c.Request().Context(), req.Transcript)
	if err != nil {
		return PlainError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, dto.AnalyzeTranscriptResponse{
		Title: analysis.Title,
		Tags:  analysis.Tags,
	})
}

// Transcribe converts an uploaded audio file to text
func (h *AI) Transcribe(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return PlainError(h.logger, c, errors.ErrMissingAudioFile())
	}

	file, err := fileHeader.Open()
	if err != nil {
		return PlainError(h.logger, c, errors.ErrMissingAudioFile())
	}
	defer file.Close()

	text, err := h.aiService.Transcribe(c.Request().Context(), file, fileHeader.Filename)
	if err != nil {
		return PlainError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, dto.TranscribeResponse{Text: text})
}

// RealtimeToken passes through an ephemeral realtime session payload
func (h *AI) RealtimeToken(c echo.Context) error {
	session, err := h.aiService.RealtimeToken(c.Request().Context())
	if err != nil {
		return PlainError(h.logger, c, err)
	}

	return c.JSONBlob(http.StatusOK, session)
}

// GenerateSummaryAudio turns a transcript into a stored spoken summary
func (h *AI) GenerateSummaryAudio(c echo.Context) error {
	var req dto.GenerateSummaryAudioRequest
	if err := c.Bind(&req); err != nil {
		return PlainError(h.logger, c, errors.ErrInvalidPayload())
	}
	if req.Transcript == "" {
		return PlainError(h.logger, c, errors.ErrMissingTranscript())
	}

	result, err := h.summaryService.GenerateAudioSummary(c.Request().Context(), req.Transcript)
	if err != nil {
		return PlainError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, dto.GenerateSummaryAudioResponse{
		AudioURL:    result.AudioURL,
		SummaryText: result.SummaryText,
	})
}

// DailySummary returns today's cached spoken summary, building it on demand
func (h *AI) DailySummary(c echo.Context) error {
	daily, err := h.summaryService.DailySummary(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, daily)
}
