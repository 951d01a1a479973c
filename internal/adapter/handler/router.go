package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pharmatrack/meeting-tracker/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	meetingHandler *Meeting
	aiHandler      *AI
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, meetingHandler *Meeting, aiHandler *AI) *Router {
	return &Router{
		cfg:            cfg,
		meetingHandler: meetingHandler,
		aiHandler:      aiHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	api := e.Group("/api")

	// Recording client endpoints
	api.POST("/analyze-transcript", rt.aiHandler.AnalyzeTranscript)
	api.POST("/generate-summary-audio", rt.aiHandler.GenerateSummaryAudio)
	api.POST("/transcribe", rt.aiHandler.Transcribe)
	api.GET("/realtime-token", rt.aiHandler.RealtimeToken)
	api.POST("/save-meeting", rt.meetingHandler.SaveMeeting)

	// Browse endpoints
	api.GET("/meetings", rt.meetingHandler.ListMeetings)
	api.GET("/meetings/search", rt.meetingHandler.SearchMeetings)
	api.GET("/meetings/:id", rt.meetingHandler.GetMeeting)
	api.GET("/daily-summary", rt.aiHandler.DailySummary)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
