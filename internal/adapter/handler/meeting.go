package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/pharmatrack/meeting-tracker/errors"
	dto "github.com/pharmatrack/meeting-tracker/internal/adapter/dto/meeting"
	"github.com/pharmatrack/meeting-tracker/internal/domain/entities"
	meetingUC "github.com/pharmatrack/meeting-tracker/internal/usecase/meeting"
)

// searchGateLength is the minimum query length that hits the database search;
// shorter queries filter the full feed locally.
const searchGateLength = 3

// Meeting handles meeting HTTP endpoints
type Meeting struct {
	service meetingUC.Service
	logger  *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(service meetingUC.Service, logger *zap.Logger) *Meeting {
	return &Meeting{
		service: service,
		logger:  logger,
	}
}

// SaveMeeting persists a finished meeting with its tags and audio
func (h *Meeting) SaveMeeting(c echo.Context) error {
	var req dto.SaveMeetingRequest
	if err := c.Bind(&req); err != nil {
		return PlainError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return PlainError(h.logger, c, errors.ErrMissingRequiredFields())
	}

	result, err := h.service.SaveMeeting(c.Request().Context(), meetingUC.SaveInput{
		Transcript:     req.Transcript,
		DoctorName:     req.Metadata.DoctorName,
		RepName:        req.Metadata.RepName,
		DrugsDiscussed: req.Metadata.DrugsDiscussed,
		GeneratedTitle: req.Metadata.GeneratedTitle,
		GeneratedTags:  req.Metadata.GeneratedTags,
		KeyPoints:      req.Metadata.KeyPoints,
		AudioURL:       req.AudioURL,
	})
	if err != nil {
		return PlainError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, dto.SaveMeetingResponse{
		Message:   "Meeting saved successfully",
		MeetingID: result.MeetingID.String(),
		AudioURL:  result.AudioURL,
		Steps: dto.SaveStepsResponse{
			Tags:  stepResponse(result.Tags),
			Audio: stepResponse(result.Audio),
		},
	})
}

func stepResponse(step meetingUC.StepResult) dto.StepResponse {
	return dto.StepResponse{
		Status: string(step.Status),
		Reason: step.Reason,
	}
}

// ListMeetings returns the summary feed, filtered and sorted
func (h *Meeting) ListMeetings(c echo.Context) error {
	var req dto.ListMeetingsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	ctx := c.Request().Context()

	var summaries []entities.Summary
	if len(req.Search) >= searchGateLength {
		summaries = toSummaries(h.service.Search(ctx, req.Search))
	} else {
		summaries = toSummaries(h.service.ListMeetings(ctx))
		if req.Search != "" {
			filtered := make([]entities.Summary, 0, len(summaries))
			for _, s := range summaries {
				if meetingUC.MatchesLocalQuery(s, req.Search) {
					filtered = append(filtered, s)
				}
			}
			summaries = filtered
		}
	}

	opts, err := buildFilterOptions(&req)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}
	summaries = meetingUC.ApplyFilters(summaries, opts)

	sortOrder := meetingUC.SortOrder(req.Sort)
	if req.Sort == "" {
		sortOrder = meetingUC.SortNewest
	}
	meetingUC.SortSummaries(summaries, sortOrder)

	return HandleSuccess(h.logger, c, summaries)
}

// GetMeeting returns one meeting with its tags and audio URL
func (h *Meeting) GetMeeting(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting id"))
	}

	m := h.service.GetMeeting(c.Request().Context(), id)
	if m == nil {
		return HandleError(h.logger, c, errors.ErrMeetingNotFound(id.String()))
	}

	return HandleSuccess(h.logger, c, m)
}

// SearchMeetings returns full meeting records matching the query directly or
// through their tags
func (h *Meeting) SearchMeetings(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("query parameter q is required"))
	}

	results := h.service.Search(c.Request().Context(), query)
	return HandleSuccess(h.logger, c, results)
}

func toSummaries(meetings []*entities.MeetingWithTags) []entities.Summary {
	summaries := make([]entities.Summary, 0, len(meetings))
	for _, m := range meetings {
		summaries = append(summaries, meetingUC.ToSummary(m))
	}
	return summaries
}

// buildFilterOptions converts ListMeetingsRequest to usecase filter options
func buildFilterOptions(req *dto.ListMeetingsRequest) (meetingUC.FilterOptions, error) {
	opts := meetingUC.FilterOptions{Tags: req.Tags}

	if req.StartDate == "" && req.EndDate == "" {
		return opts, nil
	}

	// Either bound may be omitted; the range stays inclusive at both ends
	start := time.Time{}
	end := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

	if req.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return opts, err
		}
		start = parsed
	}
	if req.EndDate != "" {
		parsed, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return opts, err
		}
		end = parsed.Add(24*time.Hour - time.Nanosecond)
	}

	opts.DateRange = &meetingUC.DateRange{Start: start, End: end}
	return opts, nil
}
