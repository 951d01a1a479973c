package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pharmatrack/meeting-tracker/errors"
	"github.com/pharmatrack/meeting-tracker/internal/domain/entities"
	"github.com/pharmatrack/meeting-tracker/internal/domain/repositories"
	"github.com/pharmatrack/meeting-tracker/internal/infrastructure/cache"
	"github.com/pharmatrack/meeting-tracker/internal/usecase/meeting"
)

// dailySummaryTTL keeps a cached daily summary for a full day; the coverage
// check invalidates it earlier when new meetings arrive.
const dailySummaryTTL = 24 * time.Hour

// Generator is the slice of the OpenAI client this service needs
type Generator interface {
	Configured() bool
	GenerateSummaryText(ctx context.Context, transcript string) (string, error)
	TextToSpeech(ctx context.Context, text string) ([]byte, error)
}

// Service defines the interface for summary use case
type Service interface {
	// GenerateAudioSummary produces a spoken summary of the given transcript
	// and stores the audio under today's summary object name
	GenerateAudioSummary(ctx context.Context, transcript string) (*AudioSummary, error)

	// DailySummary returns today's cached spoken summary, regenerating it
	// when meetings were recorded after the cached one was built
	DailySummary(ctx context.Context) (*entities.DailySummary, error)
}

// AudioSummary is the result of one summary generation
type AudioSummary struct {
	AudioURL    string `json:"audioUrl"`
	SummaryText string `json:"summaryText"`
}

type summaryService struct {
	generator   Generator
	meetingRepo repositories.MeetingRepository
	blobs       meeting.BlobStore
	store       cache.Store
	logger      *zap.Logger
	now         func() time.Time
}

// Ensure summaryService implements Service interface
var _ Service = (*summaryService)(nil)

// NewSummaryService creates a new summary service
func NewSummaryService(
	generator Generator,
	meetingRepo repositories.MeetingRepository,
	blobs meeting.BlobStore,
	store cache.Store,
	logger *zap.Logger,
) Service {
	return &summaryService{
		generator:   generator,
		meetingRepo: meetingRepo,
		blobs:       blobs,
		store:       store,
		logger:      logger,
		now:         time.Now,
	}
}

// GenerateAudioSummary produces a spoken summary of the given transcript
func (s *summaryService) GenerateAudioSummary(ctx context.Context, transcript string) (*AudioSummary, error) {
	if !s.generator.Configured() {
		return nil, errors.ErrAIKeyMissing()
	}

	summaryText, err := s.generator.GenerateSummaryText(ctx, transcript)
	if err != nil {
		s.logger.Error("summary text generation failed", zap.Error(err))
		return nil, errors.ErrAISummaryFailed(err)
	}

	speech, err := s.generator.TextToSpeech(ctx, summaryText)
	if err != nil {
		s.logger.Error("summary speech synthesis failed", zap.Error(err))
		return nil, errors.ErrAISummaryFailed(err)
	}

	objectName := s.summaryObjectName()
	if err := s.blobs.Upload(ctx, objectName, speech, "audio/mpeg"); err != nil {
		s.logger.Error("summary audio upload failed",
			zap.String("object", objectName), zap.Error(err))
		return nil, errors.ErrStorageFailed("upload summary audio", err)
	}

	return &AudioSummary{
		AudioURL:    s.blobs.PublicURL(objectName),
		SummaryText: summaryText,
	}, nil
}

// DailySummary returns today's cached spoken summary, regenerating it when
// the day has meetings the cached summary does not cover
func (s *summaryService) DailySummary(ctx context.Context) (*entities.DailySummary, error) {
	date := s.today()

	meetings, err := s.todaysMeetings(ctx, date)
	if err != nil {
		return nil, errors.ErrDBQueryFailed(err)
	}
	if len(meetings) == 0 {
		return nil, errors.ErrNotFound("daily summary")
	}

	ids := make([]string, 0, len(meetings))
	for _, m := range meetings {
		ids = append(ids, m.ID.String())
	}

	if cached := s.cachedSummary(ctx, date); cached != nil && cached.Covers(ids) {
		return cached, nil
	}

	audioSummary, err := s.GenerateAudioSummary(ctx, combineTranscripts(meetings))
	if err != nil {
		return nil, err
	}

	daily := &entities.DailySummary{
		Date:              date,
		AudioURL:          audioSummary.AudioURL,
		SummaryText:       audioSummary.SummaryText,
		CoveredMeetingIDs: ids,
	}

	if payload, err := json.Marshal(daily); err == nil {
		if err := s.store.Set(ctx, dailySummaryKey(date), string(payload), dailySummaryTTL); err != nil {
			s.logger.Error("failed to cache daily summary",
				zap.Error(errors.ErrCacheFailed("set daily summary", err)))
		}
	}

	return daily, nil
}

func (s *summaryService) cachedSummary(ctx context.Context, date string) *entities.DailySummary {
	payload, ok, err := s.store.Get(ctx, dailySummaryKey(date))
	if err != nil {
		s.logger.Error("daily summary cache lookup failed",
			zap.Error(errors.ErrCacheFailed("get daily summary", err)))
		return nil
	}
	if !ok {
		return nil
	}

	var daily entities.DailySummary
	if err := json.Unmarshal([]byte(payload), &daily); err != nil {
		s.logger.Error("corrupt daily summary cache entry", zap.Error(err))
		return nil
	}
	return &daily
}

func (s *summaryService) todaysMeetings(ctx context.Context, date string) ([]*entities.Meeting, error) {
	all, err := s.meetingRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var todays []*entities.Meeting
	for _, m := range all {
		if m.CreatedAt.UTC().Format("2006-01-02") == date {
			todays = append(todays, m)
		}
	}
	return todays, nil
}

func (s *summaryService) today() string {
	return s.now().UTC().Format("2006-01-02")
}

func (s *summaryService) summaryObjectName() string {
	return fmt.Sprintf("summary-%s.mp3", s.today())
}

func dailySummaryKey(date string) string {
	return "daily-summary:" + date
}

// combineTranscripts builds the prompt body the summary model reads: one
// paragraph per meeting, newest data last
func combineTranscripts(meetings []*entities.Meeting) string {
	parts := make([]string, 0, len(meetings))
	for _, m := range meetings {
		drugs := m.DrugsDiscussed
		if drugs == "" {
			drugs = "unspecified treatments"
		}
		parts = append(parts, fmt.Sprintf("Meeting with %s about %s: %s", m.DoctorName, drugs, m.Transcript))
	}
	return strings.Join(parts, "\n\n")
}
