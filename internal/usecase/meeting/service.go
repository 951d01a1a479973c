package meeting

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pharmatrack/meeting-tracker/errors"
	"github.com/pharmatrack/meeting-tracker/internal/domain/entities"
	"github.com/pharmatrack/meeting-tracker/internal/domain/repositories"
)

// BlobStore abstracts the object store that holds meeting audio
type BlobStore interface {
	Upload(ctx context.Context, objectName string, data []byte, contentType string) error
	PublicURL(objectName string) string
}

// Service defines the interface for meeting use case
type Service interface {
	// ListMeetings retrieves all meetings newest-first with tags and audio attached.
	// Lookup failures degrade to an empty list.
	ListMeetings(ctx context.Context) []*entities.MeetingWithTags

	// GetMeeting retrieves one meeting with tags and audio. Not-found and
	// lookup failures both yield nil.
	GetMeeting(ctx context.Context, id uuid.UUID) *entities.MeetingWithTags

	// Search finds meetings matching the query directly or through their tags
	Search(ctx context.Context, query string) []*entities.MeetingWithTags

	// SaveMeeting runs the save pipeline and reports per-step outcomes
	SaveMeeting(ctx context.Context, input SaveInput) (*SaveResult, error)
}

// SaveInput carries a save request after transport decoding
type SaveInput struct {
	Transcript     string
	DoctorName     string
	RepName        string
	DrugsDiscussed string
	GeneratedTitle string
	GeneratedTags  []string
	KeyPoints      []string
	AudioURL       string
}

// StepStatus reports how one best-effort pipeline step ended
type StepStatus string

const (
	StepCommitted StepStatus = "committed"
	StepSkipped   StepStatus = "skipped"
)

// StepResult is the outcome of one save pipeline step
type StepResult struct {
	Status StepStatus
	Reason string
}

func committed() StepResult {
	return StepResult{Status: StepCommitted}
}

func skipped(reason string) StepResult {
	return StepResult{Status: StepSkipped, Reason: reason}
}

// SaveResult reports what the save pipeline persisted. Only the meeting row
// is mandatory; tags and audio are best-effort and their failures are
// recorded here instead of failing the request.
type SaveResult struct {
	MeetingID uuid.UUID
	AudioURL  string
	Tags      StepResult
	Audio     StepResult
}

// MeetingService handles meeting business logic
type MeetingService struct {
	meetingRepo repositories.MeetingRepository
	tagRepo     repositories.TagRepository
	audioRepo   repositories.AudioRepository
	blobs       BlobStore
	fetcher     *resty.Client
	logger      *zap.Logger
}

// Ensure MeetingService implements Service interface
var _ Service = (*MeetingService)(nil)

// NewMeetingService creates a new meeting service
func NewMeetingService(
	meetingRepo repositories.MeetingRepository,
	tagRepo repositories.TagRepository,
	audioRepo repositories.AudioRepository,
	blobs BlobStore,
	logger *zap.Logger,
) *MeetingService {
	return &MeetingService{
		meetingRepo: meetingRepo,
		tagRepo:     tagRepo,
		audioRepo:   audioRepo,
		blobs:       blobs,
		fetcher:     resty.New(),
		logger:      logger,
	}
}

// ListMeetings retrieves all meetings newest-first with tags and audio attached
func (s *MeetingService) ListMeetings(ctx context.Context) []*entities.MeetingWithTags {
	meetings, err := s.meetingRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to fetch meetings", zap.Error(err))
		return []*entities.MeetingWithTags{}
	}
	return s.attachTagsAndAudio(ctx, meetings)
}

// GetMeeting retrieves one meeting with tags and audio. Not-found and lookup
// failures both come back nil; failures are logged.
func (s *MeetingService) GetMeeting(ctx context.Context, id uuid.UUID) *entities.MeetingWithTags {
	m, err := s.meetingRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to fetch meeting",
			zap.String("meeting_id", id.String()), zap.Error(err))
		return nil
	}
	if m == nil {
		return nil
	}

	return s.attachTagsAndAudio(ctx, []*entities.Meeting{m})[0]
}

// Search finds meetings matching the query directly or through their tags.
// Direct matches come back newest-first; meetings reached only through a tag
// match are appended after them. Tag lookup failures degrade to the direct
// results alone.
func (s *MeetingService) Search(ctx context.Context, query string) []*entities.MeetingWithTags {
	direct, err := s.meetingRepo.SearchByFields(ctx, query)
	if err != nil {
		s.logger.Error("failed to search meetings", zap.String("query", query), zap.Error(err))
		return []*entities.MeetingWithTags{}
	}

	tagMatches, err := s.tagRepo.SearchByName(ctx, query)
	if err != nil {
		s.logger.Error("failed to search meeting tags", zap.String("query", query), zap.Error(err))
	}

	directIDs := make(map[uuid.UUID]struct{}, len(direct))
	for _, m := range direct {
		directIDs[m.ID] = struct{}{}
	}

	seen := make(map[uuid.UUID]struct{})
	missingIDs := make([]uuid.UUID, 0, len(tagMatches))
	for _, tag := range tagMatches {
		if _, ok := directIDs[tag.MeetingID]; ok {
			continue
		}
		if _, ok := seen[tag.MeetingID]; ok {
			continue
		}
		seen[tag.MeetingID] = struct{}{}
		missingIDs = append(missingIDs, tag.MeetingID)
	}

	all := direct
	if len(missingIDs) > 0 {
		tagged, err := s.meetingRepo.FindByIDs(ctx, missingIDs)
		if err != nil {
			s.logger.Error("failed to fetch tag-matched meetings", zap.Error(err))
		} else {
			all = append(all, tagged...)
		}
	}

	return s.attachTagsAndAudio(ctx, all)
}

// SaveMeeting runs the save pipeline. The meeting row is the only fatal step;
// tag and audio persistence are best-effort and report their outcome through
// the result.
func (s *MeetingService) SaveMeeting(ctx context.Context, input SaveInput) (*SaveResult, error) {
	if input.Transcript == "" || input.DoctorName == "" || input.RepName == "" {
		return nil, errors.ErrMissingRequiredFields()
	}

	keyPoints := input.KeyPoints
	if len(keyPoints) > maxKeyPoints {
		keyPoints = keyPoints[:maxKeyPoints]
	}
	if len(keyPoints) == 0 {
		keyPoints = ExtractKeyPoints(input.Transcript, maxKeyPoints)
	}

	m := entities.NewMeeting(
		input.DoctorName,
		input.RepName,
		input.DrugsDiscussed,
		input.GeneratedTitle,
		input.Transcript,
	)
	m.KeyPoints = keyPoints

	if err := s.meetingRepo.Create(ctx, m); err != nil {
		return nil, errors.ErrMeetingSaveFailed(err)
	}

	result := &SaveResult{
		MeetingID: m.ID,
		Tags:      skipped("no tags provided"),
		Audio:     skipped("no audio provided"),
	}

	if len(input.GeneratedTags) > 0 {
		result.Tags = s.saveTags(ctx, m, input.GeneratedTags)
	}

	if input.AudioURL != "" {
		result.Audio, result.AudioURL = s.saveAudio(ctx, m, input.AudioURL)
	}

	s.logger.Info("meeting saved",
		zap.String("meeting_id", m.ID.String()),
		zap.String("tags", string(result.Tags.Status)),
		zap.String("audio", string(result.Audio.Status)),
	)

	return result, nil
}

func (s *MeetingService) saveTags(ctx context.Context, m *entities.Meeting, tagNames []string) StepResult {
	tags := make([]*entities.MeetingTag, 0, len(tagNames))
	for _, name := range tagNames {
		tags = append(tags, &entities.MeetingTag{
			ID:        uuid.New(),
			MeetingID: m.ID,
			TagName:   name,
			CreatedAt: m.CreatedAt,
		})
	}

	if err := s.tagRepo.CreateBatch(ctx, tags); err != nil {
		s.logger.Error("failed to store meeting tags",
			zap.String("meeting_id", m.ID.String()), zap.Error(err))
		return skipped(fmt.Sprintf("failed to store tags: %v", err))
	}
	return committed()
}

// saveAudio resolves, uploads and records the audio payload. Every failure is
// absorbed: the meeting row already exists and must survive regardless.
func (s *MeetingService) saveAudio(ctx context.Context, m *entities.Meeting, rawAudio string) (StepResult, string) {
	payload, err := entities.ResolveAudioPayload(rawAudio)
	if err != nil {
		decodeErr := errors.ErrAudioDecodeFailed(err)
		s.logger.Error("failed to decode audio payload",
			zap.String("meeting_id", m.ID.String()), zap.Error(err))
		return skipped(decodeErr.Message), ""
	}

	data := payload.Data
	contentType := payload.ContentType
	if payload.Kind == entities.AudioPayloadRemote {
		data, contentType, err = s.fetchRemoteAudio(ctx, payload.URL)
		if err != nil {
			s.logger.Error("failed to fetch remote audio",
				zap.String("meeting_id", m.ID.String()), zap.Error(err))
			return skipped(fmt.Sprintf("failed to fetch audio: %v", err)), ""
		}
	}

	objectName := fmt.Sprintf("%s.webm", m.ID)
	if err := s.blobs.Upload(ctx, objectName, data, contentType); err != nil {
		uploadErr := errors.ErrAudioUploadFailed(m.ID.String(), err)
		s.logger.Error("failed to upload meeting audio",
			zap.String("meeting_id", m.ID.String()), zap.Error(err))
		return skipped(uploadErr.Message), ""
	}

	audioURL := s.blobs.PublicURL(objectName)

	row := &entities.MeetingAudio{
		ID:        uuid.New(),
		MeetingID: m.ID,
		AudioURL:  audioURL,
		CreatedAt: m.CreatedAt,
	}
	if err := s.audioRepo.Create(ctx, row); err != nil {
		// The file is uploaded and reachable, only the reference row is lost
		s.logger.Error("failed to store audio reference",
			zap.String("meeting_id", m.ID.String()), zap.Error(err))
		return skipped(fmt.Sprintf("failed to store audio reference: %v", err)), audioURL
	}

	return committed(), audioURL
}

func (s *MeetingService) fetchRemoteAudio(ctx context.Context, url string) ([]byte, string, error) {
	rsp, err := s.fetcher.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, "", err
	}
	if rsp.StatusCode() >= 400 {
		return nil, "", fmt.Errorf("audio fetch returned status %d", rsp.StatusCode())
	}

	contentType := rsp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = entities.DefaultAudioContentType
	}
	return rsp.Body(), contentType, nil
}

// attachTagsAndAudio joins tags and audio URLs onto meetings with two bulk
// lookups. Either lookup failing degrades to meetings without that data.
func (s *MeetingService) attachTagsAndAudio(ctx context.Context, meetings []*entities.Meeting) []*entities.MeetingWithTags {
	combined := make([]*entities.MeetingWithTags, 0, len(meetings))
	if len(meetings) == 0 {
		return combined
	}

	ids := make([]uuid.UUID, 0, len(meetings))
	for _, m := range meetings {
		ids = append(ids, m.ID)
	}

	tagsByMeeting := make(map[uuid.UUID][]string)
	tags, err := s.tagRepo.FindByMeetingIDs(ctx, ids)
	if err != nil {
		s.logger.Error("failed to fetch meeting tags", zap.Error(err))
	} else {
		for _, tag := range tags {
			tagsByMeeting[tag.MeetingID] = append(tagsByMeeting[tag.MeetingID], tag.TagName)
		}
	}

	audioByMeeting := make(map[uuid.UUID]string)
	audioRows, err := s.audioRepo.FindByMeetingIDs(ctx, ids)
	if err != nil {
		s.logger.Error("failed to fetch meeting audio records", zap.Error(err))
	} else {
		for _, row := range audioRows {
			// first row wins when a meeting somehow has several
			if _, ok := audioByMeeting[row.MeetingID]; !ok {
				audioByMeeting[row.MeetingID] = row.AudioURL
			}
		}
	}

	for _, m := range meetings {
		meetingTags := tagsByMeeting[m.ID]
		if meetingTags == nil {
			meetingTags = []string{}
		}
		combined = append(combined, &entities.MeetingWithTags{
			Meeting:  *m,
			Tags:     meetingTags,
			AudioURL: audioByMeeting[m.ID],
		})
	}

	return combined
}
