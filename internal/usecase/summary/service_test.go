package summary

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pharmatrack/meeting-tracker/internal/domain/entities"
	"github.com/pharmatrack/meeting-tracker/internal/infrastructure/cache"
)

type fakeGenerator struct {
	calls       int
	summaryText string
	summaryErr  error
	speechErr   error
}

func (f *fakeGenerator) Configured() bool { return true }

func (f *fakeGenerator) GenerateSummaryText(ctx context.Context, transcript string) (string, error) {
	f.calls++
	if f.summaryErr != nil {
		return "", f.summaryErr
	}
	return f.summaryText, nil
}

func (f *fakeGenerator) TextToSpeech(ctx context.Context, text string) ([]byte, error) {
	if f.speechErr != nil {
		return nil, f.speechErr
	}
	return []byte("mp3-bytes"), nil
}

type meetingRepoStub struct {
	meetings []*entities.Meeting
}

func (f *meetingRepoStub) Create(ctx context.Context, m *entities.Meeting) error { return nil }

func (f *meetingRepoStub) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	return nil, nil
}

func (f *meetingRepoStub) FindAll(ctx context.Context) ([]*entities.Meeting, error) {
	return f.meetings, nil
}

func (f *meetingRepoStub) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Meeting, error) {
	return nil, nil
}

func (f *meetingRepoStub) SearchByFields(ctx context.Context, query string) ([]*entities.Meeting, error) {
	return nil, nil
}

type fakeBlobStore struct {
	uploads map[string][]byte
}

func (f *fakeBlobStore) Upload(ctx context.Context, objectName string, data []byte, contentType string) error {
	f.uploads[objectName] = data
	return nil
}

func (f *fakeBlobStore) PublicURL(objectName string) string {
	return "http://blobs.local/meeting-audio/" + objectName
}

func newTestService(gen *fakeGenerator, meetings []*entities.Meeting, store cache.Store) (*summaryService, *fakeBlobStore) {
	blobs := &fakeBlobStore{uploads: make(map[string][]byte)}
	svc := &summaryService{
		generator:   gen,
		meetingRepo: &meetingRepoStub{meetings: meetings},
		blobs:       blobs,
		store:       store,
		logger:      zap.NewNop(),
		now:         func() time.Time { return time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC) },
	}
	return svc, blobs
}

func TestGenerateAudioSummary_UploadsDatedObject(t *testing.T) {
	gen := &fakeGenerator{summaryText: "Today you discussed Cardiprex dosing."}
	svc, blobs := newTestService(gen, nil, cache.NewMemoryStore())

	result, err := svc.GenerateAudioSummary(context.Background(), "combined transcript")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if result.SummaryText != "Today you discussed Cardiprex dosing." {
		t.Fatalf("unexpected summary text %q", result.SummaryText)
	}
	if _, ok := blobs.uploads["summary-2025-03-10.mp3"]; !ok {
		t.Fatalf("expected dated summary object, got %v", keys(blobs.uploads))
	}
	if result.AudioURL != "http://blobs.local/meeting-audio/summary-2025-03-10.mp3" {
		t.Fatalf("unexpected audio url %q", result.AudioURL)
	}
}

func TestGenerateAudioSummary_GenerationFailure(t *testing.T) {
	gen := &fakeGenerator{summaryErr: fmt.Errorf("model unavailable")}
	svc, _ := newTestService(gen, nil, cache.NewMemoryStore())

	if _, err := svc.GenerateAudioSummary(context.Background(), "transcript"); err == nil {
		t.Fatal("expected error when generation fails")
	}
}

func TestDailySummary_CachesAndReuses(t *testing.T) {
	m := meetingOn(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	gen := &fakeGenerator{summaryText: "summary"}
	svc, _ := newTestService(gen, []*entities.Meeting{m}, cache.NewMemoryStore())

	first, err := svc.DailySummary(context.Background())
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	second, err := svc.DailySummary(context.Background())
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}

	if gen.calls != 1 {
		t.Fatalf("expected 1 generation, got %d", gen.calls)
	}
	if first.AudioURL != second.AudioURL || first.Date != "2025-03-10" {
		t.Fatalf("cached summary mismatch: %+v vs %+v", first, second)
	}
}

func TestDailySummary_RegeneratesWhenNewMeetingArrives(t *testing.T) {
	day := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	first := meetingOn(day)
	store := cache.NewMemoryStore()

	gen := &fakeGenerator{summaryText: "summary"}
	svc, _ := newTestService(gen, []*entities.Meeting{first}, store)
	if _, err := svc.DailySummary(context.Background()); err != nil {
		t.Fatalf("first call failed: %v", err)
	}

	// A second meeting recorded later the same day invalidates the cache
	svc2, _ := newTestService(gen, []*entities.Meeting{first, meetingOn(day.Add(2 * time.Hour))}, store)
	if _, err := svc2.DailySummary(context.Background()); err != nil {
		t.Fatalf("second call failed: %v", err)
	}

	if gen.calls != 2 {
		t.Fatalf("expected regeneration, got %d generations", gen.calls)
	}
}

func TestDailySummary_NoMeetingsToday(t *testing.T) {
	old := meetingOn(time.Date(2025, 3, 8, 9, 0, 0, 0, time.UTC))
	svc, _ := newTestService(&fakeGenerator{summaryText: "summary"}, []*entities.Meeting{old}, cache.NewMemoryStore())

	if _, err := svc.DailySummary(context.Background()); err == nil {
		t.Fatal("expected not-found error with no meetings today")
	}
}

func meetingOn(createdAt time.Time) *entities.Meeting {
	m := entities.NewMeeting("Dr. Lee", "Sam", "Cardiprex", "Title", "The once daily dosing schedule was the main focus this time.")
	m.CreatedAt = createdAt
	m.UpdatedAt = createdAt
	return m
}

func keys(m map[string][]byte) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
