package meeting

import (
	"context"
	"encoding/base64"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pharmatrack/meeting-tracker/internal/domain/entities"
)

type fakeMeetingRepo struct {
	meetings  []*entities.Meeting
	createErr error
	findErr   error
	searchErr error
}

func (f *fakeMeetingRepo) Create(ctx context.Context, m *entities.Meeting) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.meetings = append(f.meetings, m)
	return nil
}

func (f *fakeMeetingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, m := range f.meetings {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMeetingRepo) FindAll(ctx context.Context) ([]*entities.Meeting, error) {
	return f.meetings, nil
}

func (f *fakeMeetingRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Meeting, error) {
	want := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []*entities.Meeting
	for _, m := range f.meetings {
		if _, ok := want[m.ID]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMeetingRepo) SearchByFields(ctx context.Context, query string) ([]*entities.Meeting, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	var out []*entities.Meeting
	for _, m := range f.meetings {
		if MatchesLocalQuery(ToSummary(&entities.MeetingWithTags{Meeting: *m}), query) {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeTagRepo struct {
	tags      []*entities.MeetingTag
	createErr error
}

func (f *fakeTagRepo) CreateBatch(ctx context.Context, tags []*entities.MeetingTag) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.tags = append(f.tags, tags...)
	return nil
}

func (f *fakeTagRepo) FindByMeetingIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.MeetingTag, error) {
	want := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []*entities.MeetingTag
	for _, tag := range f.tags {
		if _, ok := want[tag.MeetingID]; ok {
			out = append(out, tag)
		}
	}
	return out, nil
}

func (f *fakeTagRepo) SearchByName(ctx context.Context, query string) ([]*entities.MeetingTag, error) {
	var out []*entities.MeetingTag
	for _, tag := range f.tags {
		if MatchesLocalQuery(entities.Summary{Tags: []string{tag.TagName}}, query) {
			out = append(out, tag)
		}
	}
	return out, nil
}

type fakeAudioRepo struct {
	rows      []*entities.MeetingAudio
	createErr error
}

func (f *fakeAudioRepo) Create(ctx context.Context, row *entities.MeetingAudio) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeAudioRepo) FindByMeetingIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.MeetingAudio, error) {
	want := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []*entities.MeetingAudio
	for _, row := range f.rows {
		if _, ok := want[row.MeetingID]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

type fakeBlobStore struct {
	uploads   map[string][]byte
	uploadErr error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{uploads: make(map[string][]byte)}
}

func (f *fakeBlobStore) Upload(ctx context.Context, objectName string, data []byte, contentType string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploads[objectName] = data
	return nil
}

func (f *fakeBlobStore) PublicURL(objectName string) string {
	return "http://blobs.local/meeting-audio/" + objectName
}

func newTestService(mr *fakeMeetingRepo, tr *fakeTagRepo, ar *fakeAudioRepo, bs *fakeBlobStore) *MeetingService {
	return NewMeetingService(mr, tr, ar, bs, zap.NewNop())
}

func inlineAudio(data string) string {
	return "data:audio/webm;base64," + base64.StdEncoding.EncodeToString([]byte(data))
}

func TestSaveMeeting_FullPipeline(t *testing.T) {
	mr := &fakeMeetingRepo{}
	tr := &fakeTagRepo{}
	ar := &fakeAudioRepo{}
	bs := newFakeBlobStore()
	svc := newTestService(mr, tr, ar, bs)

	result, err := svc.SaveMeeting(context.Background(), SaveInput{
		Transcript:     "The once daily dosing schedule was the main focus this time.",
		DoctorName:     "Dr. Lee",
		RepName:        "Sam",
		DrugsDiscussed: "Cardiprex",
		GeneratedTitle: "Cardiprex dosing discussion",
		GeneratedTags:  []string{"cardiology", "dosing"},
		AudioURL:       inlineAudio("webm-bytes"),
	})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if result.Tags.Status != StepCommitted {
		t.Fatalf("expected tags committed, got %+v", result.Tags)
	}
	if result.Audio.Status != StepCommitted {
		t.Fatalf("expected audio committed, got %+v", result.Audio)
	}
	if len(mr.meetings) != 1 {
		t.Fatalf("expected 1 meeting row got %d", len(mr.meetings))
	}
	if len(tr.tags) != 2 {
		t.Fatalf("expected 2 tag rows got %d", len(tr.tags))
	}

	objectName := fmt.Sprintf("%s.webm", result.MeetingID)
	if string(bs.uploads[objectName]) != "webm-bytes" {
		t.Fatalf("uploaded bytes wrong for %s", objectName)
	}
	if len(ar.rows) != 1 || ar.rows[0].AudioURL != result.AudioURL {
		t.Fatalf("audio reference row wrong: %+v", ar.rows)
	}
}

func TestSaveMeeting_MissingRequiredFields(t *testing.T) {
	svc := newTestService(&fakeMeetingRepo{}, &fakeTagRepo{}, &fakeAudioRepo{}, newFakeBlobStore())

	_, err := svc.SaveMeeting(context.Background(), SaveInput{
		Transcript: "something",
		DoctorName: "Dr. Lee",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestSaveMeeting_TagFailureDoesNotFailSave(t *testing.T) {
	mr := &fakeMeetingRepo{}
	tr := &fakeTagRepo{createErr: fmt.Errorf("tags table unavailable")}
	svc := newTestService(mr, tr, &fakeAudioRepo{}, newFakeBlobStore())

	result, err := svc.SaveMeeting(context.Background(), SaveInput{
		Transcript:    "The once daily dosing schedule was the main focus this time.",
		DoctorName:    "Dr. Lee",
		RepName:       "Sam",
		GeneratedTags: []string{"cardiology"},
	})
	if err != nil {
		t.Fatalf("save should survive tag failure: %v", err)
	}
	if result.Tags.Status != StepSkipped || result.Tags.Reason == "" {
		t.Fatalf("expected skipped tags with reason, got %+v", result.Tags)
	}
	if len(mr.meetings) != 1 {
		t.Fatalf("meeting row should still exist")
	}
}

func TestSaveMeeting_BadAudioPayloadSkipsAudio(t *testing.T) {
	mr := &fakeMeetingRepo{}
	ar := &fakeAudioRepo{}
	svc := newTestService(mr, &fakeTagRepo{}, ar, newFakeBlobStore())

	result, err := svc.SaveMeeting(context.Background(), SaveInput{
		Transcript: "The once daily dosing schedule was the main focus this time.",
		DoctorName: "Dr. Lee",
		RepName:    "Sam",
		AudioURL:   "data:audio/webm;base64!!!no-comma-here",
	})
	if err != nil {
		t.Fatalf("save should survive audio decode failure: %v", err)
	}
	if result.Audio.Status != StepSkipped {
		t.Fatalf("expected skipped audio, got %+v", result.Audio)
	}
	if result.Audio.Reason != "Failed to decode audio payload" {
		t.Fatalf("unexpected skip reason %q", result.Audio.Reason)
	}
	if result.AudioURL != "" || len(ar.rows) != 0 {
		t.Fatal("no audio should have been recorded")
	}
}

func TestSaveMeeting_UploadFailureSkipsAudio(t *testing.T) {
	mr := &fakeMeetingRepo{}
	ar := &fakeAudioRepo{}
	bs := newFakeBlobStore()
	bs.uploadErr = fmt.Errorf("bucket unreachable")
	svc := newTestService(mr, &fakeTagRepo{}, ar, bs)

	result, err := svc.SaveMeeting(context.Background(), SaveInput{
		Transcript: "The once daily dosing schedule was the main focus this time.",
		DoctorName: "Dr. Lee",
		RepName:    "Sam",
		AudioURL:   inlineAudio("webm-bytes"),
	})
	if err != nil {
		t.Fatalf("save should survive upload failure: %v", err)
	}
	if result.Audio.Status != StepSkipped || result.Audio.Reason != "Failed to upload meeting audio" {
		t.Fatalf("expected skipped audio with upload reason, got %+v", result.Audio)
	}
	if len(ar.rows) != 0 {
		t.Fatal("no audio reference should have been recorded")
	}
}

func TestSaveMeeting_ExtractsKeyPointsWhenNoneProvided(t *testing.T) {
	mr := &fakeMeetingRepo{}
	svc := newTestService(mr, &fakeTagRepo{}, &fakeAudioRepo{}, newFakeBlobStore())

	_, err := svc.SaveMeeting(context.Background(), SaveInput{
		Transcript: "Dr. Lee asked about dosing. The rep explained the once daily schedule in detail today.",
		DoctorName: "Dr. Lee",
		RepName:    "Sam",
	})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	points := []string(mr.meetings[0].KeyPoints)
	if len(points) != 2 {
		t.Fatalf("expected 2 extracted key points got %v", points)
	}
}

func TestSaveMeeting_CapsProvidedKeyPoints(t *testing.T) {
	mr := &fakeMeetingRepo{}
	svc := newTestService(mr, &fakeTagRepo{}, &fakeAudioRepo{}, newFakeBlobStore())

	provided := []string{"one.", "two.", "three.", "four.", "five.", "six.", "seven."}
	_, err := svc.SaveMeeting(context.Background(), SaveInput{
		Transcript: "irrelevant",
		DoctorName: "Dr. Lee",
		RepName:    "Sam",
		KeyPoints:  provided,
	})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	points := []string(mr.meetings[0].KeyPoints)
	if len(points) != 5 || points[4] != "five." {
		t.Fatalf("expected provided key points capped at 5, got %v", points)
	}
}

func TestSearch_MergesTagMatchesAfterDirectMatches(t *testing.T) {
	mr := &fakeMeetingRepo{}
	tr := &fakeTagRepo{}
	svc := newTestService(mr, tr, &fakeAudioRepo{}, newFakeBlobStore())

	direct := entities.NewMeeting("Dr. Osei", "Sam", "Cardiprex", "Cardio review", "transcript")
	tagOnly := entities.NewMeeting("Dr. Chen", "Jordan", "Neurexil", "Other meeting", "transcript")
	tagOnly.CreatedAt = direct.CreatedAt.Add(time.Hour)
	mr.meetings = []*entities.Meeting{direct, tagOnly}

	tr.tags = []*entities.MeetingTag{
		{ID: uuid.New(), MeetingID: tagOnly.ID, TagName: "cardiology"},
		{ID: uuid.New(), MeetingID: tagOnly.ID, TagName: "cardio-followup"},
		{ID: uuid.New(), MeetingID: direct.ID, TagName: "cardiology"},
	}

	got := svc.Search(context.Background(), "cardio")

	// The tag-only meeting is newer but still sorts after the direct match,
	// and its two matching tags produce one result, not two.
	if len(got) != 2 {
		t.Fatalf("expected 2 results got %d", len(got))
	}
	if got[0].ID != direct.ID || got[1].ID != tagOnly.ID {
		t.Fatalf("unexpected result order: %v then %v", got[0].Title, got[1].Title)
	}
	if len(got[0].Tags) != 1 || len(got[1].Tags) != 2 {
		t.Fatalf("tags not attached: %v / %v", got[0].Tags, got[1].Tags)
	}
}

func TestSearch_DirectFailureReturnsEmpty(t *testing.T) {
	mr := &fakeMeetingRepo{searchErr: fmt.Errorf("db down")}
	svc := newTestService(mr, &fakeTagRepo{}, &fakeAudioRepo{}, newFakeBlobStore())

	if got := svc.Search(context.Background(), "cardio"); len(got) != 0 {
		t.Fatalf("expected empty result got %v", got)
	}
}

func TestGetMeeting_NotFound(t *testing.T) {
	svc := newTestService(&fakeMeetingRepo{}, &fakeTagRepo{}, &fakeAudioRepo{}, newFakeBlobStore())

	if got := svc.GetMeeting(context.Background(), uuid.New()); got != nil {
		t.Fatalf("expected nil meeting got %+v", got)
	}
}

func TestGetMeeting_LookupFailureYieldsNotFound(t *testing.T) {
	mr := &fakeMeetingRepo{findErr: fmt.Errorf("connection reset")}
	svc := newTestService(mr, &fakeTagRepo{}, &fakeAudioRepo{}, newFakeBlobStore())

	// Lookup errors behave like a missing meeting instead of surfacing
	if got := svc.GetMeeting(context.Background(), uuid.New()); got != nil {
		t.Fatalf("expected nil meeting on lookup failure, got %+v", got)
	}
}
