package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Meeting represents one recorded rep/doctor conversation and its metadata.
// The transcript is immutable after creation; title and key points may be
// supplied by the analyzer at save time or back-filled by the fallback
// extractor.
type Meeting struct {
	ID               uuid.UUID                     `json:"id" gorm:"type:uuid;primary_key"`
	DoctorName       string                        `json:"doctor_name" gorm:"type:varchar(255);not null"`
	RepName          string                        `json:"rep_name" gorm:"type:varchar(255);not null"`
	DrugsDiscussed   string                        `json:"drugs_discussed" gorm:"type:text"`
	Title            string                        `json:"title" gorm:"type:varchar(255);not null;default:'Untitled Meeting'"`
	Transcript       string                        `json:"transcript" gorm:"type:text;not null"`
	KeyPoints        datatypes.JSONSlice[string]   `json:"key_points,omitempty" gorm:"type:jsonb"`
	RelevantPatients *int                          `json:"relevant_patients,omitempty"`
	CreatedAt        time.Time                     `json:"created_at" gorm:"not null;index"`
	UpdatedAt        time.Time                     `json:"updated_at" gorm:"not null"`
}

// TableName specifies the table name for GORM
func (Meeting) TableName() string {
	return "meetings"
}

// NewMeeting creates a meeting with a fresh id and timestamps
func NewMeeting(doctorName, repName, drugsDiscussed, title, transcript string) *Meeting {
	now := time.Now().UTC()
	if title == "" {
		title = "Untitled Meeting"
	}
	return &Meeting{
		ID:             uuid.New(),
		DoctorName:     doctorName,
		RepName:        repName,
		DrugsDiscussed: drugsDiscussed,
		Title:          title,
		Transcript:     transcript,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// MeetingTag is a short searchable label attached to a meeting. Many tags per
// meeting; rows are owned by the meeting and removed with it (cascade at the
// store layer).
type MeetingTag struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	MeetingID uuid.UUID `json:"meeting_id" gorm:"type:uuid;not null;index"`
	TagName   string    `json:"tag_name" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
}

// TableName specifies the table name for GORM
func (MeetingTag) TableName() string {
	return "meeting_tags"
}

// MeetingAudio points at a stored recording or generated summary audio file.
// At most one row per meeting in practice; the store does not enforce this and
// readers take the first match.
type MeetingAudio struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	MeetingID uuid.UUID `json:"meeting_id" gorm:"type:uuid;not null;index"`
	AudioURL  string    `json:"audio_url" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
}

// TableName specifies the table name for GORM
func (MeetingAudio) TableName() string {
	return "meeting_audio"
}

// MeetingWithTags is a meeting joined with its resolved tag strings and
// optional audio URL. Assembled in memory per query, never persisted.
type MeetingWithTags struct {
	Meeting
	Tags     []string `json:"tags"`
	AudioURL string   `json:"audio_url,omitempty"`
}
