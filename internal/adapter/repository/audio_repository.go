package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pharmatrack/meeting-tracker/internal/domain/entities"
	"github.com/pharmatrack/meeting-tracker/internal/domain/repositories"
)

// audioRepository implements the AudioRepository interface
type audioRepository struct {
	db *gorm.DB
}

// NewAudioRepository creates a new audio reference repository
func NewAudioRepository(db *gorm.DB) repositories.AudioRepository {
	return &audioRepository{db: db}
}

// Create inserts an audio reference row
func (r *audioRepository) Create(ctx context.Context, audio *entities.MeetingAudio) error {
	if audio == nil {
		return errors.New("audio reference cannot be nil")
	}
	return r.db.WithContext(ctx).Create(audio).Error
}

// FindByMeetingIDs retrieves all audio rows for the given meeting id set in one pass
func (r *audioRepository) FindByMeetingIDs(ctx context.Context, meetingIDs []uuid.UUID) ([]*entities.MeetingAudio, error) {
	if len(meetingIDs) == 0 {
		return nil, nil
	}
	var records []*entities.MeetingAudio
	if err := r.db.WithContext(ctx).
		Where("meeting_id IN ?", meetingIDs).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
