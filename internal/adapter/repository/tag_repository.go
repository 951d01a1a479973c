package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pharmatrack/meeting-tracker/internal/domain/entities"
	"github.com/pharmatrack/meeting-tracker/internal/domain/repositories"
)

// tagRepository implements the TagRepository interface
type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *gorm.DB) repositories.TagRepository {
	return &tagRepository{db: db}
}

// CreateBatch inserts all given tag rows in one statement
func (r *tagRepository) CreateBatch(ctx context.Context, tags []*entities.MeetingTag) error {
	if len(tags) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(tags).Error
}

// FindByMeetingIDs retrieves all tag rows for the given meeting id set in one pass
func (r *tagRepository) FindByMeetingIDs(ctx context.Context, meetingIDs []uuid.UUID) ([]*entities.MeetingTag, error) {
	if len(meetingIDs) == 0 {
		return nil, nil
	}
	var tags []*entities.MeetingTag
	if err := r.db.WithContext(ctx).
		Where("meeting_id IN ?", meetingIDs).
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// SearchByName retrieves tag rows matching the query as a case-insensitive substring
func (r *tagRepository) SearchByName(ctx context.Context, query string) ([]*entities.MeetingTag, error) {
	pattern := fmt.Sprintf("%%%s%%", query)
	var tags []*entities.MeetingTag
	if err := r.db.WithContext(ctx).
		Where("tag_name ILIKE ?", pattern).
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}
