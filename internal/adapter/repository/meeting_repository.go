package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pharmatrack/meeting-tracker/internal/domain/entities"
	"github.com/pharmatrack/meeting-tracker/internal/domain/repositories"
)

// meetingRepository implements the MeetingRepository interface
type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) repositories.MeetingRepository {
	return &meetingRepository{db: db}
}

// Create inserts a new meeting row
func (r *meetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	if meeting == nil {
		return errors.New("meeting cannot be nil")
	}
	return r.db.WithContext(ctx).Create(meeting).Error
}

// FindByID retrieves a meeting by ID, returning (nil, nil) when absent
func (r *meetingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&meeting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &meeting, nil
}

// FindAll retrieves every meeting, newest first
func (r *meetingRepository) FindAll(ctx context.Context) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}

// FindByIDs retrieves the meetings matching the given id set
func (r *meetingRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Meeting, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var meetings []*entities.Meeting
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}

// SearchByFields runs the direct-match substring search across the five
// searchable text columns, newest first
func (r *meetingRepository) SearchByFields(ctx context.Context, query string) ([]*entities.Meeting, error) {
	pattern := fmt.Sprintf("%%%s%%", query)
	var meetings []*entities.Meeting
	if err := r.db.WithContext(ctx).
		Where("title ILIKE ? OR doctor_name ILIKE ? OR rep_name ILIKE ? OR transcript ILIKE ? OR drugs_discussed ILIKE ?",
			pattern, pattern, pattern, pattern, pattern).
		Order("created_at DESC").
		Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}
