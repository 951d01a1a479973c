package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/pharmatrack/meeting-tracker/internal/domain/entities"
)

// MeetingRepository defines data access for meeting rows
type MeetingRepository interface {
	Create(ctx context.Context, meeting *entities.Meeting) error
	// FindByID returns (nil, nil) when the meeting does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)
	// FindAll returns every meeting ordered newest-created-first.
	FindAll(ctx context.Context) ([]*entities.Meeting, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Meeting, error)
	// SearchByFields returns meetings whose title, doctor name, rep name,
	// transcript or drugs-discussed field contains the query as a
	// case-insensitive substring, ordered newest-created-first.
	SearchByFields(ctx context.Context, query string) ([]*entities.Meeting, error)
}

// TagRepository defines data access for meeting tag rows
type TagRepository interface {
	CreateBatch(ctx context.Context, tags []*entities.MeetingTag) error
	FindByMeetingIDs(ctx context.Context, meetingIDs []uuid.UUID) ([]*entities.MeetingTag, error)
	// SearchByName returns tag rows whose name contains the query as a
	// case-insensitive substring.
	SearchByName(ctx context.Context, query string) ([]*entities.MeetingTag, error)
}

// AudioRepository defines data access for meeting audio reference rows
type AudioRepository interface {
	Create(ctx context.Context, audio *entities.MeetingAudio) error
	FindByMeetingIDs(ctx context.Context, meetingIDs []uuid.UUID) ([]*entities.MeetingAudio, error)
}
