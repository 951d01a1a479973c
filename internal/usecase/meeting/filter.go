package meeting

import (
	"sort"
	"strings"
	"time"

	"github.com/pharmatrack/meeting-tracker/internal/domain/entities"
)

// SortOrder selects how a summary feed is ordered
type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortOldest    SortOrder = "oldest"
	SortRelevance SortOrder = "relevance"
)

// DateRange is an inclusive creation-time window
type DateRange struct {
	Start time.Time
	End   time.Time
}

// FilterOptions narrows a summary feed before sorting
type FilterOptions struct {
	DateRange *DateRange
	Tags      []string
}

// ToSummary converts a meeting with its joined tags into the display model.
// Stored key points win; otherwise up to four are extracted from the
// transcript on the fly.
func ToSummary(m *entities.MeetingWithTags) entities.Summary {
	keyPoints := []string(m.KeyPoints)
	if len(keyPoints) == 0 && m.Transcript != "" {
		keyPoints = ExtractKeyPoints(m.Transcript, 4)
	}
	if keyPoints == nil {
		keyPoints = []string{}
	}

	drugName := m.DrugsDiscussed
	if drugName == "" {
		drugName = "Not specified"
	}

	relevantPatients := 0
	if m.RelevantPatients != nil {
		relevantPatients = *m.RelevantPatients
	}

	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}

	return entities.Summary{
		ID:               m.ID.String(),
		Title:            m.Title,
		DrugName:         drugName,
		Presenter:        m.RepName,
		DoctorName:       m.DoctorName,
		KeyPoints:        keyPoints,
		RelevantPatients: relevantPatients,
		Tags:             tags,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// ApplyFilters narrows summaries to the date range and tag set. A summary
// passes the tag filter when it carries at least one of the requested tags
// (exact match). The date range is inclusive at both ends.
func ApplyFilters(summaries []entities.Summary, opts FilterOptions) []entities.Summary {
	result := make([]entities.Summary, 0, len(summaries))

	for _, s := range summaries {
		if opts.DateRange != nil {
			if s.CreatedAt.Before(opts.DateRange.Start) || s.CreatedAt.After(opts.DateRange.End) {
				continue
			}
		}
		if len(opts.Tags) > 0 && !hasAnyTag(s.Tags, opts.Tags) {
			continue
		}
		result = append(result, s)
	}

	return result
}

func hasAnyTag(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

// SortSummaries orders summaries in place. Relevance sorts by the relevant
// patient count descending, treating missing counts as zero.
func SortSummaries(summaries []entities.Summary, order SortOrder) {
	sort.SliceStable(summaries, func(i, j int) bool {
		switch order {
		case SortOldest:
			return summaries[i].CreatedAt.Before(summaries[j].CreatedAt)
		case SortRelevance:
			return summaries[i].RelevantPatients > summaries[j].RelevantPatients
		default:
			return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
		}
	})
}

// MatchesLocalQuery reports whether a summary contains the query as a
// case-insensitive substring of its title, drug name, doctor name, key points
// or tags. Used for queries too short to hit the database search.
func MatchesLocalQuery(s entities.Summary, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(s.Title), q) ||
		strings.Contains(strings.ToLower(s.DrugName), q) ||
		strings.Contains(strings.ToLower(s.DoctorName), q) {
		return true
	}
	for _, point := range s.KeyPoints {
		if strings.Contains(strings.ToLower(point), q) {
			return true
		}
	}
	for _, tag := range s.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
