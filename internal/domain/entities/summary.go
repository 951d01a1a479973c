package entities

import "time"

// Summary is the display model the browse/search views render: a meeting
// reduced to its card fields, with key points falling back to the extracted
// ones when none were stored.
type Summary struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	DrugName         string    `json:"drug_name"`
	Presenter        string    `json:"presenter"`
	DoctorName       string    `json:"doctor_name"`
	KeyPoints        []string  `json:"key_points"`
	RelevantPatients int       `json:"relevant_patients,omitempty"`
	Tags             []string  `json:"tags"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TranscriptAnalysis is the parsed result of the LLM transcript analysis:
// a short title plus search tags, and optionally pre-extracted key points.
type TranscriptAnalysis struct {
	Title     string   `json:"title"`
	Tags      []string `json:"tags"`
	KeyPoints []string `json:"keyPoints,omitempty"`
}

// DailySummary is the cached spoken-summary artifact for one calendar day.
// It is valid for that day only while every meeting recorded that day is a
// member of CoveredMeetingIDs.
type DailySummary struct {
	Date              string   `json:"date"`
	AudioURL          string   `json:"audio_url"`
	SummaryText       string   `json:"summary_text"`
	CoveredMeetingIDs []string `json:"covered_meeting_ids"`
}

// Covers reports whether the cached summary still covers all of the given
// meeting ids.
func (d *DailySummary) Covers(meetingIDs []string) bool {
	covered := make(map[string]struct{}, len(d.CoveredMeetingIDs))
	for _, id := range d.CoveredMeetingIDs {
		covered[id] = struct{}{}
	}
	for _, id := range meetingIDs {
		if _, ok := covered[id]; !ok {
			return false
		}
	}
	return true
}
