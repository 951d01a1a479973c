package meeting

// SaveMeetingMetadata carries the analyzer output and the rep-entered fields
// that accompany a transcript
type SaveMeetingMetadata struct {
	DoctorName     string   `json:"doctorName" validate:"required"`
	RepName        string   `json:"repName" validate:"required"`
	DrugsDiscussed string   `json:"drugsDiscussed,omitempty"`
	GeneratedTitle string   `json:"generatedTitle,omitempty"`
	GeneratedTags  []string `json:"generatedTags,omitempty"`
	KeyPoints      []string `json:"keyPoints,omitempty"`
}

// SaveMeetingRequest represents the request to save a finished meeting.
// audioUrl accepts either a base64 data URL or a remote file URL.
type SaveMeetingRequest struct {
	Transcript string              `json:"transcript" validate:"required"`
	Metadata   SaveMeetingMetadata `json:"metadata" validate:"required"`
	AudioURL   string              `json:"audioUrl,omitempty"`
}

// AnalyzeTranscriptRequest represents the request to analyze a transcript
type AnalyzeTranscriptRequest struct {
	Transcript string `json:"transcript"`
}

// GenerateSummaryAudioRequest represents the request to build a spoken summary
type GenerateSummaryAudioRequest struct {
	Transcript string `json:"transcript"`
}

// ListMeetingsRequest represents query parameters for the meeting feed
type ListMeetingsRequest struct {
	Search    string   `query:"q"`
	Tags      []string `query:"tags"`
	StartDate string   `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string   `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Sort      string   `query:"sort" validate:"omitempty,oneof=newest oldest relevance"`
}
