package meeting

// StepResponse reports how one best-effort save step ended
type StepResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// SaveStepsResponse lists the per-step outcomes of a save
type SaveStepsResponse struct {
	Tags  StepResponse `json:"tags"`
	Audio StepResponse `json:"audio"`
}

// SaveMeetingResponse represents the response after saving a meeting
type SaveMeetingResponse struct {
	Message   string            `json:"message"`
	MeetingID string            `json:"meetingId"`
	AudioURL  string            `json:"audioUrl,omitempty"`
	Steps     SaveStepsResponse `json:"steps"`
}

// AnalyzeTranscriptResponse represents the analyzer output
type AnalyzeTranscriptResponse struct {
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
}

// TranscribeResponse represents a completed transcription
type TranscribeResponse struct {
	Text string `json:"text"`
}

// GenerateSummaryAudioResponse represents a generated spoken summary
type GenerateSummaryAudioResponse struct {
	AudioURL    string `json:"audioUrl"`
	SummaryText string `json:"summaryText"`
}
