package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pharmatrack/meeting-tracker/internal/domain/entities"
)

// Parser handles parsing and validation of model responses
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// ParseAnalysis parses the JSON response from the transcript analysis into a
// TranscriptAnalysis. Missing titles fall back to "Untitled Meeting" and a
// missing tag list becomes empty, so callers always get render-ready values.
func (p *Parser) ParseAnalysis(jsonString string) (*entities.TranscriptAnalysis, error) {
	// The model may wrap the object in markdown code blocks
	jsonString = extractJSON(jsonString)

	var result entities.TranscriptAnalysis
	if err := json.Unmarshal([]byte(jsonString), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if result.Title == "" {
		result.Title = "Untitled Meeting"
	}
	if result.Tags == nil {
		result.Tags = []string{}
	}

	return &result, nil
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Check if wrapped in markdown code block
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
