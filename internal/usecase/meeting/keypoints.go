package meeting

import (
	"regexp"
	"strings"
)

// sentenceBoundary splits a transcript on terminal punctuation followed by
// whitespace, so the final sentence keeps its punctuation.
var sentenceBoundary = regexp.MustCompile(`[.!?]\s+`)

// maxKeyPoints caps how many key points a meeting stores.
const maxKeyPoints = 5

// ExtractKeyPoints derives up to limit key points from a raw transcript. A
// sentence qualifies when it is longer than 20 characters and contains no
// filler ("um"/"uh"). Qualifying sentences are trimmed and always get a
// trailing period appended, matching how the stored records have always
// looked.
func ExtractKeyPoints(transcript string, limit int) []string {
	sentences := sentenceBoundary.Split(transcript, -1)

	points := make([]string, 0, limit)
	for _, sentence := range sentences {
		if len(sentence) <= 20 {
			continue
		}
		lower := strings.ToLower(sentence)
		if strings.Contains(lower, "um") || strings.Contains(lower, "uh") {
			continue
		}
		points = append(points, strings.TrimSpace(sentence)+".")
		if len(points) == limit {
			break
		}
	}
	return points
}
