package entities

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
)

// AudioPayloadKind distinguishes the two shapes a saved recording can arrive
// in: embedded base64 data or a URL pointing at a remote file.
type AudioPayloadKind int

const (
	AudioPayloadInline AudioPayloadKind = iota
	AudioPayloadRemote
)

// DefaultAudioContentType is used when neither the data URL nor the remote
// response supplies one.
const DefaultAudioContentType = "audio/webm"

// AudioPayload is the resolved tagged variant of a save request's audio field.
// Inline payloads carry decoded bytes and a content type; remote payloads
// carry only the URL and are fetched later in the pipeline.
type AudioPayload struct {
	Kind        AudioPayloadKind
	Data        []byte
	ContentType string
	URL         string
}

var dataURLPattern = regexp.MustCompile(`^data:([^;]+);base64,(.+)$`)
var dataPrefixPattern = regexp.MustCompile(`data:([^;]+)`)

// ResolveAudioPayload classifies and, for data URLs, decodes an audio payload
// string. The standard data:<content-type>;base64,<data> shape is tried first;
// if it does not match, the string is split on the first comma and the content
// type recovered from the prefix when possible. Anything not starting with
// "data:" is treated as a remote URL.
func ResolveAudioPayload(raw string) (*AudioPayload, error) {
	if raw == "" {
		return nil, fmt.Errorf("empty audio payload")
	}

	if !strings.HasPrefix(raw, "data:") {
		return &AudioPayload{Kind: AudioPayloadRemote, URL: raw}, nil
	}

	contentType := DefaultAudioContentType
	var encoded string

	if m := dataURLPattern.FindStringSubmatch(raw); len(m) == 3 {
		contentType = m[1]
		encoded = m[2]
	} else {
		commaIndex := strings.Index(raw, ",")
		if commaIndex <= 0 {
			return nil, fmt.Errorf("invalid base64 data URL: no comma found")
		}
		if m := dataPrefixPattern.FindStringSubmatch(raw[:commaIndex]); len(m) == 2 {
			contentType = m[1]
		}
		encoded = raw[commaIndex+1:]
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 audio data: %w", err)
	}

	return &AudioPayload{
		Kind:        AudioPayloadInline,
		Data:        data,
		ContentType: contentType,
	}, nil
}
