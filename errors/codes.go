package errors

// ErrorCode identifies an application error category
type ErrorCode int32

const (
	ErrorCode_HTTP_OK          ErrorCode = 200
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1003

	ErrorCode_MISSING_TRANSCRIPT      ErrorCode = 2000
	ErrorCode_MISSING_REQUIRED_FIELDS ErrorCode = 2001
	ErrorCode_MISSING_AUDIO_FILE      ErrorCode = 2002

	ErrorCode_MEETING_NOT_FOUND   ErrorCode = 3000
	ErrorCode_MEETING_SAVE_FAILED ErrorCode = 3001
	ErrorCode_AUDIO_DECODE_FAILED ErrorCode = 3002
	ErrorCode_AUDIO_UPLOAD_FAILED ErrorCode = 3003

	ErrorCode_AI_ANALYSIS_FAILED      ErrorCode = 4000
	ErrorCode_AI_PARSE_FAILED         ErrorCode = 4001
	ErrorCode_AI_TRANSCRIPTION_FAILED ErrorCode = 4002
	ErrorCode_AI_SUMMARY_FAILED       ErrorCode = 4003
	ErrorCode_AI_KEY_MISSING          ErrorCode = 4004
	ErrorCode_AI_TOKEN_FAILED         ErrorCode = 4005

	ErrorCode_DB_QUERY_FAILED            ErrorCode = 5000
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 5001
	ErrorCode_INTEGRATION_CACHE_FAILED   ErrorCode = 5002
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                    "OK",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_MISSING_TRANSCRIPT:         "MISSING_TRANSCRIPT",
	ErrorCode_MISSING_REQUIRED_FIELDS:    "MISSING_REQUIRED_FIELDS",
	ErrorCode_MISSING_AUDIO_FILE:         "MISSING_AUDIO_FILE",
	ErrorCode_MEETING_NOT_FOUND:          "MEETING_NOT_FOUND",
	ErrorCode_MEETING_SAVE_FAILED:        "MEETING_SAVE_FAILED",
	ErrorCode_AUDIO_DECODE_FAILED:        "AUDIO_DECODE_FAILED",
	ErrorCode_AUDIO_UPLOAD_FAILED:        "AUDIO_UPLOAD_FAILED",
	ErrorCode_AI_ANALYSIS_FAILED:         "AI_ANALYSIS_FAILED",
	ErrorCode_AI_PARSE_FAILED:            "AI_PARSE_FAILED",
	ErrorCode_AI_TRANSCRIPTION_FAILED:    "AI_TRANSCRIPTION_FAILED",
	ErrorCode_AI_SUMMARY_FAILED:          "AI_SUMMARY_FAILED",
	ErrorCode_AI_KEY_MISSING:             "AI_KEY_MISSING",
	ErrorCode_AI_TOKEN_FAILED:            "AI_TOKEN_FAILED",
	ErrorCode_DB_QUERY_FAILED:            "DB_QUERY_FAILED",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:   "INTEGRATION_CACHE_FAILED",
}

// String returns the symbolic name of the error code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
