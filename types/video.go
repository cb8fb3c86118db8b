package types

// VideoReference is the parsed form of a user-pasted video URL. It is
// derived, never persisted; recompute it from RawURL when needed.
type VideoReference struct {
	RawURL        string `json:"raw_url"`
	VideoID       string `json:"video_id"`
	NormalizedURL string `json:"normalized_url"`
}

// Valid reports whether a canonical 11-character video id was extracted.
// An invalid reference must stop the pipeline before any network call.
func (v VideoReference) Valid() bool {
	return v.VideoID != ""
}

// TranscriptStatus tracks the lifecycle of an extraction request.
type TranscriptStatus string

const (
	TranscriptCompleted  TranscriptStatus = "completed"
	TranscriptProcessing TranscriptStatus = "processing"
	TranscriptFailed     TranscriptStatus = "failed"
)

// TranscriptResult is the outcome of one transcript extraction. Either
// Text is set (completed), or JobID is set (processing), or Error is set.
// It is consumed immediately by the workflow and never persisted.
type TranscriptResult struct {
	Success bool             `json:"success"`
	Text    string           `json:"text,omitempty"`
	JobID   string           `json:"job_id,omitempty"`
	Status  TranscriptStatus `json:"status"`
	Error   string           `json:"error,omitempty"`
}
