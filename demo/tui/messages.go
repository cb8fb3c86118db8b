package tui

import "time"

// Messages for the tea program (polling-based)

// JobStartedMsg is sent when the creation job has been submitted
type JobStartedMsg struct {
	JobID string
	Err   error
}

// JobUpdateMsg is sent when we receive job state from the API
type JobUpdateMsg struct {
	Job *JobStatusResponse
	Err error
}

// TickMsg is sent periodically to trigger polling
type TickMsg struct {
	Time time.Time
}
