package types

import "time"

// CreationStep names a stage of the lesson creation workflow.
type CreationStep string

const (
	StepValidating CreationStep = "validating"
	StepExtracting CreationStep = "extracting"
	StepGenerating CreationStep = "generating"
	StepSaving     CreationStep = "saving"
	StepCompleted  CreationStep = "completed"
	StepError      CreationStep = "error"
)

// CreationProgress is one immutable progress event. A workflow invocation
// produces an append-only ordered sequence of these; events are delivered
// to the optional callback as they happen and accumulated into the final
// result either way.
type CreationProgress struct {
	Step      CreationStep `json:"step"`
	Message   string       `json:"message"`
	Percent   int          `json:"progress"`
	Error     string       `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// CreationResult is the uniform return contract of the workflow. Every
// failure mode is folded into this shape; no error escapes the workflow
// boundary.
type CreationResult struct {
	Success bool `json:"success"`
	// Lesson is set on success, including its persisted sections.
	Lesson *Lesson `json:"lesson,omitempty"`
	Error  string  `json:"error,omitempty"`
	// Degraded marks a lesson built from the fallback generator after
	// every real generation attempt failed validation.
	Degraded bool               `json:"degraded,omitempty"`
	Progress []CreationProgress `json:"progress"`
}
