package workflow

import (
	"time"

	"lessonbot/types"
)

// ProgressFunc receives progress events synchronously as the workflow
// advances. It may be nil; the accumulated history in the result carries
// the same events either way.
type ProgressFunc func(types.CreationProgress)

// tracker accumulates the ordered progress history for one invocation
// and forwards each event to the optional callback.
type tracker struct {
	onProgress ProgressFunc
	history    []types.CreationProgress
}

func newTracker(onProgress ProgressFunc) *tracker {
	return &tracker{onProgress: onProgress}
}

func (t *tracker) emit(step types.CreationStep, message string, percent int) {
	t.push(types.CreationProgress{
		Step:      step,
		Message:   message,
		Percent:   percent,
		Timestamp: time.Now(),
	})
}

func (t *tracker) emitError(message string, percent int) {
	t.push(types.CreationProgress{
		Step:      types.StepError,
		Message:   message,
		Percent:   percent,
		Error:     message,
		Timestamp: time.Now(),
	})
}

func (t *tracker) push(p types.CreationProgress) {
	t.history = append(t.history, p)
	if t.onProgress != nil {
		t.onProgress(p)
	}
}
