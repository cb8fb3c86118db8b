package generation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lessonbot/config"
	"lessonbot/logger"
	"lessonbot/retry"
	"lessonbot/types"
)

// Outcome names how a generation result was produced.
type Outcome string

const (
	// OutcomeGenerated means the model produced valid structure.
	OutcomeGenerated Outcome = "generated"
	// OutcomeFallback means every attempt failed validation and the
	// deterministic placeholder lesson was substituted.
	OutcomeFallback Outcome = "fallback"
)

// Result is the outcome of one generation request.
type Result struct {
	Success bool
	Outcome Outcome
	Lesson  *types.GeneratedLesson
	Error   string
}

// errTranscriptTooShort marks input rejection; it is not retryable and
// never triggers the fallback lesson.
var errTranscriptTooShort = errors.New("transcript too short for lesson generation")

// Options tune retry behavior; zero values use the configured defaults.
type Options struct {
	Attempts int
	Pause    time.Duration
}

func (o Options) withDefaults() Options {
	if o.Attempts <= 0 {
		o.Attempts = config.GenerationAttempts
	}
	if o.Pause <= 0 {
		o.Pause = config.GenerationPause
	}
	return o
}

// Client drives the text generator and enforces the lesson structure.
type Client struct {
	gen  TextGenerator
	opts Options
	log  *logger.Logger
}

// NewClient builds a generation client around any TextGenerator.
func NewClient(gen TextGenerator, opts Options, log *logger.Logger) *Client {
	return &Client{
		gen:  gen,
		opts: opts.withDefaults(),
		log:  log.With("component", "generation"),
	}
}

// Generate performs a single generation attempt: prompt, call, defensive
// parse, structural validation. Parse and validation failures come back
// as a failed Result, never as a panic or a propagated error.
func (c *Client) Generate(ctx context.Context, transcript, videoTitle string) Result {
	if len(transcript) < config.MinTranscriptChars {
		return Result{Success: false, Error: errTranscriptTooShort.Error()}
	}
	if videoTitle == "" {
		videoTitle = config.DefaultVideoTitle
	}

	sectionCount := DetermineSectionCount(transcript)
	prompt := buildPrompt(transcript, videoTitle, sectionCount)

	raw, err := c.gen.GenerateText(ctx, prompt)
	if err != nil {
		return Result{Success: false, Error: fmt.Sprintf("generation call failed: %v", err)}
	}

	lesson, err := parseLesson(raw)
	if err != nil {
		return Result{Success: false, Error: fmt.Sprintf("generation returned unusable output: %v", err)}
	}

	lesson.TotalSections = len(lesson.Sections)
	if !ValidateGeneratedContent(lesson) {
		return Result{Success: false, Error: "generated lesson failed structural validation"}
	}
	if lesson.TotalSections != sectionCount {
		return Result{Success: false, Error: fmt.Sprintf(
			"generated %d sections, planned %d", lesson.TotalSections, sectionCount,
		)}
	}

	return Result{Success: true, Outcome: OutcomeGenerated, Lesson: lesson}
}

// GenerateWithRetry retries Generate with a fixed pause between attempts.
// When every attempt fails, it degrades to the deterministic mock lesson
// instead of failing the workflow: a broken generation backend must never
// block lesson creation entirely. Only an undersized transcript — an
// input error, not a model error — still fails outright.
func (c *Client) GenerateWithRetry(ctx context.Context, transcript, videoTitle string) Result {
	if videoTitle == "" {
		videoTitle = config.DefaultVideoTitle
	}

	var res Result
	err := retry.Do(ctx, c.opts.Attempts, c.opts.Pause, func() error {
		res = c.Generate(ctx, transcript, videoTitle)
		if !res.Success {
			return errors.New(res.Error)
		}
		return nil
	}, func(err error) bool {
		return err.Error() != errTranscriptTooShort.Error()
	})

	if err == nil {
		return res
	}
	if err.Error() == errTranscriptTooShort.Error() {
		return Result{Success: false, Error: err.Error()}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Result{Success: false, Error: fmt.Sprintf("generation aborted: %v", ctxErr)}
	}

	c.log.Warn("all generation attempts failed, degrading to fallback lesson",
		"attempts", c.opts.Attempts, "last_error", err)
	return Result{
		Success: true,
		Outcome: OutcomeFallback,
		Lesson:  buildMockLesson(videoTitle, DetermineSectionCount(transcript)),
	}
}
