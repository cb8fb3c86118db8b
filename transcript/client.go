package transcript

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

// noTranscriptMessage is the user-facing explanation shown when every
// extraction path is exhausted. The real cause is rarely knowable from
// the outside, so all the common reasons are listed.
const noTranscriptMessage = "Could not retrieve a transcript for this video. " +
	"The video may not have captions, may be private, may have been published too recently, " +
	"or may not be available in your region."

// Options tune the retry and polling behavior. Zero values fall back to
// the configured defaults; tests shrink them.
type Options struct {
	Attempts     int
	Backoff      time.Duration
	PollInterval time.Duration
	PollBudget   time.Duration
	Submit       SubmitOptions
}

func (o Options) withDefaults() Options {
	if o.Attempts <= 0 {
		o.Attempts = config.ExtractionAttempts
	}
	if o.Backoff <= 0 {
		o.Backoff = config.ExtractionBackoff
	}
	if o.PollInterval <= 0 {
		o.PollInterval = config.PollInterval
	}
	if o.PollBudget <= 0 {
		o.PollBudget = config.PollBudget
	}
	if o.Submit.Language == "" {
		o.Submit.Language = "en"
	}
	o.Submit.PlainText = true
	return o
}

// Client wraps a Provider with validation, cleaning, a one-shot fallback
// source, bounded retries, and job polling.
type Client struct {
	provider Provider
	fallback FallbackFunc
	opts     Options
	log      *logger.Logger
}

// NewClient builds a transcript client. fallback may be nil to disable
// the alternate source.
func NewClient(provider Provider, fallback FallbackFunc, opts Options, log *logger.Logger) *Client {
	return &Client{
		provider: provider,
		fallback: fallback,
		opts:     opts.withDefaults(),
		log:      log.With("component", "transcript"),
	}
}

// Extract performs a single extraction attempt. Outcomes: inline text
// (cleaned and validated), a job id to poll, or a failure after the
// fallback source has also been tried.
func (c *Client) Extract(ctx context.Context, videoURL string) types.TranscriptResult {
	resp, err := c.provider.Submit(ctx, videoURL, c.opts.Submit)
	if err != nil {
		c.log.Warn("extraction submit failed, trying fallback source", "url", videoURL, "error", err)
		return c.tryFallback(videoURL)
	}

	switch resp.Kind {
	case KindImmediate:
		return c.finalize(resp.Text)
	case KindPending:
		return types.TranscriptResult{
			Success: true,
			JobID:   resp.JobID,
			Status:  types.TranscriptProcessing,
		}
	default:
		return failure("transcript API returned an unknown response shape")
	}
}

// CheckStatus polls an asynchronous job once.
func (c *Client) CheckStatus(ctx context.Context, jobID string) types.TranscriptResult {
	res, _ := c.checkStatus(ctx, jobID)
	return res
}

// checkStatus reports whether a failed check was a transport problem
// rather than the job itself failing; poll keeps going on those.
func (c *Client) checkStatus(ctx context.Context, jobID string) (types.TranscriptResult, bool) {
	status, err := c.provider.Status(ctx, jobID)
	if err != nil {
		return failure(fmt.Sprintf("failed to check transcript job status: %v", err)), true
	}

	switch status.State {
	case JobCompleted:
		return c.finalize(status.Text), false
	case JobFailed:
		msg := status.Error
		if msg == "" {
			msg = noTranscriptMessage
		}
		return types.TranscriptResult{Success: false, Status: types.TranscriptFailed, Error: msg}, false
	default:
		return types.TranscriptResult{Success: true, JobID: jobID, Status: types.TranscriptProcessing}, false
	}
}

// ExtractWithRetry runs Extract with bounded retries and a fixed backoff.
// The moment an attempt yields a job id, retrying stops and the client
// commits to polling that job until completion, failure, or the poll
// budget runs out; a fresh extraction is never re-issued for it.
func (c *Client) ExtractWithRetry(ctx context.Context, videoURL string) types.TranscriptResult {
	var res types.TranscriptResult

	err := retry.Do(ctx, c.opts.Attempts, c.opts.Backoff, func() error {
		res = c.Extract(ctx, videoURL)
		if !res.Success {
			return errors.New(res.Error)
		}
		return nil
	}, nil)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return failure(fmt.Sprintf("transcript extraction aborted: %v", ctxErr))
		}
		return res
	}

	if res.Status == types.TranscriptProcessing && res.JobID != "" {
		return c.poll(ctx, res.JobID)
	}
	return res
}

// poll checks job status on a fixed interval until a terminal state or
// the wall-clock budget is exceeded.
func (c *Client) poll(ctx context.Context, jobID string) types.TranscriptResult {
	deadline := time.Now().Add(c.opts.PollBudget)
	c.log.Info("polling transcript job", "job_id", jobID, "budget", c.opts.PollBudget)

	for {
		res, transient := c.checkStatus(ctx, jobID)
		if res.Status != types.TranscriptProcessing && !transient {
			return res
		}
		if transient {
			c.log.Warn("transcript status check failed, polling continues", "job_id", jobID, "error", res.Error)
		}

		if time.Now().Add(c.opts.PollInterval).After(deadline) {
			if transient {
				return res
			}
			return failure(fmt.Sprintf(
				"timed out waiting for transcript extraction after %s (job %s)",
				c.opts.PollBudget, jobID,
			))
		}

		timer := time.NewTimer(c.opts.PollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return failure(fmt.Sprintf("transcript polling aborted: %v", ctx.Err()))
		case <-timer.C:
		}
	}
}

func (c *Client) tryFallback(videoURL string) types.TranscriptResult {
	if c.fallback == nil {
		return failure(noTranscriptMessage)
	}
	text, err := c.fallback(videoURL)
	if err != nil {
		c.log.Warn("fallback transcript source failed", "url", videoURL, "error", err)
		return failure(noTranscriptMessage)
	}
	return c.finalize(text)
}

// finalize cleans raw text and gates it through validation.
func (c *Client) finalize(raw string) types.TranscriptResult {
	cleaned := Clean(raw)
	if !Validate(cleaned) {
		return failure(noTranscriptMessage)
	}
	return types.TranscriptResult{Success: true, Text: cleaned, Status: types.TranscriptCompleted}
}

func failure(msg string) types.TranscriptResult {
	return types.TranscriptResult{Success: false, Status: types.TranscriptFailed, Error: msg}
}
