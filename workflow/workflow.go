package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"lessonbot/generation"
	"lessonbot/logger"
	"lessonbot/storage"
	"lessonbot/types"
	"lessonbot/youtube"
)

const duplicateLessonMessage = "A lesson for this video already exists"

// LessonStore is the persistence surface the workflow needs.
type LessonStore interface {
	FindByVideoID(ctx context.Context, videoID string) (*types.Lesson, error)
	Create(ctx context.Context, lesson *types.Lesson) error
}

// TranscriptExtractor retrieves transcript text for a video URL,
// retrying and polling internally.
type TranscriptExtractor interface {
	ExtractWithRetry(ctx context.Context, videoURL string) types.TranscriptResult
}

// LessonGenerator turns a transcript into a structured lesson, degrading
// internally on repeated failure.
type LessonGenerator interface {
	GenerateWithRetry(ctx context.Context, transcript, videoTitle string) generation.Result
}

// TitleFetcher looks up the real video title. Optional; lookup failures
// never fail the workflow.
type TitleFetcher interface {
	VideoTitle(ctx context.Context, videoID string) (string, error)
}

// TranscriptCache is an optional best-effort transcript store keyed by
// video id.
type TranscriptCache interface {
	Get(ctx context.Context, videoID string) string
	Put(ctx context.Context, videoID, text string)
}

// Runner executes the lesson creation pipeline: validate, extract,
// generate, save. All collaborators are injected; titles and the
// transcript cache are optional.
type Runner struct {
	store     LessonStore
	extractor TranscriptExtractor
	generator LessonGenerator
	titles    TitleFetcher
	cache     TranscriptCache
	log       *logger.Logger
}

func NewRunner(store LessonStore, extractor TranscriptExtractor, generator LessonGenerator, log *logger.Logger) *Runner {
	return &Runner{
		store:     store,
		extractor: extractor,
		generator: generator,
		log:       log.With("component", "workflow"),
	}
}

// WithTitleFetcher enables real video titles in generated lessons.
func (r *Runner) WithTitleFetcher(titles TitleFetcher) *Runner {
	r.titles = titles
	return r
}

// WithTranscriptCache enables transcript reuse across attempts for the
// same video.
func (r *Runner) WithTranscriptCache(cache TranscriptCache) *Runner {
	r.cache = cache
	return r
}

// CreateLessonFromURL runs the full pipeline for one pasted URL. It
// never returns an error: every failure mode is folded into the result,
// with the accumulated progress history attached for diagnostics.
func (r *Runner) CreateLessonFromURL(ctx context.Context, videoURL string, onProgress ProgressFunc) types.CreationResult {
	t := newTracker(onProgress)

	// Validate.
	t.emit(types.StepValidating, "Validating YouTube URL...", 10)
	ref := youtube.Parse(videoURL)
	if !ref.Valid() {
		return r.fail(t, "Invalid YouTube URL. Please paste a link to a YouTube video.", 0)
	}

	// Duplicate pre-check. The unique index on video_id is the real
	// guard; this check just gives a fast, friendly answer.
	if _, err := r.store.FindByVideoID(ctx, ref.VideoID); err == nil {
		return r.fail(t, duplicateLessonMessage, 0)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return r.fail(t, fmt.Sprintf("Could not check for an existing lesson: %v", err), 0)
	}

	// Extract.
	t.emit(types.StepExtracting, "Extracting video transcript...", 30)
	transcript := r.lookupCachedTranscript(ctx, ref.VideoID)
	if transcript == "" {
		res := r.extractor.ExtractWithRetry(ctx, ref.NormalizedURL)
		if !res.Success || res.Text == "" {
			msg := res.Error
			if msg == "" {
				msg = "Transcript extraction failed."
			}
			return r.fail(t, msg, 30)
		}
		transcript = res.Text
		r.storeCachedTranscript(ctx, ref.VideoID, transcript)
	}
	t.emit(types.StepExtracting, "Transcript extracted", 50)

	// Generate.
	t.emit(types.StepGenerating, "Generating lesson content...", 60)
	title := r.lookupTitle(ctx, ref.VideoID)
	gen := r.generator.GenerateWithRetry(ctx, transcript, title)
	if !gen.Success {
		return r.fail(t, gen.Error, 60)
	}
	t.emit(types.StepGenerating, "Lesson content generated", 80)

	// Save.
	t.emit(types.StepSaving, "Saving lesson...", 90)
	lesson, err := buildLessonRecord(ref, gen)
	if err != nil {
		return r.fail(t, fmt.Sprintf("Could not prepare the lesson for saving: %v", err), 90)
	}
	if err := r.store.Create(ctx, lesson); err != nil {
		if errors.Is(err, storage.ErrDuplicateVideo) {
			// Lost the race with a concurrent request for the same video.
			return r.fail(t, duplicateLessonMessage, 90)
		}
		return r.fail(t, fmt.Sprintf("Could not save the lesson: %v", err), 90)
	}

	t.emit(types.StepCompleted, "Lesson created successfully!", 100)
	r.log.Info("lesson created",
		"video_id", ref.VideoID, "lesson_id", lesson.ID, "sections", len(lesson.Sections), "degraded", lesson.Degraded)

	return types.CreationResult{
		Success:  true,
		Lesson:   lesson,
		Degraded: lesson.Degraded,
		Progress: t.history,
	}
}

func (r *Runner) fail(t *tracker, message string, percent int) types.CreationResult {
	t.emitError(message, percent)
	r.log.Warn("lesson creation failed", "error", message, "at_percent", percent)
	return types.CreationResult{
		Success:  false,
		Error:    message,
		Progress: t.history,
	}
}

func (r *Runner) lookupCachedTranscript(ctx context.Context, videoID string) string {
	if r.cache == nil {
		return ""
	}
	if text := r.cache.Get(ctx, videoID); text != "" {
		r.log.Info("using cached transcript", "video_id", videoID)
		return text
	}
	return ""
}

func (r *Runner) storeCachedTranscript(ctx context.Context, videoID, text string) {
	if r.cache != nil {
		r.cache.Put(ctx, videoID, text)
	}
}

// lookupTitle returns the real video title when a fetcher is configured,
// or "" so the generator falls back to its default title.
func (r *Runner) lookupTitle(ctx context.Context, videoID string) string {
	if r.titles == nil {
		return ""
	}
	title, err := r.titles.VideoTitle(ctx, videoID)
	if err != nil {
		r.log.Warn("video title lookup failed", "video_id", videoID, "error", err)
		return ""
	}
	return title
}

// buildLessonRecord flattens a generated lesson into the persisted shape,
// serializing objectives and quizzes as JSON blobs on each section.
func buildLessonRecord(ref types.VideoReference, gen generation.Result) (*types.Lesson, error) {
	lesson := &types.Lesson{
		ID:           uuid.New(),
		VideoID:      ref.VideoID,
		VideoURL:     ref.NormalizedURL,
		Title:        gen.Lesson.Title,
		SectionCount: len(gen.Lesson.Sections),
		Degraded:     gen.Outcome == generation.OutcomeFallback,
	}

	for i, section := range gen.Lesson.Sections {
		objectives, err := json.Marshal(section.LearningObjectives)
		if err != nil {
			return nil, fmt.Errorf("serialize objectives for section %d: %w", i+1, err)
		}
		quiz, err := json.Marshal(section.Quiz)
		if err != nil {
			return nil, fmt.Errorf("serialize quiz for section %d: %w", i+1, err)
		}
		lesson.Sections = append(lesson.Sections, types.Section{
			Position:   i + 1,
			Title:      section.Title,
			Summary:    section.Summary,
			Content:    section.Content,
			Objectives: datatypes.JSON(objectives),
			Quiz:       datatypes.JSON(quiz),
		})
	}
	return lesson, nil
}
