package config

import "time"

// Transcript Extraction Constants
const (
	// ExtractionAttempts is the number of times a transcript extraction is tried
	ExtractionAttempts = 3

	// ExtractionBackoff is the fixed wait between extraction attempts
	ExtractionBackoff = 2 * time.Second

	// PollInterval is the fixed wait between status checks for an async extraction job
	PollInterval = 5 * time.Second

	// PollBudget is the maximum wall-clock time spent polling a single job
	PollBudget = 5 * time.Minute

	// MinTranscriptChars is the minimum trimmed transcript length accepted
	MinTranscriptChars = 100
)

// Lesson Generation Constants
const (
	// GenerationAttempts is the number of times lesson generation is tried
	// before degrading to the built-in fallback lesson
	GenerationAttempts = 3

	// GenerationPause is the fixed wait between generation attempts
	GenerationPause = 1 * time.Second

	// MinSectionContentChars is the minimum markdown content length per section
	MinSectionContentChars = 200

	// QuestionsPerQuiz is the fixed number of questions in every section quiz
	QuestionsPerQuiz = 5

	// OptionsPerQuestion is the fixed number of answer options per question
	OptionsPerQuestion = 4
)

// Lesson Sizing Constants
const (
	// MaxSections caps the number of sections planned for a single lesson
	MaxSections = 5

	// DefaultVideoTitle is used when no real title can be fetched
	DefaultVideoTitle = "YouTube Video Lesson"
)
