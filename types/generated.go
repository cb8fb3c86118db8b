package types

// Generated* types mirror the JSON structure requested from the text
// generation model. They live in memory only; accepted lessons are
// converted into Lesson/Section rows before persistence.

// QuizQuestion is a single multiple-choice question. Every question has
// exactly four options and a correct-answer index in [0,3].
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// GeneratedQuiz is the five-question assessment attached to a section.
type GeneratedQuiz struct {
	Questions []QuizQuestion `json:"questions"`
}

// GeneratedSection is one ordered chunk of a generated lesson.
type GeneratedSection struct {
	Title              string        `json:"title"`
	Summary            string        `json:"summary"`
	LearningObjectives []string      `json:"learningObjectives"`
	Content            string        `json:"content"`
	Quiz               GeneratedQuiz `json:"quiz"`
}

// GeneratedLesson is the full structured output of one generation call.
type GeneratedLesson struct {
	Title         string             `json:"title"`
	Sections      []GeneratedSection `json:"sections"`
	TotalSections int                `json:"totalSections"`
}
