package generation

import (
	"strings"

	"lessonbot/config"
	"lessonbot/types"
)

// DetermineSectionCount maps transcript length to a planned section
// count. Word-count policy: under 500 words two sections, under 1500
// three, under 3000 four, otherwise five.
func DetermineSectionCount(transcript string) int {
	words := len(strings.Fields(transcript))
	switch {
	case words < 500:
		return 2
	case words < 1500:
		return 3
	case words < 3000:
		return 4
	default:
		return config.MaxSections
	}
}

// ValidateGeneratedContent re-checks every structural invariant before a
// generated lesson is accepted: title present, at least one section, and
// per section non-empty objectives, minimum content length, exactly five
// questions each with four options and an in-range answer index.
func ValidateGeneratedContent(lesson *types.GeneratedLesson) bool {
	if lesson == nil || strings.TrimSpace(lesson.Title) == "" {
		return false
	}
	if len(lesson.Sections) == 0 {
		return false
	}

	for _, section := range lesson.Sections {
		if strings.TrimSpace(section.Title) == "" {
			return false
		}
		if len(section.LearningObjectives) == 0 {
			return false
		}
		if len(section.Content) < config.MinSectionContentChars {
			return false
		}
		if len(section.Quiz.Questions) != config.QuestionsPerQuiz {
			return false
		}
		for _, q := range section.Quiz.Questions {
			if strings.TrimSpace(q.Question) == "" {
				return false
			}
			if len(q.Options) != config.OptionsPerQuestion {
				return false
			}
			if q.CorrectAnswer < 0 || q.CorrectAnswer >= config.OptionsPerQuestion {
				return false
			}
		}
	}
	return true
}
