package generation

import (
	"fmt"

	"lessonbot/config"
	"lessonbot/types"
)

// buildMockLesson constructs the deterministic placeholder lesson used
// when every generation attempt fails validation. It depends only on the
// title and section count, so repeated degradations produce identical
// output, and it always passes ValidateGeneratedContent.
func buildMockLesson(videoTitle string, sectionCount int) *types.GeneratedLesson {
	if sectionCount < 1 {
		sectionCount = 1
	}

	sections := make([]types.GeneratedSection, 0, sectionCount)
	for i := 1; i <= sectionCount; i++ {
		sections = append(sections, types.GeneratedSection{
			Title:   fmt.Sprintf("Part %d", i),
			Summary: fmt.Sprintf("An overview of part %d of the video.", i),
			LearningObjectives: []string{
				fmt.Sprintf("Recall the main ideas covered in part %d of the video", i),
				"Relate the material to the overall topic of the video",
				"Answer review questions about this part of the video",
			},
			Content: fmt.Sprintf(
				"## Part %d\n\n"+
					"Automatic lesson generation was unavailable for this video, so this section "+
					"is a placeholder. Watch the corresponding part of the video and take your own "+
					"notes on the key ideas, terms, and examples it presents. When you are done, "+
					"use the review questions below to check your understanding of the material.",
				i,
			),
			Quiz: buildMockQuiz(i),
		})
	}

	return &types.GeneratedLesson{
		Title:         videoTitle,
		Sections:      sections,
		TotalSections: sectionCount,
	}
}

func buildMockQuiz(sectionNumber int) types.GeneratedQuiz {
	questions := make([]types.QuizQuestion, 0, config.QuestionsPerQuiz)
	for q := 1; q <= config.QuestionsPerQuiz; q++ {
		questions = append(questions, types.QuizQuestion{
			Question: fmt.Sprintf("Review question %d: which statement best matches part %d of the video?", q, sectionNumber),
			Options: []string{
				"The statement I wrote in my own notes for this part",
				"A statement about an unrelated topic",
				"A statement that contradicts the video",
				"A statement from a different part of the video",
			},
			CorrectAnswer: 0,
			Explanation:   "This placeholder quiz asks you to check your answers against your own notes for the video.",
		})
	}
	return types.GeneratedQuiz{Questions: questions}
}
