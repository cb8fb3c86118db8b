package generation

import (
	"fmt"
	"strings"

	"lessonbot/config"
)

// buildPrompt assembles the structured generation prompt: target section
// count, video title, the full transcript, and the exact JSON schema the
// response must follow.
func buildPrompt(transcript, videoTitle string, sectionCount int) string {
	var b strings.Builder

	b.WriteString("You are an expert instructional designer. Convert the following video transcript into a structured lesson.\n\n")
	fmt.Fprintf(&b, "Video title: %s\n", videoTitle)
	fmt.Fprintf(&b, "Split the lesson into exactly %d sections.\n\n", sectionCount)

	b.WriteString("Respond with JSON only, no prose and no markdown fences, matching exactly this structure:\n")
	b.WriteString(`{
  "title": "lesson title",
  "sections": [
    {
      "title": "section title",
      "summary": "one-paragraph summary",
      "learningObjectives": ["objective 1", "objective 2", "objective 3"],
      "content": "section content in markdown, at least `)
	fmt.Fprintf(&b, "%d", config.MinSectionContentChars)
	b.WriteString(` characters",
      "quiz": {
        "questions": [
          {
            "question": "question text",
            "options": ["option A", "option B", "option C", "option D"],
            "correctAnswer": 0,
            "explanation": "why this answer is correct"
          }
        ]
      }
    }
  ]
}
`)
	fmt.Fprintf(&b, "\nEvery section must have exactly %d quiz questions. ", config.QuestionsPerQuiz)
	fmt.Fprintf(&b, "Every question must have exactly %d options and a correctAnswer index between 0 and %d.\n\n",
		config.OptionsPerQuestion, config.OptionsPerQuestion-1)

	b.WriteString("Transcript:\n")
	b.WriteString(transcript)

	return b.String()
}
