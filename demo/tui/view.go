package tui

import (
	"fmt"
	"strings"
)

const barWidth = 30

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	// Title
	b.WriteString(TitleStyle.Render("📚 Lessonbot Demo"))
	b.WriteString("\n\n")

	// Current state
	b.WriteString(m.getStateText())
	b.WriteString("\n\n")

	// Progress bar
	if m.State == StateRunning || m.State == StateComplete {
		b.WriteString(renderBar(m.currentPercent()))
		b.WriteString("\n\n")
	}

	// Progress history
	if len(m.Progress) > 0 {
		b.WriteString(InfoStyle.Render("📝 Progress:"))
		b.WriteString("\n")
		for _, p := range m.Progress {
			line := fmt.Sprintf("   [%3d%%] %s", p.Percent, p.Message)
			if p.Error != "" {
				b.WriteString(ErrorStyle.Render(line))
			} else {
				b.WriteString(InfoStyle.Render(line))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Result
	if m.State == StateComplete && m.Result != nil && m.Result.Lesson != nil {
		b.WriteString(BoxStyle.Render(formatLesson(m.Result)))
		b.WriteString("\n\n")
	}

	// Help text
	if m.State == StateIdle {
		b.WriteString(InfoStyle.Render("Press 'd' to start | Press 'q' or Ctrl+C to quit"))
	} else {
		b.WriteString(InfoStyle.Render("Press 'q' or Ctrl+C to quit"))
	}

	return b.String()
}

func renderBar(percent int) string {
	filled := percent * barWidth / 100
	if filled > barWidth {
		filled = barWidth
	}
	bar := BarFilledStyle.Render(strings.Repeat("█", filled)) +
		BarEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf("%s %d%%", bar, percent)
}

// formatLesson formats the finished lesson for display
func formatLesson(result *JobResult) string {
	var b strings.Builder

	b.WriteString(HighlightStyle.Render("Lesson Created"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Title: %s\n", StatusStyle.Render(result.Lesson.Title)))
	b.WriteString(fmt.Sprintf("Video: %s\n", result.Lesson.VideoID))
	b.WriteString(fmt.Sprintf("Sections: %d\n", result.Lesson.SectionCount))
	b.WriteString(fmt.Sprintf("Lesson ID: %s\n", result.Lesson.ID))
	if result.Degraded {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render("Note: generated with placeholder content"))
		b.WriteString("\n")
	}
	return b.String()
}
