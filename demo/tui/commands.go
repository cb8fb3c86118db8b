package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// startJob creates a command to submit the video URL
func startJob(client *LessonClient, videoURL string) tea.Cmd {
	return func() tea.Msg {
		jobID, err := client.CreateLesson(videoURL)
		return JobStartedMsg{JobID: jobID, Err: err}
	}
}

// pollJob creates a command to fetch the current job state
func pollJob(client *LessonClient, jobID string) tea.Cmd {
	return func() tea.Msg {
		job, err := client.GetJob(jobID)
		return JobUpdateMsg{Job: job, Err: err}
	}
}

// tickCmd creates a command that ticks every 500ms for polling
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
