package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// State represents the demo state machine
type State string

const (
	StateIdle     State = "idle"
	StateStarting State = "starting"
	StateRunning  State = "running"
	StateComplete State = "complete"
	StateFailed   State = "failed"
	StateError    State = "error"
)

// Model represents the TUI client state (thin client, server does the work)
type Model struct {
	Client   *LessonClient
	VideoURL string

	// Local UI state (synced from the jobs API)
	State    State
	JobID    string
	Progress []ProgressEntry
	Result   *JobResult
	Err      error
}

// NewModel creates a new TUI model
func NewModel(apiURL, videoURL string) Model {
	return Model{
		Client:   NewLessonClient(apiURL),
		VideoURL: videoURL,
		State:    StateIdle,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// currentPercent returns the percent of the latest progress event.
func (m Model) currentPercent() int {
	if len(m.Progress) == 0 {
		return 0
	}
	return m.Progress[len(m.Progress)-1].Percent
}

func (m Model) getStateText() string {
	switch m.State {
	case StateIdle:
		return HighlightStyle.Render("👋 Ready!") + "\n\n" +
			InfoStyle.Render("Press 'd' to create a lesson from:\n   "+m.VideoURL)
	case StateStarting:
		return StatusStyle.Render("📤 Submitting video...")
	case StateRunning:
		return StatusStyle.Render("⏳ Creating lesson...")
	case StateComplete:
		return HighlightStyle.Render("✅ COMPLETE")
	case StateFailed:
		msg := "Lesson creation failed"
		if m.Result != nil && m.Result.Error != "" {
			msg = m.Result.Error
		}
		return ErrorStyle.Render("❌ " + msg)
	case StateError:
		errMsg := "Unknown error"
		if m.Err != nil {
			errMsg = m.Err.Error()
		}
		return ErrorStyle.Render("❌ Error: " + errMsg)
	default:
		return ""
	}
}
