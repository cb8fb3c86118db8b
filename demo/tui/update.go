package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case JobStartedMsg:
		return m.handleJobStarted(msg)
	case JobUpdateMsg:
		return m.handleJobUpdate(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "d", "D", "enter":
		if m.State == StateIdle {
			m.State = StateStarting
			return m, startJob(m.Client, m.VideoURL)
		}
	}
	return m, nil
}

func (m Model) handleJobStarted(msg JobStartedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	m.JobID = msg.JobID
	m.State = StateRunning
	return m, pollJob(m.Client, m.JobID)
}

func (m Model) handleJobUpdate(msg JobUpdateMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}

	m.Progress = msg.Job.Progress
	m.Result = msg.Job.Result
	switch msg.Job.Status {
	case "completed":
		m.State = StateComplete
	case "failed":
		m.State = StateFailed
	default:
		m.State = StateRunning
	}
	return m, nil
}

// handleTick polls the job while it is running and keeps the ticker alive
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.State == StateRunning && m.JobID != "" {
		return m, tea.Batch(pollJob(m.Client, m.JobID), tickCmd())
	}
	return m, tickCmd()
}
