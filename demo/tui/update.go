package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case TickMsg:
		return m, tea.Batch(pollJobs(m.Client), tickCmd())
	case JobsUpdateMsg:
		return m.handleJobsUpdate(msg)
	case SubmitResultMsg:
		return m.handleSubmitResult(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "n", "N":
		m.Notice = "Submitting a new video..."
		return m, submitRandomTopic(m.Client)
	}
	return m, nil
}

// handleJobsUpdate syncs the local mirror with the server state
func (m Model) handleJobsUpdate(msg JobsUpdateMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Connected = false
		m.Err = msg.Err
		return m, nil
	}
	m.Connected = true
	m.Err = nil
	m.Jobs = msg.Jobs
	return m, nil
}

// handleSubmitResult reports the outcome of a submission
func (m Model) handleSubmitResult(msg SubmitResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Notice = fmt.Sprintf("Submission failed: %v", msg.Err)
		return m, nil
	}
	m.Notice = fmt.Sprintf("Queued %q as %s", msg.Topic, msg.JobID)
	return m, pollJobs(m.Client)
}
