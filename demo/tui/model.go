package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Model is a thin client over the render service API. All state lives on
// the server; the model just mirrors the latest poll.
type Model struct {
	Client *APIClient

	Jobs      []JobView
	Connected bool
	Err       error
	Notice    string
}

// NewModel creates a new TUI model
func NewModel(serverURL string) Model {
	return Model{
		Client: NewAPIClient(serverURL),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		pollJobs(m.Client),
		tickCmd(),
	)
}
