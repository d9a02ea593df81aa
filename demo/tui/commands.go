package tui

import (
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// pollJobs creates a command to fetch the current job list
func pollJobs(client *APIClient) tea.Cmd {
	return func() tea.Msg {
		jobs, err := client.ListJobs()
		return JobsUpdateMsg{Jobs: jobs, Err: err}
	}
}

// submitRandomTopic picks a topic from the server pool and queues it
func submitRandomTopic(client *APIClient) tea.Cmd {
	return func() tea.Msg {
		pool, err := client.RandomTopics()
		if err != nil || len(pool) == 0 {
			return SubmitResultMsg{Err: err}
		}
		topic := pool[rand.Intn(len(pool))]
		jobID, err := client.SubmitTopic(topic)
		return SubmitResultMsg{JobID: jobID, Topic: topic, Err: err}
	}
}

// tickCmd creates a command that ticks every 500ms for polling
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
