package tui

import "time"

// Messages for the tea program (polling-based)

// JobsUpdateMsg is sent when a fresh job list arrives from the server
type JobsUpdateMsg struct {
	Jobs []JobView
	Err  error
}

// TickMsg is sent periodically to trigger polling
type TickMsg struct {
	Time time.Time
}

// SubmitResultMsg is sent after a new job submission
type SubmitResultMsg struct {
	JobID string
	Topic string
	Err   error
}
