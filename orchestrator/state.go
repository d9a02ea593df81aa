package orchestrator

import (
	"fmt"
	"sync"
	"time"

	"shortsfactory/types"
)

// JobStatus tracks where a render job is in the pipeline.
type JobStatus string

const (
	StatusQueued       JobStatus = "queued"
	StatusGenerating   JobStatus = "generating"
	StatusSynthesizing JobStatus = "synthesizing"
	StatusAligning     JobStatus = "aligning"
	StatusRendering    JobStatus = "rendering"
	StatusMuxing       JobStatus = "muxing"
	StatusUploading    JobStatus = "uploading"
	StatusComplete     JobStatus = "complete"
	StatusFailed       JobStatus = "failed"
)

// LogEntry is one timestamped progress message for a job.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// JobRecord is the tracked state of one render job.
type JobRecord struct {
	Job       types.RenderJob     `json:"job"`
	Status    JobStatus           `json:"status"`
	Result    *types.RenderResult `json:"result,omitempty"`
	Logs      []LogEntry          `json:"logs"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// StateManager holds the in-memory state of every job with thread-safe
// access. It is shared between the pipeline, the API and the TUI client.
type StateManager struct {
	mu      sync.RWMutex
	jobs    map[string]*JobRecord
	order   []string
	maxLogs int
}

func NewStateManager() *StateManager {
	return &StateManager{
		jobs:    make(map[string]*JobRecord),
		maxLogs: 50,
	}
}

// Create registers a new job in the queued state.
func (m *StateManager) Create(job types.RenderJob) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	m.jobs[job.JobID] = &JobRecord{
		Job:       job,
		Status:    StatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.order = append(m.order, job.JobID)
}

// SetStatus moves a job to a new status.
func (m *StateManager) SetStatus(jobID string, status JobStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.jobs[jobID]
	if !ok {
		return
	}
	rec.Status = status
	rec.UpdatedAt = time.Now()
	m.appendLog(rec, fmt.Sprintf("status: %s", status))
}

// AddLog appends a progress message to a job.
func (m *StateManager) AddLog(jobID, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if rec, ok := m.jobs[jobID]; ok {
		rec.UpdatedAt = time.Now()
		m.appendLog(rec, message)
	}
}

// SetResult stores the final outcome and marks the job complete or failed.
func (m *StateManager) SetResult(jobID string, result *types.RenderResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.jobs[jobID]
	if !ok {
		return
	}
	rec.Result = result
	rec.UpdatedAt = time.Now()
	if result.Success {
		rec.Status = StatusComplete
	} else {
		rec.Status = StatusFailed
	}
}

// Get returns a copy of a job record.
func (m *StateManager) Get(jobID string) (JobRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.jobs[jobID]
	if !ok {
		return JobRecord{}, false
	}
	return copyRecord(rec), true
}

// List returns copies of all job records in submission order.
func (m *StateManager) List() []JobRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]JobRecord, 0, len(m.order))
	for _, id := range m.order {
		if rec, ok := m.jobs[id]; ok {
			out = append(out, copyRecord(rec))
		}
	}
	return out
}

// appendLog must be called with the lock held.
func (m *StateManager) appendLog(rec *JobRecord, message string) {
	rec.Logs = append(rec.Logs, LogEntry{Timestamp: time.Now(), Message: message})
	if len(rec.Logs) > m.maxLogs {
		rec.Logs = rec.Logs[len(rec.Logs)-m.maxLogs:]
	}
}

func copyRecord(rec *JobRecord) JobRecord {
	out := *rec
	out.Logs = append([]LogEntry{}, rec.Logs...)
	if rec.Result != nil {
		result := *rec.Result
		out.Result = &result
	}
	return out
}
