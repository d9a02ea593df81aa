package orchestrator

import (
	"fmt"
	"sync"
	"testing"

	"shortsfactory/types"
)

func TestStateManagerLifecycle(t *testing.T) {
	m := NewStateManager()
	job := types.RenderJob{JobID: "abc123", Topic: "el mar"}

	m.Create(job)
	rec, ok := m.Get("abc123")
	if !ok {
		t.Fatal("job not found after Create")
	}
	if rec.Status != StatusQueued {
		t.Errorf("new job should be queued, got %s", rec.Status)
	}

	m.SetStatus("abc123", StatusRendering)
	rec, _ = m.Get("abc123")
	if rec.Status != StatusRendering {
		t.Errorf("expected rendering, got %s", rec.Status)
	}
	if len(rec.Logs) == 0 {
		t.Error("status change should append a log entry")
	}

	m.SetResult("abc123", &types.RenderResult{JobID: "abc123", Success: true})
	rec, _ = m.Get("abc123")
	if rec.Status != StatusComplete {
		t.Errorf("successful result should complete the job, got %s", rec.Status)
	}

	m.SetResult("abc123", &types.RenderResult{JobID: "abc123", Success: false})
	rec, _ = m.Get("abc123")
	if rec.Status != StatusFailed {
		t.Errorf("failed result should fail the job, got %s", rec.Status)
	}
}

func TestStateManagerUnknownJob(t *testing.T) {
	m := NewStateManager()
	if _, ok := m.Get("missing"); ok {
		t.Error("unknown job should not be found")
	}
	// must not panic
	m.SetStatus("missing", StatusRendering)
	m.AddLog("missing", "hello")
	m.SetResult("missing", &types.RenderResult{})
}

func TestStateManagerListOrder(t *testing.T) {
	m := NewStateManager()
	for i := 0; i < 5; i++ {
		m.Create(types.RenderJob{JobID: fmt.Sprintf("job-%d", i)})
	}

	list := m.List()
	if len(list) != 5 {
		t.Fatalf("expected 5 jobs, got %d", len(list))
	}
	for i, rec := range list {
		if want := fmt.Sprintf("job-%d", i); rec.Job.JobID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, rec.Job.JobID)
		}
	}
}

func TestStateManagerLogRingBuffer(t *testing.T) {
	m := NewStateManager()
	m.Create(types.RenderJob{JobID: "ring"})

	for i := 0; i < 120; i++ {
		m.AddLog("ring", fmt.Sprintf("entry %d", i))
	}

	rec, _ := m.Get("ring")
	if len(rec.Logs) != m.maxLogs {
		t.Errorf("expected log buffer capped at %d, got %d", m.maxLogs, len(rec.Logs))
	}
	if rec.Logs[len(rec.Logs)-1].Message != "entry 119" {
		t.Errorf("newest entry should survive trimming, got %q", rec.Logs[len(rec.Logs)-1].Message)
	}
}

func TestStateManagerCopiesAreIsolated(t *testing.T) {
	m := NewStateManager()
	m.Create(types.RenderJob{JobID: "iso"})
	m.AddLog("iso", "first")

	rec, _ := m.Get("iso")
	rec.Logs[0].Message = "mutated"

	fresh, _ := m.Get("iso")
	if fresh.Logs[0].Message != "first" {
		t.Error("Get should return an isolated copy of the logs")
	}
}

func TestStateManagerConcurrentAccess(t *testing.T) {
	m := NewStateManager()
	m.Create(types.RenderJob{JobID: "conc"})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			m.AddLog("conc", fmt.Sprintf("writer %d", n))
		}(i)
		go func() {
			defer wg.Done()
			m.Get("conc")
			m.List()
		}()
	}
	wg.Wait()
}
