package orchestrator

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"shortsfactory/topics"
	"shortsfactory/types"
)

// Scheduler renders a video on a cron schedule, picking a fresh topic each
// run. Runs are skipped while a previous one is still in flight.
type Scheduler struct {
	orch    *Orchestrator
	cron    *cron.Cron
	publish bool
	busy    atomic.Bool
}

func NewScheduler(orch *Orchestrator, publishVideos bool) *Scheduler {
	return &Scheduler{
		orch:    orch,
		cron:    cron.New(),
		publish: publishVideos,
	}
}

// Start registers the schedule and begins ticking.
func (s *Scheduler) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		if !s.busy.CompareAndSwap(false, true) {
			log.Println("Cron skipped: previous render still running")
			return
		}
		defer s.busy.Store(false)

		topic := topics.RandomTopic()
		log.Printf("Cron triggered: rendering %q", topic)

		job := types.RenderJob{
			JobID:   types.GenerateJobID(topic, time.Now()),
			Topic:   topic,
			Publish: s.publish,
		}
		s.orch.state.Create(job)
		result := s.orch.RunJob(context.Background(), job)
		if !result.Success {
			log.Printf("Cron render failed: %v", result.Errors)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	s.cron.Start()
	log.Printf("Cron started with schedule %q", schedule)
	return nil
}

// Stop halts the schedule and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
