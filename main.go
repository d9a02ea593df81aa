package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"shortsfactory/api"
	"shortsfactory/config"
	"shortsfactory/orchestrator"
	"shortsfactory/shared/kafka"
	"shortsfactory/topics"
	"shortsfactory/types"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	var (
		topic        = flag.String("topic", "", "Render a single video for this topic and exit")
		batch        = flag.Int("batch", 0, "Render N videos from the built-in topic pool and exit")
		publish      = flag.Bool("publish", false, "Upload finished videos to YouTube")
		useKafka     = flag.Bool("kafka", false, "Consume render jobs from Kafka")
		cronSchedule = flag.String("cron", "", "Cron schedule for automated renders, e.g. '0 */6 * * *'")
		port         = flag.String("port", config.GetEnvOrDefault("PORT", "8080"), "HTTP API port")
	)
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	state := orchestrator.NewStateManager()
	orch := orchestrator.New(ctx, state)

	// one-shot modes
	if *topic != "" {
		runOnce(ctx, orch, state, *topic, *publish)
		return
	}
	if *batch > 0 {
		pool := topics.StaticTopics()
		if *batch < len(pool) {
			pool = pool[:*batch]
		}
		results := orch.RunBatch(ctx, pool, *publish)
		failed := 0
		for _, r := range results {
			if !r.Success {
				failed++
			}
		}
		log.Printf("Batch complete: %d/%d videos rendered", len(results)-failed, len(results))
		if failed > 0 {
			os.Exit(1)
		}
		return
	}

	// long-running service
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if *useKafka {
		consumer, err := kafka.NewConsumer(kafka.ConfigFromEnv(renderJobHandler(orch, state)))
		if err != nil {
			log.Fatalf("Failed to create Kafka consumer: %v", err)
		}
		if err := consumer.Start(ctx); err != nil {
			log.Fatalf("Failed to start Kafka consumer: %v", err)
		}
		defer consumer.Close()
	}

	if *cronSchedule != "" {
		scheduler := orchestrator.NewScheduler(orch, *publish)
		if err := scheduler.Start(*cronSchedule); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
		defer scheduler.Stop()
	}

	server := api.NewServer(orch, state)
	server.Start(ctx)

	httpServer := &http.Server{
		Addr:    ":" + strings.TrimPrefix(*port, ":"),
		Handler: server.Router(),
	}
	go func() {
		log.Printf("Starting API server on %s", httpServer.Addr)
		log.Println("API endpoints available:")
		log.Println("  GET  /api/health")
		log.Println("  POST /api/videos")
		log.Println("  GET  /api/videos")
		log.Println("  GET  /api/videos/:id")
		log.Println("  GET  /api/topics")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-sigChan
	log.Println("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

func runOnce(ctx context.Context, orch *orchestrator.Orchestrator, state *orchestrator.StateManager, topic string, publish bool) {
	job := types.RenderJob{
		JobID:   types.GenerateJobID(topic, time.Now()),
		Topic:   topic,
		Publish: publish,
	}
	state.Create(job)

	result := orch.RunJob(ctx, job)
	if !result.Success {
		log.Fatalf("Render failed: %v", result.Errors)
	}
	fmt.Println(result.VideoPath)
}

// renderJobHandler processes Kafka render jobs. Invalid jobs are marked so
// they do not wedge the partition; render failures are also marked since
// retrying a deterministic failure would loop forever.
func renderJobHandler(orch *orchestrator.Orchestrator, state *orchestrator.StateManager) kafka.MessageHandler {
	return &kafka.TypedMessageHandler[types.RenderJob]{
		AlwaysMark: true,
		Validate: func(job *types.RenderJob) bool {
			return strings.TrimSpace(job.Topic) != ""
		},
		Process: func(ctx context.Context, job *types.RenderJob) error {
			if job.JobID == "" {
				job.JobID = types.GenerateJobID(job.Topic, time.Now())
			}
			state.Create(*job)
			result := orch.RunJob(ctx, *job)
			if !result.Success {
				log.Printf("Kafka job %s failed: %v", job.JobID, result.Errors)
			}
			return nil
		},
	}
}
