package api

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shortsfactory/orchestrator"
	"shortsfactory/topics"
	"shortsfactory/types"
)

// Server exposes the render pipeline over HTTP. Jobs are accepted
// immediately and rendered one at a time by a background worker.
type Server struct {
	orch  *orchestrator.Orchestrator
	state *orchestrator.StateManager
	queue chan types.RenderJob
}

func NewServer(orch *orchestrator.Orchestrator, state *orchestrator.StateManager) *Server {
	return &Server{
		orch:  orch,
		state: state,
		queue: make(chan types.RenderJob, 16),
	}
}

// Start launches the render worker. Rendering is serialized; a single
// video saturates the CPU with frame workers already.
func (s *Server) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case job := <-s.queue:
				result := s.orch.RunJob(ctx, job)
				if !result.Success {
					log.Printf("Job %s failed: %v", job.JobID, result.Errors)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Router constructs the Gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())

	r.GET("/api/health", s.handleHealth)
	r.POST("/api/videos", s.handleSubmit)
	r.GET("/api/videos", s.handleList)
	r.GET("/api/videos/:id", s.handleGet)
	r.GET("/api/topics", s.handleTopics)
	r.GET("/api/topics/suggest", s.handleSuggest)
	return r
}

type submitRequest struct {
	Topic    string `json:"topic" binding:"required"`
	Language string `json:"language"`
	Privacy  string `json:"privacy"`
	Publish  bool   `json:"publish"`
}

type submitResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// handleSubmit queues a render job and returns its ID.
// POST /api/videos
func (s *Server) handleSubmit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job := types.RenderJob{
		JobID:    types.GenerateJobID(req.Topic, time.Now()),
		Topic:    req.Topic,
		Language: req.Language,
		Privacy:  req.Privacy,
		Publish:  req.Publish,
	}

	// register before enqueueing so the worker never sees an unknown ID
	s.state.Create(job)
	select {
	case s.queue <- job:
		c.JSON(http.StatusAccepted, submitResponse{JobID: job.JobID, Status: string(orchestrator.StatusQueued)})
	default:
		s.state.SetResult(job.JobID, &types.RenderResult{
			JobID:  job.JobID,
			Topic:  job.Topic,
			Errors: []string{"render queue full"},
		})
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "render queue is full"})
	}
}

// handleGet returns the tracked state of one job.
// GET /api/videos/:id
func (s *Server) handleGet(c *gin.Context) {
	id := c.Param("id")
	rec, ok := s.state.Get(id)
	if !ok {
		// jobs from before a restart may still have a persisted result
		if result := s.orch.StoredResult(c.Request.Context(), id); result != nil {
			c.JSON(http.StatusOK, gin.H{"result": result})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown job"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// handleList returns every tracked job in submission order.
// GET /api/videos
func (s *Server) handleList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"jobs": s.state.List()})
}

// handleTopics returns the built-in topic pools.
// GET /api/topics
func (s *Server) handleTopics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": topics.Categories(),
		"topics":     topics.StaticTopics(),
	})
}

// handleSuggest returns topic suggestions pulled from an RSS feed, by
// preset name or URL. With enrich=true each suggestion carries extracted
// article text for the content providers to ground on.
// GET /api/topics/suggest?feed=ciencia&limit=5&enrich=true
func (s *Server) handleSuggest(c *gin.Context) {
	feed := c.Query("feed")
	if feed == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "feed parameter is required"})
		return
	}
	limit := 5
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	suggestions, err := topics.SuggestFromFeed(topics.ResolveFeedURL(feed), limit)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if c.Query("enrich") == "true" {
		topics.EnrichAll(suggestions)
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// requestID tags every response so log lines can be matched to requests.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
