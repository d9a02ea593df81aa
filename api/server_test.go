package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"shortsfactory/orchestrator"
)

func newTestServer() (*Server, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	s := NewServer(nil, orchestrator.NewStateManager())
	return s, s.Router()
}

func TestHealthEndpoint(t *testing.T) {
	_, router := newTestServer()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestSubmitAndGetJob(t *testing.T) {
	_, router := newTestServer()

	body := strings.NewReader(`{"topic": "el océano profundo"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/videos", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", w.Code, w.Body.String())
	}

	var resp submitResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.JobID == "" {
		t.Fatal("expected a job ID")
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/videos/"+resp.JobID, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for known job, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "el océano profundo") {
		t.Error("job record should carry the submitted topic")
	}
}

func TestSubmitRequiresTopic(t *testing.T) {
	_, router := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/videos", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing topic, got %d", w.Code)
	}
}

func TestGetUnknownJob(t *testing.T) {
	_, router := newTestServer()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/videos/nope", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestListJobs(t *testing.T) {
	s, router := newTestServer()

	for _, topic := range []string{"tema uno", "tema dos"} {
		body := strings.NewReader(`{"topic": "` + topic + `"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/videos", body)
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/videos", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	if got := len(s.state.List()); got != 2 {
		t.Errorf("expected 2 tracked jobs, got %d", got)
	}
}

func TestSubmitRegistersBeforeQueueing(t *testing.T) {
	s, router := newTestServer()

	body := strings.NewReader(`{"topic": "el desierto"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/videos", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp submitResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	// the job must be visible in state as soon as it is on the queue
	job := <-s.queue
	if job.JobID != resp.JobID {
		t.Fatalf("queued job ID %s does not match response %s", job.JobID, resp.JobID)
	}
	if _, ok := s.state.Get(job.JobID); !ok {
		t.Error("job was queued before being registered in state")
	}
}

func TestSubmitQueueFull(t *testing.T) {
	s, router := newTestServer()

	submit := func(topic string) int {
		body := strings.NewReader(`{"topic": "` + topic + `"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/videos", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < cap(s.queue); i++ {
		if code := submit(fmt.Sprintf("tema %d", i)); code != http.StatusAccepted {
			t.Fatalf("submit %d: expected 202, got %d", i, code)
		}
	}
	if code := submit("uno de más"); code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when queue is full, got %d", code)
	}

	records := s.state.List()
	last := records[len(records)-1]
	if last.Status != orchestrator.StatusFailed {
		t.Errorf("rejected job should be marked failed, got %s", last.Status)
	}
}

func TestSuggestEndpoint(t *testing.T) {
	_, router := newTestServer()

	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Pruebas</title>
<item><title>Los volcanes submarinos</title><link>https://example.com/a</link></item>
<item><title>El cerebro humano</title><link>https://example.com/b</link></item>
</channel></rss>`))
	}))
	defer feed.Close()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/topics/suggest?feed="+feed.URL+"&limit=1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var parsed struct {
		Suggestions []struct {
			Topic string `json:"topic"`
		} `json:"suggestions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(parsed.Suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(parsed.Suggestions))
	}
	if parsed.Suggestions[0].Topic != "Los volcanes submarinos" {
		t.Errorf("unexpected topic %q", parsed.Suggestions[0].Topic)
	}
}

func TestSuggestRequiresFeed(t *testing.T) {
	_, router := newTestServer()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/topics/suggest", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without feed parameter, got %d", w.Code)
	}
}

func TestTopicsEndpoint(t *testing.T) {
	_, router := newTestServer()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/topics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var parsed struct {
		Categories []string `json:"categories"`
		Topics     []string `json:"topics"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(parsed.Topics) == 0 || len(parsed.Categories) == 0 {
		t.Error("expected non-empty topic pools")
	}
}
