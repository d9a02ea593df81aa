package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// JobView mirrors the API's job record shape for display.
type JobView struct {
	Job struct {
		JobID string `json:"job_id"`
		Topic string `json:"topic"`
	} `json:"job"`
	Status string `json:"status"`
	Logs   []struct {
		Timestamp time.Time `json:"timestamp"`
		Message   string    `json:"message"`
	} `json:"logs"`
	Result *struct {
		Success    bool     `json:"success"`
		VideoPath  string   `json:"video_path,omitempty"`
		YouTubeURL string   `json:"youtube_url,omitempty"`
		Provider   string   `json:"provider,omitempty"`
		Errors     []string `json:"errors,omitempty"`
	} `json:"result,omitempty"`
}

// APIClient is a thin HTTP client for the render service.
type APIClient struct {
	baseURL string
	client  *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// ListJobs fetches every tracked job.
func (c *APIClient) ListJobs() ([]JobView, error) {
	resp, err := c.client.Get(c.baseURL + "/api/videos")
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed struct {
		Jobs []JobView `json:"jobs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode job list: %w", err)
	}
	return parsed.Jobs, nil
}

// SubmitTopic queues a new render job and returns its ID.
func (c *APIClient) SubmitTopic(topic string) (string, error) {
	payload, _ := json.Marshal(map[string]string{"topic": topic})
	resp, err := c.client.Post(c.baseURL+"/api/videos", "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to submit job: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed struct {
		JobID string `json:"job_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode submit response: %w", err)
	}
	return parsed.JobID, nil
}

// RandomTopics fetches the server's topic pool for quick submissions.
func (c *APIClient) RandomTopics() ([]string, error) {
	resp, err := c.client.Get(c.baseURL + "/api/topics")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch topics: %w", err)
	}
	defer resp.Body.Close()

	var parsed struct {
		Topics []string `json:"topics"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode topics: %w", err)
	}
	return parsed.Topics, nil
}
