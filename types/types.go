package types

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// WordTiming is one spoken word with its time interval in the narration.
// Word holds the display text, normalized to uppercase for rendering.
// Confidence is 1.0 (or the aligner's probability) on the measured path
// and a fixed low constant on the estimated path; it is informational
// only and never alters rendering.
type WordTiming struct {
	Word       string  `json:"word"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence"`
}

// Timeline is the ordered word sequence for one narration, ordered by
// start time ascending. It is built once per (audio, script) pair and
// read-only afterwards. Intervals are not guaranteed to be strictly
// non-overlapping; only the start ordering holds.
type Timeline []WordTiming

// IndexAt returns the index of the word active at time t: the first
// entry whose [start, end) interval contains t. When no interval
// matches, the nearest word by time is returned: before the first word
// this is index 0, at or after the last word's end it is the last
// index, and inside a gap it is whichever neighbor's interval center
// is closer. Returns -1 for an empty timeline.
func (tl Timeline) IndexAt(t float64) int {
	if len(tl) == 0 {
		return -1
	}
	if t < tl[0].Start {
		return 0
	}
	if t >= tl[len(tl)-1].End {
		return len(tl) - 1
	}

	// Binary search for the last entry starting at or before t.
	lo, hi := 0, len(tl)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if tl[mid].Start <= t {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	if t < tl[lo].End {
		return lo
	}

	// t falls in a gap after tl[lo]; pick the closer neighbor center.
	if lo == len(tl)-1 {
		return lo
	}
	prevCenter := (tl[lo].Start + tl[lo].End) / 2
	nextCenter := (tl[lo+1].Start + tl[lo+1].End) / 2
	if t-prevCenter <= nextCenter-t {
		return lo
	}
	return lo + 1
}

// Duration returns the end time of the last word, or 0 when empty.
func (tl Timeline) Duration() float64 {
	if len(tl) == 0 {
		return 0
	}
	return tl[len(tl)-1].End
}

// VideoRenderRequest is the input aggregate for frame sequencing. It is
// created by the orchestrator and not mutated after construction.
type VideoRenderRequest struct {
	Title      string  `json:"title"`
	Script     string  `json:"script"`
	Duration   float64 `json:"duration"`
	FPS        int     `json:"fps"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	OutputPath string  `json:"output_path"`
}

// GeneratedContent is the structured output of the content provider
// chain for one topic.
type GeneratedContent struct {
	Title             string   `json:"title"`
	Script            string   `json:"script"`
	Description       string   `json:"description"`
	Tags              []string `json:"tags"`
	EstimatedDuration float64  `json:"estimated_duration"`
	Provider          string   `json:"provider"`
}

// VideoMetadata carries everything the publisher needs alongside the
// finished video file.
type VideoMetadata struct {
	Title         string
	Description   string
	Tags          []string
	CategoryID    string
	PrivacyStatus string
	ThumbnailPath string
}

// RenderJob is a request to produce one video, as submitted via the
// API or consumed from the Kafka topic.
type RenderJob struct {
	JobID       string `json:"job_id"`
	Topic       string `json:"topic"`
	ContentType string `json:"content_type,omitempty"`
	Language    string `json:"language,omitempty"`
	Privacy     string `json:"privacy,omitempty"`
	Publish     bool   `json:"publish"`
}

// RenderResult is the structured outcome of one pipeline run.
type RenderResult struct {
	JobID          string    `json:"job_id"`
	Topic          string    `json:"topic"`
	Success        bool      `json:"success"`
	StepsCompleted []string  `json:"steps_completed"`
	Errors         []string  `json:"errors,omitempty"`
	Provider       string    `json:"provider,omitempty"`
	VideoPath      string    `json:"video_path,omitempty"`
	ThumbnailPath  string    `json:"thumbnail_path,omitempty"`
	TimelinePath   string    `json:"timeline_path,omitempty"`
	YouTubeURL     string    `json:"youtube_url,omitempty"`
	AudioDuration  float64   `json:"audio_duration,omitempty"`
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
}

// GenerateJobID creates a deterministic short ID from a topic and the
// submission time, used when the caller did not supply one.
func GenerateJobID(topic string, at time.Time) string {
	hash := sha256.Sum256([]byte(topic + at.UTC().Format(time.RFC3339Nano)))
	return hex.EncodeToString(hash[:])[:16]
}

// SanitizeTitle reduces a title to a filesystem-safe token used to name
// output files deterministically.
func SanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('_')
		}
	}
	s := strings.Trim(b.String(), "_")
	if len(s) > 40 {
		s = s[:40]
	}
	if s == "" {
		s = "short"
	}
	return s
}
