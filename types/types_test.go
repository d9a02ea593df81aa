package types

import (
	"strings"
	"testing"
	"time"
)

func sampleTimeline() Timeline {
	return Timeline{
		{Word: "UNO", Start: 0.5, End: 1.0},
		{Word: "DOS", Start: 1.0, End: 1.5},
		{Word: "TRES", Start: 2.5, End: 3.0},
	}
}

func TestIndexAtInsideIntervals(t *testing.T) {
	tl := sampleTimeline()
	cases := []struct {
		t    float64
		want int
	}{
		{0.5, 0},
		{0.99, 0},
		{1.0, 1},
		{1.2, 1},
		{2.5, 2},
	}
	for _, c := range cases {
		if got := tl.IndexAt(c.t); got != c.want {
			t.Errorf("IndexAt(%v) = %d, want %d", c.t, got, c.want)
		}
	}
}

func TestIndexAtClampsOutsideTimeline(t *testing.T) {
	tl := sampleTimeline()
	if got := tl.IndexAt(0.0); got != 0 {
		t.Errorf("before first word: got %d, want 0", got)
	}
	if got := tl.IndexAt(3.0); got != 2 {
		t.Errorf("at last end: got %d, want 2", got)
	}
	if got := tl.IndexAt(100.0); got != 2 {
		t.Errorf("after last end: got %d, want 2", got)
	}
}

func TestIndexAtGapPicksCloserCenter(t *testing.T) {
	tl := sampleTimeline()
	// Gap between DOS (center 1.25) and TRES (center 2.75).
	if got := tl.IndexAt(1.6); got != 1 {
		t.Errorf("early in gap: got %d, want 1", got)
	}
	if got := tl.IndexAt(2.4); got != 2 {
		t.Errorf("late in gap: got %d, want 2", got)
	}
}

func TestIndexAtEmptyTimeline(t *testing.T) {
	if got := Timeline(nil).IndexAt(1.0); got != -1 {
		t.Errorf("empty timeline: got %d, want -1", got)
	}
}

func TestTimelineDuration(t *testing.T) {
	if got := sampleTimeline().Duration(); got != 3.0 {
		t.Errorf("Duration() = %v, want 3.0", got)
	}
	if got := Timeline(nil).Duration(); got != 0 {
		t.Errorf("empty Duration() = %v, want 0", got)
	}
}

func TestGenerateJobID(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	id := GenerateJobID("el océano profundo", at)
	if len(id) != 16 {
		t.Fatalf("job ID length = %d, want 16", len(id))
	}
	if id != GenerateJobID("el océano profundo", at) {
		t.Error("same topic and time should produce the same ID")
	}
	if id == GenerateJobID("otro tema", at) {
		t.Error("different topics should produce different IDs")
	}
}

func TestSanitizeTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Los Secretos del Mar", "Los_Secretos_del_Mar"},
		{"¿Qué pasa?", "Qu_pasa"},
		{"***", "short"},
		{"", "short"},
		{strings.Repeat("a", 60), strings.Repeat("a", 40)},
	}
	for _, c := range cases {
		if got := SanitizeTitle(c.in); got != c.want {
			t.Errorf("SanitizeTitle(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
