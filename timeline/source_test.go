package timeline

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"shortsfactory/types"
)

type fakeAligner struct {
	segments []Segment
	err      error
}

func (f *fakeAligner) Align(ctx context.Context, audioPath string, language string) ([]Segment, error) {
	return f.segments, f.err
}

func tempAudioFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "narration.mp3")
	if err := os.WriteFile(path, []byte("fake audio"), 0644); err != nil {
		t.Fatalf("failed to write temp audio: %v", err)
	}
	return path
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEstimateSplitsDurationEvenly(t *testing.T) {
	tl := Estimate("uno dos tres", 3.0)

	if len(tl) != 3 {
		t.Fatalf("expected 3 words, got %d", len(tl))
	}

	expected := []struct {
		word       string
		start, end float64
	}{
		{"UNO", 0.0, 1.0},
		{"DOS", 1.0, 2.0},
		{"TRES", 2.0, 3.0},
	}
	for i, want := range expected {
		got := tl[i]
		if got.Word != want.word {
			t.Errorf("word %d: expected %q, got %q", i, want.word, got.Word)
		}
		if !approx(got.Start, want.start) || !approx(got.End, want.end) {
			t.Errorf("word %d: expected [%.2f, %.2f], got [%.2f, %.2f]", i, want.start, want.end, got.Start, got.End)
		}
		if got.Confidence != 0.5 {
			t.Errorf("word %d: expected confidence 0.5, got %.2f", i, got.Confidence)
		}
	}
}

func TestEstimateEmptyScript(t *testing.T) {
	if tl := Estimate("", 10.0); len(tl) != 0 {
		t.Fatalf("expected empty timeline, got %d entries", len(tl))
	}
	if tl := Estimate("   \n\t ", 10.0); len(tl) != 0 {
		t.Fatalf("expected empty timeline for whitespace script, got %d entries", len(tl))
	}
}

func TestGenerateUsesAlignerWords(t *testing.T) {
	audio := tempAudioFile(t)
	aligner := &fakeAligner{segments: []Segment{
		{Start: 0, End: 1.2, Words: []AlignedWord{
			{Word: " hola ", Start: 0.0, End: 0.6, Probability: 0.93},
			{Word: "mundo", Start: 0.6, End: 1.2, Probability: 0.88},
		}},
	}}

	tl, err := NewSource(aligner).Generate(context.Background(), audio, "hola mundo", "es", 1.2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tl) != 2 {
		t.Fatalf("expected 2 words, got %d", len(tl))
	}
	if tl[0].Word != "HOLA" || tl[1].Word != "MUNDO" {
		t.Errorf("expected uppercased trimmed words, got %q %q", tl[0].Word, tl[1].Word)
	}
	if tl[0].Confidence != 0.93 {
		t.Errorf("expected aligner probability carried over, got %.2f", tl[0].Confidence)
	}
}

func TestGenerateDropsEmptyWords(t *testing.T) {
	audio := tempAudioFile(t)
	aligner := &fakeAligner{segments: []Segment{
		{Words: []AlignedWord{
			{Word: "hola", Start: 0, End: 0.5, Probability: 0.9},
			{Word: "   ", Start: 0.5, End: 0.6, Probability: 0.9},
			{Word: "mundo", Start: 0.6, End: 1.0, Probability: 0.9},
		}},
	}}

	tl, err := NewSource(aligner).Generate(context.Background(), audio, "hola mundo", "es", 1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tl) != 2 {
		t.Fatalf("expected blank word dropped, got %d entries", len(tl))
	}
}

func TestGenerateFallsBackOnAlignerError(t *testing.T) {
	audio := tempAudioFile(t)
	aligner := &fakeAligner{err: errors.New("model not installed")}

	tl, err := NewSource(aligner).Generate(context.Background(), audio, "uno dos", "es", 4.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tl) != 2 {
		t.Fatalf("expected fallback timeline with 2 words, got %d", len(tl))
	}
	for i, wt := range tl {
		if wt.Confidence != 0.5 {
			t.Errorf("word %d: fallback confidence should be 0.5, got %.2f", i, wt.Confidence)
		}
	}
	if !approx(tl[1].End, 4.0) {
		t.Errorf("fallback timeline should span full audio, last end %.2f", tl[1].End)
	}
}

func TestGenerateFallsBackOnEmptyAlignment(t *testing.T) {
	audio := tempAudioFile(t)
	aligner := &fakeAligner{segments: []Segment{}}

	tl, err := NewSource(aligner).Generate(context.Background(), audio, "uno dos tres", "es", 3.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tl) != 3 {
		t.Fatalf("expected fallback timeline, got %d entries", len(tl))
	}
}

func TestGenerateMissingAudio(t *testing.T) {
	_, err := NewSource(&fakeAligner{}).Generate(context.Background(), "/nonexistent/audio.mp3", "hola", "es", 1.0)
	if err == nil {
		t.Fatal("expected error for missing audio file")
	}
}

func TestScriptSimilarity(t *testing.T) {
	tl := types.Timeline{
		{Word: "HOLA"},
		{Word: "MUNDO"},
	}
	if sim := scriptSimilarity(tl, "hola mundo"); !approx(sim, 1.0) {
		t.Errorf("identical vocabularies should score 1.0, got %.2f", sim)
	}
	if sim := scriptSimilarity(tl, "adios planeta"); !approx(sim, 0.0) {
		t.Errorf("disjoint vocabularies should score 0.0, got %.2f", sim)
	}
	// punctuation on either side should not affect the match
	if sim := scriptSimilarity(tl, "¡Hola, mundo!"); !approx(sim, 1.0) {
		t.Errorf("punctuation should be stripped before comparing, got %.2f", sim)
	}
}

func TestSidecarRoundTrip(t *testing.T) {
	tl := types.Timeline{
		{Word: "UNO", Start: 0, End: 1, Confidence: 0.9},
		{Word: "DOS", Start: 1, End: 2, Confidence: 0.8},
	}
	path := filepath.Join(t.TempDir(), "video.timeline.json")

	if err := WriteSidecar(tl, path); err != nil {
		t.Fatalf("failed to write sidecar: %v", err)
	}
	loaded, err := ReadSidecar(path)
	if err != nil {
		t.Fatalf("failed to read sidecar: %v", err)
	}
	if len(loaded) != len(tl) {
		t.Fatalf("expected %d entries, got %d", len(tl), len(loaded))
	}
	if loaded[1].Word != "DOS" || !approx(loaded[1].Start, 1.0) {
		t.Errorf("sidecar round trip mangled entries: %+v", loaded[1])
	}
}
