package timeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"shortsfactory/types"
)

// AlignedWord is a single word as reported by an alignment backend.
type AlignedWord struct {
	Word        string  `json:"word"`
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	Probability float64 `json:"probability"`
}

// Segment is a contiguous stretch of aligned speech.
type Segment struct {
	Start float64       `json:"start"`
	End   float64       `json:"end"`
	Words []AlignedWord `json:"words"`
}

// Aligner produces word level timestamps for an audio file.
type Aligner interface {
	Align(ctx context.Context, audioPath string, language string) ([]Segment, error)
}

// Source turns narration audio into a word timeline, falling back to an
// estimated timeline when alignment fails.
type Source struct {
	aligner Aligner
}

func NewSource(aligner Aligner) *Source {
	return &Source{aligner: aligner}
}

// Generate returns the word timeline for audioPath. The script is the text
// that was narrated and audioDuration its measured length in seconds.
func (s *Source) Generate(ctx context.Context, audioPath, script, language string, audioDuration float64) (types.Timeline, error) {
	if _, err := os.Stat(audioPath); err != nil {
		return nil, fmt.Errorf("audio file not readable: %w", err)
	}

	if s.aligner != nil {
		segments, err := s.aligner.Align(ctx, audioPath, language)
		if err == nil {
			tl := flatten(segments)
			if len(tl) > 0 {
				if sim := scriptSimilarity(tl, script); sim < 0.7 {
					log.Printf("Warning: aligned words diverge from script (similarity %.2f)", sim)
				}
				return tl, nil
			}
			log.Printf("Warning: alignment returned no words, using estimated timeline")
		} else {
			log.Printf("Warning: alignment failed (%v), using estimated timeline", err)
		}
	}

	return Estimate(script, audioDuration), nil
}

// Estimate splits audioDuration evenly across the words of script. Every
// entry carries confidence 0.5 to mark it as synthetic.
func Estimate(script string, audioDuration float64) types.Timeline {
	words := strings.Fields(script)
	if len(words) == 0 {
		return types.Timeline{}
	}

	slot := audioDuration / float64(len(words))
	tl := make(types.Timeline, 0, len(words))
	for i, w := range words {
		w = normalizeWord(w)
		if w == "" {
			continue
		}
		tl = append(tl, types.WordTiming{
			Word:       w,
			Start:      float64(i) * slot,
			End:        float64(i+1) * slot,
			Confidence: 0.5,
		})
	}
	return tl
}

// flatten collapses segments into one ordered word list, dropping entries
// that are empty after trimming.
func flatten(segments []Segment) types.Timeline {
	var tl types.Timeline
	for _, seg := range segments {
		for _, w := range seg.Words {
			word := normalizeWord(w.Word)
			if word == "" {
				continue
			}
			tl = append(tl, types.WordTiming{
				Word:       word,
				Start:      w.Start,
				End:        w.End,
				Confidence: w.Probability,
			})
		}
	}
	return tl
}

func normalizeWord(w string) string {
	return strings.ToUpper(strings.TrimSpace(w))
}

// scriptSimilarity computes the Jaccard similarity between the aligned
// vocabulary and the script vocabulary.
func scriptSimilarity(tl types.Timeline, script string) float64 {
	aligned := make(map[string]struct{})
	for _, wt := range tl {
		aligned[stripPunct(wt.Word)] = struct{}{}
	}
	scripted := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToUpper(script)) {
		if w = stripPunct(w); w != "" {
			scripted[w] = struct{}{}
		}
	}
	if len(aligned) == 0 && len(scripted) == 0 {
		return 1.0
	}

	intersection := 0
	for w := range aligned {
		if _, ok := scripted[w]; ok {
			intersection++
		}
	}
	union := len(aligned) + len(scripted) - intersection
	if union == 0 {
		return 1.0
	}
	return float64(intersection) / float64(union)
}

func stripPunct(w string) string {
	return strings.Trim(w, ".,;:!?¡¿\"'()[]")
}
