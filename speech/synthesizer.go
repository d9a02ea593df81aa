package speech

import (
	"context"
	"fmt"
	"log"
	"os"

	"shortsfactory/config"
)

// Synthesizer turns a narration script into an audio file on disk.
type Synthesizer interface {
	Name() string
	Synthesize(ctx context.Context, script, outputPath string) error
}

// Speak runs the synthesizers in order until one produces a plausible audio
// file. Synthesis is mandatory, so exhausting the list is a hard failure.
func Speak(ctx context.Context, synths []Synthesizer, script, outputPath string) (string, error) {
	var lastErr error
	for _, s := range synths {
		ctx, cancel := context.WithTimeout(ctx, config.TTSTimeout)
		err := s.Synthesize(ctx, script, outputPath)
		cancel()
		if err != nil {
			log.Printf("TTS backend %s failed: %v", s.Name(), err)
			lastErr = err
			continue
		}
		if err := checkAudio(outputPath); err != nil {
			log.Printf("TTS backend %s produced bad audio: %v", s.Name(), err)
			lastErr = err
			continue
		}
		return s.Name(), nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no synthesizers configured")
	}
	return "", fmt.Errorf("speech synthesis failed: %w", lastErr)
}

// checkAudio rejects outputs too small to hold real narration. Both backends
// can write a short error body or an empty file on partial failure.
func checkAudio(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("audio file missing: %w", err)
	}
	if info.Size() < config.MinAudioBytes {
		return fmt.Errorf("audio file suspiciously small: %d bytes", info.Size())
	}
	return nil
}
