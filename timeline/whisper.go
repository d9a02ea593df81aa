package timeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"shortsfactory/config"
)

// WhisperAligner shells out to the whisper CLI with word timestamps enabled
// and parses the JSON transcript it writes.
type WhisperAligner struct {
	// Python is the interpreter used to launch whisper, "python3" by default.
	Python string

	// Model selects the whisper model size, "base" by default.
	Model string
}

func NewWhisperAligner() *WhisperAligner {
	return &WhisperAligner{
		Python: config.GetEnvOrDefault("WHISPER_PYTHON", "python3"),
		Model:  config.GetEnvOrDefault("WHISPER_MODEL", "base"),
	}
}

type whisperOutput struct {
	Segments []Segment `json:"segments"`
}

func (w *WhisperAligner) Align(ctx context.Context, audioPath string, language string) ([]Segment, error) {
	outDir, err := os.MkdirTemp("", "whisper-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create whisper output dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	ctx, cancel := context.WithTimeout(ctx, config.AlignTimeout)
	defer cancel()

	args := []string{
		"-m", "whisper", audioPath,
		"--model", w.Model,
		"--word_timestamps", "True",
		"--output_format", "json",
		"--output_dir", outDir,
	}
	if language != "" {
		args = append(args, "--language", language)
	}

	cmd := exec.CommandContext(ctx, w.Python, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("whisper failed: %w: %s", err, tail(string(out)))
	}

	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	data, err := os.ReadFile(filepath.Join(outDir, base+".json"))
	if err != nil {
		return nil, fmt.Errorf("whisper transcript missing: %w", err)
	}

	var parsed whisperOutput
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse whisper transcript: %w", err)
	}
	return parsed.Segments, nil
}

// tail keeps the last few hundred bytes of subprocess output for error messages.
func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 400 {
		s = "..." + s[len(s)-400:]
	}
	return s
}
