package speech

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"shortsfactory/config"
)

// EdgeSynthesizer shells out to the edge-tts CLI, which uses the free
// Microsoft Edge voices. It needs no API key, so it is the default fallback.
type EdgeSynthesizer struct {
	binary string
	voice  string
}

func NewEdgeSynthesizer() *EdgeSynthesizer {
	return &EdgeSynthesizer{
		binary: config.GetEnvOrDefault("EDGE_TTS_BIN", "edge-tts"),
		voice:  config.GetEnvOrDefault("EDGE_TTS_VOICE", "es-ES-AlvaroNeural"),
	}
}

func (e *EdgeSynthesizer) Name() string { return "edge-tts" }

func (e *EdgeSynthesizer) Synthesize(ctx context.Context, script, outputPath string) error {
	cmd := exec.CommandContext(ctx, e.binary,
		"--voice", e.voice,
		"--text", script,
		"--write-media", outputPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		msg := strings.TrimSpace(string(out))
		if len(msg) > 400 {
			msg = msg[:400]
		}
		return fmt.Errorf("edge-tts failed: %w: %s", err, msg)
	}
	return nil
}
