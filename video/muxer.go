package video

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"shortsfactory/config"
)

// MuxRequest pairs a rendered frame sequence with its narration audio.
type MuxRequest struct {
	FramePattern string
	AudioPath    string
	FPS          int
	OutputPath   string
}

// Mux encodes the frame sequence and audio into a single mp4. The output
// is trimmed to the shorter stream and faststart is set so playback can
// begin before the file fully downloads.
func Mux(req MuxRequest) error {
	if req.FPS <= 0 {
		return fmt.Errorf("invalid fps %d", req.FPS)
	}
	if _, err := os.Stat(req.AudioPath); err != nil {
		return fmt.Errorf("audio file not readable: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(req.OutputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	var stderr bytes.Buffer
	err := ffmpeg.Input(req.FramePattern, ffmpeg.KwArgs{
		"framerate": req.FPS,
	}).
		Output(req.OutputPath, ffmpeg.KwArgs{
			"i":        req.AudioPath,
			"c:v":      config.VideoCodec,
			"c:a":      config.AudioCodec,
			"b:a":      config.AudioBitrate,
			"preset":   config.VideoPreset,
			"pix_fmt":  config.PixelFormat,
			"shortest": "",
			"movflags": "+faststart",
		}).
		OverWriteOutput().
		WithErrorOutput(&stderr).
		Run()
	if err != nil {
		return fmt.Errorf("ffmpeg mux failed: %w: %s", err, lastLines(stderr.String()))
	}

	info, err := os.Stat(req.OutputPath)
	if err != nil {
		return fmt.Errorf("muxed file missing: %w", err)
	}
	if info.Size() < config.MinVideoBytes {
		return fmt.Errorf("muxed file suspiciously small: %d bytes", info.Size())
	}
	return nil
}

// lastLines keeps the tail of ffmpeg stderr, which is where the actual
// failure reason lands.
func lastLines(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > 6 {
		lines = lines[len(lines)-6:]
	}
	return strings.Join(lines, " | ")
}
