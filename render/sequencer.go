package render

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"math"
	"os"
	"path/filepath"
	"sync"

	"shortsfactory/config"
	"shortsfactory/types"
)

// SequenceRequest describes one full frame sequence to render.
type SequenceRequest struct {
	Timeline types.Timeline
	Scheme   ColorScheme
	Width    int
	Height   int
	FPS      int
	Duration float64
	FrameDir string
}

// FrameSequencer renders every frame of a video into numbered JPEG files.
// Frames are independent, so the range is split across a fixed worker pool.
type FrameSequencer struct {
	workers int
}

func NewFrameSequencer(workers int) *FrameSequencer {
	if workers < 1 {
		workers = 1
	}
	return &FrameSequencer{workers: workers}
}

// Render writes floor(duration * fps) frames to req.FrameDir and returns
// their paths in frame order.
func (s *FrameSequencer) Render(ctx context.Context, req SequenceRequest) ([]string, error) {
	if req.FPS <= 0 {
		return nil, fmt.Errorf("invalid fps %d", req.FPS)
	}
	if err := os.MkdirAll(req.FrameDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create frame dir: %w", err)
	}

	total := int(math.Floor(req.Duration * float64(req.FPS)))
	if total <= 0 {
		return nil, fmt.Errorf("duration %.2fs at %dfps yields no frames", req.Duration, req.FPS)
	}

	paths := make([]string, total)
	for i := range paths {
		paths[i] = filepath.Join(req.FrameDir, fmt.Sprintf("frame_%06d.jpg", i))
	}

	var wg sync.WaitGroup
	errCh := make(chan error, s.workers)

	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			if err := s.renderRange(ctx, req, paths, worker, total); err != nil {
				errCh <- err
			}
		}(w)
	}
	wg.Wait()
	close(errCh)

	if err := <-errCh; err != nil {
		return nil, err
	}
	return paths, nil
}

// renderRange draws frames worker, worker+N, worker+2N... with renderers
// owned by this goroutine. Font faces are not safe to share.
func (s *FrameSequencer) renderRange(ctx context.Context, req SequenceRequest, paths []string, worker, total int) error {
	background := NewBackgroundRenderer(req.Width, req.Height, req.Scheme)
	captions, err := NewCaptionRenderer()
	if err != nil {
		return err
	}

	for i := worker; i < total; i += s.workers {
		if err := ctx.Err(); err != nil {
			return err
		}

		img := background.RenderFrame(i, total)

		t := float64(i) / float64(req.FPS)
		if idx := req.Timeline.IndexAt(t); idx >= 0 {
			if err := captions.Draw(img, req.Timeline[idx].Word, idx); err != nil {
				return fmt.Errorf("failed to draw caption for frame %d: %w", i, err)
			}
		}

		if err := writeJPEG(paths[i], img); err != nil {
			return err
		}
	}
	return nil
}

func writeJPEG(path string, img *image.RGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create frame file: %w", err)
	}
	defer f.Close()

	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: config.JPEGQuality}); err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}
	return nil
}
