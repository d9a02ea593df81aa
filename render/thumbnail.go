package render

import (
	"fmt"
	"strings"

	"golang.org/x/image/font"

	"shortsfactory/config"
)

// RenderThumbnail writes a single JPEG with the title laid out over the
// scheme backdrop, used as the upload thumbnail.
func RenderThumbnail(title, path string, width, height int, scheme ColorScheme) error {
	img := NewBackgroundRenderer(width, height, scheme).RenderFrame(0, 1)

	captions, err := NewCaptionRenderer()
	if err != nil {
		return err
	}

	lines := wrapTitle(captions, title, width)
	if len(lines) > 0 {
		face, err := captions.face(80)
		if err != nil {
			return err
		}
		metrics := face.Metrics()
		lineHeight := (metrics.Ascent + metrics.Descent).Ceil() + 20
		startY := (height-lineHeight*len(lines))/2 + metrics.Ascent.Ceil()

		for i, line := range lines {
			w := font.MeasureString(face, line).Ceil()
			x := (width - w) / 2
			y := startY + i*lineHeight
			drawRing(img, face, line, x, y, 0, config.CaptionStrokeRadius, captionStroke)
			drawText(img, face, line, x, y, captionAmber)
		}
	}

	badgeFace, err := captions.face(60)
	if err != nil {
		return err
	}
	const badge = "#SHORTS"
	bw := font.MeasureString(badgeFace, badge).Ceil()
	bx := (width - bw) / 2
	by := height - 200
	drawRing(img, badgeFace, badge, bx, by, 0, config.CaptionStrokeRadius, captionStroke)
	drawText(img, badgeFace, badge, bx, by, captionWhite)

	if err := writeJPEG(path, img); err != nil {
		return fmt.Errorf("failed to write thumbnail: %w", err)
	}
	return nil
}

// wrapTitle greedily packs uppercased title words into lines that fit the
// frame at the thumbnail font size.
func wrapTitle(c *CaptionRenderer, title string, width int) []string {
	face, err := c.face(80)
	if err != nil {
		return nil
	}
	usable := width - 2*config.CaptionMargin

	var lines []string
	var current string
	for _, word := range strings.Fields(strings.ToUpper(title)) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if font.MeasureString(face, candidate).Ceil() <= usable || current == "" {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
