package render

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"shortsfactory/config"
)

var (
	captionAmber     = color.RGBA{R: 255, G: 223, B: 0, A: 255}
	captionAmberGlow = color.RGBA{R: 255, G: 255, B: 100, A: 255}
	captionWhite     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	captionWhiteGlow = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	captionStroke    = color.RGBA{R: 0, G: 0, B: 0, A: 255}
)

// CaptionRenderer draws a single large word centered on a frame. Font faces
// are not safe for concurrent use, so each render worker owns its own
// CaptionRenderer.
type CaptionRenderer struct {
	fnt   *sfnt.Font
	faces map[int]font.Face
}

// NewCaptionRenderer loads the caption font. CAPTION_FONT may point at a
// TTF file on disk; when it is unset or fails to load, the embedded Go
// Bold face is used instead.
func NewCaptionRenderer() (*CaptionRenderer, error) {
	if path := config.GetEnvOrDefault("CAPTION_FONT", ""); path != "" {
		if fnt, err := loadFontFile(path); err != nil {
			log.Printf("Warning: caption font %s unusable (%v), using embedded default", path, err)
		} else {
			return &CaptionRenderer{fnt: fnt, faces: make(map[int]font.Face)}, nil
		}
	}
	fnt, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse caption font: %w", err)
	}
	return &CaptionRenderer{fnt: fnt, faces: make(map[int]font.Face)}, nil
}

func loadFontFile(path string) (*sfnt.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return opentype.Parse(data)
}

// Draw renders word onto img. The word ordinal selects the caption color so
// consecutive words alternate between amber and white. An empty word leaves
// the frame untouched.
func (c *CaptionRenderer) Draw(img *image.RGBA, word string, ordinal int) error {
	if word == "" {
		return nil
	}

	face, width, err := c.fitFace(word, img.Rect.Dx())
	if err != nil {
		return err
	}

	metrics := face.Metrics()
	textHeight := (metrics.Ascent + metrics.Descent).Ceil()
	x := (img.Rect.Dx() - width) / 2
	y := (img.Rect.Dy()-textHeight)/2 + metrics.Ascent.Ceil()

	fill, glow := captionWhite, captionWhiteGlow
	if ordinal%2 == 1 {
		fill, glow = captionAmber, captionAmberGlow
	}

	strokeR := config.CaptionStrokeRadius
	glowR := strokeR + config.CaptionGlowRadius

	drawRing(img, face, word, x, y, strokeR, glowR, glow)
	drawRing(img, face, word, x, y, 0, strokeR, captionStroke)
	drawText(img, face, word, x, y, fill)
	return nil
}

// fitFace returns the largest configured face whose rendering of word fits
// inside the frame width minus margins. When even the smallest size is too
// wide it is used anyway.
func (c *CaptionRenderer) fitFace(word string, frameWidth int) (font.Face, int, error) {
	usable := frameWidth - 2*config.CaptionMargin

	var face font.Face
	var width int
	for _, size := range config.CaptionFontSizes {
		f, err := c.face(size)
		if err != nil {
			return nil, 0, err
		}
		face = f
		width = font.MeasureString(f, word).Ceil()
		if width <= usable {
			break
		}
	}
	return face, width, nil
}

func (c *CaptionRenderer) face(size int) (font.Face, error) {
	if f, ok := c.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(c.fnt, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build %dpx caption face: %w", size, err)
	}
	c.faces[size] = f
	return f, nil
}

// drawRing stamps word at every offset whose distance from the origin falls
// in (inner, outer], producing an outline band around the glyphs.
func drawRing(img *image.RGBA, face font.Face, word string, x, y, inner, outer int, col color.RGBA) {
	innerSq := inner * inner
	outerSq := outer * outer
	for dy := -outer; dy <= outer; dy++ {
		for dx := -outer; dx <= outer; dx++ {
			d := dx*dx + dy*dy
			if d <= innerSq || d > outerSq {
				continue
			}
			drawText(img, face, word, x+dx, y+dy, col)
		}
	}
}

func drawText(img *image.RGBA, face font.Face, word string, x, y int, col color.RGBA) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(word)
}
