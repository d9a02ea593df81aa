package render

import (
	"image"
	"image/color"
	"math"

	"shortsfactory/config"
)

// BackgroundRenderer draws the animated backdrop for one video. Frames are a
// pure function of the frame index, so any frame can be re-rendered in
// isolation and workers can split the range freely.
type BackgroundRenderer struct {
	width  int
	height int
	scheme ColorScheme
}

func NewBackgroundRenderer(width, height int, scheme ColorScheme) *BackgroundRenderer {
	// a gradient needs at least two stops
	if len(scheme.Colors) < 2 {
		scheme = SchemeByID(SchemeGeneric)
	}
	return &BackgroundRenderer{width: width, height: height, scheme: scheme}
}

// RenderFrame produces the background for frameIdx of totalFrames.
func (r *BackgroundRenderer) RenderFrame(frameIdx, totalFrames int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))

	progress := 0.0
	if totalFrames > 0 {
		progress = math.Mod(float64(frameIdx)/float64(totalFrames), 1.0)
	}

	r.drawGradient(img, progress)

	switch r.scheme.ID {
	case SchemeSpace:
		r.drawStars(img, progress)
	case SchemeTech:
		r.drawGrid(img, progress)
	case SchemeAncient:
		r.drawGrain(img)
	case SchemeOcean:
		r.drawSwell(img, progress)
	}

	r.drawParticles(img, progress)
	return img
}

// drawGradient fills each row with a color sampled from the scheme stops.
// A slow vertical wave keeps the gradient moving between frames.
func (r *BackgroundRenderer) drawGradient(img *image.RGBA, progress float64) {
	for y := 0; y < r.height; y++ {
		yProgress := float64(y) / float64(r.height)
		wave := math.Sin(progress*4*math.Pi+yProgress*2*math.Pi) * 0.2
		t := clamp01(yProgress + wave)

		c := sampleStops(r.scheme.Colors, t)
		rowStart := img.PixOffset(0, y)
		for x := 0; x < r.width; x++ {
			off := rowStart + x*4
			img.Pix[off] = c.R
			img.Pix[off+1] = c.G
			img.Pix[off+2] = c.B
			img.Pix[off+3] = 255
		}
	}
}

// drawParticles overlays the drifting glow particles shared by all schemes.
func (r *BackgroundRenderer) drawParticles(img *image.RGBA, progress float64) {
	w := float64(r.width)
	h := float64(r.height)

	for i := 0; i < config.ParticleCount; i++ {
		fi := float64(i)
		x := (math.Sin(progress*2*math.Pi+fi*0.3)*0.4 + 0.5) * w
		y := math.Mod(progress*100+fi*80, h+100) - 50
		size := math.Max(1, 2+3*math.Sin(progress*4*math.Pi+fi))
		brightness := clampF(150+105*math.Sin(progress*3*math.Pi+fi*0.5), 50, 255)

		b := uint8(brightness)
		c := color.RGBA{R: b, G: b, B: uint8(math.Min(255, brightness+50)), A: 255}
		fillCircle(img, int(x), int(y), int(size), c)
	}
}

// drawStars scatters twinkling stars at fixed pseudo random positions.
func (r *BackgroundRenderer) drawStars(img *image.RGBA, progress float64) {
	for i := 0; i < 180; i++ {
		x := int(hash01(i*2+1) * float64(r.width))
		y := int(hash01(i*2+2) * float64(r.height))
		twinkle := 0.5 + 0.5*math.Sin(progress*4*math.Pi+float64(i)*1.7)
		b := uint8(120 + twinkle*135)
		setPixel(img, x, y, color.RGBA{R: b, G: b, B: b, A: 255})
		if twinkle > 0.8 {
			setPixel(img, x+1, y, color.RGBA{R: b, G: b, B: b, A: 255})
			setPixel(img, x, y+1, color.RGBA{R: b, G: b, B: b, A: 255})
		}
	}
}

// drawGrid traces a faint pulsing circuit grid.
func (r *BackgroundRenderer) drawGrid(img *image.RGBA, progress float64) {
	const spacing = 90
	pulse := 0.5 + 0.5*math.Sin(progress*2*math.Pi)
	b := uint8(30 + pulse*50)
	line := color.RGBA{R: b / 2, G: b, B: b, A: 255}

	for x := 0; x < r.width; x += spacing {
		for y := 0; y < r.height; y++ {
			blendPixel(img, x, y, line, 0.35)
		}
	}
	for y := 0; y < r.height; y += spacing {
		for x := 0; x < r.width; x++ {
			blendPixel(img, x, y, line, 0.35)
		}
	}
}

// drawGrain adds static speckle so the backdrop reads as worn stone.
func (r *BackgroundRenderer) drawGrain(img *image.RGBA) {
	for y := 0; y < r.height; y += 3 {
		for x := 0; x < r.width; x += 3 {
			n := hash01(x*31 + y*17)
			if n > 0.85 {
				delta := uint8(20 + n*25)
				off := img.PixOffset(x, y)
				img.Pix[off] = addClamp(img.Pix[off], delta)
				img.Pix[off+1] = addClamp(img.Pix[off+1], delta)
				img.Pix[off+2] = addClamp(img.Pix[off+2], delta/2)
			}
		}
	}
}

// drawSwell brightens narrow horizontal bands to suggest passing swells.
func (r *BackgroundRenderer) drawSwell(img *image.RGBA, progress float64) {
	for y := 0; y < r.height; y++ {
		yProgress := float64(y) / float64(r.height)
		band := math.Sin(yProgress*10*math.Pi + progress*2*math.Pi)
		if band <= 0.92 {
			continue
		}
		rowStart := img.PixOffset(0, y)
		for x := 0; x < r.width; x++ {
			off := rowStart + x*4
			img.Pix[off] = addClamp(img.Pix[off], 15)
			img.Pix[off+1] = addClamp(img.Pix[off+1], 25)
			img.Pix[off+2] = addClamp(img.Pix[off+2], 35)
		}
	}
}

// sampleStops interpolates across the scheme colors at position t in [0,1].
func sampleStops(stops []color.RGBA, t float64) color.RGBA {
	if len(stops) == 1 {
		return stops[0]
	}
	scaled := t * float64(len(stops)-1)
	i := int(scaled)
	if i >= len(stops)-1 {
		return stops[len(stops)-1]
	}
	return lerpColor(stops[i], stops[i+1], scaled-float64(i))
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
		A: 255,
	}
}

func fillCircle(img *image.RGBA, cx, cy, radius int, c color.RGBA) {
	if radius < 1 {
		radius = 1
	}
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				setPixel(img, cx+dx, cy+dy, c)
			}
		}
	}
}

func setPixel(img *image.RGBA, x, y int, c color.RGBA) {
	if !(image.Point{X: x, Y: y}).In(img.Rect) {
		return
	}
	off := img.PixOffset(x, y)
	img.Pix[off] = c.R
	img.Pix[off+1] = c.G
	img.Pix[off+2] = c.B
	img.Pix[off+3] = 255
}

func blendPixel(img *image.RGBA, x, y int, c color.RGBA, alpha float64) {
	if !(image.Point{X: x, Y: y}).In(img.Rect) {
		return
	}
	off := img.PixOffset(x, y)
	img.Pix[off] = uint8(float64(img.Pix[off])*(1-alpha) + float64(c.R)*alpha)
	img.Pix[off+1] = uint8(float64(img.Pix[off+1])*(1-alpha) + float64(c.G)*alpha)
	img.Pix[off+2] = uint8(float64(img.Pix[off+2])*(1-alpha) + float64(c.B)*alpha)
}

func addClamp(v, delta uint8) uint8 {
	sum := int(v) + int(delta)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}

func clamp01(v float64) float64 {
	return clampF(v, 0, 1)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// hash01 maps an integer to a stable value in [0,1).
func hash01(n int) float64 {
	x := uint64(n)*0x9E3779B97F4A7C15 + 0xBF58476D1CE4E5B9
	x ^= x >> 31
	x *= 0x94D049BB133111EB
	x ^= x >> 29
	return float64(x%100000) / 100000
}
