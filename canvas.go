package heppi

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Canvas is a drawing surface the show renders onto. Coordinates are pixels
// with the origin at the top-left.
type Canvas interface {
	// Size returns the drawable width and height.
	Size() (w, h float64)
	// Clear wipes the surface to transparent black.
	Clear()
	// Fade washes the surface with black at the given opacity, leaving a
	// fading trail of earlier frames.
	Fade(alpha float64)
	// FillCircle draws a filled circle. Radii <= 0 draw nothing.
	FillCircle(x, y, r float64, c Color)
}

// ImageCanvas draws onto an ebiten.Image.
type ImageCanvas struct {
	img       *ebiten.Image
	antialias bool
}

// NewImageCanvas wraps img. Antialiasing is on.
func NewImageCanvas(img *ebiten.Image) *ImageCanvas {
	return &ImageCanvas{img: img, antialias: true}
}

// Image returns the wrapped image.
func (c *ImageCanvas) Image() *ebiten.Image {
	return c.img
}

func (c *ImageCanvas) Size() (float64, float64) {
	b := c.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (c *ImageCanvas) Clear() {
	c.img.Clear()
}

func (c *ImageCanvas) Fade(alpha float64) {
	b := c.img.Bounds()
	vector.DrawFilledRect(c.img, float32(b.Min.X), float32(b.Min.Y), float32(b.Dx()), float32(b.Dy()),
		color.NRGBA{A: uint8(clamp01(alpha) * 255)}, false)
}

func (c *ImageCanvas) FillCircle(x, y, r float64, col Color) {
	if r <= 0 || col.A <= 0 {
		return
	}
	vector.DrawFilledCircle(c.img, float32(x), float32(y), float32(r), col.toRGBA(), c.antialias)
}
