package heppi

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// kappa places cubic Bézier control points so four curves approximate a
// circle.
const kappa = 0.5522847498

// RasterCanvas draws on the CPU into an *image.RGBA. It backs headless
// snapshots and tests.
type RasterCanvas struct {
	img *image.RGBA
	z   vector.Rasterizer
}

// NewRasterCanvas allocates a w×h canvas cleared to opaque black.
func NewRasterCanvas(w, h int) *RasterCanvas {
	c := &RasterCanvas{img: image.NewRGBA(image.Rect(0, 0, w, h))}
	c.Clear()
	return c
}

// Image returns the backing image.
func (c *RasterCanvas) Image() *image.RGBA {
	return c.img
}

func (c *RasterCanvas) Size() (float64, float64) {
	b := c.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (c *RasterCanvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
}

func (c *RasterCanvas) Fade(alpha float64) {
	wash := image.NewUniform(color.NRGBA{A: uint8(clamp01(alpha) * 255)})
	draw.Draw(c.img, c.img.Bounds(), wash, image.Point{}, draw.Over)
}

// FillCircle rasterizes the circle inside its own bounding box so the cost
// scales with the circle, not the canvas.
func (c *RasterCanvas) FillCircle(x, y, r float64, col Color) {
	if r <= 0 || col.A <= 0 {
		return
	}
	box := image.Rect(
		int(math.Floor(x-r)), int(math.Floor(y-r)),
		int(math.Ceil(x+r)), int(math.Ceil(y+r)),
	)
	clip := box.Intersect(c.img.Bounds())
	if clip.Empty() {
		return
	}

	// The rasterizer mask is aligned with clip.Min; parts of the path outside
	// the clip are dropped by the rasterizer.
	cx := float32(x - float64(clip.Min.X))
	cy := float32(y - float64(clip.Min.Y))
	rr := float32(r)
	k := rr * kappa

	c.z.Reset(clip.Dx(), clip.Dy())
	c.z.DrawOp = draw.Over
	c.z.MoveTo(cx+rr, cy)
	c.z.CubeTo(cx+rr, cy+k, cx+k, cy+rr, cx, cy+rr)
	c.z.CubeTo(cx-k, cy+rr, cx-rr, cy+k, cx-rr, cy)
	c.z.CubeTo(cx-rr, cy-k, cx-k, cy-rr, cx, cy-rr)
	c.z.CubeTo(cx+k, cy-rr, cx+rr, cy-k, cx+rr, cy)
	c.z.ClosePath()

	src := image.NewUniform(color.NRGBA{
		R: uint8(clamp01(col.R) * 255),
		G: uint8(clamp01(col.G) * 255),
		B: uint8(clamp01(col.B) * 255),
		A: uint8(clamp01(col.A) * 255),
	})
	c.z.Draw(c.img, clip, src, image.Point{})
}
