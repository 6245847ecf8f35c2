package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/heppi/heppi"
)

// upperHalf is drawn in every cell: its foreground paints the top pixel and
// its background the bottom one.
const upperHalf = '▀'

// Canvas is a pixel buffer shown on a terminal at two pixels per cell, one
// above the other. It implements heppi.Canvas.
type Canvas struct {
	w, h int
	px   []heppi.Color
}

// NewCanvas returns a black canvas covering cols×rows cells.
func NewCanvas(cols, rows int) *Canvas {
	cols, rows = max(cols, 0), max(rows, 0)
	return &Canvas{w: cols, h: rows * 2, px: make([]heppi.Color, cols*rows*2)}
}

func (c *Canvas) Size() (float64, float64) {
	return float64(c.w), float64(c.h)
}

func (c *Canvas) Clear() {
	clear(c.px)
}

func (c *Canvas) Fade(alpha float64) {
	k := 1 - math.Max(0, math.Min(1, alpha))
	for i := range c.px {
		c.px[i].R *= k
		c.px[i].G *= k
		c.px[i].B *= k
	}
}

// FillCircle lights every pixel whose center lies within r of (x, y). A
// circle too small to cover any pixel center dims the pixel under (x, y) by
// the circle's area instead.
func (c *Canvas) FillCircle(x, y, r float64, col heppi.Color) {
	if r <= 0 || col.A <= 0 {
		return
	}
	x0, x1 := max(int(math.Floor(x-r)), 0), min(int(math.Ceil(x+r)), c.w-1)
	y0, y1 := max(int(math.Floor(y-r)), 0), min(int(math.Ceil(y+r)), c.h-1)
	hit := false
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			dx, dy := float64(px)+0.5-x, float64(py)+0.5-y
			if dx*dx+dy*dy <= r*r {
				c.blend(px, py, col, col.A)
				hit = true
			}
		}
	}
	if !hit {
		px, py := int(math.Floor(x)), int(math.Floor(y))
		if px >= 0 && px < c.w && py >= 0 && py < c.h {
			c.blend(px, py, col, col.A*math.Min(1, math.Pi*r*r))
		}
	}
}

func (c *Canvas) blend(x, y int, col heppi.Color, a float64) {
	p := &c.px[y*c.w+x]
	p.R = p.R*(1-a) + col.R*a
	p.G = p.G*(1-a) + col.G*a
	p.B = p.B*(1-a) + col.B*a
}

// At returns the pixel at (x, y); out-of-range reads are black.
func (c *Canvas) At(x, y int) heppi.Color {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return heppi.Color{}
	}
	return c.px[y*c.w+x]
}

// CopyFrom overwrites c with o. Both canvases must have the same size.
func (c *Canvas) CopyFrom(o *Canvas) {
	copy(c.px, o.px)
}

// Flush writes the canvas into s, one upper-half block per cell. It does not
// call s.Show.
func (c *Canvas) Flush(s tcell.Screen) {
	for row := 0; row < c.h/2; row++ {
		for col := 0; col < c.w; col++ {
			top, bottom := c.px[2*row*c.w+col], c.px[(2*row+1)*c.w+col]
			style := tcell.StyleDefault.Foreground(cellColor(top)).Background(cellColor(bottom))
			s.SetContent(col, row, upperHalf, nil, style)
		}
	}
}

func cellColor(c heppi.Color) tcell.Color {
	return tcell.NewRGBColor(channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) int32 {
	return int32(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
