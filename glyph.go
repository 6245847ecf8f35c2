package heppi

import (
	"fmt"
	"image"
	"math/rand/v2"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// defaultAttemptFactor bounds rejection sampling at this many draws per
// requested point.
const defaultAttemptFactor = 2000

// GlyphRasterizer turns runes into point clouds by drawing them onto an
// offscreen alpha bitmap and sampling inked pixels. Faces and bitmaps are
// cached per size. Not safe for concurrent use.
type GlyphRasterizer struct {
	font          *opentype.Font
	faces         map[int]font.Face
	bitmaps       map[glyphKey]*image.Alpha
	attemptFactor int
}

type glyphKey struct {
	r    rune
	size int
}

// NewGlyphRasterizer creates a rasterizer for the given parsed font.
func NewGlyphRasterizer(f *opentype.Font) *GlyphRasterizer {
	return &GlyphRasterizer{
		font:          f,
		faces:         make(map[int]font.Face),
		bitmaps:       make(map[glyphKey]*image.Alpha),
		attemptFactor: defaultAttemptFactor,
	}
}

// DefaultGlyphRasterizer returns a rasterizer backed by the Go Bold font.
func DefaultGlyphRasterizer() (*GlyphRasterizer, error) {
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("heppi: parse go bold: %w", err)
	}
	return NewGlyphRasterizer(f), nil
}

// LoadFontFile parses a TTF, OTF, or the first font of a TTC collection.
func LoadFontFile(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("heppi: read font: %w", err)
	}
	if coll, err := opentype.ParseCollection(data); err == nil && coll.NumFonts() > 0 {
		f, err := coll.Font(0)
		if err == nil {
			return f, nil
		}
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("heppi: parse font %s: %w", path, err)
	}
	return f, nil
}

// SetAttemptFactor changes the rejection-sampling budget per requested point.
// Values below 1 are ignored.
func (g *GlyphRasterizer) SetAttemptFactor(n int) {
	if n >= 1 {
		g.attemptFactor = n
	}
}

// face returns the cached face for a pixel size.
func (g *GlyphRasterizer) face(size int) (font.Face, error) {
	if f, ok := g.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(g.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("heppi: face size %d: %w", size, err)
	}
	g.faces[size] = f
	return f, nil
}

// Bitmap renders r centered on a size×size alpha bitmap. The ink bounding box
// of the glyph is centered on the bitmap, matching a middle-baseline,
// center-aligned fill.
func (g *GlyphRasterizer) Bitmap(r rune, size int) (*image.Alpha, error) {
	key := glyphKey{r: r, size: size}
	if img, ok := g.bitmaps[key]; ok {
		return img, nil
	}
	face, err := g.face(size)
	if err != nil {
		return nil, err
	}

	img := image.NewAlpha(image.Rect(0, 0, size, size))
	bounds, _, ok := face.GlyphBounds(r)
	if ok {
		w := bounds.Max.X - bounds.Min.X
		h := bounds.Max.Y - bounds.Min.Y
		half := fixed.I(size) / 2
		d := &font.Drawer{
			Dst:  img,
			Src:  image.Opaque,
			Face: face,
			Dot: fixed.Point26_6{
				X: half - w/2 - bounds.Min.X,
				Y: half - h/2 - bounds.Min.Y,
			},
		}
		d.DrawString(string(r))
	}
	g.bitmaps[key] = img
	return img, nil
}

// Rasterize samples n points inside the inked region of r rendered at size
// pixels. Points are offsets from the glyph center. Sampling stops after
// n*attemptFactor draws; in that case, or when the glyph has no ink at all,
// fewer than n points are returned.
func (g *GlyphRasterizer) Rasterize(r rune, size, n int, rng *rand.Rand) []Vec2 {
	if n <= 0 || size <= 0 {
		return nil
	}
	img, err := g.Bitmap(r, size)
	if err != nil || !hasInk(img) {
		return nil
	}

	pts := make([]Vec2, 0, n)
	half := float64(size) / 2
	limit := n * g.attemptFactor
	for attempt := 0; len(pts) < n && attempt < limit; attempt++ {
		x := float64(size) * rng.Float64()
		y := float64(size) * rng.Float64()
		if img.AlphaAt(int(x), int(y)).A != 0 {
			pts = append(pts, Vec2{X: x - half, Y: y - half})
		}
	}
	return pts
}

func hasInk(img *image.Alpha) bool {
	for _, a := range img.Pix {
		if a != 0 {
			return true
		}
	}
	return false
}
