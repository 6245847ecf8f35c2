package heppi

import (
	"math"
	"testing"
	"time"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// testConfig is a small deterministic show: phrases "HI", a one second
// window, no start delay and one cycle before ambient mode.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Phrases = []Phrase{{Text: "HI"}}
	cfg.StartDelay = 0
	cfg.Window = time.Second
	cfg.AmbientAfter = 1
	cfg.GlyphSize = 64
	cfg.Particles = 20
	cfg.Seed = 42
	return cfg
}

func newTestShow(t *testing.T, cfg Config) *Show {
	t.Helper()
	s, err := NewShow(cfg)
	if err != nil {
		t.Fatalf("NewShow: %v", err)
	}
	return s
}

func TestHSLWrapsHue(t *testing.T) {
	red := HSL(0, 1, 0.5)
	assertNear(t, "R", red.R, 1)
	assertNear(t, "G", red.G, 0)
	assertNear(t, "B", red.B, 0)
	assertNear(t, "A", red.A, 1)

	for _, h := range []float64{360, 720, -360} {
		c := HSL(h, 1, 0.5)
		if math.Abs(c.R-red.R) > 1e-6 || math.Abs(c.G-red.G) > 1e-6 || math.Abs(c.B-red.B) > 1e-6 {
			t.Errorf("HSL(%v) = %+v, want %+v", h, c, red)
		}
	}
}

func TestHSLClampsInputs(t *testing.T) {
	c := HSL(120, 2, 1.5)
	assertNear(t, "R", c.R, 1)
	assertNear(t, "G", c.G, 1)
	assertNear(t, "B", c.B, 1)
}

func TestColorToRGBAPremultiplies(t *testing.T) {
	c := Color{R: 1, G: 0.5, B: 0, A: 0.5}.toRGBA()
	if c.R != 127 || c.G != 63 || c.B != 0 || c.A != 127 {
		t.Errorf("toRGBA = %+v, want {127 63 0 127}", c)
	}
}

func TestRectScaleAndRandomPoint(t *testing.T) {
	r := Rect{X: 0.25, Y: 0.5, Width: 0.5, Height: 0.25}.Scale(200, 100)
	want := Rect{X: 50, Y: 50, Width: 100, Height: 25}
	if r != want {
		t.Fatalf("Scale = %+v, want %+v", r, want)
	}
	rng := newRand(1)
	for i := 0; i < 200; i++ {
		p := r.RandomPoint(rng)
		if !r.Contains(p.X, p.Y) {
			t.Fatalf("RandomPoint %v outside %+v", p, r)
		}
	}
}

func TestRangeRandom(t *testing.T) {
	rng := newRand(7)
	if got := (Range{Min: 3, Max: 3}).Random(rng); got != 3 {
		t.Errorf("degenerate range = %v, want 3", got)
	}
	r := Range{Min: -1, Max: 2}
	for i := 0; i < 200; i++ {
		if v := r.Random(rng); v < r.Min || v > r.Max {
			t.Fatalf("Random = %v, outside [%v, %v]", v, r.Min, r.Max)
		}
	}
}

func TestNewRandDeterministic(t *testing.T) {
	a, b := newRand(99), newRand(99)
	for i := 0; i < 10; i++ {
		if x, y := a.Uint64(), b.Uint64(); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}
