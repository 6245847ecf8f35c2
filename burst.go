package heppi

import (
	"math"
	"math/rand/v2"
	"time"
)

// BurstKind distinguishes glyph-shaped bursts from free radial ones.
type BurstKind uint8

const (
	BurstGlyph  BurstKind = iota // spells one character of a phrase
	BurstRadial                  // ring of sparks, used by ambient mode and clicks
)

// Burst is a self-timed firework: a launch dot that climbs to Origin, then an
// explosion of Points around it.
type Burst struct {
	ID     int
	Kind   BurstKind
	Points []Vec2
	// Origin is the explosion point in screen space.
	Origin   Vec2
	Start    time.Duration
	Duration time.Duration
	// SkipLaunch starts the burst directly in its explosion phase.
	SkipLaunch bool
}

// Age returns how long the burst has been alive at show time now.
func (b Burst) Age(now time.Duration) time.Duration {
	return now - b.Start
}

// Fraction returns the elapsed share of the burst's lifetime, unclamped.
func (b Burst) Fraction(now time.Duration) float64 {
	if b.Duration <= 0 {
		return 1
	}
	return float64(now-b.Start) / float64(b.Duration)
}

// Dot is one filled circle of a rendered frame.
type Dot struct {
	X, Y, R float64
	Color   Color
}

// burstPainter evaluates the closed-form burst curves. It carries the
// per-frame inputs so drawing a burst needs no allocation.
type burstPainter struct {
	launch  float64    // launch fraction of the lifetime
	scale   float64    // multiplier for pixel-sized constants
	height  float64    // canvas height; launches start at the bottom edge
	sparkle *rand.Rand // non-nil enables per-frame lightness jitter
	fade    bool       // radial bursts fade out as they expire
}

// phase reports whether f falls in the launch phase, and the local time of
// whichever phase it is in.
func (p burstPainter) phase(f float64) (launching bool, t float64) {
	if f < p.launch {
		return true, f / p.launch
	}
	return false, clamp01((f - p.launch) / (1 - p.launch))
}

// paint emits the dots of one burst at lifetime fraction f with its
// explosion centered on (x, y). Fractions outside [0, 1] emit nothing.
func (p burstPainter) paint(id int, pts []Vec2, x, y, f float64, emit func(Dot)) {
	if f < 0 || f > 1 {
		return
	}
	launching, t := p.phase(f)
	if launching {
		emit(Dot{X: x, Y: launchHeight(t, p.height, y), R: launchRadius(t) * p.scale, Color: ColorWhite})
		return
	}

	if r := flashSize(t) * p.scale; r > 0 {
		emit(Dot{X: x, Y: y, R: r, Color: ColorWhite})
	}

	r := particleRadius(id, t) * p.scale
	if r <= 0 {
		return
	}
	sag := drop(t) * p.scale
	hue := float64(id) * 55
	alpha := 1.0
	if p.fade {
		alpha = fadeOut(t)
	}
	col := HSL(hue, 0.7, 0.75).WithAlpha(alpha)
	for i, pt := range pts {
		if i%20 == 0 {
			col = HSL(hue, 0.7, p.lightness(i, t)).WithAlpha(alpha)
		}
		emit(Dot{X: x + t*pt.X, Y: y + t*pt.Y + sag, R: r, Color: col})
	}
}

// lightness is the deterministic shimmer of a block of 20 particles, plus
// sparkle jitter when enabled.
func (p burstPainter) lightness(i int, t float64) float64 {
	l := 0.75 + t*math.Sin(t*55+float64(i))*0.2
	if p.sparkle != nil {
		l += (p.sparkle.Float64() - 0.5) * 0.2
	}
	return l
}

// radialPoints scatters n points on a jittered ring of the given radius.
func radialPoints(n int, radius float64, rng *rand.Rand) []Vec2 {
	pts := make([]Vec2, n)
	for i := range pts {
		a := 2 * math.Pi * (float64(i) + rng.Float64()*0.5) / float64(n)
		d := radius * (0.75 + rng.Float64()*0.5)
		pts[i] = Vec2{X: math.Cos(a) * d, Y: math.Sin(a) * d}
	}
	return pts
}
