package heppi

import (
	"math"

	"github.com/tanema/gween/ease"
)

// Curves shared by the burst renderer. All take a normalized time t in [0, 1]
// and evaluate a gween easing function over a unit duration.

const (
	// flashRadius is the launch dot radius at the instant of ignition.
	flashRadius = 16.0
	// flashSpan is the share of the explosion over which the ignition flash
	// shrinks back to nothing.
	flashSpan = 0.1
	// dropDistance is how far, in pixels, a spent explosion has sagged.
	dropDistance = 20.0
)

func tween(fn ease.TweenFunc, t, from, to float64) float64 {
	return float64(fn(float32(t), float32(from), float32(to-from), 1))
}

// launchRadius is the rising dot's radius. It starts at 2+flashRadius since
// t^(15t) is 1 at t=0, dips below 2, then grows back to flashRadius at t=1.
func launchRadius(t float64) float64 {
	t = clamp01(t)
	return 2 - 2*t + math.Pow(t, 15*t)*flashRadius
}

// launchHeight is the dot's screen y while it climbs from the bottom edge h
// to the explosion height y.
func launchHeight(t, h, y float64) float64 {
	return tween(ease.Linear, clamp01(t), h, y)
}

// flashSize is the radius of the ignition flash at explosion time t. It
// starts at launchRadius(1) so the hand-off from launch to explosion has no
// jump.
func flashSize(t float64) float64 {
	if t >= flashSpan {
		return 0
	}
	return tween(ease.OutQuad, t/flashSpan, flashRadius, 0)
}

// drop is the gravity-like vertical sag of explosion particles.
func drop(t float64) float64 {
	return tween(ease.InCubic, clamp01(t), 0, dropDistance)
}

// particleRadius grows during the first half of the explosion and shrinks to
// zero by the end. The base size varies per burst id.
func particleRadius(id int, t float64) float64 {
	r := math.Sin(float64(id))*0.5 + 1.5
	if t < 0.5 {
		return (t + 0.5) * t * r
	}
	return r - t*r
}

// fadeOut is the opacity of radial burst particles.
func fadeOut(t float64) float64 {
	return tween(ease.InQuad, clamp01(t), 1, 0)
}
