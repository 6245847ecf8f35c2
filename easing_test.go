package heppi

import (
	"math"
	"testing"
)

func TestLaunchRadius(t *testing.T) {
	assertNear(t, "launchRadius(0)", launchRadius(0), 2+flashRadius)
	assertNear(t, "launchRadius(1)", launchRadius(1), flashRadius)
	// Dips below the starting size before blooming.
	if r := launchRadius(0.5); r >= 2 {
		t.Errorf("launchRadius(0.5) = %v, want < 2", r)
	}
}

func TestFlashContinuesLaunch(t *testing.T) {
	if d := math.Abs(flashSize(0) - launchRadius(1)); d > 1e-4 {
		t.Errorf("flash starts at %v, launch ends at %v", flashSize(0), launchRadius(1))
	}
	if r := flashSize(flashSpan / 2); r <= 0 || r >= flashRadius {
		t.Errorf("flashSize mid-span = %v, want in (0, %v)", r, flashRadius)
	}
	if r := flashSize(flashSpan); r != 0 {
		t.Errorf("flashSize(flashSpan) = %v, want 0", r)
	}
}

func TestLaunchHeight(t *testing.T) {
	tests := []struct{ t, want float64 }{
		{0, 600},
		{0.5, 400},
		{1, 200},
	}
	for _, tt := range tests {
		if got := launchHeight(tt.t, 600, 200); math.Abs(got-tt.want) > 1e-3 {
			t.Errorf("launchHeight(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestDropIsCubic(t *testing.T) {
	for _, x := range []float64{0, 0.25, 0.5, 1} {
		want := dropDistance * x * x * x
		if got := drop(x); math.Abs(got-want) > 1e-3 {
			t.Errorf("drop(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestParticleRadius(t *testing.T) {
	base := math.Sin(3)*0.5 + 1.5
	assertNear(t, "r(0)", particleRadius(3, 0), 0)
	assertNear(t, "r(0.25)", particleRadius(3, 0.25), 0.75*0.25*base)
	assertNear(t, "r(0.5)", particleRadius(3, 0.5), 0.5*base)
	assertNear(t, "r(1)", particleRadius(3, 1), 0)
}

func TestFadeOut(t *testing.T) {
	if a := fadeOut(0); math.Abs(a-1) > 1e-6 {
		t.Errorf("fadeOut(0) = %v, want 1", a)
	}
	if a := fadeOut(1); math.Abs(a) > 1e-6 {
		t.Errorf("fadeOut(1) = %v, want 0", a)
	}
	if fadeOut(0.3) <= fadeOut(0.6) {
		t.Error("fadeOut should decrease")
	}
}
