package heppi

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Snowflake holds per-flake simulation state. Mutated in place by
// Snowfield.Update.
type Snowflake struct {
	X, Y    float64
	Radius  float64
	Speed   float64 // fall speed in pixels per second
	Opacity float64
	Sway    float64 // lateral drift amplitude in pixels per second
}

// respawnY is where a flake re-enters after falling past the bottom edge.
const respawnY = -10

// swayFrequency scales the sine of a flake's height into lateral drift.
const swayFrequency = 0.005

// SnowConfig controls the snow layer.
type SnowConfig struct {
	// Enabled toggles the layer.
	Enabled bool `yaml:"enabled"`
	// Count is the pool size. It never changes while the field lives.
	Count int `yaml:"count"`
	// Radius is the range of flake radii in pixels.
	Radius Range `yaml:"radius"`
	// Speed is the range of fall speeds in pixels per second.
	Speed Range `yaml:"speed"`
	// Opacity is the range of flake opacities.
	Opacity Range `yaml:"opacity"`
	// Sway is the range of lateral drift amplitudes in pixels per second.
	Sway Range `yaml:"sway"`
}

// DefaultSnowConfig is light snow: fifty small, slow, translucent flakes.
func DefaultSnowConfig() SnowConfig {
	return SnowConfig{
		Enabled: true,
		Count:   50,
		Radius:  Range{1, 3},
		Speed:   Range{18, 48},
		Opacity: Range{0.3, 0.8},
		Sway:    Range{3, 12},
	}
}

func (c SnowConfig) validate() error {
	if c.Count < 0 {
		return fmt.Errorf("%w: snow.count must not be negative, got %d", ErrInvalidConfig, c.Count)
	}
	for name, r := range map[string]Range{"radius": c.Radius, "speed": c.Speed, "opacity": c.Opacity, "sway": c.Sway} {
		if r.Min > r.Max {
			return fmt.Errorf("%w: snow.%s: min %v exceeds max %v", ErrInvalidConfig, name, r.Min, r.Max)
		}
	}
	return nil
}

// Snowfield is a fixed-size pool of flakes falling over a w×h area.
type Snowfield struct {
	config SnowConfig
	flakes []Snowflake
	w, h   float64
	rng    *rand.Rand
}

// NewSnowfield creates a field with cfg.Count flakes scattered over w×h.
func NewSnowfield(cfg SnowConfig, w, h float64, rng *rand.Rand) *Snowfield {
	s := &Snowfield{config: cfg, rng: rng}
	s.Resize(w, h)
	return s
}

// Resize discards every flake and scatters a fresh pool over the new area.
func (s *Snowfield) Resize(w, h float64) {
	s.w, s.h = w, h
	n := s.config.Count
	if n < 0 {
		n = 0
	}
	s.flakes = make([]Snowflake, n)
	for i := range s.flakes {
		s.spawnFlake(&s.flakes[i])
	}
}

// Len returns the number of flakes; always the configured count.
func (s *Snowfield) Len() int {
	return len(s.flakes)
}

// Flakes exposes the pool for inspection. The returned slice MUST NOT be
// resized.
func (s *Snowfield) Flakes() []Snowflake {
	return s.flakes
}

// Update advances every flake by dt seconds.
func (s *Snowfield) Update(dt float64) {
	for i := range s.flakes {
		f := &s.flakes[i]

		f.Y += f.Speed * dt
		f.X += math.Sin(f.Y*swayFrequency) * f.Sway * dt

		// Fell off the bottom: re-enter above the top at a new column.
		if f.Y > s.h {
			f.Y = respawnY
			f.X = s.rng.Float64() * s.w
		}

		if f.X > s.w {
			f.X = 0
		} else if f.X < 0 {
			f.X = s.w
		}
	}
}

// Draw paints every flake onto c.
func (s *Snowfield) Draw(c Canvas) {
	for i := range s.flakes {
		f := &s.flakes[i]
		c.FillCircle(f.X, f.Y, f.Radius, ColorWhite.WithAlpha(f.Opacity))
	}
}

// spawnFlake initializes f at a random position in the field.
func (s *Snowfield) spawnFlake(f *Snowflake) {
	f.X = s.rng.Float64() * s.w
	f.Y = s.rng.Float64() * s.h
	f.Radius = s.config.Radius.Random(s.rng)
	f.Speed = s.config.Speed.Random(s.rng)
	f.Opacity = s.config.Opacity.Random(s.rng)
	f.Sway = s.config.Sway.Random(s.rng)
}
