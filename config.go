package heppi

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("heppi: invalid config")

// Config holds every tunable of a show. The zero value is not usable; start
// from DefaultConfig and override fields.
type Config struct {
	// Phrases is the ordered greeting sequence.
	Phrases []Phrase `yaml:"phrases"`
	// StartDelay is the quiet period before the first phrase.
	StartDelay time.Duration `yaml:"start_delay"`
	// Window is how long each phrase owns the sky.
	Window time.Duration `yaml:"window"`
	// LaunchFraction is the share of a burst's lifetime spent as a rising dot.
	LaunchFraction float64 `yaml:"launch_fraction"`
	// StaggerDelay separates the ignition of consecutive glyphs on a
	// single-line phrase.
	StaggerDelay time.Duration `yaml:"stagger_delay"`
	// AmbientAfter is the number of complete phrase cycles before ambient
	// mode takes over. Zero loops the phrases forever.
	AmbientAfter int `yaml:"ambient_after"`
	// Anchor is the explosion height as a fraction of the canvas height,
	// measured from the bottom edge.
	Anchor float64 `yaml:"anchor"`
	// LineSpacing separates rows of a multi-line phrase, as a fraction of
	// the canvas height.
	LineSpacing float64 `yaml:"line_spacing"`
	// GlyphSize overrides the rasterized glyph size in pixels. Zero picks
	// 200 below NarrowWidth and 300 otherwise.
	GlyphSize int `yaml:"glyph_size"`
	// Particles overrides the per-glyph particle count. Zero picks 55 below
	// NarrowWidth and 99 otherwise.
	Particles int `yaml:"particles"`
	// Scale multiplies every pixel-sized constant of the burst curves (dot
	// radii, launch drift, explosion sag). Small surfaces such as a terminal
	// use values below 1.
	Scale float64 `yaml:"scale"`
	// FontPath points at a TTF/OTF file. Empty uses Go Bold.
	FontPath string `yaml:"font_path,omitempty"`

	Ambient AmbientConfig `yaml:"ambient"`
	Snow    SnowConfig    `yaml:"snow"`

	// Trails fades the previous frame instead of clearing it.
	Trails bool `yaml:"trails"`
	// TrailAlpha is the opacity of the black wash applied per frame when
	// Trails is on.
	TrailAlpha float64 `yaml:"trail_alpha"`
	// Seed feeds the show's random source. Zero picks a time-based seed.
	Seed uint64 `yaml:"seed"`
}

// AmbientConfig controls the endless radial fireworks that follow the
// phrase cycle.
type AmbientConfig struct {
	Interval     time.Duration `yaml:"interval"`
	Lifetime     time.Duration `yaml:"lifetime"`
	PruneAt      float64       `yaml:"prune_at"`
	RadialPoints int           `yaml:"radial_points"`
	RadialRadius float64       `yaml:"radial_radius"`
	Sparkle      bool          `yaml:"sparkle"`
	Regions      []Region      `yaml:"regions"`
}

// NarrowWidth is the canvas width below which glyphs and particle counts
// shrink.
const NarrowWidth = 400

// DefaultConfig returns the configuration used by the greeting page.
func DefaultConfig() Config {
	phrases := make([]Phrase, len(DefaultPhrases))
	copy(phrases, DefaultPhrases)
	return Config{
		Phrases:        phrases,
		StartDelay:     3 * time.Second,
		Window:         6300 * time.Millisecond,
		LaunchFraction: 0.15,
		StaggerDelay:   200 * time.Millisecond,
		AmbientAfter:   1,
		Anchor:         0.75,
		LineSpacing:    0.20,
		Scale:          1,
		Ambient: AmbientConfig{
			Interval:     800 * time.Millisecond,
			Lifetime:     2400 * time.Millisecond,
			PruneAt:      1,
			RadialPoints: 80,
			RadialRadius: 90,
			Sparkle:      true,
			Regions:      DefaultRegions(),
		},
		Snow:       DefaultSnowConfig(),
		Trails:     true,
		TrailAlpha: 0x40 / 255.0,
	}
}

// Validate reports the first field that cannot drive a show.
func (c Config) Validate() error {
	if len(c.Phrases) == 0 {
		return fmt.Errorf("%w: phrases: at least one phrase required", ErrInvalidConfig)
	}
	for i, p := range c.Phrases {
		if p.glyphCount() == 0 {
			return fmt.Errorf("%w: phrases[%d]: %q has no visible glyphs", ErrInvalidConfig, i, p.String())
		}
	}
	if c.Window <= 0 {
		return fmt.Errorf("%w: window must be positive, got %v", ErrInvalidConfig, c.Window)
	}
	if c.StartDelay < 0 {
		return fmt.Errorf("%w: start_delay must not be negative, got %v", ErrInvalidConfig, c.StartDelay)
	}
	if c.LaunchFraction <= 0 || c.LaunchFraction >= 1 {
		return fmt.Errorf("%w: launch_fraction must be in (0, 1), got %v", ErrInvalidConfig, c.LaunchFraction)
	}
	if c.StaggerDelay < 0 {
		return fmt.Errorf("%w: stagger_delay must not be negative, got %v", ErrInvalidConfig, c.StaggerDelay)
	}
	if c.AmbientAfter < 0 {
		return fmt.Errorf("%w: ambient_after must not be negative, got %d", ErrInvalidConfig, c.AmbientAfter)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("%w: scale must be positive, got %v", ErrInvalidConfig, c.Scale)
	}
	if c.GlyphSize < 0 || c.Particles < 0 {
		return fmt.Errorf("%w: glyph_size and particles must not be negative", ErrInvalidConfig)
	}
	if c.TrailAlpha < 0 || c.TrailAlpha > 1 {
		return fmt.Errorf("%w: trail_alpha must be in [0, 1], got %v", ErrInvalidConfig, c.TrailAlpha)
	}
	if err := c.Ambient.validate(); err != nil {
		return err
	}
	return c.Snow.validate()
}

func (a AmbientConfig) validate() error {
	if a.Interval <= 0 {
		return fmt.Errorf("%w: ambient.interval must be positive, got %v", ErrInvalidConfig, a.Interval)
	}
	if a.Lifetime <= 0 {
		return fmt.Errorf("%w: ambient.lifetime must be positive, got %v", ErrInvalidConfig, a.Lifetime)
	}
	if a.PruneAt <= 0 || a.PruneAt > 1 {
		return fmt.Errorf("%w: ambient.prune_at must be in (0, 1], got %v", ErrInvalidConfig, a.PruneAt)
	}
	if a.RadialPoints <= 0 {
		return fmt.Errorf("%w: ambient.radial_points must be positive, got %d", ErrInvalidConfig, a.RadialPoints)
	}
	return validateRegions(a.Regions)
}

// LoadConfig reads a YAML file on top of DefaultConfig. Keys missing from the
// file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// YAML encodes the configuration in the same format LoadConfig reads.
func (c Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return out, nil
}

// glyphSize returns the rasterized glyph size for a canvas width.
func (c Config) glyphSize(w float64) int {
	if c.GlyphSize > 0 {
		return c.GlyphSize
	}
	if w < NarrowWidth {
		return 200
	}
	return 300
}

// particleCount returns the per-glyph particle count for a canvas width.
func (c Config) particleCount(w float64) int {
	if c.Particles > 0 {
		return c.Particles
	}
	if w < NarrowWidth {
		return 55
	}
	return 99
}
