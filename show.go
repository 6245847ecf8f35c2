package heppi

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
)

// firstAmbientID offsets ids handed to ambient and click bursts so their
// colors do not repeat the last phrase's palette.
const firstAmbientID = 1 << 10

// drift is the horizontal wobble, in pixels, of a glyph burst while it
// launches.
const drift = 30

// Show is the firework choreography: configuration, schedule, and the caches
// derived from them. The evolving part of a run lives in State, which Step
// takes and returns by value. A Show is not safe for concurrent use.
type Show struct {
	cfg     Config
	sched   Schedule
	glyphs  *GlyphRasterizer
	cache   cloudCache
	seed    uint64
	rng     *rand.Rand // glyph sampling for the shared particle sets
	sparkle *rand.Rand // per-frame shimmer only; never affects Step
	log     zerolog.Logger
}

// Option configures a Show.
type Option func(*Show)

// WithLogger routes show events to l.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Show) { s.log = l }
}

// WithRasterizer replaces the glyph rasterizer.
func WithRasterizer(g *GlyphRasterizer) Option {
	return func(s *Show) { s.glyphs = g }
}

// NewShow validates cfg and prepares a show. A zero cfg.Seed picks a
// time-based seed.
func NewShow(cfg Config, opts ...Option) (*Show, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	s := &Show{
		cfg:     cfg,
		sched:   NewSchedule(cfg),
		seed:    seed,
		rng:     newRand(seed),
		sparkle: newRand(seed + 1),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.glyphs == nil {
		g, err := rasterizerFor(cfg.FontPath)
		if err != nil {
			return nil, err
		}
		s.glyphs = g
	}
	return s, nil
}

func rasterizerFor(path string) (*GlyphRasterizer, error) {
	if path == "" {
		return DefaultGlyphRasterizer()
	}
	f, err := LoadFontFile(path)
	if err != nil {
		return nil, err
	}
	return NewGlyphRasterizer(f), nil
}

// Config returns the show's configuration.
func (s *Show) Config() Config {
	return s.cfg
}

// Schedule returns the show's phrase schedule.
func (s *Show) Schedule() Schedule {
	return s.sched
}

// Rand returns a new generator seeded from the show's source, for
// collaborators such as the snowfield.
func (s *Show) Rand() *rand.Rand {
	return newRand(s.rng.Uint64())
}

// State is the evolving part of a run.
type State struct {
	// Elapsed is the show clock.
	Elapsed time.Duration
	Mode    Mode
	// Phrase is the active phrase index while Mode is ModePhrases.
	Phrase int
	// Clouds is the active phrase's particle set; nil outside ModePhrases.
	Clouds *ParticleSet
	// Bursts are free-standing radial bursts from ambient mode and clicks.
	Bursts []Burst
	// Ignited lists the burst ids that exploded during the last Step.
	Ignited []int
	// NextAmbient is the show time of the next ambient spawn.
	NextAmbient time.Duration
	// NextID is the id handed to the next free-standing burst.
	NextID        int
	Width, Height float64

	// rng places ambient bursts and shapes radial rings. Copies of a State
	// share it, so continue a run from the State its last Step returned.
	rng     *rand.Rand
	regions *regionTable
}

// withRand gives st its own random source if it has none yet. Runs of a show
// with a fixed seed all draw the same sequence; unseeded shows draw a fresh
// one per run.
func (s *Show) withRand(st State) State {
	if st.rng != nil {
		return st
	}
	seed := s.seed
	if s.cfg.Seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	st.rng = newRand(seed ^ 0x5bd1e995)
	st.regions = newRegionTable(s.cfg.Ambient.Regions, st.rng)
	return st
}

// Start returns the state of a fresh run on a w×h canvas.
func (s *Show) Start(w, h float64) State {
	st := s.withRand(State{Width: w, Height: h, NextID: firstAmbientID})
	st.Mode, st.Phrase = s.sched.At(0)
	if st.Mode == ModePhrases {
		st.Clouds = s.clouds(st.Phrase, w)
	}
	s.log.Debug().Float64("width", w).Float64("height", h).Stringer("mode", st.Mode).Msg("show started")
	return st
}

// Resize returns st adapted to a new canvas size. Particle counts and glyph
// sizes are re-derived; a change rebuilds the active particle set.
func (s *Show) Resize(st State, w, h float64) State {
	st.Width, st.Height = w, h
	if st.Mode == ModePhrases {
		st.Clouds = s.clouds(st.Phrase, w)
	}
	s.log.Debug().Float64("width", w).Float64("height", h).Msg("show resized")
	return st
}

// Step advances st by dt and returns the new state.
func (s *Show) Step(st State, dt time.Duration) State {
	st = s.withRand(st)
	prev := st.Elapsed
	st.Elapsed += dt
	st.Ignited = nil

	mode, idx := s.sched.At(st.Elapsed)
	if st.Mode == ModeAmbient {
		// Ambient mode never hands back to the phrases.
		mode = ModeAmbient
	}
	if mode != st.Mode {
		s.log.Info().Stringer("from", st.Mode).Stringer("to", mode).Dur("elapsed", st.Elapsed).Msg("show mode changed")
		if mode == ModeAmbient {
			st.NextAmbient = st.Elapsed
		}
	}
	st.Mode = mode

	if mode == ModePhrases {
		st.Phrase = idx
		st.Clouds = s.clouds(idx, st.Width)
		st.Ignited = s.phraseIgnitions(st, prev)
	} else {
		st.Phrase = 0
		st.Clouds = nil
	}

	if mode == ModeAmbient {
		for st.NextAmbient <= st.Elapsed {
			st = s.spawnAmbient(st, st.NextAmbient)
			st.NextAmbient += s.cfg.Ambient.Interval
		}
	}

	for _, b := range st.Bursts {
		ign := b.Start
		if !b.SkipLaunch {
			ign += time.Duration(float64(b.Duration) * s.cfg.LaunchFraction)
		}
		if ign >= prev && ign < st.Elapsed {
			st.Ignited = append(st.Ignited, b.ID)
		}
	}
	st.Bursts = pruneBursts(st.Bursts, st.Elapsed, s.cfg.Ambient.PruneAt)
	return st
}

// Click returns st with a radial burst exploding at (x, y).
func (s *Show) Click(st State, x, y float64) State {
	st = s.withRand(st)
	b := Burst{
		ID:         st.NextID,
		Kind:       BurstRadial,
		Points:     radialPoints(s.cfg.Ambient.RadialPoints, s.cfg.Ambient.RadialRadius, st.rng),
		Origin:     Vec2{X: x, Y: y},
		Start:      st.Elapsed,
		Duration:   time.Duration(float64(s.cfg.Ambient.Lifetime) * (1 - s.cfg.LaunchFraction)),
		SkipLaunch: true,
	}
	st.NextID++
	st.Bursts = appendBurst(st.Bursts, b)
	s.log.Debug().Int("id", b.ID).Float64("x", x).Float64("y", y).Msg("click burst")
	return st
}

// spawnAmbient appends one region-placed radial burst starting at t.
func (s *Show) spawnAmbient(st State, t time.Duration) State {
	region, origin := st.regions.point(st.Width, st.Height)
	b := Burst{
		ID:       st.NextID,
		Kind:     BurstRadial,
		Points:   radialPoints(s.cfg.Ambient.RadialPoints, s.cfg.Ambient.RadialRadius, st.rng),
		Origin:   origin,
		Start:    t,
		Duration: s.cfg.Ambient.Lifetime,
	}
	st.NextID++
	st.Bursts = appendBurst(st.Bursts, b)
	s.log.Debug().Int("id", b.ID).Str("region", s.cfg.Ambient.Regions[region].Name).Msg("ambient burst")
	return st
}

// appendBurst copies before appending so a State handed out earlier never
// sees the new burst.
func appendBurst(bursts []Burst, b Burst) []Burst {
	out := make([]Burst, len(bursts), len(bursts)+1)
	copy(out, bursts)
	return append(out, b)
}

// clouds is the cached derivation phraseIndex -> ParticleSet.
func (s *Show) clouds(idx int, w float64) *ParticleSet {
	key := cloudKey{phrase: idx, particles: s.cfg.particleCount(w), size: s.cfg.glyphSize(w)}
	return s.cache.get(key, func() *ParticleSet {
		p := s.cfg.Phrases[idx]
		ps := buildParticleSet(idx, p, s.glyphs, key.size, key.particles, s.rng)
		for _, c := range ps.Clouds {
			if len(c.Points) < key.particles {
				s.log.Warn().Str("glyph", string(c.Rune)).Int("points", len(c.Points)).
					Int("want", key.particles).Msg("glyph sampling exhausted")
			}
		}
		s.log.Debug().Int("phrase", idx).Str("text", p.String()).Int("glyphs", ps.Len()).
			Int("points", ps.Points()).Msg("particle set built")
		return ps
	})
}

// Rebuilds reports how many particle sets have been derived so far.
func (s *Show) Rebuilds() int {
	return s.cache.builds
}

// stagger delays glyph burst i of a single-line phrase; multi-line phrases
// ignite every glyph together.
func (s *Show) stagger(ps *ParticleSet, i int) time.Duration {
	if ps.Multiline {
		return 0
	}
	return time.Duration(i) * s.cfg.StaggerDelay
}

// glyphBurst returns glyph burst i of the active phrase as seen at
// st.Elapsed. Its Origin follows the launch drift, so it is only valid for
// that instant.
func (s *Show) glyphBurst(st State, i int) Burst {
	b := Burst{
		ID:       glyphID(st.Clouds, i),
		Kind:     BurstGlyph,
		Points:   st.Clouds.Clouds[i].Points,
		Start:    st.Elapsed - s.sched.WindowTime(st.Elapsed) + s.stagger(st.Clouds, i),
		Duration: s.cfg.Window,
	}
	b.Origin = s.glyphOrigin(st, i, clamp01(b.Fraction(st.Elapsed)))
	return b
}

// glyphID is the color identity of glyph burst i of the active phrase.
func glyphID(ps *ParticleSet, i int) int {
	return i + len(ps.Clouds)*ps.PhraseIndex
}

// glyphOrigin places glyph burst i of the active phrase at fraction f.
func (s *Show) glyphOrigin(st State, i int, f float64) Vec2 {
	c := st.Clouds.Clouds[i]
	id := float64(glyphID(st.Clouds, i))
	w, h := st.Width, st.Height

	x := float64(c.Column+1) * w / float64(1+c.LineLen)
	x += math.Min(s.cfg.LaunchFraction, f) * drift * s.cfg.Scale * math.Sin(id)

	up := h * s.cfg.Anchor
	if c.LineCount > 1 {
		// Row 0 is the top row.
		up += (float64(c.LineCount-1)/2 - float64(c.Line)) * s.cfg.LineSpacing * h
	}
	up += math.Sin(id*4547.411) * h * 0.03
	return Vec2{X: x, Y: h - up}
}

// phraseIgnitions lists glyph bursts whose explosion began in [prev, now).
func (s *Show) phraseIgnitions(st State, prev time.Duration) []int {
	if st.Clouds == nil || st.Elapsed <= prev {
		return nil
	}
	start := st.Elapsed - s.sched.WindowTime(st.Elapsed)
	launch := time.Duration(s.cfg.LaunchFraction * float64(s.cfg.Window))
	var ids []int
	for i := range st.Clouds.Clouds {
		offset := s.stagger(st.Clouds, i) + launch
		if offset > s.cfg.Window {
			continue
		}
		if ign := start + offset; ign >= prev && ign < st.Elapsed {
			ids = append(ids, glyphID(st.Clouds, i))
		}
	}
	return ids
}

// Dots emits every circle of the frame described by st, back to front.
func (s *Show) Dots(st State, emit func(Dot)) {
	p := burstPainter{launch: s.cfg.LaunchFraction, scale: s.cfg.Scale, height: st.Height}
	if st.Clouds != nil {
		for i := range st.Clouds.Clouds {
			s.paint(p, s.glyphBurst(st, i), st.Elapsed, emit)
		}
	}
	for _, b := range st.Bursts {
		s.paint(p, b, st.Elapsed, emit)
	}
}

// paint draws one burst at show time now. Radial bursts fade as they expire
// and sparkle when enabled; glyph bursts hold their color.
func (s *Show) paint(p burstPainter, b Burst, now time.Duration, emit func(Dot)) {
	if b.Kind == BurstRadial {
		p.fade = true
		if s.cfg.Ambient.Sparkle {
			p.sparkle = s.sparkle
		}
	}
	if b.SkipLaunch {
		p.launch = 0
	}
	p.paint(b.ID, b.Points, b.Origin.X, b.Origin.Y, b.Fraction(now), emit)
}

// Draw renders the frame described by st onto c. With trails on, the
// previous frame is faded instead of cleared.
func (s *Show) Draw(c Canvas, st State) {
	if s.cfg.Trails {
		c.Fade(s.cfg.TrailAlpha)
	} else {
		c.Clear()
	}
	s.Dots(st, func(d Dot) {
		c.FillCircle(d.X, d.Y, d.R, d.Color)
	})
}

func (st State) String() string {
	return fmt.Sprintf("%s@%v phrase=%d bursts=%d", st.Mode, st.Elapsed, st.Phrase, len(st.Bursts))
}
