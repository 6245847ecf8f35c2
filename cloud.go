package heppi

import "math/rand/v2"

// CharCloud is the sampled point cloud of one glyph together with its place
// in the phrase layout.
type CharCloud struct {
	Rune   rune
	Points []Vec2
	// Line is the row index; LineCount the number of rows in the phrase.
	Line, LineCount int
	// Column is the glyph's index within its row; LineLen the row's glyph count.
	Column, LineLen int
}

// ParticleSet holds every glyph cloud of one phrase. It is built once per
// phrase change and shared read-only between frames.
type ParticleSet struct {
	PhraseIndex int
	Multiline   bool
	Clouds      []CharCloud
}

// Len returns the number of glyph clouds.
func (ps *ParticleSet) Len() int {
	if ps == nil {
		return 0
	}
	return len(ps.Clouds)
}

// Points returns the total number of particles across all clouds.
func (ps *ParticleSet) Points() int {
	if ps == nil {
		return 0
	}
	n := 0
	for i := range ps.Clouds {
		n += len(ps.Clouds[i].Points)
	}
	return n
}

// buildParticleSet rasterizes every visible glyph of p.
func buildParticleSet(index int, p Phrase, gr *GlyphRasterizer, size, particles int, rng *rand.Rand) *ParticleSet {
	rows := p.Glyphs()
	ps := &ParticleSet{PhraseIndex: index, Multiline: p.Multiline()}
	for line, row := range rows {
		for col, r := range row {
			ps.Clouds = append(ps.Clouds, CharCloud{
				Rune:      r,
				Points:    gr.Rasterize(r, size, particles, rng),
				Line:      line,
				LineCount: len(rows),
				Column:    col,
				LineLen:   len(row),
			})
		}
	}
	return ps
}

// cloudKey identifies a ParticleSet derivation. Any field change forces a
// rebuild: a new phrase, or a resize that changes particle count or glyph
// size.
type cloudKey struct {
	phrase    int
	particles int
	size      int
}

// cloudCache memoizes the most recent phraseIndex -> ParticleSet derivation.
type cloudCache struct {
	key    cloudKey
	set    *ParticleSet
	builds int
}

// get returns the cached set for key, calling build only when key differs
// from the previous call.
func (c *cloudCache) get(key cloudKey, build func() *ParticleSet) *ParticleSet {
	if c.set != nil && c.key == key {
		return c.set
	}
	c.key = key
	c.set = build()
	c.builds++
	return c.set
}
