package heppi

import "time"

// frameStats holds per-frame timing and particle metrics.
// Only populated when the game runs in debug mode.
type frameStats struct {
	step  time.Duration
	draw  time.Duration
	state State
}

// debugLog writes frame stats at debug level. Update and Draw each log their
// own half of a frame.
func (g *Game) debugLog(stats frameStats) {
	if !g.debug {
		return
	}
	e := g.log.Debug().
		Stringer("mode", stats.state.Mode).
		Dur("elapsed", stats.state.Elapsed).
		Int("glyphs", stats.state.Clouds.Len()).
		Int("glyph_points", stats.state.Clouds.Points()).
		Int("bursts", len(stats.state.Bursts))
	if stats.step > 0 {
		e = e.Dur("step", stats.step)
	}
	if stats.draw > 0 {
		e = e.Dur("draw", stats.draw)
	}
	e.Msg("frame")
}
