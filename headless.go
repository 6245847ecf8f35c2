package heppi

import (
	"context"
	"errors"
	"image"
	"image/draw"
	"sort"
	"time"
)

// HeadlessConfig configures RenderFrames.
type HeadlessConfig struct {
	Width, Height int
	// Tick is the fixed simulation step. Zero means 1/60 s.
	Tick time.Duration
	// At lists the show times to capture, in any order.
	At []time.Duration
	// Clicks are applied in time order; several may share a time.
	Clicks []TimedClick
}

// TimedClick is a click at Pos once the show clock reaches At.
type TimedClick struct {
	At  time.Duration
	Pos Vec2
}

// errNoFrames is returned when RenderFrames is asked for nothing.
var errNoFrames = errors.New("heppi: no frame times requested")

// RenderFrames runs show without a window on the CPU raster canvas, stepping
// at a fixed tick and drawing every tick so trails match a live run. At each
// requested time, fn receives a composited copy of the frame (fireworks plus
// snow). Rendering stops early when ctx is cancelled or fn returns an error.
func RenderFrames(ctx context.Context, show *Show, cfg HeadlessConfig, fn func(at time.Duration, img *image.RGBA) error) error {
	if len(cfg.At) == 0 {
		return errNoFrames
	}
	tick := cfg.Tick
	if tick <= 0 {
		tick = time.Second / 60
	}
	at := append([]time.Duration(nil), cfg.At...)
	sort.Slice(at, func(i, j int) bool { return at[i] < at[j] })

	w, h := float64(cfg.Width), float64(cfg.Height)
	trail := NewRasterCanvas(cfg.Width, cfg.Height)
	st := show.Start(w, h)
	var snow *Snowfield
	if show.cfg.Snow.Enabled {
		snow = NewSnowfield(show.cfg.Snow, w, h, show.Rand())
	}

	clicks := append([]TimedClick(nil), cfg.Clicks...)
	sort.SliceStable(clicks, func(i, j int) bool { return clicks[i].At < clicks[j].At })

	next := 0
	for next < len(at) {
		if err := ctx.Err(); err != nil {
			return err
		}
		for len(clicks) > 0 && clicks[0].At <= st.Elapsed {
			st = show.Click(st, clicks[0].Pos.X, clicks[0].Pos.Y)
			clicks = clicks[1:]
		}
		show.Draw(trail, st)
		for next < len(at) && at[next] <= st.Elapsed {
			frame := image.NewRGBA(trail.Image().Bounds())
			draw.Draw(frame, frame.Bounds(), trail.Image(), image.Point{}, draw.Src)
			if snow != nil {
				snow.Draw(&RasterCanvas{img: frame})
			}
			if err := fn(at[next], frame); err != nil {
				return err
			}
			next++
		}
		st = show.Step(st, tick)
		if snow != nil {
			snow.Update(tick.Seconds())
		}
	}
	return nil
}
