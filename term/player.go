// Package term plays a heppi show in a terminal. Each character cell shows
// two vertically stacked pixels through an upper-half block, so a 120×40
// terminal becomes a 120×80 canvas.
package term

import (
	"context"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/heppi/heppi"
	"github.com/rs/zerolog"
)

// Options configures a Player.
type Options struct {
	// FPS is the tick rate. Zero means 30.
	FPS int
	// Snow shows the snow layer; it starts at the show's configured setting
	// when nil.
	Snow *bool
	// OnIgnite is called with the ids of bursts that exploded this tick.
	OnIgnite func(ids []int)
	// Rebuild makes a show fitted to a new terminal size. Without it a
	// resize keeps the current show and only resizes the canvas.
	Rebuild func(cols, rows int) (*heppi.Show, error)
	Logger  zerolog.Logger
}

// FitConfig returns cfg with its pixel-sized settings shrunk for a terminal
// of cols×rows cells.
func FitConfig(cfg heppi.Config, cols, rows int) heppi.Config {
	w, h := float64(cols), float64(rows*2)
	cfg.GlyphSize = max(8, int(math.Min(h*0.35, w/5)))
	cfg.Particles = 40
	cfg.Scale = math.Max(0.15, math.Min(1, h/400))
	cfg.Ambient.RadialPoints = 30
	cfg.Ambient.RadialRadius = math.Max(4, h*0.15)
	cfg.Snow.Count = max(10, cols/3)
	cfg.Snow.Radius = heppi.Range{Min: 0.3, Max: 0.6}
	cfg.Snow.Speed = heppi.Range{Min: 3, Max: 8}
	cfg.Snow.Sway = heppi.Range{Min: 0.5, Max: 2}
	return cfg
}

// Player drives a show on a tcell screen.
type Player struct {
	screen tcell.Screen
	show   *heppi.Show
	state  heppi.State
	snow   *heppi.Snowfield

	trail, frame *Canvas
	snowOn       bool
	pressed      bool
	tick         time.Duration
	onIgnite     func(ids []int)
	rebuild      func(cols, rows int) (*heppi.Show, error)
	log          zerolog.Logger
}

// NewPlayer prepares a player on an initialized screen and starts the show at
// the screen's current size.
func NewPlayer(screen tcell.Screen, show *heppi.Show, opts Options) *Player {
	fps := opts.FPS
	if fps <= 0 {
		fps = 30
	}
	p := &Player{
		screen:   screen,
		show:     show,
		snowOn:   show.Config().Snow.Enabled,
		tick:     time.Second / time.Duration(fps),
		onIgnite: opts.OnIgnite,
		rebuild:  opts.Rebuild,
		log:      opts.Logger,
	}
	if opts.Snow != nil {
		p.snowOn = *opts.Snow
	}
	cols, rows := screen.Size()
	p.trail, p.frame = NewCanvas(cols, rows), NewCanvas(cols, rows)
	w, h := p.trail.Size()
	p.state = show.Start(w, h)
	p.snow = heppi.NewSnowfield(show.Config().Snow, w, h, show.Rand())
	return p
}

// State returns the current show state.
func (p *Player) State() heppi.State {
	return p.state
}

// Canvas returns the canvas of the last frame shown, snow included.
func (p *Player) Canvas() *Canvas {
	return p.frame
}

// Run ticks the show and handles input until the user quits (Esc, q, or
// Ctrl-C) or ctx is done. Both return nil.
func (p *Player) Run(ctx context.Context) error {
	p.screen.EnableMouse()
	p.screen.HideCursor()

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()
	p.log.Info().Dur("tick", p.tick).Msg("terminal show started")
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !p.HandleEvent(ev) {
				p.log.Info().Stringer("state", p.state).Msg("terminal show stopped")
				return nil
			}
		case <-ticker.C:
			p.Tick()
		}
	}
}

// Tick advances the show by one tick and repaints the screen.
func (p *Player) Tick() {
	p.state = p.show.Step(p.state, p.tick)
	if p.onIgnite != nil && len(p.state.Ignited) > 0 {
		p.onIgnite(p.state.Ignited)
	}
	p.show.Draw(p.trail, p.state)
	p.frame.CopyFrom(p.trail)
	if p.snowOn {
		p.snow.Update(p.tick.Seconds())
		p.snow.Draw(p.frame)
	}
	p.frame.Flush(p.screen)
	p.screen.Show()
}

// HandleEvent applies one terminal event and reports whether to keep
// running.
func (p *Player) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		p.screen.Sync()
		p.resize()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'r':
				p.restart()
			case 's':
				p.snowOn = !p.snowOn
			}
		}
	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !p.pressed {
			x, y := ev.Position()
			p.state = p.show.Click(p.state, float64(x)+0.5, float64(y*2)+1)
		}
		p.pressed = down
	}
	return true
}

func (p *Player) resize() {
	cols, rows := p.screen.Size()
	p.trail, p.frame = NewCanvas(cols, rows), NewCanvas(cols, rows)
	w, h := p.trail.Size()
	if p.rebuild != nil {
		show, err := p.rebuild(cols, rows)
		if err != nil {
			p.log.Warn().Err(err).Int("cols", cols).Int("rows", rows).Msg("show not refitted")
		} else {
			p.show = show
			p.snow = heppi.NewSnowfield(show.Config().Snow, w, h, show.Rand())
		}
	}
	p.state = p.show.Resize(p.state, w, h)
	p.snow.Resize(w, h)
	p.log.Debug().Int("cols", cols).Int("rows", rows).Msg("terminal resized")
}

func (p *Player) restart() {
	w, h := p.trail.Size()
	p.state = p.show.Start(w, h)
	p.trail.Clear()
	p.snow.Resize(w, h)
	p.log.Info().Msg("show restarted")
}

// Run opens the terminal, builds a show for its size, plays it until the
// user quits or ctx is done, and restores the terminal. Unless opts.Rebuild
// is set, build also refits the show on every resize.
func Run(ctx context.Context, build func(cols, rows int) (*heppi.Show, error), opts Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	show, err := build(screen.Size())
	if err != nil {
		return err
	}
	if opts.Rebuild == nil {
		opts.Rebuild = build
	}
	return NewPlayer(screen, show, opts).Run(ctx)
}
