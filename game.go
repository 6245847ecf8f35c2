package heppi

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// Debug logs per-frame timings at debug level.
	Debug bool
	// ScreenshotDir receives PNGs queued with Game.Screenshot or the S key.
	ScreenshotDir string
	// Script, when set, drives the game from a step script.
	Script *Script
	// OnIgnite is called with the ids of bursts that exploded this tick.
	OnIgnite func(ids []int)
	Logger   zerolog.Logger
}

// Game drives a Show on Ebitengine's loop. It implements ebiten.Game: each
// Update advances the show clock by one tick, each Draw renders the current
// state, and Layout tracks the window size.
//
// The show is drawn onto an offscreen trail layer that persists between
// frames, so fading it (instead of clearing) leaves streaks. Snow is drawn on
// top of the trail layer each frame and never streaks.
type Game struct {
	show  *Show
	state State
	snow  *Snowfield

	// ClearColor is painted behind everything each frame.
	ClearColor Color
	// SnowEnabled toggles the snow layer at runtime.
	SnowEnabled bool

	trail  *ebiten.Image
	canvas *ImageCanvas
	width  int
	height int

	mounted bool
	started bool

	fps           *fpsOverlay
	debug         bool
	ScreenshotDir string

	screenshotQueue []string
	injectQueue     []Vec2
	script          *Script
	onIgnite        func(ids []int)

	log zerolog.Logger
}

// NewGame wraps show. The game starts unmounted; call Mount before handing it
// to ebiten.RunGame, or use Run.
func NewGame(show *Show, cfg RunConfig) *Game {
	g := &Game{
		show:          show,
		ClearColor:    Color{R: 0x0a / 255.0, G: 0x0e / 255.0, B: 0x13 / 255.0, A: 1},
		SnowEnabled:   show.cfg.Snow.Enabled,
		debug:         cfg.Debug,
		ScreenshotDir: cfg.ScreenshotDir,
		script:        cfg.Script,
		onIgnite:      cfg.OnIgnite,
		log:           cfg.Logger,
	}
	if g.ScreenshotDir == "" {
		g.ScreenshotDir = "screenshots"
	}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}
	return g
}

// Run opens a window and runs show until the window closes or the game is
// unmounted.
func Run(show *Show, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 960
	}
	if cfg.Height <= 0 {
		cfg.Height = 640
	}
	if cfg.Title == "" {
		cfg.Title = "Heppi"
	}
	g := NewGame(show, cfg)
	g.Mount()
	defer g.Unmount()

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}

// Mount arms the game. The clock starts on the first Layout that reports a
// usable size; until then Update and Draw do nothing.
func (g *Game) Mount() {
	g.mounted = true
	g.log.Debug().Msg("game mounted")
}

// Unmount stops the tick loop: the next Update returns ebiten.Termination.
func (g *Game) Unmount() {
	if !g.mounted {
		return
	}
	g.mounted = false
	g.log.Debug().Msg("game unmounted")
}

// Mounted reports whether the game is accepting ticks.
func (g *Game) Mounted() bool {
	return g.mounted
}

// Restart resets the show clock, mode, bursts, and snow as if freshly
// mounted.
func (g *Game) Restart() {
	if !g.started {
		return
	}
	g.state = g.show.Start(float64(g.width), float64(g.height))
	g.snow.Resize(float64(g.width), float64(g.height))
	if g.trail != nil {
		g.trail.Clear()
	}
	g.log.Info().Msg("show restarted")
}

// State returns the current show state.
func (g *Game) State() State {
	return g.state
}

// Update advances the show by one tick.
func (g *Game) Update() error {
	if !g.mounted {
		return ebiten.Termination
	}
	if !g.started {
		return nil
	}
	t0 := time.Now()

	g.handleKeys()
	if !g.mounted {
		return ebiten.Termination
	}
	if g.script != nil {
		g.script.step(g)
	}
	g.processClicks()

	dt := time.Second / time.Duration(ebiten.TPS())
	g.state = g.show.Step(g.state, dt)
	if g.SnowEnabled {
		g.snow.Update(dt.Seconds())
	}
	if g.onIgnite != nil && len(g.state.Ignited) > 0 {
		g.onIgnite(g.state.Ignited)
	}
	if g.fps != nil {
		g.fps.update(dt.Seconds(), g.state)
	}
	if g.debug {
		g.debugLog(frameStats{step: time.Since(t0), state: g.state})
	}
	return nil
}

// handleKeys maps R to restart, S to a screenshot, F to the FPS overlay and
// Escape to unmount.
func (g *Game) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.Restart()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.Screenshot("key")
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		if g.fps == nil {
			g.fps = newFPSOverlay()
		} else {
			g.fps = nil
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.Unmount()
	}
}

// processClicks turns one injected click, or else real mouse and touch
// presses, into click bursts.
func (g *Game) processClicks() {
	if g.processInjectedClick() {
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.state = g.show.Click(g.state, float64(x), float64(y))
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		g.state = g.show.Click(g.state, float64(x), float64(y))
	}
}

// Draw renders the current frame.
func (g *Game) Draw(screen *ebiten.Image) {
	if !g.started {
		return
	}
	var t0 time.Time
	if g.debug {
		t0 = time.Now()
	}

	g.show.Draw(g.canvas, g.state)

	screen.Fill(g.ClearColor.toRGBA())
	screen.DrawImage(g.trail, nil)
	if g.SnowEnabled {
		g.snow.Draw(NewImageCanvas(screen))
	}
	if g.fps != nil {
		g.fps.draw(screen)
	}
	g.flushScreenshots(screen)

	if g.debug {
		g.debugLog(frameStats{draw: time.Since(t0), state: g.state})
	}
}

// Layout keeps the logical screen equal to the window size and resizes the
// show when it changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return max(outsideWidth, 1), max(outsideHeight, 1)
	}
	if g.mounted && (outsideWidth != g.width || outsideHeight != g.height || !g.started) {
		g.resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// resize recreates the trail layer and snow pool for a new size and, on the
// first call, starts the show clock.
func (g *Game) resize(w, h int) {
	g.width, g.height = w, h
	if g.trail != nil {
		g.trail.Deallocate()
	}
	g.trail = ebiten.NewImage(w, h)
	g.canvas = NewImageCanvas(g.trail)

	fw, fh := float64(w), float64(h)
	if !g.started {
		g.state = g.show.Start(fw, fh)
		g.snow = NewSnowfield(g.show.cfg.Snow, fw, fh, g.show.Rand())
		g.started = true
		return
	}
	g.state = g.show.Resize(g.state, fw, fh)
	g.snow.Resize(fw, fh)
}
