package heppi

import (
	"testing"
	"time"
)

// newTestGame returns a mounted, started game without touching the GPU.
func newTestGame(t *testing.T) *Game {
	t.Helper()
	s := newTestShow(t, testConfig())
	g := NewGame(s, RunConfig{})
	g.Mount()
	g.width, g.height = 960, 640
	g.state = s.Start(960, 640)
	g.snow = NewSnowfield(s.cfg.Snow, 960, 640, s.Rand())
	g.started = true
	return g
}

func TestGameMountLifecycle(t *testing.T) {
	g := NewGame(newTestShow(t, testConfig()), RunConfig{})
	if g.Mounted() {
		t.Error("new game should start unmounted")
	}
	g.Mount()
	if !g.Mounted() {
		t.Error("Mount did not mount")
	}
	g.Unmount()
	g.Unmount()
	if g.Mounted() {
		t.Error("Unmount did not unmount")
	}
}

func TestGameDefaults(t *testing.T) {
	g := NewGame(newTestShow(t, testConfig()), RunConfig{})
	if g.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want screenshots", g.ScreenshotDir)
	}
	if !g.SnowEnabled {
		t.Error("snow should follow the config default")
	}
}

func TestGameRestartResetsClock(t *testing.T) {
	g := newTestGame(t)
	for i := 0; i < 120; i++ {
		g.state = g.show.Step(g.state, 10*time.Millisecond)
	}
	g.state = g.show.Click(g.state, 5, 5)
	g.Restart()
	st := g.State()
	if st.Elapsed != 0 || len(st.Bursts) != 0 || st.Mode != ModePhrases {
		t.Errorf("after restart: %v", st)
	}
	if g.snow.Len() != g.show.cfg.Snow.Count {
		t.Errorf("snow pool = %d, want %d", g.snow.Len(), g.show.cfg.Snow.Count)
	}
}

func TestRestartBeforeStartIsNoop(t *testing.T) {
	g := NewGame(newTestShow(t, testConfig()), RunConfig{})
	g.Restart()
	if g.started {
		t.Error("Restart started the game")
	}
}

func TestInjectClickQueue(t *testing.T) {
	g := newTestGame(t)
	g.InjectClick(10, 20)
	g.InjectClick(30, 40)
	if len(g.injectQueue) != 2 {
		t.Fatalf("queue len = %d, want 2", len(g.injectQueue))
	}
	if !g.processInjectedClick() {
		t.Fatal("first click not consumed")
	}
	if len(g.state.Bursts) != 1 || g.state.Bursts[0].Origin != (Vec2{X: 10, Y: 20}) {
		t.Errorf("bursts after first click = %v", g.state.Bursts)
	}
	g.processInjectedClick()
	if g.processInjectedClick() {
		t.Error("empty queue reported a click")
	}
	if len(g.state.Bursts) != 2 {
		t.Errorf("bursts = %d, want 2", len(g.state.Bursts))
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	g := newTestGame(t)
	g.Screenshot("a")
	g.Screenshot("b")
	if len(g.screenshotQueue) != 2 || g.screenshotQueue[0] != "a" || g.screenshotQueue[1] != "b" {
		t.Errorf("queue = %v, want [a b]", g.screenshotQueue)
	}
}
