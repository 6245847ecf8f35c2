package heppi

import "testing"

func TestLoadScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "click", "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "snow"},
			{"action": "quit"}
		]
	}`)
	s, err := LoadScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(s.steps))
	}
	if s.steps[1].Action != "click" || s.steps[1].X != 100 || s.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if s.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
}

func TestLoadScriptErrors(t *testing.T) {
	tests := map[string]string{
		"invalid json":   `not json`,
		"empty":          `{"steps": []}`,
		"unknown action": `{"steps": [{"action": "dance"}]}`,
	}
	for name, data := range tests {
		if _, err := LoadScript([]byte(data)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestScriptStepClickWaitsForQueue(t *testing.T) {
	g := newTestGame(t)
	s, err := LoadScript([]byte(`{"steps": [
		{"action": "click", "x": 50, "y": 60},
		{"action": "screenshot", "label": "after"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	s.step(g)
	if len(g.injectQueue) != 1 {
		t.Fatalf("queue = %d, want 1 after click step", len(g.injectQueue))
	}
	// The pending click blocks the script.
	s.step(g)
	if len(g.screenshotQueue) != 0 {
		t.Error("screenshot taken before the click drained")
	}
	g.processInjectedClick()
	s.step(g)
	if len(g.screenshotQueue) != 1 || g.screenshotQueue[0] != "after" {
		t.Errorf("screenshot queue = %v, want [after]", g.screenshotQueue)
	}
	if !s.Done() {
		t.Error("script should be done")
	}
}

func TestScriptWaitFrames(t *testing.T) {
	g := newTestGame(t)
	s, _ := LoadScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "restart"}
	]}`))
	for i := 0; i < 3; i++ {
		s.step(g)
		if s.Done() {
			t.Fatalf("done after %d frames of a 3-frame wait", i+1)
		}
	}
	s.step(g)
	if !s.Done() {
		t.Error("script should be done after the restart step")
	}
}

func TestScriptSnowAndQuit(t *testing.T) {
	g := newTestGame(t)
	s, _ := LoadScript([]byte(`{"steps": [{"action": "snow"}, {"action": "quit"}]}`))
	s.step(g)
	if g.SnowEnabled {
		t.Error("snow step did not toggle snow off")
	}
	s.step(g)
	if g.Mounted() {
		t.Error("quit step did not unmount")
	}
	if !s.Done() {
		t.Error("script should be done")
	}
}
