package cmd

import (
	"testing"
	"time"

	"github.com/heppi/heppi"
)

func TestFrameName(t *testing.T) {
	tests := []struct {
		out      string
		i, count int
		want     string
	}{
		{"frame.png", 0, 1, "frame.png"},
		{"frame.png", 0, 3, "frame-000.png"},
		{"out/f.png", 12, 30, "out/f-012.png"},
		{"noext", 1, 2, "noext-001"},
	}
	for _, tt := range tests {
		if got := frameName(tt.out, tt.i, tt.count); got != tt.want {
			t.Errorf("frameName(%q, %d, %d) = %q, want %q", tt.out, tt.i, tt.count, got, tt.want)
		}
	}
}

func TestParseClicks(t *testing.T) {
	got, err := parseClicks([]string{"2.5s@480,320", "10s@ 1, 2", "2.5s@10,20"})
	if err != nil {
		t.Fatalf("parseClicks: %v", err)
	}
	want := []heppi.TimedClick{
		{At: 2500 * time.Millisecond, Pos: heppi.Vec2{X: 480, Y: 320}},
		{At: 10 * time.Second, Pos: heppi.Vec2{X: 1, Y: 2}},
		{At: 2500 * time.Millisecond, Pos: heppi.Vec2{X: 10, Y: 20}},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d clicks, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("click %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	for _, bad := range []string{"2s", "2s@1", "soon@1,2", "2s@x,2", "2s@1,y"} {
		if _, err := parseClicks([]string{bad}); err == nil {
			t.Errorf("parseClicks(%q) succeeded, want error", bad)
		}
	}
}
