package heppi

import (
	"testing"
	"time"
)

func TestScheduleAt(t *testing.T) {
	s := Schedule{Start: 3 * time.Second, Window: time.Second, Count: 3, AmbientAfter: 2}
	tests := []struct {
		t     time.Duration
		mode  Mode
		index int
	}{
		{0, ModeWaiting, 0},
		{2999 * time.Millisecond, ModeWaiting, 0},
		{3 * time.Second, ModePhrases, 0},
		{3500 * time.Millisecond, ModePhrases, 0},
		{4 * time.Second, ModePhrases, 1},
		{5999 * time.Millisecond, ModePhrases, 2},
		{6 * time.Second, ModePhrases, 0},
		{8500 * time.Millisecond, ModePhrases, 2},
		{9 * time.Second, ModeAmbient, 0},
		{time.Hour, ModeAmbient, 0},
	}
	for _, tt := range tests {
		mode, idx := s.At(tt.t)
		if mode != tt.mode || (mode == ModePhrases && idx != tt.index) {
			t.Errorf("At(%v) = %v, %d; want %v, %d", tt.t, mode, idx, tt.mode, tt.index)
		}
	}
}

func TestSchedulePeriodic(t *testing.T) {
	s := Schedule{Start: time.Second, Window: 700 * time.Millisecond, Count: 4}
	period := s.Period()
	for k := time.Duration(0); k < 40; k++ {
		at := s.Start + k*37*time.Millisecond
		_, a := s.At(at)
		_, b := s.At(at + 3*period)
		if a != b {
			t.Fatalf("index at %v = %d, at +3 periods = %d", at, a, b)
		}
	}
}

func TestScheduleLoopsForeverWithoutAmbient(t *testing.T) {
	s := Schedule{Window: time.Second, Count: 2}
	if _, ok := s.AmbientAt(); ok {
		t.Error("AmbientAt reported a start with AmbientAfter = 0")
	}
	if mode, _ := s.At(1000 * time.Hour); mode != ModePhrases {
		t.Errorf("mode after 1000h = %v, want phrases", mode)
	}
}

func TestScheduleWindowTime(t *testing.T) {
	s := Schedule{Start: time.Second, Window: 400 * time.Millisecond, Count: 2}
	if got := s.WindowTime(500 * time.Millisecond); got != 0 {
		t.Errorf("WindowTime before start = %v, want 0", got)
	}
	if got := s.WindowTime(1900 * time.Millisecond); got != 100*time.Millisecond {
		t.Errorf("WindowTime(1.9s) = %v, want 100ms", got)
	}
}

func TestModeString(t *testing.T) {
	for m, want := range map[Mode]string{ModeWaiting: "waiting", ModePhrases: "phrases", ModeAmbient: "ambient", Mode(9): "unknown"} {
		if got := m.String(); got != want {
			t.Errorf("Mode(%d).String() = %q, want %q", m, got, want)
		}
	}
}
