package heppi

import "time"

// Mode is the phase of a show.
type Mode uint8

const (
	ModeWaiting Mode = iota // before the first phrase
	ModePhrases             // cycling through the phrase list
	ModeAmbient             // endless radial fireworks; terminal for a run
)

func (m Mode) String() string {
	switch m {
	case ModeWaiting:
		return "waiting"
	case ModePhrases:
		return "phrases"
	case ModeAmbient:
		return "ambient"
	default:
		return "unknown"
	}
}

// Schedule maps show time onto phrase windows.
type Schedule struct {
	Start        time.Duration
	Window       time.Duration
	Count        int
	AmbientAfter int
}

// NewSchedule derives the schedule from a configuration.
func NewSchedule(cfg Config) Schedule {
	return Schedule{
		Start:        cfg.StartDelay,
		Window:       cfg.Window,
		Count:        len(cfg.Phrases),
		AmbientAfter: cfg.AmbientAfter,
	}
}

// Period is the length of one full pass over the phrase list.
func (s Schedule) Period() time.Duration {
	return s.Window * time.Duration(s.Count)
}

// AmbientAt is the show time at which ambient mode begins, and false when
// phrases loop forever.
func (s Schedule) AmbientAt() (time.Duration, bool) {
	if s.AmbientAfter <= 0 {
		return 0, false
	}
	return s.Start + s.Period()*time.Duration(s.AmbientAfter), true
}

// At returns the mode and active phrase index at show time t. The index is
// only meaningful in ModePhrases.
func (s Schedule) At(t time.Duration) (Mode, int) {
	if t < s.Start || s.Count == 0 || s.Window <= 0 {
		return ModeWaiting, 0
	}
	if at, ok := s.AmbientAt(); ok && t >= at {
		return ModeAmbient, 0
	}
	rel := t - s.Start
	return ModePhrases, int(rel/s.Window) % s.Count
}

// WindowTime returns the time elapsed inside the current phrase window.
func (s Schedule) WindowTime(t time.Duration) time.Duration {
	if t < s.Start || s.Window <= 0 {
		return 0
	}
	return (t - s.Start) % s.Window
}
