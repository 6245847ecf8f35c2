// Package audio plays a short pop each time a firework explodes.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"
)

const (
	sampleRate = beep.SampleRate(44100)
	popLength  = 120 * time.Millisecond
	// maxVoices bounds how many pops overlap; extra ignitions are dropped.
	maxVoices = 12
)

// pentatonic semitone offsets above the base note.
var pentatonic = [...]int{0, 2, 4, 7, 9}

// Frequency maps a burst id to a note of a two-octave major pentatonic scale
// starting at A4.
func Frequency(id int) float64 {
	if id < 0 {
		id = -id
	}
	i := id % (2 * len(pentatonic))
	semis := pentatonic[i%len(pentatonic)] + 12*(i/len(pentatonic))
	return 440 * math.Pow(2, float64(semis)/12)
}

// Pop returns the streamer of one pop: a sine at the burst's note with a
// quadratic decay, popLength long.
func Pop(id int) (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, Frequency(id))
	if err != nil {
		return nil, err
	}
	n := sampleRate.N(popLength)
	return &effects.Volume{
		Streamer: &decay{s: beep.Take(n, sine), n: n},
		Base:     2,
		Volume:   -2,
	}, nil
}

// decay fades its streamer to silence over n samples.
type decay struct {
	s   beep.Streamer
	n   int
	pos int
}

func (d *decay) Stream(samples [][2]float64) (int, bool) {
	n, ok := d.s.Stream(samples)
	for i := range samples[:n] {
		k := 1 - float64(d.pos)/float64(d.n)
		k *= k
		samples[i][0] *= k
		samples[i][1] *= k
		d.pos++
	}
	return n, ok
}

func (d *decay) Err() error {
	return d.s.Err()
}

// Player mixes pops onto the speaker. A Player whose Init failed, or was
// never called, stays silent.
type Player struct {
	mu    sync.Mutex
	mixer *beep.Mixer
	ready bool
	log   zerolog.Logger
}

// NewPlayer returns a silent player; call Init to open the speaker.
func NewPlayer(log zerolog.Logger) *Player {
	return &Player{mixer: &beep.Mixer{}, log: log}
}

// Init opens the speaker. An error leaves the player silent.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ready {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.ready = true
	p.log.Debug().Int("rate", int(sampleRate)).Msg("speaker ready")
	return nil
}

// Ignite queues one pop per id. It matches the OnIgnite callbacks of the
// window and terminal players.
func (p *Player) Ignite(ids []int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return
	}
	speaker.Lock()
	defer speaker.Unlock()
	for _, id := range ids {
		if p.mixer.Len() >= maxVoices {
			return
		}
		s, err := Pop(id)
		if err != nil {
			p.log.Warn().Err(err).Int("id", id).Msg("pop skipped")
			continue
		}
		p.mixer.Add(s)
	}
}

// Close stops all pops and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.ready = false
}
