package audio

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
)

func TestFrequencyScale(t *testing.T) {
	tests := []struct {
		id   int
		want float64
	}{
		{0, 440},
		{3, 440 * math.Pow(2, 7.0/12)},
		{5, 880},
		{10, 440},
		{-5, 880},
	}
	for _, tt := range tests {
		if got := Frequency(tt.id); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Frequency(%d) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestPopDecaysToSilence(t *testing.T) {
	s, err := Pop(7)
	if err != nil {
		t.Fatalf("Pop: %v", err)
	}
	want := sampleRate.N(popLength)
	buf := make([][2]float64, 512)
	total := 0
	var last float64
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			v := buf[i][0]
			if v < -1 || v > 1 {
				t.Fatalf("sample %d out of range: %v", total+i, v)
			}
		}
		if n > 0 {
			last = math.Abs(buf[n-1][0])
		}
		total += n
		if !ok || n == 0 {
			break
		}
	}
	if total != want {
		t.Errorf("streamed %d samples, want %d", total, want)
	}
	if last > 0.01 {
		t.Errorf("last sample = %v, want near silence", last)
	}
	if err := s.Err(); err != nil {
		t.Errorf("Err() = %v", err)
	}
}

func TestUninitializedPlayerIsSilent(t *testing.T) {
	p := NewPlayer(zerolog.Nop())
	p.Ignite([]int{1, 2, 3})
	if n := p.mixer.Len(); n != 0 {
		t.Errorf("mixer has %d streamers, want 0", n)
	}
	p.Close()
}
