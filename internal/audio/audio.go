// Package audio plays short synthesized cues for game events.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/PekerRian/meowdy/internal/games/flappy"
)

const sampleRate = beep.SampleRate(44100)

// note is one tone of a cue; freq 0 is a rest.
type note struct {
	freq float64
	dur  time.Duration
}

var cues = map[flappy.EventKind][]note{
	flappy.EventJumped:   {{660, 40 * time.Millisecond}},
	flappy.EventScored:   {{880, 60 * time.Millisecond}, {1320, 80 * time.Millisecond}},
	flappy.EventCollided: {{180, 120 * time.Millisecond}, {0, 30 * time.Millisecond}, {140, 150 * time.Millisecond}},
	flappy.EventGameOver: {{440, 150 * time.Millisecond}, {330, 150 * time.Millisecond}, {220, 300 * time.Millisecond}},
}

// Cue builds the streamer for an event kind at the given sample rate.
func Cue(kind flappy.EventKind, rate beep.SampleRate) (beep.Streamer, error) {
	notes, ok := cues[kind]
	if !ok {
		return nil, fmt.Errorf("audio: no cue for %v", kind)
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		if n.freq == 0 {
			parts = append(parts, beep.Silence(rate.N(n.dur)))
			continue
		}
		tone, err := generators.SineTone(rate, n.freq)
		if err != nil {
			return nil, fmt.Errorf("audio: tone %v Hz: %w", n.freq, err)
		}
		parts = append(parts, beep.Take(rate.N(n.dur), tone))
	}
	return beep.Seq(parts...), nil
}

// Player is a flappy.Notifier that mixes event cues to the speaker.
// Until Initialize succeeds every Notify is silent.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewPlayer creates a player. volume is linear in (0, 1]; out of range values use 0.5.
func NewPlayer(volume float64) *Player {
	if volume <= 0 || volume > 1 {
		volume = 0.5
	}
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Initialize opens the audio device. A player that fails to initialize stays silent.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Enabled reports whether the audio device is open.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Close stops playback and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// Notify queues the cue for the event.
func (p *Player) Notify(e flappy.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	cue, err := Cue(e.Kind, sampleRate)
	if err != nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(p.attenuate(cue))
	speaker.Unlock()
}

func (p *Player) attenuate(s beep.Streamer) beep.Streamer {
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(p.volume)}
}
