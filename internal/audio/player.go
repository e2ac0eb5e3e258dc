package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/irr-runner/internal/core"
)

const (
	sampleRate   = beep.SampleRate(44100)
	bufferLength = 50 * time.Millisecond
)

// Player plays cue tones through the system speaker. It implements
// core.Feedback. The speaker is opened on the first audible cue; if that
// fails the player goes silent for the rest of the session.
type Player struct {
	mu      sync.Mutex
	enabled bool
	ready   bool
	failed  bool
	mixer   *beep.Mixer
	log     *log.Logger

	// Overridden in tests.
	open   func(beep.SampleRate, int) error
	attach func(...beep.Streamer)
	add    func(beep.Streamer)
}

// NewPlayer creates a player. A disabled player never touches the speaker.
func NewPlayer(enabled bool, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	p := &Player{
		enabled: enabled,
		mixer:   &beep.Mixer{},
		log:     logger,
		open:    speaker.Init,
		attach:  speaker.Play,
	}
	p.add = func(s beep.Streamer) {
		speaker.Lock()
		p.mixer.Add(s)
		speaker.Unlock()
	}
	return p
}

// SetEnabled toggles sound.
func (p *Player) SetEnabled(on bool) {
	p.mu.Lock()
	p.enabled = on
	p.mu.Unlock()
}

// Enabled reports whether cues are audible.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled && !p.failed
}

// Play implements core.Feedback. It never blocks on audio output.
func (p *Player) Play(c core.Cue) {
	tone, ok := ToneFor(c)
	if !ok {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || p.failed {
		return
	}
	if !p.ready {
		if err := p.open(sampleRate, sampleRate.N(bufferLength)); err != nil {
			p.failed = true
			p.log.Warn("audio unavailable, continuing silently", "err", err)
			return
		}
		p.attach(p.mixer)
		p.ready = true
	}
	p.add(NewStreamer(tone, sampleRate))
}

// Close stops any queued tones.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.ready = false
}

var _ core.Feedback = (*Player)(nil)
