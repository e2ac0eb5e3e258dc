package runner

import (
	"sync"

	"github.com/vovakirdan/irr-runner/internal/core"
)

// Intents is the input consumed by one engine step.
type Intents struct {
	Jump     bool // Start/restart a run, or jump (double jump when airborne)
	Mash     int  // Sprint pulses received since the previous step
	FastFall bool // Held fast-fall
}

// InputBuffer collects intents between steps. It is safe to feed from
// a goroutine other than the one stepping the engine.
type InputBuffer struct {
	mu       sync.Mutex
	jump     bool
	mash     int
	fastFall bool
}

// RequestJump records a jump request for the next step.
func (b *InputBuffer) RequestJump() {
	b.mu.Lock()
	b.jump = true
	b.mu.Unlock()
}

// MashPulse records one sprint pulse.
func (b *InputBuffer) MashPulse() {
	b.mu.Lock()
	b.mash++
	b.mu.Unlock()
}

// SetFastFall sets the held fast-fall state. It persists across drains.
func (b *InputBuffer) SetFastFall(held bool) {
	b.mu.Lock()
	b.fastFall = held
	b.mu.Unlock()
}

// Drain returns the buffered intents and clears the edge-triggered ones.
func (b *InputBuffer) Drain() Intents {
	b.mu.Lock()
	defer b.mu.Unlock()

	in := Intents{Jump: b.jump, Mash: b.mash, FastFall: b.fastFall}
	b.jump = false
	b.mash = 0
	return in
}

// Feed buffers the actions of one platform frame. Jump and restart both
// request a jump; fast fall is held for as long as frames carry it.
func (b *InputBuffer) Feed(in core.InputFrame) {
	if in.Has(core.ActionJump) || in.Has(core.ActionRestart) {
		b.RequestJump()
	}
	for range in.Count(core.ActionMash) {
		b.MashPulse()
	}
	b.SetFastFall(in.Has(core.ActionFastFall))
}
