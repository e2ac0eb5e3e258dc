package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/vovakirdan/irr-runner/internal/core"
)

func TestRecorderNoop(t *testing.T) {
	r, err := NewWithMeter(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		r.Play(core.Cue{Kind: core.CueStart})
		r.Play(core.Cue{Kind: core.CueMash, Intensity: 400})
		r.RunFinished(core.OutcomeWin, 10, true)
		r.RunFinished(core.OutcomeGameOver, 2.5, false)
	})
}

func TestRecorderGlobalMeter(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	assert.NotNil(t, r)
}

func TestRecorderSessions(t *testing.T) {
	r, err := NewWithMeter(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	r.SessionOpened()
	r.SessionOpened()
	r.SessionClosed()
	assert.Equal(t, int64(1), r.ActiveSessions())
}

func TestRecorderIsFeedback(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var f core.Feedback = r
	f.Play(core.Cue{Kind: core.CueJump})
}
