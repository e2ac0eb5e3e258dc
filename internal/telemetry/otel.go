// Package telemetry records run metrics through OpenTelemetry. Without a
// configured global provider every instrument is a no-op.
package telemetry

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/vovakirdan/irr-runner/internal/core"
)

const instrumentationName = "github.com/vovakirdan/irr-runner/internal/telemetry"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Recorder counts runs, cues and sessions. It implements core.Feedback so
// it can sit next to audio on the engine's cue stream.
type Recorder struct {
	started  metric.Int64Counter
	finished metric.Int64Counter
	cues     metric.Int64Counter
	score    metric.Float64Histogram
	sessions metric.Int64ObservableGauge

	active atomic.Int64
}

// New creates a recorder on the global meter provider.
func New() (*Recorder, error) {
	return NewWithMeter(meter())
}

// NewWithMeter creates a recorder on m.
func NewWithMeter(m metric.Meter) (*Recorder, error) {
	r := &Recorder{}
	var err error

	r.started, err = m.Int64Counter(
		"runner.runs.started",
		metric.WithDescription("Runs started"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating started counter: %w", err)
	}

	r.finished, err = m.Int64Counter(
		"runner.runs.finished",
		metric.WithDescription("Runs finished by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating finished counter: %w", err)
	}

	r.cues, err = m.Int64Counter(
		"runner.cues",
		metric.WithDescription("Feedback cues emitted by the engine"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating cue counter: %w", err)
	}

	r.score, err = m.Float64Histogram(
		"runner.run.score",
		metric.WithDescription("Final snapped score per run"),
		metric.WithUnit("%"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating score histogram: %w", err)
	}

	r.sessions, err = m.Int64ObservableGauge(
		"runner.sessions.active",
		metric.WithDescription("Connected play sessions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sessions gauge: %w", err)
	}
	_, err = m.RegisterCallback(
		func(_ context.Context, o metric.Observer) error {
			o.ObserveInt64(r.sessions, r.active.Load())
			return nil
		},
		r.sessions,
	)
	if err != nil {
		return nil, fmt.Errorf("registering sessions callback: %w", err)
	}

	return r, nil
}

// Play implements core.Feedback.
func (r *Recorder) Play(c core.Cue) {
	ctx := context.Background()
	if c.Kind == core.CueStart {
		r.started.Add(ctx, 1)
	}
	r.cues.Add(ctx, 1, metric.WithAttributes(attribute.String("cue", c.Kind.String())))
}

// RunFinished records the end of a run.
func (r *Recorder) RunFinished(outcome core.Outcome, score float64, chased bool) {
	ctx := context.Background()
	attrs := metric.WithAttributes(
		attribute.String("outcome", string(outcome)),
		attribute.Bool("chased", chased),
	)
	r.finished.Add(ctx, 1, attrs)
	r.score.Record(ctx, score, attrs)
}

// SessionOpened marks a play session as connected.
func (r *Recorder) SessionOpened() { r.active.Add(1) }

// SessionClosed marks a play session as gone.
func (r *Recorder) SessionClosed() { r.active.Add(-1) }

// ActiveSessions returns the number of connected sessions.
func (r *Recorder) ActiveSessions() int64 { return r.active.Load() }
