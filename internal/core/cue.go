package core

// CueKind identifies a one-shot feedback event emitted by the engine.
type CueKind int

const (
	CueStart CueKind = iota
	CueJump
	CueDoubleJump
	CueMash
	CueBirdClimb
	CueEscape
	CueGameOver
	CueWin
)

var cueNames = [...]string{
	CueStart:      "start",
	CueJump:       "jump",
	CueDoubleJump: "double_jump",
	CueMash:       "mash",
	CueBirdClimb:  "bird_climb",
	CueEscape:     "escape",
	CueGameOver:   "gameover",
	CueWin:        "win",
}

func (k CueKind) String() string {
	if int(k) >= 0 && int(k) < len(cueNames) {
		return cueNames[k]
	}
	return "unknown"
}

// Cue is a feedback event. Intensity carries the mash level for CueMash
// and is zero otherwise.
type Cue struct {
	Kind      CueKind
	Intensity float64
}

// Feedback receives cues from the engine. Implementations must not block.
type Feedback interface {
	Play(c Cue)
}

// NopFeedback discards every cue.
type NopFeedback struct{}

// Play implements Feedback.
func (NopFeedback) Play(Cue) {}

// MultiFeedback fans a cue out to several receivers.
type MultiFeedback []Feedback

// Play implements Feedback.
func (m MultiFeedback) Play(c Cue) {
	for _, f := range m {
		if f != nil {
			f.Play(c)
		}
	}
}
