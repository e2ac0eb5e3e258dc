package core

// Outcome is how a finished run ended.
type Outcome string

const (
	OutcomeNone     Outcome = ""
	OutcomeGameOver Outcome = "gameover"
	OutcomeWin      Outcome = "win"
)

// Finished reports whether the outcome ends a run.
func (o Outcome) Finished() bool {
	return o != OutcomeNone
}

// GameState is the platform-facing summary of a run.
type GameState struct {
	Score    float64 // seconds survived divided by five
	Best     float64
	Phase    string
	Outcome  Outcome
	Chased   bool // chase escaped this run
	GameOver bool // run ended, by loss or win
	Paused   bool
}

// StepResult is what one simulation tick produced.
type StepResult struct {
	State GameState
	Cues  []Cue
}
