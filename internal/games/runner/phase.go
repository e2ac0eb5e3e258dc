package runner

// Phase is the top-level run state.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseRunning
	PhaseChase
	PhaseGameOver
	PhaseWin
)

// String returns the phase name used in logs and run history.
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseRunning:
		return "running"
	case PhaseChase:
		return "chase"
	case PhaseGameOver:
		return "gameover"
	case PhaseWin:
		return "win"
	default:
		return "unknown"
	}
}

// Terminal reports whether the run has ended.
func (p Phase) Terminal() bool {
	return p == PhaseGameOver || p == PhaseWin
}

// Active reports whether the simulation advances the world in this phase.
func (p Phase) Active() bool {
	return p == PhaseRunning || p == PhaseChase
}

// ChasePhase is the lifecycle of the once-per-run chase.
// Phases only move forward within a run; a reset returns to ChaseDormant.
type ChasePhase int

const (
	ChaseDormant     ChasePhase = iota // Threshold not reached yet
	ChasePending                       // Threshold reached, waiting for the lane to clear
	ChaseApproaching                   // Chaser closing in, mashing counts
	ChaseTripped                       // Chaser fell, trip animation playing
	ChaseReturning                     // Back to running, camera easing to the default lane
	ChaseDone                          // Chase happened this run
)

func (c ChasePhase) String() string {
	switch c {
	case ChaseDormant:
		return "dormant"
	case ChasePending:
		return "pending"
	case ChaseApproaching:
		return "approaching"
	case ChaseTripped:
		return "tripped"
	case ChaseReturning:
		return "returning"
	case ChaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// InSession reports whether the run phase is PhaseChase for this chase phase.
func (c ChasePhase) InSession() bool {
	return c == ChaseApproaching || c == ChaseTripped
}

// Triggered reports whether the chase has completed for this run.
func (c ChasePhase) Triggered() bool {
	return c == ChaseReturning || c == ChaseDone
}

// BlocksSpawns reports whether hazard spawning is paused.
func (c ChasePhase) BlocksSpawns() bool {
	return c == ChasePending || c == ChaseReturning
}
