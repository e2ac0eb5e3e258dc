package core

// Action is a semantic intent decoded from key presses.
type Action int

const (
	ActionNone Action = iota
	ActionJump
	ActionMash     // sprint pulse while chased
	ActionFastFall // held
	ActionRestart
	ActionPause
	ActionQuit

	actionCount
)

var actionNames = [actionCount]string{
	ActionNone:     "None",
	ActionJump:     "Jump",
	ActionMash:     "Mash",
	ActionFastFall: "FastFall",
	ActionRestart:  "Restart",
	ActionPause:    "Pause",
	ActionQuit:     "Quit",
}

func (a Action) valid() bool {
	return a >= 0 && a < actionCount
}

// String returns the action name.
func (a Action) String() string {
	if !a.valid() {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame counts the actions collected between two ticks, so several
// presses inside one tick are not collapsed. The zero value is empty and
// ready to use; copying a frame copies its counts.
type InputFrame struct {
	counts [actionCount]int
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set records one occurrence of a.
func (f *InputFrame) Set(a Action) {
	f.Add(a, 1)
}

// Add records n occurrences of a. Non-positive n and unknown actions are ignored.
func (f *InputFrame) Add(a Action, n int) {
	if n > 0 && a.valid() {
		f.counts[a] += n
	}
}

// Has reports whether a occurred at least once.
func (f InputFrame) Has(a Action) bool {
	return f.Count(a) > 0
}

// Count returns how many times a occurred.
func (f InputFrame) Count(a Action) int {
	if !a.valid() {
		return 0
	}
	return f.counts[a]
}

// Empty reports whether no action was recorded.
func (f InputFrame) Empty() bool {
	return f.counts == [actionCount]int{}
}

// Clear drops every recorded action.
func (f *InputFrame) Clear() {
	f.counts = [actionCount]int{}
}

// Clone returns an independent copy.
func (f InputFrame) Clone() InputFrame {
	return f
}
