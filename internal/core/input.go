package core

// Action is a player intent, independent of the key that produced it.
type Action int

const (
	ActionNone           Action = iota
	ActionNextWave       // start the next wave
	ActionUpgradeDefense // buy a defender upgrade
	ActionUpgradeTower   // buy a tower upgrade
	ActionRestart        // new run after game over
	ActionPause          // toggle pause
)

var actionNames = [...]string{
	ActionNone:           "none",
	ActionNextWave:       "next-wave",
	ActionUpgradeDefense: "upgrade-defense",
	ActionUpgradeTower:   "upgrade-tower",
	ActionRestart:        "restart",
	ActionPause:          "pause",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// InputFrame is the set of actions triggered during one tick. The zero value
// is empty and frames copy by value.
type InputFrame struct {
	bits uint32
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks an action as triggered.
func (f *InputFrame) Set(a Action) {
	if a > ActionNone && a < 32 {
		f.bits |= 1 << a
	}
}

// Has reports whether a was triggered.
func (f InputFrame) Has(a Action) bool {
	return a > ActionNone && a < 32 && f.bits&(1<<a) != 0
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() { f.bits = 0 }
