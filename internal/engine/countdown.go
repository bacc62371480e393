package engine

// TimerState is the slice of countdown data the engine steps each tick.
type TimerState struct {
	ID        string
	Remaining int
	Running   bool
	Finished  bool
}

// CountdownStep advances a timer by one tick and reports whether this step
// completed it. A running timer loses one second; reaching zero stops the
// timer and flips Finished. The false-to-true Finished transition is itself
// the dedupe condition for the "timer finished" trigger, so no ledger entry
// is involved. Stopped or already-finished timers pass through unchanged,
// making repeat ticks a no-op.
func CountdownStep(state TimerState) (TimerState, bool) {
	if !state.Running || state.Remaining <= 0 {
		return state, false
	}

	state.Remaining--
	if state.Remaining > 0 {
		return state, false
	}

	state.Remaining = 0
	state.Running = false
	state.Finished = true
	return state, true
}
