package engine

import "testing"

func TestCountdownStep(t *testing.T) {
	t.Parallel()

	state := TimerState{ID: "timer-1", Remaining: 3, Running: true}

	finishes := 0
	for tick := 0; tick < 3; tick++ {
		var finished bool
		state, finished = CountdownStep(state)
		if finished {
			finishes++
		}
	}

	if state.Remaining != 0 || state.Running || !state.Finished {
		t.Fatalf("expected finished timer after three ticks, got %+v", state)
	}
	if finishes != 1 {
		t.Fatalf("expected exactly one finish transition, got %d", finishes)
	}

	// A fourth tick leaves everything unchanged and fires nothing.
	after, finished := CountdownStep(state)
	if finished {
		t.Fatalf("expected no repeat finish transition")
	}
	if after != state {
		t.Fatalf("expected finished timer to be untouched, got %+v", after)
	}
}

func TestCountdownStepPausedTimer(t *testing.T) {
	t.Parallel()

	state := TimerState{ID: "timer-1", Remaining: 10, Running: false}
	after, finished := CountdownStep(state)
	if finished || after != state {
		t.Fatalf("expected paused timer to pass through unchanged, got %+v", after)
	}
}
