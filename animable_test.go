package arbor

import (
	"math"
	"testing"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/arborgfx/arbor/xform"
)

func float32Near(t *testing.T, got, want float32) {
	t.Helper()
	if math.Abs(float64(got-want)) > 1e-5 {
		t.Fatalf("got %v, want %v", got, want)
	}
}

// recordingAnimable attaches an animable that records its lifecycle and
// step times.
func recordingAnimable(t *testing.T, s *Node, g *AnimableGroup) (*Animable, *[]string, *[]float32) {
	t.Helper()
	events := &[]string{}
	times := &[]float32{}
	a := NewAnimable(NewNode(s, "animated"), g)
	a.OnAnimationStarted = func() { *events = append(*events, "started") }
	a.OnAnimationPaused = func() { *events = append(*events, "paused") }
	a.OnAnimationResumed = func() { *events = append(*events, "resumed") }
	a.OnAnimationStopped = func() { *events = append(*events, "stopped") }
	a.OnAnimationStep = func(time, _ float32) { *times = append(*times, time) }
	return a, events, times
}

func assertEvents(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events = %v, want %v", got, want)
		}
	}
}

func TestAnimableDefaults(t *testing.T) {
	s := NewScene(xform.Matrix)
	var g AnimableGroup
	a := NewAnimable(NewNode(s, "n"), &g)

	if a.State() != AnimationStopped {
		t.Error("fresh animable should be stopped")
	}
	if a.Duration() != 0 || a.Repeated() || a.RepeatCount() != 0 {
		t.Error("duration/repeat defaults wrong")
	}
	if g.Len() != 1 || g.At(0) != a {
		t.Error("animable should be in its group")
	}
}

func TestAnimationLifecycle(t *testing.T) {
	s := NewScene(xform.Matrix)
	var g AnimableGroup
	a, events, times := recordingAnimable(t, s, &g)
	a.SetDuration(10)

	a.SetState(AnimationRunning)
	if g.RunningCount() != 0 {
		t.Error("state change applies on the next step, not immediately")
	}

	g.Step(0, 0)
	if g.RunningCount() != 1 {
		t.Errorf("RunningCount = %d, want 1", g.RunningCount())
	}
	g.Step(1, 1)
	g.Step(2.5, 1.5)

	a.SetState(AnimationStopped)
	g.Step(3, 0.5)
	if g.RunningCount() != 0 {
		t.Errorf("RunningCount = %d after stop, want 0", g.RunningCount())
	}

	assertEvents(t, *events, "started", "stopped")
	if len(*times) != 3 {
		t.Fatalf("steps = %v, want 3 entries", *times)
	}
	float32Near(t, (*times)[0], 0)
	float32Near(t, (*times)[1], 1)
	float32Near(t, (*times)[2], 2.5)
}

func TestPauseExcludesTimeFromAnimation(t *testing.T) {
	s := NewScene(xform.Matrix)
	var g AnimableGroup
	a, events, times := recordingAnimable(t, s, &g)
	a.SetDuration(100)

	a.SetState(AnimationRunning)
	g.Step(0, 0)
	g.Step(2, 2) // animation time 2

	a.SetState(AnimationPaused)
	g.Step(3, 1)

	a.SetState(AnimationRunning)
	g.Step(7, 4) // paused from 3 to 7: animation time resumes at 2

	assertEvents(t, *events, "started", "paused", "resumed")
	last := (*times)[len(*times)-1]
	float32Near(t, last, 2)
}

func TestStopResetsToBeginning(t *testing.T) {
	s := NewScene(xform.Matrix)
	var g AnimableGroup
	a, _, times := recordingAnimable(t, s, &g)
	a.SetDuration(100)

	a.SetState(AnimationRunning)
	g.Step(0, 0)
	g.Step(5, 5)
	a.SetState(AnimationStopped)
	g.Step(6, 1)

	a.SetState(AnimationRunning)
	g.Step(10, 4)
	// Restart counts from the restart step, not from the original start.
	float32Near(t, (*times)[len(*times)-1], 0)
}

func TestPausingStoppedAnimationIgnored(t *testing.T) {
	s := NewScene(xform.Matrix)
	var g AnimableGroup
	a, events, _ := recordingAnimable(t, s, &g)

	a.SetState(AnimationPaused)
	g.Step(0, 0)
	if a.State() != AnimationStopped {
		t.Error("pausing a stopped animation should be ignored")
	}
	assertEvents(t, *events)
}

func TestDurationElapsesAndStops(t *testing.T) {
	s := NewScene(xform.Matrix)
	var g AnimableGroup
	a, events, times := recordingAnimable(t, s, &g)
	a.SetDuration(2)

	a.SetState(AnimationRunning)
	g.Step(0, 0)
	g.Step(1, 1)
	g.Step(2.5, 1.5) // past the duration

	assertEvents(t, *events, "started", "stopped")
	if a.State() != AnimationStopped {
		t.Error("animation should be stopped after its duration")
	}
	if g.RunningCount() != 0 {
		t.Error("RunningCount should drop to 0")
	}
	// The out-of-range step does not reach the callback.
	if len(*times) != 2 {
		t.Errorf("steps = %v, want exactly 2", *times)
	}
}

func TestRepeatedAnimationWraps(t *testing.T) {
	s := NewScene(xform.Matrix)
	var g AnimableGroup
	a, _, times := recordingAnimable(t, s, &g)
	a.SetDuration(1)
	a.SetRepeated(true)

	a.SetState(AnimationRunning)
	g.Step(0, 0)
	g.Step(0.5, 0.5)
	g.Step(1.25, 0.75) // wraps into the second play

	float32Near(t, (*times)[len(*times)-1], 0.25)
	if a.State() != AnimationRunning {
		t.Error("repeated animation should keep running")
	}
}

func TestRepeatCountLimitsPlays(t *testing.T) {
	s := NewScene(xform.Matrix)
	var g AnimableGroup
	a, events, _ := recordingAnimable(t, s, &g)
	a.SetDuration(1)
	a.SetRepeated(true)
	a.SetRepeatCount(2)

	a.SetState(AnimationRunning)
	g.Step(0, 0)
	g.Step(1.5, 1.5) // second play
	g.Step(2.5, 1)   // second play elapsed: stop

	assertEvents(t, *events, "started", "stopped")
	if a.State() != AnimationStopped {
		t.Error("animation should stop after the repeat count")
	}
}

func TestInfiniteDurationRunsUnbounded(t *testing.T) {
	s := NewScene(xform.Matrix)
	var g AnimableGroup
	a, _, times := recordingAnimable(t, s, &g)

	a.SetState(AnimationRunning)
	g.Step(0, 0)
	g.Step(1000, 1000)
	float32Near(t, (*times)[len(*times)-1], 1000)
	if a.State() != AnimationRunning {
		t.Error("infinite animation should keep running")
	}
}

func TestNegativeDurationPanics(t *testing.T) {
	s := NewScene(xform.Matrix)
	a := NewAnimable(NewNode(s, "n"), nil)
	defer func() {
		if recover() == nil {
			t.Fatal("negative duration should panic")
		}
	}()
	a.SetDuration(-1)
}

func TestGroupRemoveStopsRunningAnimation(t *testing.T) {
	s := NewScene(xform.Matrix)
	var g AnimableGroup
	a, _, _ := recordingAnimable(t, s, &g)
	a.SetDuration(10)
	a.SetState(AnimationRunning)
	g.Step(0, 0)

	g.Remove(a)
	if g.RunningCount() != 0 {
		t.Error("removing a running animation should drop the running count")
	}
	if a.State() != AnimationStopped {
		t.Error("removed animation should be stopped")
	}
}

func TestTweenAnimationEasesValue(t *testing.T) {
	s := NewScene(xform.DualComplex)
	node := NewNode(s, "slider")
	var g AnimableGroup

	var last float32
	anim := NewTweenAnimation(node, &g, gween.New(0, 10, 2, ease.Linear), 2,
		func(v float32) { last = v })

	anim.SetState(AnimationRunning)
	g.Step(0, 0)
	float32Near(t, last, 0)
	g.Step(1, 1)
	float32Near(t, last, 5)
	g.Step(1.5, 0.5)
	float32Near(t, last, 7.5)
}

func TestTweenAnimationRestartsFromBeginning(t *testing.T) {
	s := NewScene(xform.Matrix)
	var g AnimableGroup

	var last float32
	anim := NewTweenAnimation(NewNode(s, "n"), &g, gween.New(0, 10, 2, ease.Linear), 2,
		func(v float32) { last = v })

	anim.SetState(AnimationRunning)
	g.Step(0, 0)
	g.Step(1, 1)
	anim.SetState(AnimationStopped)
	g.Step(1.5, 0.5)

	anim.SetState(AnimationRunning)
	g.Step(2, 0)
	float32Near(t, last, 0)
	g.Step(3, 1)
	float32Near(t, last, 5)
}
