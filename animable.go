package arbor

import (
	"github.com/tanema/gween"
)

// AnimationState is the playback state of an [Animable].
type AnimationState uint8

const (
	// AnimationStopped means the animation is not advancing and its next
	// start begins from time zero.
	AnimationStopped AnimationState = iota
	// AnimationPaused means the animation is frozen and resumes from
	// where it left off.
	AnimationPaused
	// AnimationRunning means the animation advances on every group step.
	AnimationRunning
)

// String returns the state name.
func (s AnimationState) String() string {
	switch s {
	case AnimationStopped:
		return "Stopped"
	case AnimationPaused:
		return "Paused"
	case AnimationRunning:
		return "Running"
	}
	return "Unknown"
}

// Animable adds time-based animation to a node. Animables are driven in
// batches by [AnimableGroup.Step]; each running animation receives its
// local animation time so starting, pausing and resuming need no
// per-animation bookkeeping by the caller.
//
// State changes requested with [Animable.SetState] take effect on the next
// group step, which also fires the corresponding lifecycle callback.
type Animable struct {
	feature *Feature
	group   *AnimableGroup

	duration    float32
	repeated    bool
	repeatCount int
	repeats     int

	previous, current AnimationState
	startTime         float32
	pauseTime         float32

	// OnAnimationStep performs one frame of the animation. time is the
	// current animation position in seconds, counted from the last start
	// and excluding paused spans; delta is the time since the previous
	// step. With a nonzero duration, time stays within [0, duration).
	OnAnimationStep func(time, delta float32)

	// Lifecycle callbacks, fired from the group step that performs the
	// transition. All optional.
	OnAnimationStarted func()
	OnAnimationPaused  func()
	OnAnimationResumed func()
	OnAnimationStopped func()
}

// NewAnimable attaches an animable to the given node and adds it to group.
// A nil group leaves the animable ungrouped. The animation starts in the
// stopped state.
func NewAnimable(node *Node, group *AnimableGroup) *Animable {
	a := &Animable{feature: NewFeature(node)}
	if group != nil {
		group.Add(a)
	}
	return a
}

// Node returns the node this animable is attached to.
func (a *Animable) Node() *Node {
	return a.feature.Node()
}

// Group returns the group driving this animable, or nil.
func (a *Animable) Group() *AnimableGroup {
	return a.group
}

// Detach removes the animable from its group and its node.
func (a *Animable) Detach() {
	if a.group != nil {
		a.group.Remove(a)
	}
	a.feature.Detach()
}

// State returns the requested playback state. Until the next group step
// this may be ahead of what the lifecycle callbacks have seen.
func (a *Animable) State() AnimationState {
	return a.current
}

// SetState requests a state change, applied on the next group step.
// Pausing a stopped animation is ignored; stopping a paused animation
// resets it to the beginning.
func (a *Animable) SetState(state AnimationState) {
	if a.current == state {
		return
	}
	if a.current == AnimationStopped && state == AnimationPaused {
		return
	}
	a.current = state
}

// Duration returns the animation duration in seconds.
func (a *Animable) Duration() float32 {
	return a.duration
}

// SetDuration sets the animation duration in seconds. Zero means the
// animation runs forever and the step callback receives unbounded time.
func (a *Animable) SetDuration(duration float32) {
	if duration < 0 {
		panic("arbor: animation duration must not be negative")
	}
	a.duration = duration
}

// Repeated reports whether the animation restarts when its duration
// elapses.
func (a *Animable) Repeated() bool {
	return a.repeated
}

// SetRepeated makes the animation restart when its duration elapses
// instead of stopping.
func (a *Animable) SetRepeated(repeated bool) {
	a.repeated = repeated
}

// RepeatCount returns how many times a repeated animation plays before
// stopping, zero meaning indefinitely.
func (a *Animable) RepeatCount() int {
	return a.repeatCount
}

// SetRepeatCount limits how many times a repeated animation plays. Zero,
// the default, repeats indefinitely.
func (a *Animable) SetRepeatCount(count int) {
	a.repeatCount = count
}

// AnimableGroup drives a set of animables from a single clock.
type AnimableGroup struct {
	animables []*Animable
	running   int
}

// Add appends an animable to the group. Moves it if it is already in
// another group.
func (g *AnimableGroup) Add(a *Animable) {
	if a.group == g {
		return
	}
	if a.group != nil {
		a.group.Remove(a)
	}
	a.group = g
	g.animables = append(g.animables, a)
}

// Remove detaches an animable from the group. No-op if the animable is not
// in this group.
func (g *AnimableGroup) Remove(a *Animable) {
	if a.group != g {
		return
	}
	if a.previous == AnimationRunning {
		g.running--
		a.previous = AnimationStopped
		a.current = AnimationStopped
	}
	a.group = nil
	for i, other := range g.animables {
		if other == a {
			copy(g.animables[i:], g.animables[i+1:])
			g.animables[len(g.animables)-1] = nil
			g.animables = g.animables[:len(g.animables)-1]
			return
		}
	}
}

// Len returns the number of animables in the group.
func (g *AnimableGroup) Len() int {
	return len(g.animables)
}

// At returns the animable at the given index, in insertion order.
func (g *AnimableGroup) At(index int) *Animable {
	return g.animables[index]
}

// RunningCount returns how many animations were running as of the last
// step. Skip calling [AnimableGroup.Step] when this is zero and nothing
// changed state.
func (g *AnimableGroup) RunningCount() int {
	return g.running
}

// Step advances every running animation. time is the absolute clock in
// seconds, shared by all animations in the group; delta is the time since
// the previous step. Call once per frame.
func (g *AnimableGroup) Step(time, delta float32) {
	for _, a := range g.animables {
		g.applyTransition(a, time)
		if a.previous != AnimationRunning {
			continue
		}

		// Infinite animation, unbounded time.
		if a.duration == 0 {
			if a.OnAnimationStep != nil {
				a.OnAnimationStep(time-a.startTime, delta)
			}
			continue
		}

		at := time - a.startTime
		if at < a.duration {
			if a.OnAnimationStep != nil {
				a.OnAnimationStep(at, delta)
			}
			continue
		}

		// Duration elapsed: repeat or stop.
		if !a.repeated || (a.repeatCount != 0 && a.repeats+1 >= a.repeatCount) {
			a.previous = AnimationStopped
			a.current = AnimationStopped
			a.repeats = 0
			g.running--
			if a.OnAnimationStopped != nil {
				a.OnAnimationStopped()
			}
			continue
		}
		a.repeats++
		a.startTime += a.duration
		if a.OnAnimationStep != nil {
			a.OnAnimationStep(at-a.duration, delta)
		}
	}
}

// applyTransition performs a pending state change and fires its lifecycle
// callback.
func (g *AnimableGroup) applyTransition(a *Animable, time float32) {
	if a.previous == a.current {
		return
	}
	switch {
	case a.previous == AnimationStopped && a.current == AnimationRunning:
		a.startTime = time
		a.repeats = 0
		g.running++
		if a.OnAnimationStarted != nil {
			a.OnAnimationStarted()
		}
	case a.previous == AnimationPaused && a.current == AnimationRunning:
		// Shift the start so the animation resumes where it paused.
		a.startTime += time - a.pauseTime
		g.running++
		if a.OnAnimationResumed != nil {
			a.OnAnimationResumed()
		}
	case a.previous == AnimationRunning && a.current == AnimationPaused:
		a.pauseTime = time
		g.running--
		if a.OnAnimationPaused != nil {
			a.OnAnimationPaused()
		}
	case a.current == AnimationStopped:
		if a.previous == AnimationRunning {
			g.running--
		}
		a.repeats = 0
		if a.OnAnimationStopped != nil {
			a.OnAnimationStopped()
		}
	}
	a.previous = a.current
}

// TweenAnimation drives a gween tween through an [Animable] and hands the
// eased value to an apply function each step. The tween restarts from the
// beginning whenever the animation starts.
type TweenAnimation struct {
	*Animable
	tween *gween.Tween
	apply func(value float32)
}

// NewTweenAnimation builds an animation around the given tween. duration
// should match the tween's; the animation stops when it elapses unless
// repetition is enabled. apply receives the eased value once per step while
// the animation runs; it typically mutates the node's transformation.
func NewTweenAnimation(node *Node, group *AnimableGroup, tw *gween.Tween, duration float32, apply func(value float32)) *TweenAnimation {
	t := &TweenAnimation{
		Animable: NewAnimable(node, group),
		tween:    tw,
		apply:    apply,
	}
	t.SetDuration(duration)
	t.OnAnimationStarted = func() {
		t.tween.Reset()
	}
	t.OnAnimationStep = func(_, delta float32) {
		v, finished := t.tween.Update(delta)
		t.apply(v)
		if finished && t.Repeated() {
			t.tween.Reset()
		}
	}
	return t
}
