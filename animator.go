package nuclea

import "github.com/tanema/gween/ease"

// Timing controls how an Animation plays.
type Timing struct {
	// Duration of each target's tween in seconds.
	Duration float32
	// Delay before the first target starts.
	Delay float32
	// Stagger between the starts of successive targets.
	Stagger float32
	// ReverseDuration is used by Reverse. Zero means Duration.
	ReverseDuration float32
	// Ease defaults to ease.OutCubic.
	Ease ease.TweenFunc

	// Loop restarts the forward play forever. With Yoyo each forward play is
	// followed by a play back to the start values.
	Loop bool
	Yoyo bool

	// Paused applies the start values but waits for Play.
	Paused bool

	// OnComplete fires once each time a forward play finishes. Never fires
	// for looping animations or after Cancel.
	OnComplete func()
}

type playDir uint8

const (
	playForward playDir = iota
	playReverse
	playYoyo
)

// track is one target's slot within an Animation.
type track struct {
	node  *Node
	start float32
	dest  VisualState
	group *TweenGroup
	done  bool
}

// Animation is a handle to one Animator.Run invocation over one or more
// nodes. It can be cancelled, reversed and replayed.
type Animation struct {
	animator *Animator
	targets  []*Node
	from, to VisualState
	timing   Timing

	dir      playDir
	duration float32
	tracks   []track
	elapsed  float32

	active bool
	listed bool
}

// Targets returns the animated nodes in start order. The returned slice MUST
// NOT be mutated by the caller.
func (a *Animation) Targets() []*Node { return a.targets }

// Active reports whether the animation is currently playing.
func (a *Animation) Active() bool { return a.active }

// Reversed reports whether the last requested direction was Reverse.
func (a *Animation) Reversed() bool { return a.dir == playReverse }

// Elapsed returns the seconds since the current play started.
func (a *Animation) Elapsed() float32 { return a.elapsed }

// Play starts a forward play from the targets' current values to the end
// state, honoring Delay and Stagger.
func (a *Animation) Play() {
	a.begin(playForward, a.timing.Delay)
}

// Reverse drives the targets from their current values back to the start
// state over ReverseDuration. The stagger order is reversed and no delay
// applies.
func (a *Animation) Reverse() {
	a.begin(playReverse, 0)
}

// Cancel stops the animation where it is. Targets keep their intermediate
// values and no callback fires.
func (a *Animation) Cancel() {
	a.active = false
	a.tracks = a.tracks[:0]
}

// Finish cancels the animation and snaps every live target to the end state.
// OnComplete does not fire.
func (a *Animation) Finish() {
	a.Cancel()
	for _, n := range a.targets {
		if !n.IsDisposed() {
			n.ApplyVisualState(a.to)
		}
	}
}

func (a *Animation) begin(dir playDir, delay float32) {
	a.dir = dir
	a.elapsed = 0

	dest := a.to
	a.duration = a.timing.Duration
	if dir != playForward {
		dest = a.from
	}
	if dir == playReverse && a.timing.ReverseDuration > 0 {
		a.duration = a.timing.ReverseDuration
	}

	n := len(a.targets)
	a.tracks = a.tracks[:0]
	for i, t := range a.targets {
		k := i
		if dir == playReverse {
			k = n - 1 - i
		}
		a.tracks = append(a.tracks, track{
			node:  t,
			start: delay + float32(k)*a.timing.Stagger,
			dest:  dest,
		})
	}
	a.animator.schedule(a)
}

// advance moves the animation forward by dt seconds. A track whose start
// falls inside this step only receives the part of dt after its start.
func (a *Animation) advance(dt float32) {
	if !a.active || dt <= 0 {
		return
	}
	end := a.elapsed + dt
	done := true
	for i := range a.tracks {
		tr := &a.tracks[i]
		if tr.done {
			continue
		}
		if end <= tr.start {
			done = false
			continue
		}
		if tr.node.IsDisposed() {
			tr.done = true
			continue
		}
		step := dt
		if a.elapsed < tr.start {
			step = end - tr.start
		}
		if tr.group == nil {
			if a.duration <= 0 {
				tr.node.ApplyVisualState(tr.dest)
				tr.done = true
				continue
			}
			tr.group = TweenVisual(tr.node, tr.dest, a.duration, a.timing.Ease)
		}
		tr.group.Update(step)
		if tr.group.Done {
			tr.done = true
		} else {
			done = false
		}
	}
	a.elapsed = end
	if done {
		a.phaseDone()
	}
}

func (a *Animation) phaseDone() {
	switch {
	case a.dir == playForward && a.timing.Loop && a.timing.Yoyo:
		a.begin(playYoyo, 0)
	case a.dir == playYoyo:
		a.begin(playForward, 0)
	case a.dir == playForward && a.timing.Loop:
		a.applyFrom()
		a.begin(playForward, 0)
	case a.dir == playForward:
		a.active = false
		if a.timing.OnComplete != nil {
			a.timing.OnComplete()
		}
	default:
		a.active = false
	}
}

func (a *Animation) applyFrom() {
	for _, n := range a.targets {
		if !n.IsDisposed() {
			n.ApplyVisualState(a.from)
		}
	}
}

// Animator advances every running Animation once per frame. A Scene owns one;
// it is also usable standalone.
type Animator struct {
	anims []*Animation
	step  []*Animation
}

// NewAnimator creates an empty Animator.
func NewAnimator() *Animator {
	return &Animator{}
}

// Run applies from to every target immediately and starts animating them
// towards to. Target i starts Delay + i*Stagger seconds after Run, in the
// order given.
func (am *Animator) Run(targets []*Node, from, to VisualState, t Timing) *Animation {
	if t.Ease == nil {
		t.Ease = ease.OutCubic
	}
	a := &Animation{
		animator: am,
		targets:  append([]*Node(nil), targets...),
		from:     from,
		to:       to,
		timing:   t,
	}
	a.applyFrom()
	if !t.Paused {
		a.Play()
	}
	return a
}

// To animates targets from their current values to the given state. The
// current values of the first target become the start state used by Reverse.
func (am *Animator) To(targets []*Node, to VisualState, t Timing) *Animation {
	if t.Ease == nil {
		t.Ease = ease.OutCubic
	}
	a := &Animation{
		animator: am,
		targets:  append([]*Node(nil), targets...),
		from:     Visible,
		to:       to,
		timing:   t,
	}
	if len(targets) > 0 {
		a.from = targets[0].VisualState()
	}
	if !t.Paused {
		a.Play()
	}
	return a
}

// Cancel stops a without firing its callback. A nil animation is ignored.
func (am *Animator) Cancel(a *Animation) {
	if a != nil {
		a.Cancel()
	}
}

// CancelAll stops every running animation.
func (am *Animator) CancelAll() {
	for _, a := range am.anims {
		a.Cancel()
		a.listed = false
	}
	clear(am.anims)
	am.anims = am.anims[:0]
}

// Len returns the number of running animations.
func (am *Animator) Len() int {
	n := 0
	for _, a := range am.anims {
		if a.active {
			n++
		}
	}
	return n
}

// Update advances all running animations by dt seconds. Animations started
// from a completion callback begin on the next Update. Callbacks may cancel
// any animation, including through CancelAll.
func (am *Animator) Update(dt float32) {
	am.step = append(am.step[:0], am.anims...)
	for _, a := range am.step {
		a.advance(dt)
	}
	clear(am.step)

	kept := am.anims[:0]
	for _, a := range am.anims {
		if a.active {
			kept = append(kept, a)
		} else {
			a.listed = false
		}
	}
	clear(am.anims[len(kept):])
	am.anims = kept
}

func (am *Animator) schedule(a *Animation) {
	a.active = true
	if !a.listed {
		a.listed = true
		am.anims = append(am.anims, a)
	}
}
