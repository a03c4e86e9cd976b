package nuclea

import (
	"slices"

	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// RevealState is the lifecycle position of one reveal.
type RevealState uint8

const (
	RevealIdle    RevealState = iota // registered, never entered the viewport
	RevealPlaying                    // entered; animation running or finished
	RevealExited                     // left the viewport after playing (replay only)
)

func (s RevealState) String() string {
	switch s {
	case RevealIdle:
		return "idle"
	case RevealPlaying:
		return "playing"
	case RevealExited:
		return "exited"
	default:
		return "unknown"
	}
}

// RevealBinding describes an entrance animation tied to a scroll trigger.
// A non-empty ChildSelector makes it a group binding: the matching
// descendants of Target are animated in document order, staggered, and Target
// itself is the trigger. A zero Scale in Initial or Final means 1, so states
// can be written as just opacity and translation.
type RevealBinding struct {
	Target        *Node
	ChildSelector string

	Initial VisualState
	Final   VisualState

	Duration        float32
	Delay           float32
	Stagger         float32
	ReverseDuration float32
	Ease            ease.TweenFunc

	Start  TriggerOffset
	Replay bool
}

// Reveal is a registered binding.
type Reveal struct {
	binding RevealBinding
	targets []*Node
	sub     *Subscription
	anim    *Animation
	state   RevealState
}

// State returns the reveal's lifecycle state.
func (r *Reveal) State() RevealState { return r.state }

// Binding returns the binding the reveal was registered with.
func (r *Reveal) Binding() RevealBinding { return r.binding }

// Targets returns the animated nodes. The returned slice MUST NOT be mutated.
func (r *Reveal) Targets() []*Node { return r.targets }

// Animation returns the reveal's animation handle.
func (r *Reveal) Animation() *Animation { return r.anim }

// Subscription returns the reveal's trigger subscription.
func (r *Reveal) Subscription() *Subscription { return r.sub }

// Orchestrator binds scroll triggers to reveal animations and owns every
// registered reveal. A Scene creates one; sections register on attach and
// unregister on detach, and the page calls KillAll once when it is discarded.
//
// Registering the same node twice creates two independent reveals.
type Orchestrator struct {
	evaluator *Evaluator
	animator  *Animator
	reveals   []*Reveal
	log       *zap.Logger
}

// NewOrchestrator creates an Orchestrator. A nil logger discards output.
func NewOrchestrator(ev *Evaluator, am *Animator, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{evaluator: ev, animator: am, log: log}
}

// SetLogger replaces the orchestrator's logger.
func (o *Orchestrator) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	o.log = log
}

// Evaluator returns the trigger evaluator.
func (o *Orchestrator) Evaluator() *Evaluator { return o.evaluator }

// Len returns the number of registered reveals.
func (o *Orchestrator) Len() int { return len(o.reveals) }

// Reveals returns the registered reveals in registration order.
func (o *Orchestrator) Reveals() []*Reveal { return slices.Clone(o.reveals) }

// Evaluate runs the frame's trigger pass. Called from Scene.Update.
func (o *Orchestrator) Evaluate() {
	o.evaluator.Evaluate()
}

// Register validates b, applies its initial state and starts watching its
// trigger. It returns nil, without error, when the target is missing or a
// group selector matches nothing; content may not be rendered yet.
func (o *Orchestrator) Register(b RevealBinding) *Reveal {
	if b.Target == nil || b.Target.IsDisposed() {
		o.log.Debug("reveal target missing")
		return nil
	}
	b.Initial = unitScale(b.Initial)
	b.Final = unitScale(b.Final)
	targets := resolveTargets(b)
	if len(targets) == 0 {
		o.log.Debug("reveal matched no children",
			zap.String("target", b.Target.Name),
			zap.String("selector", b.ChildSelector))
		return nil
	}

	r := &Reveal{binding: b, targets: targets}
	r.anim = o.newAnimation(b, targets)
	r.sub = o.evaluator.Watch(b.Target, b.Start, func(c Crossing) { o.onCrossing(r, c) })
	o.reveals = append(o.reveals, r)
	o.log.Debug("reveal registered",
		zap.String("target", b.Target.Name),
		zap.Int("targets", len(targets)),
		zap.Stringer("start", b.Start))
	return r
}

func unitScale(v VisualState) VisualState {
	if v.Scale == 0 {
		v.Scale = 1
	}
	return v
}

func resolveTargets(b RevealBinding) []*Node {
	if b.ChildSelector == "" {
		return []*Node{b.Target}
	}
	return b.Target.QueryAll(b.ChildSelector)
}

func (o *Orchestrator) newAnimation(b RevealBinding, targets []*Node) *Animation {
	return o.animator.Run(targets, b.Initial, b.Final, Timing{
		Duration:        b.Duration,
		Delay:           b.Delay,
		Stagger:         b.Stagger,
		ReverseDuration: b.ReverseDuration,
		Ease:            b.Ease,
		Paused:          true,
	})
}

func (o *Orchestrator) onCrossing(r *Reveal, c Crossing) {
	defer func() {
		if p := recover(); p != nil {
			o.log.Warn("reveal failed; showing final state",
				zap.String("target", r.binding.Target.Name),
				zap.Stringer("direction", c.Direction),
				zap.Any("panic", p))
			r.state = RevealPlaying
			r.anim.Finish()
		}
	}()

	switch c.Direction {
	case DirectionEnter:
		if r.state == RevealIdle || r.state == RevealExited {
			r.state = RevealPlaying
			r.anim.Play()
		}
	case DirectionExit:
		if r.state == RevealPlaying && r.binding.Replay {
			r.state = RevealExited
			r.anim.Reverse()
		}
	}
}

// Unregister cancels r's animation, stops its trigger and removes it. Targets
// keep their current visual state.
func (o *Orchestrator) Unregister(r *Reveal) {
	if r == nil {
		return
	}
	i := slices.Index(o.reveals, r)
	if i < 0 {
		return
	}
	o.release(r)
	o.reveals = slices.Delete(o.reveals, i, i+1)
}

func (o *Orchestrator) release(r *Reveal) {
	o.animator.Cancel(r.anim)
	o.evaluator.Unwatch(r.sub)
}

// Refresh re-measures every trigger on the next frame. Group reveals that
// have not played yet also re-resolve their children, picking up content
// rendered after registration. Safe to call repeatedly.
func (o *Orchestrator) Refresh() {
	for _, r := range o.reveals {
		if r.state != RevealIdle || r.binding.ChildSelector == "" {
			continue
		}
		targets := resolveTargets(r.binding)
		if len(targets) == 0 || slices.Equal(targets, r.targets) {
			continue
		}
		o.animator.Cancel(r.anim)
		r.targets = targets
		r.anim = o.newAnimation(r.binding, targets)
	}
	o.evaluator.Refresh()
}

// KillAll cancels every reveal animation without callbacks, stops every
// trigger and empties the registry. Safe to call when nothing is registered.
func (o *Orchestrator) KillAll() {
	if len(o.reveals) == 0 {
		return
	}
	for _, r := range o.reveals {
		o.release(r)
	}
	o.log.Debug("reveals killed", zap.Int("count", len(o.reveals)))
	clear(o.reveals)
	o.reveals = o.reveals[:0]
}

// --- Convenience registrations ---

// RevealOption customizes a convenience registration.
type RevealOption func(*RevealBinding)

// WithY sets the initial vertical offset.
func WithY(y float64) RevealOption {
	return func(b *RevealBinding) { b.Initial.TranslateY = y }
}

// WithX sets the initial horizontal offset.
func WithX(x float64) RevealOption {
	return func(b *RevealBinding) { b.Initial.TranslateX = x }
}

// WithScale sets the initial scale.
func WithScale(s float64) RevealOption {
	return func(b *RevealBinding) { b.Initial.Scale = s }
}

// WithDelay sets the delay before the first target starts.
func WithDelay(d float32) RevealOption {
	return func(b *RevealBinding) { b.Delay = d }
}

// WithDuration sets each target's animation duration.
func WithDuration(d float32) RevealOption {
	return func(b *RevealBinding) { b.Duration = d }
}

// WithReverseDuration sets the duration used when the reveal undoes itself.
func WithReverseDuration(d float32) RevealOption {
	return func(b *RevealBinding) { b.ReverseDuration = d }
}

// WithStagger sets the interval between successive children.
func WithStagger(s float32) RevealOption {
	return func(b *RevealBinding) { b.Stagger = s }
}

// WithStart sets the trigger line.
func WithStart(o TriggerOffset) RevealOption {
	return func(b *RevealBinding) { b.Start = o }
}

// WithReplay controls whether the reveal reverses on exit and replays on
// re-entry. Reveals replay by default.
func WithReplay(replay bool) RevealOption {
	return func(b *RevealBinding) { b.Replay = replay }
}

// WithEase sets the easing curve.
func WithEase(fn ease.TweenFunc) RevealOption {
	return func(b *RevealBinding) { b.Ease = fn }
}

func (o *Orchestrator) register(b RevealBinding, opts []RevealOption) *Reveal {
	for _, opt := range opts {
		opt(&b)
	}
	return o.Register(b)
}

// FadeInOnScroll fades node in while lifting it from 50px below.
func (o *Orchestrator) FadeInOnScroll(node *Node, opts ...RevealOption) *Reveal {
	return o.register(RevealBinding{
		Target:   node,
		Initial:  VisualState{Opacity: 0, TranslateY: 50, Scale: 1},
		Final:    Visible,
		Duration: 0.8,
		Start:    DefaultTriggerOffset,
		Replay:   true,
	}, opts)
}

// StaggerOnScroll reveals the children of container matching selector one
// after another, 0.1s apart. Children are resolved now; call Refresh or
// register again if more are added later.
func (o *Orchestrator) StaggerOnScroll(container *Node, selector string, opts ...RevealOption) *Reveal {
	return o.register(RevealBinding{
		Target:        container,
		ChildSelector: selector,
		Initial:       VisualState{Opacity: 0, TranslateY: 40, Scale: 1},
		Final:         Visible,
		Duration:      0.6,
		Stagger:       0.1,
		Start:         DefaultTriggerOffset,
		Replay:        true,
	}, opts)
}

// ScaleInOnScroll fades node in while growing it from 90%.
func (o *Orchestrator) ScaleInOnScroll(node *Node, opts ...RevealOption) *Reveal {
	return o.register(RevealBinding{
		Target:   node,
		Initial:  VisualState{Opacity: 0, Scale: 0.9},
		Final:    Visible,
		Duration: 0.8,
		Start:    DefaultTriggerOffset,
		Replay:   true,
	}, opts)
}

// SlideFrom is the side a sliding reveal enters from.
type SlideFrom uint8

const (
	SlideFromLeft SlideFrom = iota
	SlideFromRight
)

// SlideInOnScroll fades node in while sliding it 100px from one side.
func (o *Orchestrator) SlideInOnScroll(node *Node, from SlideFrom, opts ...RevealOption) *Reveal {
	x := -100.0
	if from == SlideFromRight {
		x = 100
	}
	return o.register(RevealBinding{
		Target:   node,
		Initial:  VisualState{Opacity: 0, TranslateX: x, Scale: 1},
		Final:    Visible,
		Duration: 0.8,
		Start:    DefaultTriggerOffset,
		Replay:   true,
	}, opts)
}
