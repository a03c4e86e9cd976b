package nuclea

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Direction is the sense of a trigger crossing.
type Direction uint8

const (
	DirectionEnter Direction = iota + 1 // the trigger line was passed scrolling down
	DirectionExit                       // the trigger line was passed scrolling back up
)

func (d Direction) String() string {
	switch d {
	case DirectionEnter:
		return "enter"
	case DirectionExit:
		return "exit"
	default:
		return "Direction(" + strconv.Itoa(int(d)) + ")"
	}
}

// Crossing is delivered to a subscription callback.
type Crossing struct {
	Direction Direction
	Node      *Node
	ScrollY   float64
}

// TriggerOffset is the trigger line as a fraction of the viewport height,
// measured from the top. 0.85 fires when an element's top edge reaches 85%
// of the way down the viewport.
type TriggerOffset float64

// DefaultTriggerOffset is "top 85%".
const DefaultTriggerOffset TriggerOffset = 0.85

// ParseTriggerOffset accepts "85%", "top 85%", "top top", "top center" and
// "top bottom". The first word of a two-word form names the element edge and
// must be "top".
func ParseTriggerOffset(s string) (TriggerOffset, error) {
	fields := strings.Fields(s)
	var pos string
	switch len(fields) {
	case 1:
		pos = fields[0]
	case 2:
		if fields[0] != "top" {
			return 0, fmt.Errorf("trigger offset %q: unsupported element edge %q", s, fields[0])
		}
		pos = fields[1]
	default:
		return 0, fmt.Errorf("trigger offset %q: want \"top <position>\"", s)
	}

	switch pos {
	case "top":
		return 0, nil
	case "center":
		return 0.5, nil
	case "bottom":
		return 1, nil
	}
	pct, ok := strings.CutSuffix(pos, "%")
	if !ok {
		return 0, fmt.Errorf("trigger offset %q: position must be a percentage", s)
	}
	v, err := strconv.ParseFloat(pct, 64)
	if err != nil {
		return 0, fmt.Errorf("trigger offset %q: %w", s, err)
	}
	return TriggerOffset(v / 100), nil
}

func (o TriggerOffset) String() string {
	return "top " + strconv.FormatFloat(float64(o)*100, 'f', -1, 64) + "%"
}

// TriggerState records a subscription's visibility. Only the evaluator's
// crossing pass changes it.
type TriggerState struct {
	HasEnteredViewport bool
	IsCurrentlyVisible bool
}

// Subscription is a watched node. Its trigger position is cached by the
// measurement pass and compared against the scroll position on every pass.
type Subscription struct {
	node   *Node
	offset TriggerOffset
	fn     func(Crossing)

	start    float64
	measured bool
	state    TriggerState
	released bool
}

// Node returns the watched node.
func (s *Subscription) Node() *Node { return s.node }

// State returns the current visibility state.
func (s *Subscription) State() TriggerState { return s.state }

// Start returns the cached scroll position at which the node enters, and
// whether the node has been measured.
func (s *Subscription) Start() (float64, bool) { return s.start, s.measured }

// Released reports whether the subscription has been unwatched.
func (s *Subscription) Released() bool { return s.released }

// Evaluator reports when watched nodes cross their trigger lines as the
// viewport scrolls. Layout is read only in a measurement pass, which runs at
// most once per Evaluate and only after Watch, Refresh or a viewport resize.
// Plain scrolling compares against the cached positions.
type Evaluator struct {
	viewport *Viewport
	root     *Node
	subs     []*Subscription

	dirty      bool
	evaluating bool
	released   bool

	measurePasses int
}

// NewEvaluator creates an Evaluator over the given viewport. Nodes not
// attached to root are never measured and never cross. A nil root skips the
// attachment check.
func NewEvaluator(v *Viewport, root *Node) *Evaluator {
	return &Evaluator{viewport: v, root: root}
}

// Watch starts observing node. fn receives one enter for each time the node
// becomes visible and one exit for each time it stops being visible.
func (e *Evaluator) Watch(node *Node, offset TriggerOffset, fn func(Crossing)) *Subscription {
	s := &Subscription{node: node, offset: offset, fn: fn}
	e.subs = append(e.subs, s)
	e.dirty = true
	return s
}

// Unwatch stops observing. Safe to call from a crossing callback and safe to
// call twice. A released subscription never fires again.
func (e *Evaluator) Unwatch(s *Subscription) {
	if s == nil || s.released {
		return
	}
	s.released = true
	s.fn = nil
	if e.evaluating {
		e.released = true
		return
	}
	e.compact()
}

func (e *Evaluator) compact() {
	e.subs = slices.DeleteFunc(e.subs, func(s *Subscription) bool { return s.released })
	e.released = false
}

// Refresh schedules a re-measurement of every subscription on the next
// Evaluate.
func (e *Evaluator) Refresh() {
	e.dirty = true
}

// Len returns the number of live subscriptions.
func (e *Evaluator) Len() int {
	n := 0
	for _, s := range e.subs {
		if !s.released {
			n++
		}
	}
	return n
}

// MeasurePasses returns how many measurement passes have run.
func (e *Evaluator) MeasurePasses() int { return e.measurePasses }

// Evaluate runs one frame of trigger evaluation: a measurement pass if one
// is pending, then a crossing pass if anything changed.
func (e *Evaluator) Evaluate() {
	scrolled, resized := e.viewport.consumeChanges()
	if resized {
		e.dirty = true
	}
	if !e.dirty && !scrolled {
		return
	}
	if e.dirty {
		e.measure()
	}
	e.cross()
}

func (e *Evaluator) measure() {
	e.dirty = false
	e.measurePasses++
	h := e.viewport.Height
	for _, s := range e.subs {
		if s.released {
			continue
		}
		if s.node.IsDisposed() || (e.root != nil && !s.node.Attached(e.root)) {
			s.measured = false
			continue
		}
		s.start = s.node.DocumentBounds().Y - float64(s.offset)*h
		s.measured = true
	}
}

func (e *Evaluator) cross() {
	e.evaluating = true
	y := e.viewport.ScrollY
	n := len(e.subs)
	for i := 0; i < n; i++ {
		s := e.subs[i]
		if s.released || !s.measured {
			continue
		}
		visible := y >= s.start
		var dir Direction
		switch {
		case visible && !s.state.IsCurrentlyVisible:
			s.state.IsCurrentlyVisible = true
			s.state.HasEnteredViewport = true
			dir = DirectionEnter
		case !visible && s.state.IsCurrentlyVisible:
			s.state.IsCurrentlyVisible = false
			dir = DirectionExit
		default:
			continue
		}
		if s.fn != nil {
			s.fn(Crossing{Direction: dir, Node: s.node, ScrollY: y})
		}
	}
	e.evaluating = false
	if e.released {
		e.compact()
	}
}
