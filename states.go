package nuclea

import "github.com/tanema/gween/ease"

// AnyState matches every state in a transition key.
const AnyState = "*"

// Transition is how a StateTable moves between two named states.
type Transition struct {
	Duration float32
	Ease     ease.TweenFunc
}

type transitionKey struct {
	from, to string
}

// StateTable drives a set of nodes between named visual states. Each change
// animates through the transition registered for the (from, to) pair,
// falling back to (from, *), (*, to) and (*, *). A change with no matching
// transition is applied instantly.
//
//	menu := nuclea.NewStateTable(scene.Animator(), "closed").
//		State("closed", nuclea.VisualState{Opacity: 0, TranslateY: -10, Scale: 1}).
//		State("open", nuclea.Visible).
//		Transition("closed", "open", nuclea.Transition{Duration: 0.2, Ease: ease.OutQuad}).
//		Transition("open", "closed", nuclea.Transition{Duration: 0.2, Ease: ease.InQuad})
//	menu.Bind(panel)
//	menu.Set("open")
type StateTable struct {
	animator    *Animator
	states      map[string]VisualState
	transitions map[transitionKey]Transition
	targets     []*Node
	current     string
	anim        *Animation

	// OnChange, if set, is called after every accepted Set.
	OnChange func(from, to string)
}

// NewStateTable creates a table whose current state is initial.
func NewStateTable(am *Animator, initial string) *StateTable {
	return &StateTable{
		animator:    am,
		states:      make(map[string]VisualState),
		transitions: make(map[transitionKey]Transition),
		current:     initial,
	}
}

// State registers a named visual state.
func (t *StateTable) State(name string, v VisualState) *StateTable {
	t.states[name] = v
	return t
}

// Transition registers the transition from one state to another. Either name
// may be AnyState.
func (t *StateTable) Transition(from, to string, tr Transition) *StateTable {
	t.transitions[transitionKey{from, to}] = tr
	return t
}

// Bind adds nodes to the table and snaps them to the current state.
func (t *StateTable) Bind(nodes ...*Node) {
	t.targets = append(t.targets, nodes...)
	if v, ok := t.states[t.current]; ok {
		for _, n := range nodes {
			n.ApplyVisualState(v)
		}
	}
}

// Current returns the current state name.
func (t *StateTable) Current() string { return t.current }

// Animating reports whether a transition is in progress.
func (t *StateTable) Animating() bool {
	return t.anim != nil && t.anim.Active()
}

// lookup finds the transition for a state change.
func (t *StateTable) lookup(from, to string) (Transition, bool) {
	for _, k := range [...]transitionKey{{from, to}, {from, AnyState}, {AnyState, to}, {AnyState, AnyState}} {
		if tr, ok := t.transitions[k]; ok {
			return tr, true
		}
	}
	return Transition{}, false
}

// Set moves to the named state. It returns false when the state is unknown
// or already current. A transition in progress is interrupted and the new
// one starts from the nodes' current values.
func (t *StateTable) Set(name string) bool {
	if name == t.current {
		return false
	}
	v, ok := t.states[name]
	if !ok {
		return false
	}
	from := t.current
	t.current = name
	if t.anim != nil {
		t.anim.Cancel()
		t.anim = nil
	}

	tr, _ := t.lookup(from, name)
	if tr.Duration <= 0 || t.animator == nil {
		for _, n := range t.targets {
			if !n.IsDisposed() {
				n.ApplyVisualState(v)
			}
		}
	} else if len(t.targets) > 0 {
		t.anim = t.animator.To(t.targets, v, Timing{Duration: tr.Duration, Ease: tr.Ease})
	}
	if t.OnChange != nil {
		t.OnChange(from, name)
	}
	return true
}

// Snap moves to the named state without animating.
func (t *StateTable) Snap(name string) bool {
	v, ok := t.states[name]
	if !ok {
		return false
	}
	if t.anim != nil {
		t.anim.Cancel()
		t.anim = nil
	}
	t.current = name
	for _, n := range t.targets {
		if !n.IsDisposed() {
			n.ApplyVisualState(v)
		}
	}
	return true
}

// Toggle switches between two states.
func (t *StateTable) Toggle(a, b string) {
	if t.current == a {
		t.Set(b)
	} else {
		t.Set(a)
	}
}
