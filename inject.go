package nuclea

import "github.com/hajimehoshi/ebiten/v2"

type syntheticKind uint8

const (
	syntheticPointer syntheticKind = iota
	syntheticWheel
	syntheticText
	syntheticKey
)

// syntheticEvent is a single injected input event. Pointer coordinates are
// screen coordinates, converted exactly like real mouse input.
type syntheticEvent struct {
	kind             syntheticKind
	screenX, screenY float64
	pressed          bool
	button           MouseButton
	dy               float64
	text             string
	key              ebiten.Key
}

// InjectPress queues a pointer press event at the given screen coordinates
// (left button). The event is consumed on the next frame's processInput call.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		kind:    syntheticPointer,
		screenX: x, screenY: y,
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectMove queues a hover move to the given screen coordinates.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		kind:    syntheticPointer,
		screenX: x, screenY: y,
		button:  MouseButtonLeft,
	})
}

// InjectRelease queues a pointer release event at the given screen coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		kind:    syntheticPointer,
		screenX: x, screenY: y,
		button:  MouseButtonLeft,
	})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same screen coordinates. Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectScroll queues a wheel scroll of dy pixels. Positive dy scrolls down.
func (s *Scene) InjectScroll(dy float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticWheel, dy: dy})
}

// InjectText queues typed characters, delivered together in one frame.
func (s *Scene) InjectText(text string) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticText, text: text})
}

// InjectKey queues a single key press.
func (s *Scene) InjectKey(k ebiten.Key) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticKey, key: k})
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the same paths as live input. Returns true if an event was
// consumed (live input should be skipped).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch evt.kind {
	case syntheticPointer:
		s.processPointer(evt.screenX, evt.screenY, evt.pressed, evt.button)
	case syntheticWheel:
		s.viewport.ScrollBy(evt.dy)
	case syntheticText:
		s.typed = append(s.typed, []rune(evt.text)...)
	case syntheticKey:
		s.keys = append(s.keys, evt.key)
	}
	return true
}
