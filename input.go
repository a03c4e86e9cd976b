package nuclea

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween/ease"
)

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// --- Pointer state ---

type pointerState struct {
	down      bool
	lastX     float64
	lastY     float64
	hitNode   *Node
	hoverNode *Node
	button    MouseButton // button captured at press time
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type clickHandler struct {
	id uint32
	fn func(ClickContext)
}

type handlerRegistry struct {
	pointerDown  []pointerHandler
	pointerUp    []pointerHandler
	pointerMove  []pointerHandler
	pointerEnter []pointerHandler
	pointerLeave []pointerHandler
	click        []clickHandler
	nextID       uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerDown:
		h.reg.pointerDown = removePointerHandler(h.reg.pointerDown, h.id)
	case EventPointerUp:
		h.reg.pointerUp = removePointerHandler(h.reg.pointerUp, h.id)
	case EventPointerMove:
		h.reg.pointerMove = removePointerHandler(h.reg.pointerMove, h.id)
	case EventPointerEnter:
		h.reg.pointerEnter = removePointerHandler(h.reg.pointerEnter, h.id)
	case EventPointerLeave:
		h.reg.pointerLeave = removePointerHandler(h.reg.pointerLeave, h.id)
	case EventClick:
		h.reg.click = slices.DeleteFunc(h.reg.click, func(c clickHandler) bool { return c.id == h.id })
	}
}

func removePointerHandler(s []pointerHandler, id uint32) []pointerHandler {
	return slices.DeleteFunc(s, func(p pointerHandler) bool { return p.id == id })
}

func (s *Scene) addPointerHandler(list *[]pointerHandler, event EventType, fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	*list = append(*list, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: s.handlers, event: event}
}

// --- Scene-level event registration ---

// OnPointerDown registers a scene-level callback for pointer down events.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	return s.addPointerHandler(&s.handlers.pointerDown, EventPointerDown, fn)
}

// OnPointerUp registers a scene-level callback for pointer up events.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	return s.addPointerHandler(&s.handlers.pointerUp, EventPointerUp, fn)
}

// OnPointerMove registers a scene-level callback for pointer move events.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	return s.addPointerHandler(&s.handlers.pointerMove, EventPointerMove, fn)
}

// OnPointerEnter registers a scene-level callback for pointer enter events.
// Fired when the pointer moves over a new node (or from nil to a node).
func (s *Scene) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	return s.addPointerHandler(&s.handlers.pointerEnter, EventPointerEnter, fn)
}

// OnPointerLeave registers a scene-level callback for pointer leave events.
func (s *Scene) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	return s.addPointerHandler(&s.handlers.pointerLeave, EventPointerLeave, fn)
}

// OnClick registers a scene-level callback for click events.
func (s *Scene) OnClick(fn func(ClickContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.click = append(s.handlers.click, clickHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: s.handlers, event: EventClick}
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise the layout box. Containers with no HitShape
// are not hit-testable.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	if n.Type == NodeTypeContainer || (n.Width == 0 && n.Height == 0) {
		return false
	}
	return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
}

// collectInteractable walks the tree in painter order (DFS, ZIndex-sorted),
// appending interactable nodes to buf. Visible=false subtrees and fully
// transparent subtrees are skipped; a non-interactable node still lets its
// children be hit.
func (s *Scene) collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || n.worldAlpha <= 0 {
		return buf
	}
	if n.Interactable && (n.HitShape != nil || n.Type != NodeTypeContainer) {
		buf = append(buf, n)
	}
	if len(n.children) == 0 {
		return buf
	}
	children := n.children
	if !n.childrenSorted {
		s.rebuildSortedChildren(n)
	}
	if n.sortedChildren != nil {
		children = n.sortedChildren
	}
	for _, child := range children {
		buf = s.collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at screen point (sx, sy). The
// overlay is tested first because it draws on top of the document.
func (s *Scene) hitTest(sx, sy float64) *Node {
	if n := s.hitTree(s.overlay, sx, sy); n != nil {
		return n
	}
	wx, wy := s.viewport.ScreenToWorld(sx, sy)
	return s.hitTree(s.root, wx, wy)
}

func (s *Scene) hitTree(root *Node, x, y float64) *Node {
	s.hitBuf = s.collectInteractable(root, s.hitBuf[:0])
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(x, y)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// localPoint converts a screen point into n's local space, going through the
// viewport for document nodes.
func (s *Scene) localPoint(n *Node, sx, sy float64) (float64, float64) {
	if isAncestor(s.overlay, n) {
		return n.WorldToLocal(sx, sy)
	}
	wx, wy := s.viewport.ScreenToWorld(sx, sy)
	return n.WorldToLocal(wx, wy)
}

// --- Input processing ---

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// processInput handles pointer, wheel and keyboard input for one frame. An
// injected event, when queued, replaces live input for the frame.
func (s *Scene) processInput(live bool) {
	s.typed = s.typed[:0]
	s.keys = s.keys[:0]
	s.modifiers = 0

	if !s.processInjectedInput() && live {
		s.modifiers = readModifiers()
		s.processMousePointer()
		if _, wy := ebiten.Wheel(); wy != 0 {
			s.viewport.ScrollBy(-wy * s.WheelStep)
		}
		s.typed = ebiten.AppendInputChars(s.typed)
		s.keys = inpututil.AppendJustPressedKeys(s.keys)
	}

	if s.KeyboardScroll {
		for _, k := range s.keys {
			s.keyScroll(k)
		}
	}
}

// keyScroll applies the browser's keyboard scrolling conventions.
func (s *Scene) keyScroll(k ebiten.Key) {
	vp := s.viewport
	page := vp.Height * 0.9
	switch k {
	case ebiten.KeyPageDown, ebiten.KeySpace:
		if s.modifiers&ModShift != 0 && k == ebiten.KeySpace {
			vp.ScrollTo(vp.ScrollY-page, 0.3, ease.OutCubic)
			return
		}
		vp.ScrollTo(vp.ScrollY+page, 0.3, ease.OutCubic)
	case ebiten.KeyPageUp:
		vp.ScrollTo(vp.ScrollY-page, 0.3, ease.OutCubic)
	case ebiten.KeyHome:
		vp.ScrollTo(0, 0.3, ease.OutCubic)
	case ebiten.KeyEnd:
		vp.ScrollTo(vp.MaxScroll(), 0.3, ease.OutCubic)
	case ebiten.KeyArrowDown:
		vp.ScrollBy(s.WheelStep)
	case ebiten.KeyArrowUp:
		vp.ScrollBy(-s.WheelStep)
	}
}

// TypedChars returns the characters typed this frame.
func (s *Scene) TypedChars() []rune { return s.typed }

// KeyJustPressed reports whether k was pressed this frame.
func (s *Scene) KeyJustPressed(k ebiten.Key) bool {
	return slices.Contains(s.keys, k)
}

// processMousePointer handles live mouse input.
func (s *Scene) processMousePointer() {
	mx, my := ebiten.CursorPosition()

	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if left || right || middle {
		pressed = true
		switch {
		case left:
			button = MouseButtonLeft
		case right:
			button = MouseButtonRight
		default:
			button = MouseButtonMiddle
		}
	}
	s.processPointer(float64(mx), float64(my), pressed, button)
}

// processPointer runs the pointer state machine in screen coordinates.
func (s *Scene) processPointer(sx, sy float64, pressed bool, button MouseButton) {
	ps := &s.pointer
	target := s.hitTest(sx, sy)

	if target != ps.hoverNode {
		if ps.hoverNode != nil && !ps.hoverNode.IsDisposed() {
			s.firePointer(EventPointerLeave, ps.hoverNode, sx, sy, button)
		}
		if target != nil {
			s.firePointer(EventPointerEnter, target, sx, sy, button)
		}
		ps.hoverNode = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.hitNode = target
		s.firePointer(EventPointerDown, target, sx, sy, button)
	case !pressed && ps.down:
		if ps.hitNode != nil && ps.hitNode == target {
			s.fireClick(target, sx, sy, ps.button)
		}
		s.firePointer(EventPointerUp, target, sx, sy, ps.button)
		ps.down = false
		ps.hitNode = nil
	case !pressed && (sx != ps.lastX || sy != ps.lastY):
		s.firePointer(EventPointerMove, target, sx, sy, button)
	}
	ps.lastX, ps.lastY = sx, sy
}

// --- Event firing ---

// firePointer runs scene-level handlers first, then the node's own callback.
func (s *Scene) firePointer(event EventType, node *Node, sx, sy float64, button MouseButton) {
	ctx := PointerContext{
		Node: node, GlobalX: sx, GlobalY: sy,
		Button: button, Modifiers: s.modifiers,
	}
	if node != nil {
		ctx.LocalX, ctx.LocalY = s.localPoint(node, sx, sy)
		ctx.UserData = node.UserData
	}

	var list []pointerHandler
	var own func(PointerContext)
	switch event {
	case EventPointerDown:
		list = s.handlers.pointerDown
		if node != nil {
			own = node.OnPointerDown
		}
	case EventPointerUp:
		list = s.handlers.pointerUp
		if node != nil {
			own = node.OnPointerUp
		}
	case EventPointerMove:
		list = s.handlers.pointerMove
	case EventPointerEnter:
		list = s.handlers.pointerEnter
		if node != nil {
			own = node.OnPointerEnter
		}
	case EventPointerLeave:
		list = s.handlers.pointerLeave
		if node != nil {
			own = node.OnPointerLeave
		}
	}
	for _, h := range list {
		h.fn(ctx)
	}
	if own != nil {
		own(ctx)
	}
}

func (s *Scene) fireClick(node *Node, sx, sy float64, button MouseButton) {
	ctx := ClickContext{
		Node: node, UserData: node.UserData,
		GlobalX: sx, GlobalY: sy,
		Button: button, Modifiers: s.modifiers,
	}
	ctx.LocalX, ctx.LocalY = s.localPoint(node, sx, sy)
	for _, h := range s.handlers.click {
		h.fn(ctx)
	}
	if node.OnClick != nil {
		node.OnClick(ctx)
	}
}
