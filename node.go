package nuclea

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// HitShape is used for custom hit testing regions.
type HitShape interface {
	Contains(x, y float64) bool
}

// PointerContext carries pointer event data.
type PointerContext struct {
	Node      *Node
	UserData  any
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	Modifiers KeyModifiers
}

// ClickContext carries click event data.
type ClickContext struct {
	Node      *Node
	UserData  any
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	Modifiers KeyModifiers
}

// --- ID counter ---

// nodeIDCounter is a plain counter; the scene is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is the fundamental scene graph element. A single flat struct is used for
// all node types to avoid interface dispatch on the hot path.
//
// A node has two independent geometries. The layout box (X, Y, Width, Height,
// relative to the parent) is what the page flows and what scroll triggers
// measure. The presentation (OffsetX, OffsetY, ScaleX, ScaleY, Rotation,
// Alpha) is what animations drive; it never feeds back into layout.
type Node struct {
	// Identity
	ID      uint32
	Name    string
	Type    NodeType
	Classes []string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Layout box (parent-relative)
	X, Y          float64
	Width, Height float64

	// Presentation, applied around the center of the layout box
	OffsetX, OffsetY float64
	ScaleX, ScaleY   float64
	Rotation         float64

	// Computed during traversal
	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	// Visibility & interaction
	Alpha        float64
	Visible      bool
	Renderable   bool
	Interactable bool

	// Ordering
	ZIndex      int
	RenderLayer uint8

	// Metadata
	UserData any

	// Rect and image fields
	Color     Color
	BlendMode BlendMode
	image     *ebiten.Image

	// Text fields (NodeTypeText)
	TextBlock *TextBlock

	// Hit testing
	HitShape HitShape

	// Per-node callbacks (nil by default; zero cost when unused)
	OnPointerDown  func(PointerContext)
	OnPointerUp    func(PointerContext)
	OnClick        func(ClickContext)
	OnPointerEnter func(PointerContext)
	OnPointerLeave func(PointerContext)

	// OnUpdate runs once per frame with the frame delta in seconds.
	OnUpdate func(dt float64)

	// Internal
	disposed       bool
	childrenSorted bool
	sortedChildren []*Node // reused buffer for ZIndex-sorted traversal order
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.Renderable = true
	n.transformDirty = true
	n.childrenSorted = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewRect creates a solid color box of the given size.
func NewRect(name string, w, h float64, c Color) *Node {
	n := &Node{Name: name, Type: NodeTypeRect, Width: w, Height: h}
	nodeDefaults(n)
	n.Color = c
	return n
}

// NewImage creates a node that draws img at its natural size.
func NewImage(name string, img *ebiten.Image) *Node {
	n := &Node{Name: name, Type: NodeTypeImage}
	nodeDefaults(n)
	n.SetImage(img)
	return n
}

// NewText creates a text node with the given content and font.
func NewText(name string, content string, font Font) *Node {
	n := &Node{
		Name: name,
		Type: NodeTypeText,
		TextBlock: &TextBlock{
			Content:     content,
			Font:        font,
			Color:       ColorWhite,
			layoutDirty: true,
		},
	}
	nodeDefaults(n)
	n.syncTextSize()
	return n
}

// SetImage replaces the drawn image and resizes the layout box to match.
func (n *Node) SetImage(img *ebiten.Image) {
	n.image = img
	if img != nil {
		b := img.Bounds()
		n.Width, n.Height = float64(b.Dx()), float64(b.Dy())
	}
}

// Image returns the image drawn by an image node, or nil.
func (n *Node) Image() *ebiten.Image {
	return n.image
}

// --- Classes ---

// AddClass tags the node with a class name for selector queries.
func (n *Node) AddClass(classes ...string) *Node {
	for _, c := range classes {
		if !slices.Contains(n.Classes, c) {
			n.Classes = append(n.Classes, c)
		}
	}
	return n
}

// HasClass reports whether the node carries the given class.
func (n *Node) HasClass(class string) bool {
	return slices.Contains(n.Classes, class)
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("nuclea: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("nuclea: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	n.childrenSorted = false
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.Parent != n {
		panic("nuclea: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		markSubtreeDirty(child)
	}
	n.children = n.children[:0]
	n.childrenSorted = true
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// SetZIndex sets the node's ZIndex and marks the parent's children as unsorted.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.sortedChildren = nil
	n.Parent = nil
	n.HitShape = nil
	n.image = nil
	n.TextBlock = nil
	n.UserData = nil
	n.OnPointerDown = nil
	n.OnPointerUp = nil
	n.OnClick = nil
	n.OnPointerEnter = nil
	n.OnPointerLeave = nil
	n.OnUpdate = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
