package nuclea

import "github.com/tanema/gween/ease"

// DefaultHeaderOffset is the height cleared for the fixed header when
// scrolling to a section.
const DefaultHeaderOffset = 80

// DefaultScrollDuration is the length of a smooth anchor scroll in seconds.
const DefaultScrollDuration float32 = 0.8

// Navigator scrolls the viewport to named sections. It holds no state beyond
// its configuration.
type Navigator struct {
	root     *Node
	viewport *Viewport

	// Duration and Ease shape every smooth scroll.
	Duration float32
	Ease     ease.TweenFunc
}

// NewNavigator creates a Navigator that resolves ids under root.
func NewNavigator(root *Node, vp *Viewport) *Navigator {
	return &Navigator{
		root:     root,
		viewport: vp,
		Duration: DefaultScrollDuration,
		Ease:     ease.InOutCubic,
	}
}

// ScrollToElement smoothly scrolls so the node named id sits just below the
// fixed header. Unknown ids are ignored.
func (nav *Navigator) ScrollToElement(id string) {
	nav.ScrollToElementOffset(id, DefaultHeaderOffset)
}

// ScrollToElementOffset scrolls so the top of the node named id lands
// offset pixels below the top of the viewport. Unknown ids are ignored.
func (nav *Navigator) ScrollToElementOffset(id string, offset float64) {
	if id == "" {
		return
	}
	n := nav.root.Query("#" + id)
	if n == nil {
		return
	}
	nav.viewport.ScrollTo(n.DocumentBounds().Y-offset, nav.Duration, nav.Ease)
}

// ScrollToTop smoothly scrolls to the top of the document.
func (nav *Navigator) ScrollToTop() {
	nav.viewport.ScrollTo(0, nav.Duration, nav.Ease)
}

// ScrollPosition returns the current scroll offset.
func (nav *Navigator) ScrollPosition() float64 {
	return nav.viewport.ScrollY
}

// IsInViewport reports whether n's layout box lies entirely inside the
// viewport, allowing threshold pixels of overhang on every side.
func (nav *Navigator) IsInViewport(n *Node, threshold float64) bool {
	if n == nil || n.IsDisposed() {
		return false
	}
	b := n.DocumentBounds()
	top := b.Y - nav.viewport.ScrollY
	return top >= -threshold &&
		b.X >= -threshold &&
		top+b.Height <= nav.viewport.Height+threshold &&
		b.X+b.Width <= nav.viewport.Width+threshold
}
