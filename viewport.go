package nuclea

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds an active smooth scroll.
type scrollAnim struct {
	tween  *gween.Tween
	target float64
}

// Viewport is the window onto the document: a vertical scroll position and a
// size. It plays the role a browser window plays for a web page. Scroll and
// resize changes are recorded so the trigger evaluator can run one
// measurement pass per frame instead of one per event.
type Viewport struct {
	// ScrollY is the document coordinate shown at the top edge of the screen.
	ScrollY float64
	// Width and Height are the visible size in pixels.
	Width, Height float64
	// DocumentHeight bounds scrolling to [0, DocumentHeight-Height].
	// Zero means unbounded.
	DocumentHeight float64

	// CullEnabled skips nodes whose world AABB doesn't intersect the
	// visible bounds.
	CullEnabled bool

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	dirty         bool

	scrolled bool
	resized  bool

	scroll *scrollAnim
}

// newViewport creates a Viewport of the given size scrolled to the top.
func newViewport(w, h float64) *Viewport {
	return &Viewport{
		Width:       w,
		Height:      h,
		CullEnabled: true,
		dirty:       true,
		resized:     true,
	}
}

// MaxScroll returns the largest valid ScrollY.
func (v *Viewport) MaxScroll() float64 {
	if v.DocumentHeight <= 0 {
		return math.Inf(1)
	}
	return math.Max(0, v.DocumentHeight-v.Height)
}

func (v *Viewport) clamp(y float64) float64 {
	return math.Max(0, math.Min(y, v.MaxScroll()))
}

// ScrollTo animates the scroll position to y over duration seconds. The
// target is clamped to the scrollable range. A non-positive duration jumps.
func (v *Viewport) ScrollTo(y float64, duration float32, easeFn ease.TweenFunc) {
	y = v.clamp(y)
	if duration <= 0 {
		v.scroll = nil
		v.SetScroll(y)
		return
	}
	if easeFn == nil {
		easeFn = ease.InOutCubic
	}
	v.scroll = &scrollAnim{
		tween:  gween.New(float32(v.ScrollY), float32(y), duration, easeFn),
		target: y,
	}
}

// ScrollBy moves the scroll position immediately, cancelling any smooth
// scroll in progress. Used for wheel and keyboard scrolling.
func (v *Viewport) ScrollBy(dy float64) {
	v.scroll = nil
	v.SetScroll(v.ScrollY + dy)
}

// SetScroll jumps to y (clamped).
func (v *Viewport) SetScroll(y float64) {
	y = v.clamp(y)
	if y != v.ScrollY {
		v.ScrollY = y
		v.scrolled = true
		v.dirty = true
	}
}

// Scrolling reports whether a smooth scroll is in progress.
func (v *Viewport) Scrolling() bool {
	return v.scroll != nil
}

// ScrollTarget returns the destination of the smooth scroll in progress.
func (v *Viewport) ScrollTarget() (float64, bool) {
	if v.scroll == nil {
		return 0, false
	}
	return v.scroll.target, true
}

// SetSize resizes the viewport. Equivalent to a window resize event.
func (v *Viewport) SetSize(w, h float64) {
	if w == v.Width && h == v.Height {
		return
	}
	v.Width = w
	v.Height = h
	v.resized = true
	v.dirty = true
	v.SetScroll(v.ScrollY)
}

// SetDocumentHeight updates the scroll bound, re-clamping the position.
func (v *Viewport) SetDocumentHeight(h float64) {
	v.DocumentHeight = h
	v.SetScroll(v.ScrollY)
}

// update advances the smooth scroll. Called from Scene.Update().
func (v *Viewport) update(dt float32) {
	if v.scroll == nil {
		return
	}
	val, done := v.scroll.tween.Update(dt)
	if done {
		val = float32(v.scroll.target)
		v.scroll = nil
	}
	v.SetScroll(float64(val))
}

// consumeChanges returns and clears the scroll/resize flags.
func (v *Viewport) consumeChanges() (scrolled, resized bool) {
	scrolled, resized = v.scrolled, v.resized
	v.scrolled, v.resized = false, false
	return
}

// computeViewMatrix recomputes the cached view matrix if dirty.
func (v *Viewport) computeViewMatrix() [6]float64 {
	if !v.dirty {
		return v.viewMatrix
	}
	v.dirty = false
	v.viewMatrix = [6]float64{1, 0, 0, 1, 0, -v.ScrollY}
	v.invViewMatrix = invertAffine(v.viewMatrix)
	return v.viewMatrix
}

// WorldToScreen converts document coordinates to screen coordinates.
func (v *Viewport) WorldToScreen(wx, wy float64) (sx, sy float64) {
	v.computeViewMatrix()
	return transformPoint(v.viewMatrix, wx, wy)
}

// ScreenToWorld converts screen coordinates to document coordinates.
func (v *Viewport) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	v.computeViewMatrix()
	return transformPoint(v.invViewMatrix, sx, sy)
}

// VisibleBounds returns the visible area in document coordinates.
func (v *Viewport) VisibleBounds() Rect {
	return Rect{X: 0, Y: v.ScrollY, Width: v.Width, Height: v.Height}
}
