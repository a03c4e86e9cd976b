package nuclea

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// color32 is a compact RGBA color using float32, for render commands only.
type color32 struct {
	R, G, B, A float32
}

// RenderCommand is a single draw instruction emitted during scene traversal.
type RenderCommand struct {
	Transform   [6]float32
	Color       color32
	BlendMode   BlendMode
	RenderLayer uint8
	Node        *Node
	treeOrder   int // assigned during traversal for stable sort

	// image is drawn with Transform. Rect commands draw the shared white
	// pixel scaled to the node's box; nil means the image is resolved at
	// submit time.
	image *ebiten.Image
}

// affine32 converts a [6]float64 affine matrix to [6]float32.
func affine32(m [6]float64) [6]float32 {
	return [6]float32{float32(m[0]), float32(m[1]), float32(m[2]), float32(m[3]), float32(m[4]), float32(m[5])}
}

// traverse walks the node tree depth-first, updating transforms and emitting
// render commands for visible, renderable nodes.
func (s *Scene) traverse(n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool, treeOrder *int) {
	if !n.Visible {
		return
	}

	recompute := n.transformDirty || parentRecomputed
	if recompute {
		local := computeLocalTransform(n)
		n.worldTransform = multiplyAffine(parentTransform, local)
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}

	// Fully transparent subtrees draw nothing.
	if n.worldAlpha <= 0 {
		return
	}

	// Culling only suppresses this node's own command; children are always
	// traversed because they may extend past the parent's box.
	culled := s.cullActive && n.Renderable && shouldCull(n, s.viewTransform, s.cullBounds)

	if n.Renderable && !culled {
		switch n.Type {
		case NodeTypeRect:
			if n.Width > 0 && n.Height > 0 {
				*treeOrder++
				m := multiplyAffine(s.viewTransform, n.worldTransform)
				m = multiplyAffine(m, [6]float64{n.Width, 0, 0, n.Height, 0, 0})
				s.commands = append(s.commands, RenderCommand{
					Transform:   affine32(m),
					Color:       nodeColor32(n.Color, n.worldAlpha),
					BlendMode:   n.BlendMode,
					RenderLayer: n.RenderLayer,
					Node:        n,
					treeOrder:   *treeOrder,
				})
			}
		case NodeTypeImage:
			if n.image != nil {
				*treeOrder++
				s.commands = append(s.commands, RenderCommand{
					Transform:   affine32(multiplyAffine(s.viewTransform, n.worldTransform)),
					Color:       nodeColor32(n.Color, n.worldAlpha),
					BlendMode:   n.BlendMode,
					RenderLayer: n.RenderLayer,
					Node:        n,
					treeOrder:   *treeOrder,
					image:       n.image,
				})
			}
		case NodeTypeText:
			if n.TextBlock != nil && n.TextBlock.Font != nil && n.TextBlock.Content != "" {
				*treeOrder++
				s.commands = append(s.commands, RenderCommand{
					Transform:   affine32(multiplyAffine(s.viewTransform, n.worldTransform)),
					Color:       nodeColor32(n.Color, n.worldAlpha),
					BlendMode:   n.BlendMode,
					RenderLayer: n.RenderLayer,
					Node:        n,
					treeOrder:   *treeOrder,
				})
			}
			// NodeTypeContainer doesn't emit commands
		}
	}

	if len(n.children) == 0 {
		return
	}
	children := n.children
	if !n.childrenSorted {
		s.rebuildSortedChildren(n)
	}
	if n.sortedChildren != nil {
		children = n.sortedChildren
	}
	for _, child := range children {
		s.traverse(child, n.worldTransform, n.worldAlpha, recompute, treeOrder)
	}
}

func nodeColor32(c Color, alpha float64) color32 {
	return color32{float32(c.R), float32(c.G), float32(c.B), float32(c.A * alpha)}
}

// rebuildSortedChildren rebuilds the ZIndex-sorted traversal order for a node.
// Uses insertion sort: zero allocations, stable, and optimal for the typical
// case of few children that are nearly sorted (O(n) when already sorted).
func (s *Scene) rebuildSortedChildren(n *Node) {
	nc := len(n.children)
	if cap(n.sortedChildren) < nc {
		n.sortedChildren = make([]*Node, nc)
	}
	n.sortedChildren = n.sortedChildren[:nc]
	copy(n.sortedChildren, n.children)
	for i := 1; i < nc; i++ {
		key := n.sortedChildren[i]
		j := i - 1
		for j >= 0 && n.sortedChildren[j].ZIndex > key.ZIndex {
			n.sortedChildren[j+1] = n.sortedChildren[j]
			j--
		}
		n.sortedChildren[j+1] = key
	}
	n.childrenSorted = true
}

// --- Culling ---

// shouldCull reports whether n's box, in screen space, misses cullBounds.
func shouldCull(n *Node, view [6]float64, cullBounds Rect) bool {
	if n.Type == NodeTypeContainer || (n.Width == 0 && n.Height == 0) {
		return false
	}
	aabb := worldAABB(multiplyAffine(view, n.worldTransform), n.Width, n.Height)
	return !aabb.Intersects(cullBounds)
}

// worldAABB computes the axis-aligned bounding box of a w x h box under
// transform.
func worldAABB(transform [6]float64, w, h float64) Rect {
	a, b, c, d, tx, ty := transform[0], transform[1], transform[2], transform[3], transform[4], transform[5]

	x0, y0 := tx, ty
	x1, y1 := a*w+tx, b*w+ty
	x2, y2 := a*w+c*h+tx, b*w+d*h+ty
	x3, y3 := c*h+tx, d*h+ty

	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// --- Merge sort ---

// commandLessOrEqual returns true if a should sort before or at the same position as b.
// Using <= for treeOrder ensures stability.
func commandLessOrEqual(a, b RenderCommand) bool {
	if a.RenderLayer != b.RenderLayer {
		return a.RenderLayer < b.RenderLayer
	}
	return a.treeOrder <= b.treeOrder
}

// mergeSort sorts s.commands in-place using s.sortBuf as scratch space.
// Bottom-up merge sort: zero allocations after the sort buffer reaches high-water mark.
func (s *Scene) mergeSort() {
	n := len(s.commands)
	if n <= 1 {
		return
	}
	if cap(s.sortBuf) < n {
		s.sortBuf = make([]RenderCommand, n)
	}
	s.sortBuf = s.sortBuf[:n]

	a := s.commands
	b := s.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(s.commands, s.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []RenderCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if commandLessOrEqual(src[i], src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}

// --- Submission ---

// submit draws every sorted command onto target.
func (s *Scene) submit(target *ebiten.Image) {
	var op ebiten.DrawImageOptions
	for i := range s.commands {
		cmd := &s.commands[i]
		img := cmd.image
		if img == nil {
			switch cmd.Node.Type {
			case NodeTypeRect:
				img = ensureWhitePixel()
			case NodeTypeText:
				img = cmd.Node.TextBlock.textImage()
			}
		}
		if img == nil {
			continue
		}
		op.GeoM = commandGeoM(cmd)
		op.ColorScale.Reset()
		a := cmd.Color.A
		op.ColorScale.Scale(cmd.Color.R*a, cmd.Color.G*a, cmd.Color.B*a, a)
		op.Blend = cmd.BlendMode.EbitenBlend()
		target.DrawImage(img, &op)
	}
}

// commandGeoM converts a command's transform into an ebiten.GeoM.
func commandGeoM(cmd *RenderCommand) ebiten.GeoM {
	var m ebiten.GeoM
	m.SetElement(0, 0, float64(cmd.Transform[0]))
	m.SetElement(1, 0, float64(cmd.Transform[1]))
	m.SetElement(0, 1, float64(cmd.Transform[2]))
	m.SetElement(1, 1, float64(cmd.Transform[3]))
	m.SetElement(0, 2, float64(cmd.Transform[4]))
	m.SetElement(1, 2, float64(cmd.Transform[5]))
	return m
}
