package nuclea

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform computes the local affine matrix from the node's
// layout position and presentation. Returns [a, b, c, d, tx, ty].
//
// Scale and rotation pivot around the center of the layout box:
//
//	Translate(-cx, -cy) -> Scale -> Rotate -> Translate(X+OffsetX+cx, Y+OffsetY+cy)
func computeLocalTransform(n *Node) [6]float64 {
	sx := n.ScaleX
	sy := n.ScaleY
	cx := n.Width / 2
	cy := n.Height / 2

	tx := n.X + n.OffsetX
	ty := n.Y + n.OffsetY

	if n.Rotation == 0 {
		return [6]float64{sx, 0, 0, sy, tx + cx - cx*sx, ty + cy - cy*sy}
	}

	sin, cos := math.Sincos(n.Rotation)

	// After Scale * Translate(-center):
	//   a=sx, b=0, c=0, d=sy, tx=-cx*sx, ty=-cy*sy
	preTx := -cx * sx
	preTy := -cy * sy

	// After Rotate:
	ra := cos * sx
	rb := sin * sx
	rc := -sin * sy
	rd := cos * sy
	rtx := cos*preTx - sin*preTy
	rty := sin*preTx + cos*preTy

	return [6]float64{ra, rb, rc, rd, rtx + tx + cx, rty + ty + cy}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant near 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// updateWorldTransform recomputes a node's worldTransform and worldAlpha.
// parentRecomputed indicates whether the parent was recomputed this frame,
// which forces recomputation of this node even if it's not dirty.
func updateWorldTransform(n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		local := computeLocalTransform(n)
		n.worldTransform = multiplyAffine(parentTransform, local)
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}

	for _, child := range n.children {
		updateWorldTransform(child, n.worldTransform, n.worldAlpha, recompute)
	}
}

// --- Layout setters ---

// SetPosition sets the node's layout X and Y and marks it dirty.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
	n.transformDirty = true
}

// SetSize sets the node's layout box size and marks it dirty.
func (n *Node) SetSize(w, h float64) {
	n.Width = w
	n.Height = h
	n.transformDirty = true
}

// --- Presentation setters ---

// SetOffset sets the node's presentation translation and marks it dirty.
func (n *Node) SetOffset(x, y float64) {
	n.OffsetX = x
	n.OffsetY = y
	n.transformDirty = true
}

// SetScale sets the node's ScaleX and ScaleY and marks it dirty.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX = sx
	n.ScaleY = sy
	n.transformDirty = true
}

// SetRotation sets the node's rotation (in radians) and marks it dirty.
func (n *Node) SetRotation(r float64) {
	n.Rotation = r
	n.transformDirty = true
}

// SetAlpha sets the node's alpha and marks it dirty.
func (n *Node) SetAlpha(a float64) {
	n.Alpha = a
	n.transformDirty = true
}

// VisualState reads the node's current presentation. Scale reports ScaleX.
func (n *Node) VisualState() VisualState {
	return VisualState{
		Opacity:    n.Alpha,
		TranslateX: n.OffsetX,
		TranslateY: n.OffsetY,
		Scale:      n.ScaleX,
	}
}

// ApplyVisualState writes v to the node's presentation fields.
func (n *Node) ApplyVisualState(v VisualState) {
	n.Alpha = v.Opacity
	n.OffsetX = v.TranslateX
	n.OffsetY = v.TranslateY
	n.ScaleX = v.Scale
	n.ScaleY = v.Scale
	n.transformDirty = true
}

// MarkDirty marks the node's transform as dirty, forcing recomputation
// on the next frame. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// --- Coordinate conversion ---

// WorldToLocal converts a world-space point to this node's local coordinate space.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	inv := invertAffine(n.worldTransform)
	return transformPoint(inv, wx, wy)
}

// LocalToWorld converts a local-space point to world-space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return transformPoint(n.worldTransform, lx, ly)
}
