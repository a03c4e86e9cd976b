package nuclea

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const maxTweenFields = 5

// TweenGroup animates up to 5 float64 fields on a Node simultaneously.
// Create one via TweenColor or TweenVisual and call Update(dt) each frame. The
// group auto-applies values and marks the node dirty. If the target node is
// disposed, the group stops immediately.
//
// TweenGroup is the raw primitive; Animator sequences groups across many
// nodes with delays and stagger.
type TweenGroup struct {
	tweens [maxTweenFields]*gween.Tween
	count  int
	fields [maxTweenFields]*float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds, writes values to the target fields,
// and marks the node dirty. If the target node has been disposed, Done is set
// to true and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
}

func (g *TweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[g.count] = field
	g.count++
}

// TweenColor creates a TweenGroup that animates all four components of
// node.Color (R, G, B, A) to the target color over the specified duration.
func TweenColor(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.Color.R, to.R, duration, fn)
	g.add(&node.Color.G, to.G, duration, fn)
	g.add(&node.Color.B, to.B, duration, fn)
	g.add(&node.Color.A, to.A, duration, fn)
	return g
}

// TweenVisual creates a TweenGroup that animates the node's whole
// presentation (opacity, translation, scale) from its current values to v.
func TweenVisual(node *Node, v VisualState, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.Alpha, v.Opacity, duration, fn)
	g.add(&node.OffsetX, v.TranslateX, duration, fn)
	g.add(&node.OffsetY, v.TranslateY, duration, fn)
	g.add(&node.ScaleX, v.Scale, duration, fn)
	g.add(&node.ScaleY, v.Scale, duration, fn)
	return g
}
