package nuclea

import "strings"

// Selectors are deliberately tiny: "#name" matches Node.Name, ".class"
// matches Node.Classes, and a bare word also matches Node.Name. Compound
// selectors such as ".card.large" require every class.

type selector struct {
	name    string
	classes []string
}

func parseSelector(sel string) (selector, bool) {
	sel = strings.TrimSpace(sel)
	if sel == "" {
		return selector{}, false
	}
	var s selector
	switch sel[0] {
	case '#':
		s.name = sel[1:]
		return s, s.name != ""
	case '.':
		for _, c := range strings.Split(sel[1:], ".") {
			if c == "" {
				return selector{}, false
			}
			s.classes = append(s.classes, c)
		}
		return s, true
	default:
		s.name = sel
		return s, true
	}
}

func (s selector) matches(n *Node) bool {
	if s.name != "" && n.Name != s.name {
		return false
	}
	for _, c := range s.classes {
		if !n.HasClass(c) {
			return false
		}
	}
	return true
}

// QueryAll returns every descendant of n matching sel in document order
// (depth-first, child order, ZIndex ignored). n itself is never included.
// An invalid selector matches nothing.
func (n *Node) QueryAll(sel string) []*Node {
	s, ok := parseSelector(sel)
	if !ok {
		return nil
	}
	var out []*Node
	var walk func(*Node)
	walk = func(p *Node) {
		for _, c := range p.children {
			if s.matches(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// Query returns the first descendant of n matching sel, or nil.
func (n *Node) Query(sel string) *Node {
	s, ok := parseSelector(sel)
	if !ok {
		return nil
	}
	return findFirst(n, s)
}

func findFirst(p *Node, s selector) *Node {
	for _, c := range p.children {
		if s.matches(c) {
			return c
		}
		if found := findFirst(c, s); found != nil {
			return found
		}
	}
	return nil
}

// DocumentBounds returns the node's layout box in root coordinates. Only
// layout positions are summed; presentation offsets, scale and rotation are
// ignored, so an element that is being revealed does not move its own
// measurement.
func (n *Node) DocumentBounds() Rect {
	x, y := 0.0, 0.0
	for p := n; p != nil; p = p.Parent {
		x += p.X
		y += p.Y
	}
	return Rect{X: x, Y: y, Width: n.Width, Height: n.Height}
}

// Attached reports whether the node is live and connected to root.
func (n *Node) Attached(root *Node) bool {
	if n == nil || n.disposed {
		return false
	}
	return isAncestor(root, n)
}
