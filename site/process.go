package site

import (
	"strconv"

	"github.com/phanxgames/nuclea"
)

type processSection struct {
	c Process

	heading *nuclea.Node
	steps   *nuclea.Node
	cta     *nuclea.Node
	button  *Button
}

func (s *processSection) anchor() string { return s.c.Anchor }

func (s *processSection) build(b *builder) *nuclea.Node {
	f := b.fonts()
	box := b.section(s.c.Anchor, ColorSurface)
	col := box.body

	s.heading = col.addCentered(NewSectionHeading(f, s.c.Anchor+"_heading", s.c.Heading, col.width, true), 80)

	w := min(col.width, 1024)
	cols, gap := 1, 32.0
	if b.width >= BreakpointTablet {
		cols, gap = max(len(s.c.Steps), 1), 16
	}
	cells := make([]gridCell, len(s.c.Steps))
	for i, st := range s.c.Steps {
		cells[i] = gridCell{node: s.step(b, i, st, cellWidth(w, gap, cols, 1)), span: 1}
	}
	steps := grid(s.c.Anchor+"_steps", w, gap, cols, cells)
	if cols > 1 {
		line := nuclea.NewRect(s.c.Anchor+"_line", w, 2, ColorElectric.WithAlpha(0.3))
		line.SetPosition(0, 40)
		line.SetZIndex(-1)
		steps.AddChild(line)
	}
	s.steps = col.addCentered(steps, 80)
	s.cta = col.addCentered(s.banner(b, col.width), 0)
	return box.done()
}

func (s *processSection) step(b *builder, i int, st Step, w float64) *nuclea.Node {
	f := b.fonts()
	accent := st.Accent
	if accent == "" {
		accent = AccentPurple
	}
	name := "process_step_" + strconv.Itoa(i+1)
	c := newColumn(name, w)
	c.node.AddClass("process-step")

	ring := nuclea.NewRect(name+"_ring", 80, 80, ColorSurfaceRaised)
	ring.AddChild(frame(name+"_ring_border", 80, 80, 2, accent.Color().WithAlpha(0.5)))
	icon := NewIconBadge(f, st.Icon, accent, 48)
	icon.SetPosition(16, 16)
	ring.AddChild(icon)
	num := nuclea.NewRect(name+"_number", 32, 32, accent.Color())
	digit := newText(name+"_digit", strconv.Itoa(i+1), f.Small, ColorText)
	digit.SetPosition((32-digit.Width)/2, (32-digit.Height)/2)
	num.AddChild(digit)
	num.SetPosition(56, -8)
	ring.AddChild(num)
	c.addCentered(ring, 24)

	c.addCentered(wrappedText(name+"_title", st.Title, f.Heading, ColorText, w, nuclea.TextAlignCenter), 12)
	c.addCentered(wrappedText(name+"_desc", collapse(st.Description), f.Small, ColorMuted, min(w, 320), nuclea.TextAlignCenter), 0)
	return c.node
}

// banner is the call to action under the steps.
func (s *processSection) banner(b *builder, w float64) *nuclea.Node {
	f := b.fonts()
	name := s.c.Anchor + "_cta"
	s.button = b.button(name+"_button", s.c.CTA.Label, ButtonPrimary, ButtonMedium)
	s.button.OnClick = func() { b.nav(s.c.CTA.Target) }

	text := newColumn(name+"_text", 0)
	title := newText(name+"_title", s.c.CTATitle, f.Body, ColorText)
	sub := newText(name+"_subtitle", s.c.CTAText, f.Small, ColorMuted)
	text.width = max(title.Width, sub.Width)
	text.add(title, 4)
	text.add(sub, 0)

	var inner *nuclea.Node
	if b.width >= 640 && text.width+16+s.button.Node.Width+48 <= w {
		inner = row(name+"_row", 16, text.node, s.button.Node)
	} else {
		stack := newColumn(name+"_stack", max(text.width, s.button.Node.Width))
		stack.addCentered(text.node, 16)
		stack.addCentered(s.button.Node, 0)
		inner = stack.node
	}
	box := nuclea.NewRect(name, inner.Width+48, inner.Height+48, ColorElectric.WithAlpha(0.1))
	box.AddChild(frame(name+"_border", box.Width, box.Height, 1, ColorElectric.WithAlpha(0.2)))
	inner.SetPosition(24, 24)
	box.AddChild(inner)
	return box
}

func (s *processSection) reveal(o *nuclea.Orchestrator) []*nuclea.Reveal {
	return []*nuclea.Reveal{
		o.FadeInOnScroll(s.heading, nuclea.WithY(40)),
		o.StaggerOnScroll(s.steps, ".process-step", nuclea.WithStagger(0.2), nuclea.WithY(40)),
		o.FadeInOnScroll(s.cta, nuclea.WithY(30), nuclea.WithDelay(0.5)),
	}
}
