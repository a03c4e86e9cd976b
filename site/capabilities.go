package site

import (
	"math"
	"strconv"

	"github.com/phanxgames/nuclea"
)

// marqueeSpeed is how fast the technology strip scrolls, in pixels per second.
const marqueeSpeed = 40

type capabilitiesSection struct {
	c Capabilities

	heading *nuclea.Node
	grid    *nuclea.Node
	trust   *nuclea.Node
	track   *nuclea.Node
}

func (s *capabilitiesSection) anchor() string { return s.c.Anchor }

func (s *capabilitiesSection) build(b *builder) *nuclea.Node {
	f := b.fonts()
	box := b.section(s.c.Anchor, ColorBackground)
	col := box.body

	s.heading = col.addCentered(NewSectionHeading(f, s.c.Anchor+"_heading", s.c.Heading, col.width, true), 64)

	w := min(col.width, 1024)
	cols := min(b.cols(2), 2)
	cells := make([]gridCell, len(s.c.Items))
	for i, item := range s.c.Items {
		accent := AccentPurple
		if i%2 == 1 {
			accent = AccentCyan
		}
		card := s.item(b, i, item, accent, cellWidth(w, 32, cols, 1))
		cells[i] = gridCell{node: card.Node, span: 1, fit: card.SetHeight}
	}
	s.grid = col.addCentered(grid(s.c.Anchor+"_grid", w, 32, cols, cells), 96)

	s.trust = col.add(s.marquee(b, col.width), 0)
	return box.done()
}

func (s *capabilitiesSection) item(b *builder, i int, c Capability, accent Accent, w float64) *GlassCard {
	f := b.fonts()
	card := NewGlassCard(b.am(), "capability_"+strconv.Itoa(i), accent, w)
	card.Node.AddClass("capability-item")
	icon := NewIconBadge(f, c.Icon, accent, 64)
	textW := card.ContentWidth() - icon.Width - 20
	text := newColumn(card.Node.Name+"_text", textW)
	text.add(wrappedText(card.Node.Name+"_title", c.Title, f.Heading, ColorText, textW, nuclea.TextAlignLeft), 8)
	text.add(wrappedText(card.Node.Name+"_desc", collapse(c.Description), f.Body, ColorMuted, textW, nuclea.TextAlignLeft), 16)
	stat := newText(card.Node.Name+"_stat", c.Stat, f.Title, accent.Color())
	label := newText(card.Node.Name+"_stat_label", c.StatLabel, f.Small, ColorDim)
	text.add(row(card.Node.Name+"_stats", 8, stat, label), 0)

	text.node.SetPosition(icon.Width+20, 0)
	card.Body.AddChild(icon)
	card.Body.AddChild(text.node)
	card.Fit()
	return card
}

// marquee is the trusted technologies strip. The chips are laid out twice
// end to end and the track wraps after one copy so the loop is seamless.
func (s *capabilitiesSection) marquee(b *builder, w float64) *nuclea.Node {
	f := b.fonts()
	out := newColumn(s.c.Anchor+"_trust", w)
	out.addCentered(newText(s.c.Anchor+"_trust_title", s.c.TrustTitle, f.Small, ColorDim), 40)

	chips := func(copyN int) *nuclea.Node {
		nodes := make([]*nuclea.Node, len(s.c.Technologies))
		for i, t := range s.c.Technologies {
			name := "tech_" + strconv.Itoa(copyN) + "_" + strconv.Itoa(i)
			icon := NewIconBadge(f, t.Icon, AccentPurple, 40)
			label := newText(name+"_label", t.Name, f.Body, ColorMuted)
			chip := row(name, 12, icon, label)
			bg := nuclea.NewRect(name+"_bg", chip.Width+48, chip.Height+24, ColorText.WithAlpha(0.05))
			bg.AddChild(frame(name+"_border", bg.Width, bg.Height, 1, ColorText.WithAlpha(0.1)))
			chip.SetPosition(24, 12)
			bg.AddChild(chip)
			bg.AddClass("tech")
			nodes[i] = bg
		}
		return row("tech_set_"+strconv.Itoa(copyN), 48, nodes...)
	}
	first, second := chips(0), chips(1)
	s.track = row(s.c.Anchor+"_track", 48, first, second)
	period := first.Width + 48

	strip := nuclea.NewContainer(s.c.Anchor + "_strip")
	strip.SetSize(w, s.track.Height+32)
	s.track.SetPosition(0, 16)
	strip.AddChild(s.track)
	if period > 0 {
		s.track.OnUpdate = func(dt float64) {
			s.track.SetPosition(-math.Mod(-s.track.X+dt*marqueeSpeed, period), s.track.Y)
		}
	}
	out.add(strip, 0)
	return out.node
}

func (s *capabilitiesSection) reveal(o *nuclea.Orchestrator) []*nuclea.Reveal {
	return []*nuclea.Reveal{
		o.FadeInOnScroll(s.heading, nuclea.WithY(40)),
		o.StaggerOnScroll(s.grid, ".capability-item", nuclea.WithStagger(0.15), nuclea.WithY(40)),
		o.FadeInOnScroll(s.trust, nuclea.WithY(30), nuclea.WithDelay(0.3)),
	}
}
