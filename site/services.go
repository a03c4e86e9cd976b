package site

import (
	"github.com/phanxgames/nuclea"
)

// tallCardHeight is the minimum height of a "tall" service card.
const tallCardHeight = 400

// servicesSection shows a heading over a grid of service cards. The bento
// layout leads with a full-width featured card and honors card sizes.
type servicesSection struct {
	g     ServiceGroup
	bento bool

	heading *nuclea.Node
	grid    *nuclea.Node
}

func (s *servicesSection) anchor() string { return s.g.Anchor }

func (s *servicesSection) build(b *builder) *nuclea.Node {
	bg := ColorSurface
	if s.bento {
		bg = ColorBackground
	}
	box := b.section(s.g.Anchor, bg)
	col := box.body

	s.heading = col.addCentered(NewSectionHeading(b.fonts(), s.g.Anchor+"_heading", s.g.Heading, col.width, true), 80)

	cols := b.cols(3)
	cards := s.g.Cards
	s.grid = nuclea.NewContainer(s.g.Anchor + "_grid")
	y := 0.0
	if s.bento && len(cards) > 0 {
		featured := s.card(b, cards[0], col.width, true)
		s.grid.AddChild(featured.Node)
		y = featured.Node.Height + 32
		cards = cards[1:]
	}

	cells := make([]gridCell, len(cards))
	for i, sc := range cards {
		span := 1
		if s.bento && (sc.Size == SizeWide || sc.Size == SizeLarge) {
			span = 2
		}
		card := s.card(b, sc, cellWidth(col.width, gridGap, cols, span), false)
		if sc.Size == SizeTall && card.Node.Height < tallCardHeight {
			card.SetHeight(tallCardHeight)
		}
		cells[i] = gridCell{node: card.Node, span: span, fit: card.SetHeight}
	}
	rest := grid(s.g.Anchor+"_cards", col.width, gridGap, cols, cells)
	rest.SetPosition(0, y)
	s.grid.AddChild(rest)
	s.grid.SetSize(col.width, y+rest.Height)
	col.add(s.grid, 0)
	return box.done()
}

// card renders one service. Featured cards use the larger title and lay
// their features out in a row.
func (s *servicesSection) card(b *builder, sc ServiceCard, w float64, featured bool) *GlassCard {
	f := b.fonts()
	accent := sc.Accent
	if accent == "" {
		accent = AccentPurple
	}
	card := NewGlassCard(b.am(), "service_"+sc.ID, accent, w)
	card.Node.AddClass("service-card")
	if sc.Size != "" {
		card.Node.AddClass("size-" + sc.Size)
	}
	cw := card.ContentWidth()
	body := newColumn(card.Node.Name+"_content", cw)

	iconSize, titleFont := 56.0, f.Heading
	if featured {
		iconSize, titleFont = 64, f.Title
	}
	body.add(NewIconBadge(f, sc.Icon, accent, iconSize), 20)
	body.add(wrappedText(card.Node.Name+"_title", sc.Title, titleFont, ColorText, cw, nuclea.TextAlignLeft), 12)
	body.add(wrappedText(card.Node.Name+"_desc", collapse(sc.Description), f.Body, ColorMuted, cw, nuclea.TextAlignLeft), 20)

	if featured {
		chips := make([]*nuclea.Node, len(sc.Features))
		for i, feat := range sc.Features {
			chips[i] = pill(f, card.Node.Name+"_feature", feat, ColorText, ColorMuted)
		}
		body.add(flow(card.Node.Name+"_features", cw, 12, chips), 0)
	} else {
		for _, feat := range sc.Features {
			dot := nuclea.NewRect(card.Node.Name+"_dot", 6, 6, accent.Color())
			label := newText(card.Node.Name+"_feature", feat, f.Small, ColorMuted)
			body.add(row(card.Node.Name+"_feature_row", 8, dot, label), 8)
		}
	}
	card.Body.AddChild(body.node)
	card.Fit()
	return card
}

func (s *servicesSection) reveal(o *nuclea.Orchestrator) []*nuclea.Reveal {
	return []*nuclea.Reveal{
		o.FadeInOnScroll(s.heading, nuclea.WithY(40)),
		o.StaggerOnScroll(s.grid, ".service-card", nuclea.WithStagger(0.1), nuclea.WithY(40)),
	}
}

// flow wraps nodes onto as many rows as needed to fit width w.
func flow(name string, w, gap float64, nodes []*nuclea.Node) *nuclea.Node {
	f := nuclea.NewContainer(name)
	x, y, lineH := 0.0, 0.0, 0.0
	for _, n := range nodes {
		if x > 0 && x+n.Width > w {
			x, y = 0, y+lineH+gap
			lineH = 0
		}
		n.SetPosition(x, y)
		f.AddChild(n)
		x += n.Width + gap
		lineH = max(lineH, n.Height)
	}
	f.SetSize(w, y+lineH)
	return f
}
