package site

import (
	"fmt"
	"strconv"

	"github.com/phanxgames/nuclea"
)

type footerSection struct {
	c     Footer
	brand string

	copyright *nuclea.Node
}

func (s *footerSection) anchor() string { return "footer" }

func (s *footerSection) build(b *builder) *nuclea.Node {
	f := b.fonts()
	root := nuclea.NewContainer(s.anchor())
	root.AddClass("section")
	bg := nuclea.NewRect("footer_bg", b.width, 0, ColorSurface)
	root.AddChild(bg)
	root.AddChild(nuclea.NewRect("footer_line", b.width, 1, ColorText.WithAlpha(0.05)))

	col := newColumn("footer_content", b.inner)
	col.node.SetPosition(b.left(), 64)
	root.AddChild(col.node)

	cols := 1
	switch {
	case b.desktop():
		cols = len(s.c.Groups) + 1
	case b.width >= BreakpointTablet:
		cols = 2
	}
	cw := cellWidth(b.inner, 32, cols, 1)

	brand := newColumn("footer_brand", cw)
	brand.add(newText("footer_brand_name", s.brand, f.Heading, ColorText), 16)
	brand.add(wrappedText("footer_tagline", collapse(s.c.Tagline), f.Small, ColorMuted, min(cw, 320), nuclea.TextAlignLeft), 24)
	brand.add(socialRow(b, "footer_socials", s.c.Socials), 0)

	cells := []gridCell{{node: brand.node, span: 1}}
	for i, g := range s.c.Groups {
		name := "footer_group_" + strconv.Itoa(i)
		gc := newColumn(name, cw)
		gc.add(newText(name+"_title", g.Title, f.Body, ColorText), 16)
		for j, l := range g.Links {
			link := newText(name+"_link_"+strconv.Itoa(j), l.Label, f.Small, ColorMuted)
			link.AddClass("footer-link")
			link.Interactable = true
			hoverTint(link, link, ColorMuted, ColorElectricLight)
			link.OnClick = func(nuclea.ClickContext) { b.open(l) }
			gc.add(link, 12)
		}
		cells = append(cells, gridCell{node: gc.node, span: 1})
	}
	col.add(grid("footer_grid", b.inner, 32, cols, cells), 48)

	col.add(nuclea.NewRect("footer_divider", b.inner, 1, ColorText.WithAlpha(0.05)), 32)
	s.copyright = col.add(newText("footer_copyright",
		fmt.Sprintf("© %d %s. All rights reserved.", b.now.Year(), s.brand), f.Small, ColorDim), 0)

	h := col.y + 64 + 32
	bg.SetSize(b.width, h)
	root.SetSize(b.width, h)
	return root
}

func (s *footerSection) reveal(*nuclea.Orchestrator) []*nuclea.Reveal { return nil }
