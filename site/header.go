package site

import (
	"github.com/phanxgames/nuclea"
	"github.com/tanema/gween/ease"
)

// ScrolledThreshold is the scroll offset past which the header shows its
// solid background.
const ScrolledThreshold = 50

// Header is the fixed navigation bar. It lives in the scene overlay, turns
// solid once the page scrolls and collapses its links into a menu below the
// desktop breakpoint.
type Header struct {
	node  *nuclea.Node
	bar   *nuclea.Node
	look  *nuclea.StateTable
	links []*nuclea.Node
	quote *Button

	mobile bool
	toggle *Button
	menu   *nuclea.Node
	drawer *nuclea.StateTable
}

func newHeader(b *builder, c *Content) *Header {
	f := b.fonts()
	h := &Header{mobile: !b.desktop()}
	h.node = nuclea.NewContainer("header")
	h.node.SetSize(b.width, HeaderHeight)

	h.bar = nuclea.NewRect("header_bar", b.width, HeaderHeight, ColorBackground.WithAlpha(0.9))
	line := nuclea.NewRect("header_line", b.width, 1, ColorElectric.WithAlpha(0.1))
	line.SetPosition(0, HeaderHeight-1)
	h.bar.AddChild(line)
	h.node.AddChild(h.bar)

	h.look = nuclea.NewStateTable(b.am(), "top").
		State("top", nuclea.VisualState{Opacity: 0, Scale: 1}).
		State("scrolled", nuclea.Visible).
		Transition(nuclea.AnyState, nuclea.AnyState, nuclea.Transition{Duration: 0.3, Ease: ease.OutQuad})
	h.look.Bind(h.bar)

	logo := h.logo(b, c.Brand)
	logo.SetPosition(b.left(), (HeaderHeight-logo.Height)/2)
	h.node.AddChild(logo)

	right := b.left() + b.inner
	if h.mobile {
		h.buildMenu(b, c, right)
	} else {
		h.quote = b.button("header_quote", c.QuoteText, ButtonPrimary, ButtonMedium)
		h.quote.OnClick = func() { b.nav(c.Contact.Anchor) }
		q := h.quote.Node
		q.SetPosition(right-q.Width, (HeaderHeight-q.Height)/2)
		h.node.AddChild(q)

		links := make([]*nuclea.Node, len(c.Nav))
		for i, item := range c.Nav {
			links[i] = h.navLink(b, "nav_"+item.Anchor(), item, f.Body)
		}
		r := row("header_nav", 32, links...)
		r.SetPosition(q.X-48-r.Width, (HeaderHeight-r.Height)/2)
		h.node.AddChild(r)
	}

	scroll := b.scene.Viewport()
	h.node.OnUpdate = func(float64) {
		if scroll.ScrollY > ScrolledThreshold {
			h.look.Set("scrolled")
		} else {
			h.look.Set("top")
		}
	}
	return h
}

func (h *Header) logo(b *builder, brand string) *nuclea.Node {
	mark := nuclea.NewRect("logo_mark", 40, 40, ColorElectric)
	core := nuclea.NewRect("logo_core", 8, 8, ColorText)
	core.SetPosition(16, 16)
	mark.AddChild(core)
	for i, r := range []float64{0, 1.0472, 2.0944} {
		orbit := nuclea.NewRect("logo_orbit", 32, 2, ColorText.WithAlpha(0.8-0.2*float64(i)))
		orbit.SetPosition(4, 19)
		orbit.SetRotation(r)
		mark.AddChild(orbit)
	}
	name := newText("logo_name", brand, b.fonts().Heading, ColorText)
	logo := row("logo", 8, mark, name)
	logo.Interactable = true
	logo.HitShape = nuclea.HitRect{Width: logo.Width, Height: logo.Height}
	logo.OnClick = func(nuclea.ClickContext) {
		h.CloseMenu()
		b.scene.Navigator().ScrollToTop()
	}
	return logo
}

func (h *Header) navLink(b *builder, name string, item NavItem, font nuclea.Font) *nuclea.Node {
	link := newText(name, item.Label, font, ColorMuted)
	link.AddClass("nav-link")
	link.Interactable = true
	link.UserData = item.Anchor()
	hoverTint(link, link, ColorMuted, ColorText)
	link.OnClick = func(nuclea.ClickContext) { b.nav(item.Anchor()) }
	h.links = append(h.links, link)
	return link
}

func (h *Header) buildMenu(b *builder, c *Content, right float64) {
	h.toggle = b.button("menu_toggle", "Menu", ButtonGhost, ButtonMedium)
	t := h.toggle.Node
	t.SetPosition(right-t.Width, (HeaderHeight-t.Height)/2)
	h.toggle.OnClick = h.ToggleMenu
	h.node.AddChild(t)

	col := newColumn("menu_links", b.inner)
	for _, item := range c.Nav {
		col.add(h.navLink(b, "menu_"+item.Anchor(), item, b.fonts().Large), 16)
	}
	col.space(8)
	quote := b.button("menu_quote", c.QuoteText, ButtonPrimary, ButtonMedium)
	quote.SetWidth(b.inner)
	quote.OnClick = func() { b.nav(c.Contact.Anchor) }
	col.add(quote.Node, 0)
	h.quote = quote

	h.menu = nuclea.NewRect("menu", b.width, col.y+48, ColorSurface.WithAlpha(0.95))
	h.menu.SetPosition(0, HeaderHeight)
	col.node.SetPosition(b.left(), 24)
	h.menu.AddChild(col.node)
	h.node.AddChild(h.menu)

	h.drawer = nuclea.NewStateTable(b.am(), "closed").
		State("closed", nuclea.VisualState{Opacity: 0, TranslateY: -10, Scale: 1}).
		State("open", nuclea.Visible).
		Transition("closed", "open", nuclea.Transition{Duration: 0.2, Ease: ease.OutQuad}).
		Transition("open", "closed", nuclea.Transition{Duration: 0.2, Ease: ease.InQuad})
	h.drawer.Bind(h.menu)
	h.drawer.OnChange = func(_, to string) {
		if to == "open" {
			h.menu.Visible = true
			h.toggle.SetLabel("Close")
		} else {
			h.toggle.SetLabel("Menu")
		}
	}
	h.menu.Visible = false
	h.menu.OnUpdate = func(float64) {
		if h.drawer.Current() == "closed" && !h.drawer.Animating() {
			h.menu.Visible = false
		}
	}
}

// Scrolled reports whether the header shows its scrolled look.
func (h *Header) Scrolled() bool { return h.look.Current() == "scrolled" }

// Mobile reports whether the header uses the collapsed menu.
func (h *Header) Mobile() bool { return h.mobile }

// MenuOpen reports whether the mobile menu is open.
func (h *Header) MenuOpen() bool { return h.drawer != nil && h.drawer.Current() == "open" }

// ToggleMenu opens or closes the mobile menu. No-op on desktop.
func (h *Header) ToggleMenu() {
	if h.drawer != nil {
		h.drawer.Toggle("closed", "open")
	}
}

// CloseMenu closes the mobile menu.
func (h *Header) CloseMenu() {
	if h.drawer != nil {
		h.drawer.Set("closed")
	}
}

// Links returns the navigation link nodes.
func (h *Header) Links() []*nuclea.Node { return h.links }

// Quote returns the "get a quote" button.
func (h *Header) Quote() *Button { return h.quote }

func (h *Header) dispose() {
	h.node.Dispose()
}
