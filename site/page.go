package site

import (
	"errors"
	"time"

	"github.com/phanxgames/nuclea"
	"go.uber.org/zap"
)

// ErrPageClosed is returned by Attach and Reload after Close.
var ErrPageClosed = errors.New("site: page is closed")

// section is one block of the document. build lays it out for the current
// viewport; reveal registers its scroll reveals once the node is attached.
type section interface {
	anchor() string
	build(b *builder) *nuclea.Node
	reveal(o *nuclea.Orchestrator) []*nuclea.Reveal
}

// starter is a section with animations that play on attach rather than on
// scroll.
type starter interface {
	start(am *nuclea.Animator) []*nuclea.Animation
}

type mounted struct {
	sec     section
	node    *nuclea.Node
	reveals []*nuclea.Reveal
}

// builder carries what sections need while building.
type builder struct {
	theme *Theme
	scene *nuclea.Scene
	width float64
	inner float64
	now   time.Time
	nav   func(anchor string)
	open  func(l Link)
}

func (b *builder) fonts() Fonts { return b.theme.Fonts }
func (b *builder) am() *nuclea.Animator { return b.scene.Animator() }
func (b *builder) desktop() bool { return b.width >= BreakpointDesktop }
func (b *builder) cols(desktop int) int { return columns(b.width, desktop) }
func (b *builder) left() float64 { return (b.width - b.inner) / 2 }
func (b *builder) button(name, label string, v ButtonVariant, sz ButtonSize) *Button {
	return NewButton(b.am(), b.fonts(), name, label, v, sz)
}

// sectionBox is a full-width section: a background and a centered,
// padded content column.
type sectionBox struct {
	root *nuclea.Node
	bg   *nuclea.Node
	body *column
}

func (b *builder) section(anchor string, bg nuclea.Color) *sectionBox {
	root := nuclea.NewContainer(anchor)
	root.AddClass("section")
	rect := nuclea.NewRect(anchor+"_bg", b.width, 0, bg)
	root.AddChild(rect)
	body := newColumn(anchor+"_content", b.inner)
	body.node.SetPosition(b.left(), sectionPadding)
	root.AddChild(body.node)
	return &sectionBox{root: root, bg: rect, body: body}
}

// done sizes the section around its content.
func (s *sectionBox) done() *nuclea.Node {
	h := s.body.y + 2*sectionPadding
	s.root.SetSize(s.bg.Width, h)
	s.bg.SetSize(s.bg.Width, h)
	return s.root
}

// Page is the whole marketing page: a fixed header in the scene overlay and
// the sections stacked in the document. Each section registers its reveals
// when attached and unregisters them on detach.
type Page struct {
	content *Content
	theme   *Theme
	log     *zap.Logger
	form    *ContactForm

	// Now supplies the footer's copyright year.
	Now func() time.Time
	// OnExternalLink receives the href of clicked links that leave the page.
	OnExternalLink func(href string)

	scene      *nuclea.Scene
	header     *Header
	mounted    []*mounted
	anims      []*nuclea.Animation
	prevResize func(w, h float64)
	builtWidth float64
	attached   bool
	closed     bool
}

// NewPage creates a detached page. A nil logger discards output.
func NewPage(c *Content, theme *Theme, log *zap.Logger) *Page {
	if log == nil {
		log = zap.NewNop()
	}
	form := &ContactForm{
		OnSent: func(d FormData) {
			log.Info("contact form sent",
				zap.String("name", d.Name),
				zap.String("email", d.Email),
				zap.String("service", d.Service))
		},
	}
	return &Page{
		content: c,
		theme:   theme,
		log:     log,
		form:    form,
		Now:     time.Now,
	}
}

func (p *Page) sections() []section {
	c := p.content
	return []section{
		&heroSection{c: c.Hero},
		&servicesSection{g: c.AIServices, bento: true},
		&servicesSection{g: c.Enterprise},
		&capabilitiesSection{c: c.Capabilities},
		&processSection{c: c.Process},
		&contactSection{c: c.Contact, form: p.form},
		&footerSection{c: c.Footer, brand: c.Brand},
	}
}

// Content returns the content currently shown.
func (p *Page) Content() *Content { return p.content }

// Form returns the contact form state.
func (p *Page) Form() *ContactForm { return p.form }

// Header returns the mounted header, or nil while detached.
func (p *Page) Header() *Header { return p.header }

// Attached reports whether the page is mounted on a scene.
func (p *Page) Attached() bool { return p.attached }

// Reveals returns the reveals registered by the mounted sections.
func (p *Page) Reveals() []*nuclea.Reveal {
	var out []*nuclea.Reveal
	for _, m := range p.mounted {
		out = append(out, m.reveals...)
	}
	return out
}

// Attach builds the page for the scene's viewport, mounts every section,
// registers their reveals and refreshes the triggers once. Attaching an
// attached page does nothing.
func (p *Page) Attach(s *nuclea.Scene) error {
	if p.closed {
		return ErrPageClosed
	}
	if p.attached {
		return nil
	}
	p.scene = s
	vp := s.Viewport()
	b := &builder{
		theme: p.theme,
		scene: s,
		width: vp.Width,
		inner: containerWidth(vp.Width),
		now:   p.Now(),
	}
	b.nav = func(anchor string) {
		if p.header != nil {
			p.header.CloseMenu()
		}
		s.Navigator().ScrollToElement(anchor)
	}
	b.open = func(l Link) {
		if a := l.Anchor(); a != "" {
			b.nav(a)
			return
		}
		p.log.Info("external link", zap.String("href", l.Href))
		if p.OnExternalLink != nil {
			p.OnExternalLink(l.Href)
		}
	}

	p.header = newHeader(b, p.content)
	s.Overlay().AddChild(p.header.node)

	y := float64(HeaderHeight)
	for _, sec := range p.sections() {
		n := sec.build(b)
		n.SetPosition(0, y)
		s.Root().AddChild(n)
		y += n.Height
		p.mounted = append(p.mounted, &mounted{sec: sec, node: n})
	}

	reveals := 0
	for _, m := range p.mounted {
		for _, r := range m.sec.reveal(s.Reveals()) {
			if r != nil {
				m.reveals = append(m.reveals, r)
			}
		}
		reveals += len(m.reveals)
		if st, ok := m.sec.(starter); ok {
			p.anims = append(p.anims, st.start(s.Animator())...)
		}
	}
	s.Reveals().Refresh()

	p.prevResize = s.OnResize
	s.OnResize = p.resize
	p.builtWidth = vp.Width
	p.attached = true
	p.log.Info("page attached",
		zap.Int("sections", len(p.mounted)),
		zap.Int("reveals", reveals),
		zap.Float64("width", vp.Width),
		zap.Float64("height", y))
	return nil
}

// Detach unregisters every reveal, stops the page's own animations and
// removes its nodes. Detaching a detached page does nothing.
func (p *Page) Detach() {
	if !p.attached {
		return
	}
	s := p.scene
	for _, m := range p.mounted {
		for _, r := range m.reveals {
			s.Reveals().Unregister(r)
		}
		m.node.Dispose()
	}
	for _, a := range p.anims {
		s.Animator().Cancel(a)
	}
	p.header.dispose()
	p.header = nil
	p.mounted = nil
	p.anims = nil
	s.OnResize = p.prevResize
	s.KeyboardScroll = true
	p.attached = false
	p.log.Debug("page detached")
}

// Close detaches the page and kills every remaining reveal on the scene.
// It runs once; later calls do nothing.
func (p *Page) Close() {
	if p.closed {
		return
	}
	p.Detach()
	if p.scene != nil {
		p.scene.Reveals().KillAll()
	}
	p.closed = true
	p.log.Info("page closed")
}

// Reload swaps in new content. An attached page is rebuilt in place; the
// scroll position is kept, clamped to the new document.
func (p *Page) Reload(c *Content) error {
	if p.closed {
		return ErrPageClosed
	}
	if err := c.Validate(); err != nil {
		return err
	}
	p.content = c
	if !p.attached {
		return nil
	}
	s := p.scene
	p.Detach()
	if err := p.Attach(s); err != nil {
		return err
	}
	p.log.Info("content reloaded")
	return nil
}

// resize rebuilds the layout when the width changes. Height changes only
// move trigger lines, which the evaluator re-measures by itself.
func (p *Page) resize(w, h float64) {
	if p.prevResize != nil {
		p.prevResize(w, h)
	}
	if !p.attached || w == p.builtWidth {
		return
	}
	p.log.Debug("relayout", zap.Float64("width", w), zap.Float64("height", h))
	s := p.scene
	p.Detach()
	if err := p.Attach(s); err != nil {
		p.log.Warn("relayout failed", zap.Error(err))
	}
}
