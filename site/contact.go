package site

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/nuclea"
)

const (
	submitLabel = "Send Message"
	sentLabel   = "Message Sent!"
)

// contactField is one input of the contact form.
type contactField struct {
	name        string
	label       string
	placeholder string
	lines       int

	box   *nuclea.Node
	ring  *nuclea.Node
	value *nuclea.Node
	err   *nuclea.Node
}

var contactFields = []contactField{
	{name: FieldName, label: "Full Name", placeholder: "John Doe", lines: 1},
	{name: FieldEmail, label: "Email Address", placeholder: "john@company.com", lines: 1},
	{name: FieldCompany, label: "Company (optional)", placeholder: "Your Company", lines: 1},
	{name: FieldService, label: "Interested In", placeholder: "Select a service...", lines: 1},
	{name: FieldMessage, label: "Message", placeholder: "Tell us about your project...", lines: 4},
}

// contactSection is the form plus contact details. Typing goes to the
// focused field; keyboard scrolling is off while a field has focus.
type contactSection struct {
	c    Contact
	form *ContactForm

	scene   *nuclea.Scene
	heading *nuclea.Node
	content *nuclea.Node
	fields  []*contactField
	focus   int
	submit  *Button
}

func (s *contactSection) anchor() string { return s.c.Anchor }

func (s *contactSection) build(b *builder) *nuclea.Node {
	f := b.fonts()
	s.scene = b.scene
	s.focus = -1
	box := b.section(s.c.Anchor, ColorBackground)
	col := box.body

	s.heading = col.addCentered(NewSectionHeading(f, s.c.Anchor+"_heading", s.c.Heading, col.width, true), 64)

	w := min(col.width, 1152)
	cols := 1
	if b.desktop() {
		cols = 2
	}
	cw := cellWidth(w, 48, cols, 1)
	formCard := s.formCard(b, cw)
	info := s.infoColumn(b, cw)
	s.content = col.addCentered(grid(s.c.Anchor+"_grid", w, 48, cols, []gridCell{
		{node: formCard.Node, span: 1},
		{node: info, span: 1},
	}), 0)

	s.form.OnStatus = s.statusChanged
	s.statusChanged(s.form.Status())

	root := box.done()
	root.OnUpdate = func(dt float64) {
		s.form.Update(dt)
		s.handleKeys()
	}
	return root
}

func (s *contactSection) formCard(b *builder, w float64) *GlassCard {
	f := b.fonts()
	card := NewGlassCard(b.am(), s.c.Anchor+"_form", AccentPurple, w)
	card.Node.AddClass("contact-item")
	cw := card.ContentWidth()
	body := newColumn(card.Node.Name+"_content", cw)
	body.add(newText(card.Node.Name+"_title", "Send us a message", f.Heading, ColorText), 24)

	s.fields = make([]*contactField, len(contactFields))
	for i := range contactFields {
		fd := contactFields[i]
		s.fields[i] = &fd
		body.add(s.field(b, i, &fd, cw), 24)
	}

	s.submit = b.button(card.Node.Name+"_submit", submitLabel, ButtonPrimary, ButtonLarge)
	s.submit.SetWidth(cw)
	s.submit.OnClick = s.submitForm
	body.add(s.submit.Node, 0)

	card.Body.AddChild(body.node)
	card.Fit()
	return card
}

func (s *contactSection) field(b *builder, i int, fd *contactField, w float64) *nuclea.Node {
	f := b.fonts()
	name := "field_" + fd.name
	c := newColumn(name, w)

	label := newText(name+"_label", fd.label, f.Small, ColorMuted)
	fd.err = newText(name+"_error", "", f.Small, ColorError)
	fd.err.SetPosition(w-fd.err.Width, 0)
	fd.err.Visible = false
	head := nuclea.NewContainer(name + "_head")
	head.SetSize(w, label.Height)
	head.AddChild(label)
	head.AddChild(fd.err)
	c.add(head, 8)

	h := f.Body.LineHeight()*float64(fd.lines) + 24
	fd.box = nuclea.NewRect(name+"_input", w, h, ColorSurfaceRaised.WithAlpha(0.5))
	fd.box.AddClass("input")
	fd.box.Interactable = true
	fd.box.AddChild(frame(name+"_border", w, h, 1, ColorText.WithAlpha(0.1)))
	fd.ring = frame(name+"_focus", w, h, 2, ColorElectric.WithAlpha(0.5))
	fd.ring.Visible = false
	fd.box.AddChild(fd.ring)
	fd.value = wrappedText(name+"_value", "", f.Body, ColorDim, w-32, nuclea.TextAlignLeft)
	fd.value.SetPosition(16, 12)
	fd.box.AddChild(fd.value)
	fd.box.OnClick = func(nuclea.ClickContext) {
		s.setFocus(i)
		if fd.name == FieldService {
			s.cycleService()
		}
	}
	c.add(fd.box, 0)
	s.refreshField(fd)
	return c.node
}

func (s *contactSection) infoColumn(b *builder, w float64) *nuclea.Node {
	f := b.fonts()
	out := newColumn(s.c.Anchor+"_info", w)
	out.node.AddClass("contact-item")

	card := NewGlassCard(b.am(), s.c.Anchor+"_details", AccentCyan, w)
	cw := card.ContentWidth()
	body := newColumn(card.Node.Name+"_content", cw)
	body.add(newText(card.Node.Name+"_title", "Contact Information", f.Heading, ColorText), 24)
	for _, info := range s.c.Info {
		name := "info_" + info.Icon
		icon := NewIconBadge(f, info.Icon, AccentCyan, 48)
		text := newColumn(name+"_text", cw-64)
		text.add(newText(name+"_label", info.Label, f.Small, ColorMuted), 4)
		value := text.add(newText(name+"_value", info.Value, f.Body, ColorText), 0)
		if info.Href != "" {
			link := Link{Label: info.Label, Href: info.Href, External: true}
			value.Interactable = true
			hoverTint(value, value, ColorText, ColorElectricLight)
			value.OnClick = func(nuclea.ClickContext) { b.open(link) }
		}
		body.add(row(name, 16, icon, text.node), 24)
	}
	card.Body.AddChild(body.node)
	card.Fit()
	out.add(card.Node, 24)

	out.add(socialRow(b, s.c.Anchor+"_socials", s.c.Socials), 0)
	return out.node
}

// socialRow renders links as square tiles with the network's initial.
func socialRow(b *builder, name string, links []Link) *nuclea.Node {
	f := b.fonts()
	tiles := make([]*nuclea.Node, len(links))
	for i, l := range links {
		tile := nuclea.NewRect(name+"_"+strings.ToLower(l.Label), 48, 48, ColorText.WithAlpha(0.05))
		tile.AddClass("social")
		tile.AddChild(frame(tile.Name+"_border", 48, 48, 1, ColorText.WithAlpha(0.1)))
		glyph := newText(tile.Name+"_glyph", iconGlyph(strings.ToLower(l.Label)), f.Body, ColorMuted)
		glyph.SetPosition((48-glyph.Width)/2, (48-glyph.Height)/2)
		tile.AddChild(glyph)
		tile.Interactable = true
		hoverTint(tile, glyph, ColorMuted, ColorText)
		tile.OnClick = func(nuclea.ClickContext) { b.open(l) }
		tiles[i] = tile
	}
	return row(name, 16, tiles...)
}

// setFocus moves keyboard focus to field i, or clears it when i < 0.
func (s *contactSection) setFocus(i int) {
	if s.focus >= 0 {
		s.fields[s.focus].ring.Visible = false
	}
	s.focus = i
	if i >= 0 {
		s.fields[i].ring.Visible = true
	}
	s.scene.KeyboardScroll = i < 0
}

func (s *contactSection) handleKeys() {
	if s.focus < 0 {
		return
	}
	sc := s.scene
	switch {
	case sc.KeyJustPressed(ebiten.KeyEscape):
		s.setFocus(-1)
		return
	case sc.KeyJustPressed(ebiten.KeyTab):
		s.setFocus((s.focus + 1) % len(s.fields))
		return
	}

	if s.form.Status() != FormIdle {
		return
	}
	fd := s.fields[s.focus]
	if fd.name == FieldService {
		if sc.KeyJustPressed(ebiten.KeySpace) || sc.KeyJustPressed(ebiten.KeyEnter) {
			s.cycleService()
		}
		return
	}
	if sc.KeyJustPressed(ebiten.KeyEnter) && fd.lines == 1 {
		s.submitForm()
		return
	}

	v := s.form.Field(fd.name)
	before := *v
	if sc.KeyJustPressed(ebiten.KeyBackspace) && *v != "" {
		_, size := utf8.DecodeLastRuneInString(*v)
		*v = (*v)[:len(*v)-size]
	}
	if sc.KeyJustPressed(ebiten.KeyEnter) {
		*v += "\n"
	}
	for _, r := range sc.TypedChars() {
		if r >= ' ' {
			*v += string(r)
		}
	}
	if *v != before {
		fd.err.Visible = false
		s.refreshField(fd)
	}
}

// cycleService selects the next service option, wrapping back to none.
func (s *contactSection) cycleService() {
	if s.form.Status() != FormIdle {
		return
	}
	next := ""
	cur := s.form.Data.Service
	if cur == "" && len(s.c.Services) > 0 {
		next = s.c.Services[0].Value
	}
	for i, o := range s.c.Services {
		if o.Value == cur && i+1 < len(s.c.Services) {
			next = s.c.Services[i+1].Value
		}
	}
	s.form.Data.Service = next
	for _, fd := range s.fields {
		if fd.name == FieldService {
			s.refreshField(fd)
		}
	}
}

func (s *contactSection) refreshField(fd *contactField) {
	v := *s.form.Field(fd.name)
	if fd.name == FieldService {
		v = ""
		for _, o := range s.c.Services {
			if o.Value == s.form.Data.Service {
				v = o.Label
			}
		}
	}
	if v == "" {
		fd.value.SetText(fd.placeholder)
		fd.value.Color = ColorDim
		return
	}
	fd.value.SetText(v)
	fd.value.Color = ColorText
}

func (s *contactSection) submitForm() {
	err := s.form.Submit()
	for _, fd := range s.fields {
		fd.err.Visible = false
	}
	if err == nil {
		s.setFocus(-1)
		return
	}
	for _, e := range unjoin(err) {
		var fe *FieldError
		if !errors.As(e, &fe) {
			continue
		}
		for _, fd := range s.fields {
			if fd.name == fe.Field && !fd.err.Visible {
				fd.err.SetText(fieldMessage(fd, fe.Err))
				fd.err.SetPosition(fd.box.Width-fd.err.Width, 0)
				fd.err.Visible = true
			}
		}
	}
}

func (s *contactSection) statusChanged(st FormStatus) {
	switch st {
	case FormSubmitting:
		s.submit.SetLoading(true)
	case FormSubmitted:
		s.submit.SetLoading(false)
		s.submit.SetLabel(sentLabel)
	case FormIdle:
		s.submit.SetLoading(false)
		s.submit.SetLabel(submitLabel)
		for _, fd := range s.fields {
			s.refreshField(fd)
		}
	}
}

func fieldMessage(fd *contactField, err error) string {
	if errors.Is(err, ErrInvalidEmail) {
		return "Enter a valid email address"
	}
	return strings.TrimSuffix(fd.label, " (optional)") + " is required"
}

// unjoin flattens an errors.Join tree one level.
func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}

func (s *contactSection) reveal(o *nuclea.Orchestrator) []*nuclea.Reveal {
	return []*nuclea.Reveal{
		o.FadeInOnScroll(s.heading, nuclea.WithY(40)),
		o.StaggerOnScroll(s.content, ".contact-item", nuclea.WithStagger(0.2), nuclea.WithY(40)),
	}
}
