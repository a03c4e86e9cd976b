package site

import (
	"strings"

	"github.com/phanxgames/nuclea"
	"github.com/tanema/gween/ease"
)

// --- Layout helpers ---

// newText draws white glyphs tinted by the node color, so the color can
// change without re-rendering the text.
func newText(name, s string, font nuclea.Font, c nuclea.Color) *nuclea.Node {
	n := nuclea.NewText(name, s, font)
	n.Color = c
	return n
}

func wrappedText(name, s string, font nuclea.Font, c nuclea.Color, w float64, align nuclea.TextAlign) *nuclea.Node {
	n := newText(name, s, font, c)
	n.SetAlign(align)
	n.SetWrapWidth(w)
	return n
}

// column stacks children vertically.
type column struct {
	node  *nuclea.Node
	width float64
	y     float64
}

func newColumn(name string, width float64) *column {
	n := nuclea.NewContainer(name)
	n.SetSize(width, 0)
	return &column{node: n, width: width}
}

// add places n at the current bottom and advances by its height plus gap.
func (c *column) add(n *nuclea.Node, gap float64) *nuclea.Node {
	n.SetPosition(n.X, c.y)
	c.node.AddChild(n)
	c.y += n.Height + gap
	c.node.SetSize(c.width, c.y)
	return n
}

// addCentered is add with n centered horizontally.
func (c *column) addCentered(n *nuclea.Node, gap float64) *nuclea.Node {
	n.SetPosition((c.width-n.Width)/2, n.Y)
	return c.add(n, gap)
}

// space adds vertical padding.
func (c *column) space(h float64) {
	c.y += h
	c.node.SetSize(c.width, c.y)
}

// row lays nodes out left to right with gap and returns a container sized to
// fit them.
func row(name string, gap float64, nodes ...*nuclea.Node) *nuclea.Node {
	r := nuclea.NewContainer(name)
	x, h := 0.0, 0.0
	for _, n := range nodes {
		h = max(h, n.Height)
	}
	for _, n := range nodes {
		n.SetPosition(x, (h-n.Height)/2)
		r.AddChild(n)
		x += n.Width + gap
	}
	if len(nodes) > 0 {
		x -= gap
	}
	r.SetSize(x, h)
	return r
}

// frame draws a border of the given thickness inside a w by h box.
func frame(name string, w, h, t float64, c nuclea.Color) *nuclea.Node {
	f := nuclea.NewContainer(name)
	f.SetSize(w, h)
	for _, r := range [4][4]float64{
		{0, 0, w, t},
		{0, h - t, w, t},
		{0, t, t, h - 2*t},
		{w - t, t, t, h - 2*t},
	} {
		edge := nuclea.NewRect(name+"_edge", r[2], r[3], c)
		edge.SetPosition(r[0], r[1])
		f.AddChild(edge)
	}
	return f
}

var hoverTransition = nuclea.Transition{Duration: 0.3, Ease: ease.OutQuad}

// tintDuration is how long a hover color change takes.
const tintDuration = 0.2

// hoverTint fades target's color to hover while the pointer is over trigger
// and back to rest when it leaves.
func hoverTint(trigger, target *nuclea.Node, rest, hover nuclea.Color) {
	target.Color = rest
	var fade *nuclea.TweenGroup
	trigger.OnPointerEnter = func(nuclea.PointerContext) {
		fade = nuclea.TweenColor(target, hover, tintDuration, ease.OutQuad)
	}
	trigger.OnPointerLeave = func(nuclea.PointerContext) {
		fade = nuclea.TweenColor(target, rest, tintDuration, ease.OutQuad)
	}
	prev := target.OnUpdate
	target.OnUpdate = func(dt float64) {
		if prev != nil {
			prev(dt)
		}
		if fade != nil {
			fade.Update(float32(dt))
			if fade.Done {
				fade = nil
			}
		}
	}
}

// --- Button ---

type ButtonVariant uint8

const (
	ButtonPrimary ButtonVariant = iota
	ButtonSecondary
	ButtonOutline
	ButtonGhost
)

type ButtonSize uint8

const (
	ButtonSmall ButtonSize = iota
	ButtonMedium
	ButtonLarge
)

// Button is a clickable label. Clicks are swallowed while it is disabled or
// loading.
type Button struct {
	Node *nuclea.Node

	face    *nuclea.Node
	bg      *nuclea.Node
	fill    *nuclea.Node
	label   *nuclea.Node
	spinner *nuclea.Node

	variant  ButtonVariant
	padX     float64
	disabled bool
	loading  bool

	look  *nuclea.StateTable
	shade *nuclea.StateTable

	OnClick func()
}

// NewButton builds a button sized to its label.
func NewButton(am *nuclea.Animator, fonts Fonts, name, label string, v ButtonVariant, sz ButtonSize) *Button {
	font, padX, padY := fonts.Body, 24.0, 12.0
	switch sz {
	case ButtonSmall:
		font, padX, padY = fonts.Small, 16, 8
	case ButtonLarge:
		font, padX, padY = fonts.Large, 32, 16
	}

	textColor := ColorText
	switch v {
	case ButtonOutline:
		textColor = ColorElectric
	case ButtonGhost:
		textColor = ColorMuted
	}

	b := &Button{variant: v, padX: padX}
	b.label = newText(name+"_label", label, font, textColor)
	w, h := b.label.Width+2*padX, b.label.Height+2*padY

	b.Node = nuclea.NewContainer(name)
	b.Node.AddClass("button")
	b.Node.SetSize(w, h)
	b.face = nuclea.NewContainer(name + "_face")
	b.face.SetSize(w, h)
	b.Node.AddChild(b.face)

	bgColor := ColorElectric
	if v != ButtonPrimary {
		bgColor = bgColor.WithAlpha(0)
	}
	b.bg = nuclea.NewRect(name+"_bg", w, h, bgColor)
	b.bg.Interactable = true
	b.bg.HitShape = nuclea.HitRect{Width: w, Height: h}
	b.face.AddChild(b.bg)

	fillColor := ColorElectricDark
	if v != ButtonPrimary {
		fillColor = ColorElectric.WithAlpha(0.1)
	}
	b.fill = nuclea.NewRect(name+"_fill", w, h, fillColor)
	b.face.AddChild(b.fill)

	switch v {
	case ButtonSecondary:
		b.face.AddChild(frame(name+"_border", w, h, 1, ColorElectric.WithAlpha(0.3)))
	case ButtonOutline:
		b.face.AddChild(frame(name+"_border", w, h, 2, ColorElectric))
	}

	b.label.SetPosition(padX, padY)
	b.face.AddChild(b.label)

	b.spinner = nuclea.NewRect(name+"_spinner", 12, 12, textColor)
	b.spinner.SetPosition(padX-20, (h-12)/2)
	b.spinner.Visible = false
	b.spinner.OnUpdate = func(dt float64) {
		b.spinner.SetRotation(b.spinner.Rotation + dt*6)
	}
	b.face.AddChild(b.spinner)

	lifted := nuclea.Visible
	if v == ButtonPrimary {
		lifted.TranslateY = -2
	}
	b.look = nuclea.NewStateTable(am, "idle").
		State("idle", nuclea.Visible).
		State("hover", lifted).
		State("disabled", nuclea.VisualState{Opacity: 0.5, Scale: 1}).
		Transition(nuclea.AnyState, nuclea.AnyState, hoverTransition)
	b.look.Bind(b.face)

	b.shade = nuclea.NewStateTable(am, "off").
		State("off", nuclea.VisualState{Opacity: 0, Scale: 1}).
		State("on", nuclea.Visible).
		Transition(nuclea.AnyState, nuclea.AnyState, hoverTransition)
	b.shade.Bind(b.fill)

	b.bg.OnPointerEnter = func(nuclea.PointerContext) {
		if b.enabled() {
			b.look.Set("hover")
			b.shade.Set("on")
		}
	}
	b.bg.OnPointerLeave = func(nuclea.PointerContext) {
		if b.enabled() {
			b.look.Set("idle")
		}
		b.shade.Set("off")
	}
	b.bg.OnClick = func(nuclea.ClickContext) { b.Click() }
	return b
}

func (b *Button) enabled() bool { return !b.disabled && !b.loading }

// Click runs OnClick unless the button is disabled or loading.
func (b *Button) Click() {
	if b.enabled() && b.OnClick != nil {
		b.OnClick()
	}
}

// Label returns the button text.
func (b *Button) Label() string { return b.label.TextBlock.Content }

// SetLabel replaces the text without resizing the button.
func (b *Button) SetLabel(s string) {
	b.label.SetText(s)
	b.label.SetPosition((b.Node.Width-b.label.Width)/2, b.label.Y)
}

// SetWidth stretches the button and centers its label.
func (b *Button) SetWidth(w float64) {
	h := b.Node.Height
	b.Node.SetSize(w, h)
	b.face.SetSize(w, h)
	b.bg.SetSize(w, h)
	b.bg.HitShape = nuclea.HitRect{Width: w, Height: h}
	b.fill.SetSize(w, h)
	if border := b.face.Query("#" + b.Node.Name + "_border"); border != nil {
		t := border.ChildAt(0).Height
		border.Dispose()
		c := ColorElectric
		if b.variant == ButtonSecondary {
			c = c.WithAlpha(0.3)
		}
		b.face.AddChild(frame(b.Node.Name+"_border", w, h, t, c))
	}
	b.label.SetPosition((w-b.label.Width)/2, b.label.Y)
	b.spinner.SetPosition(b.label.X-20, b.spinner.Y)
}

func (b *Button) Disabled() bool { return b.disabled }
func (b *Button) Loading() bool  { return b.loading }

func (b *Button) SetDisabled(d bool) {
	b.disabled = d
	b.syncLook()
}

// SetLoading shows a spinner and blocks clicks.
func (b *Button) SetLoading(l bool) {
	b.loading = l
	b.spinner.Visible = l
	b.syncLook()
}

func (b *Button) syncLook() {
	if b.enabled() {
		b.look.Set("idle")
	} else {
		b.look.Set("disabled")
		b.shade.Set("off")
	}
}

// --- GlassCard ---

// GlassCard is a translucent panel. Node is the part sections reveal; the
// inner face lifts on hover so the two animations never fight over one node.
type GlassCard struct {
	Node *nuclea.Node
	Body *nuclea.Node

	face    *nuclea.Node
	bg      *nuclea.Node
	glow    *nuclea.Node
	line    *nuclea.Node
	border  *nuclea.Node
	accent  Accent
	padding float64

	lift  *nuclea.StateTable
	light *nuclea.StateTable
}

// NewGlassCard creates an empty card w pixels wide. Add content to Body and
// call Fit, or SetHeight for grid cells.
func NewGlassCard(am *nuclea.Animator, name string, accent Accent, w float64) *GlassCard {
	c := &GlassCard{accent: accent, padding: 24}
	c.Node = nuclea.NewContainer(name)
	c.Node.AddClass("glass-card")
	c.face = nuclea.NewContainer(name + "_face")
	c.Node.AddChild(c.face)

	c.bg = nuclea.NewRect(name+"_bg", w, 0, ColorCard)
	c.bg.Interactable = true
	c.face.AddChild(c.bg)

	c.glow = nuclea.NewRect(name+"_glow", w, 0, accent.Color().WithAlpha(0.12))
	c.face.AddChild(c.glow)

	c.line = nuclea.NewRect(name+"_line", w, 1, accent.Color().WithAlpha(0.5))
	c.face.AddChild(c.line)

	c.Body = nuclea.NewContainer(name + "_body")
	c.Body.SetPosition(c.padding, c.padding)
	c.Body.SetSize(w-2*c.padding, 0)
	c.face.AddChild(c.Body)

	c.lift = nuclea.NewStateTable(am, "default").
		State("default", nuclea.Visible).
		State("hovered", nuclea.VisualState{Opacity: 1, TranslateY: -4, Scale: 1}).
		Transition(nuclea.AnyState, nuclea.AnyState, hoverTransition)
	c.lift.Bind(c.face)

	c.light = nuclea.NewStateTable(am, "off").
		State("off", nuclea.VisualState{Opacity: 0, Scale: 1}).
		State("on", nuclea.Visible).
		Transition(nuclea.AnyState, nuclea.AnyState, nuclea.Transition{Duration: 0.5, Ease: ease.OutQuad})
	c.light.Bind(c.glow)

	c.bg.OnPointerEnter = func(nuclea.PointerContext) { c.SetHovered(true) }
	c.bg.OnPointerLeave = func(nuclea.PointerContext) { c.SetHovered(false) }

	c.SetHeight(2 * c.padding)
	return c
}

// ContentWidth is the usable width inside the padding.
func (c *GlassCard) ContentWidth() float64 { return c.Body.Width }

// Fit sizes the card to its body content.
func (c *GlassCard) Fit() {
	bottom := 0.0
	for _, n := range c.Body.Children() {
		bottom = max(bottom, n.Y+n.Height)
	}
	c.SetHeight(bottom + 2*c.padding)
}

// SetHeight resizes the card.
func (c *GlassCard) SetHeight(h float64) {
	w := c.bg.Width
	c.Node.SetSize(w, h)
	c.face.SetSize(w, h)
	c.bg.SetSize(w, h)
	c.bg.HitShape = nuclea.HitRect{Width: w, Height: h}
	c.glow.SetSize(w, h)
	c.Body.SetSize(w-2*c.padding, h-2*c.padding)
	if c.border != nil {
		c.border.Dispose()
	}
	c.border = frame(c.Node.Name+"_border", w, h, 1, ColorElectric.WithAlpha(0.15))
	c.face.AddChild(c.border)
}

// SetHovered moves the card to its hovered or resting state.
func (c *GlassCard) SetHovered(on bool) {
	if on {
		c.lift.Set("hovered")
		c.light.Set("on")
	} else {
		c.lift.Set("default")
		c.light.Set("off")
	}
}

// Hovered reports the current hover state.
func (c *GlassCard) Hovered() bool { return c.lift.Current() == "hovered" }

// --- SectionHeading ---

// NewSectionHeading renders a badge, a title with a highlighted tail and a
// subtitle, stacked in a w pixel wide column.
func NewSectionHeading(fonts Fonts, name string, h Heading, w float64, centered bool) *nuclea.Node {
	col := newColumn(name, w)
	place := col.add
	if centered {
		place = col.addCentered
	}

	if h.Badge != "" {
		place(pill(fonts, name+"_badge", h.Badge, ColorElectric, ColorElectricLight), 16)
	}

	title := newText(name+"_title", h.Title, fonts.Title, ColorText)
	if h.Highlight == "" {
		place(title, 16)
	} else {
		hl := newText(name+"_highlight", h.Highlight, fonts.Title, ColorElectricLight)
		space, _ := fonts.Title.MeasureString(" ")
		if title.Width+space+hl.Width <= w {
			place(row(name+"_titles", space, title, hl), 16)
		} else {
			place(title, 0)
			place(hl, 16)
		}
	}

	if h.Subtitle != "" {
		align := nuclea.TextAlignLeft
		if centered {
			align = nuclea.TextAlignCenter
		}
		sub := wrappedText(name+"_subtitle", collapse(h.Subtitle), fonts.Large, ColorMuted, min(w, 672), align)
		place(sub, 0)
	}
	return col.node
}

// pill is a rounded-looking label used for badges and technology chips.
func pill(fonts Fonts, name, s string, accent, textColor nuclea.Color) *nuclea.Node {
	label := newText(name+"_label", s, fonts.Small, textColor)
	w, h := label.Width+24, label.Height+8
	p := nuclea.NewRect(name, w, h, accent.WithAlpha(0.1))
	p.AddChild(frame(name+"_border", w, h, 1, accent.WithAlpha(0.2)))
	label.SetPosition(12, 4)
	p.AddChild(label)
	return p
}

// --- IconBadge ---

// NewIconBadge draws a square accent tile with the icon's initial. Icons are
// named like their web counterparts ("brain", "bar-chart").
func NewIconBadge(fonts Fonts, icon string, accent Accent, size float64) *nuclea.Node {
	tile := nuclea.NewRect("icon_"+icon, size, size, accent.Color().WithAlpha(0.15))
	tile.AddClass("icon-badge")
	glyph := newText("icon_"+icon+"_glyph", iconGlyph(icon), fonts.Heading, accent.Color())
	glyph.SetPosition((size-glyph.Width)/2, (size-glyph.Height)/2)
	tile.AddChild(glyph)
	return tile
}

func iconGlyph(icon string) string {
	var b strings.Builder
	for _, part := range strings.Split(icon, "-") {
		if part != "" && b.Len() < 2 {
			b.WriteString(strings.ToUpper(part[:1]))
		}
	}
	if b.Len() == 0 {
		return "•"
	}
	return b.String()
}

// collapse folds runs of whitespace into single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// --- Grid ---

// gridCell is one item of a grid. span is the number of columns it covers.
type gridCell struct {
	node *nuclea.Node
	span int
	// fit stretches the cell to the height of its row.
	fit func(h float64)
}

// grid places cells left to right in cols columns, wrapping rows, and returns
// the container. Every cell in a row is stretched to the tallest one.
func grid(name string, w, gap float64, cols int, cells []gridCell) *nuclea.Node {
	g := nuclea.NewContainer(name)
	cols = max(cols, 1)
	colW := (w - float64(cols-1)*gap) / float64(cols)
	y := 0.0
	for i := 0; i < len(cells); {
		var line []gridCell
		used := 0
		for i < len(cells) {
			span := min(max(cells[i].span, 1), cols)
			if used > 0 && used+span > cols {
				break
			}
			cells[i].span = span
			line = append(line, cells[i])
			used += span
			i++
		}
		x, h := 0.0, 0.0
		for _, c := range line {
			h = max(h, c.node.Height)
		}
		for _, c := range line {
			if c.fit != nil {
				c.fit(h)
			}
			c.node.SetPosition(x, y)
			g.AddChild(c.node)
			x += float64(c.span)*colW + float64(c.span)*gap
		}
		y += h + gap
	}
	if len(cells) > 0 {
		y -= gap
	}
	g.SetSize(w, y)
	return g
}

// cellWidth is the width of a cell spanning span of cols columns.
func cellWidth(w, gap float64, cols, span int) float64 {
	cols = max(cols, 1)
	span = min(max(span, 1), cols)
	colW := (w - float64(cols-1)*gap) / float64(cols)
	return float64(span)*colW + float64(span-1)*gap
}
