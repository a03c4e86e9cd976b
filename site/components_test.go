package site

import (
	"math"
	"testing"

	"github.com/phanxgames/nuclea"
)

func rect(name string, w, h float64) *nuclea.Node {
	return nuclea.NewRect(name, w, h, ColorText)
}

func TestRow(t *testing.T) {
	a, b := rect("a", 10, 20), rect("b", 30, 10)
	r := row("r", 5, a, b)
	if r.Width != 45 || r.Height != 20 {
		t.Errorf("row size = (%f, %f), want (45, 20)", r.Width, r.Height)
	}
	if b.X != 15 || b.Y != 5 {
		t.Errorf("b = (%f, %f), want (15, 5)", b.X, b.Y)
	}
	if e := row("e", 5); e.Width != 0 {
		t.Errorf("empty row width = %f, want 0", e.Width)
	}
}

func TestColumn(t *testing.T) {
	c := newColumn("c", 100)
	c.add(rect("a", 40, 10), 5)
	n := c.addCentered(rect("b", 40, 20), 0)
	c.space(8)
	if n.X != 30 || n.Y != 15 {
		t.Errorf("centered = (%f, %f), want (30, 15)", n.X, n.Y)
	}
	if c.node.Height != 43 {
		t.Errorf("column height = %f, want 43", c.node.Height)
	}
}

func TestGrid(t *testing.T) {
	cells := []gridCell{
		{node: rect("a", 10, 30), span: 1},
		{node: rect("b", 10, 50), span: 2},
		{node: rect("c", 10, 20), span: 1},
		{node: rect("d", 10, 10), span: 5},
	}
	var fitted float64
	cells[0].fit = func(h float64) { fitted = h }

	g := grid("g", 320, 10, 3, cells)
	// colW = (320 - 20) / 3 = 100
	want := []struct{ x, y float64 }{{0, 0}, {110, 0}, {0, 60}, {0, 90}}
	for i, c := range cells {
		if c.node.X != want[i].x || c.node.Y != want[i].y {
			t.Errorf("%s at (%f, %f), want (%f, %f)", c.node.Name, c.node.X, c.node.Y, want[i].x, want[i].y)
		}
	}
	if fitted != 50 {
		t.Errorf("fit height = %f, want 50", fitted)
	}
	if g.Height != 100 {
		t.Errorf("grid height = %f, want 100", g.Height)
	}
}

func TestCellWidth(t *testing.T) {
	if got := cellWidth(320, 10, 3, 2); got != 210 {
		t.Errorf("cellWidth span 2 = %f, want 210", got)
	}
	if got := cellWidth(320, 10, 3, 9); got != 320 {
		t.Errorf("cellWidth clamps span, got %f", got)
	}
}

func TestFlow(t *testing.T) {
	nodes := []*nuclea.Node{rect("a", 40, 10), rect("b", 40, 10), rect("c", 40, 10)}
	f := flow("f", 100, 10, nodes)
	if nodes[1].X != 50 || nodes[2].X != 0 || nodes[2].Y != 20 {
		t.Errorf("wrapped positions: b.X %f, c = (%f, %f)", nodes[1].X, nodes[2].X, nodes[2].Y)
	}
	if f.Height != 30 {
		t.Errorf("flow height = %f, want 30", f.Height)
	}
}

func TestContainerWidth(t *testing.T) {
	tests := []struct{ w, want float64 }{
		{375, 343},
		{700, 652},
		{1280, 1200},
		{1100, 1036},
	}
	for _, tt := range tests {
		if got := containerWidth(tt.w); got != tt.want {
			t.Errorf("containerWidth(%f) = %f, want %f", tt.w, got, tt.want)
		}
	}
}

func TestColumns(t *testing.T) {
	if columns(1280, 3) != 3 || columns(900, 3) != 2 || columns(500, 3) != 1 || columns(900, 1) != 1 {
		t.Error("unexpected column counts")
	}
}

func TestIconGlyph(t *testing.T) {
	tests := []struct{ in, want string }{
		{"brain", "B"},
		{"bar-chart", "BC"},
		{"a-b-c", "AB"},
		{"a-", "A"},
		{"", "•"},
		{"-", "•"},
		{"map-pin", "MP"},
	}
	for _, tt := range tests {
		if got := iconGlyph(tt.in); got != tt.want {
			t.Errorf("iconGlyph(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestButtonClick(t *testing.T) {
	s := nuclea.NewScene()
	b := NewButton(s.Animator(), testTheme().Fonts, "btn", "Go", ButtonPrimary, ButtonMedium)
	// "Go" is 16x16; medium pads 24x12.
	if b.Node.Width != 64 || b.Node.Height != 40 {
		t.Errorf("size = (%f, %f), want (64, 40)", b.Node.Width, b.Node.Height)
	}
	clicks := 0
	b.OnClick = func() { clicks++ }

	b.Click()
	b.SetDisabled(true)
	b.Click()
	b.SetDisabled(false)
	b.SetLoading(true)
	b.Click()
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	if !b.spinner.Visible {
		t.Error("spinner should show while loading")
	}
	if b.look.Current() != "disabled" {
		t.Errorf("look = %q, want disabled", b.look.Current())
	}
	b.SetLoading(false)
	if b.look.Current() != "idle" {
		t.Errorf("look = %q, want idle", b.look.Current())
	}
}

func TestButtonThroughScene(t *testing.T) {
	s := nuclea.NewScene()
	b := NewButton(s.Animator(), testTheme().Fonts, "btn", "Go", ButtonSecondary, ButtonSmall)
	b.Node.SetPosition(100, 100)
	s.Overlay().AddChild(b.Node)
	clicks := 0
	b.OnClick = func() { clicks++ }

	tick(t, s, 1, 1.0/60)
	s.InjectMove(110, 110)
	tick(t, s, 1, 1.0/60)
	if b.look.Current() != "hover" || b.shade.Current() != "on" {
		t.Errorf("hover: look %q shade %q", b.look.Current(), b.shade.Current())
	}
	s.InjectClick(110, 110)
	tick(t, s, 2, 1.0/60)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	s.InjectMove(10, 10)
	tick(t, s, 1, 1.0/60)
	if b.look.Current() != "idle" {
		t.Errorf("look after leave = %q, want idle", b.look.Current())
	}
}

func TestButtonSetWidth(t *testing.T) {
	s := nuclea.NewScene()
	b := NewButton(s.Animator(), testTheme().Fonts, "btn", "Go", ButtonOutline, ButtonMedium)
	b.SetWidth(200)
	if b.Node.Width != 200 || b.bg.Width != 200 {
		t.Errorf("width = %f / %f, want 200", b.Node.Width, b.bg.Width)
	}
	if b.label.X != 92 {
		t.Errorf("label.X = %f, want 92", b.label.X)
	}
	border := b.face.Query("#btn_border")
	if border == nil || border.Width != 200 {
		t.Error("border should be rebuilt at the new width")
	}
	b.SetLabel("Gone")
	if b.Label() != "Gone" || b.label.X != 84 {
		t.Errorf("label %q at %f, want Gone at 84", b.Label(), b.label.X)
	}
}

func TestGlassCard(t *testing.T) {
	s := nuclea.NewScene()
	c := NewGlassCard(s.Animator(), "card", AccentCyan, 300)
	if c.ContentWidth() != 252 {
		t.Errorf("ContentWidth = %f, want 252", c.ContentWidth())
	}
	body := rect("content", 100, 80)
	body.SetPosition(0, 20)
	c.Body.AddChild(body)
	c.Fit()
	if c.Node.Height != 148 {
		t.Errorf("height = %f, want 148", c.Node.Height)
	}

	c.SetHovered(true)
	s.Root().AddChild(c.Node)
	tick(t, s, 40, 1.0/60)
	if !c.Hovered() || c.face.OffsetY != -4 || c.glow.Alpha != 1 {
		t.Errorf("hovered %v, face offset %f, glow alpha %f", c.Hovered(), c.face.OffsetY, c.glow.Alpha)
	}
	if c.Node.OffsetY != 0 {
		t.Error("hover should not move the outer node")
	}
	c.SetHovered(false)
	tick(t, s, 40, 1.0/60)
	if c.face.OffsetY != 0 || c.glow.Alpha != 0 {
		t.Errorf("rest: face offset %f, glow alpha %f", c.face.OffsetY, c.glow.Alpha)
	}
}

func TestSectionHeading(t *testing.T) {
	f := testTheme().Fonts
	h := Heading{Badge: "Badge", Title: "Our", Highlight: "Work", Subtitle: "  some   text "}
	n := NewSectionHeading(f, "h", h, 400, true)
	if n.Query("#h_titles") == nil {
		t.Error("a short title and highlight should share a row")
	}
	sub := n.Query("#h_subtitle")
	if sub == nil || sub.TextBlock.Content != "some text" {
		t.Error("subtitle should be collapsed")
	}

	narrow := NewSectionHeading(f, "n", h, 60, false)
	if narrow.Query("#n_titles") != nil || narrow.Query("#n_highlight") == nil {
		t.Error("a narrow heading should stack title and highlight")
	}
}

func colorNear(a, b nuclea.Color) bool {
	const eps = 0.01
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps &&
		math.Abs(a.B-b.B) < eps && math.Abs(a.A-b.A) < eps
}

func TestHoverTint(t *testing.T) {
	trigger := rect("tile", 40, 40)
	glyph := rect("glyph", 20, 20)
	ticks := 0
	glyph.OnUpdate = func(float64) { ticks++ }

	hoverTint(trigger, glyph, ColorMuted, ColorElectricLight)
	if glyph.Color != ColorMuted {
		t.Fatalf("initial color = %+v, want rest", glyph.Color)
	}

	trigger.OnPointerEnter(nuclea.PointerContext{Node: trigger})
	glyph.OnUpdate(0.1)
	if colorNear(glyph.Color, ColorMuted) || colorNear(glyph.Color, ColorElectricLight) {
		t.Errorf("mid-fade color = %+v, want between rest and hover", glyph.Color)
	}
	glyph.OnUpdate(0.15)
	if !colorNear(glyph.Color, ColorElectricLight) {
		t.Errorf("hovered color = %+v, want %+v", glyph.Color, ColorElectricLight)
	}

	// Leaving partway through a fade heads back to rest from wherever it is.
	trigger.OnPointerEnter(nuclea.PointerContext{Node: trigger})
	trigger.OnPointerLeave(nuclea.PointerContext{Node: trigger})
	glyph.OnUpdate(0.25)
	if !colorNear(glyph.Color, ColorMuted) {
		t.Errorf("rest color = %+v, want %+v", glyph.Color, ColorMuted)
	}

	glyph.OnUpdate(0.1)
	if !colorNear(glyph.Color, ColorMuted) {
		t.Errorf("idle frame moved color to %+v", glyph.Color)
	}
	if ticks != 4 {
		t.Errorf("existing OnUpdate ran %d times, want 4", ticks)
	}
}
