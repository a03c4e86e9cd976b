package site

import (
	"math"
	"strconv"

	"github.com/phanxgames/nuclea"
	"github.com/tanema/gween/ease"
)

// heroSection is the first screen: badge, headline, calls to action and
// stats over drifting background orbs. It animates in on attach instead of
// on scroll.
type heroSection struct {
	c Hero

	badge    *nuclea.Node
	headline *nuclea.Node
	subline  *nuclea.Node
	ctas     *nuclea.Node
	stats    *nuclea.Node
	orbs     [3]*nuclea.Node
}

// heroIntro is one step of the entrance sequence.
type heroIntro struct {
	delay, duration float32
	rise            float64
}

var heroSequence = [5]heroIntro{
	{0, 0.6, 30},
	{0.3, 0.8, 40},
	{0.7, 0.6, 30},
	{1.0, 0.6, 30},
	{1.4, 0.6, 30},
}

// Orb drift: offset reached at the far end of each yoyo and its duration.
var orbDrift = [3]struct {
	x, y     float64
	duration float32
}{
	{50, -30, 8},
	{-40, 40, 10},
	{30, 50, 7},
}

// nucleusPeriod is one full turn of the hero nucleus, in seconds.
const nucleusPeriod = 30

func (h *heroSection) anchor() string { return h.c.Anchor }

func (h *heroSection) build(b *builder) *nuclea.Node {
	f := b.fonts()
	box := b.section(h.c.Anchor, ColorBackground)
	box.root.AddClass("hero")

	h.orbs = [3]*nuclea.Node{
		nuclea.NewRect("hero_orb_1", 384, 384, ColorElectric.WithAlpha(0.2)),
		nuclea.NewRect("hero_orb_2", 320, 320, ColorCyan.WithAlpha(0.15)),
		nuclea.NewRect("hero_orb_3", 256, 256, ColorElectricLight.WithAlpha(0.1)),
	}
	h.orbs[0].SetPosition(b.width*0.25-192, 96)
	h.orbs[1].SetPosition(b.width*0.75-160, 320)
	h.orbs[2].SetPosition(b.width*0.5-128, 200)
	for _, o := range h.orbs {
		o.AddClass("orb")
		o.SetRotation(math.Pi / 4)
		box.root.AddChild(o)
	}

	col := box.body
	center := col.addCentered

	if h.c.Badge != "" {
		dot := nuclea.NewRect("hero_badge_dot", 8, 8, ColorCyan)
		label := pill(f, "hero_badge_pill", h.c.Badge, ColorElectric, ColorElectricLight)
		h.badge = center(row("hero_badge", 8, dot, label), 32)
	}

	lines := newColumn("hero_headline", col.width)
	font := f.Display
	if !b.desktop() {
		font = f.Title
	}
	for i, s := range h.c.Headline {
		c := ColorText
		if i == len(h.c.Headline)-1 && i > 0 {
			c = ColorElectricLight
		}
		lines.addCentered(wrappedText("hero_headline_"+strconv.Itoa(i), s, font, c, col.width, nuclea.TextAlignCenter), 4)
	}
	h.headline = center(lines.node, 28)

	h.subline = center(wrappedText("hero_subline", collapse(h.c.Subline), f.Large, ColorMuted,
		min(col.width, 672), nuclea.TextAlignCenter), 40)

	primary := b.button("hero_primary", h.c.Primary.Label, ButtonPrimary, ButtonLarge)
	primary.OnClick = func() { b.nav(h.c.Primary.Target) }
	secondary := b.button("hero_secondary", h.c.Secondary.Label, ButtonOutline, ButtonLarge)
	secondary.OnClick = func() { b.nav(h.c.Secondary.Target) }
	if b.width >= 640 {
		h.ctas = center(row("hero_ctas", 16, primary.Node, secondary.Node), 64)
	} else {
		stack := newColumn("hero_ctas", col.width)
		primary.SetWidth(col.width)
		secondary.SetWidth(col.width)
		stack.add(primary.Node, 16)
		stack.add(secondary.Node, 0)
		h.ctas = center(stack.node, 64)
	}

	h.stats = center(h.statGrid(b, min(col.width, 896)), 0)

	nucleus := h.nucleus()
	nucleus.SetPosition((b.width-nucleus.Width)/2, sectionPadding+h.headline.Y-120)
	nucleus.SetZIndex(-1)
	box.root.AddChild(nucleus)

	root := box.done()
	if minH := b.scene.Viewport().Height - HeaderHeight; root.Height < minH {
		box.bg.SetSize(b.width, minH)
		root.SetSize(b.width, minH)
	}
	return root
}

func (h *heroSection) statGrid(b *builder, w float64) *nuclea.Node {
	f := b.fonts()
	cols := 2
	if b.width >= BreakpointTablet {
		cols = 4
	}
	cols = max(1, min(cols, len(h.c.Stats)))
	grid := nuclea.NewContainer("hero_stats")
	cellW := (w - float64(cols-1)*32) / float64(cols)
	rowH := 0.0
	for i, s := range h.c.Stats {
		cell := newColumn("hero_stat_"+strconv.Itoa(i), cellW)
		cell.node.AddClass("stat")
		cell.addCentered(newText(cell.node.Name+"_value", s.Value, f.Title, ColorElectricLight), 4)
		cell.addCentered(newText(cell.node.Name+"_label", s.Label, f.Small, ColorDim), 0)
		r, c := i/cols, i%cols
		cell.node.SetPosition(float64(c)*(cellW+32), float64(r)*(rowH+32))
		rowH = max(rowH, cell.y)
		grid.AddChild(cell.node)
	}
	rows := (len(h.c.Stats) + cols - 1) / cols
	grid.SetSize(w, float64(rows)*rowH+float64(max(rows-1, 0))*32)
	return grid
}

// nucleus draws three orbit rings around a glowing core and spins slowly.
func (h *heroSection) nucleus() *nuclea.Node {
	const size = 320.0
	n := nuclea.NewContainer("hero_nucleus")
	n.SetSize(size, size)
	n.Alpha = 0.3
	for i, rot := range []float64{0, math.Pi / 3, 2 * math.Pi / 3} {
		ring := frame("hero_ring_"+strconv.Itoa(i), size, size/3, 1, ColorElectric.WithAlpha(0.6))
		ring.SetPosition(0, size/3)
		ring.SetRotation(rot)
		n.AddChild(ring)
	}
	core := nuclea.NewRect("hero_core", 32, 32, ColorElectricLight)
	core.SetPosition((size-32)/2, (size-32)/2)
	n.AddChild(core)
	n.OnUpdate = func(dt float64) {
		n.SetRotation(math.Mod(n.Rotation+dt*2*math.Pi/nucleusPeriod, 2*math.Pi))
	}
	return n
}

func (h *heroSection) reveal(*nuclea.Orchestrator) []*nuclea.Reveal { return nil }

// start plays the entrance sequence and sets the orbs drifting.
func (h *heroSection) start(am *nuclea.Animator) []*nuclea.Animation {
	var out []*nuclea.Animation
	for i, n := range []*nuclea.Node{h.badge, h.headline, h.subline, h.ctas, h.stats} {
		if n == nil {
			continue
		}
		s := heroSequence[i]
		out = append(out, am.Run([]*nuclea.Node{n},
			nuclea.VisualState{Opacity: 0, TranslateY: s.rise, Scale: 1},
			nuclea.Visible,
			nuclea.Timing{Duration: s.duration, Delay: s.delay, Ease: ease.OutCubic}))
	}
	for i, o := range h.orbs {
		d := orbDrift[i]
		out = append(out, am.To([]*nuclea.Node{o},
			nuclea.VisualState{Opacity: 1, TranslateX: d.x, TranslateY: d.y, Scale: 1},
			nuclea.Timing{Duration: d.duration, Ease: ease.InOutSine, Loop: true, Yoyo: true}))
	}
	return out
}
