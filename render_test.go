package nuclea

import (
	"sort"
	"testing"
)

// collect runs the full command pass without drawing (no ebiten.Image needed).
func collect(s *Scene) {
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	updateWorldTransform(s.overlay, identityTransform, 1.0, false)
	s.collectCommands()
}

// --- Command emission ---

func TestSingleRectEmitsOneCommand(t *testing.T) {
	s := NewScene()
	r := NewRect("r", 32, 16, ColorWhite)
	s.Root().AddChild(r)

	collect(s)

	if len(s.commands) != 1 {
		t.Fatalf("commands = %d, want 1", len(s.commands))
	}
	if s.commands[0].Node != r {
		t.Error("command should reference the rect")
	}
	// The white pixel is stretched to the box.
	m := s.commands[0].Transform
	if m[0] != 32 || m[3] != 16 {
		t.Errorf("scale = (%f, %f), want (32, 16)", m[0], m[3])
	}
}

func TestRectCommandFollowsScroll(t *testing.T) {
	s := NewScene()
	s.Viewport().SetDocumentHeight(4000)
	r := NewRect("r", 100, 100, ColorWhite)
	r.SetPosition(10, 500)
	s.Root().AddChild(r)
	s.Viewport().SetScroll(300)

	collect(s)

	if len(s.commands) != 1 {
		t.Fatalf("commands = %d, want 1", len(s.commands))
	}
	m := s.commands[0].Transform
	if m[4] != 10 || m[5] != 200 {
		t.Errorf("screen position = (%f, %f), want (10, 200)", m[4], m[5])
	}
}

func TestOverlayIgnoresScroll(t *testing.T) {
	s := NewScene()
	s.Viewport().SetScroll(300)
	header := NewRect("header", 1280, 80, ColorWhite)
	s.Overlay().AddChild(header)

	collect(s)

	if len(s.commands) != 1 {
		t.Fatalf("commands = %d, want 1", len(s.commands))
	}
	if y := s.commands[0].Transform[5]; y != 0 {
		t.Errorf("header y = %f, want 0", y)
	}
}

func TestOverlayDrawsAfterDocument(t *testing.T) {
	s := NewScene()
	header := NewRect("header", 1280, 80, ColorWhite)
	s.Overlay().AddChild(header)
	hero := NewRect("hero", 1280, 800, ColorWhite)
	s.Root().AddChild(hero)

	collect(s)
	s.mergeSort()

	if len(s.commands) != 2 {
		t.Fatalf("commands = %d, want 2", len(s.commands))
	}
	if s.commands[0].Node != hero || s.commands[1].Node != header {
		t.Error("overlay should draw after the document")
	}
}

func TestInvisibleSubtreeSkipped(t *testing.T) {
	s := NewScene()
	parent := NewContainer("parent")
	parent.Visible = false
	parent.AddChild(NewRect("child", 10, 10, ColorWhite))
	s.Root().AddChild(parent)

	collect(s)

	if len(s.commands) != 0 {
		t.Errorf("commands = %d, want 0", len(s.commands))
	}
}

func TestTransparentSubtreeSkipped(t *testing.T) {
	s := NewScene()
	card := NewRect("card", 10, 10, ColorWhite)
	card.AddChild(NewRect("icon", 5, 5, ColorWhite))
	card.ApplyVisualState(VisualState{Opacity: 0, TranslateY: 50, Scale: 1})
	s.Root().AddChild(card)

	collect(s)

	if len(s.commands) != 0 {
		t.Errorf("commands = %d, want 0 for a hidden reveal target", len(s.commands))
	}
}

func TestNonRenderableNodeSkipped(t *testing.T) {
	s := NewScene()
	r := NewRect("r", 10, 10, ColorWhite)
	r.Renderable = false
	child := NewRect("child", 10, 10, ColorWhite)
	r.AddChild(child)
	s.Root().AddChild(r)

	collect(s)

	if len(s.commands) != 1 || s.commands[0].Node != child {
		t.Errorf("commands = %d, want only the child", len(s.commands))
	}
}

func TestContainerAndEmptyRectNoCommand(t *testing.T) {
	s := NewScene()
	s.Root().AddChild(NewContainer("c"))
	s.Root().AddChild(NewRect("empty", 0, 10, ColorWhite))

	collect(s)

	if len(s.commands) != 0 {
		t.Errorf("commands = %d, want 0", len(s.commands))
	}
}

func TestWorldAlphaInCommand(t *testing.T) {
	s := NewScene()
	parent := NewContainer("parent")
	parent.SetAlpha(0.5)
	child := NewRect("child", 10, 10, Color{1, 0, 0, 0.5})
	parent.AddChild(child)
	s.Root().AddChild(parent)

	collect(s)

	if len(s.commands) != 1 {
		t.Fatalf("commands = %d, want 1", len(s.commands))
	}
	if a := s.commands[0].Color.A; a != 0.25 {
		t.Errorf("Color.A = %f, want 0.25", a)
	}
}

func TestOffscreenNodeCulled(t *testing.T) {
	s := NewScene()
	s.Viewport().SetSize(1280, 800)
	below := NewRect("below", 100, 100, ColorWhite)
	below.SetPosition(0, 3000)
	child := NewRect("child", 100, 100, ColorWhite)
	child.SetPosition(0, -2800)
	below.AddChild(child)
	s.Root().AddChild(below)

	collect(s)

	if len(s.commands) != 1 || s.commands[0].Node != child {
		t.Errorf("commands = %d, want only the on-screen child", len(s.commands))
	}

	s.Viewport().CullEnabled = false
	collect(s)
	if len(s.commands) != 2 {
		t.Errorf("commands with culling off = %d, want 2", len(s.commands))
	}
}

// --- Sorting ---

func TestRenderLayerSorting(t *testing.T) {
	s := NewScene()
	a := NewRect("a", 1, 1, ColorWhite)
	a.RenderLayer = 1
	b := NewRect("b", 1, 1, ColorWhite)
	s.Root().AddChild(a)
	s.Root().AddChild(b)

	collect(s)
	s.mergeSort()

	if s.commands[0].Node != b || s.commands[1].Node != a {
		t.Error("layer 0 should draw before layer 1")
	}
}

func TestZIndexSorting(t *testing.T) {
	s := NewScene()
	a := NewRect("a", 1, 1, ColorWhite)
	b := NewRect("b", 1, 1, ColorWhite)
	c := NewRect("c", 1, 1, ColorWhite)
	a.SetZIndex(2)
	b.SetZIndex(0)
	c.SetZIndex(1)
	s.Root().AddChild(a)
	s.Root().AddChild(b)
	s.Root().AddChild(c)

	collect(s)

	if len(s.commands) != 3 {
		t.Fatalf("commands = %d, want 3", len(s.commands))
	}
	for i, want := range []*Node{b, c, a} {
		if s.commands[i].Node != want {
			t.Errorf("commands[%d] = %q, want %q", i, s.commands[i].Node.Name, want.Name)
		}
	}
}

// --- Merge sort ---

func TestMergeSortMatchesStdlib(t *testing.T) {
	s := NewScene()
	cmds := []RenderCommand{
		{RenderLayer: 2, treeOrder: 1},
		{RenderLayer: 0, treeOrder: 2},
		{RenderLayer: 0, treeOrder: 3},
		{RenderLayer: 1, treeOrder: 4},
		{RenderLayer: 0, treeOrder: 5},
		{RenderLayer: 2, treeOrder: 6},
		{RenderLayer: 0, treeOrder: 7},
	}

	ref := make([]RenderCommand, len(cmds))
	copy(ref, cmds)
	sort.SliceStable(ref, func(i, j int) bool {
		if ref[i].RenderLayer != ref[j].RenderLayer {
			return ref[i].RenderLayer < ref[j].RenderLayer
		}
		return ref[i].treeOrder < ref[j].treeOrder
	})

	s.commands = make([]RenderCommand, len(cmds))
	copy(s.commands, cmds)
	s.mergeSort()

	for i := range s.commands {
		a, b := s.commands[i], ref[i]
		if a.RenderLayer != b.RenderLayer || a.treeOrder != b.treeOrder {
			t.Errorf("index %d: mergeSort=(%d,%d), stdlib=(%d,%d)",
				i, a.RenderLayer, a.treeOrder, b.RenderLayer, b.treeOrder)
		}
	}
}

func TestMergeSortStable(t *testing.T) {
	s := NewScene()
	s.commands = make([]RenderCommand, 100)
	for i := range s.commands {
		s.commands[i] = RenderCommand{treeOrder: i}
	}

	s.mergeSort()

	for i := range s.commands {
		if s.commands[i].treeOrder != i {
			t.Fatalf("stability broken at index %d: treeOrder=%d", i, s.commands[i].treeOrder)
		}
	}
}

func TestMergeSortBufferReuse(t *testing.T) {
	s := NewScene()
	s.commands = make([]RenderCommand, 50)
	for i := range s.commands {
		s.commands[i] = RenderCommand{treeOrder: 50 - i}
	}
	s.mergeSort()
	bufCap := cap(s.sortBuf)

	s.commands = make([]RenderCommand, 30)
	for i := range s.commands {
		s.commands[i] = RenderCommand{treeOrder: 30 - i}
	}
	s.mergeSort()

	if cap(s.sortBuf) != bufCap {
		t.Errorf("sortBuf reallocated: was %d, now %d", bufCap, cap(s.sortBuf))
	}
}

func TestMergeSortEmpty(t *testing.T) {
	s := NewScene()
	s.commands = nil
	s.mergeSort()
}

// --- Benchmarks ---

func BenchmarkCollectCommands1000(b *testing.B) {
	s := NewScene()
	for i := 0; i < 1000; i++ {
		r := NewRect("", 40, 40, ColorWhite)
		r.SetPosition(float64(i%30)*42, float64(i/30)*42)
		s.Root().AddChild(r)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		collect(s)
	}
}
