package nuclea

import "testing"

func newNavFixture() (*Navigator, *Viewport, *Node) {
	vp := newViewport(1280, 800)
	vp.SetDocumentHeight(5000)
	root := NewContainer("root")
	return NewNavigator(root, vp), vp, root
}

func TestScrollToElementSubtractsHeaderOffset(t *testing.T) {
	nav, vp, root := newNavFixture()
	main := NewContainer("main")
	main.SetPosition(0, 200)
	contact := NewRect("contact", 1280, 600, ColorWhite)
	contact.SetPosition(0, 1000)
	main.AddChild(contact)
	root.AddChild(main)

	nav.ScrollToElementOffset("contact", 80)
	target, ok := vp.ScrollTarget()
	if !ok {
		t.Fatal("no scroll requested")
	}
	if target != 1120 {
		t.Errorf("scroll target = %f, want 1120", target)
	}

	vp.update(0.4)
	vp.update(0.4)
	if vp.ScrollY != 1120 || vp.Scrolling() {
		t.Errorf("ScrollY = %f scrolling = %v after duration, want 1120 and settled", vp.ScrollY, vp.Scrolling())
	}
	if nav.ScrollPosition() != 1120 {
		t.Errorf("ScrollPosition = %f, want 1120", nav.ScrollPosition())
	}
}

func TestScrollToElementDefaultOffset(t *testing.T) {
	nav, vp, root := newNavFixture()
	sec := NewRect("process", 1280, 600, ColorWhite)
	sec.SetPosition(0, 2000)
	root.AddChild(sec)

	nav.ScrollToElement("process")
	if target, _ := vp.ScrollTarget(); target != 2000-DefaultHeaderOffset {
		t.Errorf("scroll target = %f, want %d", target, 2000-DefaultHeaderOffset)
	}
}

func TestScrollToMissingElementIsNoop(t *testing.T) {
	nav, vp, _ := newNavFixture()
	vp.SetScroll(300)

	nav.ScrollToElement("missing-id")
	nav.ScrollToElement("")
	if vp.Scrolling() {
		t.Error("scroll requested for a missing id")
	}
	if vp.ScrollY != 300 {
		t.Errorf("ScrollY = %f, want unchanged 300", vp.ScrollY)
	}
}

func TestScrollToElementClampsToDocument(t *testing.T) {
	nav, vp, root := newNavFixture()
	top := NewRect("home", 1280, 800, ColorWhite)
	footer := NewRect("footer", 1280, 300, ColorWhite)
	footer.SetPosition(0, 4900)
	root.AddChild(top)
	root.AddChild(footer)

	nav.ScrollToElement("home")
	if target, _ := vp.ScrollTarget(); target != 0 {
		t.Errorf("target = %f, want clamped to 0", target)
	}
	nav.ScrollToElement("footer")
	if target, _ := vp.ScrollTarget(); target != 4200 {
		t.Errorf("target = %f, want clamped to 4200", target)
	}
}

func TestScrollToTop(t *testing.T) {
	nav, vp, _ := newNavFixture()
	vp.SetScroll(2500)
	nav.ScrollToTop()
	for i := 0; i < 5; i++ {
		vp.update(0.2)
	}
	if vp.ScrollY != 0 {
		t.Errorf("ScrollY = %f, want 0", vp.ScrollY)
	}
}

func TestIsInViewport(t *testing.T) {
	nav, vp, root := newNavFixture()
	el := NewRect("card", 200, 100, ColorWhite)
	el.SetPosition(100, 1000)
	root.AddChild(el)

	if nav.IsInViewport(el, 0) {
		t.Error("element below the fold reported visible")
	}
	vp.SetScroll(500)
	if !nav.IsInViewport(el, 0) {
		t.Error("element inside the viewport reported hidden")
	}
	vp.SetScroll(1040)
	if nav.IsInViewport(el, 0) {
		t.Error("element cut by the top edge reported visible")
	}
	if !nav.IsInViewport(el, 50) {
		t.Error("threshold should allow 40px of overhang")
	}
	if nav.IsInViewport(nil, 0) {
		t.Error("nil node reported visible")
	}
}
