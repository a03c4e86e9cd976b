package site

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/phanxgames/nuclea"
	"go.uber.org/zap/zaptest"
)

// monoFont lays text out at 8px per rune and 16px per line so pages can be
// built without loading a TTF.
type monoFont struct{}

func (monoFont) MeasureString(s string) (float64, float64) {
	return float64(utf8.RuneCountInString(s)) * 8, 16
}

func (monoFont) LineHeight() float64 { return 16 }

func testTheme() *Theme {
	f := monoFont{}
	return &Theme{Fonts: Fonts{Small: f, Body: f, Large: f, Heading: f, Title: f, Display: f}}
}

func testContent(t *testing.T) *Content {
	t.Helper()
	c, err := DefaultContent()
	if err != nil {
		t.Fatalf("DefaultContent: %v", err)
	}
	return c
}

func testPage(t *testing.T) *Page {
	t.Helper()
	p := NewPage(testContent(t), testTheme(), zaptest.NewLogger(t))
	p.Now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }
	return p
}

func testBuilder(s *nuclea.Scene) *builder {
	w := s.Viewport().Width
	b := &builder{
		theme: testTheme(),
		scene: s,
		width: w,
		inner: containerWidth(w),
		now:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	b.nav = func(anchor string) { s.Navigator().ScrollToElement(anchor) }
	b.open = func(l Link) {}
	return b
}

// tick advances the scene n frames of dt seconds.
func tick(t *testing.T, s *nuclea.Scene, n int, dt float32) {
	t.Helper()
	for range n {
		if err := s.Tick(dt); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}
}

// centerOf returns the screen position of n's center.
func centerOf(s *nuclea.Scene, n *nuclea.Node) (float64, float64) {
	wx, wy := n.LocalToWorld(n.Width/2, n.Height/2)
	return s.Viewport().WorldToScreen(wx, wy)
}
