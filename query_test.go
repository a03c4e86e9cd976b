package nuclea

import "testing"

func newQueryTree() *Node {
	root := NewContainer("root")
	services := NewContainer("services")
	grid := NewContainer("grid").AddClass("services-grid")
	root.AddChild(services)
	services.AddChild(grid)
	for _, name := range []string{"a", "b", "c"} {
		card := NewRect(name, 100, 100, ColorWhite).AddClass("service-card")
		grid.AddChild(card)
	}
	grid.ChildAt(1).AddClass("featured")
	root.AddChild(NewContainer("contact"))
	return root
}

func TestQueryByID(t *testing.T) {
	root := newQueryTree()
	if n := root.Query("#contact"); n == nil || n.Name != "contact" {
		t.Errorf("Query(#contact) = %v", n)
	}
	if n := root.Query("grid"); n == nil || n.Name != "grid" {
		t.Errorf("Query(grid) = %v", n)
	}
	if n := root.Query("#missing"); n != nil {
		t.Errorf("Query(#missing) = %v, want nil", n.Name)
	}
}

func TestQueryAllDocumentOrder(t *testing.T) {
	root := newQueryTree()
	root.Query("#grid").ChildAt(0).SetZIndex(10)

	got := root.QueryAll(".service-card")
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("QueryAll returned %d nodes, want %d", len(got), len(want))
	}
	for i, n := range got {
		if n.Name != want[i] {
			t.Errorf("QueryAll[%d] = %q, want %q", i, n.Name, want[i])
		}
	}
}

func TestQueryCompoundClass(t *testing.T) {
	root := newQueryTree()
	got := root.QueryAll(".service-card.featured")
	if len(got) != 1 || got[0].Name != "b" {
		t.Errorf("compound selector matched %d nodes", len(got))
	}
}

func TestQueryInvalidSelector(t *testing.T) {
	root := newQueryTree()
	for _, sel := range []string{"", "#", ".", ".a..b", "   "} {
		if got := root.QueryAll(sel); got != nil {
			t.Errorf("QueryAll(%q) = %d nodes, want nil", sel, len(got))
		}
		if got := root.Query(sel); got != nil {
			t.Errorf("Query(%q) = %v, want nil", sel, got.Name)
		}
	}
}

func TestQueryExcludesSelf(t *testing.T) {
	root := newQueryTree()
	grid := root.Query(".services-grid")
	if got := grid.QueryAll(".services-grid"); len(got) != 0 {
		t.Errorf("QueryAll included the receiver")
	}
}

func TestDocumentBoundsIgnoresPresentation(t *testing.T) {
	root := NewContainer("root")
	section := NewContainer("section")
	section.SetPosition(0, 1200)
	card := NewRect("card", 300, 200, ColorWhite)
	card.SetPosition(40, 100)
	root.AddChild(section)
	section.AddChild(card)

	card.ApplyVisualState(VisualState{Opacity: 0, TranslateY: 50, Scale: 0.9})

	want := Rect{X: 40, Y: 1300, Width: 300, Height: 200}
	if got := card.DocumentBounds(); got != want {
		t.Errorf("DocumentBounds() = %+v, want %+v", got, want)
	}
}

func TestAttached(t *testing.T) {
	root := newQueryTree()
	card := root.Query("#a")
	if !card.Attached(root) {
		t.Error("card should be attached")
	}
	card.RemoveFromParent()
	if card.Attached(root) {
		t.Error("removed card should not be attached")
	}
	other := root.Query("#b")
	other.Dispose()
	if other.Attached(root) {
		t.Error("disposed card should not be attached")
	}
	var nilNode *Node
	if nilNode.Attached(root) {
		t.Error("nil node should not be attached")
	}
}
