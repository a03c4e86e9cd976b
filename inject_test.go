package nuclea

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestInjectClick(t *testing.T) {
	s := NewScene()
	btn := newInteractiveRect("btn", 0, 0, 100, 100)
	s.Root().AddChild(btn)
	refresh(s)

	var clicked bool
	s.OnClick(func(ctx ClickContext) {
		clicked = true
		if ctx.Node != btn {
			t.Error("expected btn node")
		}
	})

	s.InjectClick(50, 50)
	if len(s.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events, got %d", len(s.injectQueue))
	}

	// Frame 1: press
	s.processInput(false)
	if len(s.injectQueue) != 1 {
		t.Fatalf("expected 1 remaining event after frame 1, got %d", len(s.injectQueue))
	}
	if clicked {
		t.Error("click should not fire on press")
	}

	// Frame 2: release
	s.processInput(false)
	if !clicked {
		t.Error("click should fire on release")
	}
	if len(s.injectQueue) != 0 {
		t.Errorf("queue should be empty, got %d", len(s.injectQueue))
	}
}

func TestInjectQueueOrder(t *testing.T) {
	s := NewScene()
	s.InjectMove(10, 10)
	s.InjectScroll(100)
	s.InjectText("hi")
	s.InjectKey(ebiten.KeyEnter)

	want := []syntheticKind{syntheticPointer, syntheticWheel, syntheticText, syntheticKey}
	if len(s.injectQueue) != len(want) {
		t.Fatalf("queue len = %d, want %d", len(s.injectQueue), len(want))
	}
	for i, k := range want {
		if s.injectQueue[i].kind != k {
			t.Errorf("event %d kind = %v, want %v", i, s.injectQueue[i].kind, k)
		}
	}
}

func TestInjectScroll(t *testing.T) {
	s := NewScene()
	s.Viewport().SetDocumentHeight(5000)
	s.InjectScroll(240)
	s.processInput(false)
	if s.Viewport().ScrollY != 240 {
		t.Errorf("ScrollY = %f, want 240", s.Viewport().ScrollY)
	}
}

func TestInjectTextAndKey(t *testing.T) {
	s := NewScene()
	s.InjectText("ab")
	s.InjectKey(ebiten.KeyBackspace)

	s.processInput(false)
	if got := string(s.TypedChars()); got != "ab" {
		t.Errorf("TypedChars = %q, want %q", got, "ab")
	}

	s.processInput(false)
	if len(s.TypedChars()) != 0 {
		t.Errorf("typed chars should reset each frame, got %q", string(s.TypedChars()))
	}
	if !s.KeyJustPressed(ebiten.KeyBackspace) {
		t.Error("expected Backspace pressed")
	}

	s.processInput(false)
	if s.KeyJustPressed(ebiten.KeyBackspace) {
		t.Error("key should only be pressed for one frame")
	}
}

func TestProcessInjectedInput_EmptyQueue(t *testing.T) {
	s := NewScene()
	if s.processInjectedInput() {
		t.Error("processInjectedInput should return false for empty queue")
	}
}
