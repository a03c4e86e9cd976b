package nuclea

import (
	"errors"
	"testing"
)

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{"steps": [
  {"action": "screenshot", "label": "initial"},
  {"action": "click", "x": 100, "y": 200},
  {"action": "wait", "frames": 3},
  {"action": "screenshot", "label": "after-click"}
]}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "screenshot" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Action != "click" || runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Action != "wait" || runner.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
}

func TestLoadTestScript_YAML(t *testing.T) {
	data := []byte(`
steps:
  - action: anchor
    anchor: services
  - action: scroll
    dy: 400
  - action: type
    text: hello
`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runner.steps[0].Anchor != "services" || runner.steps[1].DY != 400 || runner.steps[2].Text != "hello" {
		t.Errorf("steps = %+v", runner.steps)
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	if _, err := LoadTestScript([]byte(`steps: [`)); err == nil {
		t.Error("expected error for malformed script")
	}
}

func TestLoadTestScript_Empty(t *testing.T) {
	_, err := LoadTestScript([]byte(`{"steps": []}`))
	if !errors.Is(err, errNoSteps) {
		t.Errorf("err = %v, want errNoSteps", err)
	}
}

func TestLoadTestScript_UnknownAction(t *testing.T) {
	if _, err := LoadTestScript([]byte(`{"steps": [{"action": "drag"}]}`)); err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestRunnerStep_Click(t *testing.T) {
	s := NewScene()
	r := NewRect("r", 200, 200, ColorWhite)
	r.Interactable = true
	s.Root().AddChild(r)

	var clicks int
	r.OnClick = func(ClickContext) { clicks++ }

	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "click", "x": 50, "y": 50}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	// Frame 1 queues press+release and consumes the press; frame 2 the
	// release; frame 3 finalizes.
	for i := 0; i < 3; i++ {
		s.Tick(0.1)
	}
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	if !runner.Done() {
		t.Error("runner should be done after all steps executed and queue drained")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	s := NewScene()

	runner, err := LoadTestScript([]byte(`{"steps": [
  {"action": "wait", "frames": 3},
  {"action": "screenshot", "label": "done"}
]}`))
	if err != nil {
		t.Fatal(err)
	}

	// Frame 1: execute wait (waitCount becomes 2).
	runner.step(s)
	// Frames 2 and 3 count down.
	runner.step(s)
	runner.step(s)
	if runner.Done() {
		t.Error("should not be done before the screenshot step")
	}

	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done after screenshot step")
	}
	if len(s.screenshotQueue) != 1 || s.screenshotQueue[0] != "done" {
		t.Errorf("expected screenshot 'done', got %v", s.screenshotQueue)
	}
}

func TestRunnerStep_Scroll(t *testing.T) {
	s := NewScene()
	s.Root().AddChild(NewRect("page", 1280, 5000, ColorWhite))

	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "scroll", "dy": 400}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)
	s.Tick(0.1)

	if s.Viewport().ScrollY != 400 {
		t.Errorf("ScrollY = %f, want 400", s.Viewport().ScrollY)
	}
}

func TestRunnerStep_Anchor(t *testing.T) {
	s := NewScene()
	section := NewRect("services", 1280, 900, ColorWhite)
	section.SetPosition(0, 1200)
	s.Root().AddChild(section)
	s.Root().AddChild(NewRect("spacer", 1280, 6000, ColorWhite))

	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "anchor", "anchor": "services"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)
	s.Tick(0.1)

	target, ok := s.Viewport().ScrollTarget()
	if !ok || target != 1120 {
		t.Errorf("ScrollTarget() = %f, %v, want 1120, true", target, ok)
	}
}

func TestRunnerDone(t *testing.T) {
	s := NewScene()

	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "screenshot", "label": "only"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if runner.Done() {
		t.Error("runner should not be done before any steps")
	}
	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done after single screenshot step")
	}
}

func TestRunnerWaitsForInjectQueue(t *testing.T) {
	s := NewScene()

	runner, err := LoadTestScript([]byte(`{"steps": [
  {"action": "click", "x": 50, "y": 50},
  {"action": "screenshot", "label": "after"}
]}`))
	if err != nil {
		t.Fatal(err)
	}

	runner.step(s)
	if len(s.injectQueue) != 2 {
		t.Fatalf("expected 2 events, got %d", len(s.injectQueue))
	}

	// Should NOT advance because the inject queue is not drained.
	runner.step(s)
	if runner.cursor != 1 {
		t.Errorf("cursor should still be 1, got %d", runner.cursor)
	}

	s.injectQueue = s.injectQueue[:0]

	runner.step(s)
	if len(s.screenshotQueue) != 1 || s.screenshotQueue[0] != "after" {
		t.Errorf("expected screenshot 'after', got %v", s.screenshotQueue)
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}
