package nuclea

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	DY     float64 `yaml:"dy,omitempty"`
	Anchor string  `yaml:"anchor,omitempty"`
	Text   string  `yaml:"text,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
}

// testScript is the top-level structure for a test script.
type testScript struct {
	Steps []testStep `yaml:"steps"`
}

var errNoSteps = errors.New("no steps")

// TestRunner sequences injected input, scrolling and screenshots across
// frames for automated visual testing. Attach to a Scene via SetTestRunner.
//
// A script is YAML (or JSON, which YAML accepts):
//
//	steps:
//	  - {action: anchor, anchor: services}
//	  - {action: wait, frames: 60}
//	  - {action: screenshot, label: services}
//	  - {action: scroll, dy: 400}
//	  - {action: click, x: 640, y: 300}
//	  - {action: type, text: "hello"}
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a test script and returns a TestRunner ready to be
// attached to a Scene via SetTestRunner.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script testScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: %w", errNoSteps)
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "screenshot", "click", "move", "scroll", "anchor", "top", "type", "wait":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the scene. The runner's step method
// is called from Scene.Update before processInput each frame.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Scene.Update.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "click":
		s.InjectClick(st.X, st.Y)
	case "move":
		s.InjectMove(st.X, st.Y)
	case "scroll":
		s.InjectScroll(st.DY)
	case "anchor":
		s.navigator.ScrollToElement(st.Anchor)
	case "top":
		s.navigator.ScrollToTop()
	case "type":
		s.InjectText(st.Text)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
