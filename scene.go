package nuclea

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Default viewport size used until the first Layout call.
const (
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 800
)

// Scene is the top-level object that owns the document tree, the fixed
// overlay, the viewport and the animation machinery.
//
// The document tree is laid out in document coordinates and scrolls with the
// viewport. The overlay is drawn in screen coordinates on top of it; fixed
// headers and debug widgets live there.
type Scene struct {
	root     *Node
	overlay  *Node
	viewport *Viewport

	animator     *Animator
	orchestrator *Orchestrator
	navigator    *Navigator

	log   *zap.Logger
	debug bool

	// ClearColor is the background color used to fill the screen each frame
	// before drawing. Leave at zero value (transparent black) for no fill.
	ClearColor Color

	// AutoDocumentHeight keeps Viewport.DocumentHeight equal to the bottom
	// edge of the root's children.
	AutoDocumentHeight bool

	// KeyboardScroll enables PageUp/PageDown, Space, Home, End and arrow key
	// scrolling. Disable it while a text field has focus.
	KeyboardScroll bool

	// WheelStep is the scroll distance of one wheel notch in pixels.
	WheelStep float64

	// OnResize is called after the viewport size changes.
	OnResize func(w, h float64)

	// Render state
	commands      []RenderCommand
	sortBuf       []RenderCommand
	viewTransform [6]float64
	cullActive    bool
	cullBounds    Rect

	// Input state
	handlers    *handlerRegistry
	pointer     pointerState
	hitBuf      []*Node
	injectQueue []syntheticEvent
	typed       []rune
	keys        []ebiten.Key
	modifiers   KeyModifiers

	testRunner *TestRunner

	screenshotQueue []string
	// ScreenshotDir is the directory screenshots are written to.
	ScreenshotDir string

	updateFunc func() error

	frame   uint64
	elapsed float64
}

// NewScene creates a new scene with an empty document, an empty overlay and a
// default-sized viewport.
func NewScene() *Scene {
	root := NewContainer("root")
	overlay := NewContainer("overlay")
	vp := newViewport(DefaultViewportWidth, DefaultViewportHeight)
	am := NewAnimator()
	log := zap.NewNop()
	s := &Scene{
		root:               root,
		overlay:            overlay,
		viewport:           vp,
		animator:           am,
		orchestrator:       NewOrchestrator(NewEvaluator(vp, root), am, log),
		navigator:          NewNavigator(root, vp),
		log:                log,
		AutoDocumentHeight: true,
		KeyboardScroll:     true,
		WheelStep:          60,
		handlers:           &handlerRegistry{},
		ScreenshotDir:      "screenshots",
	}
	return s
}

// Root returns the root of the scrolling document tree.
func (s *Scene) Root() *Node { return s.root }

// Overlay returns the root of the fixed, screen-space overlay tree.
func (s *Scene) Overlay() *Node { return s.overlay }

// Viewport returns the scene's viewport.
func (s *Scene) Viewport() *Viewport { return s.viewport }

// Animator returns the scene's animator.
func (s *Scene) Animator() *Animator { return s.animator }

// Reveals returns the scene's scroll-reveal orchestrator.
func (s *Scene) Reveals() *Orchestrator { return s.orchestrator }

// Navigator returns the scene's anchor navigator.
func (s *Scene) Navigator() *Navigator { return s.navigator }

// Logger returns the scene's logger.
func (s *Scene) Logger() *zap.Logger { return s.log }

// SetLogger replaces the logger used by the scene and its orchestrator. A nil
// logger discards output.
func (s *Scene) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	s.log = log
	s.orchestrator.SetLogger(log)
}

// SetUpdateFunc registers a callback that runs once per frame after input and
// scrolling and before node callbacks, transforms and animations.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth is checked and per-frame timing is logged at
// debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
	if enabled {
		debugLogger = s.log
	}
}

// Frame returns the number of frames updated so far.
func (s *Scene) Frame() uint64 { return s.frame }

// Elapsed returns the simulated time in seconds.
func (s *Scene) Elapsed() float64 { return s.elapsed }

// Update advances the scene by one tick of 1/TPS seconds, reading live mouse
// and keyboard input. Called by the game loop.
func (s *Scene) Update() error {
	return s.step(float32(1/float64(ebiten.TPS())), true)
}

// Tick advances the scene by dt seconds using only injected input. Tests and
// headless tools drive the scene through Tick.
func (s *Scene) Tick(dt float32) error {
	return s.step(dt, false)
}

func (s *Scene) step(dt float32, live bool) error {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}

	updateWorldTransform(s.root, identityTransform, 1, false)
	updateWorldTransform(s.overlay, identityTransform, 1, false)
	s.processInput(live)

	s.viewport.update(dt)
	if s.viewport.resized && s.OnResize != nil {
		s.OnResize(s.viewport.Width, s.viewport.Height)
	}

	if s.updateFunc != nil {
		if err := s.updateFunc(); err != nil {
			return err
		}
	}

	runUpdates(s.root, float64(dt))
	runUpdates(s.overlay, float64(dt))

	if s.AutoDocumentHeight {
		s.viewport.SetDocumentHeight(contentHeight(s.root))
	}

	s.orchestrator.Evaluate()
	s.animator.Update(dt)

	updateWorldTransform(s.root, identityTransform, 1, false)
	updateWorldTransform(s.overlay, identityTransform, 1, false)

	s.frame++
	s.elapsed += float64(dt)
	return nil
}

// runUpdates calls OnUpdate depth-first. Children appended by a callback run
// in the same frame.
func runUpdates(n *Node, dt float64) {
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	for i := 0; i < len(n.children); i++ {
		runUpdates(n.children[i], dt)
	}
}

// contentHeight returns the bottom edge of n's direct children.
func contentHeight(n *Node) float64 {
	h := 0.0
	for _, c := range n.children {
		if c.Visible {
			h = max(h, c.Y+c.Height)
		}
	}
	return h
}

// collectCommands traverses the document with the viewport's view matrix and
// culling, then the overlay in screen space, so overlay commands sort after
// document commands on the same render layer.
func (s *Scene) collectCommands() {
	s.commands = s.commands[:0]
	treeOrder := 0

	s.viewTransform = s.viewport.computeViewMatrix()
	s.cullActive = s.viewport.CullEnabled
	s.cullBounds = Rect{Width: s.viewport.Width, Height: s.viewport.Height}
	s.traverse(s.root, identityTransform, 1, false, &treeOrder)

	s.viewTransform = identityTransform
	s.cullActive = false
	s.traverse(s.overlay, identityTransform, 1, false, &treeOrder)
}

// Draw renders the document, then the overlay, onto screen.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.collectCommands()

	if s.debug {
		t1 := time.Now()
		stats.traverseTime = t1.Sub(t0)
		t0 = t1
	}

	s.mergeSort()

	if s.debug {
		t1 := time.Now()
		stats.sortTime = t1.Sub(t0)
		t0 = t1
	}

	s.submit(screen)

	if s.debug {
		stats.submitTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		s.debugLog(stats)
	}

	s.flushScreenshots(screen)
}
