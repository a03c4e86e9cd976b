package nuclea

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	// ShowFPS adds an FPS widget to the overlay.
	ShowFPS bool
	// ExitOnScriptDone ends Run once an attached TestRunner finishes.
	ExitOnScriptDone bool
}

// ErrScriptDone is returned by Run when ExitOnScriptDone ended the loop.
var ErrScriptDone = errors.New("nuclea: test script finished")

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
	cfg   RunConfig
}

func (g *game) Update() error {
	if err := g.scene.Update(); err != nil {
		return err
	}
	if g.cfg.ExitOnScriptDone && g.scene.testRunner != nil && g.scene.testRunner.Done() &&
		len(g.scene.screenshotQueue) == 0 {
		return ErrScriptDone
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

// Layout keeps the viewport the size of the window, so a window resize is
// seen by the trigger evaluator like a browser resize.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scene.viewport.SetSize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// Run opens a window and runs the scene until the window closes or the
// update function returns an error. ErrScriptDone is not reported.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = DefaultViewportWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultViewportHeight
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	scene.viewport.SetSize(float64(cfg.Width), float64(cfg.Height))
	if cfg.ShowFPS {
		scene.overlay.AddChild(NewFPSWidget(scene.viewport))
	}
	err := ebiten.RunGame(&game{scene: scene, cfg: cfg})
	if errors.Is(err, ErrScriptDone) {
		return nil
	}
	return err
}
