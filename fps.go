package nuclea

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// NewFPSWidget creates an overlay node that displays FPS, TPS and the scroll
// position of vp. The text refreshes every 0.5 seconds.
func NewFPSWidget(vp *Viewport) *Node {
	img := ebiten.NewImage(120, 48)

	node := NewImage("fps_widget", img)
	node.RenderLayer = 255

	var sinceUpdate float64
	node.OnUpdate = func(dt float64) {
		sinceUpdate += dt
		if sinceUpdate < 0.5 {
			return
		}
		sinceUpdate = 0

		img.Clear()
		img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nY: %.0f",
			ebiten.ActualFPS(), ebiten.ActualTPS(), vp.ScrollY))
	}
	return node
}
