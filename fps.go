package heppi

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay shows FPS, TPS and the show mode in the top-left corner. The
// text is re-rendered every half second.
type fpsOverlay struct {
	img        *ebiten.Image
	lastUpdate float64
	dirty      bool
}

func newFPSOverlay() *fpsOverlay {
	// 160x48 fits "FPS: 60.0\nTPS: 60.0\nambient bursts=12".
	return &fpsOverlay{img: ebiten.NewImage(160, 48), dirty: true}
}

func (o *fpsOverlay) update(dt float64, st State) {
	o.lastUpdate += dt
	if o.lastUpdate < 0.5 && !o.dirty {
		return
	}
	o.lastUpdate = 0
	o.dirty = false

	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\n%s bursts=%d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), st.Mode, len(st.Bursts)))
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	screen.DrawImage(o.img, nil)
}
