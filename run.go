package reveal

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// OnUpdate, if set, runs every tick before the stage updates. Returning
	// an error (ebiten.Termination to quit cleanly) ends the game loop.
	OnUpdate func() error
	// ShowFPS overlays the measured FPS and TPS in the top-left corner.
	ShowFPS bool
}

// game adapts a Stage to ebiten.Game.
type game struct {
	stage *Stage
	cfg   RunConfig
}

func (g *game) Update() error {
	if g.cfg.OnUpdate != nil {
		if err := g.cfg.OnUpdate(); err != nil {
			return err
		}
	}
	g.stage.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.stage.Draw(screen)
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and drives stage until the window closes. For full
// control implement ebiten.Game yourself and call Stage.Update and
// Stage.Draw directly.
func Run(stage *Stage, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("reveal: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if err := ebiten.RunGame(&game{stage: stage, cfg: cfg}); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
