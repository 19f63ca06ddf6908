package client

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"tankwar/game"
)

// debugOverlay shows collision circles and entity counts. F1 toggles it;
// the flag lives on the app so it survives restarts.
type debugOverlay struct {
	enabled bool
}

func (d *debugOverlay) Toggle() {
	d.enabled = !d.enabled
}

func (d *debugOverlay) Draw(screen *ebiten.Image, r *Renderer, s *game.State) {
	if !d.enabled {
		return
	}

	snap := s.Snapshot()
	for _, dr := range snap.Drawables {
		if dr.Kind == game.KindParticle {
			continue
		}
		vector.StrokeCircle(screen, float32(dr.X+snap.ShakeX), float32(dr.Y+snap.ShakeY), float32(dr.Radius), 1, colornames.Lime, true)
	}

	for _, e := range s.Enemies {
		if s.Player == nil {
			break
		}
		if e.DistanceTo(s.Player.X, s.Player.Y) <= e.DetectionRange {
			vector.StrokeLine(screen, float32(e.X), float32(e.Y), float32(s.Player.X), float32(s.Player.Y), 1, colornames.Orangered, true)
		}
	}

	lines := []string{
		fmt.Sprintf("TPS %.0f  FPS %.0f", ebiten.ActualTPS(), ebiten.ActualFPS()),
		fmt.Sprintf("enemies %d  bullets %d  particles %d", len(s.Enemies), len(s.Bullets), len(s.Particles)),
		fmt.Sprintf("seed %d  frames %d  shots %d/%d", s.Seed(), s.Stats.Frames, s.Stats.PlayerShots, s.Stats.EnemyShots),
	}
	for i, line := range lines {
		r.drawText(screen, line, 12, snap.Height-60+float64(i)*16, colornames.Lime)
	}
}
