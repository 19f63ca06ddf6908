package game

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// DrawableKind tells the renderer how to draw an entry
type DrawableKind int

const (
	KindParticle DrawableKind = iota
	KindTank
	KindBullet
)

// Bullet colours by owner
var (
	PlayerBulletColor = toNRGBA(colornames.Yellow)
	EnemyBulletColor  = color.NRGBA{R: 0xff, G: 0x99, B: 0x99, A: 0xff}
)

// Drawable is a read-only copy of one entity for the renderer
type Drawable struct {
	Kind DrawableKind
	Role Role

	X, Y        float64
	Angle       float64
	TurretAngle float64
	Radius      float64
	Width       float64
	Height      float64

	Color   color.NRGBA
	Opacity float64
}

// Snapshot is everything a frontend needs to draw a frame. Drawables are
// in paint order: particles, player, enemies, bullets. Once the round is
// over only particles are listed.
type Snapshot struct {
	Width, Height float64
	Drawables     []Drawable

	Score int
	Level int

	GameOver       bool
	RestartVisible bool
	ShakeX, ShakeY float64
}

// Snapshot copies the state for drawing
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Width:          s.cfg.ScreenWidth,
		Height:         s.cfg.ScreenHeight,
		Drawables:      make([]Drawable, 0, len(s.Particles)+len(s.Enemies)+len(s.Bullets)+1),
		Score:          s.Score,
		Level:          s.Level,
		GameOver:       s.IsGameOver,
		RestartVisible: s.RestartVisible(),
		ShakeX:         s.ShakeX,
		ShakeY:         s.ShakeY,
	}

	for _, p := range s.Particles {
		snap.Drawables = append(snap.Drawables, Drawable{
			Kind:    KindParticle,
			X:       p.X,
			Y:       p.Y,
			Radius:  p.Radius,
			Color:   p.Color,
			Opacity: p.Opacity,
		})
	}
	if s.IsGameOver {
		return snap
	}
	if s.Player != nil {
		snap.Drawables = append(snap.Drawables, tankDrawable(s.Player))
	}
	for _, e := range s.Enemies {
		snap.Drawables = append(snap.Drawables, tankDrawable(e))
	}
	for _, b := range s.Bullets {
		clr := EnemyBulletColor
		if b.Owner == OwnerPlayer {
			clr = PlayerBulletColor
		}
		snap.Drawables = append(snap.Drawables, Drawable{
			Kind:    KindBullet,
			X:       b.X,
			Y:       b.Y,
			Angle:   b.Angle,
			Radius:  b.Radius,
			Color:   clr,
			Opacity: 1,
		})
	}
	return snap
}

func tankDrawable(t *Tank) Drawable {
	return Drawable{
		Kind:        KindTank,
		Role:        t.Role,
		X:           t.X,
		Y:           t.Y,
		Angle:       t.Angle,
		TurretAngle: t.TurretAngle,
		Radius:      t.Radius,
		Width:       t.Width,
		Height:      t.Height,
		Color:       t.Color,
		Opacity:     1,
	}
}

func toNRGBA(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
