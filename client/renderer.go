package client

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"tankwar/game"
)

var (
	backgroundColor = color.RGBA{0x1a, 0x1a, 0x1a, 0xff}
	turretColor     = color.RGBA{0x66, 0x66, 0x66, 0xff}
	barrelColor     = color.RGBA{0x44, 0x44, 0x44, 0xff}
	muzzleColor     = color.RGBA{0x22, 0x22, 0x22, 0xff}
	trackColor      = color.RGBA{0x44, 0x44, 0x44, 0xff}
	overlayColor    = color.NRGBA{0, 0, 0, 0x99}
	buttonColor     = color.RGBA{0x33, 0x7a, 0xb7, 0xff}
)

// Renderer draws snapshots. It never touches the simulation state.
type Renderer struct {
	sprites *spriteCache
	face    text.Face
	pixel   *ebiten.Image
}

// NewRenderer creates a renderer with the built-in bitmap font
func NewRenderer(sprites *spriteCache) *Renderer {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &Renderer{
		sprites: sprites,
		face:    text.NewGoXFace(basicfont.Face7x13),
		pixel:   pixel,
	}
}

// Draw renders the playfield with the shake offset applied, then the HUD
func (r *Renderer) Draw(screen *ebiten.Image, snap game.Snapshot) {
	screen.Fill(backgroundColor)

	ox, oy := snap.ShakeX, snap.ShakeY
	for _, d := range snap.Drawables {
		switch d.Kind {
		case game.KindParticle:
			r.drawParticle(screen, d, ox, oy)
		case game.KindTank:
			r.drawTank(screen, d, ox, oy)
		case game.KindBullet:
			vector.DrawFilledCircle(screen, float32(d.X+ox), float32(d.Y+oy), float32(d.Radius), d.Color, true)
		}
	}

	r.drawHUD(screen, snap)
}

func (r *Renderer) drawParticle(screen *ebiten.Image, d game.Drawable, ox, oy float64) {
	clr := d.Color
	clr.A = uint8(float64(clr.A) * d.Opacity)
	vector.DrawFilledCircle(screen, float32(d.X+ox), float32(d.Y+oy), float32(d.Radius), clr, true)
}

// drawTank draws the hull rotated by its heading, then the turret and
// barrel rotated independently.
func (r *Renderer) drawTank(screen *ebiten.Image, d game.Drawable, ox, oy float64) {
	x, y := d.X+ox, d.Y+oy

	if hull := r.sprites.Hull(d.Color); hull != nil {
		b := hull.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
		op.GeoM.Scale(hullSpriteWidth/float64(b.Dx()), hullSpriteHeight/float64(b.Dy()))
		op.GeoM.Rotate(d.Angle)
		op.GeoM.Translate(x, y)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(hull, op)
	} else {
		r.fillRect(screen, x, y, -d.Width/2-6, -d.Height/2, 12, d.Height, d.Angle, trackColor)
		r.fillRect(screen, x, y, d.Width/2-6, -d.Height/2, 12, d.Height, d.Angle, trackColor)
		r.fillRect(screen, x, y, -d.Width/2, -d.Height/2, d.Width, d.Height, d.Angle, d.Color)
	}

	vector.DrawFilledCircle(screen, float32(x), float32(y), float32(d.Width/2.2), turretColor, true)
	r.fillRect(screen, x, y, -6, -d.Height/2-20, 12, 40, d.TurretAngle, barrelColor)
	r.fillRect(screen, x, y, -6, -d.Height/2-25, 12, 5, d.TurretAngle, muzzleColor)
}

// fillRect fills a rectangle given in local coordinates, rotated by angle
// about the local origin placed at (cx, cy).
func (r *Renderer) fillRect(screen *ebiten.Image, cx, cy, lx, ly, w, h, angle float64, clr color.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(lx, ly)
	op.GeoM.Rotate(angle)
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(clr)
	screen.DrawImage(r.pixel, op)
}

func (r *Renderer) drawHUD(screen *ebiten.Image, snap game.Snapshot) {
	r.drawText(screen, fmt.Sprintf("Score: %d", snap.Score), 12, 12, colornames.White)
	r.drawText(screen, fmt.Sprintf("Level: %d", snap.Level), 12, 30, colornames.White)
}

// drawGameOver dims the playfield and shows the final score and the
// restart button.
func (r *Renderer) drawGameOver(screen *ebiten.Image, snap game.Snapshot, restart button, hint string) {
	vector.DrawFilledRect(screen, 0, 0, float32(snap.Width), float32(snap.Height), overlayColor, false)

	r.drawCentered(screen, "GAME OVER", snap.Width/2, snap.Height/2-60, colornames.Tomato)
	r.drawCentered(screen, fmt.Sprintf("Score %d  -  Level %d", snap.Score, snap.Level), snap.Width/2, snap.Height/2-30, colornames.White)

	vector.DrawFilledRect(screen, float32(restart.X), float32(restart.Y), float32(restart.W), float32(restart.H), buttonColor, true)
	r.drawCentered(screen, restart.Label, restart.X+restart.W/2, restart.Y+restart.H/2-6, colornames.White)

	if hint != "" {
		r.drawCentered(screen, hint, snap.Width/2, restart.Y+restart.H+16, colornames.Lightgray)
	}
}

func (r *Renderer) drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, r.face, op)
}

func (r *Renderer) drawCentered(screen *ebiten.Image, s string, cx, y float64, clr color.Color) {
	w := text.Advance(s, r.face)
	r.drawText(screen, s, cx-w/2, y, clr)
}
