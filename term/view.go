package term

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"tankwar/game"
)

// hudRows is the number of terminal rows above the playfield
const hudRows = 1

var (
	background = colorful.Color{R: 0.1, G: 0.1, B: 0.1}
	hudStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	overStyle  = tcell.StyleDefault.Foreground(tcell.ColorTomato).Bold(true)
	turretRune = '+'
	bulletRune = '•'
	hullArrows = []rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}
)

// viewport maps playfield units to terminal cells
type viewport struct {
	cols, rows    int
	width, height float64
}

func newViewport(cols, rows int, cfg game.Config) viewport {
	return viewport{cols: cols, rows: rows, width: cfg.ScreenWidth, height: cfg.ScreenHeight}
}

func (v viewport) fieldRows() int {
	return max(1, v.rows-hudRows)
}

// toCell converts a playfield point to a cell. ok is false off screen.
func (v viewport) toCell(x, y float64) (col, row int, ok bool) {
	col = int(math.Floor(x / v.width * float64(v.cols)))
	row = int(math.Floor(y/v.height*float64(v.fieldRows()))) + hudRows
	ok = col >= 0 && col < v.cols && row >= hudRows && row < v.rows
	return col, row, ok
}

// toField converts a cell to the playfield point at its centre
func (v viewport) toField(col, row int) (float64, float64) {
	x := (float64(col) + 0.5) / float64(v.cols) * v.width
	y := (float64(row-hudRows) + 0.5) / float64(v.fieldRows()) * v.height
	return x, y
}

// arrowFor picks the arrow closest to a heading (0 = up, clockwise)
func arrowFor(heading float64) rune {
	octant := int(math.Round(heading/(math.Pi/4))) % 8
	if octant < 0 {
		octant += 8
	}
	return hullArrows[octant]
}

// fade blends a colour toward the background by opacity
func fade(c color.NRGBA, opacity float64) tcell.Color {
	cf, _ := colorful.MakeColor(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
	r, g, b := background.BlendRgb(cf, math.Max(0, math.Min(1, opacity))).RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func tcellColor(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// draw renders a snapshot into the screen buffer. The caller calls Show.
func draw(screen tcell.Screen, v viewport, snap game.Snapshot, hint string) {
	bg := tcell.NewRGBColor(int32(background.R*255), int32(background.G*255), int32(background.B*255))
	base := tcell.StyleDefault.Background(bg)
	screen.SetStyle(base)
	screen.Clear()

	ox, oy := snap.ShakeX, snap.ShakeY
	for _, d := range snap.Drawables {
		switch d.Kind {
		case game.KindParticle:
			if col, row, ok := v.toCell(d.X+ox, d.Y+oy); ok {
				r := '*'
				if d.Opacity < 0.5 {
					r = '.'
				}
				screen.SetContent(col, row, r, nil, base.Foreground(fade(d.Color, d.Opacity)))
			}
		case game.KindTank:
			drawTank(screen, v, d, ox, oy, base)
		case game.KindBullet:
			if col, row, ok := v.toCell(d.X+ox, d.Y+oy); ok {
				screen.SetContent(col, row, bulletRune, nil, base.Foreground(tcellColor(d.Color)))
			}
		}
	}

	putString(screen, 0, 0, fmt.Sprintf(" Score: %d   Level: %d ", snap.Score, snap.Level), hudStyle.Background(bg))

	if snap.RestartVisible {
		mid := v.rows / 2
		centerString(screen, v.cols, mid-1, "GAME OVER", overStyle.Background(bg))
		centerString(screen, v.cols, mid, fmt.Sprintf("Score %d - Level %d", snap.Score, snap.Level), hudStyle.Background(bg))
		centerString(screen, v.cols, mid+2, hint, base.Foreground(tcell.ColorLightGray))
	}
}

// drawTank fills the cells covered by the hull circle and marks the hull
// heading in the centre and the gun at the muzzle.
func drawTank(screen tcell.Screen, v viewport, d game.Drawable, ox, oy float64, base tcell.Style) {
	x, y := d.X+ox, d.Y+oy
	body := base.Foreground(tcellColor(d.Color))

	c0, r0, _ := v.toCell(x-d.Radius*0.7, y-d.Radius*0.7)
	c1, r1, _ := v.toCell(x+d.Radius*0.7, y+d.Radius*0.7)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if col < 0 || col >= v.cols || row < hudRows || row >= v.rows {
				continue
			}
			screen.SetContent(col, row, '▓', nil, body)
		}
	}

	if col, row, ok := v.toCell(x, y); ok {
		screen.SetContent(col, row, arrowFor(d.Angle), nil, body.Reverse(true))
	}
	mx := x + math.Sin(d.TurretAngle)*d.Radius*1.2
	my := y - math.Cos(d.TurretAngle)*d.Radius*1.2
	if col, row, ok := v.toCell(mx, my); ok {
		screen.SetContent(col, row, turretRune, nil, base.Foreground(tcell.ColorWhite))
	}
}

func putString(screen tcell.Screen, col, row int, s string, style tcell.Style) {
	for _, r := range s {
		screen.SetContent(col, row, r, nil, style)
		col++
	}
}

func centerString(screen tcell.Screen, cols, row int, s string, style tcell.Style) {
	putString(screen, max(0, (cols-len([]rune(s)))/2), row, s, style)
}
