package client

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"tankwar/game"
	"tankwar/input"
)

// deviceInput samples ebiten input once per Update and serves the result
// as the tick intent. In touch mode it tracks the stick and fire button by
// touch ID.
type deviceInput struct {
	touch bool

	stick  *input.Stick
	fire   input.AimDrag
	fireX  float64
	fireY  float64
	fireR  float64
	stickT ebiten.TouchID
	fireT  ebiten.TouchID

	intent  game.Intent
	touches []ebiten.TouchID
}

func newDeviceInput(cfg game.Config, touch bool) *deviceInput {
	return &deviceInput{
		touch:  touch,
		stick:  input.NewStick(100, cfg.ScreenHeight-100, 60),
		fireX:  cfg.ScreenWidth - 100,
		fireY:  cfg.ScreenHeight - 100,
		fireR:  50,
		stickT: -1,
		fireT:  -1,
	}
}

// Intent implements game.IntentProvider
func (d *deviceInput) Intent() game.Intent {
	return d.intent
}

// Poll reads the devices. Call once per Update before the tick.
func (d *deviceInput) Poll() {
	if d.touch {
		d.pollTouch()
		d.intent = input.Touch(d.stick, &d.fire)
		return
	}

	keys := input.Keys{
		Forward: ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp),
		Back:    ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown),
		Left:    ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft),
		Right:   ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight),
	}
	mx, my := ebiten.CursorPosition()
	firing := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) || ebiten.IsKeyPressed(ebiten.KeySpace)
	d.intent = input.Desktop(keys, float64(mx), float64(my), firing)
}

func (d *deviceInput) pollTouch() {
	d.touches = inpututil.AppendJustReleasedTouchIDs(d.touches[:0])
	for _, id := range d.touches {
		switch id {
		case d.stickT:
			d.stick.Release()
			d.stickT = -1
		case d.fireT:
			d.fire.Release()
			d.fireT = -1
		}
	}

	d.touches = inpututil.AppendJustPressedTouchIDs(d.touches[:0])
	for _, id := range d.touches {
		x, y := ebiten.TouchPosition(id)
		fx, fy := float64(x), float64(y)
		switch {
		case d.stickT < 0 && d.stick.Contains(fx, fy):
			d.stickT = id
			d.stick.Press(fx, fy)
		case d.fireT < 0 && d.onFireButton(fx, fy):
			d.fireT = id
			d.fire.Press(fx, fy)
		}
	}

	if d.stickT >= 0 {
		x, y := ebiten.TouchPosition(d.stickT)
		d.stick.Move(float64(x), float64(y))
	}
	if d.fireT >= 0 {
		x, y := ebiten.TouchPosition(d.fireT)
		d.fire.Move(float64(x), float64(y))
	}
}

func (d *deviceInput) onFireButton(x, y float64) bool {
	dx, dy := x-d.fireX, y-d.fireY
	return dx*dx+dy*dy <= d.fireR*d.fireR
}

// reset releases held touch controls, used when a new round starts
func (d *deviceInput) reset() {
	d.stick.Release()
	d.fire.Release()
	d.stickT, d.fireT = -1, -1
	d.intent = game.Intent{}
}

// restartRequested reports an R key press or a click/tap inside the
// restart button.
func (d *deviceInput) restartRequested(b button) bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		return true
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if b.contains(float64(x), float64(y)) {
			return true
		}
	}
	d.touches = inpututil.AppendJustPressedTouchIDs(d.touches[:0])
	for _, id := range d.touches {
		x, y := ebiten.TouchPosition(id)
		if b.contains(float64(x), float64(y)) {
			return true
		}
	}
	return false
}

// button is an axis-aligned on-screen button
type button struct {
	X, Y, W, H float64
	Label      string
}

func (b button) contains(x, y float64) bool {
	return x >= b.X && x <= b.X+b.W && y >= b.Y && y <= b.Y+b.H
}
