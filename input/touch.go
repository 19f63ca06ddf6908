package input

import (
	"math"

	"tankwar/game"
)

// AimDragThreshold is how far a finger must travel from where it pressed
// the fire button before the drag updates the aim.
const AimDragThreshold = 10.0

// Stick is a virtual analog stick. While pressed it steers along the
// direction from its centre to the finger.
type Stick struct {
	CenterX, CenterY float64
	Radius           float64

	active       bool
	angle        float64
	knobX, knobY float64
}

// NewStick creates a stick centred at (x, y)
func NewStick(x, y, radius float64) *Stick {
	return &Stick{CenterX: x, CenterY: y, Radius: radius}
}

// Contains reports whether a point is on the stick base
func (s *Stick) Contains(x, y float64) bool {
	return math.Hypot(x-s.CenterX, y-s.CenterY) <= s.Radius
}

// Press activates the stick at a touch position
func (s *Stick) Press(x, y float64) {
	s.active = true
	s.Move(x, y)
}

// Move updates the stick direction. The knob is clamped to the base radius.
func (s *Stick) Move(x, y float64) {
	if !s.active {
		return
	}
	dx := x - s.CenterX
	dy := y - s.CenterY
	if d := math.Hypot(dx, dy); d > s.Radius {
		dx = dx / d * s.Radius
		dy = dy / d * s.Radius
	}
	s.knobX, s.knobY = dx, dy
	s.angle = math.Atan2(dy, dx)
}

// Release recentres the knob
func (s *Stick) Release() {
	s.active = false
	s.knobX, s.knobY = 0, 0
}

// Active reports whether the stick is held
func (s *Stick) Active() bool {
	return s.active
}

// Knob returns the knob offset from the centre
func (s *Stick) Knob() (float64, float64) {
	return s.knobX, s.knobY
}

// Steer returns the steer part of an intent
func (s *Stick) Steer() game.Steer {
	return game.Steer{Active: s.active, Angle: s.angle}
}

// AimDrag is the touch fire button: holding it fires, dragging away from
// the press point aims.
type AimDrag struct {
	active         bool
	startX, startY float64
	angle          float64
}

// Press starts firing
func (a *AimDrag) Press(x, y float64) {
	a.active = true
	a.startX, a.startY = x, y
}

// Move aims along the drag once it passes AimDragThreshold
func (a *AimDrag) Move(x, y float64) {
	if !a.active {
		return
	}
	dx := x - a.startX
	dy := y - a.startY
	if math.Hypot(dx, dy) > AimDragThreshold {
		a.angle = math.Atan2(dy, dx)
	}
}

// Release stops firing. The last aim angle is kept for the next press.
func (a *AimDrag) Release() {
	a.active = false
}

// Active reports whether the fire button is held
func (a *AimDrag) Active() bool {
	return a.active
}

// Aim returns the turret part of an intent
func (a *AimDrag) Aim() game.Aim {
	if !a.active {
		return game.Aim{Kind: game.AimHold}
	}
	return game.Aim{Kind: game.AimAngle, Angle: a.angle}
}
