package game

import "math"

// AimKind selects how Aim is interpreted
type AimKind int

const (
	// AimHold leaves the turret where it is
	AimHold AimKind = iota
	// AimAngle points the turret along a screen angle (atan2 convention, 0 = right)
	AimAngle
	// AimPoint points the turret at a playfield position
	AimPoint
)

// Aim is the turret part of an intent
type Aim struct {
	Kind  AimKind
	Angle float64
	X, Y  float64
}

// Steer drives the tank directly along a screen angle (atan2 convention)
// and turns the hull to face it. Used by analog sticks.
type Steer struct {
	Active bool
	Angle  float64
}

// Intent is the player's input snapshot for one tick. It is captured once
// at tick start and every frontend fills the same structure.
type Intent struct {
	// Turn rotates the hull: -1 left, +1 right
	Turn float64

	// Throttle drives along the hull heading: +1 forward, -1 reverse
	Throttle float64

	Steer Steer
	Aim   Aim

	// Firing is true for as long as the fire control is held
	Firing bool
}

// IntentProvider supplies the intent snapshot polled at the start of each tick
type IntentProvider interface {
	Intent() Intent
}

// IntentFunc adapts a function to IntentProvider
type IntentFunc func() Intent

// Intent calls f
func (f IntentFunc) Intent() Intent {
	return f()
}

// ScreenToHeading converts an atan2 screen angle (0 = right) into the
// tank heading convention (0 = up).
func ScreenToHeading(angle float64) float64 {
	return angle + math.Pi/2
}

// HeadingTo returns the heading from (x, y) toward (tx, ty).
func HeadingTo(x, y, tx, ty float64) float64 {
	return ScreenToHeading(math.Atan2(ty-y, tx-x))
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
