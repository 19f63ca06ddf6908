// Package input turns device state into game intents. Nothing here talks to
// a device directly; frontends feed it key, pointer and touch positions.
package input

import "tankwar/game"

// Keys is the discrete movement state of a keyboard
type Keys struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool
}

// Axes converts key state into turn and throttle. Opposing keys cancel.
func (k Keys) Axes() (turn, throttle float64) {
	if k.Left {
		turn--
	}
	if k.Right {
		turn++
	}
	if k.Forward {
		throttle++
	}
	if k.Back {
		throttle--
	}
	return turn, throttle
}

// Desktop builds the intent for keyboard movement and pointer aim. The
// pointer is in playfield coordinates.
func Desktop(keys Keys, pointerX, pointerY float64, firing bool) game.Intent {
	turn, throttle := keys.Axes()
	return game.Intent{
		Turn:     turn,
		Throttle: throttle,
		Aim:      game.Aim{Kind: game.AimPoint, X: pointerX, Y: pointerY},
		Firing:   firing,
	}
}

// Touch builds the intent for the on-screen stick and fire button
func Touch(stick *Stick, fire *AimDrag) game.Intent {
	return game.Intent{
		Steer:  stick.Steer(),
		Aim:    fire.Aim(),
		Firing: fire.Active(),
	}
}
