package input

import (
	"math"

	"tankwar/game"
)

// Autopilot drives the player from the current state: it aims at the
// nearest enemy, fires when in range and backs off when crowded. It uses no
// randomness, so autopiloted rounds replay exactly from their seed.
type Autopilot struct {
	source func() *game.State

	// KeepAway is the distance below which the tank retreats from the
	// nearest enemy
	KeepAway float64
	// FireRange is the distance within which it holds the trigger
	FireRange float64
	// Roam is the distance from the centre it drifts back from
	Roam float64
}

// NewAutopilot creates an autopilot that reads the state from source on
// every poll.
func NewAutopilot(source func() *game.State) *Autopilot {
	return &Autopilot{
		source:    source,
		KeepAway:  150,
		FireRange: 450,
		Roam:      120,
	}
}

// Intent implements game.IntentProvider
func (a *Autopilot) Intent() game.Intent {
	s := a.source()
	if s == nil || s.Player == nil || s.IsGameOver {
		return game.Intent{}
	}
	p := s.Player

	target, dist := nearestEnemy(p, s.Enemies)
	if target == nil {
		return game.Intent{}
	}

	in := game.Intent{
		Aim:    game.Aim{Kind: game.AimPoint, X: target.X, Y: target.Y},
		Firing: dist <= a.FireRange,
	}

	cfg := s.Config()
	cx, cy := cfg.ScreenWidth/2, cfg.ScreenHeight/2
	switch {
	case dist < a.KeepAway:
		in.Steer = game.Steer{Active: true, Angle: math.Atan2(p.Y-target.Y, p.X-target.X)}
	case math.Hypot(cx-p.X, cy-p.Y) > a.Roam:
		in.Steer = game.Steer{Active: true, Angle: math.Atan2(cy-p.Y, cx-p.X)}
	}
	return in
}

func nearestEnemy(p *game.Tank, enemies []*game.Tank) (*game.Tank, float64) {
	var best *game.Tank
	bestDist := math.Inf(1)
	for _, e := range enemies {
		if d := p.DistanceTo(e.X, e.Y); d < bestDist {
			best, bestDist = e, d
		}
	}
	return best, bestDist
}
