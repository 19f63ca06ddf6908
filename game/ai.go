package game

// updateEnemy runs one tick of the AI controller: wander, then shoot at the
// player when the shoot timer is due and the player is in range.
func (s *State) updateEnemy(e *Tank, dt float64) {
	e.SinceMoveChange += dt
	if e.SinceMoveChange > e.MoveChangeInterval {
		e.Angle = s.rng.Heading()
		e.SinceMoveChange = 0
		e.MoveChangeInterval = s.rng.MoveChangeInterval()
	}
	e.Advance(e.Angle, dt/FrameMillis)

	e.SinceShot += dt
	if e.SinceShot > e.ShootInterval && s.Player != nil {
		if e.DistanceTo(s.Player.X, s.Player.Y) <= e.DetectionRange {
			e.TurretAngle = s.aimAt(e, s.Player)
			s.fire(e)
			e.SinceShot = 0
		}
	}

	e.Wrap(s.cfg.ScreenWidth, s.cfg.ScreenHeight)
}

// aimAt returns the perfect heading toward the target's current position
// plus a random offset within ±inaccuracy/2.
func (s *State) aimAt(e, target *Tank) float64 {
	return HeadingTo(e.X, e.Y, target.X, target.Y) + s.rng.Spread(e.AimInaccuracy)
}
