package game

// resolveCollisions sweeps every bullet once. Player bullets are tested
// against enemies in list order and kill at most one; enemy bullets are
// tested against the player only.
func (s *State) resolveCollisions() {
	kept := s.Bullets[:0]
	for _, b := range s.Bullets {
		var hit bool
		switch b.Owner {
		case OwnerPlayer:
			hit = s.hitEnemy(b)
		case OwnerEnemy:
			hit = s.hitPlayer(b)
		}
		if !hit {
			kept = append(kept, b)
		}
	}
	clear(s.Bullets[len(kept):])
	s.Bullets = kept
}

// hitEnemy destroys the first enemy the bullet overlaps
func (s *State) hitEnemy(b *Bullet) bool {
	for i, e := range s.Enemies {
		if !b.Hits(e.X, e.Y, e.Radius) {
			continue
		}
		s.explode(e.X, e.Y, e.Color)
		s.Enemies = append(s.Enemies[:i], s.Enemies[i+1:]...)
		s.Score += s.cfg.KillScore
		s.Stats.Kills++
		s.events.Dispatch(Event{Type: EventEnemyDestroyed, X: e.X, Y: e.Y, Owner: OwnerPlayer, Score: s.Score, Level: s.Level})
		return true
	}
	return false
}

// hitPlayer ends the round if the bullet overlaps the live player
func (s *State) hitPlayer(b *Bullet) bool {
	p := s.Player
	if p == nil || !b.Hits(p.X, p.Y, p.Radius) {
		return false
	}
	s.explode(p.X, p.Y, p.Color)
	s.events.Dispatch(Event{Type: EventPlayerDestroyed, X: p.X, Y: p.Y, Owner: OwnerEnemy, Score: s.Score, Level: s.Level})
	s.GameOver()
	return true
}
