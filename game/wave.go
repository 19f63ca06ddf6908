package game

// advanceWave starts the next level once the current wave is cleared
func (s *State) advanceWave() {
	if len(s.Enemies) > 0 {
		return
	}
	s.Level++
	s.spawnWave()
}

// spawnWave adds WaveSize(level) enemies just off the left or right edge.
// Their difficulty is fixed from the current level.
func (s *State) spawnWave() {
	count := WaveSize(s.Level)
	for i := 0; i < count; i++ {
		x := -s.cfg.EnemySpawnMargin
		if !s.rng.Chance(0.5) {
			x = s.cfg.ScreenWidth + s.cfg.EnemySpawnMargin
		}
		y := s.rng.Range(0, s.cfg.ScreenHeight)
		s.Enemies = append(s.Enemies, NewEnemyTank(x, y, s.Level, s.cfg, s.rng))
	}
	s.Stats.WavesSpawned++
	s.events.Dispatch(Event{Type: EventWaveSpawned, Level: s.Level, Count: count, Score: s.Score})
}
