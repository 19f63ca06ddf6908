package game

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Stats counts what happened during a round
type Stats struct {
	Frames       int
	Elapsed      float64
	PlayerShots  int
	EnemyShots   int
	Kills        int
	WavesSpawned int
}

// State is the simulation context for one round. It is built by NewState
// at round start and replaced wholesale on restart; only the tick call
// chain mutates it.
type State struct {
	cfg    Config
	rng    *Rand
	events *Dispatcher

	// Player is nil once the player has been destroyed
	Player    *Tank
	Enemies   []*Tank
	Bullets   []*Bullet
	Particles []*Particle

	Score      int
	Level      int
	IsGameOver bool

	// Post-game animation
	ShakeRemaining float64
	ShakeX, ShakeY float64
	fireworkTimer  float64

	Stats Stats
}

// NewState creates a fresh round: player in the centre, level 1 wave spawned.
// events may be nil.
func NewState(cfg Config, events *Dispatcher) *State {
	s := &State{
		cfg:    cfg,
		rng:    NewRand(cfg.Seed),
		events: events,
		Level:  1,
	}
	s.Player = NewPlayerTank(cfg.ScreenWidth/2, cfg.ScreenHeight/2, cfg)
	s.spawnWave()
	return s
}

// Config returns the configuration the round was built with
func (s *State) Config() Config {
	return s.cfg
}

// Seed returns the RNG seed of the round
func (s *State) Seed() int64 {
	return s.rng.Seed()
}

// Tick advances the round by dt milliseconds. Every entity observes the
// same dt and intent. Phases run strictly in order: updates, collisions,
// pruning.
func (s *State) Tick(dt float64, in Intent) {
	if dt < 0 {
		dt = 0
	}
	s.Stats.Frames++
	s.Stats.Elapsed += dt

	if s.IsGameOver {
		s.tickAftermath(dt)
		return
	}

	s.advanceWave()

	if s.Player != nil {
		s.updatePlayer(s.Player, dt, in)
	}
	for _, e := range s.Enemies {
		s.updateEnemy(e, dt)
	}
	for _, b := range s.Bullets {
		b.Update(dt)
	}
	for _, p := range s.Particles {
		p.Update(dt)
	}

	s.resolveCollisions()
	s.prune()
}

func (s *State) updatePlayer(p *Tank, dt float64, in Intent) {
	frames := dt / FrameMillis
	p.SinceShot += dt

	p.Angle += clampUnit(in.Turn) * s.cfg.PlayerTurnRate * frames
	if in.Throttle != 0 {
		p.Advance(p.Angle, clampUnit(in.Throttle)*frames)
	}
	if in.Steer.Active {
		heading := ScreenToHeading(in.Steer.Angle)
		p.Advance(heading, frames)
		p.Angle = heading
	}

	switch in.Aim.Kind {
	case AimAngle:
		p.TurretAngle = ScreenToHeading(in.Aim.Angle)
	case AimPoint:
		p.TurretAngle = HeadingTo(p.X, p.Y, in.Aim.X, in.Aim.Y)
	}

	if in.Firing && p.SinceShot >= p.ShootCooldown {
		s.fire(p)
		p.SinceShot = 0
	}

	p.Wrap(s.cfg.ScreenWidth, s.cfg.ScreenHeight)
}

// fire spawns a bullet at the tank's muzzle along its turret angle
func (s *State) fire(t *Tank) {
	owner := OwnerEnemy
	if t.IsPlayer() {
		owner = OwnerPlayer
		s.Stats.PlayerShots++
	} else {
		s.Stats.EnemyShots++
	}
	x, y := t.Muzzle(s.cfg.MuzzleOffset)
	s.Bullets = append(s.Bullets, NewBullet(x, y, t.TurretAngle, s.cfg.BulletSpeed, owner))
	s.events.Dispatch(Event{Type: EventShot, X: x, Y: y, Owner: owner})
}

// GameOver ends the round. Calling it again is a no-op.
func (s *State) GameOver() {
	if s.IsGameOver {
		return
	}
	s.IsGameOver = true
	s.Player = nil
	s.ShakeRemaining = s.cfg.ShakeDuration
	s.fireworkTimer = 0
	s.events.Dispatch(Event{Type: EventGameOver, Score: s.Score, Level: s.Level})
}

// RestartVisible reports whether the UI should offer a restart
func (s *State) RestartVisible() bool {
	return s.IsGameOver
}

// tickAftermath runs the visual-only post-game phase: particles, shake and
// fireworks. Nothing else moves.
func (s *State) tickAftermath(dt float64) {
	for _, p := range s.Particles {
		p.Update(dt)
	}

	if s.ShakeRemaining > 0 {
		mag := s.cfg.ShakeMagnitude * s.ShakeRemaining / s.cfg.ShakeDuration
		s.ShakeX = s.rng.Spread(mag)
		s.ShakeY = s.rng.Spread(mag)
		s.ShakeRemaining -= dt
	} else {
		s.ShakeRemaining = 0
		s.ShakeX, s.ShakeY = 0, 0
	}

	s.fireworkTimer += dt
	if s.fireworkTimer > s.cfg.FireworkInterval {
		s.firework()
		s.fireworkTimer = 0
	}

	s.pruneParticles()
}

// explode spawns a burst of particles
func (s *State) explode(x, y float64, clr color.NRGBA) {
	for i := 0; i < s.cfg.ParticleCount; i++ {
		s.Particles = append(s.Particles, s.newParticle(x, y, clr))
	}
}

func (s *State) newParticle(x, y float64, clr color.NRGBA) *Particle {
	lifespan := s.rng.Range(500, 1000)
	if s.cfg.FixedParticleLifespan {
		lifespan = s.cfg.ParticleLifespan * FrameMillis
	}
	return &Particle{
		X:               x,
		Y:               y,
		VX:              s.rng.Spread(6),
		VY:              s.rng.Spread(6),
		Radius:          s.rng.Range(1, 4),
		Color:           clr,
		Lifespan:        lifespan,
		InitialLifespan: lifespan,
		Opacity:         1,
	}
}

// firework bursts a randomly coloured explosion somewhere on screen
func (s *State) firework() {
	x := s.rng.Range(0, s.cfg.ScreenWidth)
	y := s.rng.Range(0, s.cfg.ScreenHeight)
	r, g, b := colorful.Hsl(s.rng.Range(0, 360), 1, 0.75).Clamped().RGB255()
	s.explode(x, y, color.NRGBA{R: r, G: g, B: b, A: 0xff})
	s.events.Dispatch(Event{Type: EventFirework, X: x, Y: y})
}

// prune drops bullets that left the playfield and expired particles
func (s *State) prune() {
	kept := s.Bullets[:0]
	for _, b := range s.Bullets {
		if b.InBounds(s.cfg.ScreenWidth, s.cfg.ScreenHeight) {
			kept = append(kept, b)
		}
	}
	clear(s.Bullets[len(kept):])
	s.Bullets = kept

	s.pruneParticles()
}

func (s *State) pruneParticles() {
	kept := s.Particles[:0]
	for _, p := range s.Particles {
		if p.IsAlive() {
			kept = append(kept, p)
		}
	}
	clear(s.Particles[len(kept):])
	s.Particles = kept
}
