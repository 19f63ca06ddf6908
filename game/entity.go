package game

import (
	"image/color"
	"math"
)

// Tank geometry
const (
	TankRadius = 25.0
	TankWidth  = 40.0
	TankHeight = 50.0

	BulletRadius = 5.0
)

// Role identifies who controls a tank
type Role int

const (
	RolePlayer Role = iota
	RoleEnemy
)

func (r Role) String() string {
	if r == RolePlayer {
		return "player"
	}
	return "enemy"
}

// Tank represents a player or AI tank.
type Tank struct {
	// Position in playfield coordinates
	X, Y float64

	// Hull rotation in radians, 0 points up
	Angle float64

	// Turret rotation in radians, independent of the hull
	TurretAngle float64

	Radius float64
	Width  float64
	Height float64
	Color  color.NRGBA

	// Speed in units per frame-equivalent
	Speed float64

	Role Role

	// Time since the last shot. Players compare it against ShootCooldown,
	// enemies against ShootInterval.
	SinceShot     float64
	ShootCooldown float64

	// Enemy-only parameters, fixed at spawn
	SinceMoveChange    float64
	MoveChangeInterval float64
	ShootInterval      float64
	AimInaccuracy      float64
	DetectionRange     float64
}

// NewPlayerTank creates the player's tank at the given position. The gun
// starts loaded.
func NewPlayerTank(x, y float64, cfg Config) *Tank {
	return &Tank{
		X:             x,
		Y:             y,
		Radius:        TankRadius,
		Width:         TankWidth,
		Height:        TankHeight,
		Color:         cfg.PlayerColor,
		Speed:         cfg.PlayerSpeed,
		Role:          RolePlayer,
		SinceShot:     cfg.PlayerShootCooldown,
		ShootCooldown: cfg.PlayerShootCooldown,
	}
}

// NewEnemyTank creates an AI tank whose difficulty is derived from level.
func NewEnemyTank(x, y float64, level int, cfg Config, rng *Rand) *Tank {
	d := DifficultyFor(level, cfg)
	return &Tank{
		X:                  x,
		Y:                  y,
		Radius:             TankRadius,
		Width:              TankWidth,
		Height:             TankHeight,
		Color:              cfg.EnemyColor,
		Speed:              d.Speed,
		Role:               RoleEnemy,
		MoveChangeInterval: rng.MoveChangeInterval(),
		ShootInterval:      d.ShootInterval,
		AimInaccuracy:      d.AimInaccuracy,
		DetectionRange:     cfg.EnemyDetectionRange,
	}
}

// IsPlayer reports whether the tank is player controlled
func (t *Tank) IsPlayer() bool {
	return t.Role == RolePlayer
}

// Advance moves the tank along heading by Speed for the given number of
// frame-equivalents.
func (t *Tank) Advance(heading, frames float64) {
	t.X += math.Sin(heading) * t.Speed * frames
	t.Y -= math.Cos(heading) * t.Speed * frames
}

// Muzzle returns the bullet spawn point at the tip of the cannon.
func (t *Tank) Muzzle(offset float64) (float64, float64) {
	return t.X + math.Sin(t.TurretAngle)*offset, t.Y - math.Cos(t.TurretAngle)*offset
}

// Wrap teleports the tank to the opposite edge once its centre leaves
// [-half, dim+half] on either axis.
func (t *Tank) Wrap(width, height float64) {
	halfW := t.Width / 2
	halfH := t.Height / 2

	if t.X < -halfW {
		t.X = width + halfW
	} else if t.X > width+halfW {
		t.X = -halfW
	}
	if t.Y < -halfH {
		t.Y = height + halfH
	} else if t.Y > height+halfH {
		t.Y = -halfH
	}
}

// DistanceTo calculates the distance to a point
func (t *Tank) DistanceTo(x, y float64) float64 {
	return math.Hypot(x-t.X, y-t.Y)
}

// Owner identifies who fired a bullet
type Owner int

const (
	OwnerPlayer Owner = iota
	OwnerEnemy
)

func (o Owner) String() string {
	if o == OwnerPlayer {
		return "player"
	}
	return "enemy"
}

// Bullet travels in a straight line at constant speed.
type Bullet struct {
	X, Y   float64
	Angle  float64
	Speed  float64
	Radius float64
	Owner  Owner
}

// NewBullet creates a bullet heading along angle
func NewBullet(x, y, angle, speed float64, owner Owner) *Bullet {
	return &Bullet{
		X:      x,
		Y:      y,
		Angle:  angle,
		Speed:  speed,
		Radius: BulletRadius,
		Owner:  owner,
	}
}

// Update integrates the bullet position over dt milliseconds
func (b *Bullet) Update(dt float64) {
	frames := dt / FrameMillis
	b.X += math.Sin(b.Angle) * b.Speed * frames
	b.Y -= math.Cos(b.Angle) * b.Speed * frames
}

// InBounds reports whether the bullet is strictly inside the playfield
func (b *Bullet) InBounds(width, height float64) bool {
	return b.X > 0 && b.X < width && b.Y > 0 && b.Y < height
}

// Hits reports whether the bullet overlaps a circle. Touching circles do
// not count.
func (b *Bullet) Hits(x, y, radius float64) bool {
	return math.Hypot(b.X-x, b.Y-y) < b.Radius+radius
}

// Particle is a short-lived explosion fragment
type Particle struct {
	X, Y            float64
	VX, VY          float64
	Radius          float64
	Color           color.NRGBA
	Lifespan        float64
	InitialLifespan float64
	Opacity         float64
}

// Update integrates velocity and burns lifespan
func (p *Particle) Update(dt float64) {
	frames := dt / FrameMillis
	p.X += p.VX * frames
	p.Y += p.VY * frames
	p.Lifespan -= dt
	p.Opacity = math.Max(0, p.Lifespan/p.InitialLifespan)
}

// IsAlive returns true if the particle still has lifespan left
func (p *Particle) IsAlive() bool {
	return p.Lifespan > 0
}
