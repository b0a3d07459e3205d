package session

import (
	"github.com/polarforge/santavors/internal/balance"
	"github.com/polarforge/santavors/internal/core"
	"github.com/polarforge/santavors/internal/progression"
)

// PlayerRadius is the player's collision radius in world units.
const PlayerRadius = 1.0

// Player is the single player entity owned by the session. Base stats come
// from the class; Effective is recomputed from Base plus active upgrade
// deltas whenever an upgrade is taken, never mutated in place.
type Player struct {
	Pos core.Vec3
	Vel core.Vec3

	HP     float64
	Radius float64

	Base      progression.Stats
	Effective progression.Stats

	// FireCooldown counts down in sim seconds; a shot is allowed at <= 0.
	FireCooldown float64
}

// MaxHP returns the current effective maximum HP.
func (p *Player) MaxHP() float64 {
	return p.Effective.MaxHP
}

// Enemy is a live enemy instance. Instances are owned by the session's
// enemies map; rendering collaborators look them up by id and never control
// their lifetime.
type Enemy struct {
	ID        int
	Archetype string
	Kind      balance.EnemyKind

	Pos core.Vec3
	Vel core.Vec3

	HP         float64
	MaxHP      float64
	Speed      float64
	Damage     float64
	PointValue int
	Radius     float64

	Active bool

	// SpawnedAt is the sim time of spawn; contact damage is suppressed for
	// a short grace period after it.
	SpawnedAt float64

	// LastHitAt debounces contact damage so continued overlap does not
	// drain the player every tick.
	LastHitAt float64
}

// Bullet is a live projectile. Destroyed on collision, TTL expiry or when it
// leaves the world bounds.
type Bullet struct {
	ID     int
	Weapon string

	Pos core.Vec3
	Vel core.Vec3

	Damage float64
	Radius float64
	TTL    float64
}

// Obstacle is a static collision body placed once per run by the spawn
// director's noise pass. Height is carried for rendering only.
type Obstacle struct {
	Pos    core.Vec3
	Radius float64
	Height float64
	Kind   string
}
