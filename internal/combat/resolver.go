// Package combat implements the per-tick collision and damage resolution
// between projectiles, enemies, obstacles and the player. Movement is simple
// seek toward the player; collision is circle-circle on the gameplay plane,
// candidate-filtered through a coarse spatial hash.
package combat

import (
	"github.com/polarforge/santavors/internal/balance"
	"github.com/polarforge/santavors/internal/core"
	"github.com/polarforge/santavors/internal/session"
)

// Config tunes the resolver. Zero values are replaced by DefaultConfig.
type Config struct {
	// GracePeriod is how long after spawning an enemy cannot deal contact
	// damage. Prevents instant hits when an enemy appears inside the
	// player's radius.
	GracePeriod float64

	// ContactInterval debounces contact damage per enemy: continued overlap
	// hurts once per interval, not every tick.
	ContactInterval float64

	// StreakWindow is the rolling kill-streak window.
	StreakWindow float64

	// CellSize is the spatial hash cell edge. Must exceed the largest
	// combined collision radius in the balance tables.
	CellSize float64

	// WorldSize is the half-extent of the square world; entities outside
	// are culled.
	WorldSize float64
}

// DefaultConfig returns the standard combat tuning.
func DefaultConfig() Config {
	return Config{
		GracePeriod:     0.5,
		ContactInterval: 1.0,
		StreakWindow:    3.0,
		CellSize:        8.0,
		WorldSize:       60.0,
	}
}

// Kill describes one enemy death resolved this tick.
type Kill struct {
	EnemyID    int
	Archetype  string
	PointValue int
	XP         int
	NicePoints int
	Boss       bool
}

// Events is everything the rest of the tick pipeline needs to know about
// what combat resolved.
type Events struct {
	Kills        []Kill
	PlayerDamage float64
	BossKilled   bool
	StreakTier   StreakTier
	StreakCount  int
}

// Resolver performs movement integration and collision resolution. It owns
// the spatial hash and the kill-streak counter but no entity state; entities
// belong to the session.
type Resolver struct {
	cfg    Config
	grid   *grid
	streak Streak
}

// NewResolver creates a resolver with the given tuning.
func NewResolver(cfg Config) *Resolver {
	def := DefaultConfig()
	if cfg.GracePeriod == 0 {
		cfg.GracePeriod = def.GracePeriod
	}
	if cfg.ContactInterval == 0 {
		cfg.ContactInterval = def.ContactInterval
	}
	if cfg.StreakWindow == 0 {
		cfg.StreakWindow = def.StreakWindow
	}
	if cfg.CellSize == 0 {
		cfg.CellSize = def.CellSize
	}
	if cfg.WorldSize == 0 {
		cfg.WorldSize = def.WorldSize
	}
	return &Resolver{
		cfg:    cfg,
		grid:   newGrid(cfg.CellSize),
		streak: Streak{Window: cfg.StreakWindow},
	}
}

// Reset clears per-run resolver state.
func (r *Resolver) Reset() {
	r.streak = Streak{Window: r.cfg.StreakWindow}
}

// Streak exposes the current kill streak for snapshots.
func (r *Resolver) Streak() *Streak {
	return &r.streak
}

// Step advances combat by one tick: integrate movement, detect collisions,
// resolve damage and deaths. An enemy whose HP reaches zero is removed
// within this same tick. Deaths feed the returned events; the caller applies
// them to score, progression and the economy in the same tick.
func (r *Resolver) Step(s *session.Session, dt, now float64) Events {
	var ev Events

	r.moveEnemies(s, dt)
	r.moveBullets(s, dt)
	r.grid.rebuild(s.Enemies)

	r.resolveBulletHits(s, &ev, now)
	r.resolveContact(s, &ev, now)

	r.streak.Tick(now)
	ev.StreakTier = r.streak.Tier()
	ev.StreakCount = r.streak.Count()
	return ev
}

// moveEnemies seeks each enemy toward the player's current position. No
// pathfinding; obstacles slow nothing, they only block spawns and bullets.
func (r *Resolver) moveEnemies(s *session.Session, dt float64) {
	for _, e := range s.Enemies {
		dir := s.Player.Pos.Sub(e.Pos).NormXZ()
		e.Vel = dir.Scale(e.Speed)
		e.Pos = e.Pos.Add(e.Vel.Scale(dt))
	}
}

// moveBullets integrates projectiles and culls expired or out-of-bounds
// ones. Bullets stop on obstacles too.
func (r *Resolver) moveBullets(s *session.Session, dt float64) {
	w := r.cfg.WorldSize
	alive := s.Bullets[:0]
	for _, b := range s.Bullets {
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
		b.TTL -= dt
		if b.TTL <= 0 || b.Pos.X < -w || b.Pos.X > w || b.Pos.Z < -w || b.Pos.Z > w {
			continue
		}
		if r.hitsObstacle(s, b) {
			continue
		}
		alive = append(alive, b)
	}
	s.Bullets = alive
}

func (r *Resolver) hitsObstacle(s *session.Session, b *session.Bullet) bool {
	for i := range s.Obstacles {
		o := &s.Obstacles[i]
		if core.DistXZ(b.Pos, o.Pos) < b.Radius+o.Radius {
			return true
		}
	}
	return false
}

// resolveBulletHits applies bullet damage to enemies in adjacent grid cells.
// The bullet is consumed on its first hit.
func (r *Resolver) resolveBulletHits(s *session.Session, ev *Events, now float64) {
	alive := s.Bullets[:0]
	for _, b := range s.Bullets {
		hit := false
		for _, e := range r.grid.nearby(b.Pos) {
			if !e.Active {
				continue
			}
			if core.DistXZ(b.Pos, e.Pos) >= b.Radius+e.Radius {
				continue
			}
			e.HP -= b.Damage
			hit = true
			if e.HP <= 0 {
				r.killEnemy(s, e, ev, now)
			}
			break
		}
		if !hit {
			alive = append(alive, b)
		}
	}
	s.Bullets = alive
}

// killEnemy removes the enemy and records the kill in the tick events.
func (r *Resolver) killEnemy(s *session.Session, e *session.Enemy, ev *Events, now float64) {
	e.Active = false
	s.RemoveEnemy(e.ID)
	r.streak.Record(now)

	boss := e.Kind == balance.EnemyBoss
	ev.Kills = append(ev.Kills, Kill{
		EnemyID:    e.ID,
		Archetype:  e.Archetype,
		PointValue: e.PointValue,
		XP:         xpForKill(e),
		NicePoints: nicePointsForKill(e),
		Boss:       boss,
	})
	if boss {
		ev.BossKilled = true
	}
}

// resolveContact applies enemy contact damage to the player, honoring the
// post-spawn grace period and the per-enemy debounce window.
func (r *Resolver) resolveContact(s *session.Session, ev *Events, now float64) {
	for _, e := range r.grid.nearby(s.Player.Pos) {
		if !e.Active {
			continue
		}
		if core.DistXZ(e.Pos, s.Player.Pos) >= e.Radius+s.Player.Radius {
			continue
		}
		if now-e.SpawnedAt < r.cfg.GracePeriod {
			continue
		}
		if now-e.LastHitAt < r.cfg.ContactInterval {
			continue
		}
		e.LastHitAt = now
		ev.PlayerDamage += e.Damage
	}
}

// xpForKill derives experience from the enemy's point value.
func xpForKill(e *session.Enemy) int {
	return e.PointValue
}

// nicePointsForKill derives the Nice Point grant from the point value.
// One tenth, minimum one.
func nicePointsForKill(e *session.Enemy) int {
	np := e.PointValue / 10
	if np < 1 {
		np = 1
	}
	return np
}
