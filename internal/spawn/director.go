// Package spawn decides when, where and what enemies and obstacles appear.
// The director is bounded by a concurrency cap and a periodic timer, stages
// wave bursts with a per-entity stagger delay, and hands the session exactly
// one boss when the kill threshold is crossed.
package spawn

import (
	"math"
	"math/rand"

	"github.com/polarforge/santavors/internal/core"
	"github.com/polarforge/santavors/internal/session"
)

// Config tunes the director. Zero values are replaced by DefaultConfig.
type Config struct {
	MaxMinions    int     // concurrent minion cap
	SpawnInterval float64 // seconds between periodic spawns at wave 1
	InitialBurst  int     // minions staged when a phase begins
	WaveReq       int     // kills per wave step
	BossThreshold int     // cumulative kills that summon the boss

	WorldSize      float64 // half-extent of the square world
	SpawnRadiusMin float64 // inner ring radius around the player
	SpawnRadiusMax float64 // outer ring radius

	// StaggerDelay spaces staged wave entities apart so a burst never
	// lands on a single frame.
	StaggerDelay float64

	// Obstacle placement: the noise field is sampled once per grid cell at
	// run start; a cell above Threshold becomes an obstacle.
	ObstacleGridStep  float64
	ObstacleThreshold float64
	ObstacleClearance float64 // obstacle-free radius around the origin
}

// DefaultConfig returns the standard spawn tuning.
func DefaultConfig() Config {
	return Config{
		MaxMinions:        40,
		SpawnInterval:     1.2,
		InitialBurst:      5,
		WaveReq:           10,
		BossThreshold:     50,
		WorldSize:         60,
		SpawnRadiusMin:    15,
		SpawnRadiusMax:    25,
		StaggerDelay:      0.2,
		ObstacleGridStep:  6,
		ObstacleThreshold: 0.62,
		ObstacleClearance: 10,
	}
}

// pendingSpawn is one staged minion waiting out its stagger delay.
type pendingSpawn struct {
	delay float64
}

// Director owns the spawn timers and the one-time obstacle placement. All
// entity creation goes through the session.
type Director struct {
	cfg   Config
	rng   *rand.Rand
	noise noiseField

	timer       float64
	pending     []pendingSpawn
	bossSpawned bool
}

// NewDirector creates a director seeded from the given RNG seed. The noise
// field derives from the same seed, so obstacle layout is a pure function of
// it.
func NewDirector(cfg Config, seed int64) *Director {
	def := DefaultConfig()
	if cfg.MaxMinions == 0 {
		cfg.MaxMinions = def.MaxMinions
	}
	if cfg.SpawnInterval == 0 {
		cfg.SpawnInterval = def.SpawnInterval
	}
	if cfg.InitialBurst == 0 {
		cfg.InitialBurst = def.InitialBurst
	}
	if cfg.WaveReq == 0 {
		cfg.WaveReq = def.WaveReq
	}
	if cfg.BossThreshold == 0 {
		cfg.BossThreshold = def.BossThreshold
	}
	if cfg.WorldSize == 0 {
		cfg.WorldSize = def.WorldSize
	}
	if cfg.SpawnRadiusMin == 0 {
		cfg.SpawnRadiusMin = def.SpawnRadiusMin
	}
	if cfg.SpawnRadiusMax == 0 {
		cfg.SpawnRadiusMax = def.SpawnRadiusMax
	}
	if cfg.StaggerDelay == 0 {
		cfg.StaggerDelay = def.StaggerDelay
	}
	if cfg.ObstacleGridStep == 0 {
		cfg.ObstacleGridStep = def.ObstacleGridStep
	}
	if cfg.ObstacleThreshold == 0 {
		cfg.ObstacleThreshold = def.ObstacleThreshold
	}
	if cfg.ObstacleClearance == 0 {
		cfg.ObstacleClearance = def.ObstacleClearance
	}
	return &Director{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(seed)),
		noise: newNoiseField(seed),
	}
}

// BeginRun prepares the session for phase 1: obstacles are placed from the
// noise field and the initial wave is staged with stagger delays. Called on
// the transition into phase 1.
func (d *Director) BeginRun(s *session.Session) {
	d.timer = d.cfg.SpawnInterval
	d.pending = d.pending[:0]
	d.bossSpawned = false

	s.Obstacles = d.placeObstacles()

	burst := d.cfg.InitialBurst + (s.Run.Wave - 1)
	for i := 0; i < burst; i++ {
		d.pending = append(d.pending, pendingSpawn{
			delay: float64(i) * d.cfg.StaggerDelay,
		})
	}
}

// Step evaluates spawning for this tick. At most one entity spawns per tick.
func (d *Director) Step(s *session.Session, dt, now float64) {
	if !s.State().InPhase() {
		return
	}

	// Wave clearance: cumulative kills advance the difficulty curve.
	for s.Stats.Kills >= d.cfg.WaveReq*s.Run.Wave {
		s.AdvanceWave()
	}

	// Boss summon: exactly once, suspending minion spawning while alive.
	if !d.bossSpawned && s.Stats.Kills >= d.cfg.BossThreshold {
		d.spawnBoss(s, now)
		d.bossSpawned = true
		d.pending = d.pending[:0]
		s.EnterBossPhase()
		return
	}
	if s.BossActive() {
		return
	}

	// Staged wave entities wait out their stagger delay.
	if len(d.pending) > 0 {
		for i := range d.pending {
			d.pending[i].delay -= dt
		}
		if d.pending[0].delay <= 0 {
			d.pending = d.pending[1:]
			d.spawnMinion(s, now)
		}
		return
	}

	// Periodic spawning, faster at higher waves.
	d.timer -= dt
	if d.timer > 0 {
		return
	}
	d.timer = d.interval(s.Run.Wave)
	if s.MinionCount() < d.cfg.MaxMinions {
		d.spawnMinion(s, now)
	}
}

// interval shortens the spawn period as waves advance, bottoming out at a
// quarter of the base interval.
func (d *Director) interval(wave int) float64 {
	iv := d.cfg.SpawnInterval * math.Pow(0.93, float64(wave-1))
	min := d.cfg.SpawnInterval / 4
	if iv < min {
		iv = min
	}
	return iv
}

// spawnMinion picks an archetype, scales it by the wave curve and places it
// on the spawn ring. Spawning silently skips the tick if no clear position
// is found.
func (d *Director) spawnMinion(s *session.Session, now float64) {
	if s.MinionCount() >= d.cfg.MaxMinions {
		return
	}

	minions := s.Balance().Minions()
	if len(minions) == 0 {
		return
	}
	// Later waves unlock tougher archetypes.
	unlocked := s.Run.Wave
	if unlocked > len(minions) {
		unlocked = len(minions)
	}
	arch, _ := s.Balance().Enemy(minions[d.rng.Intn(unlocked)])

	pos, ok := d.findSpawnPos(s, arch.Radius)
	if !ok {
		return
	}

	scale := 1 + 0.1*float64(s.Run.Wave-1)
	s.AddEnemy(&session.Enemy{
		Archetype:  arch.ID,
		Kind:       arch.Kind,
		Pos:        pos,
		HP:         arch.HP * scale,
		MaxHP:      arch.HP * scale,
		Speed:      arch.Speed * (1 + 0.05*float64(s.Run.Wave-1)),
		Damage:     arch.Damage,
		PointValue: arch.PointValue,
		Radius:     arch.Radius,
		SpawnedAt:  now,
	})
}

// spawnBoss places the single boss entity on the spawn ring.
func (d *Director) spawnBoss(s *session.Session, now float64) {
	arch, ok := s.Balance().Enemy(s.Balance().BossID())
	if !ok {
		return
	}
	pos, found := d.findSpawnPos(s, arch.Radius)
	if !found {
		// The boss must appear; drop it on the outer ring regardless.
		pos = s.Player.Pos.Add(core.Vec3{X: d.cfg.SpawnRadiusMax})
		pos = d.clampToWorld(pos, arch.Radius)
	}
	s.AddEnemy(&session.Enemy{
		Archetype:  arch.ID,
		Kind:       arch.Kind,
		Pos:        pos,
		HP:         arch.HP,
		MaxHP:      arch.HP,
		Speed:      arch.Speed,
		Damage:     arch.Damage,
		PointValue: arch.PointValue,
		Radius:     arch.Radius,
		SpawnedAt:  now,
	})
}

// findSpawnPos picks a point on a ring around the player, clamped to world
// extents and rejected if it overlaps an obstacle. A handful of retries,
// then give up for this tick.
func (d *Director) findSpawnPos(s *session.Session, radius float64) (core.Vec3, bool) {
	const retries = 8
	for i := 0; i < retries; i++ {
		angle := d.rng.Float64() * 2 * math.Pi
		dist := d.cfg.SpawnRadiusMin + d.rng.Float64()*(d.cfg.SpawnRadiusMax-d.cfg.SpawnRadiusMin)
		pos := s.Player.Pos.Add(core.Vec3{
			X: math.Cos(angle) * dist,
			Z: math.Sin(angle) * dist,
		})
		pos = d.clampToWorld(pos, radius)

		if d.overlapsObstacle(s, pos, radius) {
			continue
		}
		return pos, true
	}
	return core.Vec3{}, false
}

func (d *Director) clampToWorld(pos core.Vec3, radius float64) core.Vec3 {
	w := d.cfg.WorldSize - radius
	pos.X = core.ClampF(pos.X, -w, w)
	pos.Z = core.ClampF(pos.Z, -w, w)
	return pos
}

func (d *Director) overlapsObstacle(s *session.Session, pos core.Vec3, radius float64) bool {
	for i := range s.Obstacles {
		o := &s.Obstacles[i]
		if core.DistXZ(pos, o.Pos) < o.Radius+radius {
			return true
		}
	}
	return false
}
