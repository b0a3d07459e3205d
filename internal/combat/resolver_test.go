package combat

import (
	"math/rand"
	"testing"

	"github.com/polarforge/santavors/internal/balance"
	"github.com/polarforge/santavors/internal/core"
	"github.com/polarforge/santavors/internal/progression"
	"github.com/polarforge/santavors/internal/session"
)

func newCombatSession(t *testing.T) *session.Session {
	t.Helper()
	store := balance.MustLoadDefault()
	engine := progression.NewEngine(store, rand.New(rand.NewSource(1)))
	s := session.New(store, engine, nil)
	s.SelectClass("santa")
	s.Commence()
	return s
}

func spawnEnemy(s *session.Session, pos core.Vec3, hp float64, spawnedAt float64) *session.Enemy {
	e := &session.Enemy{
		Archetype:  "snowman",
		Kind:       balance.EnemyMinion,
		Pos:        pos,
		HP:         hp,
		MaxHP:      hp,
		Speed:      3,
		Damage:     10,
		PointValue: 10,
		Radius:     0.8,
		SpawnedAt:  spawnedAt,
	}
	s.AddEnemy(e)
	return e
}

func fireBullet(s *session.Session, pos, vel core.Vec3, damage float64) *session.Bullet {
	b := &session.Bullet{
		Weapon: "gift_cannon",
		Pos:    pos,
		Vel:    vel,
		Damage: damage,
		Radius: 0.3,
		TTL:    2,
	}
	s.AddBullet(b)
	return b
}

func TestTwoHitsKillAwardsOnce(t *testing.T) {
	s := newCombatSession(t)
	r := NewResolver(Config{})

	e := spawnEnemy(s, core.Vec3{X: 20, Z: 0}, 30, 0)

	// First hit: 30 -> 10, enemy survives.
	fireBullet(s, core.Vec3{X: 20, Z: 0}, core.Vec3{}, 20)
	ev := r.Step(s, 0.001, 1.0)
	if len(ev.Kills) != 0 {
		t.Fatal("enemy should survive the first hit")
	}
	if got := s.Enemies[e.ID].HP; got > 10.01 || got < 9.90 {
		t.Errorf("hp after first hit = %v, want ~10", got)
	}

	// Second hit: 10 -> dead, removed this tick.
	fireBullet(s, s.Enemies[e.ID].Pos, core.Vec3{}, 20)
	ev = r.Step(s, 0.001, 1.1)
	if len(ev.Kills) != 1 {
		t.Fatalf("got %d kills, want 1", len(ev.Kills))
	}
	if _, alive := s.Enemies[e.ID]; alive {
		t.Error("dead enemy must be removed in the same tick")
	}
	if ev.Kills[0].PointValue != 10 {
		t.Errorf("kill pointValue = %d, want 10", ev.Kills[0].PointValue)
	}
	if len(s.Bullets) != 0 {
		t.Error("bullet not consumed by the hit")
	}
}

func TestGracePeriodSuppressesContactDamage(t *testing.T) {
	s := newCombatSession(t)
	r := NewResolver(Config{GracePeriod: 0.5})

	// Enemy spawned right on top of the player at t=1.0.
	spawnEnemy(s, s.Player.Pos, 30, 1.0)

	ev := r.Step(s, 0.016, 1.1)
	if ev.PlayerDamage != 0 {
		t.Errorf("damage during grace period = %v, want 0", ev.PlayerDamage)
	}

	ev = r.Step(s, 0.016, 1.7)
	if ev.PlayerDamage != 10 {
		t.Errorf("damage after grace period = %v, want 10", ev.PlayerDamage)
	}
}

func TestContactDamageDebounced(t *testing.T) {
	s := newCombatSession(t)
	r := NewResolver(Config{ContactInterval: 1.0})

	spawnEnemy(s, s.Player.Pos, 1000, -10)

	ev := r.Step(s, 0.016, 0)
	if ev.PlayerDamage != 10 {
		t.Fatalf("first contact damage = %v, want 10", ev.PlayerDamage)
	}

	// Continued overlap within the debounce window: no damage.
	total := 0.0
	for now := 0.1; now < 0.9; now += 0.1 {
		ev = r.Step(s, 0.016, now)
		total += ev.PlayerDamage
	}
	if total != 0 {
		t.Errorf("damage inside debounce window = %v, want 0", total)
	}

	ev = r.Step(s, 0.016, 1.05)
	if ev.PlayerDamage != 10 {
		t.Errorf("damage after debounce window = %v, want 10", ev.PlayerDamage)
	}
}

func TestEnemiesSeekPlayer(t *testing.T) {
	s := newCombatSession(t)
	r := NewResolver(Config{})

	e := spawnEnemy(s, core.Vec3{X: 30, Z: 0}, 30, 0)
	before := core.DistXZ(e.Pos, s.Player.Pos)
	r.Step(s, 0.1, 0.1)
	after := core.DistXZ(e.Pos, s.Player.Pos)

	if after >= before {
		t.Errorf("enemy did not close distance: %v -> %v", before, after)
	}
}

func TestBulletTTLAndBoundsCulling(t *testing.T) {
	s := newCombatSession(t)
	r := NewResolver(Config{WorldSize: 10})

	// Out of bounds next tick.
	fireBullet(s, core.Vec3{X: 9.9, Z: 0}, core.Vec3{X: 100}, 5)
	// TTL expires immediately.
	b := fireBullet(s, core.Vec3{}, core.Vec3{}, 5)
	b.TTL = 0.001

	r.Step(s, 0.1, 1)
	if len(s.Bullets) != 0 {
		t.Errorf("%d bullets survived culling, want 0", len(s.Bullets))
	}
}

func TestBulletStoppedByObstacle(t *testing.T) {
	s := newCombatSession(t)
	r := NewResolver(Config{})

	s.Obstacles = append(s.Obstacles, session.Obstacle{
		Pos:    core.Vec3{X: 5, Z: 0},
		Radius: 1,
	})
	fireBullet(s, core.Vec3{X: 4.5, Z: 0}, core.Vec3{X: 1}, 5)

	r.Step(s, 0.1, 1)
	if len(s.Bullets) != 0 {
		t.Error("bullet should be consumed by the obstacle")
	}
}

func TestBossKillSignaled(t *testing.T) {
	s := newCombatSession(t)
	r := NewResolver(Config{})

	boss := &session.Enemy{
		Archetype:  "frost_colossus",
		Kind:       balance.EnemyBoss,
		Pos:        core.Vec3{X: 15, Z: 0},
		HP:         10,
		MaxHP:      1200,
		PointValue: 500,
		Radius:     2.5,
	}
	s.AddEnemy(boss)

	fireBullet(s, boss.Pos, core.Vec3{}, 20)
	ev := r.Step(s, 0.001, 1)
	if !ev.BossKilled {
		t.Fatal("boss kill not signaled")
	}
}

func TestStreakTiers(t *testing.T) {
	var k Streak
	k.Window = 3

	k.Record(1)
	if k.Tier() != TierNone {
		t.Errorf("1 kill tier = %q, want none", k.Tier())
	}
	k.Record(2)
	if k.Tier() != TierDouble {
		t.Errorf("2 kills tier = %q, want double", k.Tier())
	}
	k.Record(2.5)
	if k.Tier() != TierTriple {
		t.Errorf("3 kills tier = %q, want triple", k.Tier())
	}
	k.Record(3)
	k.Record(3.5)
	if k.Tier() != TierMega {
		t.Errorf("5 kills tier = %q, want mega", k.Tier())
	}

	// Window elapses without a kill: reset.
	k.Tick(10)
	if k.Count() != 0 || k.Tier() != TierNone {
		t.Errorf("streak not reset after window: count=%d", k.Count())
	}

	// A kill after the reset starts a fresh streak of one.
	k.Record(11)
	if k.Count() != 1 {
		t.Errorf("count after reset = %d, want 1", k.Count())
	}
}

func TestGridNearbyOnlyAdjacentCells(t *testing.T) {
	g := newGrid(8)
	enemies := map[int]*session.Enemy{
		1: {ID: 1, Pos: core.Vec3{X: 1, Z: 1}},
		2: {ID: 2, Pos: core.Vec3{X: 9, Z: 1}},   // adjacent cell
		3: {ID: 3, Pos: core.Vec3{X: 40, Z: 40}}, // far away
	}
	g.rebuild(enemies)

	got := g.nearby(core.Vec3{X: 0, Z: 0})
	ids := map[int]bool{}
	for _, e := range got {
		ids[e.ID] = true
	}
	if !ids[1] || !ids[2] {
		t.Errorf("nearby missed same/adjacent cell enemies: %v", ids)
	}
	if ids[3] {
		t.Error("nearby returned an enemy beyond adjacent cells")
	}
}

func TestNicePointsProportionalToPointValue(t *testing.T) {
	e := &session.Enemy{PointValue: 500}
	if np := nicePointsForKill(e); np != 50 {
		t.Errorf("nicePoints = %d, want 50", np)
	}
	small := &session.Enemy{PointValue: 5}
	if np := nicePointsForKill(small); np != 1 {
		t.Errorf("nicePoints floor = %d, want 1", np)
	}
}
