package spawn

import (
	"testing"

	"github.com/polarforge/santavors/internal/balance"
	"github.com/polarforge/santavors/internal/core"
	"github.com/polarforge/santavors/internal/session"
)

func newPhaseSession(t *testing.T) *session.Session {
	t.Helper()
	store := balance.MustLoadDefault()
	s := session.New(store, nil, nil)
	s.SelectClass("santa")
	s.Commence()
	if s.State() != session.StatePhase1 {
		t.Fatalf("state = %v, want phase_1", s.State())
	}
	return s
}

func runTicks(d *Director, s *session.Session, n int, dt float64) float64 {
	now := 0.0
	for i := 0; i < n; i++ {
		now += dt
		d.Step(s, dt, now)
	}
	return now
}

func TestMinionCapNeverExceeded(t *testing.T) {
	s := newPhaseSession(t)
	cfg := DefaultConfig()
	cfg.MaxMinions = 6
	cfg.SpawnInterval = 0.01
	d := NewDirector(cfg, 1)
	d.BeginRun(s)

	const dt = 1.0 / 30
	for i := 0; i < 600; i++ {
		d.Step(s, dt, float64(i)*dt)
		if got := s.MinionCount(); got > cfg.MaxMinions {
			t.Fatalf("tick %d: %d minions, cap %d", i, got, cfg.MaxMinions)
		}
	}
	if s.MinionCount() != cfg.MaxMinions {
		t.Fatalf("expected cap to be reached, got %d", s.MinionCount())
	}
}

func TestSpawnsInsideWorldAndOffObstacles(t *testing.T) {
	s := newPhaseSession(t)
	// Push the player to a corner so the ring would leave the world
	// without clamping.
	s.Player.Pos = core.Vec3{X: 55, Z: 55}

	d := NewDirector(Config{SpawnInterval: 0.01}, 7)
	d.BeginRun(s)
	runTicks(d, s, 400, 1.0/30)

	if len(s.Enemies) == 0 {
		t.Fatal("no enemies spawned")
	}
	for _, e := range s.Enemies {
		if e.Pos.X < -d.cfg.WorldSize || e.Pos.X > d.cfg.WorldSize ||
			e.Pos.Z < -d.cfg.WorldSize || e.Pos.Z > d.cfg.WorldSize {
			t.Fatalf("enemy %d outside world at %+v", e.ID, e.Pos)
		}
		for _, o := range s.Obstacles {
			if core.DistXZ(e.Pos, o.Pos) < o.Radius {
				t.Fatalf("enemy %d spawned inside obstacle at %+v", e.ID, e.Pos)
			}
		}
	}
}

func TestInitialWaveIsStaggered(t *testing.T) {
	s := newPhaseSession(t)
	d := NewDirector(Config{StaggerDelay: 0.5, SpawnInterval: 100}, 3)
	d.BeginRun(s)

	const dt = 1.0 / 30
	d.Step(s, dt, dt)
	first := s.MinionCount()
	if first > 1 {
		t.Fatalf("burst landed on one tick: %d minions", first)
	}

	runTicks(d, s, 200, dt)
	if got := s.MinionCount(); got != d.cfg.InitialBurst {
		t.Fatalf("initial burst = %d, want %d", got, d.cfg.InitialBurst)
	}
}

func TestWaveAdvancesOnKillRequirement(t *testing.T) {
	s := newPhaseSession(t)
	d := NewDirector(Config{WaveReq: 5, SpawnInterval: 100, BossThreshold: 1000}, 1)
	d.BeginRun(s)

	s.Stats.Kills = 12
	d.Step(s, 1.0/30, 0.1)
	if s.Run.Wave != 3 {
		t.Fatalf("wave = %d, want 3 after 12 kills at req 5", s.Run.Wave)
	}
}

func TestBossSpawnsExactlyOnce(t *testing.T) {
	s := newPhaseSession(t)
	d := NewDirector(Config{BossThreshold: 10, SpawnInterval: 100}, 2)
	d.BeginRun(s)

	s.Stats.Kills = 10
	runTicks(d, s, 10, 1.0/30)

	if s.State() != session.StatePhaseBoss {
		t.Fatalf("state = %v, want boss phase", s.State())
	}
	bosses := 0
	for _, e := range s.Enemies {
		if e.Kind == balance.EnemyBoss {
			bosses++
		}
	}
	if bosses != 1 {
		t.Fatalf("boss count = %d, want 1", bosses)
	}
}

func TestMinionSpawningSuspendedDuringBoss(t *testing.T) {
	s := newPhaseSession(t)
	d := NewDirector(Config{BossThreshold: 1, SpawnInterval: 0.01}, 2)
	d.BeginRun(s)

	s.Stats.Kills = 1
	d.Step(s, 1.0/30, 0.1)
	if !s.BossActive() {
		t.Fatal("boss not active")
	}
	before := s.MinionCount()
	runTicks(d, s, 300, 1.0/30)
	if got := s.MinionCount(); got != before {
		t.Fatalf("minions spawned during boss: %d -> %d", before, got)
	}
}

func TestObstacleLayoutDeterministicBySeed(t *testing.T) {
	a := NewDirector(Config{}, 99).placeObstacles()
	b := NewDirector(Config{}, 99).placeObstacles()
	c := NewDirector(Config{}, 100).placeObstacles()

	if len(a) == 0 {
		t.Fatal("no obstacles placed")
	}
	if len(a) != len(b) {
		t.Fatalf("same seed, different counts: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Pos != b[i].Pos || a[i].Radius != b[i].Radius {
			t.Fatalf("same seed diverged at obstacle %d", i)
		}
	}
	same := len(a) == len(c)
	if same {
		for i := range a {
			if a[i].Pos != c[i].Pos {
				same = false
				break
			}
		}
	}
	if same {
		t.Fatal("different seeds produced identical layouts")
	}
}

func TestObstaclesClearAroundOrigin(t *testing.T) {
	d := NewDirector(Config{}, 5)
	for _, o := range d.placeObstacles() {
		if o.Pos.LenXZ() < d.cfg.ObstacleClearance {
			t.Fatalf("obstacle at %+v inside clearance radius", o.Pos)
		}
	}
}
