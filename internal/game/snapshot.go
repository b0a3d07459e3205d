package game

import (
	"sort"

	"github.com/polarforge/santavors/internal/balance"
	"github.com/polarforge/santavors/internal/combat"
	"github.com/polarforge/santavors/internal/core"
	"github.com/polarforge/santavors/internal/progression"
	"github.com/polarforge/santavors/internal/session"
)

// EnemyView is the render-facing copy of one enemy.
type EnemyView struct {
	ID        int
	Archetype string
	Boss      bool
	Pos       core.Vec3
	HP        float64
	MaxHP     float64
	Radius    float64
}

// BulletView is the render-facing copy of one projectile.
type BulletView struct {
	Pos    core.Vec3
	Radius float64
}

// Snapshot captures the complete game state for rendering and determinism
// testing. Entity slices are sorted by id so equal games produce equal
// snapshots.
type Snapshot struct {
	Tick  uint64
	State session.State

	ClassID  string
	Briefing string

	PlayerPos core.Vec3
	PlayerHP  float64
	MaxHP     float64

	Score        int
	Kills        int
	Wave         int
	Level        int
	XP           int
	XPToNext     int
	NicePoints   int
	TimeSurvived float64
	BossDefeated bool

	StreakTier  combat.StreakTier
	StreakCount int

	Choices   []balance.Upgrade
	Upgrades  map[string]int
	Enemies   []EnemyView
	Bullets   []BulletView
	Obstacles []session.Obstacle
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := g.session

	snap := Snapshot{
		Tick:         g.tick,
		State:        s.State(),
		ClassID:      s.Class.ID,
		Briefing:     s.Briefing,
		Score:        s.Stats.Score,
		Kills:        s.Stats.Kills,
		Wave:         s.Run.Wave,
		Level:        s.Run.Level,
		XP:           s.Run.XP,
		XPToNext:     progression.Threshold(s.Run.Level + 1),
		NicePoints:   g.economy.NicePoints(),
		TimeSurvived: s.Run.TimeSurvived,
		BossDefeated: s.Stats.BossDefeated,
		StreakTier:   g.resolver.Streak().Tier(),
		StreakCount:  g.resolver.Streak().Count(),
		Choices:      append([]balance.Upgrade(nil), s.Run.UpgradeChoices...),
		Obstacles:    s.Obstacles,
	}

	if s.Player != nil {
		snap.PlayerPos = s.Player.Pos
		snap.PlayerHP = s.Player.HP
		snap.MaxHP = s.Player.MaxHP()
	}

	if len(s.Run.ActiveUpgrades) > 0 {
		snap.Upgrades = make(map[string]int, len(s.Run.ActiveUpgrades))
		for id, n := range s.Run.ActiveUpgrades {
			snap.Upgrades[id] = n
		}
	}

	snap.Enemies = make([]EnemyView, 0, len(s.Enemies))
	for _, e := range s.Enemies {
		snap.Enemies = append(snap.Enemies, EnemyView{
			ID:        e.ID,
			Archetype: e.Archetype,
			Boss:      e.Kind == balance.EnemyBoss,
			Pos:       e.Pos,
			HP:        e.HP,
			MaxHP:     e.MaxHP,
			Radius:    e.Radius,
		})
	}
	sort.Slice(snap.Enemies, func(i, j int) bool {
		return snap.Enemies[i].ID < snap.Enemies[j].ID
	})

	snap.Bullets = make([]BulletView, len(s.Bullets))
	for i, b := range s.Bullets {
		snap.Bullets[i] = BulletView{Pos: b.Pos, Radius: b.Radius}
	}

	return snap
}
