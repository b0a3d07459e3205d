// Package game wires the session, spawn director, combat resolver,
// progression engine and meta economy into a single fixed-rate simulation.
// One Step call is one tick; nothing in the pipeline reads the wall clock,
// so two games with the same seed and inputs stay byte-identical.
package game

import (
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/polarforge/santavors/internal/balance"
	"github.com/polarforge/santavors/internal/combat"
	"github.com/polarforge/santavors/internal/core"
	"github.com/polarforge/santavors/internal/meta"
	"github.com/polarforge/santavors/internal/progression"
	"github.com/polarforge/santavors/internal/session"
	"github.com/polarforge/santavors/internal/spawn"
	"github.com/polarforge/santavors/internal/storage"
)

const (
	bulletSpeed  = 24.0
	bulletRadius = 0.3
	bulletTTL    = 3.0
	worldSize    = 60.0
)

// RunSaver records finished runs. Satisfied by *storage.Store; nil disables
// run history without touching the rest of the pipeline.
type RunSaver interface {
	SaveRun(run storage.RunEntry) (int64, error)
}

// Game owns one simulation. It is not safe for concurrent use; the tick
// source serializes access.
type Game struct {
	cfg      core.RuntimeConfig
	balance  *balance.Store
	session  *session.Session
	engine   *progression.Engine
	resolver *combat.Resolver
	director *spawn.Director
	economy  *meta.Economy
	runs     RunSaver
	logger   *log.Logger

	simTime  float64
	tick     uint64
	paused   bool
	savedRun bool
}

// New assembles a game over the given balance store. The runs saver and
// logger may be nil.
func New(cfg core.RuntimeConfig, store *balance.Store, economy *meta.Economy, runs RunSaver, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if economy == nil {
		economy = meta.NewEconomy(nil, logger)
	}
	engine := progression.NewEngine(store, rand.New(rand.NewSource(cfg.Seed)))
	g := &Game{
		cfg:      cfg,
		balance:  store,
		engine:   engine,
		resolver: combat.NewResolver(combat.Config{WorldSize: worldSize}),
		director: spawn.NewDirector(spawn.Config{WorldSize: worldSize}, cfg.Seed),
		economy:  economy,
		runs:     runs,
		logger:   logger,
	}
	g.session = session.New(store, engine, logger)
	return g
}

// Session exposes the underlying session for rendering. Read only outside
// of Step.
func (g *Game) Session() *session.Session { return g.session }

// Economy exposes the meta economy for shop and HUD surfaces.
func (g *Game) Economy() *meta.Economy { return g.economy }

// SimTime reports elapsed simulation seconds for the current run.
func (g *Game) SimTime() float64 { return g.simTime }

// Tick reports how many Step calls have run.
func (g *Game) Tick() uint64 { return g.tick }

// Paused reports whether stepping is suspended.
func (g *Game) Paused() bool { return g.paused }

// SelectClass forwards the menu choice to the session.
func (g *Game) SelectClass(classID string) {
	g.session.SelectClass(classID)
}

// Commence starts the run: the session enters phase 1, the director places
// obstacles and stages the opening wave, and all per-run clocks restart.
func (g *Game) Commence() {
	g.session.Commence()
	if g.session.State() != session.StatePhase1 {
		return
	}
	g.simTime = 0
	g.savedRun = false
	g.paused = false
	g.resolver.Reset()
	g.director.BeginRun(g.session)
}

// SelectUpgrade applies a level-up choice and resumes the interrupted phase.
func (g *Game) SelectUpgrade(upgradeID string) {
	g.session.SelectLevelUpgrade(upgradeID)
}

// Reset returns the whole game to the menu.
func (g *Game) Reset() {
	g.session.Reset()
	g.resolver.Reset()
	g.simTime = 0
	g.paused = false
	g.savedRun = false
}

// Step advances the simulation by one fixed tick. The order inside a tick is
// load-bearing: player input, then integration and collisions, then spawning,
// with the level-up interrupt checked only after all of it, so a death and a
// level-up in the same tick resolve as a death.
func (g *Game) Step(in core.Frame) {
	g.tick++

	if in.Pause {
		g.paused = !g.paused
	}
	if g.paused {
		return
	}

	st := g.session.State()
	if st.Terminal() {
		g.finishRun()
		return
	}
	if !st.InPhase() {
		return
	}

	dt := g.cfg.Dt()
	g.simTime += dt
	g.session.Run.TimeSurvived = g.simTime

	g.movePlayer(in, dt)
	g.firePlayer(in, dt)

	ev := g.resolver.Step(g.session, dt, g.simTime)
	g.applyEvents(ev)

	g.director.Step(g.session, dt, g.simTime)

	// The interrupt fires at the end of the tick so the frame that earned
	// the level still fully resolves.
	if g.session.State().InPhase() && g.session.Run.PendingLevelUp {
		g.session.LevelUp()
	}

	if g.session.State().Terminal() {
		g.finishRun()
	}
}

// movePlayer integrates player movement, clamps to world extents and slides
// the player out of obstacles.
func (g *Game) movePlayer(in core.Frame, dt float64) {
	p := g.session.Player
	dir := core.Vec3{X: in.MoveX, Z: in.MoveZ}.NormXZ()
	p.Vel = dir.Scale(p.Effective.Speed)
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))

	w := worldSize - p.Radius
	p.Pos.X = core.ClampF(p.Pos.X, -w, w)
	p.Pos.Z = core.ClampF(p.Pos.Z, -w, w)

	for i := range g.session.Obstacles {
		o := &g.session.Obstacles[i]
		d := core.DistXZ(p.Pos, o.Pos)
		minD := p.Radius + o.Radius
		if d >= minD || d == 0 {
			continue
		}
		push := p.Pos.Sub(o.Pos).NormXZ().Scale(minD - d)
		p.Pos = p.Pos.Add(push)
	}
}

// firePlayer runs the fire cooldown and, while the trigger is held, emits a
// bullet at the nearest enemy. No target, no shot.
func (g *Game) firePlayer(in core.Frame, dt float64) {
	p := g.session.Player
	if p.FireCooldown > 0 {
		p.FireCooldown -= dt
	}
	if !in.Fire || p.FireCooldown > 0 {
		return
	}
	target := g.nearestEnemy(p.Pos)
	if target == nil {
		return
	}
	dir := target.Pos.Sub(p.Pos).NormXZ()
	g.session.AddBullet(&session.Bullet{
		Weapon: g.session.Class.WeaponType,
		Pos:    p.Pos,
		Vel:    dir.Scale(bulletSpeed),
		Damage: p.Effective.Damage,
		Radius: bulletRadius,
		TTL:    bulletTTL,
	})
	p.FireCooldown = 1 / p.Effective.ROF
}

func (g *Game) nearestEnemy(pos core.Vec3) *session.Enemy {
	var best *session.Enemy
	bestD := math.MaxFloat64
	for _, e := range g.session.Enemies {
		if !e.Active {
			continue
		}
		d := core.DistXZ(pos, e.Pos)
		// Lowest id wins ties so target choice never depends on map order.
		if d < bestD || (d == bestD && best != nil && e.ID < best.ID) {
			bestD = d
			best = e
		}
	}
	return best
}

// applyEvents folds one tick's combat outcome into score, progression, the
// economy and the session state machine.
func (g *Game) applyEvents(ev combat.Events) {
	for _, k := range ev.Kills {
		g.session.Stats.Kills++
		g.session.Stats.Score += k.PointValue
		g.session.AddXP(k.XP)
		g.economy.AwardKillPoints(k.NicePoints)
	}
	if ev.StreakCount > g.session.Stats.StreakPeak {
		g.session.Stats.StreakPeak = ev.StreakCount
	}
	if ev.BossKilled {
		g.session.Stats.BossDefeated = true
		g.session.DefeatBoss()
		return
	}
	if ev.PlayerDamage > 0 {
		g.session.DamagePlayer(ev.PlayerDamage)
	}
}

// finishRun reconciles a terminal run exactly once: lifetime counters fold
// into the economy, and the run lands in history. Persistence failures are
// logged and do not block the terminal screen.
func (g *Game) finishRun() {
	if g.savedRun {
		return
	}
	g.savedRun = true

	died := g.session.State() == session.StateGameOver
	g.economy.FinishRun(g.session.Stats.Score, g.session.Stats.Kills,
		g.session.Stats.BossDefeated, died)

	if g.runs == nil {
		return
	}
	_, err := g.runs.SaveRun(storage.RunEntry{
		ClassID:      g.session.Class.ID,
		Score:        g.session.Stats.Score,
		Kills:        g.session.Stats.Kills,
		Wave:         g.session.Run.Wave,
		DurationSecs: int(g.session.Run.TimeSurvived),
		StreakPeak:   g.session.Stats.StreakPeak,
		BossDefeated: g.session.Stats.BossDefeated,
	})
	if err != nil {
		g.logger.Warn("could not save run", "err", err)
	}
}
