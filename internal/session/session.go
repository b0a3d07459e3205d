// Package session owns the single authoritative game session: the player,
// the live entity sets and the state machine that gates every transition.
// All mutation goes through named operations; collaborators never write
// fields directly.
package session

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/polarforge/santavors/internal/balance"
)

// State is the session lifecycle state.
type State string

const (
	StateMenu      State = "menu"
	StateBriefing  State = "briefing"
	StatePhase1    State = "phase_1"
	StatePhaseBoss State = "phase_boss"
	StateLevelUp   State = "level_up"
	StateWin       State = "win"
	StateGameOver  State = "game_over"
)

// InPhase reports whether the state is an active combat phase.
func (s State) InPhase() bool {
	return s == StatePhase1 || s == StatePhaseBoss
}

// Terminal reports whether the state ends the run.
func (s State) Terminal() bool {
	return s == StateWin || s == StateGameOver
}

// Stats are the per-run score counters.
type Stats struct {
	Score        int
	Kills        int
	StreakPeak   int
	BossDefeated bool
}

// RunProgress tracks experience and upgrades for the current run.
type RunProgress struct {
	XP             int
	Level          int
	Wave           int
	TimeSurvived   float64
	ActiveUpgrades map[string]int
	PendingLevelUp bool
	UpgradeChoices []balance.Upgrade
}

// UpgradeChooser generates level-up choices from the set of already active
// upgrade stacks. The progression engine implements it; the indirection keeps
// this package free of the engine's RNG.
type UpgradeChooser interface {
	Choices(active map[string]int) []balance.Upgrade
}

// Session is the single shared mutable resource of the simulation. It is
// driven by one external tick source and performs no internal locking.
type Session struct {
	state         State
	previousState State

	Class    balance.Class
	Briefing string
	Player   *Player
	Stats    Stats
	Run      RunProgress

	Enemies   map[int]*Enemy
	Bullets   []*Bullet
	Obstacles []Obstacle

	nextEnemyID  int
	nextBulletID int

	balance *balance.Store
	chooser UpgradeChooser
	logger  *log.Logger
}

// New creates a session in the menu state. A nil logger discards output,
// which keeps tests quiet.
func New(store *balance.Store, chooser UpgradeChooser, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Session{
		balance: store,
		chooser: chooser,
		logger:  logger,
	}
	s.Reset()
	return s
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// PreviousState returns the state stored when a level-up interrupt began.
func (s *Session) PreviousState() State {
	return s.previousState
}

// Balance exposes the read-only balance store to collaborators.
func (s *Session) Balance() *balance.Store {
	return s.balance
}

// AddEnemy registers a new enemy, assigning its id. Called by the spawn
// director only.
func (s *Session) AddEnemy(e *Enemy) int {
	s.nextEnemyID++
	e.ID = s.nextEnemyID
	e.Active = true
	if e.LastHitAt == 0 {
		// Far in the past so the first contact hit is never debounced.
		e.LastHitAt = -1e9
	}
	s.Enemies[e.ID] = e
	return e.ID
}

// RemoveEnemy drops an enemy from the live set.
func (s *Session) RemoveEnemy(id int) {
	delete(s.Enemies, id)
}

// AddBullet registers a new projectile, assigning its id.
func (s *Session) AddBullet(b *Bullet) int {
	s.nextBulletID++
	b.ID = s.nextBulletID
	s.Bullets = append(s.Bullets, b)
	return b.ID
}

// MinionCount returns the number of live minions.
func (s *Session) MinionCount() int {
	n := 0
	for _, e := range s.Enemies {
		if e.Kind == balance.EnemyMinion {
			n++
		}
	}
	return n
}

// BossActive reports whether a boss is currently alive.
func (s *Session) BossActive() bool {
	for _, e := range s.Enemies {
		if e.Kind == balance.EnemyBoss {
			return true
		}
	}
	return false
}
