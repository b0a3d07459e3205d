package session

import (
	"fmt"

	"github.com/polarforge/santavors/internal/balance"
	"github.com/polarforge/santavors/internal/core"
	"github.com/polarforge/santavors/internal/progression"
)

// SelectClass populates the player from the balance tables and moves the
// session to the briefing. Valid only from the menu; any other state is a
// silent no-op. An unknown class id falls back to the default class with a
// warning rather than leaving the player undefined.
func (s *Session) SelectClass(classID string) {
	if s.state != StateMenu {
		return
	}

	class, ok := s.balance.Class(classID)
	if !ok {
		s.logger.Warn("unknown class id, using default",
			"class", classID, "default", s.balance.DefaultClassID())
		class, _ = s.balance.Class(s.balance.DefaultClassID())
	}

	base := progression.StatsFromClass(class)
	s.Class = class
	s.Briefing = briefingFor(class)
	s.Player = &Player{
		HP:        base.MaxHP,
		Radius:    PlayerRadius,
		Base:      base,
		Effective: base,
	}
	s.state = StateBriefing
}

// briefingFor renders the mission briefing text for a class.
func briefingFor(c balance.Class) string {
	if c.Briefing != "" {
		return fmt.Sprintf("%s\n\n%s", c.Name, c.Briefing)
	}
	return fmt.Sprintf("%s\n\nSurvive the waves. Defeat the boss.", c.Name)
}

// Commence starts the run. Valid only from the briefing; resets the per-run
// progression counters.
func (s *Session) Commence() {
	if s.state != StateBriefing {
		return
	}
	s.Run = RunProgress{
		Level:          1,
		Wave:           1,
		ActiveUpgrades: make(map[string]int),
	}
	s.Stats = Stats{}
	s.state = StatePhase1
}

// LevelUp interrupts an active phase with an upgrade choice. The current
// phase is stored so SelectLevelUpgrade can resume it. Rejected outside
// active phases. If no eligible upgrades remain the interrupt is skipped and
// the pending flag cleared: there is nothing to choose.
func (s *Session) LevelUp() {
	if !s.state.InPhase() {
		return
	}

	choices := s.chooser.Choices(s.Run.ActiveUpgrades)
	if len(choices) == 0 {
		s.Run.PendingLevelUp = false
		return
	}

	s.previousState = s.state
	s.Run.UpgradeChoices = choices
	s.Run.PendingLevelUp = true
	s.state = StateLevelUp
}

// SelectLevelUpgrade applies one of the offered upgrades and resumes the
// interrupted phase. Valid only from the level-up interrupt. An id that was
// not offered is rejected with a warning and the interrupt stays open.
func (s *Session) SelectLevelUpgrade(upgradeID string) {
	if s.state != StateLevelUp {
		return
	}

	offered := false
	for _, c := range s.Run.UpgradeChoices {
		if c.ID == upgradeID {
			offered = true
			break
		}
	}
	if !offered {
		s.logger.Warn("upgrade not among offered choices", "upgrade", upgradeID)
		return
	}

	u, _ := s.balance.Upgrade(upgradeID)
	if s.Run.ActiveUpgrades[upgradeID] < u.MaxStacks {
		s.Run.ActiveUpgrades[upgradeID]++
	}

	// Recompute effective stats from the untouched base so acquisition
	// order never matters. HP is preserved as a fraction of the old max in
	// case max HP grew.
	hpFrac := 1.0
	if s.Player.MaxHP() > 0 {
		hpFrac = s.Player.HP / s.Player.MaxHP()
	}
	s.Player.Effective = progression.Resolve(s.Player.Base, s.balance, s.Run.ActiveUpgrades)
	s.Player.HP = core.ClampF(hpFrac*s.Player.MaxHP(), 0, s.Player.MaxHP())

	s.Run.UpgradeChoices = nil
	s.Run.PendingLevelUp = false
	s.state = s.previousState
}

// AddXP feeds experience into the run. When the accumulated XP crosses the
// next level threshold the level advances and the pending level-up flag is
// set; the game loop raises the interrupt at the end of the tick.
func (s *Session) AddXP(amount int) {
	if !s.state.InPhase() {
		return
	}
	s.Run.XP += amount
	if newLevel := progression.LevelFor(s.Run.XP); newLevel > s.Run.Level {
		s.Run.Level = newLevel
		s.Run.PendingLevelUp = true
	}
}

// DamagePlayer applies damage to the player, clamped to [0, maxHP]. Reaching
// zero forces the game-over transition regardless of the current phase.
func (s *Session) DamagePlayer(amount float64) {
	if !s.state.InPhase() {
		return
	}
	s.Player.HP = core.ClampF(s.Player.HP-amount, 0, s.Player.MaxHP())
	if s.Player.HP <= 0 {
		s.state = StateGameOver
	}
}

// AdvanceWave moves the run to the next wave once the current one's kill
// requirement is met. Called by the spawn director.
func (s *Session) AdvanceWave() {
	if !s.state.InPhase() {
		return
	}
	s.Run.Wave++
}

// EnterBossPhase moves from phase 1 into the boss phase. Called by the spawn
// director when the boss spawns.
func (s *Session) EnterBossPhase() {
	if s.state != StatePhase1 {
		return
	}
	s.state = StatePhaseBoss
}

// DefeatBoss records the boss kill and forces the win transition.
func (s *Session) DefeatBoss() {
	if !s.state.InPhase() {
		return
	}
	s.Stats.BossDefeated = true
	s.state = StateWin
}

// Reset clears the session back to menu defaults. Callable from any state
// and idempotent; it unconditionally tears down in-flight entities and any
// pending level-up.
func (s *Session) Reset() {
	s.state = StateMenu
	s.previousState = StateMenu
	s.Class = balance.Class{}
	s.Briefing = ""
	s.Player = nil
	s.Stats = Stats{}
	s.Run = RunProgress{ActiveUpgrades: make(map[string]int)}
	s.Enemies = make(map[int]*Enemy)
	s.Bullets = nil
	s.Obstacles = nil
	s.nextEnemyID = 0
	s.nextBulletID = 0
}
