// Package meta tracks progress that outlives a single run: the Nice Points
// currency, unlocks, permanent upgrades and lifetime counters. Persistence
// is best effort; a failed save never interrupts play.
package meta

import (
	"io"
	"sort"
	"strconv"

	"github.com/charmbracelet/log"
)

// Store keys. The high score is duplicated under its own key as a plain
// number string so external tooling can read it without decoding the
// envelope.
const (
	ProgressKey  = "santavors-meta"
	HighScoreKey = "santavors-highscore"
)

// Completion grant tuning. Finishing a run pays a small passive amount on
// top of kill income, win and loss alike, scaled off the run score.
const (
	completionGrantDivisor = 20
	completionGrantMin     = 10
)

// Store is the minimal key/value surface the economy needs.
type Store interface {
	Get(key string) (string, bool, error)
	Put(key, value string) error
}

// Progress is everything carried between runs.
type Progress struct {
	NicePoints        int            `json:"nicePoints"`
	UnlockedWeapons   []string       `json:"unlockedWeapons"`
	UnlockedSkins     []string       `json:"unlockedSkins"`
	PermanentUpgrades map[string]int `json:"permanentUpgrades"`
	TotalPointsEarned int            `json:"totalPointsEarned"`
	RunsCompleted     int            `json:"runsCompleted"`
	BossesDefeated    int            `json:"bossesDefeated"`
	HighScore         int            `json:"highScore"`
	TotalKills        int            `json:"totalKills"`
	TotalDeaths       int            `json:"totalDeaths"`
}

func newProgress() Progress {
	return Progress{PermanentUpgrades: map[string]int{}}
}

// Economy owns the progress record and its persistence.
type Economy struct {
	store    Store
	logger   *log.Logger
	progress Progress
}

// NewEconomy creates an economy over the given store. A nil store keeps all
// progress in memory; a nil logger discards output.
func NewEconomy(store Store, logger *log.Logger) *Economy {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Economy{
		store:    store,
		logger:   logger,
		progress: newProgress(),
	}
}

// Progress returns a copy of the current record.
func (e *Economy) Progress() Progress {
	p := e.progress
	p.UnlockedWeapons = append([]string(nil), p.UnlockedWeapons...)
	p.UnlockedSkins = append([]string(nil), p.UnlockedSkins...)
	perm := make(map[string]int, len(p.PermanentUpgrades))
	for k, v := range p.PermanentUpgrades {
		perm[k] = v
	}
	p.PermanentUpgrades = perm
	return p
}

// NicePoints reports the spendable balance.
func (e *Economy) NicePoints() int { return e.progress.NicePoints }

// Load restores progress from the store. Missing or corrupt data yields a
// fresh record with a warning; play is never blocked on persistence.
func (e *Economy) Load() {
	if e.store == nil {
		return
	}
	raw, ok, err := e.store.Get(ProgressKey)
	switch {
	case err != nil:
		e.logger.Warn("meta load failed, starting fresh", "err", err)
		e.progress = newProgress()
	case !ok:
		// First launch.
	default:
		var p Progress
		if decErr := decode(raw, &p); decErr != nil {
			e.logger.Warn("meta record corrupt, starting fresh", "err", decErr)
			e.progress = newProgress()
			break
		}
		if p.PermanentUpgrades == nil {
			p.PermanentUpgrades = map[string]int{}
		}
		e.progress = p
	}

	// The standalone high-score key survives a discarded corrupt envelope.
	if raw, ok, err := e.store.Get(HighScoreKey); err == nil && ok {
		if hs, convErr := strconv.Atoi(raw); convErr == nil && hs > e.progress.HighScore {
			e.progress.HighScore = hs
		}
	}
}

// Save writes progress back to the store. Errors are logged and swallowed.
func (e *Economy) Save() {
	if e.store == nil {
		return
	}
	raw, err := encode(e.progress)
	if err != nil {
		e.logger.Warn("meta encode failed", "err", err)
		return
	}
	if err := e.store.Put(ProgressKey, raw); err != nil {
		e.logger.Warn("meta save failed", "err", err)
	}
	if err := e.store.Put(HighScoreKey, strconv.Itoa(e.progress.HighScore)); err != nil {
		e.logger.Warn("high score save failed", "err", err)
	}
}

// AwardKillPoints credits currency earned mid-run.
func (e *Economy) AwardKillPoints(points int) {
	if points <= 0 {
		return
	}
	e.progress.NicePoints += points
	e.progress.TotalPointsEarned += points
}

// FinishRun folds a completed run into the lifetime counters, credits the
// completion grant and persists. Called exactly once per run, on the
// transition into a terminal state.
func (e *Economy) FinishRun(score, kills int, bossDefeated, died bool) {
	e.progress.RunsCompleted++
	e.progress.TotalKills += kills
	if bossDefeated {
		e.progress.BossesDefeated++
	}
	if died {
		e.progress.TotalDeaths++
	}

	grant := completionGrant(score)
	e.progress.NicePoints += grant
	e.progress.TotalPointsEarned += grant

	e.UpdateHighScore(score)
	e.Save()
}

// completionGrant returns the passive Nice Point payout for finishing a run
// with the given score. Smaller than typical kill income, never zero.
func completionGrant(score int) int {
	grant := score / completionGrantDivisor
	if grant < completionGrantMin {
		grant = completionGrantMin
	}
	return grant
}

// SpendNicePoints deducts cost if the balance covers it.
func (e *Economy) SpendNicePoints(cost int) bool {
	if cost < 0 || e.progress.NicePoints < cost {
		return false
	}
	e.progress.NicePoints -= cost
	return true
}

// UnlockWeapon records a weapon unlock. Idempotent.
func (e *Economy) UnlockWeapon(id string) {
	e.progress.UnlockedWeapons = addUnique(e.progress.UnlockedWeapons, id)
}

// UnlockSkin records a skin unlock. Idempotent.
func (e *Economy) UnlockSkin(id string) {
	e.progress.UnlockedSkins = addUnique(e.progress.UnlockedSkins, id)
}

// HasWeapon reports whether the weapon was unlocked.
func (e *Economy) HasWeapon(id string) bool {
	return contains(e.progress.UnlockedWeapons, id)
}

// HasSkin reports whether the skin was unlocked.
func (e *Economy) HasSkin(id string) bool {
	return contains(e.progress.UnlockedSkins, id)
}

// AddPermanentUpgrade bumps a persistent upgrade stack.
func (e *Economy) AddPermanentUpgrade(id string) {
	e.progress.PermanentUpgrades[id]++
}

// UpdateHighScore raises the record if score beats it. Never lowers.
func (e *Economy) UpdateHighScore(score int) {
	if score > e.progress.HighScore {
		e.progress.HighScore = score
	}
}

func addUnique(list []string, id string) []string {
	if contains(list, id) {
		return list
	}
	list = append(list, id)
	sort.Strings(list)
	return list
}

func contains(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}
