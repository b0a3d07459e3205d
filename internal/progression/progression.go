// Package progression implements experience accrual, level thresholds,
// weighted-random upgrade choice generation and the stat-delta resolver.
// It is pure over the balance tables: nothing here touches session state.
package progression

import (
	"math/rand"

	"github.com/polarforge/santavors/internal/balance"
)

// ChoiceCount is the number of upgrade choices offered per level-up.
const ChoiceCount = 3

// Rarity weights for the upgrade roll. Commons dominate, legendaries are
// rare. Relative values only; they need not sum to anything.
var rarityWeights = map[balance.Rarity]int{
	balance.RarityCommon:    60,
	balance.RarityRare:      25,
	balance.RarityEpic:      12,
	balance.RarityLegendary: 3,
}

// Stats is the resolved set of player stats the simulation reads every tick.
type Stats struct {
	MaxHP  float64
	Speed  float64
	ROF    float64
	Damage float64
}

// StatsFromClass builds the base stats for a class definition.
func StatsFromClass(c balance.Class) Stats {
	return Stats{
		MaxHP:  c.HP,
		Speed:  c.Speed,
		ROF:    c.ROF,
		Damage: c.Damage,
	}
}

// Threshold returns the cumulative XP required to reach the given level.
// Quadratic in level, so each level costs strictly more than the last.
func Threshold(level int) int {
	if level <= 1 {
		return 0
	}
	n := level - 1
	return 10*n + 5*n*n
}

// Engine rolls upgrade choices and tracks nothing itself; all mutable run
// state lives on the session. The RNG is the session's seeded source so
// choice generation is deterministic.
type Engine struct {
	store *balance.Store
	rng   *rand.Rand
}

// NewEngine creates an engine over the given balance store.
func NewEngine(store *balance.Store, rng *rand.Rand) *Engine {
	return &Engine{store: store, rng: rng}
}

// LevelFor returns the level implied by a cumulative XP total.
func LevelFor(xp int) int {
	level := 1
	for Threshold(level+1) <= xp {
		level++
	}
	return level
}

// Choices draws up to ChoiceCount distinct upgrades weighted by rarity,
// excluding any upgrade already at its stack cap. If fewer eligible upgrades
// remain than the fixed count, all eligible ones are returned.
func (e *Engine) Choices(active map[string]int) []balance.Upgrade {
	eligible := make([]balance.Upgrade, 0)
	for _, u := range e.store.Upgrades() {
		if active[u.ID] >= u.MaxStacks {
			continue
		}
		eligible = append(eligible, u)
	}

	if len(eligible) <= ChoiceCount {
		return eligible
	}

	choices := make([]balance.Upgrade, 0, ChoiceCount)
	for len(choices) < ChoiceCount {
		pick := e.rollWeighted(eligible)
		choices = append(choices, eligible[pick])
		eligible = append(eligible[:pick], eligible[pick+1:]...)
	}
	return choices
}

// rollWeighted picks an index into candidates proportional to rarity weight.
func (e *Engine) rollWeighted(candidates []balance.Upgrade) int {
	total := 0
	for _, u := range candidates {
		total += rarityWeights[u.Rarity]
	}
	roll := e.rng.Intn(total)
	for i, u := range candidates {
		roll -= rarityWeights[u.Rarity]
		if roll < 0 {
			return i
		}
	}
	return len(candidates) - 1
}

// Resolve folds all active upgrade stacks into effective stats. Additive
// deltas sum onto the base; percent deltas multiply cumulatively. The base is
// never mutated and multiplication commutes, so the result is independent of
// the order upgrades were acquired.
func Resolve(base Stats, store *balance.Store, active map[string]int) Stats {
	add := map[string]float64{}
	mult := map[string]float64{
		balance.StatMaxHP:  1,
		balance.StatSpeed:  1,
		balance.StatROF:    1,
		balance.StatDamage: 1,
	}

	for id, stacks := range active {
		u, ok := store.Upgrade(id)
		if !ok {
			continue
		}
		for _, d := range u.Stats {
			for i := 0; i < stacks; i++ {
				switch d.Kind {
				case balance.Additive:
					add[d.Stat] += d.Amount
				case balance.Percent:
					mult[d.Stat] *= 1 + d.Amount/100
				}
			}
		}
	}

	return Stats{
		MaxHP:  (base.MaxHP + add[balance.StatMaxHP]) * mult[balance.StatMaxHP],
		Speed:  (base.Speed + add[balance.StatSpeed]) * mult[balance.StatSpeed],
		ROF:    (base.ROF + add[balance.StatROF]) * mult[balance.StatROF],
		Damage: (base.Damage + add[balance.StatDamage]) * mult[balance.StatDamage],
	}
}
