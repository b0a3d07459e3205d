// Package balance provides the immutable, loaded-once data tables describing
// player classes, weapons, enemy archetypes, roguelike upgrades and skins.
// The tables are pure data: nothing in this package mutates them after Load.
package balance

import (
	"fmt"
	"sort"
)

// StatKind tags how a stat delta combines with the base stat.
type StatKind string

const (
	Additive StatKind = "additive" // summed onto the base value
	Percent  StatKind = "percent"  // cumulative multiplier on the base value
)

// Stat names recognized by the stat resolver.
const (
	StatMaxHP  = "max_hp"
	StatSpeed  = "speed"
	StatROF    = "rof"
	StatDamage = "damage"
)

// Rarity buckets for upgrade choice weighting.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Category groups upgrades for display purposes only; the simulation treats
// all categories alike.
type Category string

const (
	CategoryOffensive Category = "offensive"
	CategoryDefensive Category = "defensive"
	CategoryUtility   Category = "utility"
	CategorySpecial   Category = "special"
)

// StatDelta is one named stat change carried by an upgrade.
type StatDelta struct {
	Stat   string   `yaml:"stat"`
	Amount float64  `yaml:"amount"`
	Kind   StatKind `yaml:"kind"`
}

// Class describes a playable character class.
type Class struct {
	ID         string  `yaml:"id"`
	Name       string  `yaml:"name"`
	HP         float64 `yaml:"hp"`
	Speed      float64 `yaml:"speed"`
	ROF        float64 `yaml:"rof"` // shots per second
	Damage     float64 `yaml:"damage"`
	WeaponType string  `yaml:"weapon_type"`
	Color      string  `yaml:"color"`
	Scale      float64 `yaml:"scale"`
	Briefing   string  `yaml:"briefing"`
}

// Weapon describes an unlockable weapon.
type Weapon struct {
	ID     string  `yaml:"id"`
	Name   string  `yaml:"name"`
	Damage float64 `yaml:"damage"`
	ROF    float64 `yaml:"rof"`
	Cost   int     `yaml:"cost"`
	Icon   string  `yaml:"icon"`
}

// EnemyKind distinguishes regular minions from the boss.
type EnemyKind string

const (
	EnemyMinion EnemyKind = "minion"
	EnemyBoss   EnemyKind = "boss"
)

// Enemy describes an enemy archetype.
type Enemy struct {
	ID         string    `yaml:"id"`
	Kind       EnemyKind `yaml:"kind"`
	HP         float64   `yaml:"hp"`
	Speed      float64   `yaml:"speed"`
	Damage     float64   `yaml:"damage"`
	PointValue int       `yaml:"point_value"`
	Radius     float64   `yaml:"radius"`
}

// Upgrade describes a stackable roguelike upgrade.
type Upgrade struct {
	ID        string      `yaml:"id"`
	Name      string      `yaml:"name"`
	Rarity    Rarity      `yaml:"rarity"`
	Category  Category    `yaml:"category"`
	MaxStacks int         `yaml:"max_stacks"`
	Stats     []StatDelta `yaml:"stats"`
}

// Skin describes an unlockable character skin.
type Skin struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Cost      int    `yaml:"cost"`
	Character string `yaml:"character"`
	Color     string `yaml:"color"`
}

// Tables is the raw YAML shape of the balance file.
type Tables struct {
	DefaultClass string    `yaml:"default_class"`
	Classes      []Class   `yaml:"classes"`
	Weapons      []Weapon  `yaml:"weapons"`
	Enemies      []Enemy   `yaml:"enemies"`
	Upgrades     []Upgrade `yaml:"upgrades"`
	Skins        []Skin    `yaml:"skins"`
}

// Store wraps the validated tables with id lookups. It is safe for
// concurrent reads; nothing writes to it after NewStore.
type Store struct {
	tables   Tables
	classes  map[string]Class
	weapons  map[string]Weapon
	enemies  map[string]Enemy
	upgrades map[string]Upgrade
	skins    map[string]Skin
}

// NewStore validates the tables and builds lookups. An invalid table is a
// fatal condition for the caller: the stacking and clamping invariants of the
// simulation depend on this data being well formed.
func NewStore(t Tables) (*Store, error) {
	if err := validate(t); err != nil {
		return nil, err
	}

	s := &Store{
		tables:   t,
		classes:  make(map[string]Class, len(t.Classes)),
		weapons:  make(map[string]Weapon, len(t.Weapons)),
		enemies:  make(map[string]Enemy, len(t.Enemies)),
		upgrades: make(map[string]Upgrade, len(t.Upgrades)),
		skins:    make(map[string]Skin, len(t.Skins)),
	}
	for _, c := range t.Classes {
		s.classes[c.ID] = c
	}
	for _, w := range t.Weapons {
		s.weapons[w.ID] = w
	}
	for _, e := range t.Enemies {
		s.enemies[e.ID] = e
	}
	for _, u := range t.Upgrades {
		s.upgrades[u.ID] = u
	}
	for _, sk := range t.Skins {
		s.skins[sk.ID] = sk
	}
	return s, nil
}

func validate(t Tables) error {
	if len(t.Classes) == 0 {
		return fmt.Errorf("balance: no classes defined")
	}
	if t.DefaultClass == "" {
		return fmt.Errorf("balance: default_class is required")
	}
	found := false
	for _, c := range t.Classes {
		if c.ID == "" {
			return fmt.Errorf("balance: class with empty id")
		}
		if c.HP <= 0 || c.Speed <= 0 || c.ROF <= 0 {
			return fmt.Errorf("balance: class %q has non-positive hp/speed/rof", c.ID)
		}
		if c.ID == t.DefaultClass {
			found = true
		}
	}
	if !found {
		return fmt.Errorf("balance: default_class %q not in classes", t.DefaultClass)
	}

	boss := 0
	for _, e := range t.Enemies {
		if e.HP <= 0 || e.Radius <= 0 {
			return fmt.Errorf("balance: enemy %q has non-positive hp/radius", e.ID)
		}
		switch e.Kind {
		case EnemyMinion:
		case EnemyBoss:
			boss++
		default:
			return fmt.Errorf("balance: enemy %q has unknown kind %q", e.ID, e.Kind)
		}
	}
	if boss == 0 {
		return fmt.Errorf("balance: no boss archetype defined")
	}

	for _, u := range t.Upgrades {
		if u.MaxStacks < 1 {
			return fmt.Errorf("balance: upgrade %q has max_stacks %d, want >= 1", u.ID, u.MaxStacks)
		}
		switch u.Rarity {
		case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		default:
			return fmt.Errorf("balance: upgrade %q has unknown rarity %q", u.ID, u.Rarity)
		}
		if len(u.Stats) == 0 {
			return fmt.Errorf("balance: upgrade %q has no stat deltas", u.ID)
		}
		for _, d := range u.Stats {
			if d.Kind != Additive && d.Kind != Percent {
				return fmt.Errorf("balance: upgrade %q stat %q has unknown kind %q", u.ID, d.Stat, d.Kind)
			}
		}
	}
	return nil
}

// DefaultClassID returns the id of the known-safe fallback class.
func (s *Store) DefaultClassID() string {
	return s.tables.DefaultClass
}

// Class looks up a class by id. The second return is false for unknown ids.
func (s *Store) Class(id string) (Class, bool) {
	c, ok := s.classes[id]
	return c, ok
}

// Weapon looks up a weapon by id.
func (s *Store) Weapon(id string) (Weapon, bool) {
	w, ok := s.weapons[id]
	return w, ok
}

// Enemy looks up an enemy archetype by id.
func (s *Store) Enemy(id string) (Enemy, bool) {
	e, ok := s.enemies[id]
	return e, ok
}

// Upgrade looks up an upgrade by id.
func (s *Store) Upgrade(id string) (Upgrade, bool) {
	u, ok := s.upgrades[id]
	return u, ok
}

// Skin looks up a skin by id.
func (s *Store) Skin(id string) (Skin, bool) {
	sk, ok := s.skins[id]
	return sk, ok
}

// Classes returns all classes sorted by id.
func (s *Store) Classes() []Class {
	out := append([]Class(nil), s.tables.Classes...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Weapons returns all weapons sorted by id.
func (s *Store) Weapons() []Weapon {
	out := append([]Weapon(nil), s.tables.Weapons...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Upgrades returns all upgrades in table order. Order matters for the
// weighted choice roll, so this is the declaration order, not sorted.
func (s *Store) Upgrades() []Upgrade {
	return append([]Upgrade(nil), s.tables.Upgrades...)
}

// Skins returns all skins sorted by id.
func (s *Store) Skins() []Skin {
	out := append([]Skin(nil), s.tables.Skins...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Minions returns the ids of all minion archetypes in table order.
func (s *Store) Minions() []string {
	var out []string
	for _, e := range s.tables.Enemies {
		if e.Kind == EnemyMinion {
			out = append(out, e.ID)
		}
	}
	return out
}

// BossID returns the id of the first boss archetype.
func (s *Store) BossID() string {
	for _, e := range s.tables.Enemies {
		if e.Kind == EnemyBoss {
			return e.ID
		}
	}
	return ""
}
