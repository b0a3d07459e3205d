package progression

import (
	"math"
	"math/rand"
	"testing"

	"github.com/polarforge/santavors/internal/balance"
)

func TestThresholdMonotonic(t *testing.T) {
	prev := Threshold(1)
	for level := 2; level <= 50; level++ {
		cur := Threshold(level)
		if cur <= prev {
			t.Fatalf("Threshold(%d)=%d not greater than Threshold(%d)=%d",
				level, cur, level-1, prev)
		}
		prev = cur
	}
}

func TestLevelFor(t *testing.T) {
	if LevelFor(0) != 1 {
		t.Errorf("LevelFor(0) = %d, want 1", LevelFor(0))
	}
	if LevelFor(Threshold(2)) != 2 {
		t.Errorf("LevelFor at threshold 2 = %d, want 2", LevelFor(Threshold(2)))
	}
	if LevelFor(Threshold(2)-1) != 1 {
		t.Errorf("LevelFor just below threshold 2 should stay 1")
	}
	if LevelFor(Threshold(7)+3) != 7 {
		t.Errorf("LevelFor between thresholds 7 and 8 should be 7")
	}
}

func TestChoicesCountAndDistinct(t *testing.T) {
	store := balance.MustLoadDefault()
	e := NewEngine(store, rand.New(rand.NewSource(7)))

	choices := e.Choices(map[string]int{})
	if len(choices) != ChoiceCount {
		t.Fatalf("got %d choices, want %d", len(choices), ChoiceCount)
	}

	seen := map[string]bool{}
	for _, c := range choices {
		if seen[c.ID] {
			t.Errorf("duplicate choice %q", c.ID)
		}
		seen[c.ID] = true
	}
}

func TestChoicesExcludeMaxedStacks(t *testing.T) {
	store := balance.MustLoadDefault()
	e := NewEngine(store, rand.New(rand.NewSource(11)))

	// Max out every upgrade except one.
	active := map[string]int{}
	var spared string
	for _, u := range store.Upgrades() {
		if spared == "" {
			spared = u.ID
			continue
		}
		active[u.ID] = u.MaxStacks
	}

	choices := e.Choices(active)
	if len(choices) != 1 {
		t.Fatalf("got %d choices, want 1 (only %q is eligible)", len(choices), spared)
	}
	if choices[0].ID != spared {
		t.Errorf("got %q, want %q", choices[0].ID, spared)
	}
}

func TestChoicesAllMaxed(t *testing.T) {
	store := balance.MustLoadDefault()
	e := NewEngine(store, rand.New(rand.NewSource(3)))

	active := map[string]int{}
	for _, u := range store.Upgrades() {
		active[u.ID] = u.MaxStacks
	}

	if got := e.Choices(active); len(got) != 0 {
		t.Errorf("expected no choices when everything is maxed, got %d", len(got))
	}
}

func TestChoicesDeterministicBySeed(t *testing.T) {
	store := balance.MustLoadDefault()
	a := NewEngine(store, rand.New(rand.NewSource(99)))
	b := NewEngine(store, rand.New(rand.NewSource(99)))

	ca := a.Choices(nil)
	cb := b.Choices(nil)
	for i := range ca {
		if ca[i].ID != cb[i].ID {
			t.Fatalf("choice %d differs for equal seeds: %q vs %q", i, ca[i].ID, cb[i].ID)
		}
	}
}

func TestResolveAdditiveAndPercent(t *testing.T) {
	store := balance.MustLoadDefault()
	base := Stats{MaxHP: 300, Speed: 6, ROF: 2, Damage: 20}

	// heavy_parcels: +5 damage additive; sharpened_icicles: +20% damage.
	got := Resolve(base, store, map[string]int{
		"heavy_parcels":     2,
		"sharpened_icicles": 1,
	})

	want := (20 + 2*5) * 1.20
	if math.Abs(got.Damage-want) > 1e-9 {
		t.Errorf("Damage = %v, want %v", got.Damage, want)
	}
	if got.MaxHP != 300 || got.Speed != 6 || got.ROF != 2 {
		t.Errorf("untouched stats changed: %+v", got)
	}
}

func TestResolveOrderCommutes(t *testing.T) {
	store := balance.MustLoadDefault()
	base := Stats{MaxHP: 300, Speed: 6, ROF: 2, Damage: 20}

	// Maps are unordered, so simulate two acquisition orders by resolving
	// incrementally in opposite orders and comparing the final fold.
	a := Resolve(base, store, map[string]int{
		"rapid_wrapping": 3,
		"twin_barrels":   1,
	})
	b := Resolve(base, store, map[string]int{
		"twin_barrels":   1,
		"rapid_wrapping": 3,
	})

	if math.Abs(a.ROF-b.ROF) > 1e-9 {
		t.Errorf("ROF depends on acquisition order: %v vs %v", a.ROF, b.ROF)
	}

	want := 2 * math.Pow(1.15, 3) * 1.35
	if math.Abs(a.ROF-want) > 1e-9 {
		t.Errorf("ROF = %v, want %v", a.ROF, want)
	}
}

func TestResolveIgnoresUnknownUpgrade(t *testing.T) {
	store := balance.MustLoadDefault()
	base := Stats{MaxHP: 100, Speed: 5, ROF: 1, Damage: 10}

	got := Resolve(base, store, map[string]int{"no_such_upgrade": 3})
	if got != base {
		t.Errorf("unknown upgrade id changed stats: %+v", got)
	}
}
