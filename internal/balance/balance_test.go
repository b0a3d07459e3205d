package balance

import (
	"strings"
	"testing"
)

func TestEmbeddedDefaultLoads(t *testing.T) {
	s := MustLoadDefault()

	santa, ok := s.Class("santa")
	if !ok {
		t.Fatal("default tables must define the santa class")
	}
	if santa.HP != 300 {
		t.Errorf("santa HP = %v, want 300", santa.HP)
	}
	if s.DefaultClassID() != "santa" {
		t.Errorf("default class = %q, want santa", s.DefaultClassID())
	}
	if s.BossID() == "" {
		t.Error("default tables must define a boss archetype")
	}
	if len(s.Minions()) == 0 {
		t.Error("default tables must define minion archetypes")
	}
	if len(s.Upgrades()) == 0 {
		t.Error("default tables must define upgrades")
	}
}

func TestValidateRejectsMissingMaxStacks(t *testing.T) {
	tables := Tables{
		DefaultClass: "c",
		Classes:      []Class{{ID: "c", HP: 100, Speed: 5, ROF: 1}},
		Enemies:      []Enemy{{ID: "b", Kind: EnemyBoss, HP: 10, Radius: 1}},
		Upgrades: []Upgrade{{
			ID:     "broken",
			Rarity: RarityCommon,
			// MaxStacks omitted
			Stats: []StatDelta{{Stat: StatDamage, Amount: 1, Kind: Additive}},
		}},
	}

	_, err := NewStore(tables)
	if err == nil {
		t.Fatal("expected error for upgrade without max_stacks")
	}
	if !strings.Contains(err.Error(), "max_stacks") {
		t.Errorf("error should name max_stacks, got %v", err)
	}
}

func TestValidateRejectsUnknownRarity(t *testing.T) {
	tables := Tables{
		DefaultClass: "c",
		Classes:      []Class{{ID: "c", HP: 100, Speed: 5, ROF: 1}},
		Enemies:      []Enemy{{ID: "b", Kind: EnemyBoss, HP: 10, Radius: 1}},
		Upgrades: []Upgrade{{
			ID:        "weird",
			Rarity:    "mythic",
			MaxStacks: 1,
			Stats:     []StatDelta{{Stat: StatDamage, Amount: 1, Kind: Additive}},
		}},
	}

	if _, err := NewStore(tables); err == nil {
		t.Fatal("expected error for unknown rarity")
	}
}

func TestValidateRejectsMissingBoss(t *testing.T) {
	tables := Tables{
		DefaultClass: "c",
		Classes:      []Class{{ID: "c", HP: 100, Speed: 5, ROF: 1}},
		Enemies:      []Enemy{{ID: "m", Kind: EnemyMinion, HP: 10, Radius: 1}},
	}

	if _, err := NewStore(tables); err == nil {
		t.Fatal("expected error when no boss archetype exists")
	}
}

func TestValidateRejectsUnknownDefaultClass(t *testing.T) {
	tables := Tables{
		DefaultClass: "ghost",
		Classes:      []Class{{ID: "c", HP: 100, Speed: 5, ROF: 1}},
		Enemies:      []Enemy{{ID: "b", Kind: EnemyBoss, HP: 10, Radius: 1}},
	}

	if _, err := NewStore(tables); err == nil {
		t.Fatal("expected error for default_class not in classes")
	}
}

func TestLookupsAndListings(t *testing.T) {
	s := MustLoadDefault()

	if _, ok := s.Class("nonexistent"); ok {
		t.Error("unknown class id should not resolve")
	}

	classes := s.Classes()
	for i := 1; i < len(classes); i++ {
		if classes[i-1].ID >= classes[i].ID {
			t.Errorf("Classes() not sorted: %q before %q", classes[i-1].ID, classes[i].ID)
		}
	}

	for _, u := range s.Upgrades() {
		got, ok := s.Upgrade(u.ID)
		if !ok || got.ID != u.ID {
			t.Errorf("Upgrade(%q) lookup failed", u.ID)
		}
	}
}
