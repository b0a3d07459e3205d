package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/polarforge/santavors/internal/balance"
	"github.com/polarforge/santavors/internal/core"
	"github.com/polarforge/santavors/internal/game"
	"github.com/polarforge/santavors/internal/session"
)

func newLevelUpModel(t *testing.T) Model {
	t.Helper()
	cfg := core.RuntimeConfig{TickRate: 60, Seed: 42}
	g := game.New(cfg, balance.MustLoadDefault(), nil, nil, nil)
	g.SelectClass("santa")
	g.Commence()
	g.Session().AddXP(10000)
	g.Step(core.Frame{})
	if g.Session().State() != session.StateLevelUp {
		t.Fatalf("state = %v, want level_up", g.Session().State())
	}
	return NewModel(g, cfg)
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestLevelUpChoiceKeysApplyUpgrade(t *testing.T) {
	m := newLevelUpModel(t)
	want := m.game.Session().Run.UpgradeChoices[1].ID

	updated, _ := m.Update(keyRune('2'))
	m = updated.(Model)

	if got := m.game.Session().State(); got != session.StatePhase1 {
		t.Fatalf("state after choice = %v, want phase_1", got)
	}
	if m.game.Session().Run.ActiveUpgrades[want] != 1 {
		t.Fatalf("upgrade %q not applied: %v", want, m.game.Session().Run.ActiveUpgrades)
	}
}

func TestLevelUpIgnoresUnboundKeys(t *testing.T) {
	m := newLevelUpModel(t)

	updated, _ := m.Update(keyRune('x'))
	m = updated.(Model)

	if got := m.game.Session().State(); got != session.StateLevelUp {
		t.Fatalf("state = %v, want level_up to stay open", got)
	}
	if len(m.game.Session().Run.ActiveUpgrades) != 0 {
		t.Fatal("unbound key applied an upgrade")
	}
}
