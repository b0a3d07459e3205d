package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/polarforge/santavors/internal/balance"
	"github.com/polarforge/santavors/internal/core"
	"github.com/polarforge/santavors/internal/game"
	"github.com/polarforge/santavors/internal/session"
)

// Model is the Bubble Tea model driving one game. Input is collected into a
// frame between ticks and handed to the simulation on each TickMsg.
type Model struct {
	game   *game.Game
	config core.RuntimeConfig

	frame core.Frame
	keys  GameKeyMap
	help  help.Model

	classes  []balance.Class
	classIdx int

	width    int
	height   int
	quitting bool
}

// NewModel creates a Bubble Tea model for the given game.
func NewModel(g *game.Game, cfg core.RuntimeConfig) Model {
	return Model{
		game:    g,
		config:  cfg,
		keys:    DefaultGameKeyMap(),
		help:    help.New(),
		classes: g.Session().Balance().Classes(),
		width:   80,
		height:  24,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.game.Session().State() {
	case session.StateMenu:
		return m.handleMenuKey(msg)
	case session.StateBriefing:
		return m.handleBriefingKey(msg)
	case session.StateLevelUp:
		return m.handleLevelUpKey(msg)
	case session.StateWin, session.StateGameOver:
		if key.Matches(msg, m.keys.Restart) {
			m.game.Reset()
		}
		return m, nil
	}

	// In a phase: collect the frame for the next tick.
	switch {
	case key.Matches(msg, m.keys.Up):
		m.frame.MoveZ = -1
	case key.Matches(msg, m.keys.Down):
		m.frame.MoveZ = 1
	case key.Matches(msg, m.keys.Left):
		m.frame.MoveX = -1
	case key.Matches(msg, m.keys.Right):
		m.frame.MoveX = 1
	case key.Matches(msg, m.keys.Fire):
		m.frame.Fire = true
	case key.Matches(msg, m.keys.Pause):
		m.frame.Pause = true
	}
	return m, nil
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.classIdx > 0 {
			m.classIdx--
		}
	case key.Matches(msg, m.keys.Down):
		if m.classIdx < len(m.classes)-1 {
			m.classIdx++
		}
	case key.Matches(msg, m.keys.Confirm):
		if len(m.classes) > 0 {
			m.game.SelectClass(m.classes[m.classIdx].ID)
		}
	}
	return m, nil
}

func (m Model) handleBriefingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.game.Commence()
	case key.Matches(msg, m.keys.Back):
		m.game.Reset()
	}
	return m, nil
}

func (m Model) handleLevelUpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	choices := m.game.Session().Run.UpgradeChoices
	idx := -1
	switch {
	case key.Matches(msg, m.keys.Choice1):
		idx = 0
	case key.Matches(msg, m.keys.Choice2):
		idx = 1
	case key.Matches(msg, m.keys.Choice3):
		idx = 2
	}
	if idx >= 0 && idx < len(choices) {
		m.game.SelectUpgrade(choices[idx].ID)
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.game.Session().State().InPhase() || m.game.Session().State().Terminal() {
		m.game.Step(m.frame)
	}
	m.frame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// View renders the current state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.game.Snapshot()
	switch snap.State {
	case session.StateMenu:
		return m.renderMenu()
	case session.StateBriefing:
		return m.renderBriefing(snap)
	case session.StateLevelUp:
		return m.renderLevelUp(snap)
	case session.StateWin, session.StateGameOver:
		return m.renderTerminal(snap)
	default:
		return m.renderPlayfield(snap)
	}
}

// Run starts the Bubble Tea program over the given game.
func Run(g *game.Game, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(g, cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
