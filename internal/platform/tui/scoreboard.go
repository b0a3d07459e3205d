package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/polarforge/santavors/internal/storage"
)

const maxRuns = 100

// ScoreboardKeyMap defines the key bindings for the run history view.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows the best runs as a scrollable table.
type ScoreboardModel struct {
	table    table.Model
	keys     ScoreboardKeyMap
	help     help.Model
	quitting bool
}

// NewScoreboardModel builds the model from stored runs.
func NewScoreboardModel(store *storage.Store) (ScoreboardModel, error) {
	runs, err := store.TopRuns(maxRuns)
	if err != nil {
		return ScoreboardModel{}, err
	}

	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Class", Width: 10},
		{Title: "Score", Width: 8},
		{Title: "Kills", Width: 6},
		{Title: "Wave", Width: 5},
		{Title: "Time", Width: 6},
		{Title: "Streak", Width: 7},
		{Title: "Boss", Width: 5},
		{Title: "Date", Width: 16},
	}

	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		boss := ""
		if r.BossDefeated {
			boss = "yes"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			r.ClassID,
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Kills),
			fmt.Sprintf("%d", r.Wave),
			fmt.Sprintf("%ds", r.DurationSecs),
			fmt.Sprintf("%d", r.StreakPeak),
			boss,
			r.CreatedAt.Format("2006-01-02 15:04"),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.Bold(true).Foreground(lipgloss.Color("9"))
	st.Selected = st.Selected.Foreground(lipgloss.Color("10")).Bold(true)
	t.SetStyles(st)

	return ScoreboardModel{
		table: t,
		keys:  DefaultScoreboardKeyMap(),
		help:  help.New(),
	}, nil
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd { return nil }

// Update handles scrolling and quitting.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && key.Matches(kmsg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// RunScoreboard starts a Bubble Tea program over the scoreboard model and
// blocks until the user quits.
func RunScoreboard(m ScoreboardModel) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// View renders the table.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")).Render("BEST RUNS")
	return title + "\n\n" + m.table.View() + "\n" + m.help.View(m.keys)
}
