package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/polarforge/santavors/internal/balance"
	"github.com/polarforge/santavors/internal/game"
	"github.com/polarforge/santavors/internal/session"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	hudStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	hpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	playerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	enemyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	bossStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	bulletStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	obstacleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	winStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	loseStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	rarityStyles = map[balance.Rarity]lipgloss.Style{
		balance.RarityCommon:    lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		balance.RarityRare:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		balance.RarityEpic:      lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		balance.RarityLegendary: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	}
)

func (m Model) renderMenu() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("SANTAVORS") + "\n")
	sb.WriteString(dimStyle.Render("Choose your champion") + "\n\n")

	for i, c := range m.classes {
		line := fmt.Sprintf("  %s  HP %.0f  SPD %.0f  ROF %.1f  DMG %.0f", c.Name, c.HP, c.Speed, c.ROF, c.Damage)
		if i == m.classIdx {
			sb.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			sb.WriteString("  " + line + "\n")
		}
	}

	sb.WriteString("\n" + m.help.View(m.keys))
	return sb.String()
}

func (m Model) renderBriefing(snap game.Snapshot) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("MISSION BRIEFING") + "\n\n")
	sb.WriteString(snap.Briefing + "\n\n")
	sb.WriteString(dimStyle.Render("enter: commence  esc: back"))
	return sb.String()
}

func (m Model) renderLevelUp(snap game.Snapshot) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("LEVEL %d!", snap.Level)) + "\n")
	sb.WriteString(dimStyle.Render("Pick an upgrade") + "\n\n")

	for i, u := range snap.Choices {
		style, ok := rarityStyles[u.Rarity]
		if !ok {
			style = rarityStyles[balance.RarityCommon]
		}
		stacks := ""
		if n := snap.Upgrades[u.ID]; n > 0 {
			stacks = fmt.Sprintf(" (stack %d/%d)", n+1, u.MaxStacks)
		}
		sb.WriteString(style.Render(fmt.Sprintf("  %d. %s%s", i+1, u.Name, stacks)) + "\n")
		sb.WriteString(dimStyle.Render("     "+describeStats(u.Stats)) + "\n")
	}

	sb.WriteString("\n" + dimStyle.Render("1-3: choose"))
	return sb.String()
}

func (m Model) renderTerminal(snap game.Snapshot) string {
	var sb strings.Builder
	if snap.State == session.StateWin {
		sb.WriteString(winStyle.Render("CHRISTMAS IS SAVED") + "\n\n")
	} else {
		sb.WriteString(loseStyle.Render("THE HOLIDAY FALLS") + "\n\n")
	}
	sb.WriteString(fmt.Sprintf("Score     %d\n", snap.Score))
	sb.WriteString(fmt.Sprintf("Kills     %d\n", snap.Kills))
	sb.WriteString(fmt.Sprintf("Wave      %d\n", snap.Wave))
	sb.WriteString(fmt.Sprintf("Survived  %.0fs\n", snap.TimeSurvived))
	sb.WriteString(fmt.Sprintf("Nice Pts  %d\n", snap.NicePoints))
	sb.WriteString("\n" + dimStyle.Render("r: play again  q: quit"))
	return sb.String()
}

// renderPlayfield draws the world on a character grid with the camera locked
// to the player. Two world units per column keeps the aspect roughly square
// in most terminal fonts.
func (m Model) renderPlayfield(snap game.Snapshot) string {
	w, h := m.width, m.height-3
	if w < 20 {
		w = 20
	}
	if h < 10 {
		h = 10
	}

	const cellW, cellH = 1.0, 2.0
	grid := make([][]rune, h)
	for y := range grid {
		grid[y] = make([]rune, w)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}
	styles := map[[2]int]lipgloss.Style{}

	// World to screen, camera on the player.
	project := func(wx, wz float64) (int, int, bool) {
		x := w/2 + int((wx-snap.PlayerPos.X)/cellW)
		y := h/2 + int((wz-snap.PlayerPos.Z)/cellH)
		return x, y, x >= 0 && x < w && y >= 0 && y < h
	}
	put := func(wx, wz float64, r rune, st lipgloss.Style) {
		if x, y, ok := project(wx, wz); ok {
			grid[y][x] = r
			styles[[2]int{x, y}] = st
		}
	}

	for _, o := range snap.Obstacles {
		put(o.Pos.X, o.Pos.Z, '#', obstacleStyle)
	}
	for _, b := range snap.Bullets {
		put(b.Pos.X, b.Pos.Z, '*', bulletStyle)
	}
	for _, e := range snap.Enemies {
		r, st := 'o', enemyStyle
		if e.Boss {
			r, st = 'B', bossStyle
		}
		put(e.Pos.X, e.Pos.Z, r, st)
	}
	put(snap.PlayerPos.X, snap.PlayerPos.Z, '@', playerStyle)

	var sb strings.Builder
	sb.WriteString(m.renderHUD(snap) + "\n")
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r := grid[y][x]
			if st, ok := styles[[2]int{x, y}]; ok {
				sb.WriteString(st.Render(string(r)))
			} else {
				sb.WriteRune(r)
			}
		}
		sb.WriteRune('\n')
	}
	sb.WriteString(m.renderStatusLine(snap))
	return sb.String()
}

func (m Model) renderHUD(snap game.Snapshot) string {
	hp := hpBar(snap.PlayerHP, snap.MaxHP, 20)
	line := fmt.Sprintf("%s %s  Score %d  Wave %d  Lv %d  XP %d/%d  NP %d",
		hpStyle.Render(hp),
		hudStyle.Render(fmt.Sprintf("%.0f/%.0f", snap.PlayerHP, snap.MaxHP)),
		snap.Score, snap.Wave, snap.Level, snap.XP, snap.XPToNext, snap.NicePoints)
	if snap.StreakTier != "" {
		line += "  " + titleStyle.Render(fmt.Sprintf("%s x%d", strings.ToUpper(string(snap.StreakTier)), snap.StreakCount))
	}
	if snap.State == session.StatePhaseBoss {
		line += "  " + bossStyle.Render("BOSS")
	}
	return line
}

func (m Model) renderStatusLine(snap game.Snapshot) string {
	if m.game.Paused() {
		return titleStyle.Render("PAUSED") + dimStyle.Render("  p: resume  q: quit")
	}
	return dimStyle.Render(fmt.Sprintf("%.0fs  wasd: move  space: fire  p: pause", snap.TimeSurvived))
}

var statLabels = map[string]string{
	balance.StatMaxHP:  "max HP",
	balance.StatSpeed:  "speed",
	balance.StatROF:    "rate of fire",
	balance.StatDamage: "damage",
}

func describeStats(deltas []balance.StatDelta) string {
	parts := make([]string, 0, len(deltas))
	for _, d := range deltas {
		label, ok := statLabels[d.Stat]
		if !ok {
			label = d.Stat
		}
		if d.Kind == balance.Percent {
			parts = append(parts, fmt.Sprintf("%+.0f%% %s", d.Amount, label))
		} else {
			parts = append(parts, fmt.Sprintf("%+.0f %s", d.Amount, label))
		}
	}
	return strings.Join(parts, ", ")
}

func hpBar(hp, max float64, width int) string {
	if max <= 0 {
		return strings.Repeat("░", width)
	}
	filled := int(hp / max * float64(width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
