package game

import (
	"fmt"
	"sort"
	"strings"

	"cyber-rogue/assets"
	"cyber-rogue/internal/leaderboard"
	"cyber-rogue/internal/render"
)

// draw renders the current mode.
func (g *Game) draw() {
	g.screen.Clear()
	switch g.mode {
	case modeStart:
		g.drawStart()
	case modeDevTest:
		g.drawDevTest()
	case modePlaying:
		f := g.engine.Frame()
		g.renderer.DrawFrame(f.State, f.Preview)
		return
	case modeInventory:
		g.drawInventory()
	case modeStore:
		g.drawStore()
	case modeCodex:
		g.drawCodex()
	case modeLeaderboard:
		g.drawLeaderboard()
	case modeGameOver:
		g.drawGameOver()
	}
	g.screen.Show()
}

// killBreakdown formats kills as "glyph×count" pairs, most kills first.
func killBreakdown(kills map[string]int) (string, int) {
	type killEntry struct {
		id    string
		count int
	}
	var entries []killEntry
	total := 0
	for id, n := range kills {
		entries = append(entries, killEntry{id, n})
		total += n
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].id < entries[j].id
	})
	parts := make([]string, len(entries))
	for i, e := range entries {
		label := e.id
		if d, ok := assets.EnemyByCodex(e.id); ok {
			label = d.Glyph
		}
		parts[i] = fmt.Sprintf("%s×%d", label, e.count)
	}
	return strings.Join(parts, "  "), total
}

// drawGameOver renders the run summary, the name prompt and the board.
func (g *Game) drawGameOver() {
	rl := g.lastRun
	sw, _ := g.screen.Size()
	label := func(y int, l, v string) {
		render.DrawText(g.screen, 2, y, l, noticeStyle)
		render.DrawText(g.screen, 22, y, v, normalStyle)
	}

	y := 1
	g.hline(y)
	y += 2
	render.DrawText(g.screen, 2, y, "GAME OVER", badStyle)
	badge := "[" + strings.ToUpper(string(rl.Difficulty)) + "]"
	render.DrawText(g.screen, max(0, sw-len(badge)-1), y, badge, dimStyle)
	y += 2

	label(y, "Sector Reached:", fmt.Sprintf("%d  %s", rl.Level, assets.SectorName(rl.Level)))
	y++
	label(y, "Final Score:", fmt.Sprintf("%d", rl.Score))
	y++
	label(y, "Turns Survived:", fmt.Sprintf("%d", rl.Turns))
	y++
	kills, total := killBreakdown(rl.EnemiesKilled)
	label(y, "Enemies Slain:", fmt.Sprintf("%d", total))
	y++
	if kills != "" {
		render.DrawText(g.screen, 4, y, kills, dimStyle)
		y++
	}
	if rl.CauseOfDeath != "" {
		label(y, "Killed By:", rl.CauseOfDeath)
		y++
	}
	y++
	g.hline(y)
	y += 2

	switch {
	case !leaderboard.Eligible(rl.Difficulty):
		render.DrawText(g.screen, 2, y, "Scores are not saved in Test Mode.", dimStyle)
	case g.canSubmit():
		x := render.DrawText(g.screen, 2, y, "Name: ", normalStyle)
		render.DrawText(g.screen, x, y, g.nameInput+"_", highlightStyle)
		render.DrawText(g.screen, 2, y+1, "[Enter] Save Score   [Esc] Skip", dimStyle)
	case g.board != nil && !g.ranked:
		render.DrawText(g.screen, 2, y, "Your score did not make the top 10.", dimStyle)
	}
	if g.status != "" {
		render.DrawText(g.screen, 2, y+2, g.status, goodStyle)
	}
	y += 4

	if leaderboard.Eligible(rl.Difficulty) && g.board != nil {
		g.drawBoard(y)
		y += leaderboard.Capacity + 2
	}
	if !g.canSubmit() {
		render.DrawText(g.screen, 2, y, "[R] Restart", goodStyle)
		render.DrawText(g.screen, 18, y, "[Q] Quit", badStyle)
	}
}
