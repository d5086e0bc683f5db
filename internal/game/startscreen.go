package game

import (
	"fmt"
	"strconv"
	"strings"

	"cyber-rogue/assets"
	"cyber-rogue/internal/render"
	"cyber-rogue/internal/state"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// titleRow is the screen row of the start screen title.
const titleRow = 1

// devUnlockClicks is how many title clicks reveal the developer test entry.
const devUnlockClicks = 5

var (
	titleStyle     = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	normalStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dimStyle       = tcell.StyleDefault.Foreground(tcell.ColorGray)
	highlightStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorAqua)
	noticeStyle    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	goodStyle      = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	badStyle       = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// menuEntry is one choice on the start screen.
type menuEntry struct {
	label string
	desc  string
	pick  func(g *Game)
}

// startMenu lists the start screen choices. Continue only appears when a
// save exists and Developer Test only once unlocked.
func (g *Game) startMenu() []menuEntry {
	var items []menuEntry
	if g.engine.HasSave() {
		items = append(items, menuEntry{"Continue Saved Run", "Resume from your last save.", (*Game).continueRun})
	}
	items = append(items,
		menuEntry{"Easy", "More credits, weaker enemies. A more forgiving experience.", func(g *Game) { g.start(state.Easy, 1) }},
		menuEntry{"Difficult", "The standard, balanced experience.", func(g *Game) { g.start(state.Difficult, 1) }},
		menuEntry{"Hard", "Increased number of stronger hostile threats. For veterans.", func(g *Game) { g.start(state.Hard, 1) }},
		menuEntry{"Enter Training Sector", "Learn the controls on a guided level.", func(g *Game) { g.start(state.Test, state.TutorialLevel) }},
		menuEntry{"Leaderboards", "Top runs per difficulty.", func(g *Game) {
			g.setMode(modeLeaderboard)
			g.loadBoard(g.boardDiff)
		}},
	)
	if g.titleClicks >= devUnlockClicks {
		items = append(items, menuEntry{"Developer Test", "Start on any sector with a test loadout.", func(g *Game) {
			g.devLevel = "1"
			g.setMode(modeDevTest)
		}})
	}
	return append(items, menuEntry{"Quit", "", func(g *Game) { g.quit = true }})
}

func (g *Game) start(d state.Difficulty, level int) {
	g.engine.StartRun(d, level)
	g.status = ""
	g.setMode(modePlaying)
}

func (g *Game) continueRun() {
	if g.engine.LoadRun() {
		g.status = ""
		g.setMode(modePlaying)
		return
	}
	g.status = g.engine.Notice()
	if g.status == "" {
		g.status = "No saved run found."
	}
	g.cursor = 0
}

func (g *Game) clickTitle() { g.titleClicks++ }

func (g *Game) handleStart(ev *tcell.EventKey) {
	items := g.startMenu()
	switch ev.Key() {
	case tcell.KeyUp:
		g.cursor = (g.cursor - 1 + len(items)) % len(items)
	case tcell.KeyDown:
		g.cursor = (g.cursor + 1) % len(items)
	case tcell.KeyEnter:
		items[min(g.cursor, len(items)-1)].pick(g)
	case tcell.KeyEscape:
		g.quit = true
	case tcell.KeyRune:
		switch r := ev.Rune(); {
		case r == 'k' || r == 'w':
			g.cursor = (g.cursor - 1 + len(items)) % len(items)
		case r == 'j' || r == 's':
			g.cursor = (g.cursor + 1) % len(items)
		case r == 'Q':
			g.quit = true
		case r >= '1' && r <= '9':
			if idx := int(r - '1'); idx < len(items) {
				g.cursor = idx
				items[idx].pick(g)
			}
		}
	}
}

func (g *Game) handleDevTest(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		g.setMode(modeStart)
	case tcell.KeyEnter:
		level, err := strconv.Atoi(g.devLevel)
		if err != nil || level < 1 {
			g.status = "Enter a sector number of 1 or more."
			return
		}
		g.start(state.Test, level)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if n := len(g.devLevel); n > 0 {
			g.devLevel = g.devLevel[:n-1]
		}
	case tcell.KeyRune:
		if r := ev.Rune(); r >= '0' && r <= '9' && len(g.devLevel) < 4 {
			g.devLevel += string(r)
		}
	}
}

// leaderboardTabs are the difficulties with a leaderboard.
var leaderboardTabs = []state.Difficulty{state.Easy, state.Difficult, state.Hard}

func (g *Game) handleLeaderboard(ev *tcell.EventKey) {
	step := 0
	switch ev.Key() {
	case tcell.KeyEscape:
		g.setMode(modeStart)
	case tcell.KeyLeft, tcell.KeyBacktab:
		step = -1
	case tcell.KeyRight, tcell.KeyTab:
		step = 1
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.setMode(modeStart)
		case 'a', 'h':
			step = -1
		case 'd', 'l':
			step = 1
		}
	}
	if step == 0 {
		return
	}
	i := 0
	for j, d := range leaderboardTabs {
		if d == g.boardDiff {
			i = j
		}
	}
	g.loadBoard(leaderboardTabs[(i+step+len(leaderboardTabs))%len(leaderboardTabs)])
}

// ─── drawing ────────────────────────────────────────────────────────────────

func (g *Game) centerText(y int, text string, style tcell.Style) {
	w, _ := g.screen.Size()
	x := max(0, (w-runewidth.StringWidth(text))/2)
	render.DrawText(g.screen, x, y, text, style)
}

func (g *Game) drawStart() {
	g.centerText(titleRow, "CYBER ROGUE", titleStyle)
	g.centerText(titleRow+1, "Descend into the neon-drenched sectors of a rogue AI.", dimStyle)
	y := titleRow + 3
	for _, line := range strings.Split(assets.LoreOpening, "\n") {
		g.centerText(y, line, dimStyle)
		y++
	}
	y++

	items := g.startMenu()
	for i, it := range items {
		style, prefix := normalStyle, "  "
		if i == g.cursor {
			style, prefix = highlightStyle, "► "
		}
		render.DrawText(g.screen, 4, y, fmt.Sprintf("%s[%d] %s", prefix, i+1, it.label), style)
		if it.desc != "" {
			render.DrawText(g.screen, 10, y+1, it.desc, dimStyle)
		}
		y += 2
	}
	if g.status != "" {
		g.centerText(y+1, g.status, noticeStyle)
	}
	g.centerText(y+3, "[j/k or ↑/↓] Navigate   [1-9] Quick-select   [Enter] Confirm   [Esc] Quit", dimStyle)
}

func (g *Game) drawDevTest() {
	g.centerText(titleRow, "Developer Test", titleStyle)
	g.centerText(titleRow+2, "Enter Starting Sector", normalStyle)
	g.centerText(titleRow+4, "[ "+g.devLevel+"_ ]", highlightStyle)
	if g.status != "" {
		g.centerText(titleRow+6, g.status, noticeStyle)
	}
	g.centerText(titleRow+8, "[Enter] Deploy   [Esc] Back", dimStyle)
}

func (g *Game) drawLeaderboard() {
	g.centerText(titleRow, "LEADERBOARDS", titleStyle)
	x := 4
	for _, d := range leaderboardTabs {
		style := dimStyle
		if d == g.boardDiff {
			style = highlightStyle
		}
		x = render.DrawText(g.screen, x, titleRow+2, " "+strings.ToUpper(string(d))+" ", style) + 2
	}
	g.drawBoard(titleRow + 4)
	g.centerText(titleRow+17, "[←/→ or Tab] Difficulty   [Esc] Back", dimStyle)
}

// drawBoard lists the cached top entries from row y.
func (g *Game) drawBoard(y int) {
	if len(g.topEntries) == 0 {
		render.DrawText(g.screen, 4, y, "No scores yet.", dimStyle)
		return
	}
	render.DrawText(g.screen, 4, y, fmt.Sprintf("%-4s %-12s %8s %7s", "#", "NAME", "SCORE", "SECTOR"), dimStyle)
	for i, e := range g.topEntries {
		render.DrawText(g.screen, 4, y+1+i, fmt.Sprintf("%-4d %-12s %8d %7d", i+1, e.Name, e.Score, e.Level), normalStyle)
	}
}
