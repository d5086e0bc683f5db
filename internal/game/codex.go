package game

import (
	"fmt"

	"cyber-rogue/assets"
	"cyber-rogue/internal/render"
	"cyber-rogue/internal/state"

	"github.com/gdamore/tcell/v2"
)

const (
	tabItems = iota
	tabEnemies
)

// codexEntry is one row of the codex, hidden until discovered.
type codexEntry struct {
	id     string
	name   string
	detail string
	rarity state.Rarity
	known  bool
}

// codexEntries lists every weapon and armor piece, or every enemy outside
// the training sector, marking what s has discovered.
func codexEntries(s *state.GameState, tab int) []codexEntry {
	var out []codexEntry
	if tab == tabEnemies {
		for _, d := range assets.Enemies {
			if d.Rank == state.RankTraining {
				continue
			}
			out = append(out, codexEntry{
				id:     d.CodexID,
				name:   d.Glyph + " " + d.Name,
				detail: fmt.Sprintf("Rank: %s  HP %d  ATK %d", d.Rank, d.BaseHealth, d.BaseAttack),
				known:  s.DiscoveredEnemies.Has(d.CodexID),
			})
		}
		return out
	}
	for _, set := range [][]assets.ItemDef{assets.Weapons, assets.Armor} {
		for _, d := range set {
			detail := fmt.Sprintf("Type: %s, Tier: %d  Base DEF: %d", d.Kind, d.Tier, d.Value)
			if d.Kind == state.KindWeapon {
				detail = fmt.Sprintf("Type: %s, Tier: %d  Base ATK: %d, Class: %s", d.Kind, d.Tier, d.Value, d.Weapon)
			}
			out = append(out, codexEntry{
				id:     d.CodexID,
				name:   d.Name,
				detail: detail,
				rarity: d.Rarity,
				known:  s.DiscoveredItems.Has(d.CodexID),
			})
		}
	}
	return out
}

func (g *Game) handleCodex(ev *tcell.EventKey) {
	s := g.engine.State()
	if closeKey(ev, 'c', 'C') || s == nil {
		g.setMode(modePlaying)
		return
	}
	if ev.Key() == tcell.KeyTab || ev.Key() == tcell.KeyBacktab {
		g.panel = 1 - g.panel
		g.cursor = 0
		return
	}
	g.cursorKey(ev, len(codexEntries(s, g.panel)))
}

func (g *Game) drawCodex() {
	s := g.engine.State()
	if s == nil {
		return
	}
	_, sh := g.screen.Size()
	items, enemies := codexEntries(s, tabItems), codexEntries(s, tabEnemies)

	render.DrawText(g.screen, 0, 0, "CODEX", noticeStyle)
	g.drawHints("[j/k] Move  [Tab] Items/Enemies  [Esc] Close")
	g.hline(1)
	itemTab, enemyTab := highlightStyle, dimStyle
	entries := items
	if g.panel == tabEnemies {
		itemTab, enemyTab = dimStyle, highlightStyle
		entries = enemies
	}
	x := render.DrawText(g.screen, 0, 2, fmt.Sprintf(" ITEMS (%d) ", s.DiscoveredItems.Size()), itemTab)
	render.DrawText(g.screen, x+2, 2, fmt.Sprintf(" ENEMIES (%d) ", s.DiscoveredEnemies.Size()), enemyTab)

	// Scroll so the cursor stays on screen above the lore pane.
	rows := max(1, sh-10)
	first := max(0, g.cursor-rows+1)
	for i := first; i < len(entries) && i-first < rows; i++ {
		e := entries[i]
		name, style := "?????", dimStyle
		if e.known {
			name, style = e.name, rarityStyle(e.rarity)
		}
		prefix := "  "
		if i == g.cursor {
			prefix, style = "► ", highlightStyle
		}
		render.DrawText(g.screen, 0, 4+i-first, prefix+name, style)
	}

	g.hline(sh - 5)
	if g.cursor < len(entries) && entries[g.cursor].known {
		e := entries[g.cursor]
		render.DrawText(g.screen, 0, sh-4, e.detail, normalStyle)
		render.DrawText(g.screen, 0, sh-3, assets.Lore[e.id], dimStyle)
	}
}
