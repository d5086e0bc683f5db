package render

import (
	"fmt"
	"strings"

	"cyber-rogue/assets"
	"cyber-rogue/internal/state"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// messageRows is how many of the newest log messages the HUD shows.
const messageRows = 3

// DrawHUD renders the status bar and message log at the bottom of the screen.
func (r *Renderer) DrawHUD(s *state.GameState) {
	_, screenH := r.screen.Size()
	hudY := screenH - HUDHeight
	p := s.Player

	r.drawHLine(hudY, styleSeparator)

	hpStyle := styleStatus
	if float64(p.Health) < float64(p.MaxHealth)*lowHealth {
		hpStyle = styleLowHealth
	}
	hp := fmt.Sprintf("HP: %d/%d", p.Health, p.MaxHealth)
	col := r.drawText(0, hudY+1, hp, hpStyle)
	status := fmt.Sprintf("  ATK:%d DEF:%d  LVL:%d XP:%d/%d  ¢%d  Sector %d  %s",
		p.Attack, p.Defense, p.Level, p.XP, p.XPToNext, p.Gold, s.Level, assets.SectorName(s.Level))
	r.drawText(col, hudY+1, status, styleStatus)

	col = r.drawText(0, hudY+2, gearLine(p), styleGear)
	if s.Targeting {
		r.drawText(col+2, hudY+2, " TARGETING ", styleTargeting)
	}

	if s.Tutorial != nil && s.Tutorial.Hint != "" {
		r.drawText(0, hudY+3, "» "+s.Tutorial.Hint, styleHint)
	}

	msgs := s.Log.Entries()
	for i := 0; i < messageRows && i < len(msgs); i++ {
		style := styleOlder
		if i == 0 {
			style = styleNewest
		}
		r.drawText(0, hudY+4+i, msgs[i], style)
	}
}

// gearLine describes the weapons, armor and running buffs. The active
// weapon is bracketed.
func gearLine(p state.Player) string {
	name := func(it *state.Item) string {
		if it == nil {
			return "none"
		}
		return it.Name
	}
	melee, ranged := name(p.Melee), name(p.Ranged)
	if p.ActiveSlot == state.Ranged {
		ranged = "[" + ranged + "]"
	} else {
		melee = "[" + melee + "]"
	}
	line := fmt.Sprintf("Melee: %s  Ranged: %s  Armor: %s", melee, ranged, name(p.Armor))
	if len(p.Buffs) > 0 {
		buffs := make([]string, len(p.Buffs))
		for i, b := range p.Buffs {
			buffs[i] = fmt.Sprintf("%s(%d)", b.Kind, b.TurnsRemaining)
		}
		line += "  Buffs: " + strings.Join(buffs, " ")
	}
	return line
}

func (r *Renderer) drawHLine(y int, style tcell.Style) {
	w, _ := r.screen.Size()
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

// drawText writes text from column x, truncated to the screen width, and
// returns the column after the last cell written.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) int {
	w, _ := r.screen.Size()
	if x >= w {
		return x
	}
	return DrawText(r.screen, x, y, runewidth.Truncate(text, w-x, "…"), style)
}

// DrawText writes text at (x, y), advancing by each rune's display width.
// It returns the column after the last cell written.
func DrawText(screen tcell.Screen, x, y int, text string, style tcell.Style) int {
	col := x
	for _, ch := range text {
		cw := runewidth.RuneWidth(ch)
		if cw == 0 {
			continue
		}
		screen.SetContent(col, y, ch, nil, style)
		col += cw
	}
	return col
}
