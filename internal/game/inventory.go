package game

import (
	"fmt"

	"cyber-rogue/assets"
	"cyber-rogue/internal/gamemap"
	"cyber-rogue/internal/render"
	"cyber-rogue/internal/state"
	"cyber-rogue/internal/system"

	"github.com/gdamore/tcell/v2"
)

// busyMessage is shown when an action arrives before the world has moved.
const busyMessage = "The world is still moving. Try again."

// rarityStyle colors item names by rarity.
func rarityStyle(r state.Rarity) tcell.Style {
	switch r {
	case state.Uncommon:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen)
	case state.Rare:
		return tcell.StyleDefault.Foreground(tcell.ColorDodgerBlue)
	case state.Epic:
		return tcell.StyleDefault.Foreground(tcell.ColorMediumPurple)
	case state.Legendary:
		return tcell.StyleDefault.Foreground(tcell.ColorOrange)
	}
	return normalStyle
}

// cursorKey moves the cursor for up/down style keys and reports whether ev
// was one.
func (g *Game) cursorKey(ev *tcell.EventKey, n int) bool {
	delta := 0
	switch ev.Key() {
	case tcell.KeyUp:
		delta = -1
	case tcell.KeyDown:
		delta = 1
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'k', 'w':
			delta = -1
		case 'j', 's':
			delta = 1
		}
	}
	if delta == 0 {
		return false
	}
	if n > 0 {
		g.cursor = (g.cursor + delta + n) % n
	}
	return true
}

// closeKey reports whether ev leaves an overlay; extra runes also close it.
func closeKey(ev *tcell.EventKey, extra ...rune) bool {
	if ev.Key() == tcell.KeyEscape {
		return true
	}
	if ev.Key() != tcell.KeyRune {
		return false
	}
	for _, r := range append(extra, 'q') {
		if ev.Rune() == r {
			return true
		}
	}
	return false
}

// ─── inventory ──────────────────────────────────────────────────────────────

func (g *Game) pack() []state.Item {
	if s := g.engine.State(); s != nil {
		return s.Player.Inventory
	}
	return nil
}

func (g *Game) handleInventory(ev *tcell.EventKey) {
	pack := g.pack()
	if closeKey(ev, 'i', 'I') {
		g.status = ""
		g.setMode(modePlaying)
		return
	}
	if g.cursorKey(ev, len(pack)) {
		return
	}
	if len(pack) == 0 {
		return
	}
	it := pack[min(g.cursor, len(pack)-1)]
	equip := ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && ev.Rune() == 'e')
	use := ev.Key() == tcell.KeyRune && ev.Rune() == 'u'
	gear := it.Kind == state.KindWeapon || it.Kind == state.KindArmor
	switch {
	case equip && !gear:
		g.status = "Press [u] to use consumables."
	case use && gear:
		g.status = "Press [e] to equip gear."
	case equip:
		g.act(g.engine.Equip(it.ID))
	case use:
		g.act(g.engine.Use(it.ID))
	}
}

// act reports the outcome of an admitted or rejected action on an overlay.
func (g *Game) act(ok bool) {
	if !ok {
		g.status = busyMessage
		return
	}
	g.status = g.engine.State().Log.Latest()
	g.cursor = max(0, min(g.cursor, len(g.pack())-1))
}

func (g *Game) drawInventory() {
	s := g.engine.State()
	if s == nil {
		return
	}
	p := s.Player
	sw, _ := g.screen.Size()
	mid := max(34, sw/2)

	render.DrawText(g.screen, 0, 0, fmt.Sprintf("INVENTORY  [Pack %d]", len(p.Inventory)), noticeStyle)
	g.drawHints("[j/k] Move  [e] Equip  [u] Use  [Esc] Close")
	g.hline(1)

	render.DrawText(g.screen, 0, 2, "── EQUIPPED ──────────────", normalStyle)
	slots := []struct {
		label  string
		item   *state.Item
		active bool
	}{
		{"MELEE ", p.Melee, p.ActiveSlot == state.Melee},
		{"RANGED", p.Ranged, p.ActiveSlot == state.Ranged},
		{"ARMOR ", p.Armor, false},
	}
	for i, slot := range slots {
		mark := "  "
		if slot.active {
			mark = "» "
		}
		text, style := "--", dimStyle
		if slot.item != nil {
			text, style = itemLine(*slot.item), rarityStyle(slot.item.Rarity)
		}
		x := render.DrawText(g.screen, 0, 3+i, mark+slot.label+" ", normalStyle)
		render.DrawText(g.screen, x, 3+i, text, style)
	}
	render.DrawText(g.screen, 0, 7, fmt.Sprintf("  ATK %d  DEF %d  HP %d/%d", p.Attack, p.Defense, p.Health, p.MaxHealth), tcell.StyleDefault.Foreground(tcell.ColorAqua))

	render.DrawText(g.screen, mid, 2, "── PACK ──────────────────", normalStyle)
	g.drawItemList(mid, 3, p.Inventory, func(it state.Item) string { return itemLine(it) })

	g.hline(14)
	if g.status != "" {
		render.DrawText(g.screen, 0, 15, g.status, goodStyle)
	}
}

// itemLine is the one-line description of an item.
func itemLine(it state.Item) string {
	var stat string
	switch it.Kind {
	case state.KindWeapon:
		stat = fmt.Sprintf(" ATK+%d %s", it.Value, it.Weapon)
	case state.KindArmor:
		stat = fmt.Sprintf(" DEF+%d", it.Value)
	case state.KindPotion:
		stat = fmt.Sprintf(" +%d HP", it.Value)
	case state.KindBuff:
		stat = fmt.Sprintf(" +%d %s", it.Value, it.Buff)
	}
	return fmt.Sprintf("%s %s%s", assets.ItemGlyph(it), it.Name, stat)
}

// drawItemList draws items from (x, y) with the cursor row highlighted.
func (g *Game) drawItemList(x, y int, items []state.Item, line func(state.Item) string) {
	if len(items) == 0 {
		render.DrawText(g.screen, x, y, "  (empty)", dimStyle)
		return
	}
	for i, it := range items {
		if y+i >= 13 {
			render.DrawText(g.screen, x, y+i, fmt.Sprintf("  … %d more", len(items)-i), dimStyle)
			return
		}
		style, prefix := rarityStyle(it.Rarity), "  "
		if i == g.cursor {
			style, prefix = highlightStyle, "► "
		}
		render.DrawText(g.screen, x, y+i, prefix+line(it), style)
	}
}

// ─── store ──────────────────────────────────────────────────────────────────

const (
	panelBuy = iota
	panelSell
)

func (g *Game) handleStore(ev *tcell.EventKey) {
	if closeKey(ev, 'b', 'B') {
		g.status = ""
		g.setMode(modePlaying)
		return
	}
	if ev.Key() == tcell.KeyTab || ev.Key() == tcell.KeyBacktab {
		g.panel = 1 - g.panel
		g.cursor = 0
		return
	}
	stock, pack := g.engine.Stock(), g.pack()
	n := len(stock)
	if g.panel == panelSell {
		n = len(pack)
	}
	if g.cursorKey(ev, n) || n == 0 {
		return
	}
	if ev.Key() != tcell.KeyEnter {
		return
	}
	i := min(g.cursor, n-1)
	if g.panel == panelBuy {
		g.act(g.engine.Buy(stock[i]))
	} else {
		g.act(g.engine.Sell(pack[i].ID))
	}
}

func (g *Game) drawStore() {
	s := g.engine.State()
	if s == nil {
		return
	}
	sw, _ := g.screen.Size()
	mid := max(34, sw/2)

	render.DrawText(g.screen, 0, 0, fmt.Sprintf("BLACK MARKET  [Credits ¢%d]", s.Player.Gold), noticeStyle)
	g.drawHints("[j/k] Move  [Tab] Buy/Sell  [Enter] Trade  [Esc] Close")
	g.hline(1)

	buyStyle, sellStyle := normalStyle, normalStyle
	if g.panel == panelBuy {
		buyStyle = highlightStyle
	} else {
		sellStyle = highlightStyle
	}
	render.DrawText(g.screen, 0, 2, " BUY ", buyStyle)
	render.DrawText(g.screen, mid, 2, " SELL ", sellStyle)

	stock := g.engine.Stock()
	offers := make([]state.Item, len(stock))
	prices := make(map[string]int, len(stock))
	for i, d := range stock {
		offers[i] = d.Instance(d.CodexID, gamemap.Held)
		prices[d.CodexID] = system.Price(d)
	}
	buyLine := func(it state.Item) string { return fmt.Sprintf("%s  ¢%d", itemLine(it), prices[it.CodexID]) }
	sellLine := func(it state.Item) string { return fmt.Sprintf("%s  ¢%d", itemLine(it), system.SellPrice(it)) }

	if g.panel == panelBuy {
		g.drawItemList(0, 3, offers, buyLine)
		g.drawPlainList(mid, 3, s.Player.Inventory, sellLine)
	} else {
		g.drawPlainList(0, 3, offers, buyLine)
		g.drawItemList(mid, 3, s.Player.Inventory, sellLine)
	}

	g.hline(14)
	if g.status != "" {
		render.DrawText(g.screen, 0, 15, g.status, goodStyle)
	}
}

// drawPlainList draws the inactive store panel without a cursor.
func (g *Game) drawPlainList(x, y int, items []state.Item, line func(state.Item) string) {
	if len(items) == 0 {
		render.DrawText(g.screen, x, y, "  (empty)", dimStyle)
		return
	}
	for i, it := range items {
		if y+i >= 13 {
			return
		}
		render.DrawText(g.screen, x, y+i, "  "+line(it), rarityStyle(it.Rarity))
	}
}

// ─── shared chrome ──────────────────────────────────────────────────────────

func (g *Game) hline(y int) {
	w, _ := g.screen.Size()
	for x := 0; x < w; x++ {
		g.screen.SetContent(x, y, '─', nil, dimStyle)
	}
}

func (g *Game) drawHints(hints string) {
	w, _ := g.screen.Size()
	if n := len([]rune(hints)); n < w {
		render.DrawText(g.screen, w-n, 0, hints, dimStyle)
	}
}
