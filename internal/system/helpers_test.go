package system

import (
	"cyber-rogue/internal/gamemap"
	"cyber-rogue/internal/state"

	"github.com/zyedidia/generic/mapset"
)

// openGrid returns a w×h grid with a wall border and floor inside.
func openGrid(w, h int) *gamemap.Grid {
	g := gamemap.NewGrid(w, h)
	g.CarveRoom(gamemap.Rect{X: 0, Y: 0, W: w - 1, H: h - 1})
	return g
}

// newTestState returns a playing level-1 state on an open 20×11 grid with
// the player at (1,5).
func newTestState() *state.GameState {
	g := openGrid(20, 11)
	return &state.GameState{
		Grid:   g,
		Status: state.StatusPlaying,
		Level:  1,
		Player: state.Player{
			Pos:        gamemap.Pos{X: 1, Y: 5},
			Health:     100,
			MaxHealth:  100,
			BaseAttack: PlayerBaseAttack,
			Level:      1,
			XPToNext:   100,
			ActiveSlot: state.Melee,
		},
		Visible:           mapset.New[int](),
		Visited:           make([]bool, g.Cells()),
		DiscoveredItems:   mapset.New[string](),
		DiscoveredEnemies: mapset.New[string](),
	}
}

func enemyAt(id string, x, y, health, attack int) state.Enemy {
	return state.Enemy{
		ID:        id,
		CodexID:   "ganger",
		Name:      "Street Ganger",
		Pos:       gamemap.Pos{X: x, Y: y},
		Health:    health,
		MaxHealth: health,
		Attack:    attack,
		Rank:      state.RankNormal,
	}
}
