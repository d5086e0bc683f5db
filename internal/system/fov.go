package system

import (
	"math"

	"cyber-rogue/internal/gamemap"
	"cyber-rogue/internal/state"

	"github.com/zyedidia/generic/mapset"
)

// rayStep is the angular increment between rays, in radians (about 1 degree).
const rayStep = 0.01745

// ComputeVisible sweeps 360 rays from the center of origin and returns the
// packed indices of every cell they enter. Each ray advances one unit per step
// for radius steps and stops after entering a wall, which is itself visible.
// The origin is always visible.
//
// This is a ray sweep, not exact shadowcasting: a wall can hide slightly more
// or less than a precise cast would.
func ComputeVisible(g *gamemap.Grid, origin gamemap.Pos, radius int) mapset.Set[int] {
	visible := mapset.New[int]()
	if g.InBounds(origin.X, origin.Y) {
		visible.Put(g.Index(origin))
	}
	for i := 0; i < 360; i++ {
		dx := math.Cos(float64(i) * rayStep)
		dy := math.Sin(float64(i) * rayStep)
		ox := float64(origin.X) + 0.5
		oy := float64(origin.Y) + 0.5
		for j := 0; j < radius; j++ {
			tx, ty := int(math.Floor(ox)), int(math.Floor(oy))
			if g.InBounds(tx, ty) {
				visible.Put(ty*g.Width + tx)
				if g.At(tx, ty).Opaque() {
					break
				}
			}
			ox += dx
			oy += dy
		}
	}
	return visible
}

// RefreshVisibility recomputes the visible set around the player, grows the
// visited map, records newly seen codex entries and latches stairs discovery.
// An invisible player sees only their own cell and discovers nothing.
func RefreshVisibility(s *state.GameState, radius int) {
	pos := s.Player.Pos
	if s.Player.HasBuff(state.BuffInvisibility) {
		self := mapset.New[int]()
		self.Put(s.Grid.Index(pos))
		s.Visible = self
		return
	}

	visible := ComputeVisible(s.Grid, pos, radius)
	s.Visible = visible
	visible.Each(func(i int) { s.Visited[i] = true })

	for _, it := range s.Items {
		if s.IsVisible(it.Pos) {
			s.DiscoveredItems.Put(it.CodexID)
		}
	}
	for _, e := range s.Enemies {
		if s.IsVisible(e.Pos) {
			s.DiscoveredEnemies.Put(e.CodexID)
		}
	}
	if s.Stairs != nil && s.IsVisible(*s.Stairs) {
		s.StairsDiscovered = true
	}
}
