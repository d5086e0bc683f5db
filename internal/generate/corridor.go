package generate

import "cyber-rogue/internal/gamemap"

// carveCorridor digs an L-shaped tunnel between two room centers, bending
// at a random corner.
func carveCorridor(g *gamemap.Grid, from, to gamemap.Pos, cfg Config) {
	if cfg.Rand.Float64() > 0.5 {
		g.CarveH(from.X, to.X, from.Y)
		g.CarveV(from.Y, to.Y, to.X)
	} else {
		g.CarveV(from.Y, to.Y, from.X)
		g.CarveH(from.X, to.X, to.Y)
	}
}
