package generate

import (
	"testing"

	"cyber-rogue/internal/gamemap"
	"cyber-rogue/internal/random"
)

func TestCarveCorridorBends(t *testing.T) {
	from := gamemap.Pos{X: 3, Y: 3}
	to := gamemap.Pos{X: 10, Y: 8}
	tests := []struct {
		name   string
		roll   float64
		corner gamemap.Pos
		unused gamemap.Pos
	}{
		{"horizontal first", 0.9, gamemap.Pos{X: 10, Y: 3}, gamemap.Pos{X: 3, Y: 8}},
		{"vertical first", 0.2, gamemap.Pos{X: 3, Y: 8}, gamemap.Pos{X: 10, Y: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gamemap.NewGrid(20, 12)
			carveCorridor(g, from, to, Config{Rand: random.NewSequence(tt.roll)})

			if !g.IsWalkable(tt.corner.X, tt.corner.Y) {
				t.Errorf("corner %v not carved", tt.corner)
			}
			if g.IsWalkable(tt.unused.X, tt.unused.Y) {
				t.Errorf("other corner %v should stay wall", tt.unused)
			}
			seen := reachable(g, from)
			if !seen[g.Index(to)] {
				t.Error("corridor does not connect its endpoints")
			}
		})
	}
}

func TestCarveCorridorExactHalfBendsVertically(t *testing.T) {
	g := gamemap.NewGrid(20, 12)
	carveCorridor(g, gamemap.Pos{X: 3, Y: 3}, gamemap.Pos{X: 10, Y: 8}, Config{Rand: random.NewSequence(0.5)})
	if !g.IsWalkable(3, 8) {
		t.Error("a roll of exactly 0.5 should carve the vertical leg first")
	}
}
