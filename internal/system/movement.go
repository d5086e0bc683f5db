package system

import (
	"cyber-rogue/internal/gamemap"
	"cyber-rogue/internal/state"
)

// MoveResult describes what lies in the way of a player step.
type MoveResult uint8

const (
	MoveBlocked MoveResult = iota // out of bounds, or a wall with nothing to open
	MoveOK                        // floor; the player may step
	MoveAttack                    // an enemy stands on the target
	MoveDoor                      // a revealed secret door that opens on contact
)

// TryMove classifies the player stepping by (dx, dy). For MoveAttack the
// returned index is the enemy; for MoveDoor it is the secret door.
// It does not change the state.
func TryMove(s *state.GameState, dx, dy int) (MoveResult, int) {
	target := s.Player.Pos.Add(dx, dy)
	if !s.Grid.InBounds(target.X, target.Y) {
		return MoveBlocked, -1
	}
	if i := s.EnemyAt(target); i >= 0 {
		return MoveAttack, i
	}
	switch s.Grid.At(target.X, target.Y) {
	case gamemap.TileFloor:
		return MoveOK, -1
	case gamemap.TileWall:
		if i := s.SecretDoorAt(target); i >= 0 && s.SecretDoors[i].Revealed {
			return MoveDoor, i
		}
	}
	return MoveBlocked, -1
}

// IsCardinal reports whether (dx, dy) is one of the four unit directions.
func IsCardinal(dx, dy int) bool {
	return (dx == 0) != (dy == 0) && abs(dx)+abs(dy) == 1
}

// chaseStep returns the cell an enemy at from moves to when closing on to.
// It tries the axis with the larger gap first, then the other; a step must
// land on floor not held by another enemy. ok is false when both are blocked.
func chaseStep(s *state.GameState, from, to gamemap.Pos) (gamemap.Pos, bool) {
	dx, dy := to.X-from.X, to.Y-from.Y
	horiz := from.Add(sign(dx), 0)
	vert := from.Add(0, sign(dy))
	order := [2]gamemap.Pos{vert, horiz}
	if abs(dx) > abs(dy) {
		order = [2]gamemap.Pos{horiz, vert}
	}
	for _, p := range order {
		if p == from {
			continue
		}
		if s.Grid.IsWalkable(p.X, p.Y) && s.EnemyAt(p) < 0 {
			return p, true
		}
	}
	return from, false
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
