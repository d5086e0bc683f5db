package generate

import (
	"cyber-rogue/internal/gamemap"
	"cyber-rogue/internal/state"
)

const (
	maxSecretRooms     = 3
	secretRoomAttempts = 100
	secretRoomSize     = 3
)

// placeSecretRooms hides up to maxSecretRooms 3×3 rooms behind wall cells
// that touch exactly one floor cell. The door stays a wall until revealed.
// Cells within one tile of the boss room never become doors.
func placeSecretRooms(g *gamemap.Grid, cfg Config, boss *gamemap.Rect) ([]gamemap.Rect, []state.SecretDoor) {
	var (
		rooms []gamemap.Rect
		doors []state.SecretDoor
	)
	for i := 0; i < secretRoomAttempts && len(doors) < maxSecretRooms; i++ {
		x := intn(cfg.Rand, cfg.Width-6) + 3
		y := intn(cfg.Rand, cfg.Height-6) + 3

		if g.At(x, y) != gamemap.TileWall {
			continue
		}
		if boss != nil && nearRoom(x, y, *boss) {
			continue
		}
		room, ok := secretRoomBehind(g, x, y)
		if !ok || !solidAround(g, room) {
			continue
		}
		g.CarveBlock(room)
		doors = append(doors, state.SecretDoor{Pos: gamemap.Pos{X: x, Y: y}})
		rooms = append(rooms, room)
	}
	return rooms, doors
}

// nearRoom reports whether (x, y) lies within one tile of r's outline.
func nearRoom(x, y int, r gamemap.Rect) bool {
	return x >= r.X-1 && x <= r.X+r.W+1 && y >= r.Y-1 && y <= r.Y+r.H+1
}

// secretRoomBehind returns the room on the far side of a dead-end wall cell,
// opposite its single floor neighbour.
func secretRoomBehind(g *gamemap.Grid, x, y int) (gamemap.Rect, bool) {
	floor := func(x, y int) bool { return g.InBounds(x, y) && g.At(x, y) == gamemap.TileFloor }

	n := 0
	for _, d := range [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
		if floor(x+d[0], y+d[1]) {
			n++
		}
	}
	if n != 1 {
		return gamemap.Rect{}, false
	}

	r := gamemap.Rect{W: secretRoomSize, H: secretRoomSize}
	switch {
	case floor(x, y-1): // corridor above, room below
		r.X, r.Y = x-1, y+1
	case floor(x, y+1):
		r.X, r.Y = x-1, y-3
	case floor(x-1, y):
		r.X, r.Y = x+1, y-1
	default:
		r.X, r.Y = x-3, y-1
	}
	return r, true
}

// solidAround reports whether r and a one-tile ring around it are all
// in-bounds wall.
func solidAround(g *gamemap.Grid, r gamemap.Rect) bool {
	for y := r.Y - 1; y < r.Y+r.H+1; y++ {
		for x := r.X - 1; x < r.X+r.W+1; x++ {
			if !g.InBounds(x, y) || g.At(x, y) != gamemap.TileWall {
				return false
			}
		}
	}
	return true
}
