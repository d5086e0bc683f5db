package gamemap

// Tile is the code stored in one grid cell.
type Tile uint8

const (
	TileFloor      Tile = 0
	TileWall       Tile = 1
	TileLockedDoor Tile = 2
)

// Walkable reports whether an entity may stand on the tile.
func (t Tile) Walkable() bool { return t == TileFloor }

// Opaque reports whether the tile stops a line of sight.
func (t Tile) Opaque() bool { return t == TileWall }

// Pos is an integer grid coordinate.
type Pos struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Held marks an item that is carried rather than lying on the ground.
var Held = Pos{X: -1, Y: -1}

// Add returns p offset by (dx, dy).
func (p Pos) Add(dx, dy int) Pos { return Pos{X: p.X + dx, Y: p.Y + dy} }

// Chebyshev returns the king-move distance between p and o.
func (p Pos) Chebyshev(o Pos) int {
	return max(abs(p.X-o.X), abs(p.Y-o.Y))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
