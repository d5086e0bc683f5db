package gamemap

import "fmt"

// Rect is an axis-aligned room: origin (X, Y) plus width and height.
// The outermost ring of cells is wall; only the interior is carved.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Center returns the center cell of the rectangle.
func (r Rect) Center() Pos {
	return Pos{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Intersects reports whether r overlaps other (inclusive edges).
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.W && r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H && r.Y+r.H >= other.Y
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Pos) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Grid is a fixed-size tile map addressed by packed index y*Width+x.
//
// A Grid obtained from Share reads the same cells as its source until the
// first Set, which copies them. The source must not be written after sharing.
type Grid struct {
	Width, Height int
	cells         []Tile
	shared        bool
}

// NewGrid creates a Grid filled with walls.
func NewGrid(width, height int) *Grid {
	cells := make([]Tile, width*height)
	for i := range cells {
		cells[i] = TileWall
	}
	return &Grid{Width: width, Height: height, cells: cells}
}

// FromRows builds a Grid from row-major tile codes.
func FromRows(rows [][]Tile) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("grid: empty rows")
	}
	g := &Grid{Width: len(rows[0]), Height: len(rows)}
	g.cells = make([]Tile, 0, g.Width*g.Height)
	for y, row := range rows {
		if len(row) != g.Width {
			return nil, fmt.Errorf("grid: row %d has %d cells, want %d", y, len(row), g.Width)
		}
		for x, t := range row {
			if t > TileLockedDoor {
				return nil, fmt.Errorf("grid: unknown tile %d at %d,%d", t, x, y)
			}
		}
		g.cells = append(g.cells, row...)
	}
	return g, nil
}

// Rows returns a row-major copy of the tile codes.
func (g *Grid) Rows() [][]Tile {
	rows := make([][]Tile, g.Height)
	for y := range rows {
		rows[y] = append([]Tile(nil), g.cells[y*g.Width:(y+1)*g.Width]...)
	}
	return rows
}

// Share returns a Grid reading the same cells that copies them on first write.
func (g *Grid) Share() *Grid {
	return &Grid{Width: g.Width, Height: g.Height, cells: g.cells, shared: true}
}

// InBounds reports whether (x, y) is within the map boundaries.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Index packs an in-bounds position into a cell index.
func (g *Grid) Index(p Pos) int { return p.Y*g.Width + p.X }

// PosOf unpacks a cell index.
func (g *Grid) PosOf(i int) Pos { return Pos{X: i % g.Width, Y: i / g.Width} }

// Cells returns the number of cells in the grid.
func (g *Grid) Cells() int { return len(g.cells) }

// At returns the tile at (x, y). Out-of-bounds cells read as wall.
func (g *Grid) At(x, y int) Tile {
	if !g.InBounds(x, y) {
		return TileWall
	}
	return g.cells[y*g.Width+x]
}

// Set replaces the tile at (x, y). Out-of-bounds writes are ignored.
func (g *Grid) Set(x, y int, t Tile) {
	if !g.InBounds(x, y) {
		return
	}
	if g.shared {
		g.cells = append([]Tile(nil), g.cells...)
		g.shared = false
	}
	g.cells[y*g.Width+x] = t
}

// IsWalkable returns true when (x, y) is in bounds and floor.
func (g *Grid) IsWalkable(x, y int) bool {
	return g.InBounds(x, y) && g.At(x, y).Walkable()
}

// ─── carving ────────────────────────────────────────────────────────────────
// Carving never opens the outermost ring of the map.

// InInterior reports whether (x, y) is inside the map's 1-cell outer ring.
func (g *Grid) InInterior(x, y int) bool {
	return x > 0 && x < g.Width-1 && y > 0 && y < g.Height-1
}

func (g *Grid) dig(x, y int) {
	if g.InInterior(x, y) {
		g.Set(x, y, TileFloor)
	}
}

// CarveRoom sets the interior of r to floor, leaving its 1-cell border wall.
func (g *Grid) CarveRoom(r Rect) {
	for y := r.Y + 1; y < r.Y+r.H; y++ {
		for x := r.X + 1; x < r.X+r.W; x++ {
			g.dig(x, y)
		}
	}
}

// CarveBlock sets every cell of r to floor, border included.
func (g *Grid) CarveBlock(r Rect) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			g.dig(x, y)
		}
	}
}

// CarveH digs a horizontal tunnel from x1 to x2 on row y, inclusive.
func (g *Grid) CarveH(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		g.dig(x, y)
	}
}

// CarveV digs a vertical tunnel from y1 to y2 on column x, inclusive.
func (g *Grid) CarveV(y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		g.dig(x, y)
	}
}
