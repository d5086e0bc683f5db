package generate

import (
	"cyber-rogue/internal/gamemap"
	"cyber-rogue/internal/random"
	"cyber-rogue/internal/state"
)

// Default level dimensions and room parameters.
const (
	MapWidth    = 50
	MapHeight   = 30
	MaxRooms    = 12
	RoomMinSize = 4
	RoomMaxSize = 8
)

// Config drives procedural generation for one level.
type Config struct {
	Width, Height    int
	MaxRooms         int
	RoomMin, RoomMax int
	Level            int
	Difficulty       state.Difficulty
	Rand             random.Source
	IDs              random.IDs
}

// NewConfig returns the standard configuration for level.
func NewConfig(level int, difficulty state.Difficulty, rng random.Source, ids random.IDs) Config {
	return Config{
		Width:      MapWidth,
		Height:     MapHeight,
		MaxRooms:   MaxRooms,
		RoomMin:    RoomMinSize,
		RoomMax:    RoomMaxSize,
		Level:      level,
		Difficulty: difficulty,
		Rand:       rng,
		IDs:        ids,
	}
}

// Result is everything a level needs to start play.
type Result struct {
	Grid        *gamemap.Grid
	Rooms       []gamemap.Rect
	SecretRooms []gamemap.Rect
	SecretDoors []state.SecretDoor
	PlayerStart gamemap.Pos
	Items       []state.Item
	Enemies     []state.Enemy
	Traps       []state.Trap
	Stairs      *gamemap.Pos
	BossRoom    *gamemap.Rect

	// Objectives maps training labels to instance ids; nil outside training.
	Objectives map[string]string
}

// fallbackStart is where the player begins when no room could be placed.
var fallbackStart = gamemap.Pos{X: 2, Y: 2}

// Generate builds one procedural level. It never fails: spawns that find no
// room are skipped and an empty map falls back to fixed coordinates.
func Generate(cfg Config) Result {
	g := gamemap.NewGrid(cfg.Width, cfg.Height)
	rooms := placeRooms(g, cfg)

	res := Result{Grid: g, Rooms: rooms, PlayerStart: fallbackStart}
	if len(rooms) > 0 {
		boss := rooms[len(rooms)-1]
		res.BossRoom = &boss
		res.PlayerStart = rooms[0].Center()
	}

	res.SecretRooms, res.SecretDoors = placeSecretRooms(g, cfg, res.BossRoom)

	if res.BossRoom != nil && cfg.Level%5 != 0 {
		c := res.BossRoom.Center()
		res.Stairs = &c
	}

	p := newPopulator(g, cfg, &res)
	p.populateRooms()
	p.stockSecretRooms()
	p.placeBoss()
	return res
}

// intn is Source.Intn that yields 0 instead of panicking on an empty range.
func intn(rng random.Source, n int) int {
	if n <= 0 {
		return 0
	}
	return rng.Intn(n)
}
