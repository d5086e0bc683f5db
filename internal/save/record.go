// Package save persists a run between sessions.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"cyber-rogue/internal/gamemap"
	"cyber-rogue/internal/state"

	"github.com/zyedidia/generic/mapset"
)

var (
	// ErrNoSave is returned by Load when nothing has been saved.
	ErrNoSave = errors.New("save: no saved game")
	// ErrCorrupt is returned when a stored record cannot be restored.
	ErrCorrupt = errors.New("save: corrupt record")
)

// Audio holds the player's sound preferences.
type Audio struct {
	MusicOn bool `json:"musicOn"`
	SFXOn   bool `json:"sfxOn"`
}

// DefaultAudio is music off, effects on.
func DefaultAudio() Audio { return Audio{MusicOn: false, SFXOn: true} }

// Record is one saved run.
type Record struct {
	State *state.GameState
	Audio Audio
}

type wireRecord struct {
	GameState *wireState `json:"gameState"`
	Audio     Audio      `json:"audioSettings"`
}

// wireState is GameState with every set flattened to a sorted list.
type wireState struct {
	Map               [][]int            `json:"map"`
	Rooms             []gamemap.Rect     `json:"rooms"`
	SecretRooms       []gamemap.Rect     `json:"secretRooms"`
	BossRoom          *gamemap.Rect      `json:"bossRoom,omitempty"`
	Player            state.Player       `json:"player"`
	Enemies           []state.Enemy      `json:"enemies"`
	Items             []state.Item       `json:"items"`
	Traps             []state.Trap       `json:"traps"`
	SecretDoors       []state.SecretDoor `json:"secretDoors"`
	Stairs            *gamemap.Pos       `json:"stairs"`
	StairsDiscovered  bool               `json:"stairsDiscovered"`
	Level             int                `json:"dungeonLevel"`
	Status            state.Status       `json:"gameStatus"`
	Difficulty        state.Difficulty   `json:"difficulty"`
	Messages          []string           `json:"messages"`
	Visible           []int              `json:"visibleTiles"`
	Visited           []int              `json:"visitedTiles"`
	Targeting         bool               `json:"isTargeting"`
	Target            *gamemap.Pos       `json:"targetCoords,omitempty"`
	Projectile        []gamemap.Pos      `json:"projectilePath"`
	DiscoveredItems   []string           `json:"discoveredItems"`
	DiscoveredEnemies []string           `json:"discoveredEnemies"`
	Tutorial          *state.Tutorial    `json:"tutorial,omitempty"`
}

// Encode serializes rec as JSON.
func Encode(rec Record) ([]byte, error) {
	if rec.State == nil {
		return nil, fmt.Errorf("encode save: nil state")
	}
	data, err := json.Marshal(wireRecord{GameState: toWire(rec.State), Audio: rec.Audio})
	if err != nil {
		return nil, fmt.Errorf("encode save: %w", err)
	}
	return data, nil
}

// Decode restores a record. Any malformed or inconsistent input yields an
// error wrapping ErrCorrupt and no partial state.
func Decode(data []byte) (Record, error) {
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if w.GameState == nil {
		return Record{}, fmt.Errorf("%w: missing game state", ErrCorrupt)
	}
	s, err := fromWire(w.GameState)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return Record{State: s, Audio: w.Audio}, nil
}

func toWire(s *state.GameState) *wireState {
	rows := s.Grid.Rows()
	grid := make([][]int, len(rows))
	for y, row := range rows {
		grid[y] = make([]int, len(row))
		for x, t := range row {
			grid[y][x] = int(t)
		}
	}
	var visited []int
	for i, v := range s.Visited {
		if v {
			visited = append(visited, i)
		}
	}
	w := &wireState{
		Map:               grid,
		Rooms:             s.Rooms,
		SecretRooms:       s.SecretRooms,
		BossRoom:          s.BossRoom,
		Player:            s.Player,
		Enemies:           s.Enemies,
		Items:             s.Items,
		Traps:             s.Traps,
		SecretDoors:       s.SecretDoors,
		Stairs:            s.Stairs,
		StairsDiscovered:  s.StairsDiscovered,
		Level:             s.Level,
		Status:            s.Status,
		Difficulty:        s.Difficulty,
		Messages:          s.Log.Entries(),
		Visible:           sortedInts(s.Visible),
		Visited:           visited,
		Targeting:         s.Targeting,
		Target:            s.Target,
		Projectile:        s.Projectile,
		DiscoveredItems:   sortedStrings(s.DiscoveredItems),
		DiscoveredEnemies: sortedStrings(s.DiscoveredEnemies),
		Tutorial:          s.Tutorial,
	}
	return w
}

func fromWire(w *wireState) (*state.GameState, error) {
	rows := make([][]gamemap.Tile, len(w.Map))
	for y, row := range w.Map {
		rows[y] = make([]gamemap.Tile, len(row))
		for x, t := range row {
			if t < 0 || t > int(gamemap.TileLockedDoor) {
				return nil, fmt.Errorf("tile %d at %d,%d", t, x, y)
			}
			rows[y][x] = gamemap.Tile(t)
		}
	}
	g, err := gamemap.FromRows(rows)
	if err != nil {
		return nil, err
	}
	if !g.InBounds(w.Player.Pos.X, w.Player.Pos.Y) {
		return nil, fmt.Errorf("player at %v outside %dx%d map", w.Player.Pos, g.Width, g.Height)
	}
	switch w.Status {
	case state.StatusPlaying, state.StatusGameOver, state.StatusVictory, state.StatusStartScreen:
	default:
		return nil, fmt.Errorf("unknown status %q", w.Status)
	}
	if _, ok := state.ParseDifficulty(string(w.Difficulty)); !ok {
		return nil, fmt.Errorf("unknown difficulty %q", w.Difficulty)
	}

	visible := mapset.New[int]()
	for _, i := range w.Visible {
		if i < 0 || i >= g.Cells() {
			return nil, fmt.Errorf("visible index %d out of range", i)
		}
		visible.Put(i)
	}
	visited := make([]bool, g.Cells())
	for _, i := range w.Visited {
		if i < 0 || i >= g.Cells() {
			return nil, fmt.Errorf("visited index %d out of range", i)
		}
		visited[i] = true
	}
	items := mapset.New[string]()
	for _, id := range w.DiscoveredItems {
		items.Put(id)
	}
	enemies := mapset.New[string]()
	for _, id := range w.DiscoveredEnemies {
		enemies.Put(id)
	}
	if w.Player.Inventory == nil {
		w.Player.Inventory = []state.Item{}
	}

	return &state.GameState{
		Grid:              g,
		Rooms:             w.Rooms,
		SecretRooms:       w.SecretRooms,
		BossRoom:          w.BossRoom,
		Player:            w.Player,
		Enemies:           w.Enemies,
		Items:             w.Items,
		Traps:             w.Traps,
		SecretDoors:       w.SecretDoors,
		Stairs:            w.Stairs,
		StairsDiscovered:  w.StairsDiscovered,
		Level:             w.Level,
		Status:            w.Status,
		Difficulty:        w.Difficulty,
		Log:               state.NewLog(w.Messages...),
		Visible:           visible,
		Visited:           visited,
		Targeting:         w.Targeting,
		Target:            w.Target,
		Projectile:        w.Projectile,
		DiscoveredItems:   items,
		DiscoveredEnemies: enemies,
		Tutorial:          w.Tutorial,
	}, nil
}

func sortedInts(s mapset.Set[int]) []int {
	out := state.SetKeys(s)
	sort.Ints(out)
	return out
}

func sortedStrings(s mapset.Set[string]) []string {
	out := state.SetKeys(s)
	sort.Strings(out)
	return out
}
