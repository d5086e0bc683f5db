package state

import (
	"fmt"
	"testing"

	"cyber-rogue/internal/gamemap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zyedidia/generic/mapset"
)

func sampleState() *GameState {
	g := gamemap.NewGrid(10, 10)
	g.CarveRoom(gamemap.Rect{X: 1, Y: 1, W: 6, H: 6})
	stairs := gamemap.Pos{X: 5, Y: 5}
	s := &GameState{
		Grid:   g,
		Rooms:  []gamemap.Rect{{X: 1, Y: 1, W: 6, H: 6}},
		Status: StatusPlaying,
		Level:  1,
		Player: Player{
			Pos: gamemap.Pos{X: 2, Y: 2}, Health: 50, MaxHealth: 100,
			Melee:     &Item{ID: "w1", CodexID: "wpn_pipe", Kind: KindWeapon, Weapon: Melee, Value: 2},
			Inventory: []Item{{ID: "p1", Kind: KindPotion, Value: 25}},
			Buffs:     []Buff{{Kind: BuffAttack, Value: 2, TurnsRemaining: 3}},
		},
		Enemies:           []Enemy{{ID: "e1", Pos: gamemap.Pos{X: 4, Y: 4}, Health: 8}},
		Stairs:            &stairs,
		Visible:           mapset.New[int](),
		Visited:           make([]bool, g.Cells()),
		DiscoveredItems:   mapset.New[string](),
		DiscoveredEnemies: mapset.New[string](),
	}
	return s
}

func TestLogNewestFirstAndBounded(t *testing.T) {
	var l Log
	for i := range LogCapacity + 20 {
		l.Add(fmt.Sprintf("m%d", i))
	}
	require.Equal(t, LogCapacity, l.Len())
	assert.Equal(t, fmt.Sprintf("m%d", LogCapacity+19), l.Latest())
	assert.Equal(t, "m20", l.Entries()[LogCapacity-1])
}

func TestLogCopiesDoNotAlias(t *testing.T) {
	a := NewLog("first")
	b := a
	b.Add("second")
	assert.Equal(t, []string{"first"}, a.Entries())
	assert.Equal(t, []string{"second", "first"}, b.Entries())
}

func TestCloneIsIndependent(t *testing.T) {
	s := sampleState()
	s.DiscoveredItems.Put("wpn_pipe")
	c := s.Clone()

	c.Grid.Set(8, 8, gamemap.TileFloor)
	c.Player.Melee.Value = 99
	c.Player.Inventory[0].Value = 1
	c.Player.Buffs[0].TurnsRemaining = 0
	c.Enemies[0].Health = 1
	c.Stairs.X = 0
	c.Visited[3] = true
	c.DiscoveredItems.Put("arm_jacket")
	c.AddMessage("only in clone")

	assert.Equal(t, gamemap.TileWall, s.Grid.At(8, 8))
	assert.Equal(t, 2, s.Player.Melee.Value)
	assert.Equal(t, 25, s.Player.Inventory[0].Value)
	assert.Equal(t, 3, s.Player.Buffs[0].TurnsRemaining)
	assert.Equal(t, 8, s.Enemies[0].Health)
	assert.Equal(t, 5, s.Stairs.X)
	assert.False(t, s.Visited[3])
	assert.False(t, s.DiscoveredItems.Has("arm_jacket"))
	assert.Zero(t, s.Log.Len())
}

func TestCloneSharesImmutableParts(t *testing.T) {
	s := sampleState()
	c := s.Clone()
	assert.Same(t, &s.Rooms[0], &c.Rooms[0])
}

func TestCloneDropsQueuedSounds(t *testing.T) {
	s := sampleState()
	s.Emit(SoundHit)
	c := s.Clone()
	assert.Empty(t, c.DrainSounds())
	assert.Equal(t, []Sound{SoundHit}, s.DrainSounds())
	assert.Empty(t, s.DrainSounds())
}

func TestLookups(t *testing.T) {
	s := sampleState()
	s.SecretDoors = []SecretDoor{{Pos: gamemap.Pos{X: 7, Y: 3}}}
	assert.Equal(t, 0, s.EnemyAt(gamemap.Pos{X: 4, Y: 4}))
	assert.Equal(t, -1, s.EnemyAt(gamemap.Pos{X: 3, Y: 4}))
	assert.Equal(t, 0, s.EnemyByID("e1"))
	assert.Equal(t, 0, s.SecretDoorAt(gamemap.Pos{X: 7, Y: 3}))
	assert.Equal(t, 0, s.Player.InventoryIndex("p1"))
	assert.Equal(t, -1, s.Player.InventoryIndex("missing"))
	assert.Nil(t, s.LevelBoss())
	s.Enemies[0].LevelBoss = true
	assert.Equal(t, "e1", s.LevelBoss().ID)
}

func TestScore(t *testing.T) {
	s := sampleState()
	s.Player.Gold = 40
	s.Player.XP = 15
	s.Level = 3
	assert.Equal(t, 355, s.Score())
}

func TestParseDifficulty(t *testing.T) {
	for _, name := range []string{"easy", "difficult", "hard", "test"} {
		d, ok := ParseDifficulty(name)
		assert.True(t, ok, name)
		assert.Equal(t, Difficulty(name), d)
	}
	_, ok := ParseDifficulty("nightmare")
	assert.False(t, ok)
}

func TestActiveWeapon(t *testing.T) {
	p := Player{
		Melee:      &Item{ID: "m"},
		Ranged:     &Item{ID: "r"},
		ActiveSlot: Melee,
	}
	assert.Equal(t, "m", p.ActiveWeapon().ID)
	p.ActiveSlot = Ranged
	assert.Equal(t, "r", p.ActiveWeapon().ID)
}
