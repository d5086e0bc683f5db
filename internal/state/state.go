package state

import (
	"cyber-rogue/internal/gamemap"

	"github.com/zyedidia/generic/mapset"
)

// Status is the run's top-level mode.
type Status string

const (
	StatusPlaying     Status = "playing"
	StatusGameOver    Status = "gameOver"
	StatusVictory     Status = "victory"
	StatusStartScreen Status = "startScreen"
)

// Difficulty selects spawn scaling and starting kit.
type Difficulty string

const (
	Easy      Difficulty = "easy"
	Difficult Difficulty = "difficult"
	Hard      Difficulty = "hard"
	Test      Difficulty = "test"
)

// ParseDifficulty maps a name onto a Difficulty.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch d := Difficulty(s); d {
	case Easy, Difficult, Hard, Test:
		return d, true
	}
	return "", false
}

// TutorialLevel is the dungeon level reserved for the training layout.
const TutorialLevel = 0

// Sound is a named audio cue emitted by a game outcome.
type Sound string

const (
	SoundHit    Sound = "hit"
	SoundMiss   Sound = "miss"
	SoundPickup Sound = "pickup"
	SoundLevel  Sound = "level"
	SoundDeath  Sound = "death"
	SoundEquip  Sound = "equip"
	SoundDoor   Sound = "door"
	SoundTrap   Sound = "trap"
)

// GameState is the aggregate root of one run on one level.
//
// A GameState handed to a renderer is never mutated again; transitions work on
// the value returned by Clone.
type GameState struct {
	Grid        *gamemap.Grid
	Rooms       []gamemap.Rect
	SecretRooms []gamemap.Rect
	BossRoom    *gamemap.Rect

	Player      Player
	Enemies     []Enemy
	Items       []Item
	Traps       []Trap
	SecretDoors []SecretDoor

	Stairs           *gamemap.Pos
	StairsDiscovered bool
	Level            int
	Status           Status
	Difficulty       Difficulty
	Log              Log

	// Visible is replaced wholesale on every refresh, never edited in place.
	Visible mapset.Set[int]
	Visited []bool

	Targeting  bool
	Target     *gamemap.Pos
	Projectile []gamemap.Pos

	DiscoveredItems   mapset.Set[string]
	DiscoveredEnemies mapset.Set[string]

	Tutorial *Tutorial

	sounds []Sound
}

// AddMessage prepends msg to the log.
func (s *GameState) AddMessage(msg string) { s.Log.Add(msg) }

// Emit queues an audio cue for the engine's listener.
func (s *GameState) Emit(snd Sound) { s.sounds = append(s.sounds, snd) }

// DrainSounds returns and clears the queued audio cues.
func (s *GameState) DrainSounds() []Sound {
	out := s.sounds
	s.sounds = nil
	return out
}

// Playing reports whether the run accepts actions.
func (s *GameState) Playing() bool { return s.Status == StatusPlaying }

// IsTutorial reports whether this is the training level.
func (s *GameState) IsTutorial() bool { return s.Level == TutorialLevel && s.Tutorial != nil }

// IsVisible reports whether p is in the current visible set.
func (s *GameState) IsVisible(p gamemap.Pos) bool {
	return s.Grid.InBounds(p.X, p.Y) && s.Visible.Has(s.Grid.Index(p))
}

// IsVisited reports whether p has ever been seen.
func (s *GameState) IsVisited(p gamemap.Pos) bool {
	return s.Grid.InBounds(p.X, p.Y) && s.Visited[s.Grid.Index(p)]
}

// VisitedCount returns how many cells have ever been seen.
func (s *GameState) VisitedCount() int {
	n := 0
	for _, v := range s.Visited {
		if v {
			n++
		}
	}
	return n
}

// EnemyAt returns the index of the enemy standing on p, or -1.
func (s *GameState) EnemyAt(p gamemap.Pos) int {
	for i, e := range s.Enemies {
		if e.Pos == p {
			return i
		}
	}
	return -1
}

// EnemyByID returns the index of enemy id, or -1.
func (s *GameState) EnemyByID(id string) int {
	for i, e := range s.Enemies {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// LevelBoss returns the living enemy that gates the stairs, or nil.
func (s *GameState) LevelBoss() *Enemy {
	for i := range s.Enemies {
		if s.Enemies[i].LevelBoss {
			return &s.Enemies[i]
		}
	}
	return nil
}

// SecretDoorAt returns the index of the secret door on p, or -1.
func (s *GameState) SecretDoorAt(p gamemap.Pos) int {
	for i, d := range s.SecretDoors {
		if d.Pos == p {
			return i
		}
	}
	return -1
}

// Score is the leaderboard value of the run so far.
func (s *GameState) Score() int {
	return s.Player.Gold + s.Player.XP + s.Level*100
}

// Clone returns a state that can be mutated without affecting s.
// Rooms, the objective map and the log share storage; the grid is shared
// until first written.
func (s *GameState) Clone() *GameState {
	c := *s
	c.Grid = s.Grid.Share()
	c.Player = s.Player.clone()
	c.Enemies = append([]Enemy(nil), s.Enemies...)
	c.Items = append([]Item(nil), s.Items...)
	c.Traps = append([]Trap(nil), s.Traps...)
	c.SecretDoors = append([]SecretDoor(nil), s.SecretDoors...)
	c.Visited = append([]bool(nil), s.Visited...)
	c.Projectile = append([]gamemap.Pos(nil), s.Projectile...)
	c.DiscoveredItems = CopySet(s.DiscoveredItems)
	c.DiscoveredEnemies = CopySet(s.DiscoveredEnemies)
	if s.Stairs != nil {
		p := *s.Stairs
		c.Stairs = &p
	}
	if s.Target != nil {
		p := *s.Target
		c.Target = &p
	}
	if s.Tutorial != nil {
		t := *s.Tutorial
		c.Tutorial = &t
	}
	c.sounds = nil
	return &c
}

func (p Player) clone() Player {
	c := p
	c.Melee = cloneItem(p.Melee)
	c.Ranged = cloneItem(p.Ranged)
	c.Armor = cloneItem(p.Armor)
	c.Inventory = append([]Item(nil), p.Inventory...)
	c.Buffs = append([]Buff(nil), p.Buffs...)
	return c
}

func cloneItem(it *Item) *Item {
	if it == nil {
		return nil
	}
	c := *it
	return &c
}

// CopySet returns an independent copy of s.
func CopySet[K comparable](s mapset.Set[K]) mapset.Set[K] {
	c := mapset.New[K]()
	s.Each(func(k K) { c.Put(k) })
	return c
}

// SetKeys returns the members of s in unspecified order.
func SetKeys[K comparable](s mapset.Set[K]) []K {
	out := make([]K, 0, s.Size())
	s.Each(func(k K) { out = append(out, k) })
	return out
}
