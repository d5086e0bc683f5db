package game

import (
	"errors"
	"fmt"
	"math"

	"cyber-rogue/assets"
	"cyber-rogue/internal/gamemap"
	"cyber-rogue/internal/generate"
	"cyber-rogue/internal/save"
	"cyber-rogue/internal/state"
	"cyber-rogue/internal/system"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// Starting kit.
const (
	StartHealth     = 100
	StartXPToNext   = 100
	EasyStartGold   = 50
	DescendHealRate = 0.25

	testGold   = 5000
	testHealth = 500
	testLevel  = 10
)

// LoadFailedNotice is shown after a saved run could not be restored.
const LoadFailedNotice = "Failed to load saved game. The save file might be corrupted and has been deleted."

// StartRun discards any run in progress and begins a new one. Difficulty Test
// on level 0 is the training level; any other level below 1 starts at 1.
func (e *Engine) StartRun(d state.Difficulty, level int) {
	training := d == state.Test && level == state.TutorialLevel
	if !training && level < 1 {
		level = 1
	}
	e.epoch++
	e.locked = false
	e.notice = ""
	e.run = newRunLog(d, level)

	s := e.buildLevel(d, level, nil, nil, nil)
	e.log.WithFields(logrus.Fields{"difficulty": d, "level": level}).Info("run started")
	e.enterLevel(s)
	e.publish(s)
}

// buildLevel creates the state for level. A nil carry starts a new player;
// otherwise the player keeps everything but their position and recovers a
// quarter of their max health.
func (e *Engine) buildLevel(d state.Difficulty, level int, carry *state.Player, items, enemies mapset.Set[string]) *state.GameState {
	training := d == state.Test && level == state.TutorialLevel

	var res generate.Result
	if training {
		res = generate.Tutorial(e.ids)
	} else {
		res = generate.Generate(generate.NewConfig(level, d, e.rng, e.ids))
	}

	s := &state.GameState{
		Grid:              res.Grid,
		Rooms:             res.Rooms,
		SecretRooms:       res.SecretRooms,
		BossRoom:          res.BossRoom,
		Enemies:           res.Enemies,
		Items:             res.Items,
		Traps:             res.Traps,
		SecretDoors:       res.SecretDoors,
		Stairs:            res.Stairs,
		Level:             level,
		Status:            state.StatusPlaying,
		Difficulty:        d,
		Visible:           mapset.New[int](),
		Visited:           make([]bool, res.Grid.Cells()),
		DiscoveredItems:   mapset.New[string](),
		DiscoveredEnemies: mapset.New[string](),
	}
	if items != nil {
		s.DiscoveredItems = state.CopySet(items)
	}
	if enemies != nil {
		s.DiscoveredEnemies = state.CopySet(enemies)
	}
	if training {
		s.Log = state.NewLog("Welcome to the Training Sector.")
		s.Tutorial = &state.Tutorial{Hint: system.TutorialStartHint, Objectives: res.Objectives}
	} else {
		s.Log = state.NewLog(fmt.Sprintf("Entering Sector %d", level))
	}

	if carry == nil {
		s.Player = newPlayer(d, res.PlayerStart)
		if d == state.Test && !training {
			e.testLoadout(&s.Player)
		}
	} else {
		s.Player = *carry
		s.Player.Pos = res.PlayerStart
		if regen := int(math.Floor(float64(s.Player.MaxHealth) * DescendHealRate)); regen > 0 {
			healed := min(s.Player.MaxHealth, s.Player.Health+regen)
			if recovered := healed - s.Player.Health; recovered > 0 {
				s.AddMessage(fmt.Sprintf("You descend and recover %d health.", recovered))
			}
			s.Player.Health = healed
		}
	}

	system.Recalculate(&s.Player)
	system.RefreshVisibility(s, e.fov)
	return s
}

func newPlayer(d state.Difficulty, pos gamemap.Pos) state.Player {
	p := state.Player{
		Pos:         pos,
		Health:      StartHealth,
		MaxHealth:   StartHealth,
		BaseAttack:  system.PlayerBaseAttack,
		BaseDefense: system.PlayerBaseDefense,
		Level:       1,
		XPToNext:    StartXPToNext,
		ActiveSlot:  state.Melee,
		Inventory:   []state.Item{},
	}
	if d == state.Easy {
		p.Gold = EasyStartGold
	}
	return p
}

// testLoadout hands a new test-difficulty player the best kit in the catalog.
func (e *Engine) testLoadout(p *state.Player) {
	gear := func(codex string) *state.Item {
		it := assets.MustItem(codex).Instance(e.ids.NewID(), gamemap.Held)
		it.Equipped = true
		return &it
	}
	p.Melee = gear("wpn_hammer")
	p.Ranged = gear("wpn_railgun")
	p.Armor = gear("arm_exosuit")
	p.Gold = testGold
	p.Health = testHealth
	p.MaxHealth = testHealth
	p.Level = testLevel
}

// descend builds the next level around the player of s.
func (e *Engine) descend(s *state.GameState) *state.GameState {
	next := e.buildLevel(s.Difficulty, s.Level+1, &s.Player, s.DiscoveredItems, s.DiscoveredEnemies)
	next.Emit(state.SoundLevel)
	return next
}

// enterLevel resets per-level bookkeeping for s.
func (e *Engine) enterLevel(s *state.GameState) {
	e.stock = nil
	e.run.Level = max(e.run.Level, s.Level)
	e.log.WithFields(logrus.Fields{
		"level":   s.Level,
		"rooms":   len(s.Rooms),
		"enemies": len(s.Enemies),
		"items":   len(s.Items),
	}).Debug("level entered")
}

// Stock is what the store sells on the current level. It is chosen on the
// first call after entering a level.
func (e *Engine) Stock() []assets.ItemDef {
	if e.stock == nil && e.state != nil {
		e.stock = system.Stock(e.state.Level, e.rng)
	}
	return e.stock
}

// ─── persistence ────────────────────────────────────────────────────────────

// SaveRun stores the current run with the audio preferences. Only a playing
// run is saved. The outcome is reported in the message log.
func (e *Engine) SaveRun() bool {
	if e.state == nil || !e.state.Playing() {
		return false
	}
	err := errors.New("no store configured")
	if e.store != nil {
		err = e.store.Save(save.Record{State: e.state, Audio: e.audio})
	}
	if err != nil {
		e.log.WithError(err).Warn("save failed")
		e.update(func(s *state.GameState) { s.AddMessage("Error: Could not save game.") })
		return false
	}
	e.update(func(s *state.GameState) { s.AddMessage("Game progress saved.") })
	return true
}

// LoadRun replaces the current run with the saved one. Nothing happens when
// no run is saved. A record that cannot be restored is deleted, the current
// run is left untouched and Notice explains what happened.
func (e *Engine) LoadRun() bool {
	if e.store == nil {
		return false
	}
	rec, err := e.store.Load()
	if errors.Is(err, save.ErrNoSave) {
		return false
	}
	if err != nil {
		e.log.WithError(err).Warn("load failed")
		if rmErr := e.store.Delete(); rmErr != nil {
			e.log.WithError(rmErr).Warn("delete unreadable save")
		}
		e.notice = LoadFailedNotice
		return false
	}

	s := rec.State
	e.epoch++
	e.locked = false
	e.notice = ""
	e.audio = rec.Audio
	e.run = newRunLog(s.Difficulty, s.Level)
	e.run.Ended = !s.Playing()
	e.log.WithFields(logrus.Fields{"difficulty": s.Difficulty, "level": s.Level}).Info("run loaded")
	e.enterLevel(s)
	e.publish(s)
	return true
}

// HasSave reports whether a saved run is available to load.
func (e *Engine) HasSave() bool {
	x, ok := e.store.(interface{ Exists() bool })
	return ok && x.Exists()
}
