package game

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cyber-rogue/assets"
	"cyber-rogue/internal/gamemap"
	"cyber-rogue/internal/leaderboard"
	"cyber-rogue/internal/save"
	"cyber-rogue/internal/state"
	"cyber-rogue/internal/system"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zyedidia/generic/mapset"
)

type fakeBoard struct {
	entries []leaderboard.Entry
	err     error
}

func (f *fakeBoard) Submit(_ context.Context, e leaderboard.Entry) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	ranked := leaderboard.Qualifies(f.entries, e.Score)
	f.entries = leaderboard.Insert(f.entries, e)
	return ranked, nil
}

func (f *fakeBoard) Top(_ context.Context, d state.Difficulty) ([]leaderboard.Entry, error) {
	var out []leaderboard.Entry
	for _, e := range f.entries {
		if e.Difficulty == d {
			out = append(out, e)
		}
	}
	return out, f.err
}

type countingSpectators struct{ frames int }

func (c *countingSpectators) Publish(string, *state.GameState) { c.frames++ }

func newTestGame(t *testing.T, cfg Config) *Game {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	screen.SetSize(100, 40)
	cfg.Screen = screen
	if cfg.DataDir == "" {
		cfg.DataDir = t.TempDir()
	}
	if cfg.Player == "" {
		cfg.Player = "tester"
	}
	cfg.Scheduler = Immediate{}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(7))
	}
	g, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(screen.Fini)
	return g
}

func runeKey(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func namedKey(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }

func menuIndex(g *Game, label string) int {
	for i, it := range g.startMenu() {
		if it.label == label {
			return i
		}
	}
	return -1
}

func TestStartScreenStartsRun(t *testing.T) {
	spect := &countingSpectators{}
	g := newTestGame(t, Config{Spectators: spect})
	require.Equal(t, modeStart, g.mode)
	assert.Equal(t, -1, menuIndex(g, "Continue Saved Run"))
	assert.Equal(t, 0, menuIndex(g, "Easy"))

	g.handle(namedKey(tcell.KeyEnter))
	require.Equal(t, modePlaying, g.mode)
	s := g.engine.State()
	require.NotNil(t, s)
	assert.Equal(t, state.Easy, s.Difficulty)
	assert.Equal(t, 1, s.Level)
	assert.Positive(t, spect.frames)
}

func TestQuickSelectTraining(t *testing.T) {
	g := newTestGame(t, Config{})
	g.handle(runeKey(rune('1' + menuIndex(g, "Enter Training Sector"))))
	require.Equal(t, modePlaying, g.mode)
	assert.True(t, g.engine.State().IsTutorial())
}

func TestTrainingExitReturnsToStart(t *testing.T) {
	g := newTestGame(t, Config{})
	g.start(state.Test, state.TutorialLevel)
	g.engine.state.Status = state.StatusStartScreen
	g.engine.state.AddMessage("Training complete. Returning to main menu.")

	g.handle(runeKey(' '))
	assert.Equal(t, modeStart, g.mode)
	assert.Equal(t, "Training complete. Returning to main menu.", g.status)
}

func TestPlayingKeysDriveEngine(t *testing.T) {
	g := newTestGame(t, Config{})
	g.start(state.Easy, 1)

	g.handle(runeKey(' '))
	assert.Equal(t, 1, g.engine.RunLog().Turns)
	assert.False(t, g.engine.Locked())

	g.handle(runeKey('m'))
	assert.False(t, g.engine.Audio().SFXOn)

	g.handle(runeKey('S'))
	assert.Equal(t, "Game progress saved.", g.engine.State().Log.Latest())

	g.handle(namedKey(tcell.KeyCtrlC))
	assert.True(t, g.quit)
}

func TestOverlaysOpenAndClose(t *testing.T) {
	g := newTestGame(t, Config{})
	g.start(state.Easy, 1)

	for _, tc := range []struct {
		open, close rune
		mode        screenMode
	}{
		{'i', 'i', modeInventory},
		{'b', 'q', modeStore},
		{'c', 'c', modeCodex},
	} {
		g.handle(runeKey(tc.open))
		assert.Equal(t, tc.mode, g.mode)
		g.draw()
		g.handle(runeKey(tc.close))
		assert.Equal(t, modePlaying, g.mode)
	}
	turns := g.engine.RunLog().Turns
	g.handle(runeKey('i'))
	g.handle(namedKey(tcell.KeyEscape))
	assert.Equal(t, modePlaying, g.mode)
	assert.Equal(t, turns, g.engine.RunLog().Turns, "browsing takes no turn")
}

func TestInventoryUseAndEquip(t *testing.T) {
	g := newTestGame(t, Config{})
	g.start(state.Easy, 1)
	p := &g.engine.state.Player
	p.Inventory = []state.Item{
		assets.HealthPack.Instance("hp1", gamemap.Held),
		assets.MustItem("wpn_sword").Instance("sw1", gamemap.Held),
	}
	p.Health = 10

	g.handle(runeKey('i'))
	g.handle(runeKey('e'))
	assert.Equal(t, "Press [u] to use consumables.", g.status)

	g.handle(runeKey('u'))
	assert.Equal(t, -1, g.engine.State().Player.InventoryIndex("hp1"))

	g.handle(runeKey('u'))
	assert.Equal(t, "Press [e] to equip gear.", g.status)
	g.handle(namedKey(tcell.KeyEnter))
	s := g.engine.State()
	require.NotNil(t, s.Player.Melee)
	assert.Equal(t, "sw1", s.Player.Melee.ID)
}

func TestStoreBuyAndSell(t *testing.T) {
	g := newTestGame(t, Config{})
	g.start(state.Easy, 1)
	g.engine.state.Player.Gold = 1000
	g.engine.state.Player.Inventory = nil

	g.handle(runeKey('b'))
	offer := g.engine.Stock()[0]
	g.handle(namedKey(tcell.KeyEnter))
	s := g.engine.State()
	assert.Equal(t, 1000-system.Price(offer), s.Player.Gold)
	require.Len(t, s.Player.Inventory, 1)
	bought := s.Player.Inventory[0]
	assert.Equal(t, offer.CodexID, bought.CodexID)

	g.handle(namedKey(tcell.KeyTab))
	g.handle(namedKey(tcell.KeyEnter))
	s = g.engine.State()
	assert.Empty(t, s.Player.Inventory)
	assert.Equal(t, 1000-system.Price(offer)+system.SellPrice(bought), s.Player.Gold)
}

func TestSaveAndContinue(t *testing.T) {
	dir := t.TempDir()
	g1 := newTestGame(t, Config{DataDir: dir})
	g1.start(state.Hard, 2)
	require.True(t, g1.engine.SaveRun())

	g2 := newTestGame(t, Config{DataDir: dir})
	require.Equal(t, 0, menuIndex(g2, "Continue Saved Run"))
	g2.handle(namedKey(tcell.KeyEnter))
	require.Equal(t, modePlaying, g2.mode)
	assert.Equal(t, state.Hard, g2.engine.State().Difficulty)
	assert.Equal(t, 2, g2.engine.State().Level)
}

func TestContinueCorruptSaveShowsNotice(t *testing.T) {
	dir := t.TempDir()
	path := save.NewFileStore(dir, "tester").Path()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	g := newTestGame(t, Config{DataDir: dir})
	require.Equal(t, 0, menuIndex(g, "Continue Saved Run"))
	g.handle(namedKey(tcell.KeyEnter))
	assert.Equal(t, modeStart, g.mode)
	assert.Equal(t, LoadFailedNotice, g.status)
	assert.Equal(t, -1, menuIndex(g, "Continue Saved Run"))
}

func TestDeveloperTestUnlock(t *testing.T) {
	g := newTestGame(t, Config{})
	assert.Equal(t, -1, menuIndex(g, "Developer Test"))
	for range devUnlockClicks {
		g.handle(tcell.NewEventMouse(10, titleRow, tcell.Button1, tcell.ModNone))
	}
	idx := menuIndex(g, "Developer Test")
	require.NotEqual(t, -1, idx)

	g.cursor = idx
	g.handle(namedKey(tcell.KeyEnter))
	require.Equal(t, modeDevTest, g.mode)

	g.handle(namedKey(tcell.KeyBackspace2))
	g.handle(namedKey(tcell.KeyEnter))
	assert.Equal(t, modeDevTest, g.mode, "empty sector is rejected")
	assert.NotEmpty(t, g.status)

	g.handle(runeKey('x'))
	g.handle(runeKey('3'))
	assert.Equal(t, "3", g.devLevel)
	g.handle(namedKey(tcell.KeyEnter))
	require.Equal(t, modePlaying, g.mode)
	s := g.engine.State()
	assert.Equal(t, state.Test, s.Difficulty)
	assert.Equal(t, 3, s.Level)
	assert.Equal(t, testGold, s.Player.Gold)
}

func TestGameOverSubmitsScore(t *testing.T) {
	board := &fakeBoard{}
	g := newTestGame(t, Config{Leaderboard: board, Player: "neo"})
	g.gameOver(RunLog{
		Difficulty:    state.Easy,
		Level:         3,
		Score:         420,
		Turns:         77,
		EnemiesKilled: map[string]int{"ganger": 2},
		CauseOfDeath:  "Street Ganger",
	})
	require.Equal(t, modeGameOver, g.mode)
	assert.Equal(t, "neo", g.nameInput)
	assert.FileExists(t, filepath.Join(g.dataDir, RunLogFile))
	g.draw()

	g.handle(runeKey('!'))
	g.handle(namedKey(tcell.KeyBackspace2))
	g.handle(namedKey(tcell.KeyEnter))
	require.Len(t, board.entries, 1)
	assert.Equal(t, "neo", board.entries[0].Name)
	assert.Equal(t, 420, board.entries[0].Score)
	assert.Equal(t, 3, board.entries[0].Level)
	assert.Equal(t, "Score saved!", g.status)
	assert.Len(t, g.topEntries, 1)

	g.handle(runeKey('r'))
	assert.Equal(t, modeStart, g.mode)
}

func TestGameOverNameIsCapped(t *testing.T) {
	g := newTestGame(t, Config{Leaderboard: &fakeBoard{}, Player: "averyveryverylongname"})
	g.gameOver(RunLog{Difficulty: state.Hard, EnemiesKilled: map[string]int{}})
	assert.Len(t, []rune(g.nameInput), maxNameRunes)
	g.handle(runeKey('z'))
	assert.Len(t, []rune(g.nameInput), maxNameRunes)
}

func TestGameOverBoardFailureKeepsPrompt(t *testing.T) {
	board := &fakeBoard{err: errors.New("offline")}
	g := newTestGame(t, Config{Leaderboard: board})
	g.gameOver(RunLog{Difficulty: state.Difficult, EnemiesKilled: map[string]int{}})
	g.handle(namedKey(tcell.KeyEnter))
	assert.True(t, g.canSubmit())
	assert.Equal(t, "Could not reach the leaderboard.", g.status)
}

func TestGameOverBelowBoardSkipsPrompt(t *testing.T) {
	board := &fakeBoard{}
	for i := range leaderboard.Capacity {
		board.entries = append(board.entries, leaderboard.Entry{Name: "ace", Score: 500 + i, Difficulty: state.Easy})
	}
	g := newTestGame(t, Config{Leaderboard: board})
	g.gameOver(RunLog{Difficulty: state.Easy, Score: 100, EnemiesKilled: map[string]int{}})
	assert.False(t, g.ranked)
	assert.False(t, g.canSubmit())
	g.draw()

	g.handle(namedKey(tcell.KeyEnter))
	assert.Equal(t, modeStart, g.mode)
	assert.Len(t, board.entries, leaderboard.Capacity)
	for _, e := range board.entries {
		assert.Equal(t, "ace", e.Name)
	}
}

func TestGameOverTestModeSkipsBoard(t *testing.T) {
	board := &fakeBoard{}
	g := newTestGame(t, Config{Leaderboard: board})
	g.gameOver(RunLog{Difficulty: state.Test, EnemiesKilled: map[string]int{}})
	assert.False(t, g.canSubmit())
	g.draw()
	g.handle(namedKey(tcell.KeyEnter))
	assert.Equal(t, modeStart, g.mode)
	assert.Empty(t, board.entries)
}

func TestDeathFromEngineOpensSummary(t *testing.T) {
	g := newTestGame(t, Config{})
	g.start(state.Easy, 1)
	g.engine.Submit(func(s *state.GameState) *state.GameState {
		s.Status = state.StatusGameOver
		return s
	})
	assert.Equal(t, modeGameOver, g.mode)
	assert.Equal(t, "spike trap", g.lastRun.CauseOfDeath)
	assert.FileExists(t, filepath.Join(g.dataDir, RunLogFile))
}

func TestLeaderboardTabs(t *testing.T) {
	board := &fakeBoard{entries: []leaderboard.Entry{{Name: "a", Score: 5, Difficulty: state.Hard}}}
	g := newTestGame(t, Config{Leaderboard: board})
	g.cursor = menuIndex(g, "Leaderboards")
	g.handle(namedKey(tcell.KeyEnter))
	require.Equal(t, modeLeaderboard, g.mode)
	assert.Equal(t, state.Easy, g.boardDiff)
	assert.Empty(t, g.topEntries)

	g.handle(namedKey(tcell.KeyLeft))
	assert.Equal(t, state.Hard, g.boardDiff)
	assert.Len(t, g.topEntries, 1)
	g.draw()

	g.handle(namedKey(tcell.KeyEscape))
	assert.Equal(t, modeStart, g.mode)
}

func TestCodexEntries(t *testing.T) {
	s := &state.GameState{DiscoveredItems: mapset.New[string](), DiscoveredEnemies: mapset.New[string]()}
	s.DiscoveredItems.Put("wpn_pipe")
	s.DiscoveredEnemies.Put("ganger")

	items := codexEntries(s, tabItems)
	assert.Len(t, items, len(assets.Weapons)+len(assets.Armor))
	for _, e := range items {
		assert.Equal(t, e.id == "wpn_pipe", e.known, e.id)
	}
	for _, e := range codexEntries(s, tabEnemies) {
		assert.NotEqual(t, "dummy_melee", e.id)
		assert.Equal(t, e.id == "ganger", e.known, e.id)
	}
}

func TestKillBreakdown(t *testing.T) {
	text, total := killBreakdown(map[string]int{"ganger": 2, "drone": 3})
	assert.Equal(t, 5, total)
	drone := assets.MustEnemy("drone")
	assert.True(t, strings.HasPrefix(text, drone.Glyph+"×3"), text)
}

func TestStartScreenDraws(t *testing.T) {
	g := newTestGame(t, Config{})
	g.draw()
	sim := g.screen.(tcell.SimulationScreen)
	var row strings.Builder
	w, _ := sim.Size()
	for x := 0; x < w; x++ {
		mainc, _, _, _ := sim.GetContent(x, titleRow)
		row.WriteRune(mainc)
	}
	assert.Contains(t, row.String(), "CYBER ROGUE")
}

func TestScreenSchedulerPostsInterrupt(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()

	called := false
	ScreenScheduler{Screen: screen}.After(0, func() { called = true })
	for {
		ev := screen.PollEvent()
		require.NotNil(t, ev)
		if intr, ok := ev.(*tcell.EventInterrupt); ok {
			intr.Data().(func())()
			break
		}
	}
	assert.True(t, called)
}

// fullScreen is a screen whose event queue never has room.
type fullScreen struct{ tcell.Screen }

func (fullScreen) PostEvent(tcell.Event) error { return errors.New("event queue full") }

func TestScreenSchedulerLogsDroppedContinuation(t *testing.T) {
	logger, hook := test.NewNullLogger()
	called := false
	ScreenScheduler{Screen: fullScreen{}, Log: logger}.post(func() { called = true }, 0)

	assert.False(t, called)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Contains(t, hook.LastEntry().Message, "dropped")
}
