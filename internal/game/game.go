package game

import (
	"context"
	"fmt"
	"io"
	"time"

	"cyber-rogue/internal/leaderboard"
	"cyber-rogue/internal/random"
	"cyber-rogue/internal/render"
	"cyber-rogue/internal/save"
	"cyber-rogue/internal/state"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
)

// Leaderboard records finished runs. *leaderboard.Store satisfies it.
type Leaderboard interface {
	Submit(ctx context.Context, e leaderboard.Entry) (bool, error)
	Top(ctx context.Context, d state.Difficulty) ([]leaderboard.Entry, error)
}

// Spectators is told about every published state. *feed.Hub satisfies it.
type Spectators interface {
	Publish(player string, s *state.GameState)
}

// Config wires a Game to its terminal and collaborators.
type Config struct {
	Screen      tcell.Screen // the process terminal when nil
	Logger      logrus.FieldLogger
	DataDir     string
	Player      string
	FOVRadius   int
	TurnDelay   time.Duration
	Rand        random.Source
	Scheduler   Scheduler // defaults to a ScreenScheduler on Screen
	Leaderboard Leaderboard
	Spectators  Spectators
}

// screenMode is the client's top-level state machine.
type screenMode uint8

const (
	modeStart screenMode = iota
	modeDevTest
	modePlaying
	modeInventory
	modeStore
	modeCodex
	modeLeaderboard
	modeGameOver
)

// boardTimeout bounds each leaderboard query.
const boardTimeout = 5 * time.Second

// Game is the terminal client. It turns tcell events into engine actions and
// draws every published state. All of its work happens on the goroutine
// that calls Run.
type Game struct {
	screen   tcell.Screen
	renderer *render.Renderer
	engine   *Engine
	log      logrus.FieldLogger
	board    Leaderboard
	spect    Spectators
	dataDir  string
	player   string

	mode   screenMode
	cursor int
	panel  int
	status string
	quit   bool

	titleClicks int
	devLevel    string

	lastRun    RunLog
	nameInput  string
	submitted  bool
	ranked     bool
	boardDiff  state.Difficulty
	topEntries []leaderboard.Entry
}

// New creates a Game on cfg.Screen, initializing the screen.
func New(cfg Config) (*Game, error) {
	screen := cfg.Screen
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("create screen: %w", err)
		}
		screen = s
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()

	log := cfg.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	log = log.WithField("player", cfg.Player)
	sched := cfg.Scheduler
	if sched == nil {
		sched = ScreenScheduler{Screen: screen, Log: log}
	}

	g := &Game{
		screen:    screen,
		renderer:  render.NewRenderer(screen),
		log:       log,
		board:     cfg.Leaderboard,
		spect:     cfg.Spectators,
		dataDir:   cfg.DataDir,
		player:    cfg.Player,
		boardDiff: state.Easy,
	}
	g.engine = NewEngine(Options{
		Rand:      cfg.Rand,
		Scheduler: sched,
		Store:     save.NewFileStore(cfg.DataDir, cfg.Player),
		Logger:    log,
		FOVRadius: cfg.FOVRadius,
		TurnDelay: cfg.TurnDelay,
	})
	g.engine.OnSound(g.playSound)
	g.engine.OnChange(func(s *state.GameState) {
		if g.spect != nil {
			g.spect.Publish(g.player, s)
		}
	})
	g.engine.OnGameOver(g.gameOver)
	return g, nil
}

// Engine returns the engine the client drives.
func (g *Game) Engine() *Engine { return g.engine }

// Run is the main loop. It returns when the player quits or the screen
// stops delivering events.
func (g *Game) Run() {
	defer g.screen.Fini()
	g.draw()
	for !g.quit {
		ev := g.screen.PollEvent()
		if ev == nil {
			return
		}
		g.handle(ev)
		if !g.quit {
			g.draw()
		}
	}
}

// handle processes one event for the current mode.
func (g *Game) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()
		g.renderer.Resize()
	case *tcell.EventInterrupt:
		if fn, ok := ev.Data().(func()); ok {
			fn()
		}
	case *tcell.EventMouse:
		g.handleMouse(ev)
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			g.quit = true
			return
		}
		switch g.mode {
		case modeStart:
			g.handleStart(ev)
		case modeDevTest:
			g.handleDevTest(ev)
		case modePlaying:
			g.handlePlaying(ev)
		case modeInventory:
			g.handleInventory(ev)
		case modeStore:
			g.handleStore(ev)
		case modeCodex:
			g.handleCodex(ev)
		case modeLeaderboard:
			g.handleLeaderboard(ev)
		case modeGameOver:
			g.handleGameOver(ev)
		}
	}
	g.followStatus()
}

// followStatus leaves the play screens once the run stops accepting moves.
func (g *Game) followStatus() {
	s := g.engine.State()
	if s == nil || g.mode < modePlaying || g.mode > modeCodex {
		return
	}
	if s.Status == state.StatusStartScreen {
		g.setMode(modeStart)
		g.status = s.Log.Latest()
	}
}

func (g *Game) setMode(m screenMode) {
	g.mode = m
	g.cursor = 0
	g.panel = 0
}

func (g *Game) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	switch g.mode {
	case modeStart:
		if ev.Buttons()&tcell.Button1 != 0 && y == titleRow {
			g.clickTitle()
		}
	case modePlaying:
		if s := g.engine.State(); s != nil && s.Targeting {
			g.engine.Aim(g.renderer.ScreenToWorld(x, y))
		}
	}
}

func (g *Game) handlePlaying(ev *tcell.EventKey) {
	e := g.engine
	action := keyToAction(ev)
	switch action {
	case ActionQuit:
		g.quit = true
	case ActionSave:
		e.SaveRun()
	case ActionWait:
		e.Wait()
	case ActionSearch:
		e.Search()
	case ActionSwapWeapon:
		e.SwapWeapon()
	case ActionTarget:
		e.ToggleTargeting()
	case ActionToggleSFX:
		a := e.Audio()
		a.SFXOn = !a.SFXOn
		e.SetAudio(a)
	case ActionInventory:
		g.setMode(modeInventory)
	case ActionStore:
		g.setMode(modeStore)
	case ActionCodex:
		g.setMode(modeCodex)
	default:
		dx, dy := actionToDelta(action)
		if dx == 0 && dy == 0 {
			return
		}
		if s := e.State(); s != nil && s.Targeting {
			e.RangedAttack(dx, dy)
		} else {
			e.Move(dx, dy)
		}
	}
}

func (g *Game) playSound(state.Sound) {
	if g.engine.Audio().SFXOn {
		_ = g.screen.Beep()
	}
}

// ─── end of run ─────────────────────────────────────────────────────────────

// gameOver records the finished run and switches to the summary screen.
func (g *Game) gameOver(rl RunLog) {
	saveRunLog(g.dataDir, rl, g.log)
	g.lastRun = rl
	g.nameInput = truncateName(leaderboard.CleanName(g.player))
	g.submitted = false
	g.setMode(modeGameOver)
	g.loadBoard(rl.Difficulty)
	g.ranked = leaderboard.Qualifies(g.topEntries, rl.Score)
}

// canSubmit reports whether the finished run may still go on the board. A
// score that cannot beat the loaded top entries is not offered.
func (g *Game) canSubmit() bool {
	return g.board != nil && !g.submitted && g.ranked && leaderboard.Eligible(g.lastRun.Difficulty)
}

func (g *Game) submitScore() {
	ctx, cancel := context.WithTimeout(context.Background(), boardTimeout)
	defer cancel()
	entry := leaderboard.Entry{
		Name:       leaderboard.CleanName(g.nameInput),
		Score:      g.lastRun.Score,
		Level:      g.lastRun.Level,
		Difficulty: g.lastRun.Difficulty,
		At:         time.Now(),
	}
	ranked, err := g.board.Submit(ctx, entry)
	if err != nil {
		g.log.WithError(err).Warn("leaderboard submit failed")
		g.status = "Could not reach the leaderboard."
		return
	}
	g.submitted = true
	if ranked {
		g.status = "Score saved!"
	} else {
		g.status = "Score recorded, but it did not make the top 10."
	}
	g.loadBoard(entry.Difficulty)
}

// loadBoard fetches the top entries for d, keeping the old list on failure.
func (g *Game) loadBoard(d state.Difficulty) {
	g.boardDiff = d
	g.topEntries = nil
	if g.board == nil || !leaderboard.Eligible(d) {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), boardTimeout)
	defer cancel()
	entries, err := g.board.Top(ctx, d)
	if err != nil {
		g.log.WithError(err).Warn("leaderboard query failed")
		return
	}
	g.topEntries = entries
}

func (g *Game) handleGameOver(ev *tcell.EventKey) {
	if g.canSubmit() {
		switch ev.Key() {
		case tcell.KeyEnter:
			g.submitScore()
		case tcell.KeyEscape:
			g.submitted = true
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if r := []rune(g.nameInput); len(r) > 0 {
				g.nameInput = string(r[:len(r)-1])
			}
		case tcell.KeyRune:
			g.nameInput = truncateName(g.nameInput + string(ev.Rune()))
		}
		return
	}
	switch ev.Key() {
	case tcell.KeyEnter:
		g.status = ""
		g.setMode(modeStart)
	case tcell.KeyEscape:
		g.quit = true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'r', 'R':
			g.status = ""
			g.setMode(modeStart)
		case 'q', 'Q':
			g.quit = true
		}
	}
}

// maxNameRunes caps leaderboard names.
const maxNameRunes = 12

func truncateName(name string) string {
	if r := []rune(name); len(r) > maxNameRunes {
		return string(r[:maxNameRunes])
	}
	return name
}

// ─── scheduling ─────────────────────────────────────────────────────────────

// postRetries bounds how long a continuation waits for room in a full
// event queue.
const postRetries = 100

// ScreenScheduler delivers continuations through the screen's event queue
// as *tcell.EventInterrupt, so they run on the goroutine polling events.
// A continuation that never finds room in the queue is dropped and logged.
type ScreenScheduler struct {
	Screen tcell.Screen
	Log    logrus.FieldLogger
}

// After posts fn to the event queue once d has elapsed.
func (s ScreenScheduler) After(d time.Duration, fn func()) {
	time.AfterFunc(d, func() { s.post(fn, postRetries) })
}

func (s ScreenScheduler) post(fn func(), retries int) {
	err := s.Screen.PostEvent(tcell.NewEventInterrupt(fn))
	switch {
	case err == nil:
	case retries > 0:
		time.AfterFunc(10*time.Millisecond, func() { s.post(fn, retries-1) })
	case s.Log != nil:
		s.Log.WithError(err).Warn("event queue full; turn continuation dropped")
	}
}
