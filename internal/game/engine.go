package game

import (
	"time"

	"cyber-rogue/assets"
	"cyber-rogue/internal/gamemap"
	"cyber-rogue/internal/random"
	"cyber-rogue/internal/save"
	"cyber-rogue/internal/state"
	"cyber-rogue/internal/system"

	"github.com/sirupsen/logrus"
)

// Pacing of the two-phase turn.
const (
	TurnDelay        = 50 * time.Millisecond
	ProjectileLinger = 200 * time.Millisecond
)

// Scheduler runs fn once, after d, on the goroutine that drives the Engine.
// A scheduled fn is never cancelled.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// Store persists one run. *save.FileStore satisfies it.
type Store interface {
	Save(save.Record) error
	Load() (save.Record, error)
	Delete() error
}

// Options configures an Engine. Zero fields get production defaults.
type Options struct {
	Rand      random.Source
	IDs       random.IDs
	Scheduler Scheduler
	Store     Store
	Logger    logrus.FieldLogger
	FOVRadius int
	TurnDelay time.Duration
}

// Engine owns the current run and turns player actions into new states.
//
// Every transition works on a clone, so a *state.GameState returned by State
// is never modified afterwards. An Engine is not safe for concurrent use; all
// methods and scheduled continuations must run on one goroutine.
type Engine struct {
	state *state.GameState
	rng   random.Source
	ids   random.IDs
	sched Scheduler
	store Store
	log   logrus.FieldLogger
	fov   int
	delay time.Duration

	locked bool
	epoch  int // bumped by StartRun and LoadRun; stale continuations only unlock

	audio  save.Audio
	stock  []assets.ItemDef
	run    RunLog
	notice string

	onSound    func(state.Sound)
	onChange   func(*state.GameState)
	onGameOver func(RunLog)
}

// NewEngine returns an Engine with no run in progress.
func NewEngine(opts Options) *Engine {
	e := &Engine{
		rng:   opts.Rand,
		ids:   opts.IDs,
		sched: opts.Scheduler,
		store: opts.Store,
		log:   opts.Logger,
		fov:   opts.FOVRadius,
		delay: opts.TurnDelay,
		audio: save.DefaultAudio(),
	}
	if e.rng == nil {
		e.rng = random.New()
	}
	if e.ids == nil {
		e.ids = random.UUIDs{}
	}
	if e.sched == nil {
		e.sched = Immediate{}
	}
	if e.log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		e.log = l
	}
	if e.fov <= 0 {
		e.fov = system.FOVRadius
	}
	if e.delay <= 0 {
		e.delay = TurnDelay
	}
	return e
}

// Immediate is a Scheduler that runs continuations synchronously.
type Immediate struct{}

// After calls fn at once.
func (Immediate) After(_ time.Duration, fn func()) { fn() }

// State returns the current state, or nil before the first run.
func (e *Engine) State() *state.GameState { return e.state }

// Locked reports whether an action is waiting for world resolution.
func (e *Engine) Locked() bool { return e.locked }

// Audio returns the sound preferences saved with the run.
func (e *Engine) Audio() save.Audio { return e.audio }

// SetAudio replaces the sound preferences.
func (e *Engine) SetAudio(a save.Audio) { e.audio = a }

// RunLog returns the statistics of the current run.
func (e *Engine) RunLog() RunLog { return e.run.clone() }

// Notice returns the message left by the last failed load, if any.
func (e *Engine) Notice() string { return e.notice }

// OnSound registers the listener for audio cues.
func (e *Engine) OnSound(fn func(state.Sound)) { e.onSound = fn }

// OnChange registers a listener called with every new state.
func (e *Engine) OnChange(fn func(*state.GameState)) { e.onChange = fn }

// OnGameOver registers a listener called once when the player dies.
func (e *Engine) OnGameOver(fn func(RunLog)) { e.onGameOver = fn }

// ─── two-phase turn ─────────────────────────────────────────────────────────

// Submit admits one player action. It is a no-op returning false when no run
// is playing or a previous action is still resolving. Otherwise apply runs
// against a clone of the current state, the result is published, the turn
// lock is taken, and ResolveWorld is scheduled after the turn delay.
// apply may return a different state, as a level transition does.
func (e *Engine) Submit(apply func(*state.GameState) *state.GameState) bool {
	if e.state == nil || !e.state.Playing() || e.locked {
		return false
	}
	e.locked = true
	prev := e.state
	bossBefore := prev.LevelBoss()

	next := apply(prev.Clone())
	if next.Level != prev.Level {
		e.enterLevel(next)
	} else {
		e.countKills(prev, next)
		if next.Playing() && bossBefore != nil && next.EnemyByID(bossBefore.ID) < 0 {
			e.openWayDown(next, *bossBefore)
		}
	}
	if next.Status == state.StatusGameOver {
		e.run.CauseOfDeath = "spike trap"
	}
	e.run.Turns++
	e.publish(next)

	epoch := e.epoch
	e.sched.After(e.delay, func() {
		if epoch != e.epoch {
			return
		}
		e.ResolveWorld()
	})
	return true
}

// ResolveWorld runs the world's half of the turn: buffs tick down, enemies
// act, the tutorial is checked and visibility refreshed. Only visibility is
// refreshed once the run has ended. It releases the turn lock; calling it
// while unlocked does nothing.
func (e *Engine) ResolveWorld() {
	if !e.locked || e.state == nil {
		return
	}
	s := e.state.Clone()
	if s.Playing() {
		system.TickBuffs(s)
		if killer := system.ProcessEnemies(s, e.rng, e.fov); killer != "" {
			e.run.CauseOfDeath = killer
		}
		system.AdvanceTutorial(s)
	}
	system.RefreshVisibility(s, e.fov)
	e.locked = false
	e.publish(s)
}

// update publishes a transition that takes no turn: it needs a playing run
// but ignores the turn lock.
func (e *Engine) update(apply func(*state.GameState)) bool {
	if e.state == nil || !e.state.Playing() {
		return false
	}
	next := e.state.Clone()
	apply(next)
	e.publish(next)
	return true
}

func (e *Engine) publish(s *state.GameState) {
	e.state = s
	for _, snd := range s.DrainSounds() {
		if e.onSound != nil {
			e.onSound(snd)
		}
	}
	if e.onChange != nil {
		e.onChange(s)
	}
	if s.Status == state.StatusGameOver && !e.run.Ended {
		e.finishRun(s)
	}
}

// openWayDown moves the stairs to the boss room once its boss falls.
func (e *Engine) openWayDown(s *state.GameState, boss state.Enemy) {
	stairs := boss.Pos
	if s.BossRoom != nil {
		stairs = s.BossRoom.Center()
	}
	s.Stairs = &stairs
	s.AddMessage("The way down is now open.")
	s.Emit(state.SoundLevel)
	e.log.WithFields(logrus.Fields{"level": s.Level, "boss": boss.CodexID}).Info("level boss destroyed")
}

func (e *Engine) countKills(prev, next *state.GameState) {
	for _, en := range prev.Enemies {
		if next.EnemyByID(en.ID) < 0 {
			e.run.EnemiesKilled[en.CodexID]++
		}
	}
}

func (e *Engine) finishRun(s *state.GameState) {
	e.run.Ended = true
	e.run.Level = max(e.run.Level, s.Level)
	e.run.Score = s.Score()
	e.log.WithFields(logrus.Fields{
		"level": s.Level,
		"score": e.run.Score,
		"turns": e.run.Turns,
		"cause": e.run.CauseOfDeath,
	}).Info("run ended")
	if e.onGameOver != nil {
		e.onGameOver(e.run.clone())
	}
}

// ─── frame ──────────────────────────────────────────────────────────────────

// Frame is what a renderer needs to draw one screen.
type Frame struct {
	State   *state.GameState
	Preview []gamemap.Pos // aim line from the player to the target, while targeting
}

// Frame returns the current render frame.
func (e *Engine) Frame() Frame {
	f := Frame{State: e.state}
	if s := e.state; s != nil && s.Targeting && s.Target != nil {
		f.Preview = Line(s.Player.Pos, *s.Target)
	}
	return f
}

// Line returns the cells from a to b inclusive, by Bresenham's algorithm.
func Line(a, b gamemap.Pos) []gamemap.Pos {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	errv := dx + dy
	var out []gamemap.Pos
	for p := a; ; {
		out = append(out, p)
		if p == b {
			return out
		}
		e2 := 2 * errv
		if e2 >= dy {
			errv += dy
			p.X += sx
		}
		if e2 <= dx {
			errv += dx
			p.Y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
