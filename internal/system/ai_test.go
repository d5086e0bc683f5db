package system

import (
	"testing"

	"cyber-rogue/assets"
	"cyber-rogue/internal/gamemap"
	"cyber-rogue/internal/random"
	"cyber-rogue/internal/state"
)

func TestEnemyChasesAlongLongerAxis(t *testing.T) {
	s := newTestState()
	s.Enemies = []state.Enemy{enemyAt("e1", 5, 7, 10, 3)}
	RefreshVisibility(s, FOVRadius)

	ProcessEnemies(s, random.NewSequence(0.5), FOVRadius)

	if got := s.Enemies[0].Pos; got != (gamemap.Pos{X: 4, Y: 7}) {
		t.Errorf("enemy at %v, want (4,7)", got)
	}
}

func TestEnemyFallsBackToOtherAxis(t *testing.T) {
	s := newTestState()
	s.Enemies = []state.Enemy{enemyAt("e1", 5, 7, 10, 3)}
	s.Grid.Set(4, 7, gamemap.TileWall)
	RefreshVisibility(s, FOVRadius)

	ProcessEnemies(s, random.NewSequence(0.5), FOVRadius)

	if got := s.Enemies[0].Pos; got != (gamemap.Pos{X: 5, Y: 6}) {
		t.Errorf("enemy at %v, want (5,6)", got)
	}
}

func TestEnemyAdjacentStrikes(t *testing.T) {
	s := newTestState()
	s.Enemies = []state.Enemy{enemyAt("e1", 2, 6, 10, 7)}
	RefreshVisibility(s, FOVRadius)

	ProcessEnemies(s, random.NewSequence(0.5), FOVRadius)

	if s.Player.Health != 93 {
		t.Errorf("health = %d, want 93", s.Player.Health)
	}
	if got := s.Enemies[0].Pos; got != (gamemap.Pos{X: 2, Y: 6}) {
		t.Errorf("striking enemy moved to %v", got)
	}
}

func TestEnemiesStopWhenPlayerDies(t *testing.T) {
	s := newTestState()
	s.Player.Health = 5
	s.Enemies = []state.Enemy{
		enemyAt("e1", 2, 5, 10, 9),
		enemyAt("e2", 6, 5, 10, 9),
	}
	RefreshVisibility(s, FOVRadius)

	killer := ProcessEnemies(s, random.NewSequence(0.5), FOVRadius)

	if s.Status != state.StatusGameOver {
		t.Fatalf("status = %s, want gameOver", s.Status)
	}
	if killer != "Street Ganger" {
		t.Errorf("killer = %q", killer)
	}
	if got := s.Enemies[1].Pos; got != (gamemap.Pos{X: 6, Y: 5}) {
		t.Errorf("enemy after the fatal blow moved to %v", got)
	}
}

func TestTrainingEnemiesIdle(t *testing.T) {
	s := newTestState()
	e := enemyAt("d1", 2, 5, 10, 5)
	e.Rank = state.RankTraining
	s.Enemies = []state.Enemy{e}
	RefreshVisibility(s, FOVRadius)

	ProcessEnemies(s, random.NewSequence(0.5), FOVRadius)

	if s.Player.Health != 100 {
		t.Errorf("training dummy attacked, health = %d", s.Player.Health)
	}
}

func TestSlowEnemySkips(t *testing.T) {
	tests := []struct {
		name  string
		roll  float64
		wantX int
	}{
		{"skips", 0.3, 6},
		{"moves", 0.7, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState()
			e := enemyAt("w1", 6, 5, 30, 8)
			e.CodexID = assets.SlowEnemyID
			s.Enemies = []state.Enemy{e}
			RefreshVisibility(s, FOVRadius)

			ProcessEnemies(s, random.NewSequence(tt.roll), FOVRadius)

			if got := s.Enemies[0].Pos.X; got != tt.wantX {
				t.Errorf("x = %d, want %d", got, tt.wantX)
			}
		})
	}
}

func TestUnseenEnemyIdles(t *testing.T) {
	s := newTestState()
	s.Enemies = []state.Enemy{enemyAt("e1", 4, 5, 10, 3)}
	s.Player.Buffs = []state.Buff{{Kind: state.BuffInvisibility, TurnsRemaining: 5}}
	RefreshVisibility(s, FOVRadius)

	ProcessEnemies(s, random.NewSequence(0.5), FOVRadius)

	if got := s.Enemies[0].Pos; got != (gamemap.Pos{X: 4, Y: 5}) {
		t.Errorf("enemy moved to %v while the player was invisible", got)
	}
}

func TestEnemiesDoNotStack(t *testing.T) {
	s := newTestState()
	s.Enemies = []state.Enemy{
		enemyAt("back", 5, 5, 10, 3),
		enemyAt("front", 4, 5, 10, 3),
	}
	RefreshVisibility(s, FOVRadius)

	ProcessEnemies(s, random.NewSequence(0.5), FOVRadius)

	if got := s.Enemies[0].Pos; got != (gamemap.Pos{X: 5, Y: 5}) {
		t.Errorf("blocked enemy moved to %v", got)
	}
	if got := s.Enemies[1].Pos; got != (gamemap.Pos{X: 3, Y: 5}) {
		t.Errorf("front enemy at %v, want (3,5)", got)
	}
}
