package system

import (
	"testing"

	"cyber-rogue/internal/gamemap"
	"cyber-rogue/internal/state"
)

func TestTryMove(t *testing.T) {
	s := newTestState()
	s.Player.Pos = gamemap.Pos{X: 1, Y: 1}
	s.Enemies = []state.Enemy{enemyAt("e1", 2, 1, 10, 3)}
	s.Grid.Set(1, 2, gamemap.TileWall)
	s.SecretDoors = []state.SecretDoor{
		{Pos: gamemap.Pos{X: 0, Y: 1}, Revealed: true},
		{Pos: gamemap.Pos{X: 1, Y: 0}},
	}

	tests := []struct {
		name    string
		dx, dy  int
		want    MoveResult
		wantIdx int
	}{
		{"enemy", 1, 0, MoveAttack, 0},
		{"plain wall", 0, 1, MoveBlocked, -1},
		{"revealed door", -1, 0, MoveDoor, 0},
		{"hidden door", 0, -1, MoveBlocked, -1},
		{"floor", 1, 1, MoveOK, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, idx := TryMove(s, tt.dx, tt.dy)
			if got != tt.want || idx != tt.wantIdx {
				t.Errorf("TryMove(%d,%d) = %d,%d, want %d,%d", tt.dx, tt.dy, got, idx, tt.want, tt.wantIdx)
			}
		})
	}
}

func TestTryMoveOutOfBounds(t *testing.T) {
	s := newTestState()
	s.Player.Pos = gamemap.Pos{X: 0, Y: 0}
	if got, _ := TryMove(s, -1, 0); got != MoveBlocked {
		t.Errorf("off-map move = %d, want MoveBlocked", got)
	}
}

func TestIsCardinal(t *testing.T) {
	tests := []struct {
		dx, dy int
		want   bool
	}{
		{0, -1, true},
		{1, 0, true},
		{0, 0, false},
		{1, 1, false},
		{2, 0, false},
	}
	for _, tt := range tests {
		if got := IsCardinal(tt.dx, tt.dy); got != tt.want {
			t.Errorf("IsCardinal(%d,%d) = %v, want %v", tt.dx, tt.dy, got, tt.want)
		}
	}
}
