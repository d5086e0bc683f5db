package system

import (
	"testing"

	"cyber-rogue/internal/random"
	"cyber-rogue/internal/state"
)

func TestPlayerDamage(t *testing.T) {
	tests := []struct {
		name   string
		attack int
		ranged bool
		want   int
	}{
		{"melee", 10, false, 10},
		{"ranged offset", 10, true, 9},
		{"melee floor", 0, false, 1},
		{"ranged floor", 1, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlayerDamage(tt.attack, tt.ranged); got != tt.want {
				t.Errorf("PlayerDamage(%d, %v) = %d, want %d", tt.attack, tt.ranged, got, tt.want)
			}
		})
	}
}

func TestCriticalRoundsDown(t *testing.T) {
	for base, want := range map[int]int{1: 1, 2: 3, 3: 4, 7: 10, 10: 15} {
		if got := Critical(base); got != want {
			t.Errorf("Critical(%d) = %d, want %d", base, got, want)
		}
	}
}

func TestMeleeKillAwardsXP(t *testing.T) {
	s := newTestState()
	s.Level = 3
	s.Player.Attack = 10
	s.Enemies = []state.Enemy{enemyAt("e1", 2, 5, 8, 3)}

	res := MeleeAttack(s, random.NewSequence(0.5, 0.5), 0)

	if !res.Killed || res.Damage != 10 {
		t.Fatalf("result = %+v, want a 10 damage kill", res)
	}
	if len(s.Enemies) != 0 {
		t.Errorf("dead enemy should be removed, %d remain", len(s.Enemies))
	}
	if s.Player.XP != 15 {
		t.Errorf("XP = %d, want 15", s.Player.XP)
	}
	if got := s.Log.Latest(); got != "You destroyed the Street Ganger and gained 15 XP." {
		t.Errorf("latest message = %q", got)
	}
}

func TestKillXPLevelsUp(t *testing.T) {
	s := newTestState()
	s.Level = 3
	s.Player.Attack = 10
	s.Player.XP = 90
	s.Enemies = []state.Enemy{enemyAt("e1", 2, 5, 8, 3)}

	MeleeAttack(s, random.NewSequence(0.5, 0.5), 0)

	if s.Player.Level != 2 || s.Player.XP != 105 {
		t.Fatalf("level %d xp %d, want level 2 with 105 xp", s.Player.Level, s.Player.XP)
	}
	msgs := s.Log.Entries()
	kill, level := -1, -1
	for i, m := range msgs {
		switch m {
		case "You destroyed the Street Ganger and gained 15 XP.":
			kill = i
		case "You have reached level 2!":
			level = i
		}
	}
	if kill < 0 || level < 0 || level > kill {
		t.Errorf("kill message should precede the level-up, log = %q", msgs)
	}
}

func TestMeleeMiss(t *testing.T) {
	s := newTestState()
	s.Player.Attack = 10
	s.Enemies = []state.Enemy{enemyAt("e1", 2, 5, 8, 3)}

	res := MeleeAttack(s, random.NewSequence(0.05), 0)

	if !res.Missed {
		t.Fatal("expected a miss")
	}
	if s.Enemies[0].Health != 8 {
		t.Errorf("miss should not damage, health = %d", s.Enemies[0].Health)
	}
	if got := s.Log.Latest(); got != "You swing wildly and miss the Street Ganger." {
		t.Errorf("latest message = %q", got)
	}
	if snd := s.DrainSounds(); len(snd) != 1 || snd[0] != state.SoundMiss {
		t.Errorf("sounds = %v, want [miss]", snd)
	}
}

func TestMeleeCritical(t *testing.T) {
	s := newTestState()
	s.Player.Attack = 4
	s.Enemies = []state.Enemy{enemyAt("e1", 2, 5, 20, 3)}

	res := MeleeAttack(s, random.NewSequence(0.5, 0.05), 0)

	if !res.Critical || res.Damage != 6 {
		t.Fatalf("result = %+v, want a 6 damage critical", res)
	}
	if s.Enemies[0].Health != 14 {
		t.Errorf("enemy health = %d, want 14", s.Enemies[0].Health)
	}
	if got := s.Log.Latest(); got != "CRITICAL HIT! You hit the Street Ganger for 6 damage." {
		t.Errorf("latest message = %q", got)
	}
}

func TestShotAttackUsesRangedOffset(t *testing.T) {
	s := newTestState()
	s.Player.Attack = 5
	s.Enemies = []state.Enemy{enemyAt("e1", 4, 5, 20, 3)}

	res := ShotAttack(s, random.NewSequence(0.5, 0.5), 0)

	if res.Damage != 4 {
		t.Errorf("shot damage = %d, want 4", res.Damage)
	}
	if got := s.Log.Latest(); got != "You shoot the Street Ganger for 4 damage." {
		t.Errorf("latest message = %q", got)
	}
}

func TestKillXPByRank(t *testing.T) {
	tests := []struct {
		rank state.Rank
		want int
	}{
		{state.RankNormal, 10},
		{state.RankMiniBoss, 50},
		{state.RankBoss, 200},
	}
	for _, tt := range tests {
		t.Run(string(tt.rank), func(t *testing.T) {
			if got := KillXP(tt.rank, 2); got != tt.want {
				t.Errorf("KillXP(%s, 2) = %d, want %d", tt.rank, got, tt.want)
			}
		})
	}
}

func TestEnemyStrike(t *testing.T) {
	tests := []struct {
		name       string
		roll       float64
		attack     int
		defense    int
		wantHealth int
		wantMsg    string
	}{
		{"hit", 0.5, 5, 2, 97, "The Street Ganger hits you for 3 damage!"},
		{"blocked", 0.5, 5, 9, 100, "The Street Ganger attacks but you block it."},
		{"dodged", 0.1, 5, 0, 100, "The Street Ganger attacks but you dodge out of the way."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState()
			s.Player.Defense = tt.defense
			dead := EnemyStrike(s, random.NewSequence(tt.roll), enemyAt("e1", 2, 5, 10, tt.attack))
			if dead {
				t.Error("player should survive")
			}
			if s.Player.Health != tt.wantHealth {
				t.Errorf("health = %d, want %d", s.Player.Health, tt.wantHealth)
			}
			if got := s.Log.Latest(); got != tt.wantMsg {
				t.Errorf("message = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestEnemyStrikeKills(t *testing.T) {
	s := newTestState()
	s.Player.Health = 2

	dead := EnemyStrike(s, random.NewSequence(0.5), enemyAt("e1", 2, 5, 10, 5))

	if !dead {
		t.Fatal("strike should be fatal")
	}
	if s.Player.Health != 0 {
		t.Errorf("health = %d, want clamp at 0", s.Player.Health)
	}
	if s.Status != state.StatusGameOver {
		t.Errorf("status = %s, want gameOver", s.Status)
	}
}
