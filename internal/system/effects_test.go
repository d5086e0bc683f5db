package system

import (
	"testing"

	"cyber-rogue/internal/state"
)

func TestRecalculate(t *testing.T) {
	p := state.Player{
		BaseAttack:     3,
		BaseDefense:    1,
		AttackUpgrades: 2,
		HealthUpgrades: 1,
		Melee:          &state.Item{Value: 4},
		Ranged:         &state.Item{Value: 9},
		Armor:          &state.Item{Value: 2},
		ActiveSlot:     state.Melee,
		Buffs: []state.Buff{
			{Kind: state.BuffAttack, Value: 2, TurnsRemaining: 3},
			{Kind: state.BuffDefense, Value: 1, TurnsRemaining: 3},
			{Kind: state.BuffInvisibility, Value: 0, TurnsRemaining: 3},
		},
	}
	Recalculate(&p)
	if p.Attack != 11 || p.Defense != 5 {
		t.Errorf("melee: attack/defense = %d/%d, want 11/5", p.Attack, p.Defense)
	}

	p.ActiveSlot = state.Ranged
	Recalculate(&p)
	if p.Attack != 16 {
		t.Errorf("ranged: attack = %d, want 16", p.Attack)
	}

	p.Ranged = nil
	Recalculate(&p)
	if p.Attack != 7 {
		t.Errorf("empty slot: attack = %d, want 7", p.Attack)
	}
}

func TestBuffExpiresAfterOneTurn(t *testing.T) {
	s := newTestState()
	ApplyBuff(&s.Player, state.BuffAttack, 2, 1)
	if s.Player.Attack != PlayerBaseAttack+2 {
		t.Fatalf("buffed attack = %d", s.Player.Attack)
	}

	TickBuffs(s)

	if len(s.Player.Buffs) != 0 {
		t.Errorf("buff should be gone, have %v", s.Player.Buffs)
	}
	if s.Player.Attack != PlayerBaseAttack {
		t.Errorf("attack = %d after expiry, want %d", s.Player.Attack, PlayerBaseAttack)
	}
	if got := s.Log.Latest(); got != "Your attack boost has worn off." {
		t.Errorf("message = %q", got)
	}
}

func TestTickBuffsCountsDown(t *testing.T) {
	s := newTestState()
	ApplyBuff(&s.Player, state.BuffDefense, 2, 3)
	ApplyBuff(&s.Player, state.BuffInvisibility, 0, 1)

	TickBuffs(s)

	if len(s.Player.Buffs) != 1 {
		t.Fatalf("want 1 buff left, have %d", len(s.Player.Buffs))
	}
	if got := s.Player.Buffs[0].TurnsRemaining; got != 2 {
		t.Errorf("turns remaining = %d, want 2", got)
	}
	if got := s.Log.Latest(); got != "Your invisibility has worn off." {
		t.Errorf("message = %q", got)
	}
}

func TestTickBuffsDoesNotAliasPrevious(t *testing.T) {
	s := newTestState()
	ApplyBuff(&s.Player, state.BuffDefense, 2, 3)
	before := s.Clone()

	TickBuffs(s)

	if got := before.Player.Buffs[0].TurnsRemaining; got != 3 {
		t.Errorf("earlier state saw turns = %d, want 3", got)
	}
}
