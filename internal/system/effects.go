package system

import (
	"fmt"
	"strings"

	"cyber-rogue/internal/state"
)

// Recalculate derives attack and defense from base stats, upgrades, the
// active weapon, armor and running buffs. Call it after any change to those.
func Recalculate(p *state.Player) {
	attack := p.BaseAttack + p.AttackUpgrades
	defense := p.BaseDefense + p.HealthUpgrades
	if w := p.ActiveWeapon(); w != nil {
		attack += w.Value
	}
	if p.Armor != nil {
		defense += p.Armor.Value
	}
	for _, b := range p.Buffs {
		switch b.Kind {
		case state.BuffAttack:
			attack += b.Value
		case state.BuffDefense:
			defense += b.Value
		}
	}
	p.Attack = attack
	p.Defense = defense
}

// ApplyBuff starts a timed buff. Buffs of the same kind stack.
func ApplyBuff(p *state.Player, kind state.BuffKind, value, turns int) {
	p.Buffs = append(p.Buffs, state.Buff{Kind: kind, Value: value, TurnsRemaining: turns})
	Recalculate(p)
}

// TickBuffs counts every buff down by one turn and drops the ones that run
// out, logging one message per expiry.
func TickBuffs(s *state.GameState) {
	p := &s.Player
	active := p.Buffs[:0:0]
	var expired []state.Buff
	for _, b := range p.Buffs {
		b.TurnsRemaining--
		if b.TurnsRemaining > 0 {
			active = append(active, b)
		} else {
			expired = append(expired, b)
		}
	}
	p.Buffs = active
	for _, b := range expired {
		s.AddMessage(fmt.Sprintf("Your %s has worn off.", strings.Replace(string(b.Kind), "_", " ", 1)))
	}
	if len(expired) > 0 {
		Recalculate(p)
	}
}
