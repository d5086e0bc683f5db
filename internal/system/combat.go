package system

import (
	"fmt"
	"math"

	"cyber-rogue/internal/random"
	"cyber-rogue/internal/state"
)

// AttackResult holds the outcome of one player attack.
type AttackResult struct {
	Missed   bool
	Critical bool
	Damage   int
	Killed   bool
	XP       int
}

// attackText holds the log lines for one style of attack.
type attackText struct {
	miss, crit, hit string
}

var (
	bumpText = attackText{
		miss: "You swing wildly and miss the %s.",
		crit: "CRITICAL HIT! You hit the %s for %d damage.",
		hit:  "You hit the %s for %d damage.",
	}
	shotText = attackText{
		miss: "Your shot whizzes past the %s.",
		crit: "CRITICAL SHOT! You hit the %s for %d damage.",
		hit:  "You shoot the %s for %d damage.",
	}
)

// PlayerDamage returns max(1, attack-offset), where the offset is 1 for an
// attack made with a ranged weapon and 0 otherwise.
func PlayerDamage(attack int, ranged bool) int {
	offset := 0
	if ranged {
		offset = 1
	}
	return max(1, attack-offset)
}

// Critical scales damage by CritMultiplier, rounding down.
func Critical(damage int) int {
	return int(math.Floor(float64(damage) * CritMultiplier))
}

// MeleeAttack resolves the player bumping into enemy idx.
func MeleeAttack(s *state.GameState, rng random.Source, idx int) AttackResult {
	return playerAttack(s, rng, idx, bumpText, s.Player.ActiveSlot == state.Ranged)
}

// ShotAttack resolves a fired shot landing on enemy idx.
func ShotAttack(s *state.GameState, rng random.Source, idx int) AttackResult {
	return playerAttack(s, rng, idx, shotText, true)
}

// playerAttack rolls miss, then damage and critical, against enemy idx.
// A killed enemy is removed and its XP granted.
func playerAttack(s *state.GameState, rng random.Source, idx int, text attackText, ranged bool) AttackResult {
	enemy := s.Enemies[idx]
	if random.Chance(rng, PlayerMissChance) {
		s.AddMessage(fmt.Sprintf(text.miss, enemy.Name))
		s.Emit(state.SoundMiss)
		return AttackResult{Missed: true}
	}

	res := AttackResult{Damage: PlayerDamage(s.Player.Attack, ranged)}
	if random.Chance(rng, CritChance) {
		res.Critical = true
		res.Damage = Critical(res.Damage)
		s.AddMessage(fmt.Sprintf(text.crit, enemy.Name, res.Damage))
	} else {
		s.AddMessage(fmt.Sprintf(text.hit, enemy.Name, res.Damage))
	}
	s.Emit(state.SoundHit)

	enemy.Health -= res.Damage
	if enemy.Health > 0 {
		s.Enemies[idx] = enemy
		return res
	}

	res.Killed = true
	res.XP = KillXP(enemy.Rank, s.Level)
	s.Enemies = append(s.Enemies[:idx:idx], s.Enemies[idx+1:]...)
	s.AddMessage(fmt.Sprintf("You destroyed the %s and gained %d XP.", enemy.Name, res.XP))
	s.Emit(state.SoundDeath)
	GrantXP(s, res.XP)
	return res
}

// EnemyStrike resolves enemy e attacking the adjacent player. It reports
// whether the player died.
func EnemyStrike(s *state.GameState, rng random.Source, e state.Enemy) bool {
	if random.Chance(rng, EnemyMissChance) {
		s.AddMessage(fmt.Sprintf("The %s attacks but you dodge out of the way.", e.Name))
		s.Emit(state.SoundMiss)
		return false
	}
	damage := max(0, e.Attack-s.Player.Defense)
	if damage > 0 {
		s.AddMessage(fmt.Sprintf("The %s hits you for %d damage!", e.Name, damage))
		s.Emit(state.SoundHit)
	} else {
		s.AddMessage(fmt.Sprintf("The %s attacks but you block it.", e.Name))
		s.Emit(state.SoundMiss)
	}
	return Hurt(s, damage)
}

// Hurt lowers player health by damage, clamped at zero, and ends the run the
// first time health reaches zero. It reports whether the player is dead.
func Hurt(s *state.GameState, damage int) bool {
	p := &s.Player
	p.Health = max(0, p.Health-damage)
	if p.Health > 0 {
		return false
	}
	if s.Status == state.StatusPlaying {
		s.Status = state.StatusGameOver
		s.AddMessage("You have died.")
		s.Emit(state.SoundDeath)
	}
	return true
}
