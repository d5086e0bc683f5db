package system

import (
	"fmt"
	"math"

	"cyber-rogue/internal/state"
)

// Level-up gains.
const (
	LevelUpMaxHealth = 10
	LevelUpAttack    = 1
	LevelUpDefense   = 1
)

// XPToNext returns the XP threshold for leaving level.
func XPToNext(level int) int {
	return int(math.Floor(100 * math.Pow(float64(level), 1.5)))
}

// KillXP returns the XP for destroying an enemy of rank on dungeon level.
func KillXP(rank state.Rank, dungeonLevel int) int {
	mult := 5
	switch rank {
	case state.RankBoss:
		mult = 100
	case state.RankMiniBoss:
		mult = 25
	}
	return mult * dungeonLevel
}

// GrantXP adds xp to the player and resolves any level-ups it causes.
func GrantXP(s *state.GameState, xp int) {
	s.Player.XP += xp
	CheckLevelUp(s)
}

// CheckLevelUp raises the player's level while XP covers the threshold.
// Each level fully heals, adds max health and base attack, and adds base
// defense on even levels.
func CheckLevelUp(s *state.GameState) {
	p := &s.Player
	leveled := false
	for p.XPToNext > 0 && p.XP >= p.XPToNext {
		leveled = true
		p.Level++
		s.AddMessage(fmt.Sprintf("You have reached level %d!", p.Level))
		s.Emit(state.SoundLevel)

		p.MaxHealth += LevelUpMaxHealth
		p.Health = p.MaxHealth
		s.AddMessage("Max health increased. You are fully healed.")

		p.BaseAttack += LevelUpAttack
		s.AddMessage("Base attack increased.")

		if p.Level%2 == 0 {
			p.BaseDefense += LevelUpDefense
			s.AddMessage("Base defense increased.")
		}
		p.XPToNext = XPToNext(p.Level)
	}
	if leveled {
		Recalculate(p)
	}
}

// LoseXP removes xp from the player, flooring at zero.
func LoseXP(p *state.Player, xp int) {
	p.XP = max(0, p.XP-xp)
}
