package system

import (
	"math"

	"cyber-rogue/assets"
	"cyber-rogue/internal/random"
	"cyber-rogue/internal/state"
)

// ProcessEnemies runs one turn for every hostile enemy, in list order.
// An enemy acts only when its cell is visible and it is closer than radius.
// Adjacent enemies strike; others step toward the player. Processing stops
// as soon as the player dies, and the killer's name is returned.
func ProcessEnemies(s *state.GameState, rng random.Source, radius int) string {
	for i := range s.Enemies {
		e := s.Enemies[i]
		if e.Rank == state.RankTraining {
			continue
		}
		p := s.Player.Pos
		dist := math.Hypot(float64(p.X-e.Pos.X), float64(p.Y-e.Pos.Y))
		if !s.IsVisible(e.Pos) || dist >= float64(radius) {
			continue
		}

		if dist <= AdjacentRange {
			if EnemyStrike(s, rng, e) {
				return e.Name
			}
			continue
		}

		if e.CodexID == assets.SlowEnemyID && random.Chance(rng, SlowSkipChance) {
			continue
		}
		if next, ok := chaseStep(s, e.Pos, p); ok {
			s.Enemies[i].Pos = next
		}
	}
	return ""
}
