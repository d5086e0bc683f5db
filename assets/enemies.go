package assets

import (
	"cyber-rogue/internal/gamemap"
	"cyber-rogue/internal/state"
)

// Glyphs drawn for the player and level features.
const (
	GlyphPlayer     = "🧑"
	GlyphStairsDown = "🔽"
	GlyphDoor       = "🚪"
	GlyphTrap       = "⚠️"
	GlyphWall       = "🧱"
	GlyphFloor      = "⬛"
	GlyphDimFloor   = "🔲"
	GlyphDimWall    = "🌑"
	GlyphProjectile = "✴️"
	GlyphTarget     = "🎯"
)

// EnemyDef is a catalog entry that enemies are stamped from.
type EnemyDef struct {
	CodexID    string
	Name       string
	Glyph      string
	Rank       state.Rank
	BaseHealth int
	BaseAttack int
}

// Instance stamps an enemy with its base stats scaled by mult.
func (d EnemyDef) Instance(id string, pos gamemap.Pos, mult float64) state.Enemy {
	hp := int(float64(d.BaseHealth) * mult)
	return state.Enemy{
		ID:        id,
		CodexID:   d.CodexID,
		Pos:       pos,
		Health:    hp,
		MaxHealth: hp,
		Attack:    int(float64(d.BaseAttack) * mult),
		Name:      d.Name,
		Glyph:     d.Glyph,
		Rank:      d.Rank,
	}
}

// SlowEnemyID is the codex id of the enemy that skips half its moves.
const SlowEnemyID = "warden"

// Enemies is the full bestiary.
var Enemies = []EnemyDef{
	// Training
	{CodexID: "dummy_melee", Name: "Training Dummy", Glyph: "🥊", Rank: state.RankTraining, BaseHealth: 10, BaseAttack: 0},
	{CodexID: "dummy_ranged", Name: "Target Drone", Glyph: "🎯", Rank: state.RankTraining, BaseHealth: 10, BaseAttack: 0},
	// Normal
	{CodexID: "rat_swarm", Name: "Cyber-Rat Swarm", Glyph: "🐀", Rank: state.RankNormal, BaseHealth: 6, BaseAttack: 3},
	{CodexID: "drone", Name: "Scout Drone", Glyph: "🛸", Rank: state.RankNormal, BaseHealth: 8, BaseAttack: 4},
	{CodexID: "sec_bot", Name: "Security Bot", Glyph: "🤖", Rank: state.RankNormal, BaseHealth: 15, BaseAttack: 5},
	{CodexID: "ganger", Name: "Street Ganger", Glyph: "🦹", Rank: state.RankNormal, BaseHealth: 12, BaseAttack: 5},
	{CodexID: "netrunner", Name: "Rogue Netrunner", Glyph: "🧟", Rank: state.RankNormal, BaseHealth: 10, BaseAttack: 6},
	{CodexID: "cyborg", Name: "Feral Cyborg", Glyph: "🦾", Rank: state.RankNormal, BaseHealth: 20, BaseAttack: 6},
	{CodexID: SlowEnemyID, Name: "Warden", Glyph: "🗿", Rank: state.RankNormal, BaseHealth: 30, BaseAttack: 8},
	// Mini-bosses
	{CodexID: "enforcer", Name: "Corp Enforcer", Glyph: "👮", Rank: state.RankMiniBoss, BaseHealth: 50, BaseAttack: 10},
	{CodexID: "mech", Name: "Assault Mech", Glyph: "🦿", Rank: state.RankMiniBoss, BaseHealth: 65, BaseAttack: 9},
	// Boss
	{CodexID: "overseer", Name: "Mainframe Overseer", Glyph: "👁️", Rank: state.RankBoss, BaseHealth: 150, BaseAttack: 15},
}

// EnemyByCodex looks up a bestiary entry.
func EnemyByCodex(codexID string) (EnemyDef, bool) {
	for _, d := range Enemies {
		if d.CodexID == codexID {
			return d, true
		}
	}
	return EnemyDef{}, false
}

// MustEnemy is EnemyByCodex for ids known at compile time.
func MustEnemy(codexID string) EnemyDef {
	d, ok := EnemyByCodex(codexID)
	if !ok {
		panic("assets: unknown enemy " + codexID)
	}
	return d
}

// EnemiesOfRank returns every entry with one of ranks.
func EnemiesOfRank(ranks ...state.Rank) []EnemyDef {
	var out []EnemyDef
	for _, d := range Enemies {
		for _, r := range ranks {
			if d.Rank == r {
				out = append(out, d)
				break
			}
		}
	}
	return out
}
