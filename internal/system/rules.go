package system

// Gameplay tunables.
const (
	FOVRadius = 8

	PlayerBaseAttack  = 2
	PlayerBaseDefense = 0

	PlayerMissChance = 0.1
	EnemyMissChance  = 0.15
	CritChance       = 0.1
	CritMultiplier   = 1.5

	TrapSearchChance       = 0.8
	SecretDoorSearchChance = 0.4

	InvisibilityTurns = 15
	BuffTurns         = 10

	// AdjacentRange is the Euclidean reach of an enemy melee strike.
	AdjacentRange = 1.5
	// SlowSkipChance is how often the slow enemy skips its move.
	SlowSkipChance = 0.5
)
