package generate

import (
	"math"

	"cyber-rogue/assets"
	"cyber-rogue/internal/gamemap"
	"cyber-rogue/internal/random"
	"cyber-rogue/internal/state"

	"github.com/zyedidia/generic/mapset"
)

// Spawn tuning.
const (
	spawnAttempts   = 20
	goldChance      = 0.2
	trapKind        = "spike"
	enemyScale      = 0.1
	bossScale       = 0.15
	gearChance      = 0.4
	specialChance   = 0.7 // cumulative with gearChance
	minPopulatedMap = 3
)

// EnemyMultiplier scales enemy counts by difficulty. Hard is deliberately
// the same as the default.
func EnemyMultiplier(d state.Difficulty) float64 {
	switch d {
	case state.Easy:
		return 0.8
	case state.Difficult:
		return 1.5
	}
	return 1
}

// LootTier is the highest equipment tier that spawns on level.
func LootTier(level int) int {
	return min(3, int(math.Ceil(float64(level)/4))+1)
}

// populator places enemies, loot and traps for one level.
type populator struct {
	g   *gamemap.Grid
	cfg Config
	res *Result
}

func newPopulator(g *gamemap.Grid, cfg Config, res *Result) *populator {
	return &populator{g: g, cfg: cfg, res: res}
}

func (p *populator) rng() random.Source { return p.cfg.Rand }

// occupied returns the packed indices already claimed by a spawn, the player
// start or the stairs.
func (p *populator) occupied() mapset.Set[int] {
	taken := mapset.New[int]()
	claim := func(pos gamemap.Pos) {
		if p.g.InBounds(pos.X, pos.Y) {
			taken.Put(p.g.Index(pos))
		}
	}
	for _, it := range p.res.Items {
		claim(it.Pos)
	}
	for _, e := range p.res.Enemies {
		claim(e.Pos)
	}
	for _, t := range p.res.Traps {
		claim(t.Pos)
	}
	claim(p.res.PlayerStart)
	if p.res.Stairs != nil {
		claim(*p.res.Stairs)
	}
	return taken
}

// emptyCell picks an unclaimed cell inside room's interior, giving up after
// spawnAttempts tries.
func (p *populator) emptyCell(room gamemap.Rect) (gamemap.Pos, bool) {
	taken := p.occupied()
	for range spawnAttempts {
		pos := gamemap.Pos{
			X: room.X + 1 + intn(p.rng(), room.W-2),
			Y: room.Y + 1 + intn(p.rng(), room.H-2),
		}
		if !taken.Has(p.g.Index(pos)) {
			return pos, true
		}
	}
	return gamemap.Pos{}, false
}

// populateRooms spawns enemies, floor loot and traps in every room except the
// first (player start) and the last (boss room). Levels with fewer than three
// rooms stay empty.
func (p *populator) populateRooms() {
	rooms := p.res.Rooms
	if len(rooms) < minPopulatedMap {
		return
	}
	spawnRooms := rooms[1 : len(rooms)-1]
	level := p.cfg.Level
	pick := func() (gamemap.Pos, bool) {
		return p.emptyCell(spawnRooms[intn(p.rng(), len(spawnRooms))])
	}

	numEnemies := int(math.Floor(float64(2+level) * EnemyMultiplier(p.cfg.Difficulty)))
	numItems := 2 + level/2
	numTraps := 1 + level/3

	bestiary := assets.EnemiesOfRank(state.RankNormal)
	if level >= 5 {
		bestiary = assets.EnemiesOfRank(state.RankNormal, state.RankMiniBoss)
	}
	for range numEnemies {
		pos, ok := pick()
		if !ok || len(bestiary) == 0 {
			continue
		}
		def := bestiary[intn(p.rng(), len(bestiary))]
		p.res.Enemies = append(p.res.Enemies, def.Instance(p.cfg.IDs.NewID(), pos, 1+float64(level)*enemyScale))
	}

	gear := assets.Equipment(1, LootTier(level))
	for range numItems {
		pos, ok := pick()
		if !ok {
			continue
		}
		if random.Chance(p.rng(), goldChance) {
			value := 10 + intn(p.rng(), level*5)
			p.res.Items = append(p.res.Items, assets.Gold(p.cfg.IDs.NewID(), "Credits", value, pos))
		} else if len(gear) > 0 {
			def := gear[intn(p.rng(), len(gear))]
			p.res.Items = append(p.res.Items, def.Instance(p.cfg.IDs.NewID(), pos))
		}
	}

	for range numTraps {
		pos, ok := pick()
		if !ok {
			continue
		}
		p.res.Traps = append(p.res.Traps, state.Trap{Pos: pos, Kind: trapKind, Damage: 5 + level})
	}
}

// stockSecretRooms puts one reward in each secret room: strong gear, a
// special consumable or a credit cache.
func (p *populator) stockSecretRooms() {
	tier := LootTier(p.cfg.Level)
	strong := assets.Equipment(tier-1, tier)
	for _, room := range p.res.SecretRooms {
		pos, ok := p.emptyCell(room)
		if !ok {
			continue
		}
		id := p.cfg.IDs.NewID()
		roll := p.rng().Float64()
		switch {
		case roll < gearChance && len(strong) > 0:
			def := strong[intn(p.rng(), len(strong))]
			p.res.Items = append(p.res.Items, def.Instance(id, pos))
		case roll < specialChance:
			def := assets.Specials[intn(p.rng(), len(assets.Specials))]
			p.res.Items = append(p.res.Items, def.Instance(id, pos))
		default:
			value := 50 + intn(p.rng(), p.cfg.Level*10)
			p.res.Items = append(p.res.Items, assets.Gold(id, "Credits Cache", value, pos))
		}
	}
}

// placeBoss guards the boss room on every fifth level: the overseer on every
// tenth, a random mini-boss otherwise. A guarded level has no stairs until the
// guard falls.
func (p *populator) placeBoss() {
	level := p.cfg.Level
	if level <= 0 || level%5 != 0 || p.res.BossRoom == nil {
		return
	}
	pos := p.res.BossRoom.Center()

	var (
		def   assets.EnemyDef
		found bool
		scale = enemyScale
	)
	if level%10 == 0 {
		if bosses := assets.EnemiesOfRank(state.RankBoss); len(bosses) > 0 {
			def, found = bosses[0], true
		}
		scale = bossScale
	} else if minis := assets.EnemiesOfRank(state.RankMiniBoss); len(minis) > 0 {
		def, found = minis[intn(p.rng(), len(minis))], true
	}
	if found {
		boss := def.Instance(p.cfg.IDs.NewID(), pos, 1+float64(level)*scale)
		boss.LevelBoss = true
		p.res.Enemies = append(p.res.Enemies, boss)
	}
	p.res.Stairs = nil
}
