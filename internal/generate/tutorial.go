package generate

import (
	"cyber-rogue/assets"
	"cyber-rogue/internal/gamemap"
	"cyber-rogue/internal/random"
	"cyber-rogue/internal/state"
	"cyber-rogue/internal/system"
)

// Training layout landmarks.
var (
	tutorialSecretDoor = gamemap.Pos{X: 38, Y: 21}
	tutorialStairs     = gamemap.Pos{X: 48, Y: 27}
)

// ArsenalDummyHealth is the health of the two practice targets in the arsenal.
const ArsenalDummyHealth = 500

// Tutorial builds the fixed training level: six rooms that teach melee,
// ranged combat, armor, traps, searching and the full arsenal, plus one
// hidden room off a dead-end corridor.
func Tutorial(ids random.IDs) Result {
	g := gamemap.NewGrid(MapWidth, MapHeight)
	res := Result{Grid: g, Objectives: map[string]string{}}
	stairs := tutorialStairs
	res.Stairs = &stairs

	room := func(x, y, w, h int) gamemap.Rect {
		r := gamemap.Rect{X: x, Y: y, W: w, H: h}
		g.CarveRoom(r)
		res.Rooms = append(res.Rooms, r)
		return r
	}
	item := func(label string, def assets.ItemDef, pos gamemap.Pos) {
		it := def.Instance(ids.NewID(), pos)
		if label != "" {
			res.Objectives[label] = it.ID
		}
		res.Items = append(res.Items, it)
	}
	enemy := func(label, codexID string, pos gamemap.Pos) *state.Enemy {
		e := assets.MustEnemy(codexID).Instance(ids.NewID(), pos, 1)
		if label != "" {
			res.Objectives[label] = e.ID
		}
		res.Enemies = append(res.Enemies, e)
		return &res.Enemies[len(res.Enemies)-1]
	}

	// Melee.
	melee := room(2, 8, 8, 8)
	res.PlayerStart = melee.Center().Add(-2, 0)
	item(system.ObjWrench, assets.MustItem("wpn_pipe"), melee.Center())
	enemy(system.ObjMeleeDummy, "dummy_melee", gamemap.Pos{X: 14, Y: 12})
	g.CarveH(melee.Center().X, 14, 12)

	// Ranged.
	ranged := room(19, 8, 8, 8)
	item(system.ObjPistol, assets.MustItem("wpn_pistol1"), ranged.Center())
	enemy(system.ObjRangedDummy, "dummy_ranged", gamemap.Pos{X: 23, Y: 14})

	// Armor and waiting.
	armor := room(19, 18, 8, 8)
	item(system.ObjArmor, assets.MustItem("arm_jacket"), armor.Center())

	// Traps.
	traps := room(28, 8, 8, 8)
	res.Traps = append(res.Traps, state.Trap{Pos: traps.Center(), Kind: trapKind, Damage: 10})

	// Searching, with a security bot and a health pack for the healing lesson.
	search := room(28, 18, 8, 8)
	enemy(system.ObjSecurityBot, "sec_bot", search.Center())
	item("", assets.HealthPack, search.Center().Add(2, 0))
	g.CarveH(search.Center().X, tutorialSecretDoor.X, tutorialSecretDoor.Y+1)

	secret := gamemap.Rect{X: tutorialSecretDoor.X - 2, Y: 17, W: 5, H: 4}
	g.CarveRoom(secret)
	g.Set(tutorialSecretDoor.X, tutorialSecretDoor.Y, gamemap.TileWall)
	res.SecretRooms = append(res.SecretRooms, secret)
	res.SecretDoors = append(res.SecretDoors, state.SecretDoor{Pos: tutorialSecretDoor})
	item("", assets.ScrollTeleport, secret.Center().Add(-1, 0))
	item("", assets.ScrollInvisibility, secret.Center().Add(1, 0))

	arsenal := room(41, 2, 8, 26)

	// Corridors.
	mid2, mid3, mid4, mid5 := ranged.Center(), armor.Center(), traps.Center(), search.Center()
	g.CarveH(14, mid2.X, 12)
	g.CarveV(mid2.Y, 12, mid2.X)
	g.CarveV(mid2.Y, mid3.Y, 23)
	g.CarveH(mid2.X, 23, mid2.Y)
	g.CarveH(mid3.X, 23, mid3.Y)
	g.CarveV(mid2.Y, mid4.Y, 23)
	g.CarveH(23, mid4.X, mid4.Y)
	g.CarveV(mid4.Y, mid5.Y, 32)
	g.CarveH(mid5.X, 32, mid5.Y)
	g.CarveH(32, arsenal.X, 22)

	// Every weapon in one column, every armor piece in another.
	for i, def := range assets.Weapons {
		item("", def, gamemap.Pos{X: 43, Y: 3 + i})
	}
	for i, def := range assets.Armor {
		item("", def, gamemap.Pos{X: 46, Y: 3 + 2*i})
	}
	for _, spot := range []struct {
		codexID string
		pos     gamemap.Pos
	}{
		{"dummy_melee", gamemap.Pos{X: 45, Y: 10}},
		{"dummy_ranged", gamemap.Pos{X: 45, Y: 20}},
	} {
		e := enemy("", spot.codexID, spot.pos)
		e.Name = "Arsenal Dummy"
		e.Health, e.MaxHealth = ArsenalDummyHealth, ArsenalDummyHealth
		e.Attack = 0
		e.Rank = state.RankTraining
	}
	return res
}
