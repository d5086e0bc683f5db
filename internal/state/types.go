// Package state defines the game-state aggregate and the entities it owns.
package state

import "cyber-rogue/internal/gamemap"

// ItemKind is the broad category of an item.
type ItemKind string

const (
	KindWeapon ItemKind = "weapon"
	KindArmor  ItemKind = "armor"
	KindPotion ItemKind = "potion"
	KindGold   ItemKind = "gold"
	KindScroll ItemKind = "scroll"
	KindBuff   ItemKind = "buff"
)

// WeaponKind selects the equipment slot of a weapon.
type WeaponKind string

const (
	Melee  WeaponKind = "melee"
	Ranged WeaponKind = "ranged"
)

// ScrollKind is the effect of a scroll.
type ScrollKind string

const (
	ScrollTeleport     ScrollKind = "teleport"
	ScrollInvisibility ScrollKind = "invisibility"
)

// BuffKind is a timed player modifier.
type BuffKind string

const (
	BuffAttack       BuffKind = "attack_boost"
	BuffDefense      BuffKind = "defense_boost"
	BuffInvisibility BuffKind = "invisibility"
)

// Rarity is the display grade of an item.
type Rarity string

const (
	Common    Rarity = "common"
	Uncommon  Rarity = "uncommon"
	Rare      Rarity = "rare"
	Epic      Rarity = "epic"
	Legendary Rarity = "legendary"
)

// Rank controls XP yield, combat participation and stair gating.
type Rank string

const (
	RankNormal   Rank = "normal"
	RankMiniBoss Rank = "mini-boss"
	RankBoss     Rank = "boss"
	RankTraining Rank = "training"
)

// Item is one item instance, on the ground or carried.
// Carried items sit at gamemap.Held.
type Item struct {
	ID       string      `json:"id"`
	CodexID  string      `json:"codexId"`
	Name     string      `json:"name"`
	Pos      gamemap.Pos `json:"position"`
	Kind     ItemKind    `json:"type"`
	Value    int         `json:"value"`
	Tier     int         `json:"tier"`
	Rarity   Rarity      `json:"rarity,omitempty"`
	Weapon   WeaponKind  `json:"weaponType,omitempty"`
	Scroll   ScrollKind  `json:"scrollType,omitempty"`
	Buff     BuffKind    `json:"buffType,omitempty"`
	Equipped bool        `json:"equipped,omitempty"`
}

// Enemy is one hostile instance on the level.
type Enemy struct {
	ID        string      `json:"id"`
	CodexID   string      `json:"codexId"`
	Pos       gamemap.Pos `json:"position"`
	Health    int         `json:"health"`
	MaxHealth int         `json:"maxHealth"`
	Attack    int         `json:"attack"`
	Name      string      `json:"name"`
	Glyph     string      `json:"char"`
	Rank      Rank        `json:"rank"`
	LevelBoss bool        `json:"isLevelBoss,omitempty"`
}

// Trap is a floor hazard that fires once.
type Trap struct {
	Pos       gamemap.Pos `json:"position"`
	Kind      string      `json:"type"`
	Damage    int         `json:"damage"`
	Revealed  bool        `json:"revealed"`
	Triggered bool        `json:"triggered"`
}

// SecretDoor is a wall cell that opens once revealed.
type SecretDoor struct {
	Pos      gamemap.Pos `json:"position"`
	Revealed bool        `json:"revealed"`
}

// Buff is a timed modifier on the player.
type Buff struct {
	Kind           BuffKind `json:"type"`
	Value          int      `json:"value"`
	TurnsRemaining int      `json:"turnsRemaining"`
}

// Player holds the hero's stats, equipment and pack.
// Attack and Defense are derived; see system.Recalculate.
type Player struct {
	Pos            gamemap.Pos `json:"position"`
	Health         int         `json:"health"`
	MaxHealth      int         `json:"maxHealth"`
	Attack         int         `json:"attack"`
	Defense        int         `json:"defense"`
	BaseAttack     int         `json:"baseAttack"`
	BaseDefense    int         `json:"baseDefense"`
	Level          int         `json:"level"`
	XP             int         `json:"xp"`
	XPToNext       int         `json:"xpToNextLevel"`
	Gold           int         `json:"gold"`
	Melee          *Item       `json:"meleeWeapon"`
	Ranged         *Item       `json:"rangedWeapon"`
	ActiveSlot     WeaponKind  `json:"activeWeaponSlot"`
	Armor          *Item       `json:"armor"`
	Inventory      []Item      `json:"inventory"`
	Buffs          []Buff      `json:"buffs"`
	HealthUpgrades int         `json:"healthUpgrades"`
	AttackUpgrades int         `json:"attackUpgrades"`
}

// ActiveWeapon returns the weapon in the active slot, or nil.
func (p *Player) ActiveWeapon() *Item {
	if p.ActiveSlot == Ranged {
		return p.Ranged
	}
	return p.Melee
}

// HasBuff reports whether a buff of kind is running.
func (p *Player) HasBuff(kind BuffKind) bool {
	for _, b := range p.Buffs {
		if b.Kind == kind {
			return true
		}
	}
	return false
}

// InventoryIndex returns the pack index of item id, or -1.
func (p *Player) InventoryIndex(id string) int {
	for i, it := range p.Inventory {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Tutorial tracks progress through the training level.
type Tutorial struct {
	Step       int               `json:"step"`
	Hint       string            `json:"hint"`
	Objectives map[string]string `json:"objectives"`
}
