package assets

import (
	"cyber-rogue/internal/gamemap"
	"cyber-rogue/internal/state"
)

// ItemDef is a catalog entry that item instances are stamped from.
type ItemDef struct {
	CodexID string
	Name    string
	Kind    state.ItemKind
	Value   int
	Tier    int
	Weapon  state.WeaponKind
	Scroll  state.ScrollKind
	Buff    state.BuffKind
	Rarity  state.Rarity
	Cost    int // explicit store price; 0 means derive from value and tier
}

// Instance stamps a new item with identity id at pos.
func (d ItemDef) Instance(id string, pos gamemap.Pos) state.Item {
	return state.Item{
		ID:      id,
		CodexID: d.CodexID,
		Name:    d.Name,
		Pos:     pos,
		Kind:    d.Kind,
		Value:   d.Value,
		Tier:    d.Tier,
		Rarity:  d.Rarity,
		Weapon:  d.Weapon,
		Scroll:  d.Scroll,
		Buff:    d.Buff,
	}
}

// Weapons lists every weapon, weakest first within each tier.
var Weapons = []ItemDef{
	{CodexID: "wpn_pipe", Name: "Pipe Wrench", Kind: state.KindWeapon, Value: 2, Tier: 1, Weapon: state.Melee, Rarity: state.Common},
	{CodexID: "wpn_baton", Name: "Energy Baton", Kind: state.KindWeapon, Value: 3, Tier: 1, Weapon: state.Melee, Rarity: state.Common},
	{CodexID: "wpn_smg", Name: "Submachine Gun", Kind: state.KindWeapon, Value: 2, Tier: 1, Weapon: state.Ranged, Rarity: state.Common},
	{CodexID: "wpn_pistol1", Name: "Laser Pistol", Kind: state.KindWeapon, Value: 3, Tier: 1, Weapon: state.Ranged, Rarity: state.Common},
	{CodexID: "wpn_knife", Name: "Combat Knife", Kind: state.KindWeapon, Value: 4, Tier: 1, Weapon: state.Melee, Rarity: state.Uncommon},
	{CodexID: "wpn_shotgun", Name: "Scattergun", Kind: state.KindWeapon, Value: 6, Tier: 2, Weapon: state.Ranged, Rarity: state.Uncommon},
	{CodexID: "wpn_sword", Name: "Vibro-Blade", Kind: state.KindWeapon, Value: 7, Tier: 2, Weapon: state.Melee, Rarity: state.Uncommon},
	{CodexID: "wpn_chainsword", Name: "Chainsword", Kind: state.KindWeapon, Value: 8, Tier: 2, Weapon: state.Melee, Rarity: state.Rare},
	{CodexID: "wpn_rifle1", Name: "Pulse Rifle", Kind: state.KindWeapon, Value: 8, Tier: 2, Weapon: state.Ranged, Rarity: state.Rare},
	{CodexID: "wpn_hammer", Name: "Power Sledge", Kind: state.KindWeapon, Value: 10, Tier: 3, Weapon: state.Melee, Rarity: state.Rare},
	{CodexID: "wpn_plasma", Name: "Plasma Rifle", Kind: state.KindWeapon, Value: 12, Tier: 3, Weapon: state.Ranged, Rarity: state.Epic},
	{CodexID: "wpn_railgun", Name: "Railgun", Kind: state.KindWeapon, Value: 15, Tier: 3, Weapon: state.Ranged, Rarity: state.Epic},
	{CodexID: "wpn_sniper", Name: "Sniper Rifle", Kind: state.KindWeapon, Value: 18, Tier: 3, Weapon: state.Ranged, Rarity: state.Legendary},
}

// Armor lists every armor piece.
var Armor = []ItemDef{
	{CodexID: "arm_jacket", Name: "Flak Jacket", Kind: state.KindArmor, Value: 1, Tier: 1, Rarity: state.Common},
	{CodexID: "arm_vest1", Name: "Ballistic Vest", Kind: state.KindArmor, Value: 2, Tier: 1, Rarity: state.Common},
	{CodexID: "arm_vest2", Name: "Combat Armor", Kind: state.KindArmor, Value: 3, Tier: 2, Rarity: state.Uncommon},
	{CodexID: "arm_plating1", Name: "Ceramic Plating", Kind: state.KindArmor, Value: 4, Tier: 2, Rarity: state.Rare},
	{CodexID: "arm_plating2", Name: "Titanium Plating", Kind: state.KindArmor, Value: 5, Tier: 3, Rarity: state.Rare},
	{CodexID: "arm_exosuit", Name: "Exo-Frame", Kind: state.KindArmor, Value: 7, Tier: 3, Rarity: state.Epic},
}

// Special consumables found in secret rooms.
var (
	ScrollTeleport     = ItemDef{CodexID: "scroll_teleport", Name: "Scroll of Teleport", Kind: state.KindScroll, Tier: 1, Scroll: state.ScrollTeleport, Rarity: state.Uncommon}
	ScrollInvisibility = ItemDef{CodexID: "scroll_invisibility", Name: "Scroll of Invisibility", Kind: state.KindScroll, Tier: 1, Scroll: state.ScrollInvisibility, Rarity: state.Uncommon}
	AttackBoost        = ItemDef{CodexID: "buff_attack", Name: "Attack Boost", Kind: state.KindBuff, Value: 2, Tier: 1, Buff: state.BuffAttack, Rarity: state.Uncommon, Cost: 50}
	DefenseBoost       = ItemDef{CodexID: "buff_defense", Name: "Defense Boost", Kind: state.KindBuff, Value: 2, Tier: 1, Buff: state.BuffDefense, Rarity: state.Uncommon, Cost: 50}
	HealthPack         = ItemDef{CodexID: "potion_health", Name: "Health Pack", Kind: state.KindPotion, Value: 25, Tier: 1, Rarity: state.Common, Cost: 25}
	LargeHealthPack    = ItemDef{CodexID: "potion_health_large", Name: "Large Health Pack", Kind: state.KindPotion, Value: 75, Tier: 2, Rarity: state.Uncommon, Cost: 75}
)

// Specials is the secret-room consumable pool.
var Specials = []ItemDef{ScrollTeleport, ScrollInvisibility, AttackBoost, DefenseBoost}

// GoldCodexID is the codex entry shared by every credit pickup.
const GoldCodexID = "gold"

// Gold returns a credit pickup worth value.
func Gold(id, name string, value int, pos gamemap.Pos) state.Item {
	return state.Item{ID: id, CodexID: GoldCodexID, Name: name, Pos: pos, Kind: state.KindGold, Value: value, Tier: 1, Rarity: state.Common}
}

// Equipment returns every weapon and armor piece with tier in [minTier, maxTier].
func Equipment(minTier, maxTier int) []ItemDef {
	var out []ItemDef
	for _, set := range [][]ItemDef{Weapons, Armor} {
		for _, d := range set {
			if d.Tier >= minTier && d.Tier <= maxTier {
				out = append(out, d)
			}
		}
	}
	return out
}

// ItemByCodex looks up any catalog item by codex id.
func ItemByCodex(codexID string) (ItemDef, bool) {
	for _, set := range [][]ItemDef{Weapons, Armor, Specials, {HealthPack, LargeHealthPack}} {
		for _, d := range set {
			if d.CodexID == codexID {
				return d, true
			}
		}
	}
	return ItemDef{}, false
}

// MustItem is ItemByCodex for ids known at compile time.
func MustItem(codexID string) ItemDef {
	d, ok := ItemByCodex(codexID)
	if !ok {
		panic("assets: unknown item " + codexID)
	}
	return d
}
