package system

import (
	"fmt"

	"cyber-rogue/internal/gamemap"
	"cyber-rogue/internal/random"
	"cyber-rogue/internal/state"
)

// Per-dungeon-level XP adjustments.
const (
	TrapXPPenalty = 10
	TrapFindXP    = 10
	SecretFindXP  = 25
)

// WaitRegen is the health a Wait restores: a twentieth of max health, at
// least one.
func WaitRegen(maxHealth int) int { return max(1, maxHealth/20) }

// Wait regenerates health for one turn.
func Wait(s *state.GameState) {
	p := &s.Player
	p.Health = min(p.MaxHealth, p.Health+WaitRegen(p.MaxHealth))
	s.AddMessage("You wait a turn, regenerating health.")
}

// TriggerTrap springs trap idx under the player. It reports whether the
// player died.
func TriggerTrap(s *state.GameState, idx int) bool {
	t := &s.Traps[idx]
	t.Triggered = true
	t.Revealed = true
	s.AddMessage(fmt.Sprintf("You triggered a spike trap for %d damage!", t.Damage))
	s.Emit(state.SoundTrap)

	if penalty := TrapXPPenalty * s.Level; penalty > 0 {
		LoseXP(&s.Player, penalty)
		s.AddMessage(fmt.Sprintf("The shock of the trap makes you lose %d XP.", penalty))
	}
	return Hurt(s, t.Damage)
}

// ArmedTrapAt returns the index of the untriggered trap on p, or -1.
func ArmedTrapAt(s *state.GameState, p gamemap.Pos) int {
	for i, t := range s.Traps {
		if !t.Triggered && t.Pos == p {
			return i
		}
	}
	return -1
}

// PickUp collects every item on the player's cell. Credits go to the purse,
// gear fills an empty matching slot, and the rest goes into the pack.
func PickUp(s *state.GameState) {
	p := &s.Player
	kept := s.Items[:0:0]
	picked := false
	for _, it := range s.Items {
		if it.Pos != p.Pos {
			kept = append(kept, it)
			continue
		}
		picked = true
		s.Emit(state.SoundPickup)
		if it.Kind == state.KindGold {
			p.Gold += it.Value
			s.AddMessage(fmt.Sprintf("You found %d credits.", it.Value))
			continue
		}
		it.Pos = gamemap.Held
		if slot := emptySlotFor(p, it); slot != nil {
			it.Equipped = true
			*slot = &it
			s.AddMessage(fmt.Sprintf("You picked up and equipped the %s.", it.Name))
			s.Emit(state.SoundEquip)
			continue
		}
		p.Inventory = append(p.Inventory, it)
		s.AddMessage(fmt.Sprintf("You picked up the %s.", it.Name))
	}
	if picked {
		s.Items = kept
		Recalculate(p)
	}
}

func emptySlotFor(p *state.Player, it state.Item) **state.Item {
	var slot **state.Item
	switch {
	case it.Kind == state.KindWeapon && it.Weapon == state.Melee:
		slot = &p.Melee
	case it.Kind == state.KindWeapon && it.Weapon == state.Ranged:
		slot = &p.Ranged
	case it.Kind == state.KindArmor:
		slot = &p.Armor
	default:
		return nil
	}
	if *slot != nil {
		return nil
	}
	return slot
}

// Search looks for hidden traps and secret doors around the player. Each
// hidden one within one cell is rolled for separately, traps first.
func Search(s *state.GameState, rng random.Source) {
	s.AddMessage("You search the area...")
	pos := s.Player.Pos
	found := false

	for i := range s.Traps {
		t := &s.Traps[i]
		if t.Revealed || t.Pos.Chebyshev(pos) > 1 || !random.Chance(rng, TrapSearchChance) {
			continue
		}
		found = true
		t.Revealed = true
		s.AddMessage("You found a trap!")
		if xp := TrapFindXP * s.Level; xp > 0 {
			s.AddMessage(fmt.Sprintf("You gained %d XP for disarming the trap.", xp))
			GrantXP(s, xp)
		}
	}

	for i := range s.SecretDoors {
		d := &s.SecretDoors[i]
		if d.Revealed || d.Pos.Chebyshev(pos) > 1 || !random.Chance(rng, SecretDoorSearchChance) {
			continue
		}
		found = true
		d.Revealed = true
		s.Grid.Set(d.Pos.X, d.Pos.Y, gamemap.TileFloor)
		s.AddMessage("You found and opened a secret door!")
		s.Emit(state.SoundDoor)
		if xp := SecretFindXP * s.Level; xp > 0 {
			s.AddMessage(fmt.Sprintf("You gained %d XP for discovering a secret!", xp))
			GrantXP(s, xp)
		}
	}

	if !found {
		s.AddMessage("You didn't find anything.")
	}
}

// OpenSecretDoor opens revealed door idx and steps the player into it.
func OpenSecretDoor(s *state.GameState, idx int) {
	d := s.SecretDoors[idx].Pos
	s.Grid.Set(d.X, d.Y, gamemap.TileFloor)
	s.AddMessage("You open the secret door.")
	s.Emit(state.SoundDoor)
	s.Player.Pos = d
}

// Equippable reports whether it goes into an equipment slot.
func Equippable(it state.Item) bool {
	return it.Kind == state.KindWeapon || it.Kind == state.KindArmor
}

// Equip moves pack item id into its slot, returning the previous occupant to
// the pack. A weapon also becomes the active weapon. It reports whether id
// was carried gear; anything else stays in the pack untouched.
func Equip(s *state.GameState, id string) bool {
	p := &s.Player
	i := p.InventoryIndex(id)
	if i < 0 {
		return false
	}
	it := p.Inventory[i]
	if !Equippable(it) {
		s.AddMessage(fmt.Sprintf("You can't equip the %s.", it.Name))
		return false
	}
	it.Equipped = true
	p.Inventory = append(p.Inventory[:i:i], p.Inventory[i+1:]...)

	slot := &p.Armor
	if it.Kind == state.KindWeapon {
		slot = &p.Melee
		if it.Weapon == state.Ranged {
			slot = &p.Ranged
		}
		p.ActiveSlot = it.Weapon
	}
	if old := *slot; old != nil {
		o := *old
		o.Equipped = false
		p.Inventory = append(p.Inventory, o)
	}
	*slot = &it

	s.AddMessage(fmt.Sprintf("Equipped %s.", it.Name))
	s.Emit(state.SoundEquip)
	Recalculate(p)
	return true
}

// Use consumes pack item id. A health pack at full health is kept, as is any
// item with no use. It reports whether id was carried.
func Use(s *state.GameState, rng random.Source, id string) bool {
	p := &s.Player
	i := p.InventoryIndex(id)
	if i < 0 {
		return false
	}
	it := p.Inventory[i]
	consumed := true

	switch it.Kind {
	case state.KindPotion:
		healed := min(p.MaxHealth-p.Health, it.Value)
		if healed > 0 {
			p.Health += healed
			s.AddMessage(fmt.Sprintf("You use the %s and heal for %d HP.", it.Name, healed))
		} else {
			s.AddMessage(fmt.Sprintf("You use the %s but you are already at full health.", it.Name))
			consumed = false
		}
	case state.KindScroll:
		s.AddMessage(fmt.Sprintf("You read the %s.", it.Name))
		switch it.Scroll {
		case state.ScrollTeleport:
			if len(s.Rooms) > 0 {
				p.Pos = s.Rooms[rng.Intn(len(s.Rooms))].Center()
			}
		case state.ScrollInvisibility:
			ApplyBuff(p, state.BuffInvisibility, 0, InvisibilityTurns)
		}
	case state.KindBuff:
		kind := state.BuffDefense
		if it.Buff == state.BuffAttack {
			kind = state.BuffAttack
		}
		ApplyBuff(p, kind, it.Value, BuffTurns)
		s.AddMessage(fmt.Sprintf("You use the %s!", it.Name))
	default:
		consumed = false
	}

	if consumed {
		p.Inventory = append(p.Inventory[:i:i], p.Inventory[i+1:]...)
	}
	return true
}
