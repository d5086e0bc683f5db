package system

import (
	"fmt"
	"math"

	"cyber-rogue/assets"
	"cyber-rogue/internal/gamemap"
	"cyber-rogue/internal/random"
	"cyber-rogue/internal/state"
)

// StockSize is how many pieces of gear the store offers per level.
const StockSize = 3

// Price is what the store charges for d.
func Price(d assets.ItemDef) int {
	switch {
	case d.Cost > 0:
		return d.Cost
	case d.Value > 0:
		return d.Value * 10 * d.Tier
	}
	return 10
}

// SellPrice is what the store pays for it.
func SellPrice(it state.Item) int {
	return int(math.Floor(float64(it.Value*it.Tier) * 2.5))
}

// StoreTier is the highest gear tier offered on level.
func StoreTier(level int) int {
	return min(3, int(math.Ceil(float64(level)/4)))
}

// Stock lists what the store sells on level: up to StockSize distinct random
// pieces of gear within the tier cap, followed by the consumables.
func Stock(level int, rng random.Source) []assets.ItemDef {
	pool := assets.Equipment(1, StoreTier(level))
	var out []assets.ItemDef
	for i := 0; i < StockSize && len(pool) > 0; i++ {
		j := rng.Intn(len(pool))
		out = append(out, pool[j])
		pool = append(pool[:j:j], pool[j+1:]...)
	}
	out = append(out, assets.HealthPack, assets.AttackBoost, assets.DefenseBoost)
	if level > 3 {
		out = append(out, assets.LargeHealthPack)
	}
	return out
}

// Buy charges the player for d and adds a new instance with identity id to
// the pack. It reports whether the player could afford it.
func Buy(s *state.GameState, d assets.ItemDef, id string) bool {
	cost := Price(d)
	p := &s.Player
	if p.Gold < cost {
		s.AddMessage("You can't afford that.")
		return false
	}
	p.Gold -= cost
	p.Inventory = append(p.Inventory, d.Instance(id, gamemap.Held))
	s.AddMessage(fmt.Sprintf("You purchased the %s.", d.Name))
	s.Emit(state.SoundPickup)
	return true
}

// Sell removes pack item id and pays SellPrice for it. It reports whether id
// was carried.
func Sell(s *state.GameState, id string) bool {
	p := &s.Player
	i := p.InventoryIndex(id)
	if i < 0 {
		return false
	}
	it := p.Inventory[i]
	price := SellPrice(it)
	p.Inventory = append(p.Inventory[:i:i], p.Inventory[i+1:]...)
	p.Gold += price
	s.AddMessage(fmt.Sprintf("You sold the %s for %d credits.", it.Name, price))
	return true
}
