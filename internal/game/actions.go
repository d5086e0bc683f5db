package game

import (
	"fmt"

	"cyber-rogue/assets"
	"cyber-rogue/internal/gamemap"
	"cyber-rogue/internal/state"
	"cyber-rogue/internal/system"
)

// Every action below reports whether it was admitted. An admitted action
// always ends the turn, even when it changed nothing.

// Move steps the player by (dx, dy), attacking an enemy in the way, opening
// a revealed secret door, taking the stairs, springing a trap and picking up
// whatever lies on the new cell.
func (e *Engine) Move(dx, dy int) bool {
	return e.Submit(func(s *state.GameState) *state.GameState {
		res, idx := system.TryMove(s, dx, dy)
		switch res {
		case system.MoveAttack:
			system.MeleeAttack(s, e.rng, idx)
		case system.MoveDoor:
			system.OpenSecretDoor(s, idx)
		case system.MoveOK:
			return e.step(s, s.Player.Pos.Add(dx, dy))
		}
		return s
	})
}

func (e *Engine) step(s *state.GameState, to gamemap.Pos) *state.GameState {
	s.Player.Pos = to
	if s.Stairs != nil && *s.Stairs == to {
		if s.Level == state.TutorialLevel {
			s.Emit(state.SoundLevel)
			s.AddMessage("Training complete. Returning to main menu.")
			s.Status = state.StatusStartScreen
			e.log.Info("training complete")
			return s
		}
		return e.descend(s)
	}
	if i := system.ArmedTrapAt(s, to); i >= 0 {
		system.TriggerTrap(s, i)
	}
	system.PickUp(s)
	return s
}

// Wait regenerates a little health.
func (e *Engine) Wait() bool {
	return e.Submit(func(s *state.GameState) *state.GameState {
		system.Wait(s)
		return s
	})
}

// Search rolls for hidden traps and doors next to the player.
func (e *Engine) Search() bool {
	return e.Submit(func(s *state.GameState) *state.GameState {
		system.Search(s, e.rng)
		return s
	})
}

// Equip puts pack item id into its slot. Consumables and uncarried ids are
// rejected without taking a turn.
func (e *Engine) Equip(id string) bool {
	if s := e.state; s != nil {
		if i := s.Player.InventoryIndex(id); i < 0 || !system.Equippable(s.Player.Inventory[i]) {
			return false
		}
	}
	return e.Submit(func(s *state.GameState) *state.GameState {
		system.Equip(s, id)
		return s
	})
}

// Use consumes pack item id.
func (e *Engine) Use(id string) bool {
	return e.Submit(func(s *state.GameState) *state.GameState {
		system.Use(s, e.rng, id)
		return s
	})
}

// Buy purchases one instance of offer.
func (e *Engine) Buy(offer assets.ItemDef) bool {
	return e.Submit(func(s *state.GameState) *state.GameState {
		system.Buy(s, offer, e.ids.NewID())
		return s
	})
}

// Sell trades pack item id for credits.
func (e *Engine) Sell(id string) bool {
	return e.Submit(func(s *state.GameState) *state.GameState {
		system.Sell(s, id)
		return s
	})
}

// SwapWeapon flips the active weapon slot. It takes no turn.
func (e *Engine) SwapWeapon() bool {
	return e.update(func(s *state.GameState) {
		p := &s.Player
		if p.ActiveSlot == state.Melee {
			p.ActiveSlot = state.Ranged
		} else {
			p.ActiveSlot = state.Melee
		}
		s.AddMessage(fmt.Sprintf("Switched to %s weapon.", p.ActiveSlot))
		system.Recalculate(p)
	})
}

// ToggleTargeting enters or leaves aiming mode. It takes no turn, ignores
// the turn lock and needs an active ranged weapon.
func (e *Engine) ToggleTargeting() bool {
	if e.state == nil || !e.state.Playing() {
		return false
	}
	next := e.state.Clone()
	switch {
	case next.Player.ActiveSlot != state.Ranged || next.Player.Ranged == nil:
		next.AddMessage("You must have a ranged weapon active.")
	case next.Targeting:
		next.Targeting = false
		next.Projectile = nil
		next.Target = nil
	default:
		next.Targeting = true
		next.Target = nil
	}
	e.publish(next)
	return true
}

// Aim points the targeting preview at p. It does nothing outside aiming mode
// or once the run has ended.
func (e *Engine) Aim(p gamemap.Pos) bool {
	if e.state == nil || !e.state.Playing() || !e.state.Targeting || !e.state.Grid.InBounds(p.X, p.Y) {
		return false
	}
	next := e.state.Clone()
	next.Target = &p
	e.publish(next)
	return true
}

// RangedAttack fires along one of the four cardinal directions. The shot
// travels up to the FOV radius and stops at the first wall or enemy. The
// projectile path stays on screen for ProjectileLinger.
func (e *Engine) RangedAttack(dx, dy int) bool {
	if !system.IsCardinal(dx, dy) {
		return false
	}
	ok := e.Submit(func(s *state.GameState) *state.GameState {
		if !s.Targeting || s.Player.Ranged == nil {
			s.Targeting = false
			s.Target = nil
			s.AddMessage("Invalid action.")
			return s
		}
		path, target, blocked := e.trace(s, dx, dy)
		s.Projectile = path
		switch {
		case target >= 0:
			system.ShotAttack(s, e.rng, target)
		case blocked:
			s.AddMessage("Your shot hits a wall.")
			s.Emit(state.SoundMiss)
		default:
			s.AddMessage("You fire into the darkness.")
			s.Emit(state.SoundMiss)
		}
		s.Targeting = false
		s.Target = nil
		return s
	})
	if ok {
		epoch := e.epoch
		e.sched.After(ProjectileLinger, func() {
			if epoch != e.epoch || e.state == nil || len(e.state.Projectile) == 0 {
				return
			}
			next := e.state.Clone()
			next.Projectile = nil
			e.publish(next)
		})
	}
	return ok
}

// trace walks a shot from the player. It returns the cells crossed, the
// index of the enemy hit or -1, and whether a wall stopped the shot.
func (e *Engine) trace(s *state.GameState, dx, dy int) ([]gamemap.Pos, int, bool) {
	var path []gamemap.Pos
	for i := 1; i <= e.fov; i++ {
		p := s.Player.Pos.Add(i*dx, i*dy)
		if !s.Grid.InBounds(p.X, p.Y) {
			break
		}
		path = append(path, p)
		if s.Grid.At(p.X, p.Y) == gamemap.TileWall {
			return path, -1, true
		}
		if idx := s.EnemyAt(p); idx >= 0 {
			return path, idx, false
		}
	}
	return path, -1, false
}
