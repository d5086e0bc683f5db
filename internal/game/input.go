package game

import "github.com/gdamore/tcell/v2"

// Action represents a player-requested game action.
type Action uint8

const (
	ActionNone Action = iota
	ActionMoveN
	ActionMoveS
	ActionMoveE
	ActionMoveW
	ActionWait
	ActionSearch
	ActionSwapWeapon
	ActionTarget
	ActionInventory
	ActionStore
	ActionCodex
	ActionSave
	ActionToggleSFX
	ActionQuit
)

// keyToAction maps a tcell key event to a game action.
func keyToAction(ev *tcell.EventKey) Action {
	// Named keys.
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionMoveN
	case tcell.KeyDown:
		return ActionMoveS
	case tcell.KeyRight:
		return ActionMoveE
	case tcell.KeyLeft:
		return ActionMoveW
	case tcell.KeyEscape:
		return ActionTarget
	case tcell.KeyCtrlS:
		return ActionSave
	case tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyRune:
	default:
		return ActionNone
	}

	// Rune keys. Lowercase letters are case-sensitive so Q and S stay free.
	switch ev.Rune() {
	case 'w':
		return ActionMoveN
	case 's':
		return ActionMoveS
	case 'd':
		return ActionMoveE
	case 'a':
		return ActionMoveW
	case ' ', '.':
		return ActionWait
	case 'f':
		return ActionSearch
	case 'q':
		return ActionSwapWeapon
	case 't':
		return ActionTarget
	case 'i', 'I':
		return ActionInventory
	case 'b', 'B':
		return ActionStore
	case 'c', 'C':
		return ActionCodex
	case 'S':
		return ActionSave
	case 'm', 'M':
		return ActionToggleSFX
	case 'Q':
		return ActionQuit
	}
	return ActionNone
}

// actionToDelta converts a movement action to (dx, dy).
func actionToDelta(a Action) (int, int) {
	switch a {
	case ActionMoveN:
		return 0, -1
	case ActionMoveS:
		return 0, 1
	case ActionMoveE:
		return 1, 0
	case ActionMoveW:
		return -1, 0
	}
	return 0, 0
}
