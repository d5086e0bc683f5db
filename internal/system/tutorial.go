package system

import "cyber-rogue/internal/state"

// Training objective labels, mapped to instance ids by the tutorial builder.
const (
	ObjWrench      = "wrench"
	ObjMeleeDummy  = "meleeDummy"
	ObjPistol      = "pistol"
	ObjRangedDummy = "rangedDummy"
	ObjArmor       = "armor"
	ObjSecurityBot = "securityBot"
)

// TutorialStartHint is the hint shown on entering the training level.
const TutorialStartHint = "Walk over the Pipe Wrench to pick it up."

// TutorialSteps is the number of training objectives.
const TutorialSteps = 11

type tutorialStep struct {
	done func(s *state.GameState, ids map[string]string) bool
	next string // hint shown once this step is complete
}

var tutorialSteps = [TutorialSteps]tutorialStep{
	{
		done: func(s *state.GameState, ids map[string]string) bool { return holds(s.Player.Melee, ids[ObjWrench]) },
		next: "Destroy the melee Training Dummy.",
	},
	{
		done: func(s *state.GameState, ids map[string]string) bool { return s.EnemyByID(ids[ObjMeleeDummy]) < 0 },
		next: "Proceed to the next area for ranged combat training.",
	},
	{
		done: func(s *state.GameState, ids map[string]string) bool { return holds(s.Player.Ranged, ids[ObjPistol]) },
		next: "Destroy the ranged Training Dummy. Press [Q] to swop to ranged attack. Now press [T] to Target.",
	},
	{
		done: func(s *state.GameState, ids map[string]string) bool { return s.EnemyByID(ids[ObjRangedDummy]) < 0 },
		next: "Proceed to the next area for armor training.",
	},
	{
		done: func(s *state.GameState, ids map[string]string) bool { return holds(s.Player.Armor, ids[ObjArmor]) },
		next: "Armor reduces damage. Press [Space] to wait a turn and regenerate health. Go to next room.",
	},
	{
		done: func(s *state.GameState, _ map[string]string) bool {
			p := s.Player.Pos
			return p.X > 27 && p.X < 37 && p.Y > 7 && p.Y < 17
		},
		next: "This room may contain traps. Press [F] to search for them.",
	},
	{
		done: func(s *state.GameState, _ map[string]string) bool {
			for _, t := range s.Traps {
				if t.Revealed {
					return true
				}
			}
			return false
		},
		next: "A hostile bot is in the next room. Prepare for combat.",
	},
	{
		done: func(s *state.GameState, ids map[string]string) bool { return s.EnemyByID(ids[ObjSecurityBot]) < 0 },
		next: "Heal up! Use the Health Pack or press [Space] to wait.",
	},
	{
		done: func(s *state.GameState, _ map[string]string) bool { return s.Player.Health == s.Player.MaxHealth },
		next: "Some walls hide secret passages. Find the dead-end corridor and search it.",
	},
	{
		done: func(s *state.GameState, _ map[string]string) bool {
			for _, d := range s.SecretDoors {
				if d.Revealed {
					return true
				}
			}
			return false
		},
		next: "Scrolls are powerful one-time use items. Proceed to the arsenal.",
	},
	{
		done: func(s *state.GameState, _ map[string]string) bool { return s.Player.Pos.X > 40 },
		next: "Training complete. Experiment with the gear, then find the exit '>' to start your run.",
	},
}

func holds(slot *state.Item, id string) bool {
	return slot != nil && id != "" && slot.ID == id
}

// AdvanceTutorial checks the current training objective and moves to the
// next one when it is met. It advances at most one step per call and does
// nothing outside the training level.
func AdvanceTutorial(s *state.GameState) bool {
	if !s.IsTutorial() {
		return false
	}
	t := s.Tutorial
	if t.Step < 0 || t.Step >= TutorialSteps {
		return false
	}
	step := tutorialSteps[t.Step]
	if !step.done(s, t.Objectives) {
		return false
	}
	t.Step++
	t.Hint = step.next
	if t.Step > 0 && t.Step < TutorialSteps {
		s.AddMessage("Objective Complete.")
	}
	return true
}
