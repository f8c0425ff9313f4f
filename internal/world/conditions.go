package world

import (
	"github.com/oakhaven/emberquest/internal/entities"
)

// MeetsConditions reports whether the player satisfies every condition.
// An empty list always holds.
func MeetsConditions(player *entities.Player, conds []entities.Condition) bool {
	for _, cond := range conds {
		switch cond.Type {
		case entities.ConditionHasItem:
			if player.ItemCount(cond.ItemID) == 0 {
				return false
			}
		case entities.ConditionQuestCompleted:
			if player.Quests[cond.QuestID] != entities.QuestCompleted {
				return false
			}
		case entities.ConditionQuestActive:
			if player.Quests[cond.QuestID] != entities.QuestActive {
				return false
			}
		default:
			return false
		}
	}
	return true
}
