package session

import (
	"fmt"
	"strings"

	"github.com/oakhaven/emberquest/internal/entities"
	"github.com/oakhaven/emberquest/internal/errors"
	"github.com/oakhaven/emberquest/internal/rules/stats"
	"github.com/oakhaven/emberquest/internal/world"
)

// Talk speaks to an NPC in the current room. Healer NPCs restore the
// player to full health; other NPCs speak their first dialogue line whose
// conditions hold, handing over any quest, items, or skills it grants.
func (s *GameSession) Talk(npcID string) (string, error) {
	if err := s.checkPlayable(); err != nil {
		return "", err
	}
	room, err := s.world.Room(s.player.LocationID)
	if err != nil {
		return "", err
	}
	npc := room.Npc(npcID)
	if npc == nil {
		return "", errors.NotFoundf("there is nobody called %q here", npcID)
	}

	var lines []string
	if npc.HealingDialogue != nil {
		lines = append(lines, s.healerLine(npc))
	} else if line := s.dialogueLine(npc); line != "" {
		lines = append(lines, line)
	} else if len(lines) == 0 {
		lines = append(lines, fmt.Sprintf("%s has nothing to say.", npc.Name))
	}

	for _, skillID := range npc.TeachesSkills {
		if s.player.HasLearned(skillID) {
			continue
		}
		if err := s.tree.LearnFree(s.player, skillID); err != nil {
			return "", err
		}
		if skill, err := s.content.GetSkill(skillID); err == nil {
			lines = append(lines, fmt.Sprintf("%s teaches you %s!", npc.Name, skill.Name))
		}
	}
	if npc.Kind == entities.NpcMerchant {
		lines = append(lines, fmt.Sprintf("%s shows you their wares.", npc.Name))
	}
	return strings.Join(lines, "\n"), nil
}

// healerLine heals a wounded player and returns the matching line.
func (s *GameSession) healerLine(npc *entities.Npc) string {
	eff := stats.ResolveCharacter(&s.player.Character)
	if s.player.HP >= eff.MaxHP {
		return fmt.Sprintf("%s: %q", npc.Name, npc.HealingDialogue.Default)
	}
	pre := fmt.Sprintf("%s: %q", npc.Name, npc.HealingDialogue.PreHeal)
	s.player.Heal(eff.MaxHP, eff.MaxHP)
	s.log.Info("healer restored player", "npc_id", npc.ID)
	return pre + "\n" + fmt.Sprintf("%s: %q", npc.Name, npc.HealingDialogue.PostHeal)
}

// dialogueLine speaks the first entry whose conditions hold, applying its
// quest and item grants exactly once.
func (s *GameSession) dialogueLine(npc *entities.Npc) string {
	for i := range npc.Dialogue {
		entry := &npc.Dialogue[i]
		if !world.MeetsConditions(s.player, entry.Conditions) {
			continue
		}
		line := fmt.Sprintf("%s: %q", npc.Name, entry.Text)
		if entry.GivesQuestID != "" {
			if _, started := s.player.Quests[entry.GivesQuestID]; !started {
				if s.player.Quests == nil {
					s.player.Quests = make(map[string]entities.QuestState)
				}
				s.player.Quests[entry.GivesQuestID] = entities.QuestActive
				if quest, err := s.content.GetQuest(entry.GivesQuestID); err == nil {
					line += fmt.Sprintf("\nNew quest: %s", quest.Name)
				}
				for _, itemID := range entry.GivesItemIDs {
					s.player.AddItem(itemID, 1)
					if item, err := s.content.GetItem(itemID); err == nil {
						line += fmt.Sprintf("\nYou receive a %s.", item.Name)
					}
				}
			}
		}
		return line
	}
	return ""
}
