package content

import (
	"fmt"

	"github.com/oakhaven/emberquest/internal/entities"
	"github.com/oakhaven/emberquest/internal/errors"
)

// validateReferences walks every record and checks that each id it points
// at resolves. The whole file is checked so one load error reports every
// dangling reference at once.
func (r *Repository) validateReferences() error {
	vb := errors.NewValidationBuilder()

	for _, id := range sortedKeys(r.items) {
		r.checkItem(vb, r.items[id])
	}
	for _, id := range r.skillOrder {
		r.checkSkill(vb, r.skills[id])
	}
	for _, id := range r.classOrder {
		r.checkClass(vb, r.classes[id])
	}
	for _, id := range sortedKeys(r.monsters) {
		r.checkMonster(vb, r.monsters[id])
	}
	for _, id := range sortedKeys(r.npcs) {
		r.checkNpc(vb, r.npcs[id])
	}
	for _, id := range r.locationOrder {
		r.checkLocation(vb, r.locations[id])
	}
	r.checkPlayerSeed(vb)

	return vb.Build()
}

func (r *Repository) hasEffect(id string) bool {
	_, ok := r.effects[id]
	return ok
}

func (r *Repository) hasItem(id string) bool {
	_, ok := r.items[id]
	return ok
}

func (r *Repository) hasSkill(id string) bool {
	_, ok := r.skills[id]
	return ok
}

func (r *Repository) hasQuest(id string) bool {
	_, ok := r.quests[id]
	return ok
}

func (r *Repository) hasMonster(id string) bool {
	_, ok := r.monsters[id]
	return ok
}

func (r *Repository) hasLocation(id string) bool {
	_, ok := r.locations[id]
	return ok
}

func (r *Repository) checkItem(vb *errors.ValidationBuilder, it *entities.Item) {
	field := fmt.Sprintf("items.%s", it.ID)
	if it.EffectID != "" && !r.hasEffect(it.EffectID) {
		vb.Fieldf(field, "unknown effect %q", it.EffectID)
	}
	for _, id := range it.EquipEffectIDs {
		if !r.hasEffect(id) {
			vb.Fieldf(field, "unknown equip effect %q", id)
		}
	}
	for _, id := range it.ContainedItemIDs {
		if !r.hasItem(id) {
			vb.Fieldf(field, "unknown contained item %q", id)
		}
	}
	for _, id := range it.TeachesSkills {
		if !r.hasSkill(id) {
			vb.Fieldf(field, "unknown taught skill %q", id)
		}
	}
}

func (r *Repository) checkSkill(vb *errors.ValidationBuilder, s *entities.Skill) {
	field := fmt.Sprintf("skills.%s", s.ID)
	for _, id := range s.EffectIDs {
		if !r.hasEffect(id) {
			vb.Fieldf(field, "unknown effect %q", id)
		}
	}
	for _, req := range s.Requirements {
		if req.Type == entities.RequirementSkill && !r.hasSkill(req.SkillID) {
			vb.Fieldf(field, "unknown prerequisite skill %q", req.SkillID)
		}
	}
	if s.Kind == entities.SkillActive {
		if s.Combat == nil {
			vb.Field(field, "active skill needs a combat block")
		} else if s.Combat.AppliesEffectID != "" && !r.hasEffect(s.Combat.AppliesEffectID) {
			vb.Fieldf(field, "unknown applied effect %q", s.Combat.AppliesEffectID)
		}
	}
}

func (r *Repository) checkClass(vb *errors.ValidationBuilder, c *entities.Class) {
	field := fmt.Sprintf("classes.%s", c.ID)
	for _, id := range c.BonusEffectIDs {
		if !r.hasEffect(id) {
			vb.Fieldf(field, "unknown bonus effect %q", id)
		}
	}
	for _, id := range c.StartingSkills {
		if !r.hasSkill(id) {
			vb.Fieldf(field, "unknown starting skill %q", id)
		}
	}
	for _, id := range c.SkillPool {
		if !r.hasSkill(id) {
			vb.Fieldf(field, "unknown pool skill %q", id)
		}
	}
}

func (r *Repository) checkMonster(vb *errors.ValidationBuilder, m *MonsterTemplate) {
	field := fmt.Sprintf("monsters.%s", m.ID)
	if m.MaxHP <= 0 {
		vb.Field(field, "max_hp must be positive")
	}
	for _, drop := range m.Drops {
		if !r.hasItem(drop.ItemID) {
			vb.Fieldf(field, "unknown drop item %q", drop.ItemID)
		}
		if drop.Chance < 0 || drop.Chance > 1 {
			vb.Fieldf(field, "drop chance for %q outside [0,1]", drop.ItemID)
		}
	}
	if m.CompletesQuestID != "" && !r.hasQuest(m.CompletesQuestID) {
		vb.Fieldf(field, "unknown quest %q", m.CompletesQuestID)
	}
}

func (r *Repository) checkNpc(vb *errors.ValidationBuilder, n *entities.Npc) {
	field := fmt.Sprintf("npcs.%s", n.ID)
	for _, entry := range n.Dialogue {
		r.checkConditions(vb, field, entry.Conditions)
		if entry.GivesQuestID != "" && !r.hasQuest(entry.GivesQuestID) {
			vb.Fieldf(field, "unknown quest %q", entry.GivesQuestID)
		}
		for _, id := range entry.GivesItemIDs {
			if !r.hasItem(id) {
				vb.Fieldf(field, "unknown given item %q", id)
			}
		}
	}
	for _, id := range n.TeachesSkills {
		if !r.hasSkill(id) {
			vb.Fieldf(field, "unknown taught skill %q", id)
		}
	}
	if n.Kind == entities.NpcMerchant {
		if n.Merchant == nil {
			vb.Fieldf(field, "merchant npc needs merchant state")
		} else {
			for _, entry := range n.Merchant.Stock {
				if !r.hasItem(entry.ItemID) {
					vb.Fieldf(field, "unknown stock item %q", entry.ItemID)
				}
			}
		}
	}
}

func (r *Repository) checkLocation(vb *errors.ValidationBuilder, l *entities.Location) {
	field := fmt.Sprintf("locations.%s", l.ID)
	for dir, dest := range l.Exits {
		if !r.hasLocation(dest) {
			vb.Fieldf(field, "%s exit to unknown location %q", dir, dest)
		}
	}
	for _, exit := range l.ConditionalExits {
		if !r.hasLocation(exit.DestinationID) {
			vb.Fieldf(field, "conditional exit to unknown location %q", exit.DestinationID)
		}
		r.checkConditions(vb, field, exit.Conditions)
	}
	for _, id := range l.NpcIDs {
		if _, ok := r.npcs[id]; !ok {
			vb.Fieldf(field, "unknown npc %q", id)
		}
	}
	for _, id := range l.MonsterIDs {
		if !r.hasMonster(id) {
			vb.Fieldf(field, "unknown monster %q", id)
		}
	}
	for _, id := range l.ItemIDs {
		if !r.hasItem(id) {
			vb.Fieldf(field, "unknown ground item %q", id)
		}
	}
	for trigger, rule := range l.SpawnsOnDefeat {
		if !r.hasMonster(trigger) {
			vb.Fieldf(field, "spawn trigger is unknown monster %q", trigger)
		}
		if !r.hasMonster(rule.MonsterID) {
			vb.Fieldf(field, "spawn of unknown monster %q", rule.MonsterID)
		}
	}
	if l.SpawnChance < 0 || l.SpawnChance > 1 {
		vb.Field(field, "spawn chance outside [0,1]")
	}
}

func (r *Repository) checkConditions(vb *errors.ValidationBuilder, field string, conds []entities.Condition) {
	for _, cond := range conds {
		switch cond.Type {
		case entities.ConditionHasItem:
			if !r.hasItem(cond.ItemID) {
				vb.Fieldf(field, "condition on unknown item %q", cond.ItemID)
			}
		case entities.ConditionQuestCompleted, entities.ConditionQuestActive:
			if !r.hasQuest(cond.QuestID) {
				vb.Fieldf(field, "condition on unknown quest %q", cond.QuestID)
			}
		default:
			vb.Fieldf(field, "unknown condition type %q", cond.Type)
		}
	}
}

func (r *Repository) checkPlayerSeed(vb *errors.ValidationBuilder) {
	if r.player.StartLocationID == "" || !r.hasLocation(r.player.StartLocationID) {
		vb.Fieldf("player", "unknown start location %q", r.player.StartLocationID)
	}
	if r.player.MaxHP <= 0 {
		vb.Field("player", "max_hp must be positive")
	}
	for _, id := range r.player.ItemIDs {
		if !r.hasItem(id) {
			vb.Fieldf("player", "unknown starting item %q", id)
		}
	}
}
