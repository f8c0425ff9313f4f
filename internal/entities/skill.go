package entities

// SkillKind distinguishes always-on skills from cooldown abilities
type SkillKind string

// Skill kinds
const (
	SkillPassive SkillKind = "passive"
	SkillActive  SkillKind = "active"
)

// RequirementType selects what a skill prerequisite checks
type RequirementType string

// Requirement types
const (
	RequirementLevel RequirementType = "level"
	RequirementSkill RequirementType = "skill"
)

// Requirement is one prerequisite of a skill
type Requirement struct {
	Type    RequirementType `json:"type"`
	Level   int             `json:"level,omitempty"`
	SkillID string          `json:"skill_id,omitempty"`
}

// CombatAbility describes what an active skill does in combat
type CombatAbility struct {
	DamageBonus int `json:"damage_bonus,omitempty"`
	Cooldown    int `json:"cooldown"`
	// AppliesEffectID optionally attaches a status effect to the target.
	AppliesEffectID string `json:"applies_effect_id,omitempty"`
}

// Skill is a read-only content record
type Skill struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Kind         SkillKind     `json:"kind"`
	Cost         int           `json:"cost"` // skill points
	Requirements []Requirement `json:"requirements,omitempty"`
	// EffectIDs are the passive stat effects granted on learning.
	EffectIDs []string `json:"effect_ids,omitempty"`
	// Combat is set for active skills only.
	Combat *CombatAbility `json:"combat,omitempty"`
}

// Class is a read-only content record describing a permanent specialization
type Class struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	// BonusEffectIDs are class-kind effects applied on assignment.
	BonusEffectIDs []string `json:"bonus_effect_ids,omitempty"`
	// StartingSkills are learned for free on assignment.
	StartingSkills []string `json:"starting_skills,omitempty"`
	// SkillPool is this class's exclusive set of learnable skills.
	SkillPool []string `json:"skill_pool,omitempty"`
}

// InPool reports whether the skill belongs to this class's exclusive pool
func (c *Class) InPool(skillID string) bool {
	for _, id := range c.SkillPool {
		if id == skillID {
			return true
		}
	}
	return false
}
