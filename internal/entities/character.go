package entities

// Entity type names, used for the event bus
const (
	EntityTypePlayer  = "player"
	EntityTypeMonster = "monster"
	EntityTypeNPC     = "npc"
)

// Character is the state shared by every combatant. It is a data-only
// struct; all stat math lives in the rules engines.
type Character struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// HP is current hit points, always within [0, effective max HP].
	HP int `json:"hp"`
	// Base holds the unmodified stats the resolver starts from.
	Base    Stats          `json:"base"`
	Effects []ActiveEffect `json:"effects,omitempty"`
}

// GetID implements core.Entity
func (c *Character) GetID() string {
	return c.ID
}

// IsAlive reports whether the character can still act
func (c *Character) IsAlive() bool {
	return c.HP > 0
}

// ApplyDamage reduces HP by amount, never below zero
func (c *Character) ApplyDamage(amount int) {
	if amount < 0 {
		amount = 0
	}
	c.HP -= amount
	if c.HP < 0 {
		c.HP = 0
	}
}

// Heal raises HP by amount, clamped to the given effective max.
// It returns the amount actually healed.
func (c *Character) Heal(amount, maxHP int) int {
	if amount < 0 {
		amount = 0
	}
	old := c.HP
	c.HP += amount
	if c.HP > maxHP {
		c.HP = maxHP
	}
	return c.HP - old
}

// HasEffect reports whether an instance of the given template is active
func (c *Character) HasEffect(templateID string) bool {
	for _, e := range c.Effects {
		if e.TemplateID == templateID && !e.Expired() {
			return true
		}
	}
	return false
}

// Incapacitated reports whether the character must skip its combat turn
func (c *Character) Incapacitated() bool {
	return c.HasEffect(EffectIDStun)
}

// AbilityState tracks one learned active skill's combat cooldown
type AbilityState struct {
	SkillID     string `json:"skill_id"`
	Cooldown    int    `json:"cooldown"`
	MaxCooldown int    `json:"max_cooldown"`
}

// Player is the single protagonist
type Player struct {
	Character

	Level       int `json:"level"`
	XP          int `json:"xp"`
	XPToNext    int `json:"xp_to_next"`
	SkillPoints int `json:"skill_points"`

	// ClassID is empty until the forced choice at the threshold level.
	ClassID       string          `json:"class_id,omitempty"`
	LearnedSkills []string        `json:"learned_skills,omitempty"`
	Abilities     []*AbilityState `json:"abilities,omitempty"`

	Inventory map[string]int `json:"inventory,omitempty"` // item id -> quantity
	Equipped  []string       `json:"equipped,omitempty"`
	Gold      int            `json:"gold"`

	LocationID         string          `json:"location_id"`
	PreviousLocationID string          `json:"previous_location_id"`
	Discovered         map[string]bool `json:"discovered,omitempty"`
	Quests             map[string]QuestState `json:"quests,omitempty"`
}

// GetType implements core.Entity
func (p *Player) GetType() string {
	return EntityTypePlayer
}

// HasClass reports whether the permanent class choice has been made
func (p *Player) HasClass() bool {
	return p.ClassID != ""
}

// HasLearned reports whether the skill id is in the learned set
func (p *Player) HasLearned(skillID string) bool {
	for _, id := range p.LearnedSkills {
		if id == skillID {
			return true
		}
	}
	return false
}

// Ability returns the cooldown state for a learned active skill, or nil
func (p *Player) Ability(skillID string) *AbilityState {
	for _, a := range p.Abilities {
		if a.SkillID == skillID {
			return a
		}
	}
	return nil
}

// ItemCount returns how many of the item the player carries
func (p *Player) ItemCount(itemID string) int {
	return p.Inventory[itemID]
}

// AddItem puts quantity of an item into the inventory
func (p *Player) AddItem(itemID string, quantity int) {
	if quantity <= 0 {
		return
	}
	if p.Inventory == nil {
		p.Inventory = make(map[string]int)
	}
	p.Inventory[itemID] += quantity
}

// RemoveItem takes quantity of an item out of the inventory.
// It reports false if the player does not carry enough.
func (p *Player) RemoveItem(itemID string, quantity int) bool {
	if p.Inventory[itemID] < quantity {
		return false
	}
	p.Inventory[itemID] -= quantity
	if p.Inventory[itemID] == 0 {
		delete(p.Inventory, itemID)
	}
	return true
}

// IsEquipped reports whether the item is currently equipped
func (p *Player) IsEquipped(itemID string) bool {
	for _, id := range p.Equipped {
		if id == itemID {
			return true
		}
	}
	return false
}

// Discover marks a location as seen on the map
func (p *Player) Discover(locationID string) {
	if p.Discovered == nil {
		p.Discovered = make(map[string]bool)
	}
	p.Discovered[locationID] = true
}

// DropEntry is one row of a monster's drop table
type DropEntry struct {
	ItemID string  `json:"item_id"`
	Chance float64 `json:"chance"` // probability in [0,1]
}

// Monster is a hostile combatant instantiated from a content template
type Monster struct {
	Character

	TemplateID string `json:"template_id"`
	Type       string `json:"type,omitempty"` // flavor: beast, undead, ...

	XPReward int         `json:"xp_reward"`
	Drops    []DropEntry `json:"drops,omitempty"`
	// CompletesQuestID marks the quest finished when this monster dies.
	CompletesQuestID string `json:"completes_quest_id,omitempty"`
}

// GetType implements core.Entity
func (m *Monster) GetType() string {
	return EntityTypeMonster
}
