package entities

// NpcKind is the tagged variant replacing the original's NPC subclassing
type NpcKind string

// NPC kinds
const (
	NpcRegular  NpcKind = "regular"
	NpcMerchant NpcKind = "merchant"
)

// DialogueEntry is one conditional line an NPC can say. The first entry
// whose conditions hold is spoken.
type DialogueEntry struct {
	Text       string      `json:"text"`
	Conditions []Condition `json:"conditions,omitempty"`
	// GivesQuestID starts a quest the first time the line is spoken.
	GivesQuestID string `json:"gives_quest_id,omitempty"`
	// GivesItemIDs are handed over along with the quest.
	GivesItemIDs []string `json:"gives_item_ids,omitempty"`
}

// HealingDialogue marks a healer NPC
type HealingDialogue struct {
	PreHeal  string `json:"pre_heal"`
	PostHeal string `json:"post_heal"`
	Default  string `json:"default"`
}

// StockEntry is one line of a merchant's inventory. BaseCount is the
// fully-restocked quantity; Count decays as the player buys.
type StockEntry struct {
	ItemID    string `json:"item_id"`
	Count     int    `json:"count"`
	BaseCount int    `json:"base_count"`
}

// MerchantState is the mutable trading state of a merchant NPC
type MerchantState struct {
	Gold  int          `json:"gold"`
	Stock []StockEntry `json:"stock,omitempty"`
}

// Entry returns the stock line for an item, or nil
func (m *MerchantState) Entry(itemID string) *StockEntry {
	for i := range m.Stock {
		if m.Stock[i].ItemID == itemID {
			return &m.Stock[i]
		}
	}
	return nil
}

// Npc is a content record for a non-player character. Merchant state is
// carried by the variant field rather than a subclass.
type Npc struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Kind NpcKind `json:"kind"`

	Dialogue        []DialogueEntry  `json:"dialogue,omitempty"`
	HealingDialogue *HealingDialogue `json:"healing_dialogue,omitempty"`
	TeachesSkills   []string         `json:"teaches_skills,omitempty"`

	// Merchant is set when Kind is NpcMerchant.
	Merchant *MerchantState `json:"merchant,omitempty"`
}

// GetID implements core.Entity
func (n *Npc) GetID() string {
	return n.ID
}

// GetType implements core.Entity
func (n *Npc) GetType() string {
	return EntityTypeNPC
}
