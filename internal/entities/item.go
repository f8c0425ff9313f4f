package entities

// ItemKind selects an item's behavior when used
type ItemKind string

// Item kinds
const (
	ItemPlain        ItemKind = "plain"
	ItemPotion       ItemKind = "potion"
	ItemEffectPotion ItemKind = "effect_potion"
	ItemOffensive    ItemKind = "offensive"
	ItemContainer    ItemKind = "container"
	ItemEquipment    ItemKind = "equipment"
)

// Item is a read-only content record. Quantities live in inventories and
// location ground stacks, never here.
type Item struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Kind        ItemKind `json:"kind"`
	Value       int      `json:"value"` // base gold value

	// Potion
	HealAmount int `json:"heal_amount,omitempty"`

	// EffectPotion: effect template applied to the drinker.
	EffectID string `json:"effect_id,omitempty"`

	// Offensive
	Damage int `json:"damage,omitempty"`

	// Container
	ContainedItemIDs []string `json:"contained_item_ids,omitempty"`

	// Equipment: effect templates active while the item is equipped.
	EquipEffectIDs []string `json:"equip_effect_ids,omitempty"`

	// TeachesSkills are learned for free when the item is used.
	TeachesSkills []string `json:"teaches_skills,omitempty"`

	// LightSource items reveal obscured terrain such as swamps.
	LightSource bool `json:"light_source,omitempty"`

	// Unique items never drop a second copy.
	Unique bool `json:"unique,omitempty"`
}

// UsableInCombat reports whether the item is a legal combat action
func (i *Item) UsableInCombat() bool {
	switch i.Kind {
	case ItemPotion, ItemEffectPotion, ItemOffensive:
		return true
	default:
		return false
	}
}

// Consumable reports whether using the item removes it from the inventory
func (i *Item) Consumable() bool {
	switch i.Kind {
	case ItemPotion, ItemEffectPotion, ItemOffensive, ItemContainer:
		return true
	default:
		return false
	}
}
