package entities

// LocationKind is the terrain class of a location
type LocationKind string

// Location kinds
const (
	LocationRoom       LocationKind = "room"
	LocationCity       LocationKind = "city"
	LocationWilderness LocationKind = "wilderness"
	LocationDungeon    LocationKind = "dungeon"
	LocationSwamp      LocationKind = "swamp"
	LocationVolcanic   LocationKind = "volcanic"
)

// Hazardous reports whether the terrain deals damage during combat turns
func (k LocationKind) Hazardous() bool {
	return k == LocationVolcanic
}

// Direction is a compass exit direction
type Direction string

// Exit directions
const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
)

// Opposite returns the reverse direction, for map layout
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return d
	}
}

// ConditionType selects what a condition checks
type ConditionType string

// Condition types
const (
	ConditionHasItem        ConditionType = "has_item"
	ConditionQuestCompleted ConditionType = "quest_completed"
	ConditionQuestActive    ConditionType = "quest_active"
)

// Condition gates a conditional exit or a dialogue entry
type Condition struct {
	Type    ConditionType `json:"type"`
	ItemID  string        `json:"item_id,omitempty"`
	QuestID string        `json:"quest_id,omitempty"`
}

// ConditionalExit is an exit that only opens when its conditions hold
type ConditionalExit struct {
	Direction     Direction   `json:"direction"`
	DestinationID string      `json:"destination_id"`
	Description   string      `json:"description,omitempty"`
	Conditions    []Condition `json:"conditions,omitempty"`
}

// SpawnRule spawns a monster when another monster dies here
type SpawnRule struct {
	MonsterID string `json:"monster_id"`
	Message   string `json:"message,omitempty"`
}

// Location is a read-only content record describing one node of the world
// graph. Live room state (monster instances, ground items) belongs to the
// world, not to the record.
type Location struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Kind        LocationKind `json:"kind"`

	Exits            map[Direction]string `json:"exits,omitempty"` // direction -> location id
	ConditionalExits []ConditionalExit    `json:"conditional_exits,omitempty"`

	NpcIDs     []string `json:"npc_ids,omitempty"`
	MonsterIDs []string `json:"monster_ids,omitempty"` // templates present at world start
	ItemIDs    []string `json:"item_ids,omitempty"`    // ground items at world start

	// SpawnsOnDefeat maps a monster template id to what replaces it.
	SpawnsOnDefeat map[string]SpawnRule `json:"spawns_on_defeat,omitempty"`

	// SpawnChance is the probability a wilderness visit spawns the first
	// listed monster template anew.
	SpawnChance float64 `json:"spawn_chance,omitempty"`

	// HazardDescription is appended to dungeon descriptions.
	HazardDescription string `json:"hazard_description,omitempty"`

	// HiddenDescription replaces the description in a swamp until the
	// player carries a light source.
	HiddenDescription string `json:"hidden_description,omitempty"`
}
