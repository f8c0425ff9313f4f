package combat

import (
	"github.com/oakhaven/emberquest/internal/entities"
	"github.com/oakhaven/emberquest/internal/rules/levelup"
)

// Outcome is the state of an encounter.
type Outcome string

// Encounter outcomes
const (
	OutcomeInProgress Outcome = "in_progress"
	OutcomeVictory    Outcome = "victory"
	OutcomeDefeat     Outcome = "defeat"
	OutcomeFled       Outcome = "fled"
)

// Terminal reports whether the encounter is over.
func (o Outcome) Terminal() bool {
	return o != OutcomeInProgress
}

// ActionKind selects the player's combat action.
type ActionKind string

// Combat actions
const (
	ActionAttack   ActionKind = "attack"
	ActionUseSkill ActionKind = "use_skill"
	ActionUseItem  ActionKind = "use_item"
	ActionRetreat  ActionKind = "retreat"
)

// Action is one player combat submission.
type Action struct {
	Kind ActionKind
	// TargetID names the monster instance for attack, offensive items,
	// and damaging skills.
	TargetID string
	SkillID  string
	ItemID   string
}

// Encounter is one running fight. It holds pointers into the live world
// state: monsters here are the same instances standing in the room.
type Encounter struct {
	ID         string
	Player     *entities.Player
	Monsters   []*entities.Monster // spawn order; retaliation walks this
	LocationID string
	Terrain    entities.LocationKind
	Turn       int
	Outcome    Outcome

	// Accumulated across turns, paid out on victory.
	pendingXP   int
	pendingLoot []string

	// Instance ids whose defeat hooks already fired.
	processedDefeats []string
}

// Monster returns the participant with the given instance id, or nil.
func (e *Encounter) Monster(id string) *entities.Monster {
	for _, m := range e.Monsters {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// AliveMonsters returns the monsters still standing, in spawn order.
func (e *Encounter) AliveMonsters() []*entities.Monster {
	var out []*entities.Monster
	for _, m := range e.Monsters {
		if m.IsAlive() {
			out = append(out, m)
		}
	}
	return out
}

// SpawnedMonster is a reinforcement that joined mid-encounter.
type SpawnedMonster struct {
	Monster *entities.Monster
	Message string
}

// InitiateInput defines the input for starting an encounter
type InitiateInput struct {
	Player     *entities.Player
	Monsters   []*entities.Monster
	LocationID string
	Terrain    entities.LocationKind
}

// InitiateOutput defines the output for starting an encounter
type InitiateOutput struct {
	Encounter *Encounter
	Log       []string
}

// SubmitActionInput defines the input for one combat turn
type SubmitActionInput struct {
	Encounter *Encounter
	Action    Action
}

// SubmitActionOutput defines the result of one combat turn
type SubmitActionOutput struct {
	Outcome Outcome
	Log     []string

	// Set when the outcome is victory.
	XPAwarded       int
	Loot            []string
	CompletedQuests []string
	LevelUps        []*levelup.Event

	// Reinforcements that joined this turn.
	Spawned []SpawnedMonster
}
