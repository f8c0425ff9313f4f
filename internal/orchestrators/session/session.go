// Package session implements the game session orchestrator: one running
// game, wiring the world, the rules engines, combat, trading, and
// persistence behind the command surface the player sees. All cross-cutting
// game state lives here rather than in globals.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/oakhaven/emberquest/internal/config"
	"github.com/oakhaven/emberquest/internal/entities"
	"github.com/oakhaven/emberquest/internal/errors"
	"github.com/oakhaven/emberquest/internal/orchestrators/combat"
	"github.com/oakhaven/emberquest/internal/pkg/idgen"
	"github.com/oakhaven/emberquest/internal/pkg/turns"
	"github.com/oakhaven/emberquest/internal/repositories/content"
	"github.com/oakhaven/emberquest/internal/repositories/save"
	"github.com/oakhaven/emberquest/internal/rules/classes"
	"github.com/oakhaven/emberquest/internal/rules/economy"
	"github.com/oakhaven/emberquest/internal/rules/effects"
	"github.com/oakhaven/emberquest/internal/rules/levelup"
	"github.com/oakhaven/emberquest/internal/rules/skills"
	"github.com/oakhaven/emberquest/internal/rules/stats"
	"github.com/oakhaven/emberquest/internal/world"
)

// Config holds the dependencies for a game session
type Config struct {
	Content     *content.Repository
	Game        config.Game
	DiceRoller  dice.Roller
	EventBus    events.EventBus
	IDGenerator idgen.Generator
	Saves       save.Repository
	Log         *slog.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	vb := errors.NewValidationBuilder()
	if c.Content == nil {
		vb.RequiredField("Content")
	}
	if c.DiceRoller == nil {
		vb.RequiredField("DiceRoller")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Saves == nil {
		vb.RequiredField("Saves")
	}
	return vb.Build()
}

// GameSession is one running game.
type GameSession struct {
	content *content.Repository
	game    config.Game
	log     *slog.Logger

	registry    *effects.Registry
	tree        *skills.Tree
	classEngine *classes.Engine
	levelEngine *levelup.Engine
	shop        *economy.Shop
	combat      combat.Service
	saves       save.Repository
	bus         events.EventBus
	roller      dice.Roller

	player    *entities.Player
	world     *world.State
	turns     *turns.Counter
	encounter *combat.Encounter
	pending   []*levelup.Event
	gameOver  bool
}

// NewSession builds a fresh game from content.
func NewSession(cfg *Config) (*GameSession, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}

	registry, err := effects.NewRegistry(&effects.Config{Templates: cfg.Content.EffectTemplates()})
	if err != nil {
		return nil, errors.Wrap(err, "building effect registry")
	}
	tree, err := skills.NewTree(&skills.Config{Catalog: cfg.Content, Registry: registry, Log: log})
	if err != nil {
		return nil, err
	}
	classEngine, err := classes.NewEngine(&classes.Config{
		Catalog:        cfg.Content,
		Registry:       registry,
		Tree:           tree,
		Log:            log,
		ThresholdLevel: cfg.Game.Progression.ClassThresholdLevel,
	})
	if err != nil {
		return nil, err
	}
	levelEngine, err := levelup.NewEngine(&levelup.Config{Progression: cfg.Game.Progression, Log: log})
	if err != nil {
		return nil, err
	}
	shop, err := economy.NewShop(&economy.Config{Economy: cfg.Game.Economy, Log: log})
	if err != nil {
		return nil, err
	}
	worldState, err := world.NewState(&world.Config{Catalog: cfg.Content, Log: log})
	if err != nil {
		return nil, err
	}
	combatSvc, err := combat.NewOrchestrator(&combat.Config{
		Catalog:     cfg.Content,
		Registry:    registry,
		LevelUp:     levelEngine,
		Spawner:     worldState,
		DiceRoller:  cfg.DiceRoller,
		EventBus:    cfg.EventBus,
		IDGenerator: cfg.IDGenerator,
		Combat:      cfg.Game.Combat,
		Log:         log,
	})
	if err != nil {
		return nil, err
	}

	s := &GameSession{
		content:     cfg.Content,
		game:        cfg.Game,
		log:         log,
		registry:    registry,
		tree:        tree,
		classEngine: classEngine,
		levelEngine: levelEngine,
		shop:        shop,
		combat:      combatSvc,
		saves:       cfg.Saves,
		bus:         cfg.EventBus,
		roller:      cfg.DiceRoller,
		player:      cfg.Content.NewPlayer(levelEngine.InitialThreshold()),
		world:       worldState,
		turns:       turns.NewCounter(0),
	}
	s.subscribe()
	return s, nil
}

// subscribe wires world upkeep to combat events: defeated monsters leave
// their room the moment the defeat event fires.
func (s *GameSession) subscribe() {
	s.bus.SubscribeFunc(combat.TopicMonsterDefeated, 0, func(_ context.Context, event events.Event) error {
		if source := event.Source(); source != nil {
			s.world.RemoveMonster(s.player.LocationID, source.GetID())
		}
		return nil
	})
}

// Player exposes the protagonist for read-mostly callers like the CLI.
func (s *GameSession) Player() *entities.Player {
	return s.player
}

// EffectiveStats resolves the player's current stats.
func (s *GameSession) EffectiveStats() entities.Stats {
	return stats.ResolveCharacter(&s.player.Character)
}

// InventoryLines renders the inventory as display rows, sorted by item id.
func (s *GameSession) InventoryLines() []string {
	ids := make([]string, 0, len(s.player.Inventory))
	for id := range s.player.Inventory {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		name := id
		if item, err := s.content.GetItem(id); err == nil {
			name = item.Name
		}
		line := fmt.Sprintf("%s x%d", name, s.player.Inventory[id])
		if s.player.IsEquipped(id) {
			line += " (equipped)"
		}
		lines = append(lines, line)
	}
	return lines
}

// GameOver reports whether the player has been defeated.
func (s *GameSession) GameOver() bool {
	return s.gameOver
}

// InCombat reports whether an encounter is running.
func (s *GameSession) InCombat() bool {
	return s.encounter != nil && !s.encounter.Outcome.Terminal()
}

// Encounter returns the running encounter, or nil.
func (s *GameSession) Encounter() *combat.Encounter {
	if s.InCombat() {
		return s.encounter
	}
	return nil
}

// Look describes the player's current location.
func (s *GameSession) Look() (string, error) {
	room, err := s.world.Room(s.player.LocationID)
	if err != nil {
		return "", err
	}
	desc := s.world.Describe(room, s.player)
	exits := s.world.OpenExits(s.player)
	if len(exits) > 0 {
		names := make([]string, len(exits))
		for i, d := range exits {
			names[i] = string(d)
		}
		desc += "\nExits: " + strings.Join(names, ", ")
	}
	return desc, nil
}

// MapView renders the discovered-world map.
func (s *GameSession) MapView() string {
	return s.world.RenderMap(s.player)
}

// Move walks the player through an exit. Arriving in a room with hostile
// monsters starts an encounter at once; wilderness arrivals may spawn one.
func (s *GameSession) Move(ctx context.Context, direction entities.Direction) (string, error) {
	if err := s.checkPlayable(); err != nil {
		return "", err
	}
	dest, err := s.world.Exit(s.player, direction)
	if err != nil {
		return "", err
	}

	s.player.PreviousLocationID = s.player.LocationID
	s.player.LocationID = dest
	s.player.Discover(dest)
	s.advanceTurn()

	room, err := s.world.Room(dest)
	if err != nil {
		return "", err
	}
	var lines []string
	lines = append(lines, s.world.Describe(room, s.player))

	if spawned := s.maybeWildSpawn(room); spawned != nil {
		lines = append(lines, fmt.Sprintf("A %s emerges from the undergrowth!", spawned.Name))
	}
	if room.HasHostiles() {
		var hostile []*entities.Monster
		for _, m := range room.Monsters {
			if m.IsAlive() {
				hostile = append(hostile, m)
			}
		}
		out, err := s.combat.Initiate(ctx, &combat.InitiateInput{
			Player:     s.player,
			Monsters:   hostile,
			LocationID: dest,
			Terrain:    room.Location.Kind,
		})
		if err != nil {
			return "", err
		}
		s.encounter = out.Encounter
		lines = append(lines, out.Log...)
	}
	return strings.Join(lines, "\n"), nil
}

// maybeWildSpawn rolls the wilderness spawn chance for an empty room.
func (s *GameSession) maybeWildSpawn(room *world.Room) *entities.Monster {
	loc := room.Location
	if loc.Kind != entities.LocationWilderness || loc.SpawnChance <= 0 || len(loc.MonsterIDs) == 0 {
		return nil
	}
	if room.HasHostiles() {
		return nil
	}
	roll, err := s.roller.Roll(100)
	if err != nil || roll > int(loc.SpawnChance*100) {
		return nil
	}
	spawned, err := s.world.SpawnMonster(loc.ID, loc.MonsterIDs[0])
	if err != nil {
		s.log.Error("wild spawn failed", slog.String("error", err.Error()))
		return nil
	}
	return spawned
}

// CombatAction submits one combat turn and settles its aftermath: the room
// is synced, retreat returns the player to the previous location, defeat
// ends the game, and earned level-ups queue up for resolution.
func (s *GameSession) CombatAction(ctx context.Context, action combat.Action) (*combat.SubmitActionOutput, error) {
	if !s.InCombat() {
		return nil, errors.FailedPrecondition("not in combat")
	}
	out, err := s.combat.SubmitAction(ctx, &combat.SubmitActionInput{
		Encounter: s.encounter,
		Action:    action,
	})
	if err != nil {
		return nil, err
	}

	s.pending = append(s.pending, out.LevelUps...)
	s.advanceTurn()

	switch out.Outcome {
	case combat.OutcomeVictory:
		s.encounter = nil
	case combat.OutcomeFled:
		s.encounter = nil
		if s.player.PreviousLocationID != "" {
			s.player.LocationID = s.player.PreviousLocationID
		}
	case combat.OutcomeDefeat:
		s.encounter = nil
		s.gameOver = true
	}
	return out, nil
}

// PendingLevelUp returns the oldest unresolved level-up, or nil.
func (s *GameSession) PendingLevelUp() *levelup.Event {
	if len(s.pending) == 0 {
		return nil
	}
	return s.pending[0]
}

// ResolveLevelUp applies the player's choice to the oldest pending
// level-up.
func (s *GameSession) ResolveLevelUp(choice levelup.Choice) error {
	ev := s.PendingLevelUp()
	if ev == nil {
		return errors.FailedPrecondition("no level-up pending")
	}
	if err := ev.Resolve(choice); err != nil {
		return err
	}
	s.pending = s.pending[1:]
	return nil
}

// ClassPrompt returns the forced class choice once the player reaches the
// threshold level classless, after all pending level-ups resolve.
func (s *GameSession) ClassPrompt() *classes.ChoicePrompt {
	if len(s.pending) > 0 {
		return nil
	}
	return s.classEngine.CheckForcedChoice(s.player)
}

// ChooseClass makes the permanent class choice.
func (s *GameSession) ChooseClass(classID string) error {
	return s.classEngine.Assign(s.player, classID)
}

// LearnSkill spends skill points on a skill.
func (s *GameSession) LearnSkill(skillID string) error {
	return s.tree.Learn(s.player, skillID)
}

// VisibleSkills lists the skills the player's class can see.
func (s *GameSession) VisibleSkills() []*entities.Skill {
	return s.tree.Visible(s.player)
}

// Take picks an item up off the ground.
func (s *GameSession) Take(itemID string) (string, error) {
	if err := s.checkPlayable(); err != nil {
		return "", err
	}
	if err := s.world.TakeGroundItem(s.player, itemID); err != nil {
		return "", err
	}
	item, err := s.content.GetItem(itemID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("You pick up the %s.", item.Name), nil
}

// Drop leaves an item on the ground here.
func (s *GameSession) Drop(itemID string) (string, error) {
	if err := s.checkPlayable(); err != nil {
		return "", err
	}
	item, err := s.content.GetItem(itemID)
	if err != nil {
		return "", err
	}
	if s.player.IsEquipped(itemID) {
		return "", errors.NotUsablef("%s is equipped", item.Name)
	}
	if !s.player.RemoveItem(itemID, 1) {
		return "", errors.NotFoundf("not carrying %s", item.Name)
	}
	s.world.DropGroundItem(s.player.LocationID, itemID)
	return fmt.Sprintf("You set the %s down.", item.Name), nil
}

// UseItem uses an item outside combat: potions heal, containers open, and
// skill-teaching items are studied. Combat-only items are refused here.
func (s *GameSession) UseItem(itemID string) (string, error) {
	if err := s.checkPlayable(); err != nil {
		return "", err
	}
	item, err := s.content.GetItem(itemID)
	if err != nil {
		return "", err
	}
	if s.player.ItemCount(itemID) == 0 {
		return "", errors.NotFoundf("not carrying %s", item.Name)
	}

	var lines []string
	switch item.Kind {
	case entities.ItemPotion:
		eff := stats.ResolveCharacter(&s.player.Character)
		healed := s.player.Heal(item.HealAmount, eff.MaxHP)
		lines = append(lines, fmt.Sprintf("You drink the %s and recover %d HP.", item.Name, healed))
	case entities.ItemContainer:
		lines = append(lines, fmt.Sprintf("You open the %s.", item.Name))
		for _, innerID := range item.ContainedItemIDs {
			s.player.AddItem(innerID, 1)
			if inner, err := s.content.GetItem(innerID); err == nil {
				lines = append(lines, fmt.Sprintf("Inside you find a %s.", inner.Name))
			}
		}
	case entities.ItemPlain:
		if len(item.TeachesSkills) == 0 {
			return "", errors.NotUsablef("the %s is not something you can use", item.Name)
		}
		lines = append(lines, fmt.Sprintf("You study the %s.", item.Name))
	case entities.ItemOffensive, entities.ItemEffectPotion:
		return "", errors.NotUsablef("the %s only works in combat", item.Name)
	case entities.ItemEquipment:
		return "", errors.NotUsablef("try equipping the %s instead", item.Name)
	}

	for _, skillID := range item.TeachesSkills {
		if s.player.HasLearned(skillID) {
			continue
		}
		if err := s.tree.LearnFree(s.player, skillID); err != nil {
			return "", err
		}
		if skill, err := s.content.GetSkill(skillID); err == nil {
			lines = append(lines, fmt.Sprintf("You learn %s!", skill.Name))
		}
	}
	if item.Consumable() {
		s.player.RemoveItem(itemID, 1)
	}
	return strings.Join(lines, "\n"), nil
}

// Equip puts on a piece of equipment, attaching its effects.
func (s *GameSession) Equip(itemID string) (string, error) {
	if err := s.checkPlayable(); err != nil {
		return "", err
	}
	item, err := s.content.GetItem(itemID)
	if err != nil {
		return "", err
	}
	if item.Kind != entities.ItemEquipment {
		return "", errors.NotUsablef("the %s cannot be equipped", item.Name)
	}
	if s.player.ItemCount(itemID) == 0 {
		return "", errors.NotFoundf("not carrying %s", item.Name)
	}
	if s.player.IsEquipped(itemID) {
		return "", errors.AlreadyExistsf("%s is already equipped", item.Name)
	}

	s.player.Equipped = append(s.player.Equipped, itemID)
	for _, effectID := range item.EquipEffectIDs {
		eff, err := s.registry.Instantiate(effectID, itemID)
		if err != nil {
			return "", err
		}
		s.player.Effects = append(s.player.Effects, eff)
	}
	stats.Refresh(&s.player.Character)
	return fmt.Sprintf("You equip the %s.", item.Name), nil
}

// Unequip removes a piece of equipment and strips its effects.
func (s *GameSession) Unequip(itemID string) (string, error) {
	if err := s.checkPlayable(); err != nil {
		return "", err
	}
	item, err := s.content.GetItem(itemID)
	if err != nil {
		return "", err
	}
	if !s.player.IsEquipped(itemID) {
		return "", errors.NotFoundf("%s is not equipped", item.Name)
	}

	for i, id := range s.player.Equipped {
		if id == itemID {
			s.player.Equipped = append(s.player.Equipped[:i], s.player.Equipped[i+1:]...)
			break
		}
	}
	var kept []entities.ActiveEffect
	for _, eff := range s.player.Effects {
		if eff.Source != itemID {
			kept = append(kept, eff)
		}
	}
	s.player.Effects = kept
	stats.Refresh(&s.player.Character)
	return fmt.Sprintf("You take off the %s.", item.Name), nil
}

// advanceTurn ticks world time and periodic upkeep such as merchant
// restocks.
func (s *GameSession) advanceTurn() {
	s.turns.Advance()
	if s.turns.Every(s.game.Economy.RestockInterval) {
		s.world.RestockMerchants(s.shop.Restock)
	}
}

func (s *GameSession) checkPlayable() error {
	if s.gameOver {
		return errors.FailedPrecondition("the game is over")
	}
	if s.InCombat() {
		return errors.FailedPrecondition("you are in the middle of a fight")
	}
	return nil
}
